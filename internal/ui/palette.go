package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorEmerald = "#34D399"
	colorTeal    = "#2DD4BF"
	colorLime    = "#A3E635"
	colorAmber   = "#FBBF24"
	colorOrange  = "#FB923C"
	colorRed     = "#F87171"
	colorMuted   = "#94A3B8"
)

var (
	Primary   = lipgloss.Color(colorEmerald)
	Secondary = lipgloss.Color(colorAmber)
	Danger    = lipgloss.Color(colorRed)
	Muted     = lipgloss.Color(colorMuted)
	Palette   = []lipgloss.Color{Primary, lipgloss.Color(colorTeal), lipgloss.Color(colorLime), Secondary, lipgloss.Color(colorOrange), Danger}
)
