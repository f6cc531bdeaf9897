package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var logoLines = []string{
	` _______  __  ___                     __`,
	`/_  __/ |/ / / _ \__ _____ ________ / /`,
	` / /  >  < / (_ / // / _ ` + "`" + `/ __/ _  / `,
	`/_/  /_/|_| \___/\_,_/\_,_/_/  \_,_/  `,
}

// LogoFrame renders a single animated frame.
func LogoFrame(frame int) string {
	lines := make([]string, len(logoLines))
	for i, line := range logoLines {
		color := Palette[(frame+i)%len(Palette)]
		lines[i] = lipgloss.NewStyle().Foreground(color).Render(line)
	}
	return strings.Join(lines, "\n")
}

// LogoStatic renders the logo in the primary color with a caption below.
func LogoStatic(caption string) string {
	logo := lipgloss.NewStyle().Foreground(Primary).Render(strings.Join(logoLines, "\n"))
	if caption == "" {
		return logo
	}
	return logo + "\n" + lipgloss.NewStyle().Foreground(Muted).Render(caption)
}
