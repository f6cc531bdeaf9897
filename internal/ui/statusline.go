package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Summary formats a one-line report of secrets found per kind.
func Summary(counts map[string]int) string {
	total := 0
	kinds := make([]string, 0, len(counts))
	for kind, n := range counts {
		if n <= 0 {
			continue
		}
		total += n
		kinds = append(kinds, kind)
	}
	if total == 0 {
		return "txguard: no secrets found"
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, kind := range kinds {
		parts[i] = fmt.Sprintf("%s=%d", kind, counts[kind])
	}
	noun := "secrets"
	if total == 1 {
		noun = "secret"
	}
	return fmt.Sprintf("txguard: found %d %s (%s)", total, noun, strings.Join(parts, ", "))
}

// Check renders a doctor check line.
func Check(name string, err error) string {
	if err == nil {
		return lipgloss.NewStyle().Foreground(Primary).Render("ok  ") + " " + name
	}
	return lipgloss.NewStyle().Foreground(Danger).Render("FAIL") + " " + name + ": " + err.Error()
}
