package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/suryansh-23/txguard/internal/ui"
)

const maxStdinBytes = 1 << 20

// stdinIsTerminal reports whether the command reads from an interactive
// terminal.
func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readValue returns args joined by spaces, or prompts on a terminal, or
// reads piped stdin. Prompts for secret material hide what is typed.
func readValue(cmd *cobra.Command, args []string, title string, secret bool) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if stdinIsTerminal(cmd) {
		return prompt(title, secret)
	}
	data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxStdinBytes))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func prompt(title string, secret bool) (string, error) {
	var value string
	input := huh.NewInput().Title(title).Value(&value)
	if secret {
		input = input.EchoMode(huh.EchoModePassword)
	}
	if err := huh.NewForm(huh.NewGroup(input)).WithTheme(ui.Theme()).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errors.New("cancelled")
		}
		return "", err
	}
	return value, nil
}
