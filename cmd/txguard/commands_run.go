package main

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/suryansh-23/txguard/internal/ptywrap"
)

func newRunCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Run a command with its terminal output redacted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			child := exec.Command(args[0], args[1:]...)
			child.Env = append(os.Environ(), "TXGUARD_WRAPPED=1")
			state.logger.Debug("running wrapped command")
			code, err := ptywrap.RunCommand(cmd.Context(), child, ptywrap.Options{
				RawMode:  term.IsTerminal(int(os.Stdin.Fd())),
				Output:   cmd.OutOrStdout(),
				Redactor: state.redactor,
				Logger:   state.logger,
			})
			if err != nil {
				return err
			}
			if code != 0 {
				return &exitCodeError{code: code}
			}
			return nil
		},
	}
}
