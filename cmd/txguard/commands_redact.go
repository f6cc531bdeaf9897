package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/suryansh-23/txguard/internal/redact"
)

func newRedactCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "redact [text...]",
		Short: "Replace private keys, mnemonics and API keys with markers",
		Long: "Redacts the given text. Without arguments, piped stdin is redacted line by line;\n" +
			"on a terminal the text is read from a hidden prompt.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !stdinIsTerminal(cmd) {
				w := redact.NewWriter(cmd.OutOrStdout(), state.redactor)
				if _, err := io.Copy(w, cmd.InOrStdin()); err != nil {
					return err
				}
				return w.Close()
			}
			text, err := readValue(cmd, args, "Text to redact", true)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), state.redactor.Text(text))
			return nil
		},
	}
}
