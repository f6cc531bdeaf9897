package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suryansh-23/txguard/internal/detect"
	"github.com/suryansh-23/txguard/internal/types"
	"github.com/suryansh-23/txguard/internal/ui"
)

func newDetectCmd(state *appState) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "detect [text...]",
		Short: "Report secrets in text without printing them",
		Long:  "Lists each secret as kind, rule and byte range. Exits with status 1 when any secret is found.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readValue(cmd, args, "Text to scan", true)
			if err != nil {
				return err
			}
			text = state.redactor.Window(text)
			findings := findSecrets(text)
			counts := make(map[string]int)
			for _, f := range findings {
				counts[string(f.Kind)]++
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d-%d\n", f.Kind, f.Rule, f.Start, f.End)
				}
			}
			if !quiet {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Summary(counts))
			}
			if len(findings) > 0 {
				return &exitCodeError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing; report through the exit status only")
	return cmd
}

// findSecrets scans text and also treats a bare phrase as a mnemonic when
// the whole input passes the wordlist test.
func findSecrets(text string) []detect.Finding {
	findings := detect.Scan(text)
	hasMnemonic := false
	for _, f := range findings {
		if f.Kind == types.SecretMnemonic {
			hasMnemonic = true
			break
		}
	}
	if !hasMnemonic && detect.IsMnemonicPhrase(text) {
		trimmed := strings.TrimSpace(text)
		start := strings.Index(text, trimmed)
		findings = append(findings, detect.Finding{
			Kind:  types.SecretMnemonic,
			Rule:  "wordlist",
			Start: start,
			End:   start + len(trimmed),
		})
	}
	return findings
}
