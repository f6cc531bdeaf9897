package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suryansh-23/txguard/internal/config"
	"github.com/suryansh-23/txguard/internal/ui"
	"github.com/suryansh-23/txguard/internal/validate"
)

func newDoctorCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Print environment diagnostics and run self-tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, state)
		},
	}
}

func runDoctor(cmd *cobra.Command, state *appState) error {
	out := cmd.OutOrStdout()
	info := readEnvInfo()
	fmt.Fprintf(out, "shell=%s\n", info.shell)
	fmt.Fprintf(out, "term=%s\n", info.term)
	fmt.Fprintf(out, "tty=%t\n", info.tty)
	fmt.Fprintf(out, "wrapped=%t\n", info.wrapped)
	fmt.Fprintf(out, "size=%dx%d\n", info.cols, info.rows)
	fmt.Fprintf(out, "config_path=%s\n", state.cfgPath)
	fmt.Fprintf(out, "config_found=%t\n", state.cfgFound)
	fmt.Fprintf(out, "log_level=%s\n", state.cfg.Logging.Level)
	fmt.Fprintf(out, "remote_timeout_ms=%d\n", state.cfg.Remote.TimeoutMS)
	fmt.Fprintf(out, "remote_max_attempts=%d\n", state.cfg.Remote.MaxAttempts)
	fmt.Fprintf(out, "remote_retry_delays=%v\n", state.guard.Policy().Delays())
	fmt.Fprintf(out, "breaker_enabled=%t\n", state.cfg.Remote.Breaker.Enabled)
	fmt.Fprintf(out, "rate_limit_enabled=%t\n", state.cfg.Remote.RateLimit.Enabled)
	fmt.Fprintf(out, "cache_enabled=%t\n", state.cfg.Cache.Enabled)
	fmt.Fprintf(out, "custom_rules=%d\n", len(state.cfg.Redaction.Rules))
	fmt.Fprintln(out)

	failed := 0
	check := func(name string, err error) {
		if err != nil {
			failed++
		}
		fmt.Fprintln(out, ui.Check(name, err))
	}

	configErr := error(nil)
	if state.cfgFound {
		_, _, configErr = config.Load(state.cfgPath)
	}
	check("config", configErr)

	_, err := keySelfTest(state.redactor)
	check("private key redaction", err)
	_, err = mnemonicSelfTest(state.redactor)
	check("mnemonic redaction", err)

	for _, sample := range []struct {
		name string
		run  func() error
	}{
		{"amount parser", func() error {
			units, err := state.validator.ParseAmount("$1,000.50")
			if err == nil && units.Int64() != 1_000_500_000 {
				err = fmt.Errorf("got %s units", units)
			}
			return err
		}},
		{"deadline parser", func() error {
			_, err := state.validator.ParseTimePoint("+24h")
			return err
		}},
		{"address parser", func() error {
			_, err := state.validator.ParseAddress("0x0000000000000000000000000000000000000000", "")
			if !validate.IsKind(err, validate.KindZeroAddress) {
				return fmt.Errorf("zero address not rejected: %v", err)
			}
			return nil
		}},
	} {
		check(sample.name, sample.run())
	}

	if failed > 0 {
		return &exitCodeError{code: 1}
	}
	return nil
}
