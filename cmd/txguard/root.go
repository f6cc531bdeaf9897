package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suryansh-23/txguard/internal/config"
	"github.com/suryansh-23/txguard/internal/guard"
	"github.com/suryansh-23/txguard/internal/logging"
	"github.com/suryansh-23/txguard/internal/redact"
	"github.com/suryansh-23/txguard/internal/validate"
)

func newRootCmd(state *appState) *cobra.Command {
	var (
		cfgPath     string
		debugFlag   bool
		noInitHints bool
	)

	rootCmd := &cobra.Command{
		Use:           "txguard",
		Short:         "Validate escrow inputs, redact secrets and call remote services safely",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolvedPath, err := resolveConfigPath(cfgPath)
			if err != nil {
				return err
			}
			cfg, found, err := config.Load(resolvedPath)
			if err != nil {
				if cmd.Name() != "init" && cmd.Name() != "doctor" {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "txguard: ignoring invalid config: %v\n", err)
				cfg = config.DefaultConfig()
			}
			state.cfgPath = resolvedPath
			state.cfgFound = found
			if !found && !noInitHints && cmd.Name() != "init" {
				fmt.Fprintln(cmd.ErrOrStderr(), "txguard: no config found; using defaults (run `txguard init` to create one)")
			}
			return state.configure(cfg, debugFlag)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (env TXGUARD_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable redacted debug logging")
	rootCmd.PersistentFlags().BoolVar(&noInitHints, "no-init-hints", false, "suppress init guidance")

	rootCmd.AddCommand(newRedactCmd(state))
	rootCmd.AddCommand(newDetectCmd(state))
	rootCmd.AddCommand(newParseCmd(state))
	rootCmd.AddCommand(newProbeCmd(state))
	rootCmd.AddCommand(newRunCmd(state))
	rootCmd.AddCommand(newInitCmd(&cfgPath))
	rootCmd.AddCommand(newDoctorCmd(state))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// configure builds the shared components from cfg.
func (s *appState) configure(cfg config.Config, debug bool) error {
	r, err := redact.FromConfig(cfg.Redaction)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging, logging.WithDebug(debug), logging.WithRedactor(r.Text))
	if err != nil {
		return err
	}
	g, err := guard.FromConfig(cfg, logger)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.logger = logger
	s.redactor = r
	s.validator = validate.FromConfig(cfg)
	s.guard = g
	return nil
}
