package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/suryansh-23/txguard/internal/config"
	"github.com/suryansh-23/txguard/internal/redact"
	"github.com/suryansh-23/txguard/internal/ui"
)

func newInitCmd(cfgPath *string) *cobra.Command {
	var useDefaults bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Run the first-time setup wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(*cfgPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			cfg := config.DefaultConfig()
			if useDefaults {
				if exists(path) {
					fmt.Fprintf(out, "Config exists, overwriting: %s\n", path)
				}
				return finishInit(cmd, path, cfg)
			}

			level := cfg.Logging.Level
			format := cfg.Logging.Format
			requireFuture := cfg.Deadline.RequireFuture
			horizonStr := strconv.Itoa(cfg.Deadline.MaxHorizonHours)
			timeoutStr := strconv.Itoa(cfg.Remote.TimeoutMS)
			attemptsStr := strconv.Itoa(cfg.Remote.MaxAttempts)
			delayStr := strconv.Itoa(cfg.Remote.BaseDelayMS)
			breakerEnabled := cfg.Remote.Breaker.Enabled
			cacheEnabled := cfg.Cache.Enabled
			cacheTTLStr := strconv.Itoa(cfg.Cache.TTLSeconds)
			overwrite := false

			envNote := huh.NewNote().
				Title("Environment").
				Description(envSummary()).
				Next(true)

			form := huh.NewForm(
				huh.NewGroup(envNote),
				huh.NewGroup(
					huh.NewConfirm().Title("Config exists. Overwrite?").Value(&overwrite),
				).WithHideFunc(func() bool { return !exists(path) }),
				huh.NewGroup(
					huh.NewSelect[string]().Title("Log level").Value(&level).Options(
						huh.NewOption("Warnings and errors (default)", "warn"),
						huh.NewOption("Info", "info"),
						huh.NewOption("Debug", "debug"),
						huh.NewOption("Errors only", "error"),
					),
					huh.NewSelect[string]().Title("Log format").Value(&format).Options(
						huh.NewOption("Console (default)", "console"),
						huh.NewOption("JSON", "json"),
					),
				),
				huh.NewGroup(
					huh.NewConfirm().Title("Reject escrow deadlines in the past?").Value(&requireFuture),
					huh.NewInput().Title("Maximum deadline horizon in hours (0 = none)").Value(&horizonStr).Validate(nonNegativeInt),
				),
				huh.NewGroup(
					huh.NewInput().Title("Remote call timeout (ms)").Value(&timeoutStr).Validate(positiveInt),
					huh.NewInput().Title("Attempts per call").Value(&attemptsStr).Validate(positiveInt),
					huh.NewInput().Title("First retry delay (ms)").Value(&delayStr).Validate(nonNegativeInt),
				),
				huh.NewGroup(
					huh.NewConfirm().Title("Stop calling a failing service for a while (circuit breaker)?").Value(&breakerEnabled),
				),
				huh.NewGroup(
					huh.NewConfirm().Title("Cache successful read results?").Value(&cacheEnabled),
				),
				huh.NewGroup(
					huh.NewInput().Title("Cache TTL seconds").Value(&cacheTTLStr).Validate(nonNegativeInt),
				).WithHideFunc(func() bool { return !cacheEnabled }),
			).WithTheme(ui.Theme())

			if err := runAnimatedForm(form); err != nil {
				return err
			}
			if exists(path) && !overwrite {
				return errors.New("init cancelled")
			}

			cfg.Logging.Level = level
			cfg.Logging.Format = format
			cfg.Deadline.RequireFuture = requireFuture
			cfg.Remote.Breaker.Enabled = breakerEnabled
			cfg.Cache.Enabled = cacheEnabled
			for _, field := range []struct {
				name string
				raw  string
				dst  *int
			}{
				{"deadline horizon", horizonStr, &cfg.Deadline.MaxHorizonHours},
				{"timeout", timeoutStr, &cfg.Remote.TimeoutMS},
				{"attempts", attemptsStr, &cfg.Remote.MaxAttempts},
				{"retry delay", delayStr, &cfg.Remote.BaseDelayMS},
				{"cache ttl", cacheTTLStr, &cfg.Cache.TTLSeconds},
			} {
				v, err := strconv.Atoi(strings.TrimSpace(field.raw))
				if err != nil {
					return fmt.Errorf("parse %s: %w", field.name, err)
				}
				*field.dst = v
			}
			return finishInit(cmd, path, cfg)
		},
	}
	cmd.Flags().BoolVar(&useDefaults, "default", false, "write default config without prompts")
	return cmd
}

// finishInit runs the redaction self-test against cfg and writes it.
func finishInit(cmd *cobra.Command, path string, cfg config.Config) error {
	r, err := redact.FromConfig(cfg.Redaction)
	if err != nil {
		return err
	}
	line, err := keySelfTest(r)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Self-test output: %s\n", line)
	if err := config.Write(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote config to %s\n", path)
	return nil
}

func positiveInt(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return errors.New("enter a positive integer")
	}
	return nil
}

func nonNegativeInt(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return errors.New("enter a non-negative integer")
	}
	return nil
}
