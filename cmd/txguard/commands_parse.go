package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/suryansh-23/txguard/internal/validate"
)

func newParseCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Validate and normalize escrow inputs",
	}
	cmd.AddCommand(
		newParseAmountCmd(state),
		newParseDeadlineCmd(state),
		newParseDurationCmd(state),
		newParseAddressCmd(state),
		newParseIDCmd(state),
		newParseEscrowCmd(state),
	)
	return cmd
}

func newParseAmountCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "amount [value]",
		Short: "Parse a decimal amount into minimal units (6 decimals)",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readValue(cmd, args, "Amount", false)
			if err != nil {
				return err
			}
			units, err := state.validator.ParseAmount(input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", units.String(), validate.FormatAmount(units))
			return nil
		},
	}
}

func newParseDeadlineCmd(state *appState) *cobra.Command {
	var (
		requireFuture bool
		horizon       time.Duration
	)
	cmd := &cobra.Command{
		Use:   "deadline [value]",
		Short: "Parse +N(m|h|d), an ISO-8601 date or a Unix timestamp",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readValue(cmd, args, "Deadline", false)
			if err != nil {
				return err
			}
			ts, err := state.validator.ParseTimePoint(input)
			if err != nil {
				return err
			}
			if requireFuture {
				if err := state.validator.RequireFuture(ts); err != nil {
					return err
				}
			}
			if horizon > 0 {
				if err := state.validator.WithinHorizon(ts, horizon); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", ts, time.Unix(ts, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().BoolVar(&requireFuture, "future", false, "reject deadlines that are not in the future")
	cmd.Flags().DurationVar(&horizon, "within", 0, "reject deadlines further away than this (e.g. 720h)")
	return cmd
}

func newParseDurationCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "duration [value]",
		Short: "Parse N(s|m|h|d) or a number of seconds",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readValue(cmd, args, "Duration", false)
			if err != nil {
				return err
			}
			secs, err := state.validator.ParseDuration(input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatInt(secs, 10))
			return nil
		},
	}
}

func newParseAddressCmd(state *appState) *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "address [value]",
		Short: "Validate an account address and reject the zero address",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readValue(cmd, args, field, false)
			if err != nil {
				return err
			}
			addr, err := state.validator.ParseAddress(input, field)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}
	cmd.Flags().StringVar(&field, "field", "Address", "field name used in error messages")
	return cmd
}

func newParseIDCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "id [value]",
		Short: "Normalize a 0x-prefixed 64 hex digit identifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readValue(cmd, args, "ID", false)
			if err != nil {
				return err
			}
			id, err := state.validator.ParseOpaqueID(input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

type escrowOutput struct {
	AmountUnits   string `yaml:"amount_units"`
	Amount        string `yaml:"amount"`
	Recipient     string `yaml:"recipient"`
	Deadline      int64  `yaml:"deadline"`
	DeadlineUTC   string `yaml:"deadline_utc"`
	DisputeWindow int64  `yaml:"dispute_window_seconds,omitempty"`
	Reference     string `yaml:"reference,omitempty"`
}

func newParseEscrowCmd(state *appState) *cobra.Command {
	var raw validate.RawEscrowTerms
	cmd := &cobra.Command{
		Use:   "escrow",
		Short: "Validate a full set of escrow terms",
		Long:  "Applies the configured deadline policy (deadline.require_future, deadline.max_horizon_hours).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := state.validator.ParseEscrowTerms(raw)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(escrowOutput{
				AmountUnits:   terms.Amount.String(),
				Amount:        validate.FormatAmount(terms.Amount),
				Recipient:     terms.Recipient,
				Deadline:      terms.Deadline,
				DeadlineUTC:   time.Unix(terms.Deadline, 0).UTC().Format(time.RFC3339),
				DisputeWindow: terms.DisputeWindow,
				Reference:     terms.Reference,
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&raw.Amount, "amount", "", "amount, e.g. 250 or $1,000.50")
	cmd.Flags().StringVar(&raw.Recipient, "recipient", "", "recipient address")
	cmd.Flags().StringVar(&raw.Deadline, "deadline", "", "deadline: +N(m|h|d), ISO-8601 or Unix timestamp")
	cmd.Flags().StringVar(&raw.DisputeWindow, "dispute-window", "", "dispute window: N(s|m|h|d)")
	cmd.Flags().StringVar(&raw.Reference, "reference", "", "optional 64 hex digit reference id")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("recipient")
	_ = cmd.MarkFlagRequired("deadline")
	return cmd
}
