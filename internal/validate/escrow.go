package validate

import "math/big"

// RawEscrowTerms is user input for a new escrow, one string per field.
// Reference is optional.
type RawEscrowTerms struct {
	Amount        string `json:"amount" yaml:"amount"`
	Recipient     string `json:"recipient" yaml:"recipient"`
	Deadline      string `json:"deadline" yaml:"deadline"`
	DisputeWindow string `json:"dispute_window" yaml:"dispute_window"`
	Reference     string `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// EscrowTerms holds normalized escrow parameters, ready for a remote call.
type EscrowTerms struct {
	Amount        *big.Int
	Recipient     string
	Deadline      int64
	DisputeWindow int64
	Reference     string
}

// ParseEscrowTerms parses every field and applies the configured deadline
// policy. It returns the first failure.
func (v *Validator) ParseEscrowTerms(raw RawEscrowTerms) (EscrowTerms, error) {
	var terms EscrowTerms
	var err error

	if terms.Amount, err = v.ParseAmount(raw.Amount); err != nil {
		return EscrowTerms{}, err
	}
	if terms.Recipient, err = v.ParseAddress(raw.Recipient, "Recipient"); err != nil {
		return EscrowTerms{}, err
	}
	if terms.Deadline, err = v.ParseTimePoint(raw.Deadline); err != nil {
		return EscrowTerms{}, err
	}
	if v.requireFuture {
		if err := v.RequireFuture(terms.Deadline); err != nil {
			return EscrowTerms{}, err
		}
	}
	if v.maxHorizon > 0 {
		if err := v.WithinHorizon(terms.Deadline, v.maxHorizon); err != nil {
			return EscrowTerms{}, err
		}
	}
	if raw.DisputeWindow != "" {
		if terms.DisputeWindow, err = v.ParseDuration(raw.DisputeWindow); err != nil {
			return EscrowTerms{}, err
		}
	}
	if raw.Reference != "" {
		if terms.Reference, err = v.ParseOpaqueID(raw.Reference); err != nil {
			return EscrowTerms{}, err
		}
	}
	return terms, nil
}
