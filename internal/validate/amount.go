package validate

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// AmountDecimals is the number of fractional digits in one whole unit.
const AmountDecimals = 6

var unitScale = big.NewInt(1_000_000)

// ParseAmount converts a human decimal like "$1,250.50 USDC" into minimal
// units at six decimals. Trailing fractional zeros do not count toward the
// decimal limit.
func (v *Validator) ParseAmount(input string) (*big.Int, error) {
	if err := checkLength("Amount", input, v.limits.Amount); err != nil {
		return nil, err
	}
	s := normalizeAmount(input)
	if s == "" {
		return nil, newError(KindInvalidFormat, "Amount", "Amount is empty; expected a decimal number such as 12.50")
	}
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	whole, frac, ok := splitDecimal(s)
	if !ok {
		return nil, newError(KindInvalidFormat, "Amount", "Amount must be a decimal number such as 100 or 0.05")
	}
	if negative {
		return nil, newError(KindNegative, "Amount", "Amount cannot be negative")
	}
	frac = strings.TrimRight(frac, "0")
	if len(frac) > AmountDecimals {
		return nil, newError(KindInvalidFormat, "Amount", "Amount has more than %d decimal places", AmountDecimals)
	}

	units, ok := new(big.Int).SetString(whole+frac+strings.Repeat("0", AmountDecimals-len(frac)), 10)
	if !ok {
		return nil, newError(KindInvalidFormat, "Amount", "Amount must be a decimal number such as 100 or 0.05")
	}
	if units.Cmp(v.minAmount) < 0 {
		return nil, newError(KindBelowMinimum, "Amount", "Amount %s is below the minimum of %s", FormatAmount(units), FormatAmount(v.minAmount))
	}
	return units, nil
}

// ParseAmountNumber accepts an already-numeric amount. The number is
// rendered in plain decimal notation and parsed like a string.
func (v *Validator) ParseAmountNumber(n float64) (*big.Int, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, newError(KindInvalidFormat, "Amount", "Amount must be a finite number")
	}
	return v.ParseAmount(strconv.FormatFloat(n, 'f', -1, 64))
}

// FormatAmount renders minimal units as a decimal string without trailing
// zeros, so ParseAmount(FormatAmount(x)) == x for accepted amounts.
func FormatAmount(units *big.Int) string {
	if units == nil {
		return "0"
	}
	abs := new(big.Int).Abs(units)
	whole, rem := new(big.Int).QuoRem(abs, unitScale, new(big.Int))
	out := whole.String()
	if rem.Sign() != 0 {
		frac := strings.TrimRight(fmt.Sprintf("%0*d", AmountDecimals, rem.Int64()), "0")
		out += "." + frac
	}
	if units.Sign() < 0 {
		out = "-" + out
	}
	return out
}

// normalizeAmount strips whitespace, thousands separators, a leading dollar
// sign and a trailing USD or USDC suffix.
func normalizeAmount(input string) string {
	s := strings.TrimSpace(input)
	for _, suffix := range []string{"usdc", "usd"} {
		if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
			s = s[:len(s)-len(suffix)]
			break
		}
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\t', '_':
			return -1
		}
		return r
	}, s)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	s = strings.TrimPrefix(s, "$")
	return sign + s
}

// splitDecimal splits digits[.digits]. At least one digit is required.
func splitDecimal(s string) (string, string, bool) {
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return "", "", false
	}
	if !allDigits(whole) || !allDigits(frac) {
		return "", "", false
	}
	if whole == "" {
		whole = "0"
	}
	return whole, frac, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
