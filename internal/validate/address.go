package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// OpaqueIDHexLength is the number of hex digits in an opaque identifier.
const OpaqueIDHexLength = 64

// AddressValidator checks the format of an account address.
type AddressValidator interface {
	ValidateAddress(address string) error
}

// AddressValidatorFunc adapts a function to AddressValidator.
type AddressValidatorFunc func(address string) error

func (f AddressValidatorFunc) ValidateAddress(address string) error {
	return f(address)
}

// EVMAddressValidator accepts 0x-prefixed 20-byte hex addresses.
type EVMAddressValidator struct {
	v *validator.Validate
}

func NewEVMAddressValidator() *EVMAddressValidator {
	return &EVMAddressValidator{v: validator.New()}
}

func (e *EVMAddressValidator) ValidateAddress(address string) error {
	return e.v.Var(address, "required,eth_addr")
}

// ParseAddress trims input, checks its format with the configured address
// validator and rejects the all-zero address. field names the input in
// every error message and defaults to "Address".
func (v *Validator) ParseAddress(input, field string) (string, error) {
	if field == "" {
		field = "Address"
	}
	if err := checkLength(field, input, v.limits.Address); err != nil {
		return "", err
	}
	s := strings.TrimSpace(input)
	if s == "" {
		return "", newError(KindRequired, field, "%s is required", field)
	}
	if strings.HasPrefix(s, "0X") {
		s = "0x" + s[2:]
	}
	if err := v.addresses.ValidateAddress(s); err != nil {
		return "", newError(KindInvalidFormat, field, "%s must be a 0x-prefixed 40 character hex address", field)
	}
	if isZeroAddress(s) {
		return "", newError(KindZeroAddress, field, "%s cannot be the zero address", field)
	}
	return s, nil
}

// ParseOpaqueID normalizes a 0x-prefixed 64 hex digit identifier to
// lowercase. The prefix is optional on input.
func (v *Validator) ParseOpaqueID(input string) (string, error) {
	if err := checkLength("ID", input, v.limits.OpaqueID); err != nil {
		return "", err
	}
	s := strings.TrimSpace(input)
	if s == "" {
		return "", newError(KindRequired, "ID", "ID is required")
	}
	body := s
	if len(body) >= 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		body = body[2:]
	}
	if len(body) != OpaqueIDHexLength || !isHex(body) {
		return "", newError(KindInvalidFormat, "ID", "ID must be 0x followed by %d hex characters", OpaqueIDHexLength)
	}
	return "0x" + strings.ToLower(body), nil
}

func isZeroAddress(s string) bool {
	body := s
	if len(body) >= 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		body = body[2:]
	}
	return body != "" && strings.Trim(body, "0") == ""
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
