// Package address validates the account and contract identifiers that
// appear in sale messages.
package address

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/bsv-blockchain/go-sdk/script"
)

// ErrInvalidAddress indicates an identifier is not well-formed.
var ErrInvalidAddress = errors.New("address: invalid address")

// MaxLength bounds the length of a plain identifier.
const MaxLength = 256

// Validator checks identifiers before they are stored.
type Validator interface {
	Validate(addr string) error
}

// Plain accepts any non-empty identifier of printable, non-space characters.
type Plain struct{}

// Validate implements Validator.
func (Plain) Validate(addr string) error {
	if addr == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	if len(addr) > MaxLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAddress, MaxLength)
	}
	if strings.IndexFunc(addr, func(r rune) bool { return unicode.IsSpace(r) || !unicode.IsPrint(r) }) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace or control characters", ErrInvalidAddress, addr)
	}
	return nil
}

// BSV accepts base58check P2PKH addresses (mainnet or testnet).
type BSV struct{}

// Validate implements Validator.
func (BSV) Validate(addr string) error {
	if addr == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	a, err := script.NewAddressFromString(addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(a.PublicKeyHash) != 20 {
		return fmt.Errorf("%w: public key hash is %d bytes", ErrInvalidAddress, len(a.PublicKeyHash))
	}
	return nil
}

// ForFormat returns the validator named by format: "plain" or "bsv".
func ForFormat(format string) (Validator, error) {
	switch strings.ToLower(format) {
	case "", "plain":
		return Plain{}, nil
	case "bsv":
		return BSV{}, nil
	default:
		return nil, fmt.Errorf("address: unknown format %q", format)
	}
}
