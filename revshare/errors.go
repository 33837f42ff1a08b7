package revshare

import "errors"

var (
	// ErrInvalidDecimal indicates a proportion string could not be parsed.
	ErrInvalidDecimal = errors.New("revshare: invalid decimal")

	// ErrDecimalOverflow indicates a decimal operation exceeded the representable range.
	ErrDecimalOverflow = errors.New("revshare: decimal overflow")

	// ErrInvalidRegistryData indicates an encoded beneficiary list is malformed.
	ErrInvalidRegistryData = errors.New("revshare: invalid registry data")

	// ErrNoEntries indicates the beneficiary list is empty.
	ErrNoEntries = errors.New("revshare: no beneficiary entries")

	// ErrPortionSum indicates the proportions do not sum to exactly one.
	ErrPortionSum = errors.New("revshare: portions do not sum to one")

	// ErrConservationViolation indicates payouts do not add up to the price.
	ErrConservationViolation = errors.New("revshare: payout conservation violated")

	// ErrTooManyEntries indicates the list cannot be encoded.
	ErrTooManyEntries = errors.New("revshare: too many entries")
)
