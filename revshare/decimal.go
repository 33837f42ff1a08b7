package revshare

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// DecimalPlaces is the number of fractional digits carried by a Decimal.
const DecimalPlaces = 18

// decimalFractional is 10^DecimalPlaces, the atomics value of 1.0.
const decimalFractional uint64 = 1_000_000_000_000_000_000

// Decimal is an unsigned fixed-point number with 18 fractional digits.
// The zero value is 0. Proportions never go through floating point, so
// every product is reproducible bit for bit.
type Decimal struct {
	atomics uint64
}

// One returns the multiplicative identity.
func One() Decimal { return Decimal{atomics: decimalFractional} }

// NewDecimalFromAtomics builds a Decimal from its raw 10^-18 units.
func NewDecimalFromAtomics(atomics uint64) Decimal { return Decimal{atomics: atomics} }

// maxPercent is the largest argument Percent accepts.
const maxPercent = math.MaxUint64 / (decimalFractional / 100)

// Percent returns p/100. It panics if p exceeds 1844, where the result
// no longer fits in a Decimal.
func Percent(p uint64) Decimal {
	if p > maxPercent {
		panic(fmt.Sprintf("revshare: percent %d overflows Decimal", p))
	}
	return Decimal{atomics: p * (decimalFractional / 100)}
}

// Atomics returns the raw 10^-18 units.
func (d Decimal) Atomics() uint64 { return d.atomics }

// IsZero reports whether d == 0.
func (d Decimal) IsZero() bool { return d.atomics == 0 }

// IsOne reports whether d == 1.
func (d Decimal) IsOne() bool { return d.atomics == decimalFractional }

// Add returns d + o, failing on overflow.
func (d Decimal) Add(o Decimal) (Decimal, error) {
	if d.atomics > math.MaxUint64-o.atomics {
		return Decimal{}, fmt.Errorf("%w: %s + %s", ErrDecimalOverflow, d, o)
	}
	return Decimal{atomics: d.atomics + o.atomics}, nil
}

// MulFloor returns floor(d * amount). The product is computed in 256 bits.
func (d Decimal) MulFloor(amount uint64) (uint64, error) {
	prod := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(d.atomics))
	prod.Div(prod, uint256.NewInt(decimalFractional))
	if !prod.IsUint64() {
		return 0, fmt.Errorf("%w: %s * %d", ErrDecimalOverflow, d, amount)
	}
	return prod.Uint64(), nil
}

// ParseDecimal parses a non-negative decimal string such as "0.7" or "1".
func ParseDecimal(s string) (Decimal, error) {
	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" || (hasDot && frac == "") {
		return Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	if len(frac) > DecimalPlaces {
		return Decimal{}, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidDecimal, s, DecimalPlaces)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}

	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil || w > math.MaxUint64/decimalFractional {
		return Decimal{}, fmt.Errorf("%w: %q", ErrDecimalOverflow, s)
	}
	atomics := w * decimalFractional

	if frac != "" {
		f, err := strconv.ParseUint(frac+strings.Repeat("0", DecimalPlaces-len(frac)), 10, 64)
		if err != nil {
			return Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
		}
		if atomics > math.MaxUint64-f {
			return Decimal{}, fmt.Errorf("%w: %q", ErrDecimalOverflow, s)
		}
		atomics += f
	}
	return Decimal{atomics: atomics}, nil
}

// MustParseDecimal is like ParseDecimal but panics on error. For constants and tests.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String renders d without trailing fractional zeros.
func (d Decimal) String() string {
	whole := d.atomics / decimalFractional
	frac := d.atomics % decimalFractional
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	fs := fmt.Sprintf("%018d", frac)
	return strconv.FormatUint(whole, 10) + "." + strings.TrimRight(fs, "0")
}

// MarshalText encodes d as its decimal string, so JSON and YAML carry "0.7".
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a decimal string.
func (d *Decimal) UnmarshalText(text []byte) error {
	v, err := ParseDecimal(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
