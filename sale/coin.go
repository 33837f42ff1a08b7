package sale

import (
	"fmt"
	"strconv"
	"strings"
)

// Coin is an amount of one denomination, in base units.
type Coin struct {
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount,string"`
}

// String renders c as "<amount><denom>".
func (c Coin) String() string {
	return strconv.FormatUint(c.Amount, 10) + c.Denom
}

// Coins is a list of coins as attached to a transaction.
type Coins []Coin

// AmountOf returns the amount of the first coin in denom, or zero.
func (cs Coins) AmountOf(denom string) uint64 {
	for _, c := range cs {
		if c.Denom == denom {
			return c.Amount
		}
	}
	return 0
}

// String renders cs as a comma-separated list.
func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// ParseCoin parses "20ujunox".
func ParseCoin(s string) (Coin, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i == len(s) {
		return Coin{}, fmt.Errorf("%w: %q", ErrInvalidCoin, s)
	}
	amount, err := strconv.ParseUint(s[:i], 10, 64)
	if err != nil {
		return Coin{}, fmt.Errorf("%w: %q: %w", ErrInvalidCoin, s, err)
	}
	denom := s[i:]
	if !validDenom(denom) {
		return Coin{}, fmt.Errorf("%w: bad denom %q", ErrInvalidCoin, denom)
	}
	return Coin{Denom: denom, Amount: amount}, nil
}

// ParseCoins parses a comma-separated list such as "20ujunox,5uatom".
// The empty string yields no coins.
func ParseCoins(s string) (Coins, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out Coins
	for _, part := range strings.Split(s, ",") {
		c, err := ParseCoin(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func validDenom(d string) bool {
	if len(d) < 1 || len(d) > 128 {
		return false
	}
	if d[0] < 'a' || d[0] > 'z' {
		return false
	}
	for i := 1; i < len(d); i++ {
		c := d[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '/' || c == '.' || c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}
