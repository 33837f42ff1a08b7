// Package pool holds the unassigned item numbers of a collection and draws
// from them without replacement.
package pool

import (
	"errors"
	"strconv"
)

// ErrPoolExhausted indicates a draw from an empty pool. Callers check supply
// before drawing, so seeing this error means the pool and counters disagree.
var ErrPoolExhausted = errors.New("pool: exhausted")

const (
	// MetadataExt is appended to the metadata URL of a minted item.
	MetadataExt = "json"

	// ImageExt is appended to the image URL of a minted item.
	ImageExt = "png"
)

// Source supplies uniformly distributed 32-bit words.
type Source interface {
	Uint32() uint32
}

// Sequential returns the pool [1, 2, ..., n].
func Sequential(n uint32) []uint32 {
	p := make([]uint32, n)
	for i := range p {
		p[i] = uint32(i) + 1
	}
	return p
}

// Draw picks pool[src.Uint32() % len(pool)] and returns it together with a
// new slice holding the remaining items. The input slice is not modified.
func Draw(p []uint32, src Source) (uint32, []uint32, error) {
	n := len(p)
	if n == 0 {
		return 0, nil, ErrPoolExhausted
	}
	i := int(src.Uint32() % uint32(n))
	item := p[i]
	rest := append(p[:i:i], p[i+1:]...)
	return item, rest, nil
}

// Item is the user-visible identity of a minted number.
type Item struct {
	TokenID  string
	TokenURI string
	ImageURL string
}

// Describe builds the identifiers of item n: "<name>.<n>",
// "<baseURL><n>.json" and "<imageURL><n>.png".
func Describe(displayName, baseURL, imageURL string, n uint32) Item {
	num := strconv.FormatUint(uint64(n), 10)
	return Item{
		TokenID:  displayName + "." + num,
		TokenURI: baseURL + num + "." + MetadataExt,
		ImageURL: imageURL + num + "." + ImageExt,
	}
}
