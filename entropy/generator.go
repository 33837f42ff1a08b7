package entropy

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// Generator is a deterministic pseudo-random stream: the ChaCha20 keystream
// under a 32-byte seed with an all-zero nonce, consumed front to back.
// Not safe for concurrent use.
type Generator struct {
	c *chacha20.Cipher
}

// NewGenerator creates a generator keyed by seed.
func NewGenerator(seed [SeedSize]byte) (*Generator, error) {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		return nil, fmt.Errorf("entropy: init chacha20: %w", err)
	}
	return &Generator{c: c}, nil
}

// Read fills p with the next len(p) keystream bytes. It never fails.
func (g *Generator) Read(p []byte) (int, error) {
	clear(p)
	g.c.XORKeyStream(p, p)
	return len(p), nil
}

// Uint32 returns the next keystream word, little-endian.
func (g *Generator) Uint32() uint32 {
	var b [4]byte
	_, _ = g.Read(b[:])
	return binary.LittleEndian.Uint32(b[:])
}
