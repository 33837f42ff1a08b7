// Package entropy derives deterministic randomness from transaction context.
//
// Seed derivation:
//
//	key  = SHA256(seed || height_be64 || caller || extra)
//	seed' = ChaCha20(key, nonce=0)[0:32]
//
// The result keys a second ChaCha20 stream from which draws are taken.
// Anyone who knows (or can choose) the block height and caller can
// reproduce the draw ahead of time; the output is reproducible for
// replay and audit, and nothing more.
package entropy

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// Domain is the fixed domain-separation constant mixed into every seed.
const Domain = "entropy"

// SeedSize is the size of a derived seed in bytes.
const SeedSize = 32

// Context is the per-transaction input to seed derivation.
type Context struct {
	Height uint64 // current block height
	Caller string // transaction sender
}

// DomainSeed returns SHA256(base64(Domain)).
func DomainSeed() []byte {
	return bsvhash.Sha256([]byte(base64.StdEncoding.EncodeToString([]byte(Domain))))
}

// Derive returns the 256-bit seed for ctx.
// The same (seed, ctx, extra) always yields the same output.
func Derive(seed []byte, ctx Context, extra []byte) ([SeedSize]byte, error) {
	buf := make([]byte, 0, 8+len(ctx.Caller)+len(extra))
	buf = binary.BigEndian.AppendUint64(buf, ctx.Height)
	buf = append(buf, ctx.Caller...)
	buf = append(buf, extra...)

	key := bsvhash.Sha256(append(append([]byte{}, seed...), buf...))

	var k [SeedSize]byte
	copy(k[:], key)
	g, err := NewGenerator(k)
	if err != nil {
		return [SeedSize]byte{}, err
	}

	var out [SeedSize]byte
	if _, err := g.Read(out[:]); err != nil {
		return [SeedSize]byte{}, fmt.Errorf("entropy: read seed: %w", err)
	}
	return out, nil
}

// ForTx derives the generator used for draws in one transaction, with the
// domain seed used both as seed and as extra entropy.
func ForTx(ctx Context) (*Generator, error) {
	ds := DomainSeed()
	seed, err := Derive(ds, ctx, ds)
	if err != nil {
		return nil, err
	}
	return NewGenerator(seed)
}
