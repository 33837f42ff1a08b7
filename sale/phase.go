package sale

import (
	"fmt"

	"github.com/bitfsorg/libmint-go/storage"
)

// Phase is the sale rule a mint attempt is judged under.
type Phase int

const (
	// PhasePrivate is taken when neither free_open nor public_open is set,
	// including when private_open is false too.
	PhasePrivate Phase = iota
	PhasePublic
	PhaseFree
)

func (p Phase) String() string {
	switch p {
	case PhaseFree:
		return "free"
	case PhasePublic:
		return "public"
	default:
		return "private"
	}
}

// phaseOf selects the branch from the two flags that decide it.
func phaseOf(c Collection) Phase {
	switch {
	case c.FreeOpen:
		return PhaseFree
	case c.PublicOpen:
		return PhasePublic
	default:
		return PhasePrivate
	}
}

// quote is the outcome of eligibility: what the buyer owes and what the
// beneficiaries are paid from.
type quote struct {
	phase Phase
	price uint64 // amount that must be attached; zero means no payment check
	paid  bool   // whether the payment check applies and payouts are emitted
}

// checkEligibility applies the per-phase rules for buyer and records the
// counter and allowance changes. The caller's transaction discards them if
// any later step fails.
func checkEligibility(kv storage.KVStore, id string, c Collection, buyer string, free bool) (quote, error) {
	q := quote{phase: phaseOf(c)}

	switch q.phase {
	case PhaseFree:
		if _, err := bumpUserMints(kv, id, c, buyer, free, true); err != nil {
			return q, err
		}
		return q, nil

	case PhasePublic:
		if _, err := bumpUserMints(kv, id, c, buyer, free, true); err != nil {
			return q, err
		}
		if !free {
			q.price, q.paid = c.PublicPrice, true
		}
		return q, nil

	default:
		left, ok, err := whitelist.MayLoad(kv, id, buyer)
		if err != nil {
			return q, err
		}
		if !ok {
			return q, ErrNotWhitelisted
		}
		if left == 0 {
			return q, fmt.Errorf("%w: whitelist allowance used up", ErrMintExceeded)
		}
		if err := whitelist.Save(kv, left-1, id, buyer); err != nil {
			return q, err
		}
		if _, err := bumpUserMints(kv, id, c, buyer, free, false); err != nil {
			return q, err
		}
		if !free {
			q.price, q.paid = c.PrivatePrice, true
		}
		return q, nil
	}
}

// bumpUserMints increments the buyer's mint counter. With enforce set, a
// buyer who is not a free-minter fails once the count passes max_per_user.
func bumpUserMints(kv storage.KVStore, id string, c Collection, buyer string, free, enforce bool) (uint64, error) {
	count, _, err := userMints.MayLoad(kv, id, buyer)
	if err != nil {
		return 0, err
	}
	count++
	if err := userMints.Save(kv, count, id, buyer); err != nil {
		return 0, err
	}
	if enforce && !free && count > c.MaxPerUser {
		return count, fmt.Errorf("%w: %d of %d", ErrMintExceeded, count, c.MaxPerUser)
	}
	return count, nil
}

// displayPrice is the price shown to caller by the collection query.
// It checks private before public, unlike mint, which checks free first.
func displayPrice(c Collection, free bool) uint64 {
	switch {
	case free:
		return 0
	case c.PrivateOpen:
		return c.PrivatePrice
	case c.PublicOpen:
		return c.PublicPrice
	default:
		return 0
	}
}
