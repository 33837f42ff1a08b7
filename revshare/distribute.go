package revshare

import "fmt"

// Split calculates per-beneficiary payouts of price, in list order.
// Every entry but the last pays floor(portion * price); the last entry
// gets the remainder so the payouts always add up to price exactly.
// A zero price yields no payouts.
func Split(price uint64, entries []Beneficiary) ([]Payout, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	if price == 0 {
		return nil, nil
	}

	payouts := make([]Payout, len(entries))
	var distributed uint64

	for i, entry := range entries {
		payouts[i].Address = entry.Address
		if i == len(entries)-1 {
			payouts[i].Amount = price - distributed
			break
		}
		amount, err := entry.Portion.MulFloor(price)
		if err != nil {
			return nil, err
		}
		if amount > price-distributed {
			// Only reachable if the list was registered with portions above one.
			return nil, fmt.Errorf("%w: entry %d exceeds remaining %d", ErrConservationViolation, i, price-distributed)
		}
		payouts[i].Amount = amount
		distributed += amount
	}

	return payouts, nil
}
