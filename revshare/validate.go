package revshare

import "fmt"

// ValidatePortions checks that the list is non-empty and its proportions
// sum to exactly one.
func ValidatePortions(entries []Beneficiary) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	total, err := TotalPortion(entries)
	if err != nil {
		return err
	}
	if !total.IsOne() {
		return fmt.Errorf("%w: total=%s", ErrPortionSum, total)
	}
	return nil
}

// ValidateConservation checks that payouts add up to price.
func ValidateConservation(price uint64, payouts []Payout) error {
	var total uint64
	for _, p := range payouts {
		total += p.Amount
	}
	if len(payouts) == 0 && price == 0 {
		return nil
	}
	if total != price {
		return fmt.Errorf("%w: price=%d payouts=%d", ErrConservationViolation, price, total)
	}
	return nil
}
