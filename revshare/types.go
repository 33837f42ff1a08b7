package revshare

// Beneficiary is a payout recipient and its share of every sale price.
type Beneficiary struct {
	Address string  `json:"address" yaml:"address"`
	Portion Decimal `json:"portion" yaml:"portion"`
}

// Payout is a single transfer the caller should emit.
type Payout struct {
	Address string
	Amount  uint64
}

// TotalPortion returns the sum of all proportions.
func TotalPortion(entries []Beneficiary) (Decimal, error) {
	var total Decimal
	for _, e := range entries {
		var err error
		total, err = total.Add(e.Portion)
		if err != nil {
			return Decimal{}, err
		}
	}
	return total, nil
}
