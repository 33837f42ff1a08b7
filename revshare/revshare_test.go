package revshare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(pairs ...string) []Beneficiary {
	out := make([]Beneficiary, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Beneficiary{Address: pairs[i], Portion: MustParseDecimal(pairs[i+1])})
	}
	return out
}

// --- Decimal tests ---

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in      string
		atomics uint64
		str     string
	}{
		{"1", 1_000_000_000_000_000_000, "1"},
		{"0.7", 700_000_000_000_000_000, "0.7"},
		{"0.30", 300_000_000_000_000_000, "0.3"},
		{"0.000000000000000001", 1, "0.000000000000000001"},
		{"2.5", 2_500_000_000_000_000_000, "2.5"},
		{"0", 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDecimal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.atomics, d.Atomics())
			assert.Equal(t, tt.str, d.String())
		})
	}
}

func TestParseDecimal_Invalid(t *testing.T) {
	for _, in := range []string{"", ".5", "1.", "-1", "0.1a", "1e3", "0.0000000000000000001"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDecimal(in)
			assert.ErrorIs(t, err, ErrInvalidDecimal)
		})
	}
}

func TestParseDecimal_Overflow(t *testing.T) {
	_, err := ParseDecimal("19")
	assert.ErrorIs(t, err, ErrDecimalOverflow)
}

func TestDecimal_MulFloor(t *testing.T) {
	tests := []struct {
		portion string
		amount  uint64
		want    uint64
	}{
		{"0.7", 20, 14},
		{"0.3", 20, 6},
		{"0.333333333333333333", 10, 3},
		{"1", 18_000_000_000_000_000_000, 18_000_000_000_000_000_000},
		{"0.5", 1, 0},
	}
	for _, tt := range tests {
		got, err := MustParseDecimal(tt.portion).MulFloor(tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s * %d", tt.portion, tt.amount)
	}
}

func TestDecimal_MulFloorOverflow(t *testing.T) {
	_, err := MustParseDecimal("2").MulFloor(18_000_000_000_000_000_000)
	assert.ErrorIs(t, err, ErrDecimalOverflow)
}

func TestDecimal_TextRoundTrip(t *testing.T) {
	d := MustParseDecimal("0.125")
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0.125", string(text))

	var back Decimal
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, d, back)
}

// --- Split tests ---

func TestSplit_Proportional(t *testing.T) {
	payouts, err := Split(20, entries("admin1", "0.7", "admin2", "0.3"))
	require.NoError(t, err)
	assert.Equal(t, []Payout{{"admin1", 14}, {"admin2", 6}}, payouts)

	payouts, err = Split(10, entries("admin1", "0.7", "admin2", "0.3"))
	require.NoError(t, err)
	assert.Equal(t, []Payout{{"admin1", 7}, {"admin2", 3}}, payouts)
}

func TestSplit_RemainderToLast(t *testing.T) {
	list := entries("a", "0.333333333333333333", "b", "0.333333333333333333", "c", "0.333333333333333334")
	payouts, err := Split(100, list)
	require.NoError(t, err)
	assert.Equal(t, uint64(33), payouts[0].Amount)
	assert.Equal(t, uint64(33), payouts[1].Amount)
	assert.Equal(t, uint64(34), payouts[2].Amount)
	assert.NoError(t, ValidateConservation(100, payouts))
}

func TestSplit_ZeroPrice(t *testing.T) {
	payouts, err := Split(0, entries("a", "1"))
	require.NoError(t, err)
	assert.Empty(t, payouts)
}

func TestSplit_NoEntries(t *testing.T) {
	_, err := Split(10, nil)
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestSplit_OverAllocated(t *testing.T) {
	_, err := Split(10, entries("a", "0.8", "b", "0.8", "c", "0.1"))
	assert.ErrorIs(t, err, ErrConservationViolation)
}

func TestSplit_Conservation(t *testing.T) {
	list := entries("a", "0.15", "b", "0.05", "c", "0.123456789", "d", "0.676543211")
	require.NoError(t, ValidatePortions(list))
	for price := uint64(0); price < 2000; price += 7 {
		payouts, err := Split(price, list)
		require.NoError(t, err)
		require.NoError(t, ValidateConservation(price, payouts), "price %d", price)
	}
}

// --- Validation tests ---

func TestValidatePortions(t *testing.T) {
	tests := []struct {
		name    string
		list    []Beneficiary
		wantErr error
	}{
		{"exact one", entries("a", "0.7", "b", "0.3"), nil},
		{"single", entries("a", "1"), nil},
		{"under", entries("a", "0.7", "b", "0.2"), ErrPortionSum},
		{"over", entries("a", "0.7", "b", "0.4"), ErrPortionSum},
		{"empty", nil, ErrNoEntries},
		{"overflow", entries("a", "18", "b", "18"), ErrDecimalOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePortions(tt.list)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateConservation_Mismatch(t *testing.T) {
	assert.ErrorIs(t, ValidateConservation(10, []Payout{{"a", 6}, {"b", 5}}), ErrConservationViolation)
	assert.ErrorIs(t, ValidateConservation(10, nil), ErrConservationViolation)
	assert.NoError(t, ValidateConservation(0, nil))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.7", Percent(70).String())
	assert.True(t, Percent(100).IsOne())
	assert.Equal(t, "18.44", Percent(1844).String())
	assert.Panics(t, func() { Percent(1845) })
}

// --- Registry codec tests ---

func TestSerializeRegistry_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list []Beneficiary
	}{
		{"empty", []Beneficiary{}},
		{"single", entries("admin1", "1")},
		{"multiple", entries("admin1", "0.7", "admin2", "0.2", "", "0.1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := SerializeRegistry(tt.list)
			require.NoError(t, err)

			decoded, err := DeserializeRegistry(data)
			require.NoError(t, err)
			assert.Equal(t, tt.list, decoded)
		})
	}
}

func TestSerializeRegistry_Size(t *testing.T) {
	data, err := SerializeRegistry(entries("ab", "0.5", "cde", "0.5"))
	require.NoError(t, err)
	// 4 + (2+2+8) + (2+3+8) = 29
	assert.Len(t, data, 29)
}

func TestDeserializeRegistry_Malformed(t *testing.T) {
	good, err := SerializeRegistry(entries("admin1", "1"))
	require.NoError(t, err)

	for name, data := range map[string][]byte{
		"too short":  {0x01},
		"truncated":  good[:len(good)-1],
		"trailing":   append(append([]byte{}, good...), 0x00),
		"huge count": {0xff, 0xff, 0xff, 0xff},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DeserializeRegistry(data)
			assert.ErrorIs(t, err, ErrInvalidRegistryData)
		})
	}
}
