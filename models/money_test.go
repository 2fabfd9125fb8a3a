package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printforge/stall_backend/models"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"14.50", 1450},
		{"8", 800},
		{"0.01", 1},
		{"-2.35", -235},
		// rounding is half away from zero
		{"1.005", 101},
		{"-1.005", -101},
		{"2.994", 299},
		{"2.995", 300},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, models.ToMinorUnits(dec(t, tc.in)), "input %s", tc.in)
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	// any value with at most two fractional digits survives the round trip
	for _, s := range []string{"0", "0.01", "0.10", "1.99", "14.50", "100", "9999.99", "-3.25"} {
		in := dec(t, s)
		out := models.ToDecimal(models.ToMinorUnits(in))
		assert.True(t, out.Equal(in), "round trip of %s gave %s", s, out)
	}
}

func TestToMinorUnitsOpt(t *testing.T) {
	assert.Equal(t, int64(0), models.ToMinorUnitsOpt(nil))
	assert.Equal(t, int64(1050), models.ToMinorUnitsOpt(decPtr(t, "10.50")))
}

func TestParseMinorUnits(t *testing.T) {
	cents, err := models.ParseMinorUnits("14.50")
	require.NoError(t, err)
	assert.Equal(t, int64(1450), cents)

	cents, err = models.ParseMinorUnits("  ")
	require.NoError(t, err)
	assert.Equal(t, int64(0), cents)

	_, err = models.ParseMinorUnits("not a number")
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestToDecimalOpt(t *testing.T) {
	assert.Nil(t, models.ToDecimalOpt(nil))

	cents := int64(200)
	got := models.ToDecimalOpt(&cents)
	require.NotNil(t, got)
	assert.True(t, got.Equal(dec(t, "2.00")))
}
