package calculation

import (
	"testing"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInflationIndex(t *testing.T) {
	idx := BuildInflationIndex(date("2025-01-15"), date("2025-12-01"), dec("0.03"))
	require.Equal(t, 12, idx.Len())
	assert.Equal(t, "2025-01", idx.Months()[0])
	assert.Equal(t, "2025-12", idx.Months()[11])
	assertDecimalEqual(t, "1", idx.Factor(0))

	// 0.25% per month compounded 11 times
	assertDecimalNear(t, 1.0278463410608545, idx.Factor(11), 1e-12)

	for i := 1; i < idx.Len(); i++ {
		assert.True(t, idx.Factor(i).GreaterThanOrEqual(idx.Factor(i-1)), "month %d", i)
	}
}

func TestInflationIndexAt(t *testing.T) {
	idx := BuildInflationIndex(date("2025-01-01"), date("2025-06-30"), dec("0.06"))

	f, ok := idx.At(date("2025-03-31"))
	assert.True(t, ok)
	assertDecimalEqual(t, "1.010025", f)

	f, ok = idx.At(date("2026-01-01"))
	assert.False(t, ok)
	assertDecimalEqual(t, "1", f)

	assertDecimalEqual(t, "1", idx.Clamped(date("2024-01-01")))
	assert.True(t, idx.Clamped(date("2030-01-01")).Equal(idx.Factor(idx.Len()-1)))
}

func TestApplyGrowth(t *testing.T) {
	idx := BuildInflationIndex(date("2025-01-01"), date("2026-12-31"), dec("0.03"))
	amount := dec("1000")

	tests := []struct {
		name     string
		rule     domain.GrowthRule
		rate     decimal.Decimal
		on       string
		expected float64
	}{
		{"none", domain.GrowthNone, decimal.Zero, "2026-06-01", 1000},
		{"inflation first month", domain.GrowthTrackInflation, decimal.Zero, "2025-01-20", 1000},
		{"inflation one year", domain.GrowthTrackInflation, decimal.Zero, "2026-01-01", 1030.4159569135},
		{"inflation outside index", domain.GrowthTrackInflation, decimal.Zero, "2030-01-01", 1000},
		{"custom twelve months", domain.GrowthCustomPercent, dec("0.12"), "2026-01-01", 1126.8250301319697},
		{"custom zero rate", domain.GrowthCustomPercent, decimal.Zero, "2026-01-01", 1000},
		{"custom before start", domain.GrowthCustomPercent, dec("0.12"), "2024-06-01", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyGrowth(amount, tt.rule, tt.rate, idx, date(tt.on))
			assertDecimalNear(t, tt.expected, got, 1e-6)
		})
	}
}

func TestRealNominalRoundTrip(t *testing.T) {
	idx := BuildInflationIndex(date("2025-01-01"), date("2035-12-31"), dec("0.04"))
	on := date("2033-07-01")
	real := dec("1234.56")

	nominal := ToNominal(real, idx, on)
	assert.True(t, nominal.GreaterThan(real))
	assertDecimalNear(t, 1234.56, ToReal(nominal, idx, on), 1e-6)

	// outside the index both directions are identity
	outside := date("2040-01-01")
	assert.True(t, ToNominal(real, idx, outside).Equal(real))
	assert.True(t, ToReal(real, idx, outside).Equal(real))
}
