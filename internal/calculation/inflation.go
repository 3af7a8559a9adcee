package calculation

import (
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
	"github.com/rgehrsitz/hpgo/pkg/finmath"
	"github.com/shopspring/decimal"
)

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalTwelve = decimal.NewFromInt(12)
)

// InflationIndex maps each month of the projection window to the cumulative
// price multiplier since the first month. The first month is always 1.
type InflationIndex struct {
	start   dateutil.Date
	months  []string
	factors []decimal.Decimal
	byKey   map[string]int
}

// BuildInflationIndex compounds annualRate/12 once per month from start to
// end inclusive.
func BuildInflationIndex(start, end dateutil.Date, annualRate decimal.Decimal) *InflationIndex {
	months := dateutil.GenerateMonthRange(start, end)
	idx := &InflationIndex{
		start:   dateutil.StartOfMonth(start),
		months:  months,
		factors: make([]decimal.Decimal, len(months)),
		byKey:   make(map[string]int, len(months)),
	}
	step := decimalOne.Add(finmath.MonthlyRate(annualRate))
	factor := decimalOne
	for i, key := range months {
		if i > 0 {
			factor = factor.Mul(step).Round(finmath.RatePlaces)
		}
		idx.factors[i] = factor
		idx.byKey[key] = i
	}
	return idx
}

// Start is the first day of the index's first month.
func (idx *InflationIndex) Start() dateutil.Date { return idx.start }

// Len is the number of indexed months.
func (idx *InflationIndex) Len() int { return len(idx.months) }

// Months returns the month keys in order.
func (idx *InflationIndex) Months() []string { return idx.months }

// Factor returns the multiplier for the i-th month.
func (idx *InflationIndex) Factor(i int) decimal.Decimal { return idx.factors[i] }

// At returns the multiplier for date's month and whether it is indexed.
func (idx *InflationIndex) At(date dateutil.Date) (decimal.Decimal, bool) {
	i, ok := idx.byKey[dateutil.MonthKey(date)]
	if !ok {
		return decimalOne, false
	}
	return idx.factors[i], true
}

// Clamped returns the multiplier for date's month, using the nearest end of
// the window when date falls outside it.
func (idx *InflationIndex) Clamped(date dateutil.Date) decimal.Decimal {
	if len(idx.factors) == 0 {
		return decimalOne
	}
	i := dateutil.DiffMonths(date, idx.start)
	if i < 0 {
		i = 0
	}
	if i >= len(idx.factors) {
		i = len(idx.factors) - 1
	}
	return idx.factors[i]
}

// ApplyGrowth adjusts amount for date under rule. TRACK_INFLATION outside the
// indexed range and CUSTOM_PERCENT with a zero rate leave amount unchanged.
func ApplyGrowth(amount decimal.Decimal, rule domain.GrowthRule, customRate decimal.Decimal, idx *InflationIndex, date dateutil.Date) decimal.Decimal {
	switch rule {
	case domain.GrowthTrackInflation:
		factor, ok := idx.At(date)
		if !ok {
			return amount
		}
		return amount.Mul(factor)
	case domain.GrowthCustomPercent:
		if customRate.IsZero() {
			return amount
		}
		elapsed := dateutil.DiffMonths(date, idx.Start())
		if elapsed <= 0 {
			return amount
		}
		return finmath.FutureValue(amount, customRate, elapsed)
	default:
		return amount
	}
}

// ToNominal converts a base-month amount into date's dollars.
func ToNominal(real decimal.Decimal, idx *InflationIndex, date dateutil.Date) decimal.Decimal {
	factor, ok := idx.At(date)
	if !ok {
		return real
	}
	return real.Mul(factor)
}

// ToReal converts an amount in date's dollars into base-month dollars.
func ToReal(nominal decimal.Decimal, idx *InflationIndex, date dateutil.Date) decimal.Decimal {
	factor, ok := idx.At(date)
	if !ok || factor.IsZero() {
		return nominal
	}
	return nominal.DivRound(factor, finmath.StatePlaces)
}
