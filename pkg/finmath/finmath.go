// Package finmath holds the numeric helpers shared by the projection engine:
// rounding, compounding, present/future value, loan payments and rate
// conversion. Money is carried as decimal.Decimal throughout.
package finmath

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// MoneyPlaces is the precision of reported currency amounts.
	MoneyPlaces = 2
	// StatePlaces bounds the precision of running balances so repeated
	// multiplication does not grow decimal coefficients without limit.
	StatePlaces = 10
	// RatePlaces is the precision used for rates and compounded factors.
	RatePlaces = 16
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// Round rounds half away from zero to the given number of places.
func Round(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// RoundMoney rounds to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// RoundFloat rounds half away from zero. NaN and ±Inf round to 0 instead of
// propagating into downstream sums.
func RoundFloat(f float64, places int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	scale := math.Pow(10, float64(places))
	return math.Round(f*scale) / scale
}

// FromFloat converts a float to decimal, mapping non-finite values to zero.
func FromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// PowInt raises base to a non-negative integer power by squaring, keeping
// RatePlaces of precision at every step.
func PowInt(base decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return one
	}
	result := one
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b).Round(RatePlaces)
		}
		n >>= 1
		if n > 0 {
			b = b.Mul(b).Round(RatePlaces)
		}
	}
	return result
}

// Compound returns principal × (1 + rate)^periods.
func Compound(principal, rate decimal.Decimal, periods int) decimal.Decimal {
	return principal.Mul(PowInt(one.Add(rate), periods))
}

// FutureValue compounds a present amount at annualRate/12 for the given months.
func FutureValue(presentValue, annualRate decimal.Decimal, months int) decimal.Decimal {
	return Compound(presentValue, MonthlyRate(annualRate), months)
}

// PresentValue discounts a future amount at annualRate/12 for the given months.
func PresentValue(futureValue, annualRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 || annualRate.IsZero() {
		return futureValue
	}
	factor := PowInt(one.Add(MonthlyRate(annualRate)), months)
	return futureValue.DivRound(factor, RatePlaces)
}

// MonthlyRate is the nominal monthly rate annualRate/12.
func MonthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.DivRound(twelve, RatePlaces)
}

// PMT returns the level monthly payment that amortizes principal over
// termMonths at annualRate (nominal, compounded monthly). A zero rate
// divides the principal evenly.
func PMT(principal, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 || principal.Sign() <= 0 {
		return decimal.Zero
	}
	term := decimal.NewFromInt(int64(termMonths))
	if annualRate.IsZero() {
		return principal.DivRound(term, RatePlaces)
	}
	r := MonthlyRate(annualRate)
	growth := PowInt(one.Add(r), termMonths)
	// P·r·(1+r)^n / ((1+r)^n − 1)
	return principal.Mul(r).Mul(growth).DivRound(growth.Sub(one), RatePlaces)
}

// AnnualToMonthlyRate converts an effective annual rate to the equivalent
// effective monthly rate, (1+annual)^(1/12) − 1. Rates at or below −100%
// are floored to −100%.
func AnnualToMonthlyRate(annual decimal.Decimal) decimal.Decimal {
	a := annual.InexactFloat64()
	if a <= -1 {
		return one.Neg()
	}
	return FromFloat(math.Pow(1+a, 1.0/12) - 1).Round(RatePlaces)
}

// Clamp limits d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat limits v to [lo, hi]; NaN clamps to lo.
func ClampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sum adds a list of decimals.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
