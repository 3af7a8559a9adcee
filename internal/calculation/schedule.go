package calculation

import (
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
	"github.com/rgehrsitz/hpgo/pkg/finmath"
	"github.com/shopspring/decimal"
)

// annualOccurrences is how many times a frequency pays in a year. ONE_TIME is
// absent on purpose: it is never annualized.
var annualOccurrences = map[domain.Frequency]decimal.Decimal{
	domain.FrequencyMonthly:  decimal.NewFromInt(12),
	domain.FrequencyBiweekly: decimal.NewFromInt(26),
	domain.FrequencyWeekly:   decimal.NewFromInt(52),
	domain.FrequencyAnnual:   decimal.NewFromInt(1),
}

// NormalizeToMonthly converts a per-period amount to its monthly equivalent.
// ONE_TIME amounts are returned as-is; they are applied once, in full.
func NormalizeToMonthly(amount decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	switch freq {
	case domain.FrequencyMonthly, domain.FrequencyOneTime:
		return amount
	case domain.FrequencyAnnual:
		return amount.DivRound(decimalTwelve, finmath.StatePlaces)
	}
	n, ok := annualOccurrences[freq]
	if !ok {
		return amount
	}
	return amount.Mul(n).DivRound(decimalTwelve, finmath.StatePlaces)
}

// MonthlyToFrequency is the inverse of NormalizeToMonthly.
func MonthlyToFrequency(monthly decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	switch freq {
	case domain.FrequencyMonthly, domain.FrequencyOneTime:
		return monthly
	case domain.FrequencyAnnual:
		return monthly.Mul(decimalTwelve)
	}
	n, ok := annualOccurrences[freq]
	if !ok {
		return monthly
	}
	return monthly.Mul(decimalTwelve).DivRound(n, finmath.StatePlaces)
}

// AmountForMonth returns the monthly amount a scheduled item contributes to
// the month containing date: the normalized amount while active, the full
// amount in the start month for ONE_TIME items, and zero otherwise.
func AmountForMonth(amount decimal.Decimal, freq domain.Frequency, start dateutil.Date, end *dateutil.Date, date dateutil.Date) decimal.Decimal {
	if freq == domain.FrequencyOneTime {
		if dateutil.DiffMonths(date, start) == 0 {
			return amount
		}
		return decimal.Zero
	}
	if !dateutil.IsMonthInPeriod(date, start, end) {
		return decimal.Zero
	}
	return NormalizeToMonthly(amount, freq)
}
