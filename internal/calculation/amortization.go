package calculation

import (
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
	"github.com/rgehrsitz/hpgo/pkg/finmath"
	"github.com/shopspring/decimal"
)

// AmortizationSchedule is the portion of a loan's life that falls inside a
// window. Rows are contiguous calendar months starting at First.
type AmortizationSchedule struct {
	LoanID         string
	Payment        decimal.Decimal // scheduled monthly payment including extra principal
	First          dateutil.Date   // month of Rows[0]
	OpeningBalance decimal.Decimal // balance before Rows[0]
	Rows           []domain.AmortizationRow
	TotalPayments  decimal.Decimal
	TotalPrincipal decimal.Decimal
	TotalInterest  decimal.Decimal

	loanStart dateutil.Date
}

// ScheduledPayment returns the loan's level monthly payment: the override
// when given, otherwise the standard PMT, rounded to cents, plus any extra
// monthly principal.
func ScheduledPayment(loan domain.Loan) decimal.Decimal {
	base := finmath.PMT(loan.Principal, loan.AnnualRate, loan.TermMonths)
	if loan.PaymentOverride != nil {
		base = *loan.PaymentOverride
	}
	payment := finmath.RoundMoney(base)
	if loan.ExtraMonthlyPayment.Sign() > 0 {
		payment = payment.Add(loan.ExtraMonthlyPayment)
	}
	return payment
}

// BuildAmortizationSchedule amortizes loan and keeps the rows that fall in
// [windowStart, windowEnd]. The first payment is due in the loan's start
// month. Months before the window are rolled forward without emitting rows.
// The balance is forced to zero on the final month of the term so rounding
// never leaves a residual.
func BuildAmortizationSchedule(loan domain.Loan, windowStart, windowEnd dateutil.Date) *AmortizationSchedule {
	loanStart := dateutil.StartOfMonth(loan.StartDate)
	ws := dateutil.StartOfMonth(windowStart)
	we := dateutil.StartOfMonth(windowEnd)

	s := &AmortizationSchedule{
		LoanID:    loan.ID,
		Payment:   ScheduledPayment(loan),
		loanStart: loanStart,
	}
	if loan.TermMonths <= 0 || loan.Principal.Sign() <= 0 {
		s.First = ws
		return s
	}

	rate := finmath.MonthlyRate(loan.AnnualRate)
	balance := loan.Principal
	k := 0
	month := loanStart
	for month.Before(ws) && balance.Sign() > 0 && k < loan.TermMonths {
		row := amortizeMonth(balance, rate, s.Payment, k == loan.TermMonths-1)
		balance = row.Balance
		month = dateutil.AddMonths(month, 1)
		k++
	}

	s.First = month
	s.OpeningBalance = balance
	for !month.After(we) && balance.Sign() > 0 && k < loan.TermMonths {
		row := amortizeMonth(balance, rate, s.Payment, k == loan.TermMonths-1)
		row.Month = dateutil.MonthKey(month)
		row.Date = month
		s.Rows = append(s.Rows, row)
		s.TotalPayments = s.TotalPayments.Add(row.Payment)
		s.TotalPrincipal = s.TotalPrincipal.Add(row.Principal)
		s.TotalInterest = s.TotalInterest.Add(row.Interest)
		balance = row.Balance
		month = dateutil.AddMonths(month, 1)
		k++
	}
	return s
}

// FullAmortizationSchedule amortizes loan over its whole term.
func FullAmortizationSchedule(loan domain.Loan) *AmortizationSchedule {
	end := loan.StartDate
	if loan.TermMonths > 1 {
		end = dateutil.AddMonths(loan.StartDate, loan.TermMonths-1)
	}
	return BuildAmortizationSchedule(loan, loan.StartDate, end)
}

func amortizeMonth(balance, rate, payment decimal.Decimal, final bool) domain.AmortizationRow {
	interest := finmath.RoundMoney(balance.Mul(rate))
	if final || balance.Add(interest).LessThanOrEqual(payment) {
		return domain.AmortizationRow{
			Payment:   balance.Add(interest),
			Principal: balance,
			Interest:  interest,
			Balance:   decimal.Zero,
		}
	}
	principal := payment.Sub(interest)
	if principal.Sign() < 0 {
		principal = decimal.Zero
	}
	return domain.AmortizationRow{
		Payment:   principal.Add(interest),
		Principal: principal,
		Interest:  interest,
		Balance:   balance.Sub(principal),
	}
}

// BalanceAt returns the balance at the end of date's month. The loan carries
// no balance before it starts or after it is paid off.
func (s *AmortizationSchedule) BalanceAt(date dateutil.Date) decimal.Decimal {
	if dateutil.DiffMonths(date, s.loanStart) < 0 {
		return decimal.Zero
	}
	i := dateutil.DiffMonths(date, s.First)
	switch {
	case i < 0:
		return s.OpeningBalance
	case i < len(s.Rows):
		return s.Rows[i].Balance
	case len(s.Rows) > 0:
		return s.Rows[len(s.Rows)-1].Balance
	default:
		return s.OpeningBalance
	}
}

// PaymentAt returns the payment made in date's month, zero when none.
func (s *AmortizationSchedule) PaymentAt(date dateutil.Date) decimal.Decimal {
	i := dateutil.DiffMonths(date, s.First)
	if i < 0 || i >= len(s.Rows) {
		return decimal.Zero
	}
	return s.Rows[i].Payment
}

// PaidOff reports whether the balance reaches zero inside the schedule.
func (s *AmortizationSchedule) PaidOff() bool {
	if len(s.Rows) == 0 {
		return s.OpeningBalance.IsZero()
	}
	return s.Rows[len(s.Rows)-1].Balance.IsZero()
}
