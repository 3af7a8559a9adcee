package domain

import (
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ProjectionResult is returned to callers and owned by them.
type ProjectionResult struct {
	EngineVersion string             `json:"engineVersion"`
	InputHash     string             `json:"inputHash"`
	Currency      string             `json:"currency"`
	StartDate     dateutil.Date      `json:"startDate"`
	EndDate       dateutil.Date      `json:"endDate"`
	Series        ProjectionSeries   `json:"series"`
	Monthly       []MonthlyBreakdown `json:"monthly"`
	Annual        []AnnualSummary    `json:"annual"`
	Warnings      []Warning          `json:"warnings"`
}

// FinalNetWorth returns the net worth of the last projected month.
func (r *ProjectionResult) FinalNetWorth() decimal.Decimal {
	if r == nil || len(r.Series.NetWorth) == 0 {
		return decimal.Zero
	}
	return r.Series.NetWorth[len(r.Series.NetWorth)-1]
}

// WarningsByCode filters warnings by code.
func (r *ProjectionResult) WarningsByCode(code WarningCode) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Code == code {
			out = append(out, w)
		}
	}
	return out
}

// ProjectionSeries holds parallel time series indexed like Months.
type ProjectionSeries struct {
	Months            []string          `json:"months"`
	Income            []decimal.Decimal `json:"income"`
	Expenses          []decimal.Decimal `json:"expenses"`
	Taxes             []decimal.Decimal `json:"taxes"`
	LoanPayments      []decimal.Decimal `json:"loanPayments"`
	Contributions     []decimal.Decimal `json:"contributions"`
	InvestmentReturns []decimal.Decimal `json:"investmentReturns"`
	NetCashflow       []decimal.Decimal `json:"netCashflow"`
	TotalAssets       []decimal.Decimal `json:"totalAssets"`
	TotalLiabilities  []decimal.Decimal `json:"totalLiabilities"`
	NetWorth          []decimal.Decimal `json:"netWorth"`
	Accounts          []AccountSeries   `json:"accounts"`
	Loans             []LoanSeries      `json:"loans"`
	Goals             []GoalSeries      `json:"goals"`
}

// AccountSeries is one account's month-end balance.
type AccountSeries struct {
	AccountID string            `json:"accountId"`
	Name      string            `json:"name"`
	Balance   []decimal.Decimal `json:"balance"`
}

// LoanSeries is one loan's month-end balance.
type LoanSeries struct {
	LoanID  string            `json:"loanId"`
	Name    string            `json:"name"`
	Balance []decimal.Decimal `json:"balance"`
}

// GoalSeries tracks a goal's inflation-adjusted target and how much of it
// net worth covers each month (FundedRatio 1 means fully funded).
type GoalSeries struct {
	GoalID      string            `json:"goalId"`
	Name        string            `json:"name"`
	Target      []decimal.Decimal `json:"target"`
	FundedRatio []decimal.Decimal `json:"fundedRatio"`
}

// MonthlyBreakdown is one row of the month table.
type MonthlyBreakdown struct {
	Month             string                     `json:"month"`
	Date              dateutil.Date              `json:"date"`
	Income            decimal.Decimal            `json:"income"`
	Expenses          decimal.Decimal            `json:"expenses"`
	Taxes             decimal.Decimal            `json:"taxes"`
	LoanPayments      decimal.Decimal            `json:"loanPayments"`
	Contributions     decimal.Decimal            `json:"contributions"`
	InvestmentReturns decimal.Decimal            `json:"investmentReturns"`
	NetCashflow       decimal.Decimal            `json:"netCashflow"`
	TotalAssets       decimal.Decimal            `json:"totalAssets"`
	TotalLiabilities  decimal.Decimal            `json:"totalLiabilities"`
	NetWorth          decimal.Decimal            `json:"netWorth"`
	AccountBalances   map[string]decimal.Decimal `json:"accountBalances"`
}

// AnnualSummary aggregates the months of one calendar year.
type AnnualSummary struct {
	Year              int             `json:"year"`
	Months            int             `json:"months"`
	Income            decimal.Decimal `json:"income"`
	Expenses          decimal.Decimal `json:"expenses"`
	Taxes             decimal.Decimal `json:"taxes"`
	LoanPayments      decimal.Decimal `json:"loanPayments"`
	Contributions     decimal.Decimal `json:"contributions"`
	InvestmentReturns decimal.Decimal `json:"investmentReturns"`
	NetSavings        decimal.Decimal `json:"netSavings"`
	EndNetWorth       decimal.Decimal `json:"endNetWorth"`
}

// EffectiveTaxRate is taxes over income for the year, zero without income.
func (a AnnualSummary) EffectiveTaxRate() decimal.Decimal {
	if a.Income.Sign() <= 0 {
		return decimal.Zero
	}
	return a.Taxes.DivRound(a.Income, 4)
}

// Warning is a non-fatal observation produced during a run.
type Warning struct {
	Code     WarningCode    `json:"code"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Date     *dateutil.Date `json:"date,omitempty"`
	RefID    string         `json:"refId,omitempty"`
}

// AmortizationRow is one month of a loan's life.
type AmortizationRow struct {
	Month     string          `json:"month"`
	Date      dateutil.Date   `json:"date"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}
