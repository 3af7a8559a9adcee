package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
	"github.com/rgehrsitz/hpgo/pkg/finmath"
	"github.com/shopspring/decimal"
)

// plan is everything about a run that does not depend on investment
// returns. It is built once and shared read-only by every simulation of the
// same input.
type plan struct {
	input    *domain.ScenarioInput
	index    *InflationIndex
	dates    []dateutil.Date
	accounts *AccountTracker
	loans    []*AmortizationSchedule

	// per month, indexed like dates
	income       []decimal.Decimal
	expenses     []decimal.Decimal
	taxes        []decimal.Decimal
	loanPayments []decimal.Decimal
	liabilities  []decimal.Decimal
}

// monthState is one simulated month before rounding.
type monthState struct {
	income        decimal.Decimal
	expenses      decimal.Decimal
	taxes         decimal.Decimal
	loanPayments  decimal.Decimal
	contributions decimal.Decimal
	returns       decimal.Decimal
	assets        decimal.Decimal
	liabilities   decimal.Decimal
}

// netWorth is computed from the rounded components so it matches the
// reported assets and liabilities exactly.
func (m *monthState) netWorth() decimal.Decimal {
	return finmath.RoundMoney(m.assets).Sub(finmath.RoundMoney(m.liabilities))
}

func newPlan(in *domain.ScenarioInput) (*plan, error) {
	start := dateutil.StartOfMonth(in.Household.StartDate)
	end := dateutil.StartOfMonth(in.Household.EndDate)
	index := BuildInflationIndex(start, end, in.Assumptions.InflationRate)

	accounts, err := NewAccountTracker(in.Accounts, in.Contributions)
	if err != nil {
		return nil, err
	}

	n := index.Len()
	p := &plan{
		input:        in,
		index:        index,
		dates:        make([]dateutil.Date, n),
		accounts:     accounts,
		income:       make([]decimal.Decimal, n),
		expenses:     make([]decimal.Decimal, n),
		taxes:        make([]decimal.Decimal, n),
		loanPayments: make([]decimal.Decimal, n),
		liabilities:  make([]decimal.Decimal, n),
	}
	for i := range p.dates {
		p.dates[i] = dateutil.AddMonths(start, i)
	}
	for _, loan := range in.Loans {
		p.loans = append(p.loans, BuildAmortizationSchedule(loan, start, end))
	}

	taxCalc := NewComprehensiveTaxCalculator(in.TaxProfile)
	for i, date := range p.dates {
		taxable := decimal.Zero
		for _, inc := range in.Incomes {
			amount := flowForMonth(inc.Amount, inc.Frequency, inc.StartDate, inc.EndDate, inc.GrowthRule, inc.GrowthRate, index, date)
			p.income[i] = p.income[i].Add(amount)
			if inc.IsTaxable() {
				taxable = taxable.Add(amount)
			}
		}
		for _, exp := range in.Expenses {
			p.expenses[i] = p.expenses[i].Add(flowForMonth(exp.Amount, exp.Frequency, exp.StartDate, exp.EndDate, exp.GrowthRule, exp.GrowthRate, index, date))
		}
		p.taxes[i] = taxCalc.CalculateMonthlyTaxes(taxable, p.taxFactor(taxCalc.Indexing, i))
		for _, s := range p.loans {
			p.loanPayments[i] = p.loanPayments[i].Add(s.PaymentAt(date))
			p.liabilities[i] = p.liabilities[i].Add(s.BalanceAt(date))
		}
	}
	return p, nil
}

func flowForMonth(amount decimal.Decimal, freq domain.Frequency, start dateutil.Date, end *dateutil.Date, rule domain.GrowthRule, rate decimal.Decimal, index *InflationIndex, date dateutil.Date) decimal.Decimal {
	monthly := AmountForMonth(amount, freq, start, end, date)
	if monthly.IsZero() {
		return monthly
	}
	return ApplyGrowth(monthly, rule, rate, index, date).Round(finmath.StatePlaces)
}

// taxFactor is the inflation multiplier handed to the tax calculator for
// month i. Bracket indexing moves once a year, in January; the legacy mode
// follows the month's own factor.
func (p *plan) taxFactor(mode domain.TaxIndexing, i int) decimal.Decimal {
	if mode == domain.TaxIndexingLegacySqrt {
		return p.index.Factor(i)
	}
	jan := dateutil.New(p.dates[i].Year(), 1, 1)
	return p.index.Clamped(jan)
}

// simulate walks the months in order, updating tracker in place, and hands
// each month to visit. tracker must be a fresh clone of p.accounts.
func (p *plan) simulate(ctx context.Context, tracker *AccountTracker, visit func(i int, ms *monthState)) error {
	var ms monthState
	for i, date := range p.dates {
		if err := ctx.Err(); err != nil {
			return err
		}
		tracker.BeginMonth()
		contributions := tracker.ApplyContributions(date, p.index)
		returns := tracker.ApplyReturns()
		ms = monthState{
			income:        p.income[i],
			expenses:      p.expenses[i],
			taxes:         p.taxes[i],
			loanPayments:  p.loanPayments[i],
			contributions: contributions,
			returns:       returns,
			assets:        tracker.TotalBalance(),
			liabilities:   p.liabilities[i],
		}
		visit(i, &ms)
	}
	return nil
}

// goalTarget is goal's target in nominal dollars of the month it is due,
// capped to the end of the window.
func (p *plan) goalTarget(g domain.Goal) decimal.Decimal {
	due := p.dates[len(p.dates)-1]
	if g.TargetDate != nil && g.TargetDate.Before(due) {
		due = *g.TargetDate
	}
	return finmath.RoundMoney(g.TargetAmount.Mul(p.index.Clamped(due)))
}

// project runs the deterministic projection and assembles the result.
func (p *plan) project(ctx context.Context) (*domain.ProjectionResult, error) {
	n := len(p.dates)
	in := p.input
	series := domain.ProjectionSeries{
		Months:            p.index.Months(),
		Income:            make([]decimal.Decimal, n),
		Expenses:          make([]decimal.Decimal, n),
		Taxes:             make([]decimal.Decimal, n),
		LoanPayments:      make([]decimal.Decimal, n),
		Contributions:     make([]decimal.Decimal, n),
		InvestmentReturns: make([]decimal.Decimal, n),
		NetCashflow:       make([]decimal.Decimal, n),
		TotalAssets:       make([]decimal.Decimal, n),
		TotalLiabilities:  make([]decimal.Decimal, n),
		NetWorth:          make([]decimal.Decimal, n),
		Accounts:          make([]domain.AccountSeries, len(in.Accounts)),
		Loans:             make([]domain.LoanSeries, len(in.Loans)),
		Goals:             make([]domain.GoalSeries, len(in.Goals)),
	}
	for a, acct := range in.Accounts {
		series.Accounts[a] = domain.AccountSeries{AccountID: acct.ID, Name: acct.Name, Balance: make([]decimal.Decimal, n)}
	}
	for l, loan := range in.Loans {
		series.Loans[l] = domain.LoanSeries{LoanID: loan.ID, Name: loan.Name, Balance: make([]decimal.Decimal, n)}
	}
	for g, goal := range in.Goals {
		series.Goals[g] = domain.GoalSeries{GoalID: goal.ID, Name: goal.Name, Target: make([]decimal.Decimal, n), FundedRatio: make([]decimal.Decimal, n)}
	}

	result := &domain.ProjectionResult{
		Currency:  in.Household.Currency,
		StartDate: in.Household.StartDate,
		EndDate:   in.Household.EndDate,
		Monthly:   make([]domain.MonthlyBreakdown, n),
		Warnings:  []domain.Warning{},
	}
	if in.TaxProfile.Rules == nil {
		result.Warnings = append(result.Warnings, domain.Warning{
			Code:     domain.WarningTaxRulesMissing,
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("no detailed tax rules supplied; using built-in %d tables", BuiltinTaxTable(in.TaxProfile.TaxYear).Year),
		})
	}

	tracker := p.accounts.Clone()
	err := p.simulate(ctx, tracker, func(i int, ms *monthState) {
		date := p.dates[i]
		row := domain.MonthlyBreakdown{
			Month:             series.Months[i],
			Date:              date,
			Income:            finmath.RoundMoney(ms.income),
			Expenses:          finmath.RoundMoney(ms.expenses),
			Taxes:             finmath.RoundMoney(ms.taxes),
			LoanPayments:      finmath.RoundMoney(ms.loanPayments),
			Contributions:     finmath.RoundMoney(ms.contributions),
			InvestmentReturns: finmath.RoundMoney(ms.returns),
			TotalAssets:       finmath.RoundMoney(ms.assets),
			TotalLiabilities:  finmath.RoundMoney(ms.liabilities),
			AccountBalances:   make(map[string]decimal.Decimal, tracker.Len()),
		}
		row.NetWorth = row.TotalAssets.Sub(row.TotalLiabilities)
		row.NetCashflow = row.Income.Sub(row.Expenses).Sub(row.Taxes).Sub(row.LoanPayments).
			Sub(row.Contributions).Add(row.InvestmentReturns)

		for a := 0; a < tracker.Len(); a++ {
			s := tracker.State(a)
			bal := finmath.RoundMoney(s.Balance)
			row.AccountBalances[s.ID] = bal
			series.Accounts[a].Balance[i] = bal
		}
		for l, sched := range p.loans {
			series.Loans[l].Balance[i] = finmath.RoundMoney(sched.BalanceAt(date))
		}
		for g, goal := range in.Goals {
			target := finmath.RoundMoney(goal.TargetAmount.Mul(p.index.Factor(i)))
			series.Goals[g].Target[i] = target
			series.Goals[g].FundedRatio[i] = fundedRatio(row.NetWorth, target)
		}

		series.Income[i] = row.Income
		series.Expenses[i] = row.Expenses
		series.Taxes[i] = row.Taxes
		series.LoanPayments[i] = row.LoanPayments
		series.Contributions[i] = row.Contributions
		series.InvestmentReturns[i] = row.InvestmentReturns
		series.NetCashflow[i] = row.NetCashflow
		series.TotalAssets[i] = row.TotalAssets
		series.TotalLiabilities[i] = row.TotalLiabilities
		series.NetWorth[i] = row.NetWorth
		result.Monthly[i] = row

		if row.NetCashflow.Sign() < 0 {
			d := date
			result.Warnings = append(result.Warnings, domain.Warning{
				Code:     domain.WarningDeficitMonth,
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("net cashflow of %s in %s", row.NetCashflow.StringFixed(2), row.Month),
				Date:     &d,
			})
		}
	})
	if err != nil {
		return nil, err
	}

	result.Series = series
	result.Annual = summarizeAnnual(result.Monthly)
	result.Warnings = append(result.Warnings, taxDragWarnings(result.Annual, p.dates)...)
	result.Warnings = append(result.Warnings, p.goalWarnings(result.FinalNetWorth())...)
	return result, nil
}

func fundedRatio(netWorth, target decimal.Decimal) decimal.Decimal {
	if target.Sign() <= 0 {
		return decimalOne
	}
	if netWorth.Sign() <= 0 {
		return decimal.Zero
	}
	return netWorth.DivRound(target, 4)
}

// summarizeAnnual groups rows by calendar year. Flows are sums of the
// reported monthly values; EndNetWorth is the last month's.
func summarizeAnnual(rows []domain.MonthlyBreakdown) []domain.AnnualSummary {
	var out []domain.AnnualSummary
	for _, row := range rows {
		year := row.Date.Year()
		if len(out) == 0 || out[len(out)-1].Year != year {
			out = append(out, domain.AnnualSummary{Year: year})
		}
		a := &out[len(out)-1]
		a.Months++
		a.Income = a.Income.Add(row.Income)
		a.Expenses = a.Expenses.Add(row.Expenses)
		a.Taxes = a.Taxes.Add(row.Taxes)
		a.LoanPayments = a.LoanPayments.Add(row.LoanPayments)
		a.Contributions = a.Contributions.Add(row.Contributions)
		a.InvestmentReturns = a.InvestmentReturns.Add(row.InvestmentReturns)
		a.NetSavings = a.NetSavings.Add(row.NetCashflow)
		a.EndNetWorth = row.NetWorth
	}
	return out
}

func taxDragWarnings(annual []domain.AnnualSummary, dates []dateutil.Date) []domain.Warning {
	var out []domain.Warning
	for _, a := range annual {
		if a.Income.Sign() <= 0 || a.Taxes.LessThanOrEqual(a.Income.Mul(HighTaxDragThreshold)) {
			continue
		}
		var date *dateutil.Date
		for _, d := range dates {
			if d.Year() == a.Year {
				date = &d
			}
		}
		out = append(out, domain.Warning{
			Code:     domain.WarningHighTaxDrag,
			Severity: domain.SeverityWarn,
			Message: fmt.Sprintf("%d taxes are %s%% of income",
				a.Year, a.EffectiveTaxRate().Mul(hundred).StringFixed(1)),
			Date: date,
		})
	}
	return out
}

func (p *plan) goalWarnings(final decimal.Decimal) []domain.Warning {
	var out []domain.Warning
	last := p.dates[len(p.dates)-1]
	for _, g := range p.input.Goals {
		target := p.goalTarget(g)
		if final.GreaterThanOrEqual(target) {
			continue
		}
		severity := domain.SeverityWarn
		if g.Priority == 1 {
			severity = domain.SeverityError
		}
		due := last
		if g.TargetDate != nil {
			due = *g.TargetDate
		}
		out = append(out, domain.Warning{
			Code:     domain.WarningGoalShortfall,
			Severity: severity,
			Message: fmt.Sprintf("goal %q short by %s (target %s, final net worth %s)",
				g.Name, target.Sub(final).StringFixed(2), target.StringFixed(2), final.StringFixed(2)),
			Date:  &due,
			RefID: g.ID,
		})
	}
	return out
}
