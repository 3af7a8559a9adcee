package calculation

import (
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
	"github.com/rgehrsitz/hpgo/pkg/finmath"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AccountState is one account's running balance and the flows of the
// current month.
type AccountState struct {
	ID                 string
	Name               string
	Balance            decimal.Decimal
	PeriodContribution decimal.Decimal
	PeriodReturn       decimal.Decimal
	MonthlyRate        decimal.Decimal
}

// contributionTarget is a contribution rule resolved to an account slot.
type contributionTarget struct {
	rule    domain.ContributionRule
	account int
}

// AccountTracker owns the account states of one run. Accounts are addressed
// by their position in the scenario; contribution rules are resolved to
// positions once, when the tracker is built.
type AccountTracker struct {
	states  []AccountState
	targets []contributionTarget
}

// InitialBalance values holdings at their last price, or average cost when
// no last price is known.
func InitialBalance(holdings []domain.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.Shares.Mul(h.Price()))
	}
	return total
}

// NewAccountTracker builds the initial states. It fails when a contribution
// rule names an account that does not exist.
func NewAccountTracker(accounts []domain.InvestmentAccount, rules []domain.ContributionRule) (*AccountTracker, error) {
	t := &AccountTracker{states: make([]AccountState, len(accounts))}
	slots := make(map[string]int, len(accounts))
	for i, a := range accounts {
		t.states[i] = AccountState{
			ID:          a.ID,
			Name:        a.Name,
			Balance:     InitialBalance(a.Holdings),
			MonthlyRate: monthlyReturnRate(a.ReturnPct()),
		}
		slots[a.ID] = i
	}
	for _, r := range rules {
		slot, ok := slots[r.AccountID]
		if !ok {
			return nil, fmt.Errorf("contribution %s references unknown account %q", r.ID, r.AccountID)
		}
		t.targets = append(t.targets, contributionTarget{rule: r, account: slot})
	}
	return t, nil
}

func monthlyReturnRate(annualPct decimal.Decimal) decimal.Decimal {
	return finmath.AnnualToMonthlyRate(annualPct.Div(hundred))
}

// Clone returns an independent copy of the balances. Resolved contribution
// rules are shared; they are never modified after construction.
func (t *AccountTracker) Clone() *AccountTracker {
	states := make([]AccountState, len(t.states))
	copy(states, t.states)
	return &AccountTracker{states: states, targets: t.targets}
}

// SetAnnualReturn overrides the expected annual return, in percent, of the
// account in slot i.
func (t *AccountTracker) SetAnnualReturn(i int, pct decimal.Decimal) {
	t.states[i].MonthlyRate = monthlyReturnRate(pct)
}

// Len is the number of accounts.
func (t *AccountTracker) Len() int { return len(t.states) }

// State returns a copy of the account in slot i.
func (t *AccountTracker) State(i int) AccountState { return t.states[i] }

// BeginMonth clears the per-month counters.
func (t *AccountTracker) BeginMonth() {
	for i := range t.states {
		t.states[i].PeriodContribution = decimal.Zero
		t.states[i].PeriodReturn = decimal.Zero
	}
}

// ApplyContributions credits every rule active in date's month to its
// account and returns the total contributed. Escalating rules grow the same
// way incomes do.
func (t *AccountTracker) ApplyContributions(date dateutil.Date, idx *InflationIndex) decimal.Decimal {
	total := decimal.Zero
	for _, c := range t.targets {
		amount := AmountForMonth(c.rule.Amount, c.rule.Frequency, c.rule.StartDate, c.rule.EndDate, date)
		if amount.IsZero() {
			continue
		}
		amount = ApplyGrowth(amount, c.rule.EscalationRule, c.rule.EscalationRate, idx, date).Round(finmath.StatePlaces)
		s := &t.states[c.account]
		s.Balance = s.Balance.Add(amount)
		s.PeriodContribution = s.PeriodContribution.Add(amount)
		total = total.Add(amount)
	}
	return total
}

// ApplyReturns grows every balance by its monthly rate and returns the total
// earned. It must run after ApplyContributions so this month's deposits
// compound.
func (t *AccountTracker) ApplyReturns() decimal.Decimal {
	total := decimal.Zero
	for i := range t.states {
		s := &t.states[i]
		if s.MonthlyRate.IsZero() || s.Balance.IsZero() {
			continue
		}
		earned := s.Balance.Mul(s.MonthlyRate).Round(finmath.StatePlaces)
		s.Balance = s.Balance.Add(earned)
		s.PeriodReturn = s.PeriodReturn.Add(earned)
		total = total.Add(earned)
	}
	return total
}

// TotalBalance sums all account balances.
func (t *AccountTracker) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, s := range t.states {
		total = total.Add(s.Balance)
	}
	return total
}
