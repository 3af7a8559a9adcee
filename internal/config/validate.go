package config

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Prepare normalizes in and validates the result. The engine never runs on
// anything Prepare rejects.
func Prepare(in *domain.ScenarioInput) (*domain.ScenarioInput, error) {
	if in == nil {
		return nil, invalid("input", "scenario is required")
	}
	out := Normalize(in)
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks a normalized scenario and returns the first violation.
func Validate(in *domain.ScenarioInput) error {
	if in == nil {
		return invalid("input", "scenario is required")
	}
	if err := validateHousehold(in.Household); err != nil {
		return err
	}
	if err := validateAssumptions(in.Assumptions); err != nil {
		return err
	}
	if err := validateTaxProfile(in.TaxProfile); err != nil {
		return err
	}

	ids := newIDSet()
	for i, inc := range in.Incomes {
		field := fmt.Sprintf("incomes[%d]", i)
		if err := ids.add(field, "income", inc.ID); err != nil {
			return err
		}
		if err := checkFlow(field, inc.Amount, inc.Frequency, "growthRule", inc.GrowthRule, inc.StartDate, inc.EndDate); err != nil {
			return err
		}
	}
	for i, exp := range in.Expenses {
		field := fmt.Sprintf("expenses[%d]", i)
		if err := ids.add(field, "expense", exp.ID); err != nil {
			return err
		}
		if err := checkFlow(field, exp.Amount, exp.Frequency, "growthRule", exp.GrowthRule, exp.StartDate, exp.EndDate); err != nil {
			return err
		}
	}

	accounts := make(map[string]bool, len(in.Accounts))
	for i, acct := range in.Accounts {
		field := fmt.Sprintf("accounts[%d]", i)
		if err := ids.add(field, "account", acct.ID); err != nil {
			return err
		}
		accounts[acct.ID] = true
		if acct.ExpectedReturnPct != nil && acct.ExpectedReturnPct.LessThanOrEqual(decimal.NewFromInt(-100)) {
			return invalid(field+".expectedReturnPct", "must be greater than -100")
		}
		for j, h := range acct.Holdings {
			hf := fmt.Sprintf("%s.holdings[%d]", field, j)
			if h.Shares.Sign() < 0 {
				return invalid(hf+".shares", "must not be negative")
			}
			if h.AvgPrice.Sign() < 0 {
				return invalid(hf+".avgPrice", "must not be negative")
			}
			if h.LastPrice != nil && h.LastPrice.Sign() < 0 {
				return invalid(hf+".lastPrice", "must not be negative")
			}
		}
	}

	for i, c := range in.Contributions {
		field := fmt.Sprintf("contributions[%d]", i)
		if err := ids.add(field, "contribution", c.ID); err != nil {
			return err
		}
		if c.AccountID == "" {
			return invalid(field+".accountId", "is required")
		}
		if !accounts[c.AccountID] {
			return invalid(field+".accountId", "references unknown account %q", c.AccountID)
		}
		if err := checkFlow(field, c.Amount, c.Frequency, "escalationRule", c.EscalationRule, c.StartDate, c.EndDate); err != nil {
			return err
		}
	}

	for i, loan := range in.Loans {
		field := fmt.Sprintf("loans[%d]", i)
		if err := ids.add(field, "loan", loan.ID); err != nil {
			return err
		}
		if loan.Principal.Sign() < 0 {
			return invalid(field+".principal", "must not be negative")
		}
		if loan.AnnualRate.Sign() < 0 {
			return invalid(field+".annualRate", "must not be negative")
		}
		if loan.TermMonths <= 0 {
			return invalid(field+".termMonths", "must be positive, got %d", loan.TermMonths)
		}
		if loan.StartDate.IsZero() {
			return invalid(field+".startDate", "is required")
		}
		if loan.PaymentOverride != nil && loan.PaymentOverride.Sign() < 0 {
			return invalid(field+".paymentOverride", "must not be negative")
		}
		if loan.ExtraMonthlyPayment.Sign() < 0 {
			return invalid(field+".extraMonthlyPayment", "must not be negative")
		}
	}

	for i, g := range in.Goals {
		field := fmt.Sprintf("goals[%d]", i)
		if err := ids.add(field, "goal", g.ID); err != nil {
			return err
		}
		if g.TargetAmount.Sign() < 0 {
			return invalid(field+".targetAmount", "must not be negative")
		}
		if g.Priority < 0 {
			return invalid(field+".priority", "must not be negative")
		}
	}
	return nil
}

func validateHousehold(h domain.Household) error {
	if h.StartDate.IsZero() {
		return invalid("household.startDate", "is required")
	}
	if h.EndDate.IsZero() {
		return invalid("household.endDate", "is required")
	}
	if h.EndDate.Before(h.StartDate) {
		return invalid("household.endDate", "%s is before start date %s", h.EndDate, h.StartDate)
	}
	if len(h.Currency) != 3 {
		return invalid("household.currency", "must be a 3-letter code, got %q", h.Currency)
	}
	return nil
}

func validateAssumptions(a domain.Assumptions) error {
	if a.InflationRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return invalid("assumptions.inflationRate", "must be greater than -1")
	}
	if a.DefaultReturnPct.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return invalid("assumptions.defaultReturnPct", "must be greater than -100")
	}
	if a.DividendYieldPct.Sign() < 0 {
		return invalid("assumptions.dividendYieldPct", "must not be negative")
	}
	return nil
}

func validateTaxProfile(p domain.TaxProfile) error {
	if !p.FilingStatus.Valid() {
		return invalid("taxProfile.filingStatus", "unknown filing status %q", p.FilingStatus)
	}
	if !p.Indexing.Valid() {
		return invalid("taxProfile.indexing", "unknown indexing mode %q", p.Indexing)
	}
	if p.TaxYear < 1900 || p.TaxYear > 2200 {
		return invalid("taxProfile.taxYear", "out of range: %d", p.TaxYear)
	}
	if p.Rules == nil {
		return nil
	}
	for status, brackets := range p.Rules.Brackets {
		if !status.Valid() {
			return invalid("taxProfile.rules.brackets", "unknown filing status %q", status)
		}
		for i, b := range brackets {
			field := fmt.Sprintf("taxProfile.rules.brackets[%s][%d]", status, i)
			if b.Rate.Sign() < 0 || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
				return invalid(field+".rate", "must be between 0 and 1")
			}
			if !b.Max.IsZero() && b.Max.LessThanOrEqual(b.Min) {
				return invalid(field+".max", "must exceed min")
			}
			if i > 0 && !b.Min.Equal(brackets[i-1].Max) {
				return invalid(field+".min", "must equal the previous bracket's max")
			}
		}
	}
	return nil
}

func checkFlow(field string, amount decimal.Decimal, freq domain.Frequency, ruleField string, rule domain.GrowthRule, start dateutil.Date, end *dateutil.Date) error {
	if amount.Sign() < 0 {
		return invalid(field+".amount", "must not be negative")
	}
	if !freq.Valid() {
		return invalid(field+".frequency", "unknown frequency %q", freq)
	}
	if !rule.Valid() {
		return invalid(field+"."+ruleField, "unknown growth rule %q", rule)
	}
	if start.IsZero() {
		return invalid(field+".startDate", "is required")
	}
	if end != nil && end.Before(start) {
		return invalid(field+".endDate", "%s is before start date %s", end, start)
	}
	return nil
}

type idSet map[string]string

func newIDSet() idSet { return idSet{} }

// add enforces a present identifier unique within its collection.
func (s idSet) add(field, kind, id string) error {
	if id == "" {
		return invalid(field+".id", "%s id is required", kind)
	}
	key := kind + "/" + id
	if prev, ok := s[key]; ok {
		return invalid(field+".id", "duplicate %s id %q (also %s)", kind, id, prev)
	}
	s[key] = field
	return nil
}
