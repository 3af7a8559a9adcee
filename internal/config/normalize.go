package config

import "github.com/rgehrsitz/hpgo/internal/domain"

// DefaultCurrency is used when a scenario names none.
const DefaultCurrency = "USD"

// Normalize returns a deep copy of in with defaults filled. The caller's
// value is never modified.
func Normalize(in *domain.ScenarioInput) *domain.ScenarioInput {
	out := Clone(in)
	if out == nil {
		return nil
	}

	if out.Household.Currency == "" {
		out.Household.Currency = DefaultCurrency
	}
	if out.TaxProfile.FilingStatus == "" {
		out.TaxProfile.FilingStatus = domain.FilingSingle
	}
	if out.TaxProfile.TaxYear == 0 && !out.Household.StartDate.IsZero() {
		out.TaxProfile.TaxYear = out.Household.StartDate.Year()
	}
	if out.TaxProfile.Indexing == "" {
		out.TaxProfile.Indexing = domain.TaxIndexingBrackets
	}

	for i := range out.Incomes {
		inc := &out.Incomes[i]
		inc.GrowthRule = defaultGrowth(inc.GrowthRule)
		inc.Frequency = defaultFrequency(inc.Frequency)
	}
	for i := range out.Expenses {
		exp := &out.Expenses[i]
		exp.GrowthRule = defaultGrowth(exp.GrowthRule)
		exp.Frequency = defaultFrequency(exp.Frequency)
	}
	for i := range out.Contributions {
		c := &out.Contributions[i]
		c.EscalationRule = defaultGrowth(c.EscalationRule)
		c.Frequency = defaultFrequency(c.Frequency)
	}
	for i := range out.Accounts {
		acct := &out.Accounts[i]
		if acct.ExpectedReturnPct == nil {
			r := out.Assumptions.DefaultReturnPct
			acct.ExpectedReturnPct = &r
		}
		for j := range acct.Holdings {
			h := &acct.Holdings[j]
			if h.LastPrice == nil {
				p := h.AvgPrice
				h.LastPrice = &p
			}
		}
	}
	return out
}

func defaultGrowth(g domain.GrowthRule) domain.GrowthRule {
	if g == "" {
		return domain.GrowthNone
	}
	return g
}

func defaultFrequency(f domain.Frequency) domain.Frequency {
	if f == "" {
		return domain.FrequencyMonthly
	}
	return f
}

// Clone deep-copies a scenario, including every slice, map and pointer.
func Clone(in *domain.ScenarioInput) *domain.ScenarioInput {
	if in == nil {
		return nil
	}
	out := *in
	out.TaxProfile.IncludePayrollTax = clonePtr(in.TaxProfile.IncludePayrollTax)
	out.TaxProfile.Rules = cloneRules(in.TaxProfile.Rules)

	out.Incomes = cloneSlice(in.Incomes)
	for i := range out.Incomes {
		out.Incomes[i].EndDate = clonePtr(in.Incomes[i].EndDate)
		out.Incomes[i].Taxable = clonePtr(in.Incomes[i].Taxable)
	}
	out.Expenses = cloneSlice(in.Expenses)
	for i := range out.Expenses {
		out.Expenses[i].EndDate = clonePtr(in.Expenses[i].EndDate)
	}
	out.Accounts = cloneSlice(in.Accounts)
	for i := range out.Accounts {
		out.Accounts[i].ExpectedReturnPct = clonePtr(in.Accounts[i].ExpectedReturnPct)
		out.Accounts[i].Holdings = cloneSlice(in.Accounts[i].Holdings)
		for j := range out.Accounts[i].Holdings {
			out.Accounts[i].Holdings[j].LastPrice = clonePtr(in.Accounts[i].Holdings[j].LastPrice)
		}
	}
	out.Contributions = cloneSlice(in.Contributions)
	for i := range out.Contributions {
		out.Contributions[i].EndDate = clonePtr(in.Contributions[i].EndDate)
	}
	out.Loans = cloneSlice(in.Loans)
	for i := range out.Loans {
		out.Loans[i].PaymentOverride = clonePtr(in.Loans[i].PaymentOverride)
	}
	out.Goals = cloneSlice(in.Goals)
	for i := range out.Goals {
		out.Goals[i].TargetDate = clonePtr(in.Goals[i].TargetDate)
	}
	return &out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneRules(r *domain.TaxRules) *domain.TaxRules {
	if r == nil {
		return nil
	}
	out := *r
	out.Brackets = make(map[domain.FilingStatus][]domain.TaxBracket, len(r.Brackets))
	for k, v := range r.Brackets {
		out.Brackets[k] = cloneSlice(v)
	}
	if r.Brackets == nil {
		out.Brackets = nil
	}
	out.StandardDeduction = cloneMap(r.StandardDeduction)
	out.AdditionalMedicareThresholds = cloneMap(r.AdditionalMedicareThresholds)
	out.StateRates = cloneMap(r.StateRates)
	out.DefaultStateRate = clonePtr(r.DefaultStateRate)
	return &out
}
