package domain

import (
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ScenarioInput is everything one projection run needs. It is treated as
// immutable by the engine; normalization works on a copy.
type ScenarioInput struct {
	Household     Household           `json:"household" yaml:"household"`
	Assumptions   Assumptions         `json:"assumptions" yaml:"assumptions"`
	TaxProfile    TaxProfile          `json:"taxProfile" yaml:"tax_profile"`
	Incomes       []Income            `json:"incomes" yaml:"incomes"`
	Expenses      []Expense           `json:"expenses" yaml:"expenses"`
	Accounts      []InvestmentAccount `json:"accounts" yaml:"accounts"`
	Contributions []ContributionRule  `json:"contributions" yaml:"contributions"`
	Loans         []Loan              `json:"loans" yaml:"loans"`
	Goals         []Goal              `json:"goals" yaml:"goals"`
}

// Household is the projection window.
type Household struct {
	Name      string        `json:"name,omitempty" yaml:"name,omitempty"`
	StartDate dateutil.Date `json:"startDate" yaml:"start_date"`
	EndDate   dateutil.Date `json:"endDate" yaml:"end_date"`
	Currency  string        `json:"currency" yaml:"currency"`
}

// Assumptions are the scalar economic inputs. Rates ending in Pct are
// percentages (7 means 7%); InflationRate is a fraction (0.03 means 3%).
type Assumptions struct {
	InflationRate    decimal.Decimal `json:"inflationRate" yaml:"inflation_rate"`
	DefaultReturnPct decimal.Decimal `json:"defaultReturnPct" yaml:"default_return_pct"`
	DividendYieldPct decimal.Decimal `json:"dividendYieldPct,omitempty" yaml:"dividend_yield_pct,omitempty"`
}

// TaxProfile describes how the household is taxed.
type TaxProfile struct {
	State             string       `json:"state" yaml:"state"`
	FilingStatus      FilingStatus `json:"filingStatus" yaml:"filing_status"`
	TaxYear           int          `json:"taxYear" yaml:"tax_year"`
	IncludePayrollTax *bool        `json:"includePayrollTax,omitempty" yaml:"include_payroll_tax,omitempty"`
	Indexing          TaxIndexing  `json:"indexing,omitempty" yaml:"indexing,omitempty"`
	Rules             *TaxRules    `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// PayrollTaxEnabled reports the effective payroll-tax toggle (default on).
func (p TaxProfile) PayrollTaxEnabled() bool {
	return p.IncludePayrollTax == nil || *p.IncludePayrollTax
}

// TaxBracket is one band of a progressive schedule. A zero Max marks the
// top, unbounded band.
type TaxBracket struct {
	Min  decimal.Decimal `json:"min" yaml:"min"`
	Max  decimal.Decimal `json:"max" yaml:"max"`
	Rate decimal.Decimal `json:"rate" yaml:"rate"`
}

// TaxRules are detailed tax tables supplied with a scenario. Any table left
// empty falls back to the built-in values for the profile's tax year.
type TaxRules struct {
	Brackets                     map[FilingStatus][]TaxBracket    `json:"brackets,omitempty" yaml:"brackets,omitempty"`
	StandardDeduction            map[FilingStatus]decimal.Decimal `json:"standardDeduction,omitempty" yaml:"standard_deduction,omitempty"`
	SocialSecurityWageBase       decimal.Decimal                  `json:"socialSecurityWageBase,omitempty" yaml:"social_security_wage_base,omitempty"`
	SocialSecurityRate           decimal.Decimal                  `json:"socialSecurityRate,omitempty" yaml:"social_security_rate,omitempty"`
	MedicareRate                 decimal.Decimal                  `json:"medicareRate,omitempty" yaml:"medicare_rate,omitempty"`
	AdditionalMedicareRate       decimal.Decimal                  `json:"additionalMedicareRate,omitempty" yaml:"additional_medicare_rate,omitempty"`
	AdditionalMedicareThresholds map[FilingStatus]decimal.Decimal `json:"additionalMedicareThresholds,omitempty" yaml:"additional_medicare_thresholds,omitempty"`
	StateRates                   map[string]decimal.Decimal       `json:"stateRates,omitempty" yaml:"state_rates,omitempty"`
	DefaultStateRate             *decimal.Decimal                 `json:"defaultStateRate,omitempty" yaml:"default_state_rate,omitempty"`
}

// Income is a recurring or one-time inflow.
type Income struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Frequency  Frequency       `json:"frequency" yaml:"frequency"`
	StartDate  dateutil.Date   `json:"startDate" yaml:"start_date"`
	EndDate    *dateutil.Date  `json:"endDate,omitempty" yaml:"end_date,omitempty"`
	GrowthRule GrowthRule      `json:"growthRule" yaml:"growth_rule"`
	GrowthRate decimal.Decimal `json:"growthRate,omitempty" yaml:"growth_rate,omitempty"`
	Taxable    *bool           `json:"taxable,omitempty" yaml:"taxable,omitempty"`
}

// IsTaxable reports the effective taxable flag (default true).
func (i Income) IsTaxable() bool {
	return i.Taxable == nil || *i.Taxable
}

// Expense is a recurring or one-time outflow.
type Expense struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	Category   string          `json:"category,omitempty" yaml:"category,omitempty"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Frequency  Frequency       `json:"frequency" yaml:"frequency"`
	StartDate  dateutil.Date   `json:"startDate" yaml:"start_date"`
	EndDate    *dateutil.Date  `json:"endDate,omitempty" yaml:"end_date,omitempty"`
	GrowthRule GrowthRule      `json:"growthRule" yaml:"growth_rule"`
	GrowthRate decimal.Decimal `json:"growthRate,omitempty" yaml:"growth_rate,omitempty"`
}

// InvestmentAccount is a balance that earns an expected return.
type InvestmentAccount struct {
	ID                string           `json:"id" yaml:"id"`
	Name              string           `json:"name" yaml:"name"`
	Type              string           `json:"type,omitempty" yaml:"type,omitempty"`
	ExpectedReturnPct *decimal.Decimal `json:"expectedReturnPct,omitempty" yaml:"expected_return_pct,omitempty"`
	Holdings          []Holding        `json:"holdings" yaml:"holdings"`
}

// ReturnPct is the account's expected annual return in percent, or zero.
func (a InvestmentAccount) ReturnPct() decimal.Decimal {
	if a.ExpectedReturnPct == nil {
		return decimal.Zero
	}
	return *a.ExpectedReturnPct
}

// Holding is a position inside an account.
type Holding struct {
	Symbol    string           `json:"symbol" yaml:"symbol"`
	Shares    decimal.Decimal  `json:"shares" yaml:"shares"`
	AvgPrice  decimal.Decimal  `json:"avgPrice" yaml:"avg_price"`
	LastPrice *decimal.Decimal `json:"lastPrice,omitempty" yaml:"last_price,omitempty"`
}

// Price returns the last price when known, otherwise the average cost.
func (h Holding) Price() decimal.Decimal {
	if h.LastPrice != nil {
		return *h.LastPrice
	}
	return h.AvgPrice
}

// ContributionRule moves money into an account on a schedule.
type ContributionRule struct {
	ID             string          `json:"id" yaml:"id"`
	AccountID      string          `json:"accountId" yaml:"account_id"`
	Amount         decimal.Decimal `json:"amount" yaml:"amount"`
	Frequency      Frequency       `json:"frequency" yaml:"frequency"`
	StartDate      dateutil.Date   `json:"startDate" yaml:"start_date"`
	EndDate        *dateutil.Date  `json:"endDate,omitempty" yaml:"end_date,omitempty"`
	EscalationRule GrowthRule      `json:"escalationRule,omitempty" yaml:"escalation_rule,omitempty"`
	EscalationRate decimal.Decimal `json:"escalationRate,omitempty" yaml:"escalation_rate,omitempty"`
}

// Loan is an amortizing liability. AnnualRate is a fraction (0.04 = 4% APR).
type Loan struct {
	ID                  string           `json:"id" yaml:"id"`
	Name                string           `json:"name" yaml:"name"`
	Principal           decimal.Decimal  `json:"principal" yaml:"principal"`
	AnnualRate          decimal.Decimal  `json:"annualRate" yaml:"annual_rate"`
	TermMonths          int              `json:"termMonths" yaml:"term_months"`
	StartDate           dateutil.Date    `json:"startDate" yaml:"start_date"`
	PaymentOverride     *decimal.Decimal `json:"paymentOverride,omitempty" yaml:"payment_override,omitempty"`
	ExtraMonthlyPayment decimal.Decimal  `json:"extraMonthlyPayment,omitempty" yaml:"extra_monthly_payment,omitempty"`
}

// Goal is a net-worth target expressed in start-of-projection dollars.
type Goal struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount" yaml:"target_amount"`
	TargetDate   *dateutil.Date  `json:"targetDate,omitempty" yaml:"target_date,omitempty"`
	Priority     int             `json:"priority" yaml:"priority"`
}
