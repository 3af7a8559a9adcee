package calculation

import (
	"math"
	"strings"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/pkg/finmath"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal brackets and standard deductions are the published 2024 and 2025
//    tables for SINGLE, MFJ and HOH. Other tax years use the nearest table.
//
// 2. Monthly taxes annualize the month's income, compute a full year of tax
//    and divide by 12. There is no bracket creep within a year: a month with a
//    one-time bonus is taxed as if it recurred all year.
//
// 3. Under BRACKETS indexing, thresholds, the standard deduction and the
//    Social Security wage base grow with the inflation factor of January of
//    each year. Additional Medicare thresholds are fixed by statute and are
//    never indexed.
//
// 4. State tax is a flat approximate effective rate on gross taxable income.
//
// 5. Payroll tax treats all taxable income as wages.

// HighTaxDragThreshold is the share of a year's income paid in taxes above
// which HIGH_TAX_DRAG is raised.
var HighTaxDragThreshold = decimal.RequireFromString("0.35")

// TaxTable is one year's federal, payroll and state parameters.
type TaxTable struct {
	Year                         int
	Brackets                     map[domain.FilingStatus][]domain.TaxBracket
	StandardDeduction            map[domain.FilingStatus]decimal.Decimal
	SocialSecurityWageBase       decimal.Decimal
	SocialSecurityRate           decimal.Decimal
	MedicareRate                 decimal.Decimal
	AdditionalMedicareRate       decimal.Decimal
	AdditionalMedicareThresholds map[domain.FilingStatus]decimal.Decimal
	StateRates                   map[string]decimal.Decimal
	DefaultStateRate             decimal.Decimal
}

func mustDecimal(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var federalRates = []string{"0.10", "0.12", "0.22", "0.24", "0.32", "0.35", "0.37"}

// brackets builds a contiguous schedule from the upper bounds of all but the
// top band.
func brackets(bounds ...int64) []domain.TaxBracket {
	out := make([]domain.TaxBracket, 0, len(bounds)+1)
	lo := decimal.Zero
	for i, rate := range federalRates {
		b := domain.TaxBracket{Min: lo, Rate: mustDecimal(rate)}
		if i < len(bounds) {
			b.Max = decimal.NewFromInt(bounds[i])
			lo = b.Max
		}
		out = append(out, b)
	}
	return out
}

// stateRates are approximate effective rates. States without a wage income
// tax are listed with zero.
var stateRates = map[string]decimal.Decimal{
	"AK": decimal.Zero, "FL": decimal.Zero, "NV": decimal.Zero, "NH": decimal.Zero,
	"SD": decimal.Zero, "TN": decimal.Zero, "TX": decimal.Zero, "WA": decimal.Zero,
	"WY": decimal.Zero,
	"AL": mustDecimal("0.05"), "AZ": mustDecimal("0.025"), "AR": mustDecimal("0.044"), "CA": mustDecimal("0.093"),
	"CO": mustDecimal("0.044"), "CT": mustDecimal("0.05"), "DE": mustDecimal("0.055"), "DC": mustDecimal("0.0675"),
	"GA": mustDecimal("0.0539"), "HI": mustDecimal("0.0725"), "ID": mustDecimal("0.058"), "IL": mustDecimal("0.0495"),
	"IN": mustDecimal("0.0305"), "IA": mustDecimal("0.038"), "KS": mustDecimal("0.0558"), "KY": mustDecimal("0.04"),
	"LA": mustDecimal("0.03"), "ME": mustDecimal("0.0675"), "MD": mustDecimal("0.0475"), "MA": mustDecimal("0.05"),
	"MI": mustDecimal("0.0425"), "MN": mustDecimal("0.068"), "MS": mustDecimal("0.044"), "MO": mustDecimal("0.047"),
	"MT": mustDecimal("0.059"), "NE": mustDecimal("0.052"), "NJ": mustDecimal("0.0637"), "NM": mustDecimal("0.049"),
	"NY": mustDecimal("0.0685"), "NC": mustDecimal("0.0425"), "ND": mustDecimal("0.0195"), "OH": mustDecimal("0.035"),
	"OK": mustDecimal("0.0475"), "OR": mustDecimal("0.0875"), "PA": mustDecimal("0.0307"), "RI": mustDecimal("0.0475"),
	"SC": mustDecimal("0.062"), "UT": mustDecimal("0.0455"), "VT": mustDecimal("0.066"), "VA": mustDecimal("0.0575"),
	"WV": mustDecimal("0.0482"), "WI": mustDecimal("0.053"),
}

var defaultStateRate = mustDecimal("0.05")

var builtinTaxTables = map[int]TaxTable{
	2024: {
		Year: 2024,
		Brackets: map[domain.FilingStatus][]domain.TaxBracket{
			domain.FilingSingle: brackets(11600, 47150, 100525, 191950, 243725, 609350),
			domain.FilingMFJ:    brackets(23200, 94300, 201050, 383900, 487450, 731200),
			domain.FilingHOH:    brackets(16550, 63100, 100500, 191950, 243700, 609350),
		},
		StandardDeduction: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle: decimal.NewFromInt(14600),
			domain.FilingMFJ:    decimal.NewFromInt(29200),
			domain.FilingHOH:    decimal.NewFromInt(21900),
		},
		SocialSecurityWageBase: decimal.NewFromInt(168600),
	},
	2025: {
		Year: 2025,
		Brackets: map[domain.FilingStatus][]domain.TaxBracket{
			domain.FilingSingle: brackets(11925, 48475, 103350, 197300, 250525, 626350),
			domain.FilingMFJ:    brackets(23850, 96950, 206700, 394600, 501050, 751600),
			domain.FilingHOH:    brackets(17000, 64850, 103350, 197300, 250500, 626350),
		},
		StandardDeduction: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle: decimal.NewFromInt(15000),
			domain.FilingMFJ:    decimal.NewFromInt(30000),
			domain.FilingHOH:    decimal.NewFromInt(22500),
		},
		SocialSecurityWageBase: decimal.NewFromInt(176100),
	},
}

// BuiltinTaxTable returns the table for year, or the nearest year that has
// one.
func BuiltinTaxTable(year int) TaxTable {
	best, bestDist := 0, math.MaxInt
	for y := range builtinTaxTables {
		dist := y - year
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist || (dist == bestDist && y > best) {
			best, bestDist = y, dist
		}
	}
	t := builtinTaxTables[best]
	t.SocialSecurityRate = mustDecimal("0.062")
	t.MedicareRate = mustDecimal("0.0145")
	t.AdditionalMedicareRate = mustDecimal("0.009")
	t.AdditionalMedicareThresholds = map[domain.FilingStatus]decimal.Decimal{
		domain.FilingSingle: decimal.NewFromInt(200000),
		domain.FilingMFJ:    decimal.NewFromInt(250000),
		domain.FilingHOH:    decimal.NewFromInt(200000),
	}
	t.StateRates = stateRates
	t.DefaultStateRate = defaultStateRate
	return t
}

// withRules overlays scenario-supplied tables. Empty fields keep the
// built-in value.
func (t TaxTable) withRules(r *domain.TaxRules) TaxTable {
	if r == nil {
		return t
	}
	if len(r.Brackets) > 0 {
		merged := make(map[domain.FilingStatus][]domain.TaxBracket, len(t.Brackets))
		for k, v := range t.Brackets {
			merged[k] = v
		}
		for k, v := range r.Brackets {
			if len(v) > 0 {
				merged[k] = v
			}
		}
		t.Brackets = merged
	}
	t.StandardDeduction = overlay(t.StandardDeduction, r.StandardDeduction)
	t.AdditionalMedicareThresholds = overlay(t.AdditionalMedicareThresholds, r.AdditionalMedicareThresholds)
	if len(r.StateRates) > 0 {
		merged := make(map[string]decimal.Decimal, len(t.StateRates)+len(r.StateRates))
		for k, v := range t.StateRates {
			merged[k] = v
		}
		for k, v := range r.StateRates {
			merged[strings.ToUpper(k)] = v
		}
		t.StateRates = merged
	}
	if r.DefaultStateRate != nil {
		t.DefaultStateRate = *r.DefaultStateRate
	}
	if !r.SocialSecurityWageBase.IsZero() {
		t.SocialSecurityWageBase = r.SocialSecurityWageBase
	}
	if !r.SocialSecurityRate.IsZero() {
		t.SocialSecurityRate = r.SocialSecurityRate
	}
	if !r.MedicareRate.IsZero() {
		t.MedicareRate = r.MedicareRate
	}
	if !r.AdditionalMedicareRate.IsZero() {
		t.AdditionalMedicareRate = r.AdditionalMedicareRate
	}
	return t
}

func overlay(base, extra map[domain.FilingStatus]decimal.Decimal) map[domain.FilingStatus]decimal.Decimal {
	if len(extra) == 0 {
		return base
	}
	merged := make(map[domain.FilingStatus]decimal.Decimal, len(base))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// FederalTaxCalculator handles federal income tax calculations
type FederalTaxCalculator struct {
	Brackets          []domain.TaxBracket
	StandardDeduction decimal.Decimal
}

// CalculateFederalTax applies the progressive schedule to income above the
// standard deduction. scale multiplies every threshold and the deduction.
func (f *FederalTaxCalculator) CalculateFederalTax(grossIncome, scale decimal.Decimal) decimal.Decimal {
	taxable := grossIncome.Sub(f.StandardDeduction.Mul(scale))
	if taxable.Sign() <= 0 {
		return decimal.Zero
	}
	tax := decimal.Zero
	for _, b := range f.Brackets {
		lo := b.Min.Mul(scale)
		if taxable.LessThanOrEqual(lo) {
			break
		}
		top := taxable
		if !b.Max.IsZero() {
			top = decimal.Min(taxable, b.Max.Mul(scale))
		}
		tax = tax.Add(top.Sub(lo).Mul(b.Rate))
	}
	return tax
}

// BracketRate returns the rate of the band containing grossIncome.
func (f *FederalTaxCalculator) BracketRate(grossIncome, scale decimal.Decimal) decimal.Decimal {
	taxable := grossIncome.Sub(f.StandardDeduction.Mul(scale))
	if taxable.Sign() <= 0 {
		return decimal.Zero
	}
	rate := decimal.Zero
	for _, b := range f.Brackets {
		if taxable.LessThanOrEqual(b.Min.Mul(scale)) {
			break
		}
		rate = b.Rate
	}
	return rate
}

// FICACalculator handles FICA tax calculations
type FICACalculator struct {
	SSWageBase          decimal.Decimal
	SSRate              decimal.Decimal
	MedicareRate        decimal.Decimal
	AdditionalRate      decimal.Decimal
	HighIncomeThreshold decimal.Decimal
}

// CalculateFICA returns Social Security and Medicare tax on wages. scale
// indexes the wage base.
func (fc *FICACalculator) CalculateFICA(wages, scale decimal.Decimal) (ss, medicare decimal.Decimal) {
	if wages.Sign() <= 0 {
		return decimal.Zero, decimal.Zero
	}
	ss = decimal.Min(wages, fc.SSWageBase.Mul(scale)).Mul(fc.SSRate)
	medicare = wages.Mul(fc.MedicareRate)
	if wages.GreaterThan(fc.HighIncomeThreshold) {
		medicare = medicare.Add(wages.Sub(fc.HighIncomeThreshold).Mul(fc.AdditionalRate))
	}
	return ss, medicare
}

// StateTaxCalculator applies a flat effective rate by state code.
type StateTaxCalculator struct {
	State string
	Rate  decimal.Decimal
}

// NewStateTaxCalculator looks up state in rates, falling back to defaultRate.
func NewStateTaxCalculator(state string, rates map[string]decimal.Decimal, defaultRate decimal.Decimal) *StateTaxCalculator {
	code := strings.ToUpper(strings.TrimSpace(state))
	rate, ok := rates[code]
	if !ok {
		rate = defaultRate
	}
	return &StateTaxCalculator{State: code, Rate: rate}
}

// CalculateTax returns state tax on income.
func (s *StateTaxCalculator) CalculateTax(income decimal.Decimal) decimal.Decimal {
	if income.Sign() <= 0 {
		return decimal.Zero
	}
	return income.Mul(s.Rate)
}

// TaxBreakdown is one year's taxes by kind.
type TaxBreakdown struct {
	Federal        decimal.Decimal
	State          decimal.Decimal
	SocialSecurity decimal.Decimal
	Medicare       decimal.Decimal
	Total          decimal.Decimal
}

// ComprehensiveTaxCalculator handles all tax calculations for one profile.
type ComprehensiveTaxCalculator struct {
	FederalTaxCalc *FederalTaxCalculator
	StateTaxCalc   *StateTaxCalculator
	FICATaxCalc    *FICACalculator
	Table          TaxTable
	Payroll        bool
	Indexing       domain.TaxIndexing
}

// NewComprehensiveTaxCalculator builds a calculator from the profile's filing
// status, state and tax year, overlaid with any rules it carries.
func NewComprehensiveTaxCalculator(profile domain.TaxProfile) *ComprehensiveTaxCalculator {
	table := BuiltinTaxTable(profile.TaxYear).withRules(profile.Rules)
	status := profile.FilingStatus
	if !status.Valid() {
		status = domain.FilingSingle
	}
	indexing := profile.Indexing
	if !indexing.Valid() {
		indexing = domain.TaxIndexingBrackets
	}
	return &ComprehensiveTaxCalculator{
		FederalTaxCalc: &FederalTaxCalculator{
			Brackets:          table.Brackets[status],
			StandardDeduction: table.StandardDeduction[status],
		},
		StateTaxCalc: NewStateTaxCalculator(profile.State, table.StateRates, table.DefaultStateRate),
		FICATaxCalc: &FICACalculator{
			SSWageBase:          table.SocialSecurityWageBase,
			SSRate:              table.SocialSecurityRate,
			MedicareRate:        table.MedicareRate,
			AdditionalRate:      table.AdditionalMedicareRate,
			HighIncomeThreshold: table.AdditionalMedicareThresholds[status],
		},
		Table:    table,
		Payroll:  profile.PayrollTaxEnabled(),
		Indexing: indexing,
	}
}

// CalculateAnnualTaxes computes a year of taxes on annualIncome. factor is
// the inflation multiplier for the period being taxed; how it is applied
// depends on the indexing mode.
func (ctc *ComprehensiveTaxCalculator) CalculateAnnualTaxes(annualIncome, factor decimal.Decimal) TaxBreakdown {
	scale := decimalOne
	if ctc.Indexing == domain.TaxIndexingBrackets && factor.Sign() > 0 {
		scale = factor
	}
	var b TaxBreakdown
	b.Federal = ctc.FederalTaxCalc.CalculateFederalTax(annualIncome, scale)
	b.State = ctc.StateTaxCalc.CalculateTax(annualIncome)
	if ctc.Payroll {
		b.SocialSecurity, b.Medicare = ctc.FICATaxCalc.CalculateFICA(annualIncome, scale)
	}
	if ctc.Indexing == domain.TaxIndexingLegacySqrt && factor.GreaterThan(decimalOne) {
		damp := finmath.FromFloat(1 / math.Sqrt(factor.InexactFloat64())).Round(finmath.RatePlaces)
		b.Federal = b.Federal.Mul(damp)
		b.State = b.State.Mul(damp)
		b.SocialSecurity = b.SocialSecurity.Mul(damp)
		b.Medicare = b.Medicare.Mul(damp)
	}
	b.Total = b.Federal.Add(b.State).Add(b.SocialSecurity).Add(b.Medicare)
	return b
}

// CalculateMonthlyTaxes annualizes one month of income, taxes the year and
// returns a twelfth of it.
func (ctc *ComprehensiveTaxCalculator) CalculateMonthlyTaxes(monthlyIncome, factor decimal.Decimal) decimal.Decimal {
	if monthlyIncome.Sign() <= 0 {
		return decimal.Zero
	}
	annual := ctc.CalculateAnnualTaxes(monthlyIncome.Mul(decimalTwelve), factor)
	return annual.Total.DivRound(decimalTwelve, finmath.StatePlaces)
}

// MarginalRate is the combined tax on the next dollar of annual income.
func (ctc *ComprehensiveTaxCalculator) MarginalRate(annualIncome, factor decimal.Decimal) decimal.Decimal {
	base := ctc.CalculateAnnualTaxes(annualIncome, factor).Total
	next := ctc.CalculateAnnualTaxes(annualIncome.Add(decimalOne), factor).Total
	return next.Sub(base).Round(4)
}

// EstimateTaxSavings is the tax avoided by removing contribution from
// annualIncome. It never exceeds the contribution.
func (ctc *ComprehensiveTaxCalculator) EstimateTaxSavings(contribution, annualIncome, factor decimal.Decimal) decimal.Decimal {
	if contribution.Sign() <= 0 || annualIncome.Sign() <= 0 {
		return decimal.Zero
	}
	reduced := annualIncome.Sub(contribution)
	if reduced.Sign() < 0 {
		reduced = decimal.Zero
	}
	savings := ctc.CalculateAnnualTaxes(annualIncome, factor).Total.
		Sub(ctc.CalculateAnnualTaxes(reduced, factor).Total)
	return finmath.Clamp(finmath.RoundMoney(savings), decimal.Zero, contribution)
}

// EstimateTaxSavings prices a pre-tax contribution for a profile at today's
// thresholds.
func EstimateTaxSavings(contribution, annualIncome decimal.Decimal, profile domain.TaxProfile) decimal.Decimal {
	return NewComprehensiveTaxCalculator(profile).EstimateTaxSavings(contribution, annualIncome, decimalOne)
}
