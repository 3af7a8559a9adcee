package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectionEngine(t *testing.T) {
	engine := NewProjectionEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestProjectionEngine_SetLogger(t *testing.T) {
	engine := NewProjectionEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestProjectionEngine_LogsRun(t *testing.T) {
	engine := NewProjectionEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	_, err := engine.Run(context.Background(), basicScenario())
	require.NoError(t, err)
	assert.Len(t, logger.Debugs, 1)
	require.Len(t, logger.Infos, 1)
	assert.Contains(t, logger.Infos[0], "12 months")
}

func TestRunEngine_BasicExample(t *testing.T) {
	result, err := RunEngine(context.Background(), basicScenario())
	require.NoError(t, err)

	assert.Equal(t, EngineVersion, result.EngineVersion)
	assert.Len(t, result.InputHash, 64)
	assert.Equal(t, "USD", result.Currency)

	require.Len(t, result.Series.Months, 12)
	require.Len(t, result.Monthly, 12)
	for i, tax := range result.Series.Taxes {
		assert.True(t, tax.GreaterThan(decimal.Zero), "month %d taxes", i)
		assertDecimalEqual(t, "812.63", tax)
		assertDecimalEqual(t, "5000", result.Series.Income[i])
		assertDecimalEqual(t, "2000", result.Series.Expenses[i])
		assertDecimalEqual(t, "2187.37", result.Series.NetCashflow[i])
	}

	require.Len(t, result.Annual, 1)
	year := result.Annual[0]
	assert.Equal(t, 2025, year.Year)
	assert.Equal(t, 12, year.Months)
	assertDecimalEqual(t, "60000", year.Income)
	assertDecimalEqual(t, "24000", year.Expenses)
	assertDecimalEqual(t, "9751.56", year.Taxes)
	assertDecimalEqual(t, "26248.44", year.NetSavings)

	assert.Len(t, result.WarningsByCode(domain.WarningTaxRulesMissing), 1)
	assert.Empty(t, result.WarningsByCode(domain.WarningDeficitMonth))
	assert.Empty(t, result.WarningsByCode(domain.WarningHighTaxDrag))
}

func TestRunEngine_Invariants(t *testing.T) {
	result, err := RunEngine(context.Background(), investingScenario())
	require.NoError(t, err)

	s := result.Series
	require.Len(t, s.Months, 36)
	require.Len(t, result.Monthly, 36)
	require.Len(t, s.Accounts, 1)
	require.Len(t, s.Loans, 1)
	require.Len(t, s.Goals, 2)

	for i, row := range result.Monthly {
		assert.Equal(t, s.Months[i], row.Month)
		assert.True(t, row.NetWorth.Equal(row.TotalAssets.Sub(row.TotalLiabilities)), "month %s net worth", row.Month)
		cash := row.Income.Sub(row.Expenses).Sub(row.Taxes).Sub(row.LoanPayments).Sub(row.Contributions).Add(row.InvestmentReturns)
		assert.True(t, row.NetCashflow.Equal(cash), "month %s cashflow", row.Month)

		assert.True(t, row.Income.Equal(s.Income[i]))
		assert.True(t, row.Taxes.Equal(s.Taxes[i]))
		assert.True(t, row.NetWorth.Equal(s.NetWorth[i]))
		assert.True(t, row.TotalAssets.Equal(s.TotalAssets[i]))
		assert.True(t, row.TotalLiabilities.Equal(s.TotalLiabilities[i]))
		assert.True(t, row.Contributions.Equal(s.Contributions[i]))
		assert.True(t, row.AccountBalances["brokerage"].Equal(s.Accounts[0].Balance[i]))
		assert.True(t, row.TotalLiabilities.Equal(s.Loans[0].Balance[i]))
		assertDecimalEqual(t, "500", row.Contributions)
		assert.True(t, row.InvestmentReturns.GreaterThan(decimal.Zero))
		if i > 0 {
			assert.True(t, s.Loans[0].Balance[i].LessThanOrEqual(s.Loans[0].Balance[i-1]))
			assert.True(t, s.TotalAssets[i].GreaterThan(s.TotalAssets[i-1]))
		}
	}

	require.Len(t, result.Annual, 3)
	for _, year := range result.Annual {
		income, taxes, savings := decimal.Zero, decimal.Zero, decimal.Zero
		var last domain.MonthlyBreakdown
		for _, row := range result.Monthly {
			if row.Date.Year() == year.Year {
				income = income.Add(row.Income)
				taxes = taxes.Add(row.Taxes)
				savings = savings.Add(row.NetCashflow)
				last = row
			}
		}
		assert.True(t, year.Income.Equal(income), "year %d income", year.Year)
		assert.True(t, year.Taxes.Equal(taxes), "year %d taxes", year.Year)
		assert.True(t, year.NetSavings.Equal(savings), "year %d savings", year.Year)
		assert.True(t, year.EndNetWorth.Equal(last.NetWorth), "year %d end net worth", year.Year)
	}

	// indexed brackets lower the tax on flat nominal income in later years
	assert.True(t, result.Annual[2].Taxes.LessThan(result.Annual[0].Taxes))
}

func TestRunEngine_GoalWarnings(t *testing.T) {
	result, err := RunEngine(context.Background(), investingScenario())
	require.NoError(t, err)

	shortfalls := result.WarningsByCode(domain.WarningGoalShortfall)
	require.Len(t, shortfalls, 1)
	assert.Equal(t, "moon", shortfalls[0].RefID)
	assert.Equal(t, domain.SeverityError, shortfalls[0].Severity)

	in := investingScenario()
	in.Goals[1].Priority = 3
	result, err = RunEngine(context.Background(), in)
	require.NoError(t, err)
	shortfalls = result.WarningsByCode(domain.WarningGoalShortfall)
	require.Len(t, shortfalls, 1)
	assert.Equal(t, domain.SeverityWarn, shortfalls[0].Severity)

	goal := result.Series.Goals[0]
	assert.True(t, goal.Target[35].GreaterThan(goal.Target[0]), "targets follow inflation")
	assertDecimalEqual(t, "10000", goal.Target[0])
	assert.True(t, goal.FundedRatio[35].GreaterThan(decimalOne))
}

func TestRunEngine_DeficitWarnings(t *testing.T) {
	in := basicScenario()
	in.Expenses[0].Amount = dec("6000")
	result, err := RunEngine(context.Background(), in)
	require.NoError(t, err)

	deficits := result.WarningsByCode(domain.WarningDeficitMonth)
	require.Len(t, deficits, 12)
	for i, w := range deficits {
		assert.Equal(t, domain.SeverityWarn, w.Severity)
		require.NotNil(t, w.Date)
		assert.Equal(t, result.Series.Months[i], w.Date.Format("2006-01"))
	}
}

func TestRunEngine_HighTaxDrag(t *testing.T) {
	in := basicScenario()
	in.TaxProfile.Rules = &domain.TaxRules{
		Brackets: map[domain.FilingStatus][]domain.TaxBracket{
			domain.FilingSingle: {{Min: decimal.Zero, Rate: dec("0.5")}},
		},
		StandardDeduction: map[domain.FilingStatus]decimal.Decimal{domain.FilingSingle: decimal.Zero},
	}
	result, err := RunEngine(context.Background(), in)
	require.NoError(t, err)

	drags := result.WarningsByCode(domain.WarningHighTaxDrag)
	require.Len(t, drags, 1)
	assert.Contains(t, drags[0].Message, "2025")
	assert.Empty(t, result.WarningsByCode(domain.WarningTaxRulesMissing))
}

func TestRunEngine_OneTimeIncome(t *testing.T) {
	in := basicScenario()
	in.Incomes = append(in.Incomes, domain.Income{
		ID: "bonus", Name: "Bonus", Amount: dec("10000"),
		Frequency: domain.FrequencyOneTime, StartDate: date("2025-03-10"),
	})
	result, err := RunEngine(context.Background(), in)
	require.NoError(t, err)

	for i, income := range result.Series.Income {
		if result.Series.Months[i] == "2025-03" {
			assertDecimalEqual(t, "15000", income)
			continue
		}
		assertDecimalEqual(t, "5000", income)
	}
	assertDecimalEqual(t, "70000", result.Annual[0].Income)
}

func TestRunEngine_NonTaxableIncome(t *testing.T) {
	in := basicScenario()
	taxable := false
	in.Incomes[0].Taxable = &taxable
	result, err := RunEngine(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, result.Annual[0].Taxes.IsZero())
}

func TestRunEngine_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ScenarioInput)
	}{
		{"negative income", func(in *domain.ScenarioInput) { in.Incomes[0].Amount = dec("-1") }},
		{"missing id", func(in *domain.ScenarioInput) { in.Expenses[0].ID = "" }},
		{"end before start", func(in *domain.ScenarioInput) { in.Household.EndDate = date("2024-01-01") }},
		{"zero term", func(in *domain.ScenarioInput) { in.Loans[0].TermMonths = 0 }},
		{"dangling contribution", func(in *domain.ScenarioInput) { in.Contributions[0].AccountID = "nope" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := investingScenario()
			tt.mutate(in)
			result, err := RunEngine(context.Background(), in)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, config.ErrInvalidInput), "got %v", err)
			assert.Error(t, ValidateInput(in))
		})
	}
	assert.NoError(t, ValidateInput(investingScenario()))
}

func TestRunEngine_DoesNotMutateInput(t *testing.T) {
	in := investingScenario()
	in.Accounts[0].ExpectedReturnPct = nil
	_, err := RunEngine(context.Background(), in)
	require.NoError(t, err)

	assert.Nil(t, in.Accounts[0].ExpectedReturnPct)
	assert.Nil(t, in.Accounts[0].Holdings[1].LastPrice)
	assert.Equal(t, domain.GrowthRule(""), in.Incomes[0].GrowthRule)
	assert.Equal(t, domain.TaxIndexing(""), in.TaxProfile.Indexing)
}

func TestRunEngine_HashMatchesGetInputHash(t *testing.T) {
	in := investingScenario()
	result, err := RunEngine(context.Background(), in)
	require.NoError(t, err)

	hash, err := GetInputHash(in)
	require.NoError(t, err)
	assert.Equal(t, hash, result.InputHash)

	again, err := RunEngine(context.Background(), investingScenario())
	require.NoError(t, err)
	assert.Equal(t, result.InputHash, again.InputHash)
	assert.Equal(t, result.Series.NetWorth, again.Series.NetWorth)

	in.Incomes[0].Amount = dec("5001")
	changed, err := GetInputHash(in)
	require.NoError(t, err)
	assert.NotEqual(t, hash, changed)

	_, err = GetInputHash(nil)
	assert.ErrorIs(t, err, config.ErrInvalidInput)
}

func TestRunEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := RunEngine(ctx, basicScenario())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProjectionEngine_AmortizationSchedule(t *testing.T) {
	engine := NewProjectionEngine()
	s, err := engine.AmortizationSchedule(investingScenario(), "car")
	require.NoError(t, err)
	assert.Len(t, s.Rows, 48)

	_, err = engine.AmortizationSchedule(investingScenario(), "boat")
	assert.Error(t, err)
}
