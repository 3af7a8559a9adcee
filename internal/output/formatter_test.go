package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildTestResult() *domain.ProjectionResult {
	start := dateutil.MustParseISO("2025-11-01")
	months := []string{"2025-11", "2025-12", "2026-01"}
	nw := []decimal.Decimal{dec("1000.10"), dec("2000.20"), dec("-150.5")}
	monthly := make([]domain.MonthlyBreakdown, len(months))
	for i, m := range months {
		monthly[i] = domain.MonthlyBreakdown{
			Month:           m,
			Date:            dateutil.AddMonths(start, i),
			Income:          dec("5000"),
			Expenses:        dec("2000"),
			Taxes:           dec("800.25"),
			NetWorth:        nw[i],
			TotalAssets:     nw[i],
			AccountBalances: map[string]decimal.Decimal{"brokerage": dec("1000"), "cash": dec("250.5")},
		}
	}
	return &domain.ProjectionResult{
		EngineVersion: "hpgo-engine/test",
		InputHash:     strings.Repeat("a", 64),
		Currency:      "USD",
		StartDate:     start,
		EndDate:       dateutil.MustParseISO("2026-01-31"),
		Series: domain.ProjectionSeries{
			Months:   months,
			NetWorth: nw,
			Accounts: []domain.AccountSeries{{AccountID: "brokerage"}, {AccountID: "cash"}},
			Goals: []domain.GoalSeries{{
				GoalID: "house", Name: "House",
				Target:      []decimal.Decimal{dec("100"), dec("101"), dec("102")},
				FundedRatio: []decimal.Decimal{dec("1"), dec("1"), dec("0")},
			}},
		},
		Monthly: monthly,
		Annual: []domain.AnnualSummary{
			{Year: 2025, Months: 2, Income: dec("10000"), Taxes: dec("1600.50"), EndNetWorth: dec("2000.20")},
			{Year: 2026, Months: 1, Income: dec("5000"), Taxes: dec("800.25"), EndNetWorth: dec("-150.5")},
		},
		Warnings: []domain.Warning{
			{Code: domain.WarningGoalShortfall, Severity: domain.SeverityError, Message: "goal House short", RefID: "house"},
		},
	}
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc{ID: "custom", F: func(result *domain.ProjectionResult) ([]byte, error) {
		called = true
		return []byte("custom output"), nil
	}}
	out, err := f.Format(buildTestResult())
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "custom", f.Name())
	assert.Equal(t, "custom output", string(out))
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "json", "csv", "annual-csv", "html"} {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}
	assert.Equal(t, "console", GetFormatterByName("text").Name())
	assert.Equal(t, "annual-csv", GetFormatterByName("annual").Name())
	assert.Nil(t, GetFormatterByName("pdf"))

	assert.Equal(t, []string{"annual-csv", "console", "csv", "html", "json"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "monthly")
}

func TestFormatters_NilResult(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			out, err := GetFormatterByName(name).Format(nil)
			assert.ErrorIs(t, err, errNoResult)
			assert.Nil(t, out)
		})
	}
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestResult())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "HOUSEHOLD PROJECTION SUMMARY")
	assert.Contains(t, content, "2025-11-01 to 2026-01-31 (3 months)")
	assert.Contains(t, content, "Final Net Worth: -$150.50")
	assert.Contains(t, content, "$10,000.00")
	assert.Contains(t, content, "16.01%")
	assert.Contains(t, content, "House")
	assert.Contains(t, content, "GOAL_SHORTFALL")
	assert.Contains(t, content, "goal House short")

	_, err = ConsoleFormatter{}.Format(nil)
	assert.Error(t, err)
}

func TestConsoleFormatter_NoWarnings(t *testing.T) {
	res := buildTestResult()
	res.Warnings = nil
	out, err := ConsoleFormatter{}.Format(res)
	require.NoError(t, err)
	assert.Contains(t, string(out), "none")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestResult())
	require.NoError(t, err)

	var decoded domain.ProjectionResult
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "hpgo-engine/test", decoded.EngineVersion)
	assert.Len(t, decoded.Monthly, 3)
	assert.True(t, decoded.Monthly[2].NetWorth.Equal(dec("-150.5")))
	assert.Contains(t, string(out), `"inputHash"`)
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestResult())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Month,Income,Expenses,Taxes,LoanPayments,Contributions,InvestmentReturns,NetCashflow,TotalAssets,TotalLiabilities,NetWorth,Account:brokerage,Account:cash", lines[0])
	assert.Equal(t, "2025-11,5000.00,2000.00,800.25,0.00,0.00,0.00,0.00,1000.10,0.00,1000.10,1000.00,250.50", lines[1])
}

func TestAnnualCSVFormatter(t *testing.T) {
	out, err := AnnualCSVFormatter{}.Format(buildTestResult())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Year,Months,Income"))
	assert.Equal(t, "2025,2,10000.00,0.00,1600.50,0.00,0.00,0.00,0.00,2000.20,0.1601", lines[1])
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestResult())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Household Projection Report</title>")
	assert.Contains(t, content, "$10,000.00")
	assert.Contains(t, content, "GOAL_SHORTFALL")
}

func TestWriteFormatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	written, err := WriteFormatted(CSVFormatter{}, buildTestResult(), path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Month,"))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	f := FormatterFunc{ID: "broken", F: func(*domain.ProjectionResult) ([]byte, error) {
		return nil, assert.AnError
	}}
	written, err := WriteFormatted(f, buildTestResult(), filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, written)
}
