package calculation

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(s string) dateutil.Date { return dateutil.MustParseISO(s) }

func datePtr(s string) *dateutil.Date {
	d := date(s)
	return &d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s %s", expected, actual.String(), fmt.Sprint(msgAndArgs...))
}

func assertDecimalNear(t *testing.T, expected float64, actual decimal.Decimal, delta float64) {
	t.Helper()
	assert.InDelta(t, expected, actual.InexactFloat64(), delta)
}

// TestLogger records messages for assertions.
type TestLogger struct {
	Debugs []string
	Infos  []string
	Warns  []string
	Errors []string
}

func (l *TestLogger) Debugf(format string, args ...any) {
	l.Debugs = append(l.Debugs, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Infof(format string, args ...any) {
	l.Infos = append(l.Infos, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Warnf(format string, args ...any) {
	l.Warns = append(l.Warns, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Errorf(format string, args ...any) {
	l.Errors = append(l.Errors, fmt.Sprintf(format, args...))
}

// basicScenario is one year of $5,000 salary against $2,000 rent in Texas.
func basicScenario() *domain.ScenarioInput {
	return &domain.ScenarioInput{
		Household: domain.Household{
			Name:      "test household",
			StartDate: date("2025-01-01"),
			EndDate:   date("2025-12-31"),
			Currency:  "USD",
		},
		Assumptions: domain.Assumptions{
			InflationRate:    dec("0.03"),
			DefaultReturnPct: dec("6"),
		},
		TaxProfile: domain.TaxProfile{
			State:        "TX",
			FilingStatus: domain.FilingSingle,
			TaxYear:      2025,
		},
		Incomes: []domain.Income{{
			ID:        "salary",
			Name:      "Salary",
			Amount:    dec("5000"),
			Frequency: domain.FrequencyMonthly,
			StartDate: date("2025-01-01"),
		}},
		Expenses: []domain.Expense{{
			ID:        "rent",
			Name:      "Rent",
			Amount:    dec("2000"),
			Frequency: domain.FrequencyMonthly,
			StartDate: date("2025-01-01"),
		}},
	}
}

// investingScenario adds a brokerage account with a monthly contribution, a
// car loan and two goals to basicScenario, over three years.
func investingScenario() *domain.ScenarioInput {
	in := basicScenario()
	in.Household.EndDate = date("2027-12-31")
	in.Accounts = []domain.InvestmentAccount{{
		ID:                "brokerage",
		Name:              "Brokerage",
		ExpectedReturnPct: decPtr("7"),
		Holdings: []domain.Holding{
			{Symbol: "VTI", Shares: dec("100"), AvgPrice: dec("200"), LastPrice: decPtr("250")},
			{Symbol: "BND", Shares: dec("50"), AvgPrice: dec("70")},
		},
	}}
	in.Contributions = []domain.ContributionRule{{
		ID:        "monthly-invest",
		AccountID: "brokerage",
		Amount:    dec("500"),
		Frequency: domain.FrequencyMonthly,
		StartDate: date("2025-01-01"),
	}}
	in.Loans = []domain.Loan{{
		ID:         "car",
		Name:       "Car",
		Principal:  dec("20000"),
		AnnualRate: dec("0.06"),
		TermMonths: 48,
		StartDate:  date("2024-07-01"),
	}}
	in.Goals = []domain.Goal{
		{ID: "cushion", Name: "Cushion", TargetAmount: dec("10000"), Priority: 2},
		{ID: "moon", Name: "Moonshot", TargetAmount: dec("10000000"), Priority: 1},
	}
	return in
}
