package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/pkg/dateutil"
)

func exampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example [output-file]",
		Short: "Write an example scenario (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			years, _ := cmd.Flags().GetInt("years")
			if years <= 0 {
				return fmt.Errorf("years must be positive, got %d", years)
			}
			now := time.Now()
			scenario := exampleScenario(dateutil.New(now.Year(), time.January, 1), years)

			format := config.FormatYAML
			if len(args) == 1 {
				format = config.FormatForPath(args[0])
			}
			data, err := config.NewInputParser().Encode(scenario, format)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example scenario written to %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().IntP("years", "y", 10, "Length of the projection window in years")
	return cmd
}

// exampleScenario is a two-earner household with a brokerage account, a
// mortgage and two goals.
func exampleScenario(start dateutil.Date, years int) *domain.ScenarioInput {
	d := decimal.RequireFromString
	ptr := func(v decimal.Decimal) *decimal.Decimal { return &v }
	brokerage := uuid.NewString()
	end := dateutil.AddMonths(start, years*12-1)
	end = dateutil.New(end.Year(), end.Month(), dateutil.DaysIn(end.Year(), end.Month()))
	goalDate := dateutil.AddMonths(start, years*6)

	return &domain.ScenarioInput{
		Household: domain.Household{
			Name:      "Example household",
			StartDate: start,
			EndDate:   end,
			Currency:  config.DefaultCurrency,
		},
		Assumptions: domain.Assumptions{
			InflationRate:    d("0.025"),
			DefaultReturnPct: d("6"),
			DividendYieldPct: d("1.5"),
		},
		TaxProfile: domain.TaxProfile{
			State:        "CO",
			FilingStatus: domain.FilingMFJ,
			TaxYear:      start.Year(),
			Indexing:     domain.TaxIndexingBrackets,
		},
		Incomes: []domain.Income{
			{ID: uuid.NewString(), Name: "Primary salary", Amount: d("4100"), Frequency: domain.FrequencyBiweekly,
				StartDate: start, GrowthRule: domain.GrowthCustomPercent, GrowthRate: d("0.03")},
			{ID: uuid.NewString(), Name: "Secondary salary", Amount: d("3800"), Frequency: domain.FrequencyMonthly,
				StartDate: start, GrowthRule: domain.GrowthTrackInflation},
		},
		Expenses: []domain.Expense{
			{ID: uuid.NewString(), Name: "Living expenses", Category: "living", Amount: d("4200"),
				Frequency: domain.FrequencyMonthly, StartDate: start, GrowthRule: domain.GrowthTrackInflation},
			{ID: uuid.NewString(), Name: "Insurance", Category: "insurance", Amount: d("2400"),
				Frequency: domain.FrequencyAnnual, StartDate: start, GrowthRule: domain.GrowthTrackInflation},
		},
		Accounts: []domain.InvestmentAccount{
			{ID: brokerage, Name: "Brokerage", Type: "taxable", ExpectedReturnPct: ptr(d("7")),
				Holdings: []domain.Holding{
					{Symbol: "VTI", Shares: d("120"), AvgPrice: d("210"), LastPrice: ptr(d("265"))},
					{Symbol: "BND", Shares: d("200"), AvgPrice: d("74")},
				}},
		},
		Contributions: []domain.ContributionRule{
			{ID: uuid.NewString(), AccountID: brokerage, Amount: d("750"), Frequency: domain.FrequencyMonthly,
				StartDate: start, EscalationRule: domain.GrowthTrackInflation},
		},
		Loans: []domain.Loan{
			{ID: uuid.NewString(), Name: "Mortgage", Principal: d("320000"), AnnualRate: d("0.0625"),
				TermMonths: 360, StartDate: dateutil.AddMonths(start, -36)},
		},
		Goals: []domain.Goal{
			{ID: uuid.NewString(), Name: "Emergency fund", TargetAmount: d("30000"), Priority: 2},
			{ID: uuid.NewString(), Name: "College fund", TargetAmount: d("120000"), TargetDate: &goalDate, Priority: 1},
		},
	}
}
