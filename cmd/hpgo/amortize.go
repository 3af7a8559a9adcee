package main

import (
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/output"
)

func amortizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amortize [scenario-file] [loan-id]",
		Short: "Print a loan's full amortization schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			schedule, err := a.projectionEngine().AmortizationSchedule(input, args[1])
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			data, err := output.FormatAmortization(schedule.LoanID, schedule.Rows, input.Household.Currency, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	return cmd
}
