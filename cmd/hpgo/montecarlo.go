package main

import (
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/output"
)

func monteCarloCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "montecarlo [scenario-file]",
		Short: "Run a Monte Carlo analysis of net worth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			var cfg domain.MonteCarloConfig
			cfg.Simulations, _ = cmd.Flags().GetInt("simulations")
			cfg.VolatilityPct, _ = cmd.Flags().GetFloat64("volatility")
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				cfg.Seed = &seed
			}

			result, err := a.monteCarloEngine().Run(cmd.Context(), input, cfg)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			data, err := output.FormatMonteCarlo(result, input.Household.Currency, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().IntP("simulations", "s", calculation.DefaultSimulations, "Number of simulations (50-2000)")
	cmd.Flags().Float64P("volatility", "v", calculation.DefaultVolatilityPct, "Annual return volatility in percent (1-50)")
	cmd.Flags().Int64("seed", calculation.DefaultSeed, "Random seed")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	return cmd
}
