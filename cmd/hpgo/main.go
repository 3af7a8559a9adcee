package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries process settings resolved before any subcommand runs.
type app struct {
	settings config.Settings
	log      *logrus.Logger
}

func (a *app) projectionEngine() *calculation.ProjectionEngine {
	pe := calculation.NewProjectionEngine()
	pe.SetLogger(a.log)
	return pe
}

func (a *app) monteCarloEngine() *calculation.MonteCarloEngine {
	mce := calculation.NewMonteCarloEngine()
	mce.SetLogger(a.log)
	mce.Workers = a.settings.Workers
	return mce
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "hpgo",
		Short:         "Household financial projection CLI",
		Long:          "Projects household income, expenses, taxes, investments and loans month by month, with Monte Carlo analysis of net worth.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				settings.LogLevel, _ = flags.GetString("log-level")
			}
			if flags.Changed("log-format") {
				settings.LogFormat, _ = flags.GetString("log-format")
			}
			if flags.Changed("workers") {
				settings.Workers, _ = flags.GetInt("workers")
			}
			a.settings = settings
			a.log = settings.NewLogger()
			a.log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error); overrides HPGO_LOG_LEVEL")
	root.PersistentFlags().String("log-format", "text", "Log format (text, json); overrides HPGO_LOG_FORMAT")
	root.PersistentFlags().Int("workers", 0, "Monte Carlo worker count; overrides HPGO_MC_WORKERS")

	root.AddCommand(
		projectCmd(a),
		validateCmd(),
		hashCmd(),
		monteCarloCmd(a),
		amortizeCmd(a),
		exampleCmd(),
		serveCmd(a),
		tuiCmd(a),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hpgo %s (commit %s, built %s, engine %s)\n", version, commit, date, calculation.EngineVersion)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				if info := buildInfo(); info != "" {
					fmt.Fprintln(cmd.OutOrStdout(), info)
				}
			}
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Include module build information")
	return cmd
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
