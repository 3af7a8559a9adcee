package domain

import "github.com/shopspring/decimal"

// MonteCarloConfig controls a resampling run. Seed is optional; the engine
// substitutes a fixed default so unseeded runs stay reproducible.
type MonteCarloConfig struct {
	Simulations   int     `json:"simulations" yaml:"simulations"`
	VolatilityPct float64 `json:"volatilityPct" yaml:"volatility_pct"`
	Seed          *int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// MonteCarloResult summarizes the distribution of net worth across runs.
type MonteCarloResult struct {
	EngineVersion string            `json:"engineVersion"`
	InputHash     string            `json:"inputHash"`
	Simulations   int               `json:"simulations"`
	VolatilityPct float64           `json:"volatilityPct"`
	Seed          int64             `json:"seed"`
	Bands         []PercentileBand  `json:"bands"`
	SuccessRate   decimal.Decimal   `json:"successRate"`
	GoalSuccess   []GoalSuccessRate `json:"goalSuccess"`
	Summary       MonteCarloSummary `json:"summary"`
}

// PercentileBand is the net-worth distribution at one month.
type PercentileBand struct {
	Month string          `json:"month"`
	P10   decimal.Decimal `json:"p10"`
	P25   decimal.Decimal `json:"p25"`
	P50   decimal.Decimal `json:"p50"`
	P75   decimal.Decimal `json:"p75"`
	P90   decimal.Decimal `json:"p90"`
}

// GoalSuccessRate is the share of simulations meeting one goal.
type GoalSuccessRate struct {
	GoalID      string          `json:"goalId"`
	Name        string          `json:"name"`
	Target      decimal.Decimal `json:"target"`
	SuccessRate decimal.Decimal `json:"successRate"`
}

// MonteCarloSummary holds final-month statistics.
type MonteCarloSummary struct {
	MedianFinalNetWorth decimal.Decimal `json:"medianFinalNetWorth"`
	P10FinalNetWorth    decimal.Decimal `json:"p10FinalNetWorth"`
	P90FinalNetWorth    decimal.Decimal `json:"p90FinalNetWorth"`
}
