package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(v int64) *int64 { return &v }

func mcScenario() *domain.ScenarioInput {
	in := investingScenario()
	in.Household.EndDate = date("2026-12-31")
	return in
}

func runMC(t *testing.T, cfg domain.MonteCarloConfig) *domain.MonteCarloResult {
	t.Helper()
	result, err := RunMonteCarlo(context.Background(), mcScenario(), cfg)
	require.NoError(t, err)
	return result
}

func TestNormalizeMonteCarloConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.MonteCarloConfig
		sims int
		vol  float64
		seed int64
	}{
		{"defaults", domain.MonteCarloConfig{}, DefaultSimulations, DefaultVolatilityPct, DefaultSeed},
		{"too few", domain.MonteCarloConfig{Simulations: 10, VolatilityPct: 0.2}, 50, 1, DefaultSeed},
		{"too many", domain.MonteCarloConfig{Simulations: 5000, VolatilityPct: 90}, 2000, 50, DefaultSeed},
		{"in range", domain.MonteCarloConfig{Simulations: 300, VolatilityPct: 12, Seed: seed(7)}, 300, 12, 7},
		{"negative", domain.MonteCarloConfig{Simulations: -5, VolatilityPct: -3}, 50, 1, DefaultSeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sims, vol, s := NormalizeMonteCarloConfig(tt.cfg)
			assert.Equal(t, tt.sims, sims)
			assert.Equal(t, tt.vol, vol)
			assert.Equal(t, tt.seed, s)
		})
	}
}

func TestMonteCarloBandsOrdered(t *testing.T) {
	for _, vol := range []float64{1, 15, 50} {
		result := runMC(t, domain.MonteCarloConfig{Simulations: 60, VolatilityPct: vol, Seed: seed(3)})
		require.Len(t, result.Bands, 24)
		for _, b := range result.Bands {
			assert.True(t, b.P10.LessThanOrEqual(b.P25), "%s p10>p25 at vol %v", b.Month, vol)
			assert.True(t, b.P25.LessThanOrEqual(b.P50), "%s p25>p50 at vol %v", b.Month, vol)
			assert.True(t, b.P50.LessThanOrEqual(b.P75), "%s p50>p75 at vol %v", b.Month, vol)
			assert.True(t, b.P75.LessThanOrEqual(b.P90), "%s p75>p90 at vol %v", b.Month, vol)
		}
	}
}

func TestMonteCarloDeterministic(t *testing.T) {
	cfg := domain.MonteCarloConfig{Simulations: 80, VolatilityPct: 20, Seed: seed(1234)}
	a := runMC(t, cfg)
	b := runMC(t, cfg)
	assert.Equal(t, a.Bands, b.Bands)
	assert.True(t, a.Summary.MedianFinalNetWorth.Equal(b.Summary.MedianFinalNetWorth))
	assert.True(t, a.SuccessRate.Equal(b.SuccessRate))

	other := runMC(t, domain.MonteCarloConfig{Simulations: 80, VolatilityPct: 20, Seed: seed(4321)})
	assert.False(t, a.Summary.MedianFinalNetWorth.Equal(other.Summary.MedianFinalNetWorth))
}

func TestMonteCarloIndependentOfWorkerCount(t *testing.T) {
	cfg := domain.MonteCarloConfig{Simulations: 64, VolatilityPct: 18, Seed: seed(9)}
	serial := &MonteCarloEngine{Workers: 1, Logger: NopLogger{}}
	parallel := &MonteCarloEngine{Workers: 8, Logger: NopLogger{}}

	a, err := serial.Run(context.Background(), mcScenario(), cfg)
	require.NoError(t, err)
	b, err := parallel.Run(context.Background(), mcScenario(), cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Bands, b.Bands)
}

func TestMonteCarloVolatilityWidensSpread(t *testing.T) {
	low := runMC(t, domain.MonteCarloConfig{Simulations: 200, VolatilityPct: 5, Seed: seed(42)})
	high := runMC(t, domain.MonteCarloConfig{Simulations: 200, VolatilityPct: 30, Seed: seed(42)})

	lowSpread := low.Summary.P90FinalNetWorth.Sub(low.Summary.P10FinalNetWorth)
	highSpread := high.Summary.P90FinalNetWorth.Sub(high.Summary.P10FinalNetWorth)
	assert.True(t, highSpread.GreaterThan(lowSpread), "low %s high %s", lowSpread, highSpread)
}

func TestMonteCarloRates(t *testing.T) {
	result := runMC(t, domain.MonteCarloConfig{Simulations: 100, VolatilityPct: 10})

	assert.Equal(t, 100, result.Simulations)
	assert.Equal(t, DefaultSeed, result.Seed)
	assert.Equal(t, EngineVersion, result.EngineVersion)
	assert.Len(t, result.InputHash, 64)
	assert.True(t, result.SuccessRate.Equal(decimal.NewFromInt(1)), "balances stay positive: %s", result.SuccessRate)

	require.Len(t, result.GoalSuccess, 2)
	cushion, moon := result.GoalSuccess[0], result.GoalSuccess[1]
	assert.Equal(t, "cushion", cushion.GoalID)
	assert.True(t, cushion.SuccessRate.Equal(decimal.NewFromInt(1)))
	assert.True(t, moon.SuccessRate.IsZero())
	assert.True(t, moon.Target.GreaterThan(dec("10000000")))

	last := result.Bands[len(result.Bands)-1]
	assert.True(t, result.Summary.MedianFinalNetWorth.Equal(last.P50))
}

func TestMonteCarloCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := RunMonteCarlo(ctx, mcScenario(), domain.MonteCarloConfig{Simulations: 500})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPercentile(t *testing.T) {
	sorted := []decimal.Decimal{dec("10"), dec("20"), dec("30"), dec("40"), dec("50")}
	assertDecimalEqual(t, "10", percentile(sorted, 0))
	assertDecimalEqual(t, "30", percentile(sorted, 50))
	assertDecimalEqual(t, "50", percentile(sorted, 100))
	assertDecimalEqual(t, "14", percentile(sorted, 10))
	assert.True(t, percentile(nil, 50).IsZero())
}
