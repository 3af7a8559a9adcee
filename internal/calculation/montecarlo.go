package calculation

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/inputhash"
	"github.com/rgehrsitz/hpgo/pkg/finmath"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Monte Carlo bounds and defaults.
const (
	MinSimulations       = 50
	MaxSimulations       = 2000
	DefaultSimulations   = 1000
	MinVolatilityPct     = 1.0
	MaxVolatilityPct     = 50.0
	DefaultVolatilityPct = 15.0
	DefaultSeed          = int64(42)

	// sampled annual returns never go below this, in percent
	returnFloorPct = -95.0
)

var bandPercentiles = [...]float64{10, 25, 50, 75, 90}

// MonteCarloEngine re-runs the projection with resampled account returns.
type MonteCarloEngine struct {
	Workers int
	Logger  Logger
}

// NewMonteCarloEngine creates an engine using one worker per CPU.
func NewMonteCarloEngine() *MonteCarloEngine {
	return &MonteCarloEngine{Workers: runtime.NumCPU(), Logger: NopLogger{}}
}

// SetLogger sets the logger; nil installs a no-op logger.
func (mce *MonteCarloEngine) SetLogger(l Logger) {
	if l == nil {
		mce.Logger = NopLogger{}
		return
	}
	mce.Logger = l
}

// NormalizeMonteCarloConfig applies defaults and clamps. A zero simulation
// count or volatility selects the default before clamping.
func NormalizeMonteCarloConfig(cfg domain.MonteCarloConfig) (sims int, volPct float64, seed int64) {
	sims = cfg.Simulations
	if sims == 0 {
		sims = DefaultSimulations
	}
	sims = finmath.ClampInt(sims, MinSimulations, MaxSimulations)

	volPct = cfg.VolatilityPct
	if volPct == 0 {
		volPct = DefaultVolatilityPct
	}
	volPct = finmath.ClampFloat(volPct, MinVolatilityPct, MaxVolatilityPct)

	seed = DefaultSeed
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	return sims, volPct, seed
}

// Run executes the simulations in parallel. Each simulation draws from its
// own generator seeded with seed^index, so results do not depend on worker
// count or scheduling. Cancelling ctx stops outstanding simulations and
// returns ctx.Err().
func (mce *MonteCarloEngine) Run(ctx context.Context, input *domain.ScenarioInput, cfg domain.MonteCarloConfig) (*domain.MonteCarloResult, error) {
	prepared, err := config.Prepare(input)
	if err != nil {
		return nil, err
	}
	hash, err := inputhash.Compute(prepared)
	if err != nil {
		return nil, fmt.Errorf("hash input: %w", err)
	}
	p, err := newPlan(prepared)
	if err != nil {
		return nil, err
	}

	sims, volPct, seed := NormalizeMonteCarloConfig(cfg)
	workers := mce.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	mce.Logger.Debugf("monte carlo: %d simulations, volatility %.1f%%, seed %d, %d workers",
		sims, volPct, seed, workers)
	began := time.Now()

	means := make([]float64, len(prepared.Accounts))
	for a, acct := range prepared.Accounts {
		means[a] = acct.ReturnPct().InexactFloat64()
	}

	// paths[s][m] is net worth of simulation s at month m
	paths := make([][]decimal.Decimal, sims)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for s := 0; s < sims; s++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			path, err := p.simulateNetWorth(gctx, sampleReturns(seed, s, means, volPct))
			if err != nil {
				return err
			}
			paths[s] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := p.reduce(paths)
	result.EngineVersion = EngineVersion
	result.InputHash = hash
	result.Simulations = sims
	result.VolatilityPct = volPct
	result.Seed = seed

	mce.Logger.Infof("monte carlo complete: %d simulations in %s, success rate %s",
		sims, time.Since(began), result.SuccessRate.String())
	return result, nil
}

// sampleReturns draws one annual return per account, in percent, from
// N(mean, vol) and floors it.
func sampleReturns(seed int64, sim int, means []float64, volPct float64) []decimal.Decimal {
	rng := rand.New(rand.NewSource(seed ^ int64(sim)))
	out := make([]decimal.Decimal, len(means))
	for a, mean := range means {
		r := mean + rng.NormFloat64()*volPct
		if r < returnFloorPct {
			r = returnFloorPct
		}
		out[a] = finmath.FromFloat(finmath.RoundFloat(r, 6))
	}
	return out
}

// simulateNetWorth runs the month loop with the given account returns and
// keeps only net worth.
func (p *plan) simulateNetWorth(ctx context.Context, returnsPct []decimal.Decimal) ([]decimal.Decimal, error) {
	tracker := p.accounts.Clone()
	for a, r := range returnsPct {
		tracker.SetAnnualReturn(a, r)
	}
	path := make([]decimal.Decimal, len(p.dates))
	err := p.simulate(ctx, tracker, func(i int, ms *monthState) {
		path[i] = ms.netWorth()
	})
	if err != nil {
		return nil, err
	}
	return path, nil
}

// reduce turns the simulation matrix into bands and rates. It runs on one
// goroutine after every simulation has finished.
func (p *plan) reduce(paths [][]decimal.Decimal) *domain.MonteCarloResult {
	sims := len(paths)
	months := p.index.Months()
	result := &domain.MonteCarloResult{
		Bands:       make([]domain.PercentileBand, len(months)),
		GoalSuccess: make([]domain.GoalSuccessRate, 0, len(p.input.Goals)),
	}

	column := make([]decimal.Decimal, sims)
	for m, key := range months {
		for s := range paths {
			column[s] = paths[s][m]
		}
		sortDecimals(column)
		var q [len(bandPercentiles)]decimal.Decimal
		for k, pct := range bandPercentiles {
			q[k] = finmath.RoundMoney(percentile(column, pct))
		}
		result.Bands[m] = domain.PercentileBand{Month: key, P10: q[0], P25: q[1], P50: q[2], P75: q[3], P90: q[4]}
	}

	// column still holds the sorted final month
	final := column
	positive := 0
	for _, v := range final {
		if v.Sign() > 0 {
			positive++
		}
	}
	total := decimal.NewFromInt(int64(sims))
	result.SuccessRate = decimal.NewFromInt(int64(positive)).DivRound(total, 4)

	for _, g := range p.input.Goals {
		target := p.goalTarget(g)
		met := sims - sort.Search(sims, func(i int) bool { return final[i].GreaterThanOrEqual(target) })
		result.GoalSuccess = append(result.GoalSuccess, domain.GoalSuccessRate{
			GoalID:      g.ID,
			Name:        g.Name,
			Target:      target,
			SuccessRate: decimal.NewFromInt(int64(met)).DivRound(total, 4),
		})
	}

	last := result.Bands[len(result.Bands)-1]
	result.Summary = domain.MonteCarloSummary{
		MedianFinalNetWorth: last.P50,
		P10FinalNetWorth:    last.P10,
		P90FinalNetWorth:    last.P90,
	}
	return result
}

func sortDecimals(values []decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
}

// percentile interpolates linearly between the closest ranks of a sorted
// sample.
func percentile(sorted []decimal.Decimal, pct float64) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	rank := pct / 100 * float64(len(sorted)-1)
	lower := int(rank)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	weight := finmath.FromFloat(rank - float64(lower))
	lo, hi := sorted[lower], sorted[lower+1]
	return lo.Add(hi.Sub(lo).Mul(weight))
}
