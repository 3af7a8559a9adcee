package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/inputhash"
)

// EngineVersion is stamped on every result.
const EngineVersion = "hpgo-engine/1.0.0"

// ProjectionEngine runs deterministic month-by-month projections.
type ProjectionEngine struct {
	Logger Logger
}

// NewProjectionEngine creates a new projection engine
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger; nil installs a no-op logger.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// Run prepares input, simulates every month of the household window and
// returns the projection. Invalid input fails before any month is simulated.
func (pe *ProjectionEngine) Run(ctx context.Context, input *domain.ScenarioInput) (*domain.ProjectionResult, error) {
	prepared, err := config.Prepare(input)
	if err != nil {
		return nil, err
	}
	hash, err := inputhash.Compute(prepared)
	if err != nil {
		return nil, fmt.Errorf("hash input: %w", err)
	}

	began := time.Now()
	p, err := newPlan(prepared)
	if err != nil {
		return nil, err
	}
	pe.Logger.Debugf("projecting %d months for %d accounts, %d loans (input %s)",
		len(p.dates), len(prepared.Accounts), len(prepared.Loans), hash[:12])

	result, err := p.project(ctx)
	if err != nil {
		return nil, err
	}
	result.EngineVersion = EngineVersion
	result.InputHash = hash

	pe.Logger.Infof("projection complete: %d months, final net worth %s, %d warnings in %s",
		len(result.Monthly), result.FinalNetWorth().StringFixed(2), len(result.Warnings), time.Since(began))
	return result, nil
}

// AmortizationSchedule returns the whole-life schedule of one of input's
// loans.
func (pe *ProjectionEngine) AmortizationSchedule(input *domain.ScenarioInput, loanID string) (*AmortizationSchedule, error) {
	prepared, err := config.Prepare(input)
	if err != nil {
		return nil, err
	}
	for _, loan := range prepared.Loans {
		if loan.ID == loanID {
			return FullAmortizationSchedule(loan), nil
		}
	}
	return nil, fmt.Errorf("loan %q not found", loanID)
}
