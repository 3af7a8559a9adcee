package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/inputhash"
)

var (
	defaultProjection = NewProjectionEngine()
	defaultMonteCarlo = NewMonteCarloEngine()
)

// RunEngine prepares input and runs a deterministic projection.
func RunEngine(ctx context.Context, input *domain.ScenarioInput) (*domain.ProjectionResult, error) {
	return defaultProjection.Run(ctx, input)
}

// ValidateInput reports the first problem with input, or nil. Errors wrap
// config.ErrInvalidInput.
func ValidateInput(input *domain.ScenarioInput) error {
	_, err := config.Prepare(input)
	return err
}

// GetInputHash returns the cache key of input after normalization, so
// inputs differing only in defaulted fields share a key.
func GetInputHash(input *domain.ScenarioInput) (string, error) {
	if input == nil {
		return "", fmt.Errorf("%w: scenario is required", config.ErrInvalidInput)
	}
	return inputhash.Compute(config.Normalize(input))
}

// RunMonteCarlo runs a resampling analysis of input.
func RunMonteCarlo(ctx context.Context, input *domain.ScenarioInput, cfg domain.MonteCarloConfig) (*domain.MonteCarloResult, error) {
	return defaultMonteCarlo.Run(ctx, input, cfg)
}
