package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/hpgo/internal/domain"
)

// JSONFormatter renders the full result as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	if result == nil {
		return nil, errNoResult
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
