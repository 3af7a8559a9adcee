package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a scenario file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the decoder from the file extension; anything that is
// not .json is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML or JSON file and prepares it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	scenario, err := ip.Parse(data, FormatForPath(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	prepared, err := Prepare(scenario)
	if err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return prepared, nil
}

// Parse decodes a scenario without normalizing or validating it.
func (ip *InputParser) Parse(data []byte, format Format) (*domain.ScenarioInput, error) {
	var scenario domain.ScenarioInput
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&scenario); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&scenario); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", format)
	}
	return &scenario, nil
}

// Encode writes a scenario in the given format.
func (ip *InputParser) Encode(scenario *domain.ScenarioInput, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(scenario, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(scenario); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", format)
	}
}
