package output

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/hpgo/internal/domain"
)

// Formatter renders a projection result into bytes.
type Formatter interface {
	Name() string
	Format(result *domain.ProjectionResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(result *domain.ProjectionResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.ProjectionResult) ([]byte, error) {
	return f.F(result)
}

var errNoResult = errors.New("no projection result to format")

var registry = map[string]Formatter{}

// aliases map alternate names onto registered formatters.
var aliases = map[string]string{
	"text":    "console",
	"table":   "console",
	"monthly": "csv",
	"annual":  "annual-csv",
}

var extensions = map[string]string{
	"console":    "txt",
	"json":       "json",
	"csv":        "csv",
	"annual-csv": "csv",
	"html":       "html",
}

func register(f Formatter) { registry[f.Name()] = f }

func init() {
	register(ConsoleFormatter{})
	register(JSONFormatter{})
	register(CSVFormatter{})
	register(AnnualCSVFormatter{})
	register(HTMLFormatter{})
}

// GetFormatterByName returns the formatter registered under name or alias,
// or nil.
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	return registry[name]
}

// AvailableFormatterNames lists registered formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases, sorted.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders result and writes it to path. An empty path picks a
// timestamped file name in the working directory. The written path is
// returned.
func WriteFormatted(f Formatter, result *domain.ProjectionResult, path string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	if path == "" {
		ext, ok := extensions[f.Name()]
		if !ok {
			ext = "out"
		}
		path = fmt.Sprintf("projection_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
