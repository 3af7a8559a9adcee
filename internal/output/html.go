package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct": FormatPercentage,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	if result == nil {
		return nil, errNoResult
	}
	var buf bytes.Buffer
	cur := result.Currency
	data := struct {
		*domain.ProjectionResult
		Final string
		Curr  func(decimal.Decimal) string
	}{
		ProjectionResult: result,
		Final:            FormatCurrency(result.FinalNetWorth(), cur),
		Curr:             func(d decimal.Decimal) string { return FormatCurrency(d, cur) },
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
