package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/hpgo/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

var severityStyles = map[domain.Severity]lipgloss.Style{
	domain.SeverityInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
	domain.SeverityWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
	domain.SeverityError: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true),
}

// ConsoleFormatter renders a human-readable report with the annual summary,
// goal status and warnings.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	if result == nil {
		return nil, errNoResult
	}
	var buf bytes.Buffer
	cur := result.Currency

	fmt.Fprintln(&buf, titleStyle.Render("HOUSEHOLD PROJECTION SUMMARY"))
	fmt.Fprintf(&buf, "Window:          %s to %s (%d months)\n", result.StartDate, result.EndDate, len(result.Monthly))
	fmt.Fprintf(&buf, "Final Net Worth: %s\n", FormatCurrency(result.FinalNetWorth(), cur))
	fmt.Fprintf(&buf, "Engine:          %s\n", result.EngineVersion)
	fmt.Fprintf(&buf, "Input Hash:      %s\n", result.InputHash)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("ANNUAL SUMMARY"))
	fmt.Fprintln(&buf, annualTable(result.Annual, cur))
	fmt.Fprintln(&buf)

	if len(result.Series.Goals) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("GOALS"))
		last := len(result.Series.NetWorth) - 1
		for _, g := range result.Series.Goals {
			if last < 0 {
				break
			}
			fmt.Fprintf(&buf, "  %-24s target %s  funded %s\n",
				g.Name, FormatCurrency(g.Target[last], cur), FormatPercentage(g.FundedRatio[last]))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, sectionStyle.Render("WARNINGS"))
	if len(result.Warnings) == 0 {
		fmt.Fprintln(&buf, "  none")
	}
	for _, w := range result.Warnings {
		style, ok := severityStyles[w.Severity]
		if !ok {
			style = lipgloss.NewStyle()
		}
		fmt.Fprintf(&buf, "  %s %s\n", style.Render(fmt.Sprintf("[%s] %s", w.Severity, w.Code)), w.Message)
	}
	return buf.Bytes(), nil
}

func annualTable(rows []domain.AnnualSummary, cur string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Year", "Income", "Expenses", "Taxes", "Loans", "Contrib", "Returns", "Net Savings", "End Net Worth", "Eff. Tax")
	for _, a := range rows {
		t.Row(
			strconv.Itoa(a.Year),
			FormatCurrency(a.Income, cur),
			FormatCurrency(a.Expenses, cur),
			FormatCurrency(a.Taxes, cur),
			FormatCurrency(a.LoanPayments, cur),
			FormatCurrency(a.Contributions, cur),
			FormatCurrency(a.InvestmentReturns, cur),
			FormatCurrency(a.NetSavings, cur),
			FormatCurrency(a.EndNetWorth, cur),
			FormatPercentage(a.EffectiveTaxRate()),
		)
	}
	return t.String()
}
