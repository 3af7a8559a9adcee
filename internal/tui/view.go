package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/output"
	"github.com/rgehrsitz/hpgo/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}
	if m.result == nil {
		return m.renderApp(BorderStyle.Render("No projection loaded."))
	}

	var content string
	switch m.currentScene {
	case SceneSummary:
		content = m.renderSummary()
	case SceneMonthly:
		content = m.monthly.View()
	case SceneWarnings:
		content = m.warnings.View()
	case SceneChart:
		content = m.renderChart()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("HPGO - Household Projection")
	crumb := m.currentScene.String()
	if m.result != nil {
		crumb = fmt.Sprintf("%s / %s to %s", crumb, m.result.StartDate, m.result.EndDate)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	return StatusBarStyle.Width(max(0, m.width-2)).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) renderSummary() string {
	res := m.result
	cur := res.Currency
	final := res.FinalNetWorth()
	start := decimalAt(res.Series.NetWorth, 0)
	change := final.Sub(start)

	cards := []*components.MetricCard{
		components.NewMetricCard("Final Net Worth", FormatCurrency(final, cur)).
			WithTrend(change.Sign() >= 0, FormatCurrency(change.Abs(), cur)),
		components.NewMetricCard("Months", fmt.Sprint(len(res.Monthly))),
		components.NewMetricCard("Warnings", fmt.Sprint(len(res.Warnings))),
	}
	if n := len(res.Annual); n > 0 {
		cards = append(cards, components.NewMetricCard("Effective Tax", output.FormatPercentage(res.Annual[n-1].EffectiveTaxRate())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, components.MetricGrid(cards, 4), m.annual.View())
}

func (m Model) renderChart() string {
	values := make([]float64, len(m.result.Series.NetWorth))
	for i, v := range m.result.Series.NetWorth {
		values[i] = v.InexactFloat64()
	}
	chart := components.NewBarChart("Net worth by month", values).
		WithSize(max(10, m.width-6), max(4, m.height-10))
	months := m.result.Series.Months
	axis := ""
	if len(months) > 0 {
		axis = SubtitleStyle.Render(fmt.Sprintf("%s … %s", months[0], months[len(months)-1]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, chart.Render(), axis)
}

func (m Model) renderHelp() string {
	return BorderStyle.Render("HPGO - Household Projection\n\n" + m.help.FullHelpView(m.keys.FullHelp()) +
		"\n\nArrow keys and PgUp/PgDn scroll tables and the warning list.")
}

func renderWarnings(warnings []domain.Warning) string {
	if len(warnings) == 0 {
		return InfoStyle.Render("No warnings.")
	}
	var b strings.Builder
	for _, w := range warnings {
		style := InfoStyle
		switch w.Severity {
		case domain.SeverityWarn:
			style = WarnStyle
		case domain.SeverityError:
			style = ErrorStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("[%s] %s", w.Severity, w.Code)))
		b.WriteString(" ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}
	return b.String()
}

func decimalAt(values []decimal.Decimal, i int) decimal.Decimal {
	if i < 0 || i >= len(values) {
		return decimal.Zero
	}
	return values[i]
}
