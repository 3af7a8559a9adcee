package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/hpgo/internal/domain"
)

// FormatMonteCarlo renders a Monte Carlo result as console, json or csv.
// The console view shows the final band of each calendar year.
func FormatMonteCarlo(res *domain.MonteCarloResult, currency, format string) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("no monte carlo result to format")
	}
	switch format {
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "csv":
		return monteCarloCSV(res)
	case "console", "":
		return monteCarloConsole(res, currency), nil
	default:
		return nil, fmt.Errorf("unsupported monte carlo format: %s", format)
	}
}

func monteCarloConsole(res *domain.MonteCarloResult, cur string) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, titleStyle.Render("MONTE CARLO NET WORTH"))
	fmt.Fprintf(&buf, "Simulations: %d  Volatility: %.2f%%  Seed: %d\n", res.Simulations, res.VolatilityPct, res.Seed)
	fmt.Fprintf(&buf, "Success Rate: %s\n", FormatPercentage(res.SuccessRate))
	fmt.Fprintf(&buf, "Final Net Worth: P10 %s  P50 %s  P90 %s\n",
		FormatCurrency(res.Summary.P10FinalNetWorth, cur),
		FormatCurrency(res.Summary.MedianFinalNetWorth, cur),
		FormatCurrency(res.Summary.P90FinalNetWorth, cur))
	fmt.Fprintln(&buf)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Month", "P10", "P25", "P50", "P75", "P90")
	for i, b := range res.Bands {
		if i != len(res.Bands)-1 && b.Month[5:] != "12" {
			continue
		}
		t.Row(b.Month,
			FormatCurrency(b.P10, cur),
			FormatCurrency(b.P25, cur),
			FormatCurrency(b.P50, cur),
			FormatCurrency(b.P75, cur),
			FormatCurrency(b.P90, cur))
	}
	fmt.Fprintln(&buf, t.String())

	if len(res.GoalSuccess) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, sectionStyle.Render("GOALS"))
		for _, g := range res.GoalSuccess {
			fmt.Fprintf(&buf, "  %-24s target %s  success %s\n", g.Name, FormatCurrency(g.Target, cur), FormatPercentage(g.SuccessRate))
		}
	}
	return buf.Bytes()
}

func monteCarloCSV(res *domain.MonteCarloResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Month", "P10", "P25", "P50", "P75", "P90"}); err != nil {
		return nil, err
	}
	for _, b := range res.Bands {
		if err := w.Write([]string{b.Month, money(b.P10), money(b.P25), money(b.P50), money(b.P75), money(b.P90)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
