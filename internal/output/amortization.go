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

// FormatAmortization renders a loan schedule as console, json or csv.
func FormatAmortization(loanID string, rows []domain.AmortizationRow, currency, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(struct {
			LoanID string                   `json:"loanId"`
			Rows   []domain.AmortizationRow `json:"rows"`
		}{loanID, rows}, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "csv":
		buf := &bytes.Buffer{}
		w := csv.NewWriter(buf)
		if err := w.Write([]string{"Month", "Payment", "Principal", "Interest", "Balance"}); err != nil {
			return nil, err
		}
		for _, r := range rows {
			if err := w.Write([]string{r.Month, money(r.Payment), money(r.Principal), money(r.Interest), money(r.Balance)}); err != nil {
				return nil, err
			}
		}
		w.Flush()
		return buf.Bytes(), w.Error()
	case "console", "":
		var buf bytes.Buffer
		fmt.Fprintln(&buf, titleStyle.Render("AMORTIZATION SCHEDULE: "+loanID))
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			Headers("Month", "Payment", "Principal", "Interest", "Balance")
		for _, r := range rows {
			t.Row(r.Month,
				FormatCurrency(r.Payment, currency),
				FormatCurrency(r.Principal, currency),
				FormatCurrency(r.Interest, currency),
				FormatCurrency(r.Balance, currency))
		}
		fmt.Fprintln(&buf, t.String())
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported amortization format: %s", format)
	}
}
