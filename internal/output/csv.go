package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes one row per projected month, followed by one column
// per account balance.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	if result == nil {
		return nil, errNoResult
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Month", "Income", "Expenses", "Taxes", "LoanPayments", "Contributions",
		"InvestmentReturns", "NetCashflow", "TotalAssets", "TotalLiabilities", "NetWorth"}
	for _, acct := range result.Series.Accounts {
		header = append(header, "Account:"+acct.AccountID)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, m := range result.Monthly {
		row := []string{
			m.Month,
			money(m.Income),
			money(m.Expenses),
			money(m.Taxes),
			money(m.LoanPayments),
			money(m.Contributions),
			money(m.InvestmentReturns),
			money(m.NetCashflow),
			money(m.TotalAssets),
			money(m.TotalLiabilities),
			money(m.NetWorth),
		}
		for _, acct := range result.Series.Accounts {
			row = append(row, money(m.AccountBalances[acct.AccountID]))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// AnnualCSVFormatter writes one row per calendar year.
type AnnualCSVFormatter struct{}

func (a AnnualCSVFormatter) Name() string { return "annual-csv" }

func (a AnnualCSVFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	if result == nil {
		return nil, errNoResult
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Months", "Income", "Expenses", "Taxes", "LoanPayments", "Contributions",
		"InvestmentReturns", "NetSavings", "EndNetWorth", "EffectiveTaxRate"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, y := range result.Annual {
		row := []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Months),
			money(y.Income),
			money(y.Expenses),
			money(y.Taxes),
			money(y.LoanPayments),
			money(y.Contributions),
			money(y.InvestmentReturns),
			money(y.NetSavings),
			money(y.EndNetWorth),
			y.EffectiveTaxRate().StringFixed(4),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }
