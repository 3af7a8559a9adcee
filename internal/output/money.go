package output

import (
	"strings"

	"github.com/rgehrsitz/hpgo/pkg/finmath"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"AUD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// FormatCurrency renders amount rounded to cents with thousands separators,
// e.g. "$1,234.50" or "-$20.00". Unknown currency codes prefix the code.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}
	rounded := finmath.RoundMoney(amount)
	sign := ""
	if rounded.Sign() < 0 {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole := rounded.IntPart()
	cents := rounded.Sub(decimal.NewFromInt(whole)).StringFixed(2)[1:]
	return sign + symbol + printer.Sprintf("%d", whole) + cents
}

// FormatPercentage renders a fraction as a percentage with two decimals.
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
