package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		expected string
	}{
		{"0", "USD", "$0.00"},
		{"1234.5", "USD", "$1,234.50"},
		{"1234567.891", "USD", "$1,234,567.89"},
		{"-20", "USD", "-$20.00"},
		{"-0.004", "USD", "$0.00"},
		{"99.995", "eur", "€100.00"},
		{"10", "CHF", "CHF 10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.amount+tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(dec(tt.amount), tt.currency))
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "16.01%", FormatPercentage(dec("0.1601")))
	assert.Equal(t, "0.00%", FormatPercentage(dec("0")))
	assert.Equal(t, "-2.50%", FormatPercentage(dec("-0.025")))
}
