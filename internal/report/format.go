package report

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency code is configured.
const DefaultCurrency = "USD"

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// FormatAmount renders an amount with exactly two decimals ("1000.00").
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Formatter renders amounts as currency text ("$1,000.00").
type Formatter struct {
	currency money.Currency
}

// NewFormatter returns a Formatter for an ISO 4217 code. Unknown codes fall
// back to DefaultCurrency.
func NewFormatter(code string) Formatter {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	return Formatter{currency: *cur}
}

// Code returns the ISO currency code.
func (f Formatter) Code() string {
	return f.currency.Code
}

// Format renders d in the formatter's currency, rounded to the currency's
// minor unit.
func (f Formatter) Format(d decimal.Decimal) string {
	frac := int32(f.currency.Fraction)
	minor := d.Round(frac).Shift(frac)
	if minor.Abs().LessThanOrEqual(maxMinorUnits) {
		return f.currency.Formatter().Format(minor.IntPart())
	}
	return f.formatDigits(minor.Abs().String(), minor.IsNegative())
}

// formatDigits lays out a minor-unit digit string with the currency's
// separators and template. It covers amounts go-money cannot hold in an int64.
func (f Formatter) formatDigits(digits string, negative bool) string {
	c := f.currency
	if c.Thousand != "" {
		for i := len(digits) - c.Fraction - 3; i > 0; i -= 3 {
			digits = digits[:i] + c.Thousand + digits[i:]
		}
	}
	if c.Fraction > 0 {
		digits = digits[:len(digits)-c.Fraction] + c.Decimal + digits[len(digits)-c.Fraction:]
	}

	out := strings.Replace(c.Template, "1", digits, 1)
	out = strings.Replace(out, "$", c.Grapheme, 1)
	if negative {
		out = "-" + out
	}
	return out
}
