// Package currency maps ISO-like currency codes to display symbols and
// formats monetary amounts for human-readable messages. Amounts stay exact
// decimals right up to formatting.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// symbols maps supported currency codes to their display symbol. Unknown
// codes fall back to the raw code.
var symbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF",
	"CNY": "¥",
	"SGD": "S$",
}

// DefaultCode is used when a user has no profile or no currency set.
const DefaultCode = "INR"

// Symbol returns the display symbol for a currency code, or the code itself
// when the code is unknown.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

// Money formats an amount with the given symbol, thousands grouping, and no
// fractional digits. Insight messages use this form.
func Money(symbol string, amount decimal.Decimal) string {
	return symbol + group(amount.Abs().StringFixed(0))
}

// MoneyExact formats an amount with the given symbol, thousands grouping,
// and two fractional digits. Notification messages use this form.
func MoneyExact(symbol string, amount decimal.Decimal) string {
	return symbol + group(amount.Abs().StringFixed(2))
}

// Percent formats a percentage to one decimal place, without a sign.
func Percent(pct decimal.Decimal) string {
	return pct.Abs().StringFixed(1) + "%"
}

// group inserts comma thousands separators into a non-negative fixed-point
// decimal string.
func group(s string) string {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	n := len(intPart)
	if n <= 3 {
		if hasFrac {
			return intPart + "." + fracPart
		}
		return intPart
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
