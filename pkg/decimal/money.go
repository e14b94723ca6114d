package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money represents a dollar amount for display
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal amount
func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

// ParseMoney accepts plain or formatted amounts such as "60000", "60,000.50"
// or "$60,000". Surrounding whitespace is ignored.
func ParseMoney(value string) (Money, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "_", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the amount to cents, halves away from zero
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// String returns the amount with two decimals and no grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format returns the amount as grouped US currency, e.g. "$1,082.50".
func (m Money) Format() string {
	return group(m.Round(), 2)
}

// FormatWhole drops the cents when the amount is a whole number of dollars,
// e.g. "$23,850" for a bracket bound.
func (m Money) FormatWhole() string {
	if m.Decimal.Equal(m.Decimal.Truncate(0)) {
		return group(m, 0)
	}
	return m.Format()
}

// group renders whole dollars through the locale printer and appends the
// cents from the exact decimal. Amounts must fit in int64 dollars.
func group(m Money, places int) string {
	sign := ""
	if m.Decimal.IsNegative() {
		sign = "-"
	}
	abs := m.Decimal.Abs()
	whole := abs.Truncate(0)
	s := sign + printer.Sprintf("$%d", whole.IntPart())
	if places == 0 {
		return s
	}
	return s + strings.TrimPrefix(abs.Sub(whole).StringFixed(2), "0")
}

// FormatRate renders a fractional rate as a percentage without trailing
// zeros: 0.12 is "12%", 0.025 is "2.5%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// FormatPercent renders an amount already expressed in percent with two
// decimals, e.g. "85.00%".
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}
