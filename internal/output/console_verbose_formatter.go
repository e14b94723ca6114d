package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/tax-estimator/internal/domain"
	money "github.com/rpgo/tax-estimator/pkg/decimal"
)

// ConsoleVerboseFormatter adds the deduction, the capital gains split and the
// combined totals to the console layout.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string      { return "console-verbose" }
func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

func (c ConsoleVerboseFormatter) Format(result *domain.TaxResult) ([]byte, error) {
	var buf bytes.Buffer
	title := fmt.Sprintf("TAX ESTIMATE %s (MARRIED FILING JOINTLY)", result.Year)
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INCOME")
	fmt.Fprintf(&buf, "Standard Deduction: %s\n", FormatCurrency(result.TotalStandardDeduction))
	fmt.Fprintf(&buf, "Long-Term Capital Gains: %s\n", FormatCurrency(result.CapitalGains))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "ORDINARY INCOME BRACKETS")
	if len(result.Breakdown) == 0 {
		fmt.Fprintln(&buf, "No ordinary income taxed")
	}
	writeBreakdown(&buf, "Taxable income", result.Breakdown)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "CAPITAL GAINS BRACKETS")
	if len(result.CapitalGainsBreakdown) == 0 {
		fmt.Fprintln(&buf, "No capital gains taxed")
	}
	writeBreakdown(&buf, "Capital gains", result.CapitalGainsBreakdown)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SUMMARY")
	writeSummary(&buf, result)
	fmt.Fprintf(&buf, "Total Tax: %s\n", FormatCurrency(result.TotalTax()))
	fmt.Fprintf(&buf, "Marginal Ordinary Rate: %s\n", money.FormatRate(result.MarginalRate()))
	return buf.Bytes(), nil
}
