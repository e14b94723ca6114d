package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rpgo/tax-estimator/internal/domain"
	money "github.com/rpgo/tax-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter prints one line per occupied ordinary bracket followed by
// the summary figures.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(result *domain.TaxResult) ([]byte, error) {
	var buf bytes.Buffer
	writeBreakdown(&buf, "Taxable income", result.Breakdown)
	fmt.Fprintln(&buf)
	writeSummary(&buf, result)
	return buf.Bytes(), nil
}

func writeBreakdown(w io.Writer, label string, contributions []domain.BracketContribution) {
	for _, c := range contributions {
		if c.Unbounded {
			fmt.Fprintf(w, "%s of %s above %s taxed at %s: %s\n",
				label, FormatWhole(c.TaxableAmount), FormatWhole(c.Lower), money.FormatRate(c.Rate), FormatCurrency(c.Tax))
			continue
		}
		fmt.Fprintf(w, "%s of %s in the range from %s to %s taxed at %s: %s\n",
			label, FormatWhole(c.TaxableAmount), FormatWhole(c.Lower), FormatWhole(c.Upper), money.FormatRate(c.Rate), FormatCurrency(c.Tax))
	}
}

func writeSummary(w io.Writer, r *domain.TaxResult) {
	fmt.Fprintf(w, "Provisional Income: %s\n", FormatCurrency(r.ProvisionalIncome))
	fmt.Fprintf(w, "Taxable SS Benefits: %s\n", FormatCurrency(r.TaxableSocialSecurity))
	fmt.Fprintf(w, "Percent of SS taxed: %s%%\n", r.PercentSSTaxed.StringFixed(1))
	fmt.Fprintf(w, "Federal AGI (incl. taxable SS): %s\n", FormatCurrency(r.AdjustedGrossIncome))
	fmt.Fprintf(w, "Federal Tax Owed (%s brackets): %s\n", r.Year, FormatCurrency(r.FederalTax))
	fmt.Fprintf(w, "  - Ordinary Income Tax: %s\n", FormatCurrency(r.OrdinaryTax))
	fmt.Fprintf(w, "  - Long-Term Capital Gains Tax: %s\n", FormatCurrency(r.CapitalGainsTax))
	fmt.Fprintf(w, "State Tax Owed (%s): %s\n", r.Year, FormatCurrency(r.StateTax))
}

// FormatCurrency formats a decimal as grouped USD currency with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoney(amount).Format() }

// FormatWhole formats whole-dollar amounts without cents.
func FormatWhole(amount decimal.Decimal) string { return money.NewMoney(amount).FormatWhole() }

// FormatPercentage formats a percent value with 2 decimals.
func FormatPercentage(pct decimal.Decimal) string { return money.FormatPercent(pct) }
