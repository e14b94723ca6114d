package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/tax-estimator/internal/domain"
)

// CSVSummarizer implements the summary CSV output (header plus one row).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.TaxResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "ProvisionalIncome", "TaxableSS", "PercentSSTaxed", "StandardDeduction", "FederalAGI", "LTCG", "OrdinaryTax", "LTCGTax", "FederalTax", "StateTax", "TotalTax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := []string{
		result.Year,
		result.ProvisionalIncome.StringFixed(2),
		result.TaxableSocialSecurity.StringFixed(2),
		result.PercentSSTaxed.StringFixed(2),
		result.TotalStandardDeduction.StringFixed(2),
		result.AdjustedGrossIncome.StringFixed(2),
		result.CapitalGains.StringFixed(2),
		result.OrdinaryTax.StringFixed(2),
		result.CapitalGainsTax.StringFixed(2),
		result.FederalTax.StringFixed(2),
		result.StateTax.StringFixed(2),
		result.TotalTax().StringFixed(2),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVBreakdownExporter writes one row per occupied bracket, ordinary income
// first and then capital gains. The upper bound of the top bracket is empty.
type CSVBreakdownExporter struct{}

func (c CSVBreakdownExporter) Name() string      { return "breakdown-csv" }
func (c CSVBreakdownExporter) Extension() string { return "csv" }

func (c CSVBreakdownExporter) Format(result *domain.TaxResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Year", "Kind", "Lower", "Upper", "Rate", "TaxableAmount", "Tax"}); err != nil {
		return nil, err
	}

	sections := []struct {
		kind string
		rows []domain.BracketContribution
	}{
		{"ordinary", result.Breakdown},
		{"ltcg", result.CapitalGainsBreakdown},
	}
	for _, s := range sections {
		for _, c := range s.rows {
			upper := c.Upper.StringFixed(2)
			if c.Unbounded {
				upper = ""
			}
			row := []string{
				result.Year,
				s.kind,
				c.Lower.StringFixed(2),
				upper,
				c.Rate.String(),
				c.TaxableAmount.StringFixed(2),
				c.Tax.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
