package domain

import (
	"github.com/shopspring/decimal"
)

// SeniorsBothOver65 is the household shape the estimator was built around:
// both spouses 65 or older.
const SeniorsBothOver65 = 2

// Input is one household-year to estimate.
type Input struct {
	Year         string          `yaml:"year" json:"year"`
	NonSSIncome  decimal.Decimal `yaml:"non_ss_income" json:"non_ss_income"`
	SSBenefits   decimal.Decimal `yaml:"ss_benefits" json:"ss_benefits"`
	CapitalGains decimal.Decimal `yaml:"capital_gains" json:"capital_gains"`
	Seniors      int             `yaml:"seniors" json:"seniors"` // household members 65+
}

// BracketContribution records how much of one bracket was used and the tax it produced.
type BracketContribution struct {
	Lower         decimal.Decimal `yaml:"lower" json:"lower"`
	Upper         decimal.Decimal `yaml:"upper" json:"upper"`
	Unbounded     bool            `yaml:"unbounded,omitempty" json:"unbounded,omitempty"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	TaxableAmount decimal.Decimal `yaml:"taxable_amount" json:"taxable_amount"`
	Tax           decimal.Decimal `yaml:"tax" json:"tax"`
}

// SSTaxability is the outcome of the Social Security taxability worksheet.
type SSTaxability struct {
	ProvisionalIncome decimal.Decimal `yaml:"provisional_income" json:"provisional_income"`
	TaxableAmount     decimal.Decimal `yaml:"taxable_ss" json:"taxable_ss"`
	PercentTaxed      decimal.Decimal `yaml:"percent_ss_taxed" json:"percent_ss_taxed"`
}

// TaxResult aggregates every figure produced for one household-year.
type TaxResult struct {
	Year                   string          `yaml:"year" json:"year"`
	ProvisionalIncome      decimal.Decimal `yaml:"provisional_income" json:"provisional_income"`
	TaxableSocialSecurity  decimal.Decimal `yaml:"taxable_ss" json:"taxable_ss"`
	PercentSSTaxed         decimal.Decimal `yaml:"percent_ss_taxed" json:"percent_ss_taxed"`
	TotalStandardDeduction decimal.Decimal `yaml:"total_standard_deduction" json:"total_standard_deduction"`
	AdjustedGrossIncome    decimal.Decimal `yaml:"federal_agi" json:"federal_agi"`
	CapitalGains           decimal.Decimal `yaml:"ltcg" json:"ltcg"`
	FederalTax             decimal.Decimal `yaml:"federal_tax_owed" json:"federal_tax_owed"`
	OrdinaryTax            decimal.Decimal `yaml:"ordinary_tax" json:"ordinary_tax"`
	CapitalGainsTax        decimal.Decimal `yaml:"ltcg_tax" json:"ltcg_tax"`
	StateTax               decimal.Decimal `yaml:"state_tax_owed" json:"state_tax_owed"`

	Breakdown             []BracketContribution `yaml:"breakdown" json:"breakdown"`
	CapitalGainsBreakdown []BracketContribution `yaml:"ltcg_breakdown,omitempty" json:"ltcg_breakdown,omitempty"`
}

// TotalTax is federal plus state tax.
func (r *TaxResult) TotalTax() decimal.Decimal {
	return r.FederalTax.Add(r.StateTax)
}

// MarginalRate is the rate of the highest ordinary bracket touched, or zero
// when no ordinary income was taxed.
func (r *TaxResult) MarginalRate() decimal.Decimal {
	if len(r.Breakdown) == 0 {
		return decimal.Zero
	}
	return r.Breakdown[len(r.Breakdown)-1].Rate
}
