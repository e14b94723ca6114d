package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// unboundedToken is the YAML spelling of an open upper bound.
const unboundedToken = "inf"

// Bracket is one marginal-rate band of a tax table. The top band of a table
// is Unbounded and its Upper value is ignored.
type Bracket struct {
	Lower     decimal.Decimal `yaml:"lower" json:"lower"`
	Upper     decimal.Decimal `yaml:"upper" json:"upper"`
	Unbounded bool            `yaml:"-" json:"unbounded,omitempty"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// NewBracket creates a bounded bracket [lower, upper) taxed at rate.
func NewBracket(lower, upper int64, rate float64) Bracket {
	return Bracket{
		Lower: decimal.NewFromInt(lower),
		Upper: decimal.NewFromInt(upper),
		Rate:  decimal.NewFromFloat(rate),
	}
}

// NewTopBracket creates the open-ended bracket that ends every table.
func NewTopBracket(lower int64, rate float64) Bracket {
	return Bracket{
		Lower:     decimal.NewFromInt(lower),
		Unbounded: true,
		Rate:      decimal.NewFromFloat(rate),
	}
}

// Cap limits amount to the bracket's upper bound.
func (b Bracket) Cap(amount decimal.Decimal) decimal.Decimal {
	if b.Unbounded {
		return amount
	}
	return decimal.Min(amount, b.Upper)
}

// Covers reports whether amount does not exceed the bracket's upper bound.
func (b Bracket) Covers(amount decimal.Decimal) bool {
	return b.Unbounded || amount.LessThanOrEqual(b.Upper)
}

// UnmarshalYAML accepts `upper: inf` (or an omitted upper) for the top bracket.
func (b *Bracket) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Lower string `yaml:"lower"`
		Upper string `yaml:"upper"`
		Rate  string `yaml:"rate"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	lower, err := decimal.NewFromString(strings.TrimSpace(aux.Lower))
	if err != nil {
		return fmt.Errorf("bracket lower %q: %w", aux.Lower, err)
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(aux.Rate))
	if err != nil {
		return fmt.Errorf("bracket rate %q: %w", aux.Rate, err)
	}

	*b = Bracket{Lower: lower, Rate: rate}
	upper := strings.ToLower(strings.TrimSpace(aux.Upper))
	if upper == "" || upper == unboundedToken || upper == ".inf" || upper == "+inf" {
		b.Unbounded = true
		return nil
	}
	b.Upper, err = decimal.NewFromString(upper)
	if err != nil {
		return fmt.Errorf("bracket upper %q: %w", aux.Upper, err)
	}
	return nil
}

// MarshalYAML writes the top bracket's upper bound as "inf".
func (b Bracket) MarshalYAML() (interface{}, error) {
	upper := unboundedToken
	if !b.Unbounded {
		upper = b.Upper.String()
	}
	return map[string]string{
		"lower": b.Lower.String(),
		"upper": upper,
		"rate":  b.Rate.String(),
	}, nil
}

// SSThresholds holds the married-filing-jointly Social Security taxability tiers.
type SSThresholds struct {
	Tier1              decimal.Decimal `yaml:"tier1" json:"tier1"`
	Tier2              decimal.Decimal `yaml:"tier2" json:"tier2"`
	MaxTaxableFraction decimal.Decimal `yaml:"max_taxable_fraction" json:"max_taxable_fraction"`
}

// TaxYearProfile is the frozen table of rates and thresholds for one tax year.
// Profiles are handed out by value; bracket slices are copied on the way out so
// registry data can never be changed through a profile.
type TaxYearProfile struct {
	Year                 string          `yaml:"year" json:"year"`
	OrdinaryBrackets     []Bracket       `yaml:"ordinary_brackets" json:"ordinary_brackets"`
	CapitalGainsBrackets []Bracket       `yaml:"capital_gains_brackets" json:"capital_gains_brackets"`
	StandardDeduction    decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	Over65Deduction      decimal.Decimal `yaml:"over_65_deduction" json:"over_65_deduction"`
	Over65ExtraDeduction decimal.Decimal `yaml:"over_65_extra_deduction" json:"over_65_extra_deduction"`
	StateFlatRate        decimal.Decimal `yaml:"state_flat_rate" json:"state_flat_rate"`
	SocialSecurity       SSThresholds    `yaml:"social_security" json:"social_security"`
}

// Clone returns a deep copy of the profile.
func (p TaxYearProfile) Clone() TaxYearProfile {
	out := p
	out.OrdinaryBrackets = append([]Bracket(nil), p.OrdinaryBrackets...)
	out.CapitalGainsBrackets = append([]Bracket(nil), p.CapitalGainsBrackets...)
	return out
}

// TotalStandardDeduction returns the base deduction plus both over-65
// amounts for each senior in the household.
func (p TaxYearProfile) TotalStandardDeduction(seniors int) decimal.Decimal {
	n := decimal.NewFromInt(int64(seniors))
	return p.StandardDeduction.
		Add(p.Over65Deduction.Mul(n)).
		Add(p.Over65ExtraDeduction.Mul(n))
}
