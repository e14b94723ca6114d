package taxtable

import (
	"github.com/rotisserie/eris"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidateProfile checks that a profile is complete and internally consistent.
func ValidateProfile(p domain.TaxYearProfile) error {
	if p.Year == "" {
		return eris.New("taxtable: profile year is required")
	}
	if err := ValidateBrackets(p.OrdinaryBrackets); err != nil {
		return eris.Wrapf(err, "taxtable: %s ordinary brackets", p.Year)
	}
	if err := ValidateBrackets(p.CapitalGainsBrackets); err != nil {
		return eris.Wrapf(err, "taxtable: %s capital gains brackets", p.Year)
	}

	for name, v := range map[string]decimal.Decimal{
		"standard deduction":      p.StandardDeduction,
		"over-65 deduction":       p.Over65Deduction,
		"over-65 extra deduction": p.Over65ExtraDeduction,
	} {
		if v.IsNegative() {
			return eris.Errorf("taxtable: %s %s cannot be negative", p.Year, name)
		}
	}
	if !isRate(p.StateFlatRate) {
		return eris.Errorf("taxtable: %s state flat rate must be between 0 and 1", p.Year)
	}

	ss := p.SocialSecurity
	if ss.Tier1.IsNegative() || ss.Tier2.LessThan(ss.Tier1) {
		return eris.Errorf("taxtable: %s social security tiers must satisfy 0 <= tier1 <= tier2", p.Year)
	}
	if !isRate(ss.MaxTaxableFraction) {
		return eris.Errorf("taxtable: %s social security max taxable fraction must be between 0 and 1", p.Year)
	}
	return nil
}

// ValidateBrackets enforces the table invariants: non-empty, starting at a
// non-negative bound, ascending and contiguous, rates in [0,1], and only the
// last bracket unbounded.
func ValidateBrackets(brackets []domain.Bracket) error {
	if len(brackets) == 0 {
		return eris.New("no brackets")
	}
	if brackets[0].Lower.IsNegative() {
		return eris.New("first lower bound cannot be negative")
	}

	last := len(brackets) - 1
	for i, b := range brackets {
		if !isRate(b.Rate) {
			return eris.Errorf("bracket %d: rate %s must be between 0 and 1", i, b.Rate)
		}
		if i < last {
			if b.Unbounded {
				return eris.Errorf("bracket %d: only the last bracket may be unbounded", i)
			}
			if !b.Upper.GreaterThan(b.Lower) {
				return eris.Errorf("bracket %d: upper %s must exceed lower %s", i, b.Upper, b.Lower)
			}
		}
		if i > 0 && !b.Lower.Equal(brackets[i-1].Upper) {
			return eris.Errorf("bracket %d: lower %s does not continue previous upper %s", i, b.Lower, brackets[i-1].Upper)
		}
	}
	if !brackets[last].Unbounded {
		return eris.New("last bracket must be unbounded")
	}
	return nil
}

func isRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(1))
}
