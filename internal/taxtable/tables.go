package taxtable

import (
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// Married-filing-jointly tables. Each year is its own constructor; a new year
// is a new function plus a line in builtinProfiles, never an edit to an old one.

func profile2025() domain.TaxYearProfile {
	return domain.TaxYearProfile{
		Year: "2025",
		OrdinaryBrackets: []domain.Bracket{
			domain.NewBracket(0, 23850, 0.10),
			domain.NewBracket(23850, 96950, 0.12),
			domain.NewBracket(96950, 206700, 0.22),
			domain.NewBracket(206700, 394600, 0.24),
			domain.NewBracket(394600, 501050, 0.32),
			domain.NewBracket(501050, 751600, 0.35),
			domain.NewTopBracket(751600, 0.37),
		},
		CapitalGainsBrackets: []domain.Bracket{
			domain.NewBracket(0, 89250, 0.0),
			domain.NewBracket(89250, 553850, 0.15),
			domain.NewTopBracket(553850, 0.20),
		},
		StandardDeduction:    decimal.NewFromInt(31500),
		Over65Deduction:      decimal.NewFromInt(1600),
		Over65ExtraDeduction: decimal.NewFromInt(6000),
		StateFlatRate:        decimal.NewFromFloat(0.025), // Arizona
		SocialSecurity:       mfjSSThresholds(),
	}
}

func profile2026() domain.TaxYearProfile {
	return domain.TaxYearProfile{
		Year: "2026",
		OrdinaryBrackets: []domain.Bracket{
			domain.NewBracket(0, 24800, 0.10),
			domain.NewBracket(24800, 100800, 0.12),
			domain.NewBracket(100800, 211400, 0.22),
			domain.NewBracket(211400, 403550, 0.24),
			domain.NewBracket(403550, 512450, 0.32),
			domain.NewBracket(512450, 768700, 0.35),
			domain.NewTopBracket(768700, 0.37),
		},
		CapitalGainsBrackets: []domain.Bracket{
			domain.NewBracket(0, 98900, 0.0),
			domain.NewBracket(98900, 613700, 0.15),
			domain.NewTopBracket(613700, 0.20),
		},
		StandardDeduction:    decimal.NewFromInt(32200),
		Over65Deduction:      decimal.NewFromInt(1650),
		Over65ExtraDeduction: decimal.NewFromInt(6000),
		StateFlatRate:        decimal.NewFromFloat(0.025),
		SocialSecurity:       mfjSSThresholds(),
	}
}

// The SS thresholds are set by statute and not indexed.
func mfjSSThresholds() domain.SSThresholds {
	return domain.SSThresholds{
		Tier1:              decimal.NewFromInt(32000),
		Tier2:              decimal.NewFromInt(44000),
		MaxTaxableFraction: decimal.NewFromFloat(0.85),
	}
}

var builtinProfiles = []func() domain.TaxYearProfile{
	profile2025,
	profile2026,
}
