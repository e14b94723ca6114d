package calculation

import (
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	half            = decimal.NewFromFloat(0.5)
	tier3Rate       = decimal.NewFromFloat(0.85)
	linearTier3Rate = decimal.NewFromFloat(0.35)
	hundred         = decimal.NewFromInt(100)
)

// CalculateProvisionalIncome is non-Social Security income plus half of benefits.
func CalculateProvisionalIncome(nonSSIncome, benefits decimal.Decimal) decimal.Decimal {
	return nonSSIncome.Add(benefits.Mul(half))
}

// CalculateTaxableSocialSecurity determines the federally taxable portion of
// Social Security benefits.
//
//   - Provisional income <= tier 1: nothing is taxable
//   - Provisional income <= tier 2: lesser of 50% of benefits or 50% of the excess over tier 1
//   - Above tier 2: see SSFormula
//
// Every tier is capped at MaxTaxableFraction of benefits.
func CalculateTaxableSocialSecurity(nonSSIncome, benefits decimal.Decimal, th domain.SSThresholds, formula domain.SSFormula) domain.SSTaxability {
	provisional := CalculateProvisionalIncome(nonSSIncome, benefits)
	halfBenefits := benefits.Mul(half)
	ceiling := benefits.Mul(th.MaxTaxableFraction)

	var taxable decimal.Decimal
	switch {
	case provisional.LessThanOrEqual(th.Tier1):
		taxable = decimal.Zero
	case provisional.LessThanOrEqual(th.Tier2):
		taxable = decimal.Min(halfBenefits, provisional.Sub(th.Tier1).Mul(half))
	default:
		allowance := decimal.Min(halfBenefits, th.Tier2.Sub(th.Tier1).Mul(half))
		excess := provisional.Sub(th.Tier2)

		switch formula {
		case domain.SSFormulaLinear:
			slope := decimal.Min(benefits.Mul(tier3Rate), excess.Mul(linearTier3Rate))
			taxable = allowance.Add(slope)
		default:
			taxable = excess.Mul(tier3Rate).Add(allowance)
		}
	}
	taxable = decimal.Min(taxable, ceiling)

	percent := decimal.Zero
	if benefits.IsPositive() {
		percent = taxable.Div(benefits).Mul(hundred)
	}

	return domain.SSTaxability{
		ProvisionalIncome: provisional,
		TaxableAmount:     taxable,
		PercentTaxed:      percent,
	}
}
