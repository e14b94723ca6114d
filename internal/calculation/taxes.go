package calculation

import (
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Married filing jointly only. Bracket tables and deductions come from the
//    resolved TaxYearProfile; nothing is inflation-indexed here.
//
// 2. Long-term capital gains use their own table. The bracket is chosen by
//    ordinary income plus gains. By default gains are consumed from the
//    lowest bracket whose lower bound is below that total; GainsAboveOrdinary
//    instead fills only the part of each bracket above ordinary income.
//
// 3. State tax is a single flat rate with no brackets.

// CalculateBracketTax integrates income across an ascending bracket table and
// returns the total plus one contribution per bracket entered. Income at or
// below zero owes nothing and touches no bracket.
func CalculateBracketTax(income decimal.Decimal, brackets []domain.Bracket) (decimal.Decimal, []domain.BracketContribution) {
	totalTax := decimal.Zero
	contributions := make([]domain.BracketContribution, 0, len(brackets))
	if !income.IsPositive() {
		return totalTax, contributions
	}

	for _, bracket := range brackets {
		if income.LessThanOrEqual(bracket.Lower) {
			break
		}
		incomeInBracket := bracket.Cap(income).Sub(bracket.Lower)
		tax := incomeInBracket.Mul(bracket.Rate)
		totalTax = totalTax.Add(tax)
		contributions = append(contributions, contribution(bracket, incomeInBracket, tax))

		if bracket.Covers(income) {
			break
		}
	}

	return totalTax, contributions
}

// CalculateCapitalGainsTax taxes gains against the capital gains table, the
// bracket being chosen by ordinary income plus gains. For each bracket below
// that total, the span min(total, upper) - lower is available and at most the
// gains not yet taxed are consumed from it.
func CalculateCapitalGainsTax(ordinaryIncome, capitalGains decimal.Decimal, brackets []domain.Bracket) decimal.Decimal {
	tax, _ := CalculateCapitalGainsBreakdown(ordinaryIncome, capitalGains, brackets, domain.GainsFromLowest)
	return tax
}

// CalculateCapitalGainsBreakdown returns the capital gains tax and the
// per-bracket split of the gains under the given stacking mode.
func CalculateCapitalGainsBreakdown(ordinaryIncome, capitalGains decimal.Decimal, brackets []domain.Bracket, stacking domain.GainsStacking) (decimal.Decimal, []domain.BracketContribution) {
	totalTax := decimal.Zero
	contributions := make([]domain.BracketContribution, 0, len(brackets))
	if !capitalGains.IsPositive() {
		return totalTax, contributions
	}

	totalIncome := ordinaryIncome.Add(capitalGains)
	remaining := capitalGains
	for _, bracket := range brackets {
		if totalIncome.LessThanOrEqual(bracket.Lower) {
			break
		}
		start := bracket.Lower
		if stacking == domain.GainsAboveOrdinary {
			start = decimal.Max(start, ordinaryIncome)
		}
		span := bracket.Cap(totalIncome).Sub(start)
		if !span.IsPositive() {
			continue
		}
		gainsInBracket := decimal.Min(span, remaining)
		tax := gainsInBracket.Mul(bracket.Rate)
		totalTax = totalTax.Add(tax)
		contributions = append(contributions, contribution(bracket, gainsInBracket, tax))

		remaining = remaining.Sub(gainsInBracket)
		if !remaining.IsPositive() {
			break
		}
	}

	return totalTax, contributions
}

// CalculateStateTax applies a flat rate to a base floored at zero. The base
// must already be net of any federal deduction.
func CalculateStateTax(base, flatRate decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, base).Mul(flatRate)
}

func contribution(b domain.Bracket, amount, tax decimal.Decimal) domain.BracketContribution {
	return domain.BracketContribution{
		Lower:         b.Lower,
		Upper:         b.Upper,
		Unbounded:     b.Unbounded,
		Rate:          b.Rate,
		TaxableAmount: amount,
		Tax:           tax,
	}
}
