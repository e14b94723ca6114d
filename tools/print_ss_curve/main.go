package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/taxtable"
	"github.com/shopspring/decimal"
)

// Prints taxable Social Security under both tier-3 formulas across a sweep
// of non-SS income, for eyeballing where the curves bend and hit the cap.
func main() {
	year := flag.String("year", "2025", "tax year key")
	benefits := flag.Int64("benefits", 40000, "annual Social Security benefits")
	step := flag.Int64("step", 5000, "income step")
	limit := flag.Int64("max", 100000, "highest non-SS income")
	flag.Parse()
	if *step <= 0 {
		log.Fatal("step must be positive")
	}

	profile, err := taxtable.ResolveProfile(*year)
	if err != nil {
		log.Fatal(err)
	}
	b := decimal.NewFromInt(*benefits)

	fmt.Printf("Year %s, benefits %s, tiers %s / %s, cap %s\n",
		profile.Year, b.StringFixed(2),
		profile.SocialSecurity.Tier1.StringFixed(0), profile.SocialSecurity.Tier2.StringFixed(0),
		b.Mul(profile.SocialSecurity.MaxTaxableFraction).StringFixed(2))
	fmt.Printf("%10s %12s %12s %12s\n", "income", "provisional", "capped", "linear")

	for income := int64(0); income <= *limit; income += *step {
		nonSS := decimal.NewFromInt(income)
		capped := calculation.CalculateTaxableSocialSecurity(nonSS, b, profile.SocialSecurity, domain.SSFormulaCapped)
		linear := calculation.CalculateTaxableSocialSecurity(nonSS, b, profile.SocialSecurity, domain.SSFormulaLinear)
		fmt.Printf("%10d %12s %12s %12s\n", income,
			capped.ProvisionalIncome.StringFixed(2), capped.TaxableAmount.StringFixed(2), linear.TaxableAmount.StringFixed(2))
	}
}
