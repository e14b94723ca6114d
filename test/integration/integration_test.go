package integration

import (
	"bytes"
	"testing"

	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/config"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadEngine(t *testing.T, profilesFile string) (*config.Config, *calculation.Engine) {
	t.Helper()
	cfg, err := config.Load("../testdata/taxcalc.yaml")
	require.NoError(t, err)
	cfg.Tax.ProfilesFile = profilesFile
	require.NoError(t, cfg.Validate())

	opts, err := cfg.EngineOptions()
	require.NoError(t, err)
	return cfg, calculation.NewEngine(opts...)
}

func TestEndToEndCalculation(t *testing.T) {
	cfg, engine := loadEngine(t, "")
	assert.Equal(t, "2026", cfg.Tax.DefaultYear)

	result, err := engine.Compute(domain.Input{
		Year:         cfg.Tax.DefaultYear,
		NonSSIncome:  decimal.NewFromInt(60000),
		SSBenefits:   decimal.NewFromInt(40000),
		CapitalGains: decimal.NewFromInt(10000),
		Seniors:      cfg.Tax.Seniors,
	})
	require.NoError(t, err)
	assert.True(t, result.AdjustedGrossIncome.Equal(decimal.NewFromInt(32500)))
	assert.True(t, result.FederalTax.Equal(decimal.NewFromInt(3404)))

	// Every registered formatter renders the result
	for _, name := range output.AvailableFormatterNames() {
		var buf bytes.Buffer
		require.NoError(t, output.Render(&buf, result, name), name)
		assert.NotEmpty(t, buf.String(), name)
	}

	var buf bytes.Buffer
	require.NoError(t, output.Render(&buf, result, cfg.Output.Format))
	assert.Contains(t, buf.String(), "\"federal_tax_owed\": \"3404\"")
}

func TestCustomProfilesEndToEnd(t *testing.T) {
	_, engine := loadEngine(t, "../testdata/profiles_2027.yaml")
	assert.Equal(t, []string{"2025", "2026", "2027"}, engine.Years())

	result, err := engine.ComputeAll(decimal.NewFromInt(60000), decimal.NewFromInt(40000), decimal.NewFromInt(10000), "2027")
	require.NoError(t, err)
	assert.True(t, result.TotalStandardDeduction.Equal(decimal.NewFromInt(48300)))
	assert.True(t, result.FederalTax.Equal(decimal.NewFromInt(3308)))
}

// TestEstimateProperties sweeps inputs across every year and option
// combination and checks the invariants that must always hold.
func TestEstimateProperties(t *testing.T) {
	amounts := []int64{0, 15000, 32000, 44000, 60000, 120000, 400000, 900000}
	benefits := []int64{0, 18000, 40000, 60000}
	gains := []int64{0, 10000, 250000}

	variants := map[string][]calculation.Option{
		"defaults": nil,
		"legacy": {
			calculation.WithSSFormula(domain.SSFormulaLinear),
			calculation.WithDeductionOrder(domain.DeductBeforeProvisional),
			calculation.WithStateDeduction(domain.StateDeductionStandard),
		},
		"above-ordinary": {calculation.WithGainsStacking(domain.GainsAboveOrdinary)},
	}

	hundred := decimal.NewFromInt(100)
	for name, opts := range variants {
		engine := calculation.NewEngine(opts...)
		t.Run(name, func(t *testing.T) {
			for _, year := range engine.Years() {
				profile, err := engine.Compute(domain.Input{Year: year, Seniors: domain.SeniorsBothOver65})
				require.NoError(t, err)
				require.True(t, profile.FederalTax.IsZero(), "zero input owes nothing in %s", year)

				for _, income := range amounts {
					for _, b := range benefits {
						for _, g := range gains {
							ltcg := decimal.NewFromInt(g)
							benefit := decimal.NewFromInt(b)
							r, err := engine.ComputeAll(decimal.NewFromInt(income), benefit, ltcg, year)
							require.NoError(t, err)

							assert.False(t, r.FederalTax.IsNegative())
							assert.False(t, r.StateTax.IsNegative())
							assert.False(t, r.AdjustedGrossIncome.IsNegative())
							assert.True(t, r.PercentSSTaxed.GreaterThanOrEqual(decimal.Zero))
							assert.True(t, r.PercentSSTaxed.LessThanOrEqual(hundred))
							assert.True(t, r.TaxableSocialSecurity.LessThanOrEqual(benefit.Mul(decimal.NewFromFloat(0.85))))
							assert.True(t, r.FederalTax.Equal(r.OrdinaryTax.Add(r.CapitalGainsTax)))

							if name != "legacy" {
								expectedState := decimal.Max(decimal.Zero, r.AdjustedGrossIncome.Add(ltcg)).Mul(decimal.NewFromFloat(0.025))
								assert.True(t, r.StateTax.Equal(expectedState), "state tax %s income %d", year, income)
							}
						}
					}
				}
			}
		})
	}
}

func TestIdenticalInputsIdenticalOutput(t *testing.T) {
	engine := calculation.NewEngine()
	render := func() []byte {
		r, err := engine.ComputeAll(decimal.NewFromInt(250000), decimal.NewFromInt(45000), decimal.NewFromInt(80000), "2025")
		require.NoError(t, err)
		out, err := output.JSONFormatter{}.Format(r)
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, render(), render())
}
