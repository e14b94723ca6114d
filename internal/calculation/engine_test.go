package calculation

import (
	"errors"
	"testing"

	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/taxtable"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// TestEngine_ComputeAll walks the retired couple scenario through every stage
func TestEngine_ComputeAll(t *testing.T) {
	engine := NewEngine()

	result, err := engine.ComputeAll(d(60000), d(40000), d(10000), "2025")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "2025", result.Year)
	assertMoney(t, 80000, result.ProvisionalIncome, "60000 + 40000/2")
	assertMoney(t, 34000, result.TaxableSocialSecurity, "capped at 85% of benefits")
	assertMoney(t, 85, result.PercentSSTaxed)
	assertMoney(t, 46700, result.TotalStandardDeduction, "31500 + 2*1600 + 2*6000")
	assertMoney(t, 33300, result.AdjustedGrossIncome)
	assertMoney(t, 3519, result.OrdinaryTax)
	assertMoney(t, 0, result.CapitalGainsTax, "43,300 total stays in the 0% bracket")
	assertMoney(t, 3519, result.FederalTax)
	assertMoney(t, 1082.5, result.StateTax, "(33300 + 10000) * 2.5%")
	assertMoney(t, 4601.5, result.TotalTax())

	require.Len(t, result.Breakdown, 2)
	assert.True(t, result.MarginalRate().Equal(decimal.NewFromFloat(0.12)))
	require.Len(t, result.CapitalGainsBreakdown, 1)
	assert.True(t, result.CapitalGainsBreakdown[0].Rate.IsZero())
}

func TestEngine_LegacyDeductionOrder(t *testing.T) {
	engine := NewEngine(
		WithDeductionOrder(domain.DeductBeforeProvisional),
		WithStateDeduction(domain.StateDeductionStandard),
	)

	result, err := engine.ComputeAll(d(60000), d(40000), d(10000), "2025")
	require.NoError(t, err)

	assertMoney(t, 33300, result.ProvisionalIncome, "13300 + 40000/2")
	assertMoney(t, 650, result.TaxableSocialSecurity)
	assertMoney(t, 1.625, result.PercentSSTaxed)
	assertMoney(t, 13950, result.AdjustedGrossIncome)
	assertMoney(t, 1395, result.FederalTax)
	assertMoney(t, 0, result.StateTax, "23950 less 31500 floors at zero")
}

func TestEngine_Options(t *testing.T) {
	t.Run("linear social security formula", func(t *testing.T) {
		result, err := NewEngine(WithSSFormula(domain.SSFormulaLinear)).ComputeAll(d(40000), d(30000), decimal.Zero, "2025")
		require.NoError(t, err)
		assertMoney(t, 9850, result.TaxableSocialSecurity)
	})

	t.Run("state deduction", func(t *testing.T) {
		result, err := NewEngine(WithStateDeduction(domain.StateDeductionStandard)).ComputeAll(d(60000), d(40000), d(10000), "2025")
		require.NoError(t, err)
		assertMoney(t, 295, result.StateTax, "(43300 - 31500) * 2.5%")
	})

	t.Run("gains stacking", func(t *testing.T) {
		lowest, err := NewEngine().ComputeAll(d(600000), decimal.Zero, d(100000), "2025")
		require.NoError(t, err)
		above, err := NewEngine(WithGainsStacking(domain.GainsAboveOrdinary)).ComputeAll(d(600000), decimal.Zero, d(100000), "2025")
		require.NoError(t, err)

		assertMoney(t, 132749.5, lowest.OrdinaryTax)
		assertMoney(t, 1612.5, lowest.CapitalGainsTax)
		assertMoney(t, 19972.5, above.CapitalGainsTax, "550*0.15 + 99450*0.20")
		assert.True(t, lowest.OrdinaryTax.Equal(above.OrdinaryTax))
	})
}

func TestEngine_ZeroInputs(t *testing.T) {
	result, err := NewEngine().ComputeAll(decimal.Zero, decimal.Zero, decimal.Zero, "2026")
	require.NoError(t, err)

	assert.True(t, result.FederalTax.IsZero())
	assert.True(t, result.StateTax.IsZero())
	assert.True(t, result.PercentSSTaxed.IsZero())
	assert.Empty(t, result.Breakdown)
	assert.NotNil(t, result.Breakdown)
}

func TestEngine_UnrecognizedYear(t *testing.T) {
	result, err := NewEngine().ComputeAll(d(60000), d(40000), d(10000), "1999")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnrecognizedYear))

	var yearErr *domain.UnrecognizedYearError
	require.True(t, errors.As(err, &yearErr))
	assert.Equal(t, "1999", yearErr.Year)
}

func TestEngine_SeniorsValidation(t *testing.T) {
	engine := NewEngine()

	for _, seniors := range []int{-1, 3} {
		_, err := engine.Compute(domain.Input{Year: "2025", Seniors: seniors})
		assert.Error(t, err, "seniors=%d", seniors)
	}

	result, err := engine.Compute(domain.Input{Year: "2025", NonSSIncome: d(60000), Seniors: 0})
	require.NoError(t, err)
	assertMoney(t, 31500, result.TotalStandardDeduction)
	assertMoney(t, 28500, result.AdjustedGrossIncome)
}

func TestEngine_Idempotent(t *testing.T) {
	engine := NewEngine()

	first, err := engine.ComputeAll(d(250000), d(48000), d(75000), "2026")
	require.NoError(t, err)
	second, err := engine.ComputeAll(d(250000), d(48000), d(75000), "2026")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	engine := NewEngine()
	want, err := engine.ComputeAll(d(120000), d(36000), d(20000), "2025")
	require.NoError(t, err)

	results := make([]*domain.TaxResult, 32)
	var g errgroup.Group
	for i := range results {
		i := i
		g.Go(func() error {
			r, err := engine.ComputeAll(d(120000), d(36000), d(20000), "2025")
			results[i] = r
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, r := range results {
		assert.True(t, want.FederalTax.Equal(r.FederalTax))
		assert.True(t, want.StateTax.Equal(r.StateTax))
		assert.Len(t, r.Breakdown, len(want.Breakdown))
	}
}

func TestEngine_WithRegistry(t *testing.T) {
	p, err := taxtable.ResolveProfile("2026")
	require.NoError(t, err)
	p.Year = "2027"
	p.StateFlatRate = decimal.NewFromFloat(0.05)

	registry, err := taxtable.DefaultRegistry().With(p)
	require.NoError(t, err)

	engine := NewEngine(WithRegistry(registry))
	assert.Equal(t, []string{"2025", "2026", "2027"}, engine.Years())

	result, err := engine.ComputeAll(d(60000), d(40000), d(10000), "2027")
	require.NoError(t, err)
	assertMoney(t, 47500, result.TotalStandardDeduction, "32200 + 2*1650 + 2*6000")
	assertMoney(t, 2125, result.StateTax, "(32500 + 10000) * 5%")

	_, err = NewEngine().ComputeAll(d(60000), d(40000), d(10000), "2027")
	assert.True(t, errors.Is(err, domain.ErrUnrecognizedYear), "default registry is unchanged")
}

func TestEngine_LogsStages(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine := NewEngine(WithLogger(zap.New(core).Sugar()))

	_, err := engine.ComputeAll(d(60000), d(40000), d(10000), "2025")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessageSnippet("standard deduction").Len())
	assert.Equal(t, 1, logs.FilterMessageSnippet("taxable ss").Len())
	assert.Equal(t, 3, logs.Len())
}

func TestNewEngine_NilOptions(t *testing.T) {
	engine := NewEngine(WithLogger(nil), WithRegistry(nil))

	_, err := engine.ComputeAll(d(1000), decimal.Zero, decimal.Zero, "2025")
	assert.NoError(t, err)
}
