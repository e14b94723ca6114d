package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no taxcalc.yaml is found
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "2025", cfg.Tax.DefaultYear)
	assert.Equal(t, "capped", cfg.Tax.SSFormula)
	assert.Equal(t, "provisional", cfg.Tax.DeductionOrder)
	assert.Equal(t, "none", cfg.Tax.StateDeduction)
	assert.Equal(t, "lowest", cfg.Tax.GainsStacking)
	assert.Equal(t, 2, cfg.Tax.Seniors)
	assert.Empty(t, cfg.Tax.ProfilesFile)
	assert.Equal(t, "console", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
tax:
  default_year: "2026"
  ss_formula: linear
output:
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taxcalc.yaml"), []byte(yaml), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "2026", cfg.Tax.DefaultYear)
	assert.Equal(t, "linear", cfg.Tax.SSFormula)
	assert.Equal(t, "json", cfg.Output.Format)
	// Defaults still apply for unset values
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "provisional", cfg.Tax.DeductionOrder)
}

func TestLoadExplicitPath(t *testing.T) {
	cfg, err := Load("../../test/testdata/taxcalc.yaml")
	require.NoError(t, err)
	assert.Equal(t, "2026", cfg.Tax.DefaultYear)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
tax:
  default_year: "2026"
  deduction_order: before
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taxcalc.yaml"), []byte(yaml), 0644))

	t.Setenv("TAXCALC_TAX_DEFAULT_YEAR", "2025")
	t.Setenv("TAXCALC_TAX_SENIORS", "1")

	cfg, err := Load("")
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "2025", cfg.Tax.DefaultYear)
	assert.Equal(t, 1, cfg.Tax.Seniors)
	assert.Equal(t, "before", cfg.Tax.DeductionOrder)
}

func TestValidate(t *testing.T) {
	chdirTemp(t)
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Tax.DefaultYear = ""
	cfg.Tax.SSFormula = "flat"
	cfg.Tax.GainsStacking = "sideways"
	cfg.Tax.Seniors = 3

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tax.default_year is required")
	assert.Contains(t, err.Error(), "tax.ss_formula")
	assert.Contains(t, err.Error(), "tax.gains_stacking")
	assert.Contains(t, err.Error(), "tax.seniors")
	assert.NotContains(t, err.Error(), "tax.deduction_order")
}

func TestEngineOptions(t *testing.T) {
	chdirTemp(t)
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Tax.DeductionOrder = "before"
	cfg.Tax.StateDeduction = "standard"

	opts, err := cfg.EngineOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 4)

	result, err := calculation.NewEngine(opts...).ComputeAll(
		decimal.NewFromInt(60000), decimal.NewFromInt(40000), decimal.NewFromInt(10000), "2025")
	require.NoError(t, err)
	assert.True(t, result.AdjustedGrossIncome.Equal(decimal.NewFromInt(13950)))
	assert.True(t, result.StateTax.IsZero())
}

func TestEngineOptions_ProfilesFile(t *testing.T) {
	path, err := filepath.Abs("../../test/testdata/profiles_2027.yaml")
	require.NoError(t, err)
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Tax.ProfilesFile = path

	opts, err := cfg.EngineOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 5)

	engine := calculation.NewEngine(opts...)
	assert.Contains(t, engine.Years(), "2027")

	cfg.Tax.ProfilesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.EngineOptions()
	assert.Error(t, err)
}

func TestEngineOptions_Invalid(t *testing.T) {
	cfg := &Config{Tax: TaxConfig{SSFormula: "capped", DeductionOrder: "after"}}
	_, err := cfg.EngineOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tax.deduction_order")
}

func TestTypedAccessors(t *testing.T) {
	cfg := &Config{Tax: TaxConfig{
		SSFormula:      "linear",
		DeductionOrder: "provisional",
		StateDeduction: "standard",
		GainsStacking:  "above-ordinary",
	}}

	f, err := cfg.SSFormula()
	require.NoError(t, err)
	assert.Equal(t, domain.SSFormulaLinear, f)

	s, err := cfg.StateDeduction()
	require.NoError(t, err)
	assert.Equal(t, domain.StateDeductionStandard, s)

	g, err := cfg.GainsStacking()
	require.NoError(t, err)
	assert.Equal(t, domain.GainsAboveOrdinary, g)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
