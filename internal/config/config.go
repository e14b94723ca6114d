package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix namespaces environment overrides, e.g. TAXCALC_TAX_DEFAULT_YEAR.
const EnvPrefix = "TAXCALC"

// Config holds the full application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Tax    TaxConfig    `yaml:"tax" mapstructure:"tax"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// TaxConfig selects the year and the calculation variants.
type TaxConfig struct {
	DefaultYear    string `yaml:"default_year" mapstructure:"default_year"`
	SSFormula      string `yaml:"ss_formula" mapstructure:"ss_formula"`
	DeductionOrder string `yaml:"deduction_order" mapstructure:"deduction_order"`
	StateDeduction string `yaml:"state_deduction" mapstructure:"state_deduction"`
	GainsStacking  string `yaml:"gains_stacking" mapstructure:"gains_stacking"`
	Seniors        int    `yaml:"seniors" mapstructure:"seniors"`
	// ProfilesFile optionally names a YAML file of additional year profiles.
	ProfilesFile string `yaml:"profiles_file" mapstructure:"profiles_file"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. With an empty path the
// file taxcalc.yaml is looked up in the working directory and may be absent;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("taxcalc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("tax.default_year", "2025")
	v.SetDefault("tax.ss_formula", domain.SSFormulaCapped.String())
	v.SetDefault("tax.deduction_order", domain.DeductFromProvisional.String())
	v.SetDefault("tax.state_deduction", domain.StateDeductionNone.String())
	v.SetDefault("tax.gains_stacking", domain.GainsFromLowest.String())
	v.SetDefault("tax.seniors", domain.SeniorsBothOver65)
	v.SetDefault("tax.profiles_file", "")
	v.SetDefault("output.format", "console")

	// Read config file (optional unless named)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Tax.DefaultYear) == "" {
		problems = append(problems, "tax.default_year is required")
	}
	if _, err := c.SSFormula(); err != nil {
		problems = append(problems, "tax.ss_formula: "+err.Error())
	}
	if _, err := c.DeductionOrder(); err != nil {
		problems = append(problems, "tax.deduction_order: "+err.Error())
	}
	if _, err := c.StateDeduction(); err != nil {
		problems = append(problems, "tax.state_deduction: "+err.Error())
	}
	if _, err := c.GainsStacking(); err != nil {
		problems = append(problems, "tax.gains_stacking: "+err.Error())
	}
	if c.Tax.Seniors < 0 || c.Tax.Seniors > domain.SeniorsBothOver65 {
		problems = append(problems, "tax.seniors must be 0, 1 or 2")
	}
	if strings.TrimSpace(c.Output.Format) == "" {
		problems = append(problems, "output.format is required")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// SSFormula parses tax.ss_formula.
func (c *Config) SSFormula() (domain.SSFormula, error) {
	return domain.ParseSSFormula(c.Tax.SSFormula)
}

// DeductionOrder parses tax.deduction_order.
func (c *Config) DeductionOrder() (domain.DeductionOrder, error) {
	return domain.ParseDeductionOrder(c.Tax.DeductionOrder)
}

// StateDeduction parses tax.state_deduction.
func (c *Config) StateDeduction() (domain.StateDeduction, error) {
	return domain.ParseStateDeduction(c.Tax.StateDeduction)
}

// GainsStacking parses tax.gains_stacking.
func (c *Config) GainsStacking() (domain.GainsStacking, error) {
	return domain.ParseGainsStacking(c.Tax.GainsStacking)
}

// EngineOptions converts the tax section into engine options. Profiles named
// by tax.profiles_file are loaded and layered over the built-in years.
func (c *Config) EngineOptions() ([]calculation.Option, error) {
	formula, err := c.SSFormula()
	if err != nil {
		return nil, eris.Wrap(err, "config: tax.ss_formula")
	}
	order, err := c.DeductionOrder()
	if err != nil {
		return nil, eris.Wrap(err, "config: tax.deduction_order")
	}
	state, err := c.StateDeduction()
	if err != nil {
		return nil, eris.Wrap(err, "config: tax.state_deduction")
	}
	stacking, err := c.GainsStacking()
	if err != nil {
		return nil, eris.Wrap(err, "config: tax.gains_stacking")
	}

	opts := []calculation.Option{
		calculation.WithSSFormula(formula),
		calculation.WithDeductionOrder(order),
		calculation.WithStateDeduction(state),
		calculation.WithGainsStacking(stacking),
	}

	if c.Tax.ProfilesFile != "" {
		registry, err := NewProfileParser().LoadRegistry(c.Tax.ProfilesFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, calculation.WithRegistry(registry))
	}

	return opts, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	// Results go to stdout; keep diagnostics off it.
	zapCfg.OutputPaths = []string{"stderr"}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
