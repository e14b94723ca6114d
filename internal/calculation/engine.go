package calculation

import (
	"github.com/rotisserie/eris"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/taxtable"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Logger is the logging surface the engine writes stage values to.
// A *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

var _ Logger = (*zap.SugaredLogger)(nil)

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// Engine sequences the year lookup, Social Security worksheet, deduction,
// federal and state calculations. Its fields are fixed at construction, so an
// Engine may be shared across goroutines.
type Engine struct {
	registry       *taxtable.Registry
	ssFormula      domain.SSFormula
	deductionOrder domain.DeductionOrder
	stateDeduction domain.StateDeduction
	gainsStacking  domain.GainsStacking
	logger         Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry resolves years from r instead of the built-in tables.
func WithRegistry(r *taxtable.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithLogger sets the logger. A nil logger is replaced by NopLogger.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l == nil {
			l = NopLogger{}
		}
		e.logger = l
	}
}

// WithSSFormula selects the tier-3 Social Security formula.
func WithSSFormula(f domain.SSFormula) Option {
	return func(e *Engine) { e.ssFormula = f }
}

// WithDeductionOrder selects where the standard deduction is applied.
func WithDeductionOrder(o domain.DeductionOrder) Option {
	return func(e *Engine) { e.deductionOrder = o }
}

// WithStateDeduction selects whether the state base subtracts the standard deduction again.
func WithStateDeduction(s domain.StateDeduction) Option {
	return func(e *Engine) { e.stateDeduction = s }
}

// WithGainsStacking selects how capital gains fill their bracket table.
func WithGainsStacking(g domain.GainsStacking) Option {
	return func(e *Engine) { e.gainsStacking = g }
}

// NewEngine creates an engine using the built-in tables, the capped Social
// Security formula, the deduction taken from provisional income, gains
// consumed from the lowest bracket and no state re-deduction, unless
// overridden by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		registry: taxtable.DefaultRegistry(),
		logger:   NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Years lists the year keys this engine can compute.
func (e *Engine) Years() []string {
	return e.registry.Years()
}

// ComputeAll estimates taxes for a household where both spouses are 65+.
func (e *Engine) ComputeAll(nonSSIncome, ssBenefits, capitalGains decimal.Decimal, year string) (*domain.TaxResult, error) {
	return e.Compute(domain.Input{
		Year:         year,
		NonSSIncome:  nonSSIncome,
		SSBenefits:   ssBenefits,
		CapitalGains: capitalGains,
		Seniors:      domain.SeniorsBothOver65,
	})
}

// Compute estimates federal, capital gains and state tax for one household-year.
// Amounts are expected to be non-negative; an unknown year yields
// *domain.UnrecognizedYearError unwrapped.
func (e *Engine) Compute(in domain.Input) (*domain.TaxResult, error) {
	profile, err := e.registry.Resolve(in.Year)
	if err != nil {
		return nil, err
	}
	if in.Seniors < 0 || in.Seniors > domain.SeniorsBothOver65 {
		return nil, eris.Errorf("calculation: seniors must be between 0 and %d, got %d", domain.SeniorsBothOver65, in.Seniors)
	}

	deduction := profile.TotalStandardDeduction(in.Seniors)
	e.logger.Debugf("year %s: standard deduction %s (seniors=%d)", profile.Year, deduction, in.Seniors)

	var (
		ss  domain.SSTaxability
		agi decimal.Decimal
	)
	switch e.deductionOrder {
	case domain.DeductBeforeProvisional:
		base := decimal.Max(decimal.Zero, in.NonSSIncome.Sub(deduction))
		ss = CalculateTaxableSocialSecurity(base, in.SSBenefits, profile.SocialSecurity, e.ssFormula)
		agi = base.Add(ss.TaxableAmount)
	default:
		ss = CalculateTaxableSocialSecurity(in.NonSSIncome, in.SSBenefits, profile.SocialSecurity, e.ssFormula)
		agi = decimal.Max(decimal.Zero, ss.ProvisionalIncome.Sub(deduction))
	}
	e.logger.Debugf("year %s: provisional %s, taxable ss %s (%s formula), agi %s",
		profile.Year, ss.ProvisionalIncome, ss.TaxableAmount, e.ssFormula, agi)

	ordinaryTax, breakdown := CalculateBracketTax(agi, profile.OrdinaryBrackets)
	ltcgTax, ltcgBreakdown := CalculateCapitalGainsBreakdown(agi, in.CapitalGains, profile.CapitalGainsBrackets, e.gainsStacking)
	federalTax := ordinaryTax.Add(ltcgTax)

	stateBase := agi.Add(in.CapitalGains)
	if e.stateDeduction == domain.StateDeductionStandard {
		stateBase = stateBase.Sub(profile.StandardDeduction)
	}
	stateTax := CalculateStateTax(stateBase, profile.StateFlatRate)
	e.logger.Debugf("year %s: ordinary %s, ltcg %s, state %s", profile.Year, ordinaryTax, ltcgTax, stateTax)

	return &domain.TaxResult{
		Year:                   profile.Year,
		ProvisionalIncome:      ss.ProvisionalIncome,
		TaxableSocialSecurity:  ss.TaxableAmount,
		PercentSSTaxed:         ss.PercentTaxed,
		TotalStandardDeduction: deduction,
		AdjustedGrossIncome:    agi,
		CapitalGains:           in.CapitalGains,
		FederalTax:             federalTax,
		OrdinaryTax:            ordinaryTax,
		CapitalGainsTax:        ltcgTax,
		StateTax:               stateTax,
		Breakdown:              breakdown,
		CapitalGainsBreakdown:  ltcgBreakdown,
	}, nil
}
