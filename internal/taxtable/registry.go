// Package taxtable resolves a tax-year key to its frozen table of brackets
// and thresholds.
package taxtable

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/rpgo/tax-estimator/internal/domain"
)

// Registry maps year keys to profiles. A Registry is never modified after
// construction, so one value can be shared by any number of goroutines.
type Registry struct {
	profiles map[string]domain.TaxYearProfile
}

var defaultRegistry = mustBuiltinRegistry()

func mustBuiltinRegistry() *Registry {
	r := &Registry{profiles: make(map[string]domain.TaxYearProfile, len(builtinProfiles))}
	for _, build := range builtinProfiles {
		p := build()
		if err := ValidateProfile(p); err != nil {
			panic(err)
		}
		r.profiles[p.Year] = p
	}
	return r
}

// DefaultRegistry returns the built-in years.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// ResolveProfile looks up year in the built-in registry.
func ResolveProfile(year string) (domain.TaxYearProfile, error) {
	return defaultRegistry.Resolve(year)
}

// Resolve returns a copy of the profile stored for year, or an
// *domain.UnrecognizedYearError. There is no fallback year.
func (r *Registry) Resolve(year string) (domain.TaxYearProfile, error) {
	p, ok := r.profiles[year]
	if !ok {
		return domain.TaxYearProfile{}, &domain.UnrecognizedYearError{Year: year}
	}
	return p.Clone(), nil
}

// Years lists the supported year keys in ascending order.
func (r *Registry) Years() []string {
	years := make([]string, 0, len(r.profiles))
	for y := range r.profiles {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// With returns a new registry holding r's profiles plus extra. Each extra
// profile is validated, and a year that already exists cannot be redefined.
func (r *Registry) With(extra ...domain.TaxYearProfile) (*Registry, error) {
	out := &Registry{profiles: make(map[string]domain.TaxYearProfile, len(r.profiles)+len(extra))}
	for y, p := range r.profiles {
		out.profiles[y] = p
	}
	for _, p := range extra {
		if err := ValidateProfile(p); err != nil {
			return nil, err
		}
		if _, exists := out.profiles[p.Year]; exists {
			return nil, eris.Errorf("taxtable: year %s is already defined", p.Year)
		}
		out.profiles[p.Year] = p.Clone()
	}
	return out, nil
}
