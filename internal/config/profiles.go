package config

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/taxtable"
	"gopkg.in/yaml.v3"
)

// ProfileFile is the on-disk shape of a set of additional tax years.
//
//	profiles:
//	  - year: "2027"
//	    ordinary_brackets:
//	      - {lower: 0, upper: 24500, rate: 0.10}
//	      - {lower: 24500, upper: inf, rate: 0.12}
//	    ...
type ProfileFile struct {
	Profiles []domain.TaxYearProfile `yaml:"profiles"`
}

// ProfileParser handles parsing of tax year profile files
type ProfileParser struct{}

// NewProfileParser creates a new profile parser
func NewProfileParser() *ProfileParser {
	return &ProfileParser{}
}

// LoadFromFile loads and validates profiles from a YAML file
func (pp *ProfileParser) LoadFromFile(filename string) ([]domain.TaxYearProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return pp.Parse(data)
}

// Parse decodes and validates a profile document.
func (pp *ProfileParser) Parse(data []byte) ([]domain.TaxYearProfile, error) {
	var file ProfileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := pp.ValidateProfiles(file.Profiles); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return file.Profiles, nil
}

// ValidateProfiles checks each profile and rejects duplicate years.
func (pp *ProfileParser) ValidateProfiles(profiles []domain.TaxYearProfile) error {
	if len(profiles) == 0 {
		return eris.New("no profiles provided")
	}

	seen := make(map[string]bool, len(profiles))
	for i, p := range profiles {
		if err := taxtable.ValidateProfile(p); err != nil {
			return eris.Wrapf(err, "profile %d", i)
		}
		if seen[p.Year] {
			return eris.Errorf("profile %d: year %s appears more than once", i, p.Year)
		}
		seen[p.Year] = true
	}

	return nil
}

// LoadRegistry loads filename and layers its profiles over the built-in years.
func (pp *ProfileParser) LoadRegistry(filename string) (*taxtable.Registry, error) {
	profiles, err := pp.LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	registry, err := taxtable.DefaultRegistry().With(profiles...)
	if err != nil {
		return nil, eris.Wrapf(err, "profiles from %s", filename)
	}
	return registry, nil
}
