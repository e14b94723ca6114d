package output

import (
	"github.com/goccy/go-json"
	"github.com/rpgo/tax-estimator/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter serializes the result as pretty-printed JSON. Amounts are
// written as decimal strings.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(result *domain.TaxResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// YAMLFormatter serializes the result as YAML with the same field names as JSON.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string      { return "yaml" }
func (y YAMLFormatter) Extension() string { return "yaml" }

func (y YAMLFormatter) Format(result *domain.TaxResult) ([]byte, error) {
	return yaml.Marshal(result)
}
