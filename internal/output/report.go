package output

import (
	"io"

	"github.com/rpgo/tax-estimator/internal/domain"
)

// Render writes result to w in the named format.
func Render(w io.Writer, result *domain.TaxResult, format string) error {
	f, err := Lookup(format)
	if err != nil {
		return err
	}
	data, err := f.Format(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveReport renders result in the named format to a timestamped file in dir
// and returns the file name.
func SaveReport(result *domain.TaxResult, format, dir string) (string, error) {
	f, err := Lookup(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, result, dir)
}
