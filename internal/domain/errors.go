package domain

import "errors"

// ErrUnrecognizedYear matches any UnrecognizedYearError via errors.Is.
var ErrUnrecognizedYear = errors.New("unrecognized tax year")

// UnrecognizedYearError is returned when no profile exists for a year key.
type UnrecognizedYearError struct {
	Year string
}

func (e *UnrecognizedYearError) Error() string {
	return "unrecognized tax year: " + e.Year
}

// Is lets errors.Is(err, ErrUnrecognizedYear) succeed.
func (e *UnrecognizedYearError) Is(target error) bool {
	return target == ErrUnrecognizedYear
}
