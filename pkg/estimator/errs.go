package estimator

import "errors"

var (
	// ErrNonPositiveDepth indicates a depth to water table <= 0.
	ErrNonPositiveDepth = errors.New("estimator: depth must be > 0")

	// ErrInvalidValue indicates a NaN, infinite or negative input quantity.
	ErrInvalidValue = errors.New("estimator: invalid value")

	// ErrParameterRange indicates a parameter outside its accepted range.
	ErrParameterRange = errors.New("estimator: parameter out of range")

	// ErrMissingValue indicates a required category value that was never filled.
	ErrMissingValue = errors.New("estimator: missing value")

	// ErrNoRecords indicates an empty input table.
	ErrNoRecords = errors.New("estimator: no records")

	// ErrYearNotFound indicates a lookup for a year absent from the result.
	ErrYearNotFound = errors.New("estimator: year not found")
)
