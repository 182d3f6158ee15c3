package estimator

import "fmt"

// WarningKind classifies a non-fatal data condition.
type WarningKind int

const (
	// NegativeDiesel: the electric estimate exceeds the recorded total for a year.
	NegativeDiesel WarningKind = iota + 1
	// YearMismatch: a year is present in one table but absent in another.
	YearMismatch
	// ZeroRowSum: a share row sums to zero and cannot be normalized.
	ZeroRowSum
	// ZeroTubewells: a year reports zero installed tube-wells of a type.
	ZeroTubewells
)

func (k WarningKind) String() string {
	switch k {
	case NegativeDiesel:
		return "negative_diesel"
	case YearMismatch:
		return "year_mismatch"
	case ZeroRowSum:
		return "zero_row_sum"
	case ZeroTubewells:
		return "zero_tubewells"
	default:
		return "unknown"
	}
}

// MarshalText makes the kind readable in JSON output.
func (k WarningKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Warning is a data-consistency condition surfaced to the caller.
// Computation continues with the raw value.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Year    int         `json:"year"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%d: %s: %s", w.Year, w.Kind, w.Message)
}

func warnf(kind WarningKind, year int, format string, args ...any) Warning {
	return Warning{Kind: kind, Year: year, Message: fmt.Sprintf(format, args...)}
}
