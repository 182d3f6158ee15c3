package types

import (
	"encoding/json"
	"strconv"
)

// NullFloat is a float64 that may be missing, e.g. an empty CSV cell.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Some returns a present value.
func Some(v float64) NullFloat { return NullFloat{Float64: v, Valid: true} }

// Or returns the value if present, otherwise def.
func (n NullFloat) Or(def float64) float64 {
	if n.Valid {
		return n.Float64
	}
	return def
}

func (n NullFloat) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Float64, 'f', -1, 64)
}

// MarshalJSON encodes a missing value as null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON decodes null as a missing value.
func (n *NullFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullFloat{}
		return nil
	}
	if err := json.Unmarshal(b, &n.Float64); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
