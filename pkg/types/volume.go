package types

import (
	"fmt"
	"math"
)

// MAFPerGigaCubicMeter is the number of million acre-feet in 10^9 m³.
const MAFPerGigaCubicMeter = 0.81071318210885

// MAF is a float64 wrapper representing a volume in million acre-feet.
type MAF float64

// FromCubicMeters converts a volume in cubic meters to MAF.
func FromCubicMeters(m3 float64) MAF { return MAF(MAFPerGigaCubicMeter * m3 / 1e9) }

// AcreFeet returns the volume in acre-feet.
func (v MAF) AcreFeet() float64 { return float64(v) * 1e6 }

// CubicMeters returns the volume in cubic meters.
func (v MAF) CubicMeters() float64 { return float64(v) * 1e9 / MAFPerGigaCubicMeter }

// Float64 returns the raw value in MAF.
func (v MAF) Float64() float64 { return float64(v) }

// Humanized returns a human-readable string with automatic unit (MAF, TAF, AF).
// Negative volumes keep their sign.
func (v MAF) Humanized() string {
	abs := math.Abs(float64(v))
	switch {
	case abs >= 1:
		return fmt.Sprintf("%.2f MAF", float64(v))
	case abs >= 1e-3:
		return fmt.Sprintf("%.2f TAF", float64(v)*1e3)
	default:
		return fmt.Sprintf("%.0f AF", v.AcreFeet())
	}
}

func (v MAF) String() string { return v.Humanized() }
