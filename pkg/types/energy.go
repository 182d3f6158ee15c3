package types

import (
	"fmt"
	"math"
)

// KWh is a float64 wrapper representing electrical energy in kilowatt-hours.
type KWh float64

// MWh returns the number of megawatt-hours.
func (e KWh) MWh() float64 { return float64(e) / 1e3 }

// GWh returns the number of gigawatt-hours.
func (e KWh) GWh() float64 { return float64(e) / 1e6 }

// Float64 returns the raw value in kWh.
func (e KWh) Float64() float64 { return float64(e) }

// Humanized returns a human-readable string with automatic unit (kWh, MWh, GWh, TWh).
func (e KWh) Humanized() string {
	v := float64(e)
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2f TWh", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2f GWh", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2f MWh", v/1e3)
	default:
		return fmt.Sprintf("%.0f kWh", v)
	}
}

func (e KWh) String() string { return e.Humanized() }
