package estimator

import (
	"fmt"

	"github.com/ja7ad/gwnexus/pkg/types"
	"github.com/ja7ad/gwnexus/pkg/util"
)

const (
	// ConversionConstant converts the pumped volume in m³ (per 10^9) to MAF.
	ConversionConstant = types.MAFPerGigaCubicMeter

	// LiftEnergyFactor is the energy in kWh needed to lift 1 m³ of water by 1 m
	// at 100% efficiency.
	LiftEnergyFactor = 0.00273

	// SurfaceStorageMAF is the combined live storage of Tarbela, Mangla and Chashma.
	SurfaceStorageMAF types.MAF = 14
)

// Parameter ranges accepted by Validate, and the dashboard's starting values.
const (
	MinDepthM = 30
	MaxDepthM = 100

	MinEfficiencyPct = 25
	MaxEfficiencyPct = 70

	MinTransmissionLossPct = 10
	MaxTransmissionLossPct = 25

	DefaultDepthM              = 45
	DefaultEfficiencyPct       = 45
	DefaultTransmissionLossPct = 15
)

// Parameters holds the user-adjustable model inputs.
// Units:
//   - DepthM: meters to the water table
//   - EfficiencyPct: average pump efficiency, percent
//   - TransmissionLossPct: grid losses before the pump load, percent
type Parameters struct {
	DepthM              int `json:"depth_m"`
	EfficiencyPct       int `json:"efficiency_pct"`
	TransmissionLossPct int `json:"transmission_loss_pct"`
}

// DefaultParameters returns the dashboard's starting slider positions.
func DefaultParameters() Parameters {
	return Parameters{
		DepthM:              DefaultDepthM,
		EfficiencyPct:       DefaultEfficiencyPct,
		TransmissionLossPct: DefaultTransmissionLossPct,
	}
}

// Validate checks every field against its accepted range.
func (p Parameters) Validate() error {
	if !util.InRange(p.DepthM, MinDepthM, MaxDepthM) {
		return fmt.Errorf("%w: depth %d m not in [%d,%d]", ErrParameterRange, p.DepthM, MinDepthM, MaxDepthM)
	}
	if !util.InRange(p.EfficiencyPct, MinEfficiencyPct, MaxEfficiencyPct) {
		return fmt.Errorf("%w: efficiency %d%% not in [%d,%d]", ErrParameterRange, p.EfficiencyPct, MinEfficiencyPct, MaxEfficiencyPct)
	}
	if !util.InRange(p.TransmissionLossPct, MinTransmissionLossPct, MaxTransmissionLossPct) {
		return fmt.Errorf("%w: transmission loss %d%% not in [%d,%d]", ErrParameterRange, p.TransmissionLossPct, MinTransmissionLossPct, MaxTransmissionLossPct)
	}
	return nil
}

// Key identifies the parameter tuple, e.g. for memoizing results.
func (p Parameters) Key() string {
	return fmt.Sprintf("d%d:e%d:l%d", p.DepthM, p.EfficiencyPct, p.TransmissionLossPct)
}

// EnergyRecord is one year of agricultural electricity use and total extraction.
type EnergyRecord struct {
	Year      int       `json:"year"`
	EnergyKWh types.KWh `json:"energy_kwh"`
	TotalMAF  types.MAF `json:"total_maf"`
}

// CategoryRecord is one year of pumping shares by tube-well category.
// Private is carried for completeness; the estimate replaces it with the
// electric/diesel split.
type CategoryRecord struct {
	Year         int             `json:"year"`
	Private      types.NullFloat `json:"private"`
	Public       types.NullFloat `json:"public"`
	Scarp        types.NullFloat `json:"scarp"`
	OtherPrivate types.NullFloat `json:"other_private"`
}

// TubewellRecord is the number of installed tube-wells in a year.
type TubewellRecord struct {
	Year     int `json:"year"`
	Electric int `json:"electric"`
	Diesel   int `json:"diesel"`
}

// VolumeRecord is the pumped volume of a year split by energy source.
type VolumeRecord struct {
	Year     int       `json:"year"`
	Electric types.MAF `json:"electric_maf"`
	Diesel   types.MAF `json:"diesel_maf"`
}

// Total returns Electric + Diesel.
func (v VolumeRecord) Total() types.MAF { return v.Electric + v.Diesel }

// ShareRecord is the percentage of a year's extraction per category.
type ShareRecord struct {
	Year            int     `json:"year"`
	ElectricPrivate float64 `json:"electric_private_pct"`
	DieselPrivate   float64 `json:"diesel_private_pct"`
	Public          float64 `json:"public_pct"`
	Scarp           float64 `json:"scarp_pct"`
	OtherPrivate    float64 `json:"other_private_pct"`
}

// Sum returns the sum of the five shares.
func (s ShareRecord) Sum() float64 {
	return s.ElectricPrivate + s.DieselPrivate + s.Public + s.Scarp + s.OtherPrivate
}

// Result bundles everything derived for one parameter tuple.
type Result struct {
	Params   Parameters     `json:"params"`
	Volumes  []VolumeRecord `json:"volumes"`
	Shares   []ShareRecord  `json:"shares"`
	Warnings []Warning      `json:"warnings,omitempty"`
}

// Volume returns the volume row for year.
func (r *Result) Volume(year int) (VolumeRecord, bool) {
	for _, v := range r.Volumes {
		if v.Year == year {
			return v, true
		}
	}
	return VolumeRecord{}, false
}

// Share returns the share row for year.
func (r *Result) Share(year int) (ShareRecord, bool) {
	for _, s := range r.Shares {
		if s.Year == year {
			return s, true
		}
	}
	return ShareRecord{}, false
}
