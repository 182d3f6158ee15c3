package estimator

import (
	"fmt"

	"github.com/ja7ad/gwnexus/pkg/types"
	"github.com/ja7ad/gwnexus/pkg/util"
)

// ElectricVolume estimates the groundwater volume lifted by electric
// tube-wells from the electricity they consumed:
//
//	V = C * E * (eff/100) * (1 - loss/100) / (0.00273 * depth * 1e9)
//
// where C converts m³ to MAF. Efficiency and loss are not range checked here;
// callers validate them through Parameters.
func ElectricVolume(energyKWh, depthM, efficiencyPct, lossPct float64) (types.MAF, error) {
	if !util.IsFinite(depthM) || depthM <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrNonPositiveDepth, depthM)
	}
	if !util.IsFinite(energyKWh) || energyKWh < 0 {
		return 0, fmt.Errorf("%w: energy %v kWh", ErrInvalidValue, energyKWh)
	}
	if !util.IsFinite(efficiencyPct) || !util.IsFinite(lossPct) {
		return 0, fmt.Errorf("%w: efficiency %v%%, loss %v%%", ErrInvalidValue, efficiencyPct, lossPct)
	}

	delivered := (efficiencyPct / 100) * (1 - lossPct/100)
	v := ConversionConstant * energyKWh * delivered / (LiftEnergyFactor * depthM * 1e9)
	return types.MAF(v), nil
}

// DieselVolume attributes whatever the electric estimate does not explain to
// diesel pumps. The result is negative when the estimate exceeds the total.
func DieselVolume(total, electric types.MAF) types.MAF {
	return total - electric
}

// VolumeTable applies ElectricVolume and DieselVolume to every energy record,
// preserving input order.
func VolumeTable(records []EnergyRecord, p Parameters) ([]VolumeRecord, []Warning, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("volume table: %w", ErrNoRecords)
	}

	var (
		out   = make([]VolumeRecord, 0, len(records))
		warns []Warning
	)
	for _, r := range records {
		if !util.IsFinite(r.TotalMAF.Float64()) || r.TotalMAF < 0 {
			return nil, nil, fmt.Errorf("volume table: year %d: %w: total %v MAF", r.Year, ErrInvalidValue, float64(r.TotalMAF))
		}
		elec, err := ElectricVolume(r.EnergyKWh.Float64(), float64(p.DepthM), float64(p.EfficiencyPct), float64(p.TransmissionLossPct))
		if err != nil {
			return nil, nil, fmt.Errorf("volume table: year %d: %w", r.Year, err)
		}
		diesel := DieselVolume(r.TotalMAF, elec)
		if diesel < 0 {
			warns = append(warns, warnf(NegativeDiesel, r.Year,
				"electric estimate %.3f MAF exceeds recorded total %.3f MAF", float64(elec), float64(r.TotalMAF)))
		}
		out = append(out, VolumeRecord{Year: r.Year, Electric: elec, Diesel: diesel})
	}
	return out, warns, nil
}

// FillMissing returns a copy of categories with every missing value replaced by v.
func FillMissing(categories []CategoryRecord, v float64) []CategoryRecord {
	out := make([]CategoryRecord, len(categories))
	fill := func(n types.NullFloat) types.NullFloat {
		if n.Valid {
			return n
		}
		return types.Some(v)
	}
	for i, c := range categories {
		out[i] = CategoryRecord{
			Year:         c.Year,
			Private:      fill(c.Private),
			Public:       fill(c.Public),
			Scarp:        fill(c.Scarp),
			OtherPrivate: fill(c.OtherPrivate),
		}
	}
	return out
}

// ShareTable normalizes each year's electric, diesel, public, scarp and
// other-private volumes to percentages of their sum. Years are joined between
// the two tables; a category year without a volume row is skipped with a
// warning. A row summing to zero yields all-zero shares and a warning. A
// missing or non-finite value in either table fails the whole table.
func ShareTable(categories []CategoryRecord, volumes []VolumeRecord) ([]ShareRecord, []Warning, error) {
	if len(categories) == 0 {
		return nil, nil, fmt.Errorf("share table: %w", ErrNoRecords)
	}

	byYear := make(map[int]VolumeRecord, len(volumes))
	for _, v := range volumes {
		if !util.IsFinite(v.Electric.Float64()) || !util.IsFinite(v.Diesel.Float64()) {
			return nil, nil, fmt.Errorf("share table: year %d: %w: electric=%v diesel=%v",
				v.Year, ErrInvalidValue, v.Electric.Float64(), v.Diesel.Float64())
		}
		byYear[v.Year] = v
	}

	var (
		out   = make([]ShareRecord, 0, len(categories))
		warns []Warning
		seen  = make(map[int]struct{}, len(categories))
	)
	for _, c := range categories {
		if !c.Public.Valid || !c.Scarp.Valid || !c.OtherPrivate.Valid {
			return nil, nil, fmt.Errorf("share table: year %d: %w", c.Year, ErrMissingValue)
		}
		for _, x := range []float64{c.Public.Float64, c.Scarp.Float64, c.OtherPrivate.Float64} {
			if !util.IsFinite(x) {
				return nil, nil, fmt.Errorf("share table: year %d: %w: %v", c.Year, ErrInvalidValue, x)
			}
		}
		seen[c.Year] = struct{}{}

		v, ok := byYear[c.Year]
		if !ok {
			warns = append(warns, warnf(YearMismatch, c.Year, "no energy record for category year"))
			continue
		}

		vals := [5]float64{
			v.Electric.Float64(),
			v.Diesel.Float64(),
			c.Public.Float64,
			c.Scarp.Float64,
			c.OtherPrivate.Float64,
		}
		sum := vals[0] + vals[1] + vals[2] + vals[3] + vals[4]

		row := ShareRecord{Year: c.Year}
		if sum == 0 {
			warns = append(warns, warnf(ZeroRowSum, c.Year, "row sum is zero; shares reported as 0"))
			out = append(out, row)
			continue
		}
		row.ElectricPrivate = 100 * vals[0] / sum
		row.DieselPrivate = 100 * vals[1] / sum
		row.Public = 100 * vals[2] / sum
		row.Scarp = 100 * vals[3] / sum
		row.OtherPrivate = 100 * vals[4] / sum
		out = append(out, row)
	}

	for _, v := range volumes {
		if _, ok := seen[v.Year]; !ok {
			warns = append(warns, warnf(YearMismatch, v.Year, "no category record for energy year"))
		}
	}
	return out, warns, nil
}

// Estimate runs the full pipeline for one parameter tuple. Missing category
// values are filled with zero.
func Estimate(energy []EnergyRecord, categories []CategoryRecord, p Parameters) (*Result, error) {
	volumes, warns, err := VolumeTable(energy, p)
	if err != nil {
		return nil, err
	}
	shares, shareWarns, err := ShareTable(FillMissing(categories, 0), volumes)
	if err != nil {
		return nil, err
	}
	return &Result{
		Params:   p,
		Volumes:  volumes,
		Shares:   shares,
		Warnings: append(warns, shareWarns...),
	}, nil
}
