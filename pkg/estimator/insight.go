package estimator

import (
	"fmt"

	"github.com/ja7ad/gwnexus/pkg/types"
	"github.com/ja7ad/gwnexus/pkg/util"
)

// DefaultInsightYear is the year summarized by the dashboard narrative.
const DefaultInsightYear = 2017

// PerTubewellRecord is the average extraction per installed tube-well, in acre-feet.
type PerTubewellRecord struct {
	Year     int     `json:"year"`
	Electric float64 `json:"electric_af"`
	Diesel   float64 `json:"diesel_af"`
}

// PerTubewell divides each year's pumped volume by the installed tube-well
// count of the same type. Years without a count are skipped with a warning;
// zero counts report 0.
func PerTubewell(volumes []VolumeRecord, counts []TubewellRecord) ([]PerTubewellRecord, []Warning) {
	byYear := make(map[int]TubewellRecord, len(counts))
	for _, c := range counts {
		byYear[c.Year] = c
	}

	var (
		out   = make([]PerTubewellRecord, 0, len(volumes))
		warns []Warning
	)
	for _, v := range volumes {
		c, ok := byYear[v.Year]
		if !ok {
			warns = append(warns, warnf(YearMismatch, v.Year, "no tube-well count for energy year"))
			continue
		}
		if c.Electric == 0 || c.Diesel == 0 {
			warns = append(warns, warnf(ZeroTubewells, v.Year, "electric=%d diesel=%d installed", c.Electric, c.Diesel))
		}
		out = append(out, PerTubewellRecord{
			Year:     v.Year,
			Electric: util.SafeDiv(v.Electric.AcreFeet(), float64(c.Electric)),
			Diesel:   util.SafeDiv(v.Diesel.AcreFeet(), float64(c.Diesel)),
		})
	}
	return out, warns
}

// Insight summarizes one year of a Result for the narrative.
type Insight struct {
	Year          int       `json:"year"`
	ElectricMAF   types.MAF `json:"electric_maf"`
	ElectricPct   float64   `json:"electric_pct"`
	StorageMAF    types.MAF `json:"storage_maf"`
	StorageRatio  float64   `json:"storage_ratio"`
	ExceedStorage bool      `json:"exceeds_storage"`
}

// KeyInsight reports the electric private volume and share for year and how
// it compares with the surface reservoir storage.
func KeyInsight(r *Result, year int) (Insight, error) {
	v, ok := r.Volume(year)
	if !ok {
		return Insight{}, fmt.Errorf("insight: volume %d: %w", year, ErrYearNotFound)
	}
	s, ok := r.Share(year)
	if !ok {
		return Insight{}, fmt.Errorf("insight: share %d: %w", year, ErrYearNotFound)
	}
	return Insight{
		Year:          year,
		ElectricMAF:   v.Electric,
		ElectricPct:   s.ElectricPrivate,
		StorageMAF:    SurfaceStorageMAF,
		StorageRatio:  util.SafeDiv(v.Electric.Float64(), SurfaceStorageMAF.Float64()),
		ExceedStorage: v.Electric > SurfaceStorageMAF,
	}, nil
}

// Summary renders the insight the way the dashboard narrates it, with whole
// MAF and percent.
func (in Insight) Summary() string {
	return fmt.Sprintf("In %d, groundwater extracted from electric TWs was %d MAF, "+
		"which is %d%% of total groundwater extraction in the country. "+
		"Combined storage of surface reservoirs is %d MAF.",
		in.Year, util.Trunc(in.ElectricMAF.Float64()), util.Trunc(in.ElectricPct), util.Trunc(in.StorageMAF.Float64()))
}
