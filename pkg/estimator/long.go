package estimator

// Series labels used in long-format tables and chart legends.
const (
	SeriesElectric        = "Electric"
	SeriesDiesel          = "Diesel"
	SeriesElectricPrivate = "Electric Private"
	SeriesDieselPrivate   = "Diesel Private"
	SeriesPublic          = "Public"
	SeriesScarp           = "Scarp"
	SeriesOtherPrivate    = "Other Pr."
)

// ShareSeries lists the share categories in stacking order.
var ShareSeries = []string{
	SeriesElectricPrivate,
	SeriesDieselPrivate,
	SeriesPublic,
	SeriesScarp,
	SeriesOtherPrivate,
}

// LongRecord is one (year, tube-well type) observation.
type LongRecord struct {
	Year  int     `json:"year"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// MeltVolumes reshapes volumes to one row per year and energy source,
// year-major.
func MeltVolumes(volumes []VolumeRecord) []LongRecord {
	out := make([]LongRecord, 0, 2*len(volumes))
	for _, v := range volumes {
		out = append(out,
			LongRecord{Year: v.Year, Type: SeriesElectric, Value: v.Electric.Float64()},
			LongRecord{Year: v.Year, Type: SeriesDiesel, Value: v.Diesel.Float64()},
		)
	}
	return out
}

// MeltShares reshapes shares to one row per year and category, in ShareSeries order.
func MeltShares(shares []ShareRecord) []LongRecord {
	out := make([]LongRecord, 0, len(ShareSeries)*len(shares))
	for _, s := range shares {
		for i, v := range s.values() {
			out = append(out, LongRecord{Year: s.Year, Type: ShareSeries[i], Value: v})
		}
	}
	return out
}

func (s ShareRecord) values() [5]float64 {
	return [5]float64{s.ElectricPrivate, s.DieselPrivate, s.Public, s.Scarp, s.OtherPrivate}
}

// Column returns the share of the named series across shares.
func Column(shares []ShareRecord, series string) []float64 {
	idx := -1
	for i, name := range ShareSeries {
		if name == series {
			idx = i
			break
		}
	}
	out := make([]float64, len(shares))
	if idx < 0 {
		return out
	}
	for i, s := range shares {
		out[i] = s.values()[idx]
	}
	return out
}
