package report

import (
	"strconv"

	"github.com/ja7ad/gwnexus/pkg/estimator"
	"github.com/ja7ad/gwnexus/pkg/types"
)

// View is everything a report renders for one parameter tuple.
type View struct {
	Result      *estimator.Result
	Tubewells   []estimator.TubewellRecord
	PerTubewell []estimator.PerTubewellRecord
	Insight     *estimator.Insight
	Warnings    []estimator.Warning
}

// NewView derives per-tube-well extraction and the key insight for year.
// A missing insight year is not an error; the view simply has no Insight.
func NewView(res *estimator.Result, tubewells []estimator.TubewellRecord, insightYear int) View {
	v := View{
		Result:    res,
		Tubewells: tubewells,
		Warnings:  append([]estimator.Warning(nil), res.Warnings...),
	}
	if len(tubewells) > 0 {
		per, warns := estimator.PerTubewell(res.Volumes, tubewells)
		v.PerTubewell = per
		v.Warnings = append(v.Warnings, warns...)
	}
	if in, err := estimator.KeyInsight(res, insightYear); err == nil {
		v.Insight = &in
	}
	return v
}

// Row is one flattened year of a View, as written to CSV and JSON. Share
// fields are nil for a volume year without a category row.
type Row struct {
	Year          int       `json:"year"`
	ElectricMAF   types.MAF `json:"electric_maf"`
	DieselMAF     types.MAF `json:"diesel_maf"`
	TotalMAF      types.MAF `json:"total_maf"`
	ElectricPct   *float64  `json:"electric_private_pct"`
	DieselPct     *float64  `json:"diesel_private_pct"`
	PublicPct     *float64  `json:"public_pct"`
	ScarpPct      *float64  `json:"scarp_pct"`
	OtherPct      *float64  `json:"other_private_pct"`
	ElectricAFPer *float64  `json:"electric_af_per_tw,omitempty"`
	DieselAFPer   *float64  `json:"diesel_af_per_tw,omitempty"`
}

// HasShares reports whether the year has a share row.
func (r Row) HasShares() bool { return r.ElectricPct != nil }

// Rows joins volumes, shares and per-tube-well extraction by year, in volume order.
func (v View) Rows() []Row {
	shares := make(map[int]estimator.ShareRecord, len(v.Result.Shares))
	for _, s := range v.Result.Shares {
		shares[s.Year] = s
	}
	per := make(map[int]estimator.PerTubewellRecord, len(v.PerTubewell))
	for _, p := range v.PerTubewell {
		per[p.Year] = p
	}

	out := make([]Row, 0, len(v.Result.Volumes))
	for _, vol := range v.Result.Volumes {
		r := Row{
			Year:        vol.Year,
			ElectricMAF: vol.Electric,
			DieselMAF:   vol.Diesel,
			TotalMAF:    vol.Total(),
		}
		if s, ok := shares[vol.Year]; ok {
			r.ElectricPct, r.DieselPct, r.PublicPct = ptr(s.ElectricPrivate), ptr(s.DieselPrivate), ptr(s.Public)
			r.ScarpPct, r.OtherPct = ptr(s.Scarp), ptr(s.OtherPrivate)
		}
		if p, ok := per[vol.Year]; ok {
			r.ElectricAFPer, r.DieselAFPer = ptr(p.Electric), ptr(p.Diesel)
		}
		out = append(out, r)
	}
	return out
}

func ptr(f float64) *float64 { return &f }

// optFloat formats f with the given precision, or "-" when it is nil.
func optFloat(f *float64, prec int) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', prec, 64)
}
