package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/ja7ad/gwnexus/pkg/estimator"
	"github.com/ja7ad/gwnexus/pkg/util"
)

var csvHeader = []string{
	"year", "electric_maf", "diesel_maf", "total_maf",
	"electric_private_pct", "diesel_private_pct", "public_pct", "scarp_pct", "other_private_pct",
	"electric_af_per_tw", "diesel_af_per_tw",
}

// WriteCSV writes one row per year. Absent shares and per-tube-well values
// are written as empty cells.
func WriteCSV(w io.Writer, v View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	opt := func(f *float64) string {
		if f == nil {
			return ""
		}
		return util.FmtFloat(*f)
	}
	for _, r := range v.Rows() {
		if err := cw.Write([]string{
			strconv.Itoa(r.Year),
			util.FmtFloat(r.ElectricMAF.Float64()), util.FmtFloat(r.DieselMAF.Float64()), util.FmtFloat(r.TotalMAF.Float64()),
			opt(r.ElectricPct), opt(r.DieselPct), opt(r.PublicPct),
			opt(r.ScarpPct), opt(r.OtherPct),
			opt(r.ElectricAFPer), opt(r.DieselAFPer),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Document is the JSON form of a View.
type Document struct {
	Params   estimator.Parameters `json:"params"`
	Insight  *estimator.Insight   `json:"insight,omitempty"`
	Rows     []Row                `json:"rows"`
	Warnings []estimator.Warning  `json:"warnings,omitempty"`
}

// WriteJSON writes the view as an indented JSON document.
func WriteJSON(w io.Writer, v View) error {
	doc := Document{
		Params:   v.Result.Params,
		Insight:  v.Insight,
		Rows:     v.Rows(),
		Warnings: v.Warnings,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
