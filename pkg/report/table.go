package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable prints the view as an aligned terminal table.
func WriteTable(w io.Writer, v View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tElectric (MAF)\tDiesel (MAF)\tTotal (MAF)\tElec %\tDiesel %\tPublic %\tScarp %\tOther %")
	fmt.Fprintln(tw, "----\t--------------\t------------\t-----------\t------\t--------\t--------\t-------\t-------")
	for _, r := range v.Rows() {
		fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.3f\t%s\t%s\t%s\t%s\t%s\n",
			r.Year, r.ElectricMAF.Float64(), r.DieselMAF.Float64(), r.TotalMAF.Float64(),
			optFloat(r.ElectricPct, 2), optFloat(r.DieselPct, 2), optFloat(r.PublicPct, 2),
			optFloat(r.ScarpPct, 2), optFloat(r.OtherPct, 2),
		)
	}
	return tw.Flush()
}

// WriteSummary prints parameters, the key insight and any warnings.
func WriteSummary(w io.Writer, v View) error {
	p := v.Result.Params
	if _, err := fmt.Fprintf(w, "parameters: depth=%d m, efficiency=%d%%, transmission loss=%d%%\n",
		p.DepthM, p.EfficiencyPct, p.TransmissionLossPct); err != nil {
		return err
	}
	if v.Insight != nil {
		if _, err := fmt.Fprintf(w, "key insight: %s\n", v.Insight.Summary()); err != nil {
			return err
		}
	}
	for _, warn := range v.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}
