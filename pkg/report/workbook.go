package report

import (
	"fmt"
	"io"

	"github.com/ja7ad/gwnexus/pkg/estimator"
	"github.com/xuri/excelize/v2"
)

// Sheet names written by WriteWorkbook.
const (
	SheetVolumes    = "Volumes"
	SheetShares     = "Shares"
	SheetTubewells  = "Tubewells"
	SheetParameters = "Parameters"
)

// Workbook builds an xlsx file with one sheet per table. The caller closes it.
func Workbook(v View) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetVolumes); err != nil {
		return nil, err
	}
	vols := make([][]any, 0, len(v.Result.Volumes))
	for _, r := range v.Result.Volumes {
		vols = append(vols, []any{r.Year, r.Electric.Float64(), r.Diesel.Float64(), r.Total().Float64()})
	}
	if err := writeSheet(f, SheetVolumes, []string{"Year", "Electric (MAF)", "Diesel (MAF)", "Total (MAF)"}, vols); err != nil {
		return nil, err
	}

	shares := make([][]any, 0, len(v.Result.Shares))
	for _, s := range v.Result.Shares {
		shares = append(shares, []any{s.Year, s.ElectricPrivate, s.DieselPrivate, s.Public, s.Scarp, s.OtherPrivate})
	}
	header := append([]string{"Year"}, estimator.ShareSeries...)
	if err := writeSheet(f, SheetShares, header, shares); err != nil {
		return nil, err
	}

	if len(v.Tubewells) > 0 {
		per := make(map[int]estimator.PerTubewellRecord, len(v.PerTubewell))
		for _, p := range v.PerTubewell {
			per[p.Year] = p
		}
		rows := make([][]any, 0, len(v.Tubewells))
		for _, c := range v.Tubewells {
			row := []any{c.Year, c.Electric, c.Diesel}
			if p, ok := per[c.Year]; ok {
				row = append(row, p.Electric, p.Diesel)
			}
			rows = append(rows, row)
		}
		if err := writeSheet(f, SheetTubewells,
			[]string{"Year", "Electric TWs", "Diesel TWs", "Electric AF/TW", "Diesel AF/TW"}, rows); err != nil {
			return nil, err
		}
	}

	p := v.Result.Params
	params := [][]any{
		{"Depth to water table (m)", p.DepthM},
		{"Pump efficiency (%)", p.EfficiencyPct},
		{"Transmission loss (%)", p.TransmissionLossPct},
	}
	if v.Insight != nil {
		params = append(params, []any{"Key insight", v.Insight.Summary()})
	}
	for _, w := range v.Warnings {
		params = append(params, []any{"Warning", w.String()})
	}
	if err := writeSheet(f, SheetParameters, []string{"Parameter", "Value"}, params); err != nil {
		return nil, err
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if len(header) > 0 {
		last, _ := excelize.ColumnNumberToName(len(header))
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("%s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

// WriteWorkbook writes the view as xlsx.
func WriteWorkbook(w io.Writer, v View) error {
	f, err := Workbook(v)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return f.Write(w)
}
