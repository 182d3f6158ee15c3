package report

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ja7ad/gwnexus/pkg/estimator"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData indicates a chart with no years to draw.
var ErrNoData = errors.New("report: no data to chart")

// ErrUnknownChart indicates a chart name not produced by Charts.
var ErrUnknownChart = errors.New("report: unknown chart")

// Chart names produced by Charts.
const (
	ChartElectric    = "electric"
	ChartVolume      = "volume"
	ChartShare       = "share"
	ChartTubewells   = "tubewells"
	ChartPerTubewell = "per-tubewell"
)

var (
	colorElectric = color.RGBA{R: 76, G: 120, B: 168, A: 255}
	colorDiesel   = color.RGBA{R: 245, G: 133, B: 24, A: 255}
	colorPublic   = color.RGBA{R: 228, G: 87, B: 86, A: 255}
	colorScarp    = color.RGBA{R: 114, G: 183, B: 178, A: 255}
	colorOther    = color.RGBA{R: 84, G: 162, B: 75, A: 255}
	colorStorage  = color.RGBA{R: 255, A: 255}

	colorTWElectric = color.RGBA{R: 55, G: 83, B: 109, A: 255}
	colorTWDiesel   = color.RGBA{R: 26, G: 118, B: 255, A: 255}
	colorPerElec    = color.RGBA{R: 205, G: 92, B: 92, A: 255}
	colorPerDiesel  = color.RGBA{R: 255, G: 160, B: 122, A: 255}
)

// Series is one bar series of a chart.
type Series struct {
	Name   string
	Values []float64
	Color  color.Color
}

// Reference is a horizontal rule drawn across all years.
type Reference struct {
	Label string
	Value float64
}

// Chart describes a bar chart over years.
type Chart struct {
	Title     string
	YLabel    string
	Years     []int
	Series    []Series
	Stacked   bool
	Reference *Reference
}

// Default PNG size.
const (
	ChartWidth  = 8 * vg.Inch
	ChartHeight = 4 * vg.Inch
)

func (c *Chart) plot() (*plot.Plot, error) {
	n := len(c.Years)
	if n == 0 || len(c.Series) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true

	width := vg.Points(20)
	if !c.Stacked {
		width = vg.Points(20 / float64(len(c.Series)))
	}

	var below *plotter.BarChart
	for i, s := range c.Series {
		if len(s.Values) != n {
			return nil, fmt.Errorf("report: series %q has %d values for %d years", s.Name, len(s.Values), n)
		}
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), width)
		if err != nil {
			return nil, fmt.Errorf("report: series %q: %w", s.Name, err)
		}
		bars.Color = s.Color
		bars.LineStyle.Width = vg.Length(0)
		if c.Stacked {
			if below != nil {
				bars.StackOn(below)
			}
			below = bars
		} else {
			bars.Offset = width * vg.Length(float64(i)-float64(len(c.Series)-1)/2)
		}
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}

	if c.Reference != nil {
		rule, err := plotter.NewLine(plotter.XYs{
			{X: -0.5, Y: c.Reference.Value},
			{X: float64(n) - 0.5, Y: c.Reference.Value},
		})
		if err != nil {
			return nil, err
		}
		rule.Color = colorStorage
		rule.Width = vg.Points(3)
		p.Add(rule)
		p.Legend.Add(c.Reference.Label, rule)
	}

	labels := make([]string, n)
	for i, y := range c.Years {
		labels[i] = strconv.Itoa(y)
	}
	p.NominalX(labels...)
	return p, nil
}

// WritePNG renders the chart as PNG.
func (c *Chart) WritePNG(w io.Writer) error {
	p, err := c.plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(ChartWidth, ChartHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// PNG renders the chart into memory.
func (c *Chart) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func volumeYears(vols []estimator.VolumeRecord) []int {
	years := make([]int, len(vols))
	for i, v := range vols {
		years[i] = v.Year
	}
	return years
}

func storageRule() *Reference {
	return &Reference{Label: "Storage of Surface Reservoirs", Value: estimator.SurfaceStorageMAF.Float64()}
}

// ElectricVolumeChart plots electric tube-well pumping against surface storage.
func ElectricVolumeChart(res *estimator.Result) *Chart {
	vals := make([]float64, len(res.Volumes))
	for i, v := range res.Volumes {
		vals[i] = v.Electric.Float64()
	}
	return &Chart{
		Title:     "Pumped Groundwater: Electric TWs",
		YLabel:    "Pumped Volume (MAF)",
		Years:     volumeYears(res.Volumes),
		Series:    []Series{{Name: estimator.SeriesElectric, Values: vals, Color: colorElectric}},
		Reference: storageRule(),
	}
}

// VolumeChart stacks electric and diesel private pumping.
func VolumeChart(res *estimator.Result) *Chart {
	elec := make([]float64, len(res.Volumes))
	diesel := make([]float64, len(res.Volumes))
	for i, v := range res.Volumes {
		elec[i] = v.Electric.Float64()
		diesel[i] = v.Diesel.Float64()
	}
	return &Chart{
		Title:  "Pumped Groundwater: Private Tube-Wells",
		YLabel: "Pumped Volume (MAF)",
		Years:  volumeYears(res.Volumes),
		Series: []Series{
			{Name: estimator.SeriesElectric, Values: elec, Color: colorElectric},
			{Name: estimator.SeriesDiesel, Values: diesel, Color: colorDiesel},
		},
		Stacked:   true,
		Reference: storageRule(),
	}
}

// ShareChart stacks the five category shares of each year.
func ShareChart(res *estimator.Result) *Chart {
	years := make([]int, len(res.Shares))
	for i, s := range res.Shares {
		years[i] = s.Year
	}
	colors := []color.Color{colorElectric, colorDiesel, colorPublic, colorScarp, colorOther}
	series := make([]Series, len(estimator.ShareSeries))
	for i, name := range estimator.ShareSeries {
		series[i] = Series{Name: name, Values: estimator.Column(res.Shares, name), Color: colors[i]}
	}
	return &Chart{
		Title:   "Pumped GW: By Percentage",
		YLabel:  "Pumped Volume (%)",
		Years:   years,
		Series:  series,
		Stacked: true,
	}
}

// TubewellChart stacks installed electric and diesel tube-wells.
func TubewellChart(counts []estimator.TubewellRecord) *Chart {
	years := make([]int, len(counts))
	elec := make([]float64, len(counts))
	diesel := make([]float64, len(counts))
	for i, c := range counts {
		years[i] = c.Year
		elec[i] = float64(c.Electric)
		diesel[i] = float64(c.Diesel)
	}
	return &Chart{
		Title:  "Number of Installed Agricultural Tube-wells in Pakistan",
		YLabel: "No. of Tubewells",
		Years:  years,
		Series: []Series{
			{Name: estimator.SeriesElectric, Values: elec, Color: colorTWElectric},
			{Name: estimator.SeriesDiesel, Values: diesel, Color: colorTWDiesel},
		},
		Stacked: true,
	}
}

// PerTubewellChart groups electric and diesel extraction per installed tube-well.
func PerTubewellChart(per []estimator.PerTubewellRecord) *Chart {
	years := make([]int, len(per))
	elec := make([]float64, len(per))
	diesel := make([]float64, len(per))
	for i, r := range per {
		years[i] = r.Year
		elec[i] = r.Electric
		diesel[i] = r.Diesel
	}
	return &Chart{
		Title:  "Annual Groundwater Extraction per Tubewell",
		YLabel: "Extracted water per TW (Acre-Feet)",
		Years:  years,
		Series: []Series{
			{Name: estimator.SeriesElectric, Values: elec, Color: colorPerElec},
			{Name: estimator.SeriesDiesel, Values: diesel, Color: colorPerDiesel},
		},
	}
}

// ChartNames lists chart names in display order.
var ChartNames = []string{ChartElectric, ChartVolume, ChartShare, ChartTubewells, ChartPerTubewell}

// Charts builds every chart the view has data for, keyed by name.
func Charts(v View) map[string]*Chart {
	out := map[string]*Chart{
		ChartElectric: ElectricVolumeChart(v.Result),
		ChartVolume:   VolumeChart(v.Result),
		ChartShare:    ShareChart(v.Result),
	}
	if len(v.Tubewells) > 0 {
		out[ChartTubewells] = TubewellChart(v.Tubewells)
	}
	if len(v.PerTubewell) > 0 {
		out[ChartPerTubewell] = PerTubewellChart(v.PerTubewell)
	}
	return out
}

// SaveCharts writes every chart of the view as <dir>/<name>.png and returns the paths.
func SaveCharts(dir string, v View) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	charts := Charts(v)
	var paths []string
	for _, name := range ChartNames {
		c, ok := charts[name]
		if !ok {
			continue
		}
		path := filepath.Join(dir, name+".png")
		if err := saveChart(path, c); err != nil {
			return paths, fmt.Errorf("chart %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func saveChart(path string, c *Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
