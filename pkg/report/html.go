package report

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"io"

	"github.com/ja7ad/gwnexus/pkg/estimator"
)

type chartImage struct {
	Name  string
	Title string
	Src   template.URL
}

type htmlView struct {
	View
	Rows    []Row
	Charts  []chartImage
	Ranges  map[string][2]int
	Formula string
	// ChartBase, when set, links charts by URL instead of embedding them.
	ChartBase string
	Query     string
}

// HTMLOptions controls how WriteHTML references chart images.
type HTMLOptions struct {
	// ChartBase links charts as <ChartBase>/<name>.png?<Query> instead of
	// embedding PNG data. Used by the dashboard server.
	ChartBase string
	Query     string
}

// WriteHTML renders the view as a self-contained HTML report.
func WriteHTML(w io.Writer, v View, o HTMLOptions) error {
	data := htmlView{
		View:      v,
		Rows:      v.Rows(),
		ChartBase: o.ChartBase,
		Query:     o.Query,
		Formula:   "Volume = Energy × eff × (1 − loss) / (0.00273 × depth × 10^6)",
		Ranges: map[string][2]int{
			"depth": {estimator.MinDepthM, estimator.MaxDepthM},
			"eff":   {estimator.MinEfficiencyPct, estimator.MaxEfficiencyPct},
			"loss":  {estimator.MinTransmissionLossPct, estimator.MaxTransmissionLossPct},
		},
	}

	charts := Charts(v)
	for _, name := range ChartNames {
		c, ok := charts[name]
		if !ok {
			continue
		}
		img := chartImage{Name: name, Title: c.Title}
		if o.ChartBase == "" {
			png, err := c.PNG()
			if err != nil {
				return err
			}
			img.Src = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
		} else {
			img.Src = template.URL(o.ChartBase + "/" + name + ".png?" + o.Query)
		}
		data.Charts = append(data.Charts, img)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

var tpl = template.Must(template.New("rep").Funcs(template.FuncMap{
	"pct": func(f *float64) string { return optFloat(f, 2) },
}).Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Pakistan's Groundwater-Energy Nexus</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px;max-width:1100px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
code{background:#f5f5f5;padding:2px 4px;border-radius:4px}
.small{color:#555}
.warn{background:#fff4e5;border:1px solid #f0c36d;padding:8px 12px;border-radius:6px;margin:10px 0}
.insight{background:#eef;border:1px solid #ccd;padding:8px 12px;border-radius:6px;margin:10px 0}
img{max-width:100%}
form label{margin-right:14px}
</style>

<h1>Pakistan's Groundwater-Energy Nexus</h1>
<p class="small">#RethinkingIndus &nbsp;|&nbsp; Impact of Subsidized Electric Tube-wells</p>

<p>
Annual groundwater extraction by electric tube-wells (TWs) is estimated from annual
agricultural electricity consumption: <code>{{.Formula}}</code>, where depth is the
average depth to water table, eff the average pump efficiency and loss the grid
transmission loss.
</p>

<h2>Parameters</h2>
{{if .ChartBase}}
<form method="get">
<label>Depth to Water Table (m)
<input type="number" name="depth" min="{{index (index .Ranges "depth") 0}}" max="{{index (index .Ranges "depth") 1}}" value="{{.Result.Params.DepthM}}"></label>
<label>Pump Efficiency (%)
<input type="number" name="eff" min="{{index (index .Ranges "eff") 0}}" max="{{index (index .Ranges "eff") 1}}" value="{{.Result.Params.EfficiencyPct}}"></label>
<label>Transmission Losses (%)
<input type="number" name="loss" min="{{index (index .Ranges "loss") 0}}" max="{{index (index .Ranges "loss") 1}}" value="{{.Result.Params.TransmissionLossPct}}"></label>
<button type="submit">Estimate</button>
</form>
{{else}}
<ul>
<li>Depth to water table: {{.Result.Params.DepthM}} m</li>
<li>Pump efficiency: {{.Result.Params.EfficiencyPct}}%</li>
<li>Transmission losses: {{.Result.Params.TransmissionLossPct}}%</li>
</ul>
{{end}}

{{if .Warnings}}
<div class="warn">
<strong>Data warnings</strong>
<ul>
{{range .Warnings}}<li>{{.Year}}: {{.Message}} <span class="small">({{.Kind}})</span></li>
{{end}}
</ul>
</div>
{{end}}

{{if .Insight}}
<div class="insight"><strong>KEY INSIGHTS:</strong> {{.Insight.Summary}}</div>
{{end}}

<h2>Groundwater Extraction Sources</h2>
{{range .Charts}}
<figure><img src="{{.Src}}" alt="{{.Title}}"><figcaption class="small">{{.Title}}</figcaption></figure>
{{end}}

<h2>Per-year estimate</h2>
<table>
<thead>
<tr>
<th>year</th><th>Electric (MAF)</th><th>Diesel (MAF)</th><th>Total (MAF)</th>
<th>Electric Private %</th><th>Diesel Private %</th><th>Public %</th><th>Scarp %</th><th>Other Pr. %</th>
</tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td>{{.Year}}</td>
<td>{{printf "%.3f" .ElectricMAF}}</td>
<td>{{printf "%.3f" .DieselMAF}}</td>
<td>{{printf "%.3f" .TotalMAF}}</td>
<td>{{pct .ElectricPct}}</td>
<td>{{pct .DieselPct}}</td>
<td>{{pct .PublicPct}}</td>
<td>{{pct .ScarpPct}}</td>
<td>{{pct .OtherPct}}</td>
</tr>
{{end}}
</tbody>
</table>

<h2>Data References</h2>
<ol class="small">
<li>Annual electricity consumption of electric TWs: NEPRA State of Industry Reports
(all agricultural electricity consumption is assumed to be for TW pumping).</li>
<li>Annual total groundwater extraction and tube-well inventory: Agricultural Statistics
of Pakistan, Ministry of National Food Security and Research.</li>
</ol>
</html>`))
