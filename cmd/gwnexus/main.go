package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ja7ad/gwnexus/pkg/dataset"
	"github.com/ja7ad/gwnexus/pkg/estimator"
	"github.com/ja7ad/gwnexus/pkg/report"
	"github.com/ja7ad/gwnexus/pkg/server"
)

const (
	envDataDir = "GWNEXUS_DATA_DIR"
	envAddr    = "GWNEXUS_ADDR"
)

type opts struct {
	// data
	dataDir    string
	energy     string
	categories string
	tubewells  string

	// model
	depth       int
	eff         int
	loss        int
	insightYear int

	// outputs
	pretty    bool
	csvPath   string
	jsonPath  string
	htmlPath  string
	xlsxPath  string
	chartsDir string
	logLevel  string
	addr      string
	origins   []string
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "gwnexus",
		Short: "Groundwater/energy nexus estimator for Pakistan's private tube-wells",
		Long: `gwnexus estimates how much groundwater Pakistan's electric and diesel
tube-wells pump each year from the electricity they consume, and how the
total extraction splits between electric private, diesel private, public,
SCARP and other private wells.

The pumped volume follows from the lift energy of water: for a pumping depth
in metres, a pump efficiency and a transmission loss in percent, every kWh
delivered to the pump lifts a known volume of water. Diesel volume is the
remainder of the provincial total.

Examples:
  gwnexus estimate --data-dir ./data --depth 60 --eff 50 --loss 20
  gwnexus estimate --csv out.csv --json out.json --xlsx out.xlsx --charts ./charts
  gwnexus serve --addr :8080`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogger(cmd.ErrOrStderr(), o.logLevel)
		},
	}

	root.PersistentFlags().StringVar(&o.dataDir, "data-dir", envOr(envDataDir, "data"), "directory holding the input CSV files (env "+envDataDir+")")
	root.PersistentFlags().StringVar(&o.energy, "energy", "", "energy/total-volume CSV (default <data-dir>/"+dataset.EnergyFile+")")
	root.PersistentFlags().StringVar(&o.categories, "categories", "", "tube-well category CSV (default <data-dir>/"+dataset.CategoriesFile+")")
	root.PersistentFlags().StringVar(&o.tubewells, "tubewells", "", "tube-well count CSV, optional (default <data-dir>/"+dataset.TubewellsFile+" if present)")
	root.PersistentFlags().IntVar(&o.depth, "depth", estimator.DefaultDepthM, fmt.Sprintf("pumping depth in metres [%d..%d]", estimator.MinDepthM, estimator.MaxDepthM))
	root.PersistentFlags().IntVar(&o.eff, "eff", estimator.DefaultEfficiencyPct, fmt.Sprintf("pump efficiency in percent [%d..%d]", estimator.MinEfficiencyPct, estimator.MaxEfficiencyPct))
	root.PersistentFlags().IntVar(&o.loss, "loss", estimator.DefaultTransmissionLossPct, fmt.Sprintf("transmission loss in percent [%d..%d]", estimator.MinTransmissionLossPct, estimator.MaxTransmissionLossPct))
	root.PersistentFlags().IntVar(&o.insightYear, "insight-year", estimator.DefaultInsightYear, "year summarized by the key insight")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	estimate := &cobra.Command{
		Use:   "estimate",
		Short: "Compute volumes and shares and write reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd.OutOrStdout(), o)
		},
	}
	estimate.Flags().BoolVar(&o.pretty, "pretty", true, "print the per-year table instead of the summary only")
	estimate.Flags().StringVar(&o.csvPath, "csv", "", "write per-year rows to CSV file")
	estimate.Flags().StringVar(&o.jsonPath, "json", "", "write per-year rows and insight to JSON file")
	estimate.Flags().StringVar(&o.htmlPath, "html", "", "write a self-contained HTML report")
	estimate.Flags().StringVar(&o.xlsxPath, "xlsx", "", "write an Excel workbook")
	estimate.Flags().StringVar(&o.chartsDir, "charts", "", "write PNG charts into this directory")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive dashboard and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, o)
		},
	}
	serve.Flags().StringVar(&o.addr, "addr", envOr(envAddr, ":8080"), "listen address (env "+envAddr+")")
	serve.Flags().StringSliceVar(&o.origins, "origins", nil, "allowed CORS origins (default any)")

	root.AddCommand(estimate, serve)

	if err := root.ExecuteContext(context.Background()); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func setupLogger(w io.Writer, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func (o opts) params() estimator.Parameters {
	return estimator.Parameters{DepthM: o.depth, EfficiencyPct: o.eff, TransmissionLossPct: o.loss}
}

// paths resolves the data files; explicit flags win over --data-dir. A
// default tube-well file that does not exist is skipped.
func (o opts) paths() dataset.Paths {
	p := dataset.PathsIn(o.dataDir)
	if o.energy != "" {
		p.Energy = o.energy
	}
	if o.categories != "" {
		p.Categories = o.categories
	}
	if o.tubewells != "" {
		p.Tubewells = o.tubewells
	} else if _, err := os.Stat(p.Tubewells); errors.Is(err, os.ErrNotExist) {
		slog.Debug("no tube-well counts", "path", p.Tubewells)
		p.Tubewells = ""
	}
	return p
}

func load(o opts) (*dataset.Dataset, error) {
	p := o.paths()
	ds, err := dataset.Load(p)
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset loaded",
		"energy", p.Energy, "energy_rows", len(ds.Energy),
		"categories", p.Categories, "category_rows", len(ds.Categories),
		"tubewell_rows", len(ds.Tubewells),
	)
	return ds, nil
}

func runEstimate(w io.Writer, o opts) error {
	p := o.params()
	if err := p.Validate(); err != nil {
		return err
	}
	ds, err := load(o)
	if err != nil {
		return err
	}
	res, err := ds.Estimate(p)
	if err != nil {
		return err
	}
	v := report.NewView(res, ds.Tubewells, o.insightYear)
	for _, wr := range v.Warnings {
		slog.Warn("data warning", "year", wr.Year, "kind", wr.Kind.String(), "msg", wr.Message)
	}

	_, _ = fmt.Fprintf(w, _console, p.DepthM, p.EfficiencyPct, p.TransmissionLossPct,
		time.Now().Format("2006-01-02 15:04:05"))
	if o.pretty {
		if err := report.WriteTable(w, v); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w)
	}
	if err := report.WriteSummary(w, v); err != nil {
		return err
	}

	if err := writeFile(o.csvPath, func(f io.Writer) error { return report.WriteCSV(f, v) }); err != nil {
		return err
	}
	if err := writeFile(o.jsonPath, func(f io.Writer) error { return report.WriteJSON(f, v) }); err != nil {
		return err
	}
	if err := writeFile(o.htmlPath, func(f io.Writer) error { return report.WriteHTML(f, v, report.HTMLOptions{}) }); err != nil {
		return err
	}
	if err := writeFile(o.xlsxPath, func(f io.Writer) error { return report.WriteWorkbook(f, v) }); err != nil {
		return err
	}
	if o.chartsDir != "" {
		saved, err := report.SaveCharts(o.chartsDir, v)
		if err != nil {
			return err
		}
		slog.Info("charts written", "dir", o.chartsDir, "files", strings.Join(saved, ","))
	}
	return nil
}

// writeFile creates path and hands it to write; an empty path is a no-op.
func writeFile(path string, write func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("report written", "path", path)
	return nil
}

func runServe(ctx context.Context, o opts) error {
	ds, err := load(o)
	if err != nil {
		return err
	}
	s, err := server.New(server.Config{
		Addr:           o.addr,
		InsightYear:    o.insightYear,
		AllowedOrigins: o.origins,
		Logger:         slog.Default(),
	}, ds)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

const _console = `GWNexus - Groundwater/Energy Nexus Estimator

* GitHub: https://github.com/ja7ad/gwnexus

       Depth: %d m
       Pump efficiency: %d%%
       Transmission loss: %d%%

Extraction report as of %s:

`
