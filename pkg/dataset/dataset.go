package dataset

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/ja7ad/gwnexus/pkg/estimator"
	"github.com/ja7ad/gwnexus/pkg/types"
)

// Default file names of the three input tables.
const (
	EnergyFile     = "tubewell_energy_punjab.csv"
	CategoriesFile = "tubewell_pumping_categories.csv"
	TubewellsFile  = "num_tubewells.csv"
)

// MinCategoryYear is the first year of pumping-category data used by the estimate.
const MinCategoryYear = 2005

// Column headers as they appear in the source files.
const (
	colYear         = "Year"
	colYears        = "Years"
	colEnergy       = "energy(Kwh)"
	colTotal        = "Total_GW(MAF)"
	colPrivate      = "Private"
	colPublic       = "Public"
	colScarp        = "Scarp"
	colOtherPrivate = "Other Pr."
	colElectric     = "Electric"
	colDiesel       = "Diesel"
)

// ReadEnergy parses Year, energy(Kwh), Total_GW(MAF).
func ReadEnergy(r io.Reader) ([]estimator.EnergyRecord, error) {
	t, err := readTable(r, colYear, colEnergy, colTotal)
	if err != nil {
		return nil, fmt.Errorf("energy: %w", err)
	}

	out := make([]estimator.EnergyRecord, 0, len(t.rows))
	prev := math.MinInt
	for i := range t.rows {
		year, err := t.integer(i, colYear)
		if err != nil {
			return nil, fmt.Errorf("energy: %w", err)
		}
		if err := t.checkYear(i, colYear, prev, year); err != nil {
			return nil, fmt.Errorf("energy: %w", err)
		}
		prev = year

		kwh, err := t.float(i, colEnergy)
		if err != nil {
			return nil, fmt.Errorf("energy: %w", err)
		}
		total, err := t.float(i, colTotal)
		if err != nil {
			return nil, fmt.Errorf("energy: %w", err)
		}
		out = append(out, estimator.EnergyRecord{Year: year, EnergyKWh: types.KWh(kwh), TotalMAF: types.MAF(total)})
	}
	return out, nil
}

// ReadCategories parses Year, Private, Public, Scarp, Other Pr. and drops
// rows before minYear. Empty cells are kept as missing values; see
// estimator.FillMissing.
func ReadCategories(r io.Reader, minYear int) ([]estimator.CategoryRecord, error) {
	t, err := readTable(r, colYear, colPrivate, colPublic, colScarp, colOtherPrivate)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}

	out := make([]estimator.CategoryRecord, 0, len(t.rows))
	prev := math.MinInt
	for i := range t.rows {
		year, err := t.integer(i, colYear)
		if err != nil {
			return nil, fmt.Errorf("categories: %w", err)
		}
		if year < minYear {
			continue
		}
		if err := t.checkYear(i, colYear, prev, year); err != nil {
			return nil, fmt.Errorf("categories: %w", err)
		}
		prev = year

		rec := estimator.CategoryRecord{Year: year}
		for _, f := range []struct {
			col string
			dst *types.NullFloat
		}{
			{colPrivate, &rec.Private},
			{colPublic, &rec.Public},
			{colScarp, &rec.Scarp},
			{colOtherPrivate, &rec.OtherPrivate},
		} {
			if *f.dst, err = t.nullFloat(i, f.col); err != nil {
				return nil, fmt.Errorf("categories: %w", err)
			}
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("categories: %w: none from %d", ErrEmpty, minYear)
	}
	return out, nil
}

// ReadTubewells parses Years, Electric, Diesel installed counts.
func ReadTubewells(r io.Reader) ([]estimator.TubewellRecord, error) {
	t, err := readTable(r, colYears, colElectric, colDiesel)
	if err != nil {
		return nil, fmt.Errorf("tubewells: %w", err)
	}

	out := make([]estimator.TubewellRecord, 0, len(t.rows))
	prev := math.MinInt
	for i := range t.rows {
		year, err := t.integer(i, colYears)
		if err != nil {
			return nil, fmt.Errorf("tubewells: %w", err)
		}
		if err := t.checkYear(i, colYears, prev, year); err != nil {
			return nil, fmt.Errorf("tubewells: %w", err)
		}
		prev = year

		elec, err := t.integer(i, colElectric)
		if err != nil {
			return nil, fmt.Errorf("tubewells: %w", err)
		}
		diesel, err := t.integer(i, colDiesel)
		if err != nil {
			return nil, fmt.Errorf("tubewells: %w", err)
		}
		if elec < 0 || diesel < 0 {
			return nil, fmt.Errorf("tubewells: %w", &RowError{Line: t.line(i), Err: fmt.Errorf("%w: negative count", ErrMalformed)})
		}
		out = append(out, estimator.TubewellRecord{Year: year, Electric: elec, Diesel: diesel})
	}
	return out, nil
}

// LoadEnergy opens path and calls ReadEnergy.
func LoadEnergy(path string) ([]estimator.EnergyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadEnergy(f)
}

// LoadCategories opens path and calls ReadCategories.
func LoadCategories(path string, minYear int) ([]estimator.CategoryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadCategories(f, minYear)
}

// LoadTubewells opens path and calls ReadTubewells.
func LoadTubewells(path string) ([]estimator.TubewellRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadTubewells(f)
}

// Dataset holds the three input tables.
type Dataset struct {
	Energy     []estimator.EnergyRecord
	Categories []estimator.CategoryRecord
	Tubewells  []estimator.TubewellRecord
}

// Paths locates the three input files.
type Paths struct {
	Energy     string
	Categories string
	Tubewells  string // optional
}

// PathsIn returns the default file names inside dir.
func PathsIn(dir string) Paths {
	return Paths{
		Energy:     filepath.Join(dir, EnergyFile),
		Categories: filepath.Join(dir, CategoriesFile),
		Tubewells:  filepath.Join(dir, TubewellsFile),
	}
}

// Load reads every table named in p. An empty Tubewells path is skipped.
func Load(p Paths) (*Dataset, error) {
	energy, err := LoadEnergy(p.Energy)
	if err != nil {
		return nil, err
	}
	cats, err := LoadCategories(p.Categories, MinCategoryYear)
	if err != nil {
		return nil, err
	}
	ds := &Dataset{Energy: energy, Categories: cats}
	if p.Tubewells != "" {
		if ds.Tubewells, err = LoadTubewells(p.Tubewells); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// Estimate runs estimator.Estimate on the dataset.
func (d *Dataset) Estimate(p estimator.Parameters) (*estimator.Result, error) {
	return estimator.Estimate(d.Energy, d.Categories, p)
}
