package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ja7ad/gwnexus/pkg/estimator"
	"github.com/ja7ad/gwnexus/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEnergy(t *testing.T) {
	recs, err := LoadEnergy(filepath.Join("testdata", EnergyFile))
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, estimator.EnergyRecord{Year: 2005, EnergyKWh: 6.612e9, TotalMAF: 49.5}, recs[0])
	assert.Equal(t, 2008, recs[3].Year)
}

func TestReadEnergy_HeaderVariants(t *testing.T) {
	in := "\ufeff total_gw(maf) , YEAR,Energy(KWh)\n51,2010,8e9\n"
	recs, err := ReadEnergy(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2010, recs[0].Year)
	assert.Equal(t, types.KWh(8e9), recs[0].EnergyKWh)
	assert.Equal(t, types.MAF(51), recs[0].TotalMAF)
}

func TestReadEnergy_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
		line int
	}{
		{"no rows", "Year,energy(Kwh),Total_GW(MAF)\n", ErrEmpty, 0},
		{"empty file", "", ErrEmpty, 0},
		{"missing column", "Year,energy(Kwh)\n2005,1\n", ErrMissingColumn, 0},
		{"non numeric", "Year,energy(Kwh),Total_GW(MAF)\n2005,lots,49\n", ErrMalformed, 2},
		{"empty cell", "Year,energy(Kwh),Total_GW(MAF)\n2005,1e9,49\n2006,,50\n", ErrMalformed, 3},
		{"fractional year", "Year,energy(Kwh),Total_GW(MAF)\n2005.5,1e9,49\n", ErrMalformed, 2},
		{"duplicate year", "Year,energy(Kwh),Total_GW(MAF)\n2005,1e9,49\n2005,1e9,49\n", ErrYearOrder, 3},
		{"descending", "Year,energy(Kwh),Total_GW(MAF)\n2006,1e9,49\n2005,1e9,49\n", ErrYearOrder, 3},
		{"nan", "Year,energy(Kwh),Total_GW(MAF)\n2005,NaN,49\n", ErrMalformed, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadEnergy(strings.NewReader(tc.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var re *RowError
			if tc.line > 0 {
				require.True(t, errors.As(err, &re), "want RowError, got %v", err)
				assert.Equal(t, tc.line, re.Line)
			}
		})
	}
}

func TestReadCategories(t *testing.T) {
	recs, err := LoadCategories(filepath.Join("testdata", CategoriesFile), MinCategoryYear)
	require.NoError(t, err)
	require.Len(t, recs, 4, "rows before 2005 are dropped")

	assert.Equal(t, 2005, recs[0].Year)
	assert.Equal(t, types.Some(43), recs[0].Private)
	assert.Equal(t, types.Some(0.8), recs[0].OtherPrivate)

	// empty cells stay missing until explicitly filled
	assert.False(t, recs[2].Private.Valid)
	assert.True(t, recs[2].Public.Valid)
	assert.False(t, recs[3].OtherPrivate.Valid)

	filled := estimator.FillMissing(recs, 0)
	assert.Equal(t, types.Some(0), filled[3].OtherPrivate)
}

func TestReadCategories_AllBeforeMinYear(t *testing.T) {
	in := "Year,Private,Public,Scarp,Other Pr.\n2001,1,1,1,1\n"
	_, err := ReadCategories(strings.NewReader(in), MinCategoryYear)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReadCategories_Malformed(t *testing.T) {
	in := "Year,Private,Public,Scarp,Other Pr.\n2005,1,x,1,1\n"
	_, err := ReadCategories(strings.NewReader(in), MinCategoryYear)
	require.ErrorIs(t, err, ErrMalformed)

	var re *RowError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, colPublic, re.Column)
	assert.Contains(t, err.Error(), `column "Public"`)
}

func TestReadTubewells(t *testing.T) {
	recs, err := LoadTubewells(filepath.Join("testdata", TubewellsFile))
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, estimator.TubewellRecord{Year: 2005, Electric: 250000, Diesel: 750000}, recs[0])

	_, err = ReadTubewells(strings.NewReader("Years,Electric,Diesel\n2005,-1,2\n"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoad(t *testing.T) {
	ds, err := Load(PathsIn("testdata"))
	require.NoError(t, err)
	assert.Len(t, ds.Energy, 4)
	assert.Len(t, ds.Categories, 4)
	assert.Len(t, ds.Tubewells, 4)

	res, err := ds.Estimate(estimator.DefaultParameters())
	require.NoError(t, err)
	assert.Len(t, res.Shares, 4)
	for _, s := range res.Shares {
		assert.InDelta(t, 100.0, s.Sum(), 1e-6)
	}

	p := PathsIn("testdata")
	p.Tubewells = ""
	ds, err = Load(p)
	require.NoError(t, err)
	assert.Nil(t, ds.Tubewells)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(PathsIn(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
