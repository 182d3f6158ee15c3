package estimator

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/ja7ad/gwnexus/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expect(energyKWh float64, p Parameters) float64 {
	eff := float64(p.EfficiencyPct) / 100
	loss := float64(p.TransmissionLossPct) / 100
	return 0.81071318210885 * energyKWh * (eff * (1 - loss)) / (0.00273 * float64(p.DepthM) * 1e9)
}

func fixtureEnergy() []EnergyRecord {
	return []EnergyRecord{
		{Year: 2005, EnergyKWh: 6.6e9, TotalMAF: 49.5},
		{Year: 2006, EnergyKWh: 7.1e9, TotalMAF: 50.2},
		{Year: 2007, EnergyKWh: 7.6e9, TotalMAF: 50.9},
		{Year: 2008, EnergyKWh: 7.9e9, TotalMAF: 51.0},
	}
}

func fixtureCategories() []CategoryRecord {
	return []CategoryRecord{
		{Year: 2005, Private: types.Some(43), Public: types.Some(2.1), Scarp: types.Some(1.9), OtherPrivate: types.Some(0.8)},
		{Year: 2006, Private: types.Some(44), Public: types.Some(2.0), Scarp: types.Some(1.8), OtherPrivate: types.Some(0.9)},
		{Year: 2007, Public: types.Some(2.0), Scarp: types.Some(1.7), OtherPrivate: types.Some(1.0)},
		{Year: 2008, Private: types.Some(45), Public: types.Some(1.9), Scarp: types.Some(1.6)},
	}
}

func TestElectricVolume_ScenarioA(t *testing.T) {
	v, err := ElectricVolume(1_000_000_000, 45, 45, 15)
	require.NoError(t, err)

	want := 0.81071318210885 * 1e9 * 0.45 * 0.85 / (0.00273 * 45 * 1e9)
	assert.InDelta(t, want, v.Float64(), 1e-12)
	assert.InDelta(t, 2.524, v.Float64(), 1e-3)
	t.Logf("E=1e9 kWh depth=45 eff=45 loss=15 -> %.6f MAF", v.Float64())
}

func TestElectricVolume_Preconditions(t *testing.T) {
	cases := []struct {
		name                string
		energy, depth, e, l float64
		want                error
	}{
		{"zero depth", 1e9, 0, 45, 15, ErrNonPositiveDepth},
		{"negative depth", 1e9, -1, 45, 15, ErrNonPositiveDepth},
		{"nan depth", 1e9, math.NaN(), 45, 15, ErrNonPositiveDepth},
		{"negative energy", -1, 45, 45, 15, ErrInvalidValue},
		{"inf energy", math.Inf(1), 45, 45, 15, ErrInvalidValue},
		{"nan efficiency", 1e9, 45, math.NaN(), 15, ErrInvalidValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ElectricVolume(tc.energy, tc.depth, tc.e, tc.l)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestElectricVolume_ZeroEnergy(t *testing.T) {
	v, err := ElectricVolume(0, 30, 70, 10)
	require.NoError(t, err)
	assert.Equal(t, types.MAF(0), v)
}

func TestElectricVolume_Monotonic(t *testing.T) {
	base := DefaultParameters()
	at := func(e float64, p Parameters) float64 {
		v, err := ElectricVolume(e, float64(p.DepthM), float64(p.EfficiencyPct), float64(p.TransmissionLossPct))
		require.NoError(t, err)
		require.False(t, math.IsNaN(v.Float64()) || math.IsInf(v.Float64(), 0))
		require.GreaterOrEqual(t, v.Float64(), 0.0)
		return v.Float64()
	}

	// energy
	prev := at(0, base)
	for e := 1e8; e <= 1e10; e *= 2 {
		cur := at(e, base)
		assert.Greater(t, cur, prev, "energy=%g", e)
		prev = cur
	}

	// efficiency
	p := base
	p.EfficiencyPct = MinEfficiencyPct
	prev = at(5e9, p)
	for eff := MinEfficiencyPct + 1; eff <= MaxEfficiencyPct; eff++ {
		p.EfficiencyPct = eff
		cur := at(5e9, p)
		assert.Greater(t, cur, prev, "eff=%d", eff)
		prev = cur
	}

	// transmission loss
	p = base
	p.TransmissionLossPct = MinTransmissionLossPct
	prev = at(5e9, p)
	for loss := MinTransmissionLossPct + 1; loss <= MaxTransmissionLossPct; loss++ {
		p.TransmissionLossPct = loss
		cur := at(5e9, p)
		assert.Less(t, cur, prev, "loss=%d", loss)
		prev = cur
	}
}

func TestElectricVolume_DepthSweep(t *testing.T) {
	p := DefaultParameters()
	p.DepthM = MinDepthM
	prev := expect(8.5e9, p)
	for d := MinDepthM + 1; d <= MaxDepthM; d++ {
		v, err := ElectricVolume(8.5e9, float64(d), 45, 15)
		require.NoError(t, err)
		require.Less(t, v.Float64(), prev, "depth=%d", d)
		prev = v.Float64()
	}
	t.Logf("depth=%d -> %.4f MAF", MaxDepthM, prev)
}

func TestDieselVolume(t *testing.T) {
	for _, tc := range []struct{ total, elec float64 }{
		{50, 20}, {0, 0}, {1.25, 1.25}, {49.5, 21.455}, {3, 7.5},
	} {
		got := DieselVolume(types.MAF(tc.total), types.MAF(tc.elec))
		assert.InDelta(t, tc.total-tc.elec, got.Float64(), 1e-12)
	}
}

func TestDieselVolume_ScenarioB(t *testing.T) {
	got := DieselVolume(10, 12)
	assert.Equal(t, types.MAF(-2), got, "negative diesel must not be clamped")

	// and the table surfaces it as a warning
	e := EnergyRecord{Year: 2010, TotalMAF: 1, EnergyKWh: 8.5e9}
	vols, warns, err := VolumeTable([]EnergyRecord{e}, DefaultParameters())
	require.NoError(t, err)
	require.Len(t, vols, 1)
	assert.Less(t, vols[0].Diesel.Float64(), 0.0)
	require.Len(t, warns, 1)
	assert.Equal(t, NegativeDiesel, warns[0].Kind)
	assert.Equal(t, 2010, warns[0].Year)
}

func TestVolumeTable_RoundTripAndOrder(t *testing.T) {
	in := fixtureEnergy()
	// reverse to prove no sorting happens
	rev := make([]EnergyRecord, len(in))
	for i := range in {
		rev[len(in)-1-i] = in[i]
	}

	p := Parameters{DepthM: 60, EfficiencyPct: 55, TransmissionLossPct: 20}
	vols, warns, err := VolumeTable(rev, p)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, vols, len(rev))

	for i, v := range vols {
		assert.Equal(t, rev[i].Year, v.Year)
		assert.InDelta(t, expect(rev[i].EnergyKWh.Float64(), p), v.Electric.Float64(), 1e-12)
		assert.InDelta(t, rev[i].TotalMAF.Float64(), v.Total().Float64(), 1e-9, "year %d", v.Year)
	}
}

func TestVolumeTable_Errors(t *testing.T) {
	_, _, err := VolumeTable(fixtureEnergy(), Parameters{DepthM: 29, EfficiencyPct: 45, TransmissionLossPct: 15})
	assert.ErrorIs(t, err, ErrParameterRange)

	_, _, err = VolumeTable(nil, DefaultParameters())
	assert.ErrorIs(t, err, ErrNoRecords)

	bad := fixtureEnergy()
	bad[2].EnergyKWh = types.KWh(math.NaN())
	_, _, err = VolumeTable(bad, DefaultParameters())
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "2007")

	bad = fixtureEnergy()
	bad[0].TotalMAF = -1
	_, _, err = VolumeTable(bad, DefaultParameters())
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestVolumeTable_DoesNotMutateInput(t *testing.T) {
	in := fixtureEnergy()
	snapshot := append([]EnergyRecord(nil), in...)
	_, _, err := VolumeTable(in, DefaultParameters())
	require.NoError(t, err)
	assert.Equal(t, snapshot, in)
}

func TestParameters_Validate(t *testing.T) {
	require.NoError(t, DefaultParameters().Validate())
	require.NoError(t, Parameters{MinDepthM, MinEfficiencyPct, MinTransmissionLossPct}.Validate())
	require.NoError(t, Parameters{MaxDepthM, MaxEfficiencyPct, MaxTransmissionLossPct}.Validate())

	for _, p := range []Parameters{
		{DepthM: 101, EfficiencyPct: 45, TransmissionLossPct: 15},
		{DepthM: 45, EfficiencyPct: 24, TransmissionLossPct: 15},
		{DepthM: 45, EfficiencyPct: 71, TransmissionLossPct: 15},
		{DepthM: 45, EfficiencyPct: 45, TransmissionLossPct: 9},
		{DepthM: 45, EfficiencyPct: 45, TransmissionLossPct: 26},
	} {
		assert.ErrorIs(t, p.Validate(), ErrParameterRange, "%+v", p)
	}
	assert.Equal(t, "d45:e45:l15", DefaultParameters().Key())
}

func TestFillMissing(t *testing.T) {
	in := fixtureCategories()
	out := FillMissing(in, 0)

	require.Len(t, out, len(in))
	assert.False(t, in[2].Private.Valid, "input must stay untouched")
	assert.Equal(t, types.Some(0), out[2].Private)
	assert.Equal(t, types.Some(0), out[3].OtherPrivate)
	assert.Equal(t, in[0], out[0])
}

func TestShareTable_ScenarioC(t *testing.T) {
	cats := []CategoryRecord{{Year: 2010, Public: types.Some(0), Scarp: types.Some(0), OtherPrivate: types.Some(0)}}
	vols := []VolumeRecord{{Year: 2010, Electric: 3, Diesel: 1}}

	shares, warns, err := ShareTable(cats, vols)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, shares, 1)
	assert.Equal(t, ShareRecord{Year: 2010, ElectricPrivate: 75, DieselPrivate: 25}, shares[0])
}

func TestShareTable_ScenarioD_ZeroRowSum(t *testing.T) {
	cats := []CategoryRecord{{Year: 2011, Public: types.Some(0), Scarp: types.Some(0), OtherPrivate: types.Some(0)}}
	vols := []VolumeRecord{{Year: 2011}}

	for i := 0; i < 3; i++ { // deterministic across calls
		shares, warns, err := ShareTable(cats, vols)
		require.NoError(t, err)
		require.Len(t, shares, 1)
		assert.Equal(t, ShareRecord{Year: 2011}, shares[0])
		require.Len(t, warns, 1)
		assert.Equal(t, ZeroRowSum, warns[0].Kind)
	}
}

func TestShareTable_SumsTo100(t *testing.T) {
	p := DefaultParameters()
	vols, _, err := VolumeTable(fixtureEnergy(), p)
	require.NoError(t, err)

	shares, warns, err := ShareTable(FillMissing(fixtureCategories(), 0), vols)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, shares, 4)

	for _, s := range shares {
		assert.InDelta(t, 100.0, s.Sum(), 1e-6, "year %d", s.Year)
		for _, v := range s.values() {
			assert.GreaterOrEqual(t, v, 0.0)
		}
		t.Logf("%d: elec=%.2f%% diesel=%.2f%% public=%.2f%% scarp=%.2f%% other=%.2f%%",
			s.Year, s.ElectricPrivate, s.DieselPrivate, s.Public, s.Scarp, s.OtherPrivate)
	}
}

func TestShareTable_MissingValueFails(t *testing.T) {
	vols, _, err := VolumeTable(fixtureEnergy(), DefaultParameters())
	require.NoError(t, err)

	_, _, err = ShareTable(fixtureCategories(), vols)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingValue)
	assert.Contains(t, err.Error(), "2008")

	// Private is not part of the share, so a missing Private alone is fine.
	cats := fixtureCategories()[:2]
	cats[0].Private = types.NullFloat{}
	_, _, err = ShareTable(cats, vols)
	assert.NoError(t, err)
}

func TestShareTable_YearMismatch(t *testing.T) {
	cats := FillMissing(fixtureCategories(), 0)
	cats = append(cats, CategoryRecord{Year: 2009, Public: types.Some(1), Scarp: types.Some(1), OtherPrivate: types.Some(1)})

	vols, _, err := VolumeTable(fixtureEnergy()[1:], DefaultParameters()) // drop 2005
	require.NoError(t, err)

	shares, warns, err := ShareTable(cats, vols)
	require.NoError(t, err)
	assert.Len(t, shares, 3)

	years := map[int]WarningKind{}
	for _, w := range warns {
		years[w.Year] = w.Kind
	}
	assert.Equal(t, map[int]WarningKind{2005: YearMismatch, 2009: YearMismatch}, years)
}

func TestShareTable_NonFiniteVolume(t *testing.T) {
	cats := []CategoryRecord{{Year: 2010, Public: types.Some(1), Scarp: types.Some(1), OtherPrivate: types.Some(1)}}
	cases := []struct {
		name string
		vol  VolumeRecord
	}{
		{"nan electric", VolumeRecord{Year: 2010, Electric: types.MAF(math.NaN()), Diesel: 1}},
		{"inf diesel", VolumeRecord{Year: 2010, Electric: 1, Diesel: types.MAF(math.Inf(1))}},
		{"-inf electric", VolumeRecord{Year: 2010, Electric: types.MAF(math.Inf(-1)), Diesel: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shares, warns, err := ShareTable(cats, []VolumeRecord{tc.vol})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValue)
			assert.Contains(t, err.Error(), "2010")
			assert.Nil(t, shares)
			assert.Nil(t, warns)
		})
	}

	// an unmatched non-finite volume year still fails the whole table
	_, _, err := ShareTable(cats, []VolumeRecord{
		{Year: 2010, Electric: 1, Diesel: 1},
		{Year: 2011, Electric: types.MAF(math.NaN()), Diesel: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestShareTable_Empty(t *testing.T) {
	_, _, err := ShareTable(nil, nil)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestEstimate(t *testing.T) {
	res, err := Estimate(fixtureEnergy(), fixtureCategories(), DefaultParameters())
	require.NoError(t, err)
	assert.Equal(t, DefaultParameters(), res.Params)
	assert.Len(t, res.Volumes, 4)
	assert.Len(t, res.Shares, 4)
	assert.Empty(t, res.Warnings)

	v, ok := res.Volume(2007)
	require.True(t, ok)
	assert.InDelta(t, expect(7.6e9, res.Params), v.Electric.Float64(), 1e-12)

	_, ok = res.Share(1999)
	assert.False(t, ok)

	_, err = Estimate(fixtureEnergy(), fixtureCategories(), Parameters{})
	assert.ErrorIs(t, err, ErrParameterRange)
}

func TestWarningKind_String(t *testing.T) {
	assert.Equal(t, "negative_diesel", NegativeDiesel.String())
	assert.Equal(t, "year_mismatch", YearMismatch.String())
	assert.Equal(t, "zero_row_sum", ZeroRowSum.String())
	assert.Equal(t, "zero_tubewells", ZeroTubewells.String())
	assert.Equal(t, "unknown", WarningKind(0).String())
	assert.Equal(t, "2010: negative_diesel: x", Warning{Kind: NegativeDiesel, Year: 2010, Message: "x"}.String())
}

func ExampleEstimate() {
	energy := []EnergyRecord{{Year: 2017, EnergyKWh: 1e9, TotalMAF: 10}}
	categories := []CategoryRecord{{Year: 2017, Public: types.Some(1), Scarp: types.Some(0.5)}}

	res, err := Estimate(energy, categories, DefaultParameters())
	if err != nil {
		fmt.Println(err)
		return
	}
	v := res.Volumes[0]
	fmt.Printf("electric=%.3f diesel=%.3f share=%.1f%%\n", v.Electric.Float64(), v.Diesel.Float64(), res.Shares[0].ElectricPrivate)
	// Output: electric=2.524 diesel=7.476 share=21.9%
}
