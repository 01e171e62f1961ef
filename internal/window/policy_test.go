package window

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamplot.klederson.com/internal/series"
)

func storeWith(t *testing.T, data map[string][]float64, order ...string) *series.Store {
	t.Helper()
	s := series.NewStore(series.Options{})
	for _, key := range order {
		for _, v := range data[key] {
			require.NoError(t, s.Ingest(key, v))
		}
	}
	return s
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestResolve_XAutoFollowsLongest(t *testing.T) {
	s := storeWith(t, map[string][]float64{
		"a": constant(30, 1),
		"b": constant(80, 1),
	}, "a", "b")

	snap := DefaultPolicy().Resolve(s, DefaultBounds())
	assert.Equal(t, 80, s.MaxLength())
	assert.Equal(t, 80.0, snap.XMax)
	assert.Equal(t, 30.0, snap.XMin)
}

func TestResolve_XAutoFloor(t *testing.T) {
	p := DefaultPolicy()

	empty := series.NewStore(series.Options{})
	snap := p.Resolve(empty, DefaultBounds())
	assert.Equal(t, 50.0, snap.XMax)
	assert.Equal(t, 0.0, snap.XMin)

	short := storeWith(t, map[string][]float64{"a": constant(49, 2)}, "a")
	snap = p.Resolve(short, DefaultBounds())
	assert.Equal(t, 50.0, snap.XMax)
	assert.Equal(t, 0.0, snap.XMin)
}

func TestResolve_YAuto(t *testing.T) {
	s := storeWith(t, map[string][]float64{
		"hi": {5, 2.0, 9.0, 4},
		"lo": {-1.0, 3.0, 0.5},
	}, "hi", "lo")

	snap := DefaultPolicy().Resolve(s, DefaultBounds())
	assert.Equal(t, -2.0, snap.YMin)
	assert.Equal(t, 10.0, snap.YMax)
	assert.False(t, snap.NoData)
}

func TestResolve_YAutoOnlyLooksBackLookback(t *testing.T) {
	data := append([]float64{-100, 500}, constant(50, 3)...)
	s := storeWith(t, map[string][]float64{"k": data}, "k")

	snap := DefaultPolicy().Resolve(s, DefaultBounds())
	assert.Equal(t, 2.0, snap.YMin)
	assert.Equal(t, 4.0, snap.YMax)
}

func TestResolve_YAutoEmptyStoreDefaults(t *testing.T) {
	snap := DefaultPolicy().Resolve(series.NewStore(series.Options{}), DefaultBounds())
	assert.True(t, snap.NoData)
	assert.Equal(t, 0.0, snap.YMin)
	assert.Equal(t, 1.0, snap.YMax)
}

func TestResolve_ManualOverrideIndependence(t *testing.T) {
	s := storeWith(t, map[string][]float64{
		"a": constant(30, 1),
		"b": constant(80, 7),
	}, "a", "b")

	b := DefaultBounds()
	require.NoError(t, b.SetMode(YMax, Manual))
	require.NoError(t, b.SetManualValue(YMax, 42))

	snap := DefaultPolicy().Resolve(s, b)
	assert.Equal(t, 42.0, snap.YMax)
	assert.Equal(t, 0.0, snap.YMin)
	assert.Equal(t, 80.0, snap.XMax)
	assert.Equal(t, 30.0, snap.XMin)
}

func TestResolve_ManualTruncates(t *testing.T) {
	b := DefaultBounds()
	for _, a := range Axes {
		require.NoError(t, b.SetMode(a, Manual))
	}
	require.NoError(t, b.SetManualValue(XMin, 10.9))
	require.NoError(t, b.SetManualValue(XMax, 99.5))
	require.NoError(t, b.SetManualValue(YMin, -3.7))
	require.NoError(t, b.SetManualValue(YMax, 12.2))

	snap := DefaultPolicy().Resolve(series.NewStore(series.Options{}), b)
	assert.Equal(t, Snapshot{XMin: 10, XMax: 99, YMin: -3, YMax: 12, NoData: true}, snap)
}

func TestResolve_ManualXMaxAutoXMinTrails(t *testing.T) {
	b := DefaultBounds()
	require.NoError(t, b.SetMode(XMax, Manual))
	require.NoError(t, b.SetManualValue(XMax, 200))

	snap := DefaultPolicy().Resolve(series.NewStore(series.Options{}), b)
	assert.Equal(t, 200.0, snap.XMax)
	assert.Equal(t, 150.0, snap.XMin)
}

func TestResolve_ConfigurableSpan(t *testing.T) {
	p := DefaultPolicy()
	p.XSpan = 20
	p.XFloor = 10
	s := storeWith(t, map[string][]float64{"a": constant(35, 0)}, "a")

	snap := p.Resolve(s, DefaultBounds())
	assert.Equal(t, 35.0, snap.XMax)
	assert.Equal(t, 15.0, snap.XMin)
}

func TestResolve_Pure(t *testing.T) {
	s := storeWith(t, map[string][]float64{"a": {1, 2, 3}}, "a")
	b := DefaultBounds()
	p := DefaultPolicy()

	first := p.Resolve(s, b)
	assert.Equal(t, first, p.Resolve(s, b))
	assert.Equal(t, []float64{1, 2, 3}, s.Windowed("a", 10))
}

func TestExtent_Empty(t *testing.T) {
	_, _, err := DefaultPolicy().Extent(series.NewStore(series.Options{}))
	var ebe *EmptyStoreBoundsError
	require.True(t, errors.As(err, &ebe))
	assert.Equal(t, 50, ebe.Lookback)
}

func TestBounds_UnknownAxis(t *testing.T) {
	b := DefaultBounds()
	bad := Axis(9)

	var uae *UnknownAxisError
	assert.True(t, errors.As(b.SetMode(bad, Manual), &uae))
	assert.True(t, errors.As(b.SetManualValue(bad, 1), &uae))
	assert.True(t, errors.As(b.Toggle(bad), &uae))
	assert.Equal(t, AxisBound{}, b.Get(bad))
	assert.Equal(t, "Axis(9)", bad.String())
}

func TestBounds_RejectsNonFiniteManual(t *testing.T) {
	b := DefaultBounds()
	err := b.SetManualValue(YMin, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidBound)
	assert.Equal(t, 0.0, b.Get(YMin).Value)
}

func TestBounds_Toggle(t *testing.T) {
	b := DefaultBounds()
	require.NoError(t, b.Toggle(XMin))
	assert.Equal(t, Manual, b.Get(XMin).Mode)
	require.NoError(t, b.Toggle(XMin))
	assert.Equal(t, Auto, b.Get(XMin).Mode)
}

func TestDefaultBounds(t *testing.T) {
	b := DefaultBounds()
	for _, a := range Axes {
		assert.Equal(t, Auto, b.Get(a).Mode, a.String())
	}
	assert.Equal(t, 50.0, b.Get(XMax).Value)
	assert.Equal(t, 100.0, b.Get(YMax).Value)
}
