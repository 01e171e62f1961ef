package window

import (
	"fmt"
	"math"
)

// Source is the read side of a series store.
type Source interface {
	Keys() []string
	Windowed(key string, length int) []float64
	MaxLength() int
}

// Snapshot is the resolved plot range for one redraw.
type Snapshot struct {
	XMin, XMax float64
	YMin, YMax float64
	// NoData is set when Y auto bounds fell back to defaults.
	NoData bool
}

// EmptyStoreBoundsError reports that no samples exist to derive Y bounds from.
type EmptyStoreBoundsError struct {
	Lookback int
}

func (e *EmptyStoreBoundsError) Error() string {
	return fmt.Sprintf("no samples in the last %d of any series", e.Lookback)
}

// Policy turns store state and axis bounds into a Snapshot.
// It holds configuration only.
type Policy struct {
	XSpan     int     // auto X min trails auto X max by this many samples
	XFloor    int     // auto X max never goes below this
	YLookback int     // samples per series considered for auto Y
	YMargin   float64 // added outside the rounded Y extent
	EmptyYMin float64 // auto Y min with no data
	EmptyYMax float64 // auto Y max with no data
}

// DefaultPolicy is a 50-sample sliding window with a 1 unit Y margin.
func DefaultPolicy() Policy {
	return Policy{
		XSpan:     50,
		XFloor:    50,
		YLookback: 50,
		YMargin:   1,
		EmptyYMin: 0,
		EmptyYMax: 1,
	}
}

// Resolve computes the plot range. Each axis is resolved independently;
// a Manual axis always uses its value truncated toward zero.
//
// Auto X max follows the longest series, not the most recently updated one.
func (p Policy) Resolve(src Source, b Bounds) Snapshot {
	var snap Snapshot

	if bound := b.Get(XMax); bound.Mode == Manual {
		snap.XMax = math.Trunc(bound.Value)
	} else {
		snap.XMax = float64(p.XFloor)
		if n := src.MaxLength(); n > p.XFloor {
			snap.XMax = float64(n)
		}
	}

	if bound := b.Get(XMin); bound.Mode == Manual {
		snap.XMin = math.Trunc(bound.Value)
	} else {
		snap.XMin = snap.XMax - float64(p.XSpan)
	}

	lo, hi, err := p.Extent(src)
	snap.NoData = err != nil

	if bound := b.Get(YMin); bound.Mode == Manual {
		snap.YMin = math.Trunc(bound.Value)
	} else if err != nil {
		snap.YMin = p.EmptyYMin
	} else {
		snap.YMin = math.Floor(lo) - p.YMargin
	}

	if bound := b.Get(YMax); bound.Mode == Manual {
		snap.YMax = math.Trunc(bound.Value)
	} else if err != nil {
		snap.YMax = p.EmptyYMax
	} else {
		snap.YMax = math.Ceil(hi) + p.YMargin
	}

	return snap
}

// Extent returns the min and max over the trailing YLookback samples of
// every series.
func (p Policy) Extent(src Source) (lo, hi float64, err error) {
	lo, hi = math.Inf(1), math.Inf(-1)
	seen := false
	for _, key := range src.Keys() {
		for _, v := range src.Windowed(key, p.YLookback) {
			seen = true
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if !seen {
		return 0, 0, &EmptyStoreBoundsError{Lookback: p.YLookback}
	}
	return lo, hi, nil
}
