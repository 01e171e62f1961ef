package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamplot.klederson.com/internal/series"
	"streamplot.klederson.com/internal/stream"
	"streamplot.klederson.com/internal/window"
)

func TestPauseLabel(t *testing.T) {
	_, label := PauseLabel(stream.Running)
	assert.Equal(t, "ause", label)
	_, label = PauseLabel(stream.Paused)
	assert.Equal(t, "lay", label)
}

func TestRenderMenuBar(t *testing.T) {
	running := ansi.Strip(RenderMenuBar(120, "random walk", stream.Running, true, true))
	assert.Contains(t, running, "[P]ause")
	assert.Contains(t, running, "RUNNING")
	assert.Contains(t, running, "Source: random walk")

	paused := ansi.Strip(RenderMenuBar(120, "random walk", stream.Paused, true, true))
	assert.Contains(t, paused, "[P]lay")
	assert.Contains(t, paused, "PAUSED")
}

func TestRenderStatusBar(t *testing.T) {
	info := StatusInfo{
		State:    stream.Running,
		Series:   2,
		Ingested: 120,
		Rejected: 3,
		Bounds:   window.Snapshot{XMin: 30, XMax: 80, YMin: -2, YMax: 11},
		Storage:  "ring",
	}
	out := ansi.Strip(RenderStatusBar(140, info))
	assert.Contains(t, out, "Series: 2")
	assert.Contains(t, out, "Rejected: 3")
	assert.Contains(t, out, "X: 30..80")
	assert.Contains(t, out, "Y: -2..11")
	assert.NotContains(t, out, "Dropped lines")

	info.Dropped = 4
	out = ansi.Strip(RenderStatusBar(160, info))
	assert.Contains(t, out, "Dropped lines: 4")

	info.Flash = "Saved plot.txt"
	out = ansi.Strip(RenderStatusBar(140, info))
	assert.Contains(t, out, "Saved plot.txt")
	assert.NotContains(t, out, "Series:")
}

func TestRenderAxisPanel(t *testing.T) {
	b := window.DefaultBounds()
	require.NoError(t, b.SetMode(window.YMax, window.Manual))
	require.NoError(t, b.SetManualValue(window.YMax, 42))

	p := AxisPanel{
		Bounds:   b,
		Resolved: window.Snapshot{XMin: 0, XMax: 50, YMin: 0, YMax: 42},
		Selected: window.YMax,
		Series: []stream.SeriesFrame{
			{Key: "TEMP", Color: series.Color{R: 90, G: 90, B: 90}, Values: []float64{1, 2.5}},
		},
		Lengths: map[string]int{"TEMP": 2},
	}
	out := ansi.Strip(RenderAxisPanel(p, 48, 20))

	assert.Contains(t, out, ">Y max MANUAL 42")
	assert.Contains(t, out, "X min AUTO")
	assert.Contains(t, out, "SERIES [1]")
	assert.Contains(t, out, "TEMP  n=2  last=2.5")
}

func TestRenderAxisPanel_Editing(t *testing.T) {
	p := AxisPanel{
		Bounds:   window.DefaultBounds(),
		Selected: window.XMin,
		Editing:  true,
		Input:    "> 12",
	}
	out := ansi.Strip(RenderAxisPanel(p, 48, 20))
	assert.Contains(t, out, "> 12")
	assert.Contains(t, out, "Waiting for samples")
}

func TestKeyMap_Help(t *testing.T) {
	h := help.New()
	short := ansi.Strip(h.View(DefaultKeyMap))
	assert.Contains(t, short, "pause/play")
	assert.Contains(t, short, "quit")

	h.ShowAll = true
	full := ansi.Strip(h.View(DefaultKeyMap))
	assert.True(t, strings.Contains(full, "x labels"))
}
