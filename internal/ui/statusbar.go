package ui

import (
	"fmt"

	"streamplot.klederson.com/internal/stream"
	"streamplot.klederson.com/internal/window"
)

// StatusInfo is everything the status bar shows.
type StatusInfo struct {
	State    stream.State
	Series   int
	Ingested int
	Rejected int
	Dropped  int64 // undecodable input lines
	Bounds   window.Snapshot
	Storage  string
	Flash    string // transient message, replaces the counters while set
	Error    bool   // Flash reports a failure
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	status := StyleStatusRunning.Render("[RUNNING]")
	if info.State == stream.Paused {
		status = StyleStatusPaused.Render("[PAUSED]")
	}

	var body string
	switch {
	case info.Flash != "" && info.Error:
		body = " " + StyleStatusError.Render(info.Flash)
	case info.Flash != "":
		body = " " + StyleFlash.Render(info.Flash)
	default:
		b := info.Bounds
		body = fmt.Sprintf(" Series: %d  Samples: %d  Rejected: %d  X: %g..%g  Y: %g..%g  Store: %s",
			info.Series, info.Ingested, info.Rejected, b.XMin, b.XMax, b.YMin, b.YMax, info.Storage)
		if info.Dropped > 0 {
			body += fmt.Sprintf("  Dropped lines: %d", info.Dropped)
		}
		if b.NoData {
			body += "  (no data)"
		}
		body = StyleStatusBar.Foreground(ColorGreen).Render(body)
	}

	return StyleStatusBar.Width(width).Render(padBetween(status+body, "", width-2))
}
