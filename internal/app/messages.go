package app

import "time"

// PollMsg triggers draining the sample sources.
type PollMsg time.Time

// RedrawMsg triggers a chart redraw.
type RedrawMsg time.Time

// FlashOffMsg clears the status flash it was scheduled for.
type FlashOffMsg struct {
	Seq int
}

// PlotSavedMsg reports the outcome of a plot save.
type PlotSavedMsg struct {
	Path string
	Err  error
}
