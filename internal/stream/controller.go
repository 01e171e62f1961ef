package stream

import (
	"errors"
	"log/slog"

	"streamplot.klederson.com/internal/series"
	"streamplot.klederson.com/internal/window"
)

// State is the controller's run state.
type State int

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	if s == Paused {
		return "Paused"
	}
	return "Running"
}

// Sample is one labeled value. Color, when set, is used only if Key is new.
type Sample struct {
	Key   string
	Value float64
	Color *series.Color
}

// SampleSource produces samples on demand. Next returns false when nothing
// more is due in the current poll.
type SampleSource interface {
	Next() (Sample, bool)
}

// SeriesFrame is the data for one curve in a Frame.
type SeriesFrame struct {
	Key    string
	Color  series.Color
	Start  int // sample index of Values[0]
	Values []float64
}

// Frame is everything a renderer needs for one redraw.
type Frame struct {
	Bounds window.Snapshot
	Series []SeriesFrame
	State  State
}

// Renderer consumes frames.
type Renderer interface {
	OnRedraw(Frame)
}

// Options configures a Controller.
type Options struct {
	Policy       window.Policy
	RenderLength int // trailing samples handed to the renderer per series
	MaxPerPoll   int // samples taken from one source per poll
	Logger       *slog.Logger
}

// Stats counts ingestion outcomes.
type Stats struct {
	Ingested int
	Rejected int
}

// Controller moves samples from sources into the store and produces a
// frame on every redraw. It is driven from a single goroutine.
type Controller struct {
	store    *series.Store
	bounds   *window.Bounds
	sources  []SampleSource
	renderer Renderer
	opts     Options
	log      *slog.Logger

	state State
	view  *series.View
	stats Stats
}

// New creates a running controller. bounds is read on every redraw and is
// owned by the caller.
func New(store *series.Store, bounds *window.Bounds, renderer Renderer, opts Options, sources ...SampleSource) *Controller {
	if opts.MaxPerPoll < 1 {
		opts.MaxPerPoll = 1024
	}
	if opts.RenderLength < opts.Policy.YLookback {
		opts.RenderLength = opts.Policy.YLookback
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		store:    store,
		bounds:   bounds,
		sources:  sources,
		renderer: renderer,
		opts:     opts,
		log:      log,
		view:     store.View(opts.RenderLength),
	}
}

// State returns the current run state.
func (c *Controller) State() State { return c.state }

// Pause freezes the rendered curves. Sampling continues.
func (c *Controller) Pause() { c.state = Paused }

// Resume unfreezes the rendered curves from the next redraw on.
func (c *Controller) Resume() { c.state = Running }

// Toggle flips between Running and Paused.
func (c *Controller) Toggle() {
	if c.state == Running {
		c.Pause()
	} else {
		c.Resume()
	}
}

// Stats returns ingestion counters.
func (c *Controller) Stats() Stats { return c.stats }

// Poll drains due samples from every source, in order, into the store.
// It runs in both states so nothing delivered while paused is lost.
func (c *Controller) Poll() int {
	n := 0
	for _, src := range c.sources {
		for i := 0; i < c.opts.MaxPerPoll; i++ {
			smp, ok := src.Next()
			if !ok {
				break
			}
			if c.ingest(smp) {
				n++
			}
		}
	}
	return n
}

func (c *Controller) ingest(smp Sample) bool {
	var err error
	if smp.Color != nil {
		err = c.store.IngestColored(smp.Key, smp.Value, *smp.Color)
	} else {
		err = c.store.Ingest(smp.Key, smp.Value)
	}
	if err != nil {
		c.stats.Rejected++
		if errors.Is(err, series.ErrInvalidSample) {
			c.log.Debug("Sample dropped", "key", smp.Key, "error", err)
		} else {
			c.log.Warn("Sample dropped", "key", smp.Key, "error", err)
		}
		return false
	}
	c.stats.Ingested++
	return true
}

// Redraw runs one redraw tick: when running it polls and refreshes the
// view, then resolves bounds and hands a frame to the renderer.
func (c *Controller) Redraw() Frame {
	if c.state == Running {
		c.Poll()
		c.view = c.store.View(c.opts.RenderLength)
	}

	frame := Frame{
		Bounds: c.opts.Policy.Resolve(c.view, *c.bounds),
		State:  c.state,
	}
	for _, key := range c.view.Keys() {
		values := c.view.Windowed(key, c.opts.RenderLength)
		frame.Series = append(frame.Series, SeriesFrame{
			Key:    key,
			Color:  c.view.Color(key),
			Start:  c.view.Len(key) - len(values),
			Values: values,
		})
	}

	if c.renderer != nil {
		c.renderer.OnRedraw(frame)
	}
	return frame
}
