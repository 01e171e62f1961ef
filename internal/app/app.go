package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"streamplot.klederson.com/internal/chart"
	"streamplot.klederson.com/internal/config"
	"streamplot.klederson.com/internal/export"
	"streamplot.klederson.com/internal/series"
	"streamplot.klederson.com/internal/stream"
	"streamplot.klederson.com/internal/ui"
	"streamplot.klederson.com/internal/window"
)

const (
	axisPanelW  = 40
	minChartW   = 30
	savedWidth  = 120 // plot size used when saving before the first resize
	savedHeight = 30
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	store      *series.Store
	bounds     *window.Bounds
	controller *stream.Controller
	renderer   *chart.Renderer
	sources    []stream.SampleSource
}

// Options wires an AppModel to its configuration and sample sources.
type Options struct {
	Config  config.Config
	Source  string // shown in the menu bar
	Sources []stream.SampleSource
	Colors  series.ColorPicker
	Logger  *slog.Logger
}

// AppModel is the root Bubble Tea model for the plotter.
type AppModel struct {
	width  int
	height int

	cfg    config.Config
	source string
	log    *slog.Logger
	keys   ui.KeyMap
	help   help.Model

	selected window.Axis
	editing  bool
	input    textinput.Model

	flash    string
	flashErr bool
	flashSeq int

	shared *shared
}

// New creates an AppModel and the store, bounds and controller behind it.
func New(opts Options) (AppModel, error) {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	disc, ok := series.ParseDiscipline(cfg.Storage)
	if !ok {
		return AppModel{}, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
	store := series.NewStore(series.Options{
		Discipline:  disc,
		HistorySize: cfg.HistorySize,
		Colors:      opts.Colors,
	})

	bounds, err := BoundsFromConfig(cfg.Axes)
	if err != nil {
		return AppModel{}, err
	}

	renderer := chart.NewRenderer()
	controller := stream.New(store, &bounds, renderer, stream.Options{
		Policy:       PolicyFromConfig(cfg.Window),
		RenderLength: cfg.Window.RenderLength,
		MaxPerPoll:   config.MaxSamplesPerTick,
		Logger:       log,
	}, opts.Sources...)

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 24
	input.Width = axisPanelW - 10

	return AppModel{
		cfg:    cfg,
		source: opts.Source,
		log:    log,
		keys:   ui.DefaultKeyMap,
		help:   help.New(),
		input:  input,
		shared: &shared{
			store:      store,
			bounds:     &bounds,
			controller: controller,
			renderer:   renderer,
			sources:    opts.Sources,
		},
	}, nil
}

// BoundsFromConfig builds the startup axis bounds.
func BoundsFromConfig(c config.AxesConfig) (window.Bounds, error) {
	b := window.DefaultBounds()
	for _, a := range window.Axes {
		var ac config.AxisConfig
		switch a {
		case window.XMin:
			ac = c.XMin
		case window.XMax:
			ac = c.XMax
		case window.YMin:
			ac = c.YMin
		case window.YMax:
			ac = c.YMax
		}
		if err := b.SetManualValue(a, ac.Value); err != nil {
			return b, err
		}
		if ac.Manual {
			if err := b.SetMode(a, window.Manual); err != nil {
				return b, err
			}
		}
	}
	return b, nil
}

// PolicyFromConfig maps window settings onto a window policy.
func PolicyFromConfig(c config.WindowConfig) window.Policy {
	p := window.DefaultPolicy()
	p.XSpan = c.Span
	p.XFloor = c.Floor
	p.YLookback = c.YLookback
	p.YMargin = c.YMargin
	return p
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		pollCmd(m.cfg.Poll),
		redrawCmd(m.cfg.Redraw),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)

	case PollMsg:
		m.shared.controller.Poll()
		return m, pollCmd(m.cfg.Poll)

	case RedrawMsg:
		m.shared.controller.Redraw()
		return m, redrawCmd(m.cfg.Redraw)

	case PlotSavedMsg:
		if msg.Err != nil {
			m.log.Error("save plot failed", "path", msg.Path, "error", msg.Err)
			return m.setFlash(fmt.Sprintf("Save failed: %v", msg.Err), true)
		}
		m.log.Info("plot saved", "path", msg.Path)
		return m.setFlash("Saved "+msg.Path, false)

	case FlashOffMsg:
		if msg.Seq == m.flashSeq {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.shared.controller
	r := m.shared.renderer

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		ctrl.Toggle()
		m.log.Debug("state changed", "state", ctrl.State())

	case key.Matches(msg, m.keys.Grid):
		r.ShowGrid = !r.ShowGrid

	case key.Matches(msg, m.keys.XLabels):
		r.ShowXLabels = !r.ShowXLabels

	case key.Matches(msg, m.keys.Save):
		w, h := m.chartSize()
		if m.width == 0 {
			w, h = savedWidth, savedHeight
		}
		return m, savePlotCmd(m.cfg.PlotFile, r.Plain(w, h))

	case key.Matches(msg, m.keys.NextAxis):
		m.selected = (m.selected + 1) % window.Axis(len(window.Axes))

	case key.Matches(msg, m.keys.PrevAxis):
		m.selected = (m.selected + window.Axis(len(window.Axes)) - 1) % window.Axis(len(window.Axes))

	case key.Matches(msg, m.keys.SelectAxis):
		n, _ := strconv.Atoi(msg.String())
		m.selected = window.Axes[n-1]

	case key.Matches(msg, m.keys.ToggleMode):
		if err := m.shared.bounds.Toggle(m.selected); err != nil {
			return m.setFlash(err.Error(), true)
		}
		m.log.Debug("axis mode", "axis", m.selected, "mode", m.shared.bounds.Get(m.selected).Mode)

	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.input.SetValue("")
		m.input.Placeholder = strconv.FormatFloat(m.shared.bounds.Get(m.selected).Value, 'g', -1, 64)
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleEditKey feeds the manual value input. A confirmed value also
// switches the axis to Manual.
func (m AppModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.editing = false
		m.input.Blur()

		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		v, err := strconv.ParseFloat(text, 64)
		if err == nil {
			err = m.shared.bounds.SetManualValue(m.selected, v)
		}
		if err != nil {
			return m.setFlash(fmt.Sprintf("Invalid %s value %q", m.selected, text), true)
		}
		_ = m.shared.bounds.SetMode(m.selected, window.Manual)
		m.log.Debug("manual bound", "axis", m.selected, "value", v)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AppModel) setFlash(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.flashSeq++
	m.flash = text
	m.flashErr = isErr
	return m, flashOffCmd(m.flashSeq)
}

// chartSize is the area handed to the chart renderer inside its panel.
func (m AppModel) chartSize() (int, int) {
	chartW, bodyH := m.panelSizes()
	w := chartW - 4
	h := bodyH - 3 // border and legend
	if w < 10 {
		w = 10
	}
	if h < 5 {
		h = 5
	}
	return w, h
}

func (m AppModel) panelSizes() (chartW, bodyH int) {
	bodyH = m.height - 3 // menu, status, help
	if bodyH < 8 {
		bodyH = 8
	}
	chartW = m.width - axisPanelW
	if chartW < minChartW {
		chartW = minChartW
	}
	return chartW, bodyH
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing " + config.AppName + "..."
	}

	ctrl := m.shared.controller
	r := m.shared.renderer
	frame := r.Frame()

	chartW, bodyH := m.panelSizes()
	axisW := m.width - chartW
	if axisW < 20 {
		axisW = 20
	}

	menuBar := ui.RenderMenuBar(m.width, m.source, ctrl.State(), r.ShowGrid, r.ShowXLabels)

	w, h := m.chartSize()
	legend := chart.RenderLegend(frame.Series, w)
	chartPanel := ui.RenderChartPanel(chartW, bodyH, r.Render(w, h), legend, !m.editing)

	lengths := make(map[string]int, len(frame.Series))
	for _, s := range frame.Series {
		lengths[s.Key] = s.Start + len(s.Values)
	}
	axisPanel := ui.RenderAxisPanel(ui.AxisPanel{
		Bounds:   *m.shared.bounds,
		Resolved: frame.Bounds,
		Selected: m.selected,
		Editing:  m.editing,
		Input:    m.input.View(),
		Series:   frame.Series,
		Lengths:  lengths,
	}, axisW, bodyH)

	stats := ctrl.Stats()
	statusBar := ui.RenderStatusBar(m.width, ui.StatusInfo{
		State:    ctrl.State(),
		Series:   m.shared.store.Count(),
		Ingested: stats.Ingested,
		Rejected: stats.Rejected,
		Dropped:  m.droppedLines(),
		Bounds:   frame.Bounds,
		Storage:  m.shared.store.Discipline().String(),
		Flash:    m.flash,
		Error:    m.flashErr,
	})

	helpLine := m.help.View(m.keys)
	if m.editing {
		helpLine = m.help.ShortHelpView(m.keys.EditingHelp())
	}

	return ui.ComposeLayout(menuBar, chartPanel, axisPanel, statusBar, helpLine)
}

// Controller exposes the stream controller, mainly for tests and main.go.
func (m AppModel) Controller() *stream.Controller {
	return m.shared.controller
}

// Bounds exposes the live axis bounds.
func (m AppModel) Bounds() *window.Bounds {
	return m.shared.bounds
}

// Store exposes the series store.
func (m AppModel) Store() *series.Store {
	return m.shared.store
}

// Export drains pending samples and writes every series under root.
func (m AppModel) Export(root string, at time.Time) (export.Result, error) {
	m.shared.controller.Poll()
	res, err := export.Write(root, at, m.shared.store.Snapshot())
	if err != nil {
		return res, err
	}
	m.log.Info("series exported", "dir", res.Dir, "files", len(res.Files))
	return res, nil
}

// Stop stops every source that holds a device or goroutine.
func (m AppModel) Stop() {
	for _, src := range m.shared.sources {
		if s, ok := src.(interface{ Stop() }); ok {
			s.Stop()
		}
	}
}

// droppedLines sums the undecodable lines of every line-based source.
func (m AppModel) droppedLines() int64 {
	var n int64
	for _, src := range m.shared.sources {
		if lr, ok := src.(interface{ Malformed() int64 }); ok {
			n += lr.Malformed()
		}
	}
	return n
}

func pollCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return PollMsg(t)
	})
}

func redrawCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return RedrawMsg(t)
	})
}

func flashOffCmd(seq int) tea.Cmd {
	return tea.Tick(config.FlashDuration, func(time.Time) tea.Msg {
		return FlashOffMsg{Seq: seq}
	})
}

func savePlotCmd(path, plot string) tea.Cmd {
	return func() tea.Msg {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return PlotSavedMsg{Path: path, Err: err}
			}
		}
		err := os.WriteFile(path, []byte(plot+"\n"), 0o644)
		return PlotSavedMsg{Path: path, Err: err}
	}
}
