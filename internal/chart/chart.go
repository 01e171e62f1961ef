package chart

import (
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"streamplot.klederson.com/internal/stream"
	"streamplot.klederson.com/internal/ui"
	"streamplot.klederson.com/internal/window"
)

var (
	styleAxis  = lipgloss.NewStyle().Foreground(ui.ColorMidGreen)
	styleLabel = lipgloss.NewStyle().Foreground(ui.ColorGreen)
	styleGrid  = lipgloss.NewStyle().Foreground(ui.ColorDimGreen)
	styleEmpty = lipgloss.NewStyle().Foreground(ui.ColorWarning).Bold(true)
)

const (
	gridRune    = '·'
	gridCols    = 8 // cells between vertical grid lines
	gridRows    = 4
	legendGlyph = "■"
)

// Renderer draws the latest Frame as a braille line chart.
// It is driven from the UI loop and is not safe for concurrent use.
type Renderer struct {
	ShowGrid    bool
	ShowXLabels bool

	frame  stream.Frame
	frames int
}

// NewRenderer returns a renderer with grid and X labels on.
func NewRenderer() *Renderer {
	return &Renderer{ShowGrid: true, ShowXLabels: true}
}

// OnRedraw stores the frame for the next Render.
func (r *Renderer) OnRedraw(f stream.Frame) {
	r.frame = f
	r.frames++
}

// Frame returns the last frame received.
func (r *Renderer) Frame() stream.Frame {
	return r.frame
}

// Frames counts redraws received so far.
func (r *Renderer) Frames() int {
	return r.frames
}

// Render produces the chart as a styled string of exactly height lines.
func (r *Renderer) Render(width, height int) string {
	if width < 10 || height < 5 {
		return ""
	}

	b := drawable(r.frame.Bounds)
	lc := linechart.New(width, height, b.XMin, b.XMax, b.YMin, b.YMax)
	lc.AxisStyle = styleAxis
	lc.LabelStyle = styleLabel
	lc.YLabelFormatter = formatY
	if r.ShowXLabels {
		lc.XLabelFormatter = formatX
	} else {
		lc.XLabelFormatter = func(int, float64) string { return "" }
	}
	lc.SetXStep(gridCols)
	lc.SetYStep(gridRows / 2)
	lc.DrawXYAxisAndLabel()

	if lc.GraphWidth() < 1 || lc.GraphHeight() < 1 {
		return lc.View()
	}

	startX := 0
	if lc.YStep() > 0 {
		startX = lc.Origin().X + 1
	}

	if r.ShowGrid {
		drawGrid(&lc, startX)
	}
	for _, s := range r.frame.Series {
		drawSeries(&lc, s, b, startX)
	}

	if len(r.frame.Series) == 0 {
		msg := "waiting for samples"
		x := startX + (lc.GraphWidth()-len(msg))/2
		lc.Canvas.SetStringWithStyle(canvas.Point{X: max(x, startX), Y: lc.GraphHeight() / 2}, msg, styleEmpty)
	}
	return lc.View()
}

// Plain renders the chart with all terminal styling removed.
func (r *Renderer) Plain(width, height int) string {
	return ansi.Strip(r.Render(width, height))
}

// drawable widens empty or inverted ranges so the chart always has area.
func drawable(b window.Snapshot) window.Snapshot {
	if b.XMax <= b.XMin {
		b.XMax = b.XMin + 1
	}
	if b.YMax <= b.YMin {
		b.YMax = b.YMin + 1
	}
	return b
}

func drawGrid(lc *linechart.Model, startX int) {
	origin := lc.Origin()
	top := origin.Y - lc.GraphHeight()
	for row := origin.Y - gridRows; row >= top; row -= gridRows {
		for col := 0; col < lc.GraphWidth(); col += 2 {
			lc.Canvas.SetCell(canvas.Point{X: startX + col, Y: row}, canvas.NewCellWithStyle(gridRune, styleGrid))
		}
	}
	for col := gridCols; col < lc.GraphWidth(); col += gridCols {
		for row := top; row < origin.Y; row++ {
			lc.Canvas.SetCell(canvas.Point{X: startX + col, Y: row}, canvas.NewCellWithStyle(gridRune, styleGrid))
		}
	}
}

// drawSeries plots one series on its own braille grid. Points outside the
// window break the line rather than being clamped to the edge.
func drawSeries(lc *linechart.Model, s stream.SeriesFrame, b window.Snapshot, startX int) {
	if len(s.Values) == 0 {
		return
	}
	grid := graph.NewBrailleGrid(lc.GraphWidth(), lc.GraphHeight(), b.XMin, b.XMax, b.YMin, b.YMax)

	var prev canvas.Float64Point
	linked := false
	for i, v := range s.Values {
		p := canvas.Float64Point{X: float64(s.Start + i), Y: v}
		if p.X < b.XMin || p.X > b.XMax || p.Y < b.YMin || p.Y > b.YMax {
			linked = false
			continue
		}
		if linked {
			for _, gp := range graph.GetLinePoints(grid.GridPoint(prev), grid.GridPoint(p)) {
				grid.Set(gp)
			}
		} else {
			grid.Set(grid.GridPoint(p))
		}
		prev, linked = p, true
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color.Hex()))
	graph.DrawBraillePatterns(&lc.Canvas, canvas.Point{X: startX, Y: 0}, grid.BraillePatterns(), style)
}

func formatX(_ int, v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func formatY(_ int, v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// RenderLegend renders one colored entry per series, cut to width.
func RenderLegend(series []stream.SeriesFrame, width int) string {
	if len(series) == 0 || width <= 0 {
		return ""
	}
	parts := make([]string, 0, len(series))
	for _, s := range series {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color.Hex()))
		last := ""
		if n := len(s.Values); n > 0 {
			last = " " + formatY(0, s.Values[n-1])
		}
		parts = append(parts, style.Render(legendGlyph)+" "+styleLabel.Render(s.Key+last))
	}
	return ansi.Truncate(strings.Join(parts, "  "), width, "…")
}
