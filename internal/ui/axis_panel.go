package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"streamplot.klederson.com/internal/stream"
	"streamplot.klederson.com/internal/window"
)

// AxisPanel carries the state shown in the side panel.
type AxisPanel struct {
	Bounds   window.Bounds
	Resolved window.Snapshot
	Selected window.Axis
	Editing  bool
	Input    string // rendered text input, shown while Editing
	Series   []stream.SeriesFrame
	Lengths  map[string]int
}

// RenderAxisPanel renders the axis override controls and the series list.
func RenderAxisPanel(p AxisPanel, width, height int) string {
	innerW := width - 4
	if innerW < 16 {
		innerW = 16
	}
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}

	rule := StyleRule.Render(strings.Repeat("-", innerW))
	lines := []string{StylePanelTitle.Render("AXES"), rule}

	for _, a := range window.Axes {
		lines = append(lines, axisLine(p, a, innerW))
		if p.Editing && a == p.Selected {
			lines = append(lines, "  "+p.Input)
		}
	}

	lines = append(lines, "", StylePanelTitle.Render(fmt.Sprintf("SERIES [%d]", len(p.Series))), rule)
	if len(p.Series) == 0 {
		lines = append(lines, StyleHelp.Render(" Waiting for samples"))
	}
	for _, s := range p.Series {
		if len(lines) >= innerH {
			break
		}
		lines = append(lines, seriesLine(s, p.Lengths[s.Key], innerW))
	}

	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	style := StylePanelBorder
	if p.Editing {
		style = StylePanelActive
	}
	return style.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func axisLine(p AxisPanel, a window.Axis, width int) string {
	ab := p.Bounds.Get(a)
	mode := StyleModeAuto.Render("AUTO  ")
	if ab.Mode == window.Manual {
		mode = StyleModeManual.Render("MANUAL")
	}
	text := fmt.Sprintf(" %-5s ", a) + mode + " " +
		StyleAxisValue.Render(fmt.Sprintf("%-8s", formatBound(ab.Value))) +
		StyleHelp.Render("= "+formatBound(resolvedValue(p.Resolved, a)))

	if a == p.Selected {
		plain := fmt.Sprintf(">%-5s %-6s %-8s= %s", a, strings.ToUpper(ab.Mode.String()),
			formatBound(ab.Value), formatBound(resolvedValue(p.Resolved, a)))
		return StyleCursorLine.Width(width).Render(plain)
	}
	return text
}

func seriesLine(s stream.SeriesFrame, length, width int) string {
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color.Hex())).Render("■")
	last := "-"
	if n := len(s.Values); n > 0 {
		last = formatBound(s.Values[n-1])
	}
	key := s.Key
	if limit := width - 22; limit > 3 && len(key) > limit {
		key = key[:limit-1] + "~"
	}
	return " " + swatch + " " + StyleAxisValue.Render(key) +
		StyleAxisName.Render(fmt.Sprintf("  n=%d  last=%s", length, last))
}

func resolvedValue(s window.Snapshot, a window.Axis) float64 {
	switch a {
	case window.XMin:
		return s.XMin
	case window.XMax:
		return s.XMax
	case window.YMin:
		return s.YMin
	default:
		return s.YMax
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
