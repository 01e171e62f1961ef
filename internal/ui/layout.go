package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ComposeLayout joins the chart panel and axis panel horizontally,
// with menu bar on top and status bar plus help line on the bottom.
func ComposeLayout(menuBar, chartPanel, axisPanel, statusBar, help string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, chartPanel, axisPanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar, help)
}

// padBetween places left and right at the edges of width.
func padBetween(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}
