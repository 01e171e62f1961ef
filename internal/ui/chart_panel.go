package ui

// RenderChartPanel wraps chart content and its legend with a styled border.
// The chart itself is drawn by the chart package to keep ui free of ntcharts.
func RenderChartPanel(width, height int, chartContent, legend string, focused bool) string {
	content := chartContent + "\n" + legend
	style := StylePanelBorder
	if focused {
		style = StylePanelActive
	}
	return style.Width(width - 2).Height(height - 2).Render(content)
}
