package ui

import (
	"fmt"

	"streamplot.klederson.com/internal/config"
	"streamplot.klederson.com/internal/stream"
)

// PauseLabel is the menu text for the pause button in the given state.
func PauseLabel(state stream.State) (key, label string) {
	if state == stream.Paused {
		return "P", "lay"
	}
	return "P", "ause"
}

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, source string, state stream.State, showGrid, showXLabels bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	pk, pl := PauseLabel(state)
	keys := []struct {
		key, label string
		on         *bool
	}{
		{pk, pl, nil},
		{"G", "rid", &showGrid},
		{"X", "-labels", &showXLabels},
		{"S", "ave", nil},
		{"Q", "uit", nil},
	}

	menu := ""
	for _, k := range keys {
		label := StyleMenuLabel.Render(k.label)
		if k.on != nil && !*k.on {
			label = StyleCheckOff.Render(k.label)
		}
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + label
	}

	status := StyleStatusRunning.Render("RUNNING")
	if state == stream.Paused {
		status = StyleStatusPaused.Render("PAUSED")
	}
	sourceInfo := StyleMenuLabel.Render("Source: " + source)

	left := StyleMenuKey.Render(title) + menu
	right := status + "  " + sourceInfo + " "

	return StyleMenuBar.Width(width).Render(padBetween(left, right, width-2))
}
