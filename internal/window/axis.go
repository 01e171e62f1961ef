package window

import (
	"errors"
	"fmt"
	"math"
)

// Axis names one of the four independent plot bounds.
type Axis int

const (
	XMin Axis = iota
	XMax
	YMin
	YMax
	axisCount
)

// Axes lists every axis in display order.
var Axes = []Axis{XMin, XMax, YMin, YMax}

func (a Axis) String() string {
	switch a {
	case XMin:
		return "X min"
	case XMax:
		return "X max"
	case YMin:
		return "Y min"
	case YMax:
		return "Y max"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

func (a Axis) valid() bool {
	return a >= 0 && a < axisCount
}

// Mode says whether a bound follows the data or a user value.
type Mode int

const (
	Auto Mode = iota
	Manual
)

func (m Mode) String() string {
	if m == Manual {
		return "Manual"
	}
	return "Auto"
}

// UnknownAxisError is returned for an axis outside XMin..YMax.
type UnknownAxisError struct {
	Axis Axis
}

func (e *UnknownAxisError) Error() string {
	return fmt.Sprintf("unknown axis %d", int(e.Axis))
}

// ErrInvalidBound is returned for a non-finite manual value.
var ErrInvalidBound = errors.New("manual bound must be finite")

// AxisBound is the mode and manual value of one axis.
type AxisBound struct {
	Mode  Mode
	Value float64
}

// Bounds holds the four axis bounds. The zero value is all-Auto at 0.
type Bounds struct {
	axes [axisCount]AxisBound
}

// DefaultBounds returns all-Auto bounds with manual values 0, 50, 0, 100.
func DefaultBounds() Bounds {
	var b Bounds
	b.axes[XMax].Value = 50
	b.axes[YMax].Value = 100
	return b
}

// Get returns the bound of axis a. Unknown axes return Auto at 0.
func (b Bounds) Get(a Axis) AxisBound {
	if !a.valid() {
		return AxisBound{}
	}
	return b.axes[a]
}

// SetMode switches axis a between Auto and Manual.
func (b *Bounds) SetMode(a Axis, m Mode) error {
	if !a.valid() {
		return &UnknownAxisError{Axis: a}
	}
	b.axes[a].Mode = m
	return nil
}

// SetManualValue stores the value used while axis a is Manual.
func (b *Bounds) SetManualValue(a Axis, v float64) error {
	if !a.valid() {
		return &UnknownAxisError{Axis: a}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", a, ErrInvalidBound)
	}
	b.axes[a].Value = v
	return nil
}

// Toggle flips the mode of axis a.
func (b *Bounds) Toggle(a Axis) error {
	if !a.valid() {
		return &UnknownAxisError{Axis: a}
	}
	if b.axes[a].Mode == Auto {
		b.axes[a].Mode = Manual
	} else {
		b.axes[a].Mode = Auto
	}
	return nil
}
