// Package layout holds the length unit shared by every node and the pure
// functions that place items inside fixed regions.
package layout

import (
	"fmt"
	"math"
)

// Length is a device-independent length in English Metric Units.
type Length int64

const (
	EMU        Length = 1
	Twip       Length = 635
	Point      Length = 12700
	Millimeter Length = 36000
	Centimeter Length = 360000
	Inch       Length = 914400
)

// Cm converts centimetres to a Length, rounding to the nearest EMU.
func Cm(v float64) Length {
	return Length(math.Round(v * float64(Centimeter)))
}

// Pt converts points to a Length.
func Pt(v float64) Length {
	return Length(math.Round(v * float64(Point)))
}

// Inches converts inches to a Length.
func Inches(v float64) Length {
	return Length(math.Round(v * float64(Inch)))
}

// Twips converts twentieths of a point to a Length.
func Twips(v int) Length {
	return Length(v) * Twip
}

// EMU returns the raw value.
func (l Length) EMU() int64 {
	return int64(l)
}

// Twips returns the length in twentieths of a point, rounded.
func (l Length) Twips() int {
	return int(math.Round(float64(l) / float64(Twip)))
}

// Cm returns the length in centimetres.
func (l Length) Cm() float64 {
	return float64(l) / float64(Centimeter)
}

// Points returns the length in points.
func (l Length) Points() float64 {
	return float64(l) / float64(Point)
}

func (l Length) String() string {
	return fmt.Sprintf("%.2fcm", l.Cm())
}

func maxLength(a, b Length) Length {
	if a > b {
		return a
	}
	return b
}
