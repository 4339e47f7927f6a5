package style

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 6-hex-digit RGB value without a leading marker, e.g. "31849B".
// The zero value means "not set".
type Color string

const (
	Black Color = "000000"
	White Color = "FFFFFF"
)

// ParseColor validates and normalizes a color string. A leading '#' is
// accepted and stripped; the result is always upper case.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return "", fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	if _, err := colorful.Hex("#" + s); err != nil {
		return "", fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(strings.ToUpper(s)), nil
}

// MustColor is like ParseColor but panics on invalid input. It is meant for
// package-level constants.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsSet reports whether the color carries a value.
func (c Color) IsSet() bool {
	return c != ""
}

// Valid reports whether the color is a well-formed 6-digit hex value.
func (c Color) Valid() bool {
	if !c.IsSet() {
		return false
	}
	_, err := ParseColor(string(c))
	return err == nil && string(c) == strings.ToUpper(string(c))
}

func (c Color) String() string {
	return string(c)
}

func (c Color) rgb() colorful.Color {
	v, err := colorful.Hex("#" + string(c))
	if err != nil {
		return colorful.Color{}
	}
	return v
}

// Tint blends the color toward white. f=0 returns the color unchanged, f=1
// returns white.
func (c Color) Tint(f float64) Color {
	return c.blend(White, f)
}

// Shade blends the color toward black.
func (c Color) Shade(f float64) Color {
	return c.blend(Black, f)
}

func (c Color) blend(target Color, f float64) Color {
	if !c.IsSet() {
		return c
	}
	if f <= 0 {
		return c
	}
	if f > 1 {
		f = 1
	}
	mixed := c.rgb().BlendRgb(target.rgb(), f).Clamped()
	return Color(strings.ToUpper(strings.TrimPrefix(mixed.Hex(), "#")))
}

// Luminance returns the relative lightness of the color in [0,1].
func (c Color) Luminance() float64 {
	l, _, _ := c.rgb().Lab()
	return l
}

// Contrast picks black or white text for the given background.
func Contrast(background Color) Color {
	if background.Luminance() > 0.6 {
		return Black
	}
	return White
}
