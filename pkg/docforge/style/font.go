package style

import "fmt"

// Font describes the nominal font of a run. Size is in half points, the
// unit WordprocessingML uses for w:sz.
type Font struct {
	Family    string
	Size      int
	Bold      bool
	Italic    bool
	Underline bool
	Color     Color
}

// Pt converts a point size to half points.
func Pt(points float64) int {
	return int(points*2 + 0.5)
}

// Points returns the size in points.
func (f Font) Points() float64 {
	return float64(f.Size) / 2
}

func (f Font) inherit(parent Font) Font {
	if f.Family == "" {
		f.Family = parent.Family
	}
	if f.Size == 0 {
		f.Size = parent.Size
	}
	if !f.Color.IsSet() {
		f.Color = parent.Color
	}
	f.Bold = f.Bold || parent.Bold
	f.Italic = f.Italic || parent.Italic
	f.Underline = f.Underline || parent.Underline
	return f
}

func (f Font) validate() error {
	if f.Size < 0 || f.Size > 3276 {
		return fmt.Errorf("font size %d half-points out of range", f.Size)
	}
	if f.Color.IsSet() && !f.Color.Valid() {
		return fmt.Errorf("font color %q is not 6-digit hex", f.Color)
	}
	return nil
}

// HAlign is horizontal alignment.
type HAlign int

const (
	AlignUnset HAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "both"
	default:
		return ""
	}
}

// VAlign is vertical alignment inside a cell or text frame.
type VAlign int

const (
	VAlignUnset VAlign = iota
	VAlignTop
	VAlignCenter
	VAlignBottom
)

func (a VAlign) String() string {
	switch a {
	case VAlignTop:
		return "top"
	case VAlignCenter:
		return "center"
	case VAlignBottom:
		return "bottom"
	default:
		return ""
	}
}

// Direction is the explicit text flow of a node. It is never inferred from
// text content. DirectionUnset takes the flow of the enclosing node; LTR
// and RTL are both explicit and stop inheritance.
type Direction int

const (
	DirectionUnset Direction = iota
	LTR
	RTL
)

func (d Direction) String() string {
	switch d {
	case LTR:
		return "ltr"
	case RTL:
		return "rtl"
	default:
		return "unset"
	}
}

// Spacing is paragraph spacing. Before and After are in twentieths of a
// point; Line is a percentage of single spacing (100 = single, 0 = unset).
type Spacing struct {
	Before int
	After  int
	Line   int
}

// IsZero reports whether no spacing value is set.
func (s Spacing) IsZero() bool {
	return s == Spacing{}
}

// Outline is the line drawn around a slide shape. Width is in EMU.
type Outline struct {
	Color Color
	Width int64
}

// Shadow is an outer drop shadow on a slide shape. Blur and Distance are in
// EMU, Direction in 60000ths of a degree, Alpha is the opacity of the
// shadow color in percent.
type Shadow struct {
	Color     Color
	Blur      int64
	Distance  int64
	Direction int
	Alpha     int
}

// DefaultShadow returns a soft bottom-right shadow.
func DefaultShadow() Shadow {
	return Shadow{
		Color:     Black,
		Blur:      6 * 12700,
		Distance:  3 * 12700,
		Direction: 2700000,
		Alpha:     75,
	}
}
