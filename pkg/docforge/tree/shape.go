package tree

import "github.com/benjaminschreck/go-docforge/pkg/docforge/layout"

// Preset is the outline geometry of a slide shape.
type Preset int

const (
	PresetTextBox Preset = iota
	PresetRect
	PresetRoundRect
	PresetEllipse
)

// Name returns the DrawingML preset geometry name.
func (p Preset) Name() string {
	switch p {
	case PresetRoundRect:
		return "roundRect"
	case PresetEllipse:
		return "ellipse"
	default:
		return "rect"
	}
}

// AutoFit controls how a text frame reacts to overflowing text.
type AutoFit int

const (
	AutoFitNone AutoFit = iota
	AutoFitShape
	AutoFitText
)

// Insets are the inner margins of a text frame.
type Insets struct {
	Left   layout.Length
	Top    layout.Length
	Right  layout.Length
	Bottom layout.Length
}

// Shape is a positioned slide element that may carry text.
type Shape struct {
	base
	Preset Preset
	// CornerRadius is the roundRect adjustment in [0,1]; negative keeps the
	// preset default.
	CornerRadius float64
	Insets       *Insets
	AutoFit      AutoFit
	NoWrap       bool
	// JumpTo makes a click on the shape navigate to another slide.
	JumpTo *Slide
}

// NewShape creates a shape with the given preset and geometry.
func NewShape(p Preset, g layout.Geometry) *Shape {
	s := &Shape{base: newBase(KindShape), Preset: p, CornerRadius: -1}
	s.SetGeometry(g)
	return s
}

// NewTextBox creates a text box holding the given paragraphs. It panics if
// a paragraph is already attached elsewhere.
func NewTextBox(g layout.Geometry, paragraphs ...*Paragraph) *Shape {
	s := NewShape(PresetTextBox, g)
	for _, p := range paragraphs {
		adopt(s, p)
	}
	return s
}

// Paragraphs returns the text of the shape.
func (s *Shape) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, c := range s.children {
		if p, ok := c.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Group collects shapes that move together. Child geometry is relative to
// the slide, as in the group's own geometry.
type Group struct {
	base
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{base: newBase(KindGroup)}
}

// Bounds returns the union of the children's geometry.
func (g *Group) Bounds() layout.Geometry {
	var out layout.Geometry
	first := true
	for _, c := range g.children {
		cg, ok := c.Geometry()
		if sub, isGroup := c.(*Group); isGroup {
			cg, ok = sub.Bounds(), len(sub.children) > 0
		}
		if !ok {
			continue
		}
		if first {
			out = layout.Box(cg.X, cg.Y, cg.Width, cg.Height)
			first = false
			continue
		}
		right, bottom := out.Right(), out.Bottom()
		if cg.X < out.X {
			out.X = cg.X
		}
		if cg.Y < out.Y {
			out.Y = cg.Y
		}
		if r := cg.Right(); r > right {
			right = r
		}
		if b := cg.Bottom(); b > bottom {
			bottom = b
		}
		out.Width = right - out.X
		out.Height = bottom - out.Y
	}
	return out
}

// Picture references an image file. In a paragraph it is placed inline; on
// a slide it is positioned by its geometry.
type Picture struct {
	base
	Path        string
	Description string
	// Fit scales the image into its geometry keeping the aspect ratio and
	// centers it. Without Fit the image is stretched to the geometry.
	Fit bool
}

// NewPicture creates a picture node. Geometry is optional for inline
// pictures; without it the natural size of the image is used.
func NewPicture(path string) *Picture {
	return &Picture{base: newBase(KindPicture), Path: path}
}
