package layout

import "fmt"

// Geometry is the explicit placement of a node. Offsets are relative to the
// enclosing canvas (slide or group); table cells only use Width and Height.
type Geometry struct {
	X       Length
	Y       Length
	Width   Length
	Height  Length
	RowSpan int
	ColSpan int
}

// Box returns a geometry with offset and size.
func Box(x, y, w, h Length) Geometry {
	return Geometry{X: x, Y: y, Width: w, Height: h}
}

// Span returns the merge span, treating zero as one.
func (g Geometry) Span() (rows, cols int) {
	rows, cols = g.RowSpan, g.ColSpan
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

// IsMerged reports whether the geometry spans more than one grid slot.
func (g Geometry) IsMerged() bool {
	rows, cols := g.Span()
	return rows > 1 || cols > 1
}

// Right returns the x coordinate of the right edge.
func (g Geometry) Right() Length {
	return g.X + g.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (g Geometry) Bottom() Length {
	return g.Y + g.Height
}

// Validate rejects negative sizes and spans.
func (g Geometry) Validate() error {
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("negative size %dx%d", g.Width, g.Height)
	}
	if g.RowSpan < 0 || g.ColSpan < 0 {
		return fmt.Errorf("negative span %dx%d", g.RowSpan, g.ColSpan)
	}
	return nil
}

// Overflow describes how far a box extends past a canvas edge.
type Overflow struct {
	Edge   string
	Amount Length
}

func (o Overflow) String() string {
	return fmt.Sprintf("extends %.1fcm beyond %s edge", o.Amount.Cm(), o.Edge)
}

// CheckBounds reports every edge of g that lies outside a canvas of the
// given size anchored at the origin.
func CheckBounds(g Geometry, canvasWidth, canvasHeight Length) []Overflow {
	var out []Overflow
	if g.X < 0 {
		out = append(out, Overflow{Edge: "left", Amount: -g.X})
	}
	if g.Y < 0 {
		out = append(out, Overflow{Edge: "top", Amount: -g.Y})
	}
	if r := g.Right(); r > canvasWidth {
		out = append(out, Overflow{Edge: "right", Amount: r - canvasWidth})
	}
	if b := g.Bottom(); b > canvasHeight {
		out = append(out, Overflow{Edge: "bottom", Amount: b - canvasHeight})
	}
	return out
}

// AspectFit scales a source of srcW x srcH pixels to the largest size that
// fits inside box without distortion and centers it there. A degenerate
// source returns the box unchanged.
func AspectFit(srcW, srcH int, box Geometry) Geometry {
	if srcW <= 0 || srcH <= 0 || box.Width <= 0 || box.Height <= 0 {
		return box
	}
	scaleW := float64(box.Width) / float64(srcW)
	scaleH := float64(box.Height) / float64(srcH)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	w := Length(float64(srcW) * scale)
	h := Length(float64(srcH) * scale)
	return Geometry{
		X:      Center(box.X, box.Width, w),
		Y:      Center(box.Y, box.Height, h),
		Width:  w,
		Height: h,
	}
}

// Center returns the offset that centers size inside an extent starting at
// start.
func Center(start, extent, size Length) Length {
	return start + (extent-size)/2
}
