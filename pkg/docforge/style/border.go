package style

import "fmt"

// BorderStyle is the line style of a border edge. Values match the
// WordprocessingML ST_Border names.
type BorderStyle string

const (
	BorderNone   BorderStyle = "nil"
	BorderSingle BorderStyle = "single"
	BorderDouble BorderStyle = "double"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
	BorderThick  BorderStyle = "thick"
)

// Border describes one edge. Size is in eighths of a point.
type Border struct {
	Style BorderStyle
	Size  int
	Color Color
	Space int
}

// NewBorder returns a single-line border of the given size and color.
func NewBorder(size int, color Color) Border {
	return Border{Style: BorderSingle, Size: size, Color: color}
}

// NoBorder returns an explicit "no line" border. It differs from an unset
// edge: it suppresses any border inherited from a container.
func NoBorder() Border {
	return Border{Style: BorderNone}
}

// Validate checks size bounds and color format.
func (b Border) Validate() error {
	if b.Style == "" {
		return fmt.Errorf("border style is empty")
	}
	if b.Size < 0 || b.Size > 96 {
		return fmt.Errorf("border size %d out of range [0,96]", b.Size)
	}
	if b.Color.IsSet() && !b.Color.Valid() {
		return fmt.Errorf("border color %q is not 6-digit hex", b.Color)
	}
	return nil
}

func (b Border) String() string {
	if b.Style == BorderNone {
		return "none"
	}
	return fmt.Sprintf("%s/%d/%s", b.Style, b.Size, b.Color)
}

// Edge identifies a border edge.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeLeft
	EdgeBottom
	EdgeRight
	EdgeInsideH
	EdgeInsideV
)

// Edges lists the edges in schema order.
var Edges = []Edge{EdgeTop, EdgeLeft, EdgeBottom, EdgeRight, EdgeInsideH, EdgeInsideV}

// OuterEdges lists the four edges a single cell or paragraph can carry.
var OuterEdges = []Edge{EdgeTop, EdgeLeft, EdgeBottom, EdgeRight}

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeLeft:
		return "left"
	case EdgeBottom:
		return "bottom"
	case EdgeRight:
		return "right"
	case EdgeInsideH:
		return "insideH"
	case EdgeInsideV:
		return "insideV"
	default:
		return "unknown"
	}
}

// BorderSet holds optional borders per edge. A nil edge is unset and falls
// through to the next level of precedence.
type BorderSet struct {
	edges [6]*Border
}

// AllBorders returns a set with the same border on all four outer edges
// and both inside edges.
func AllBorders(b Border) BorderSet {
	var s BorderSet
	for _, e := range Edges {
		s = s.With(e, b)
	}
	return s
}

// Get returns the border for an edge, or nil when unset.
func (s BorderSet) Get(e Edge) *Border {
	if e < 0 || int(e) >= len(s.edges) {
		return nil
	}
	return s.edges[e]
}

// With returns a copy of the set with the edge replaced.
func (s BorderSet) With(e Edge, b Border) BorderSet {
	nb := b
	s.edges[e] = &nb
	return s
}

// Without returns a copy of the set with the edge cleared.
func (s BorderSet) Without(e Edge) BorderSet {
	s.edges[e] = nil
	return s
}

// IsEmpty reports whether no edge is set.
func (s BorderSet) IsEmpty() bool {
	for _, b := range s.edges {
		if b != nil {
			return false
		}
	}
	return true
}

// Merge returns s with unset edges filled from fallback.
func (s BorderSet) Merge(fallback BorderSet) BorderSet {
	for i, b := range s.edges {
		if b == nil {
			s.edges[i] = fallback.edges[i]
		}
	}
	return s
}

// Validate checks every set edge.
func (s BorderSet) Validate() error {
	for _, e := range Edges {
		if b := s.Get(e); b != nil {
			if err := b.Validate(); err != nil {
				return fmt.Errorf("%s edge: %w", e, err)
			}
		}
	}
	return nil
}
