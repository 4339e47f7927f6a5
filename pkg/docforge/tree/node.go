package tree

import (
	"github.com/benjaminschreck/go-docforge/pkg/docforge/layout"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/style"
)

// Kind identifies the concrete type of a node.
type Kind int

const (
	KindDocument Kind = iota
	KindSection
	KindBand
	KindSlide
	KindTable
	KindRow
	KindCell
	KindParagraph
	KindRun
	KindShape
	KindGroup
	KindPicture
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindSection:
		return "section"
	case KindBand:
		return "band"
	case KindSlide:
		return "slide"
	case KindTable:
		return "table"
	case KindRow:
		return "row"
	case KindCell:
		return "cell"
	case KindParagraph:
		return "paragraph"
	case KindRun:
		return "run"
	case KindShape:
		return "shape"
	case KindGroup:
		return "group"
	case KindPicture:
		return "picture"
	default:
		return "unknown"
	}
}

// allowedChildren is the closed containment matrix of the tree.
var allowedChildren = map[Kind][]Kind{
	KindDocument:  {KindSection, KindSlide},
	KindSection:   {KindParagraph, KindTable},
	KindBand:      {KindParagraph, KindTable},
	KindSlide:     {KindShape, KindGroup, KindPicture, KindTable},
	KindTable:     {KindRow},
	KindRow:       {KindCell},
	KindCell:      {KindParagraph, KindTable},
	KindParagraph: {KindRun, KindPicture},
	KindShape:     {KindParagraph},
	KindGroup:     {KindShape, KindGroup, KindPicture},
}

func canContain(parent, child Kind) bool {
	for _, k := range allowedChildren[parent] {
		if k == child {
			return true
		}
	}
	return false
}

// Node is implemented by every element of the tree.
type Node interface {
	Kind() Kind
	Parent() Node
	Children() []Node
	Style() style.Spec
	Geometry() (layout.Geometry, bool)
	SetGeometry(g layout.Geometry)
	Name() string
	SetName(name string)
	Overrides() []Override

	node() *base
}

// Override is an explicit per-node attribute request that is applied after
// the node's declared style. Exactly one of Border or Fill is set.
type Override struct {
	Edge   style.Edge
	Border *style.Border
	Fill   style.Color
}

// IsBorder reports whether the override targets a border edge.
func (o Override) IsBorder() bool {
	return o.Border != nil
}

type base struct {
	kind      Kind
	parent    Node
	children  []Node
	spec      style.Spec
	geom      *layout.Geometry
	name      string
	overrides []Override
}

func newBase(k Kind) base {
	return base{kind: k}
}

func (b *base) node() *base { return b }

func (b *base) Kind() Kind { return b.kind }

func (b *base) Parent() Node { return b.parent }

// Children returns a copy of the child list.
func (b *base) Children() []Node {
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

// Len returns the number of children.
func (b *base) Len() int { return len(b.children) }

func (b *base) Style() style.Spec { return b.spec }

// Geometry returns the explicit geometry and whether one was set.
func (b *base) Geometry() (layout.Geometry, bool) {
	if b.geom == nil {
		return layout.Geometry{}, false
	}
	return *b.geom, true
}

func (b *base) SetGeometry(g layout.Geometry) {
	b.geom = &g
}

func (b *base) Name() string { return b.name }

func (b *base) SetName(name string) { b.name = name }

// Overrides returns the explicit overrides in the order they were added.
func (b *base) Overrides() []Override {
	out := make([]Override, len(b.overrides))
	copy(out, b.overrides)
	return out
}

// OverrideBorder requests an explicit border on one edge of this node. It
// wins over the node's style and every container level. Repeated calls for
// the same edge are kept; the last one wins when the node is resolved.
func (b *base) OverrideBorder(e style.Edge, border style.Border) {
	nb := border
	b.overrides = append(b.overrides, Override{Edge: e, Border: &nb})
}

// OverrideFill requests an explicit shading fill on this node.
func (b *base) OverrideFill(c style.Color) {
	b.overrides = append(b.overrides, Override{Fill: c})
}

func (b *base) indexOf(n Node) int {
	for i, c := range b.children {
		if c == n {
			return i
		}
	}
	return -1
}
