package tree

import (
	"fmt"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/style"
)

// AppendChild attaches child as the last child of parent.
func AppendChild(parent, child Node) error {
	return InsertChild(parent, child, -1)
}

// InsertChild attaches child at index i of parent. A negative index appends.
func InsertChild(parent, child Node, i int) error {
	if err := checkAttach(parent, child); err != nil {
		return structural("append_child", parent, err)
	}
	pb := parent.node()
	if i < 0 || i >= len(pb.children) {
		if i > len(pb.children) {
			return structural("append_child", parent, ErrOutOfRange)
		}
		pb.children = append(pb.children, child)
	} else {
		pb.children = append(pb.children, nil)
		copy(pb.children[i+1:], pb.children[i:])
		pb.children[i] = child
	}
	child.node().parent = parent
	return nil
}

func checkAttach(parent, child Node) error {
	if parent == nil || child == nil {
		return ErrInvalidChild
	}
	if child.Parent() != nil {
		return ErrAlreadyAttached
	}
	for p := parent; p != nil; p = p.Parent() {
		if p == child {
			return ErrCycle
		}
	}
	if !canContain(parent.Kind(), child.Kind()) {
		return fmt.Errorf("%w: %s in %s", ErrInvalidChild, child.Kind(), parent.Kind())
	}
	if doc, ok := parent.(*Document); ok {
		want := KindSection
		if doc.Format == Presentation {
			want = KindSlide
		}
		if child.Kind() != want {
			return fmt.Errorf("%w: %s in %s document", ErrInvalidChild, child.Kind(), doc.Format)
		}
	}
	return nil
}

// adopt is used by constructors that take children. Misuse there is a
// programming error, so it panics.
func adopt(parent, child Node) {
	if err := AppendChild(parent, child); err != nil {
		panic(err)
	}
}

// RemoveChild detaches child from parent. The child keeps its own subtree
// and may be attached elsewhere afterwards.
func RemoveChild(parent, child Node) error {
	if parent == nil || child == nil {
		return structural("remove_child", parent, ErrInvalidChild)
	}
	pb := parent.node()
	i := pb.indexOf(child)
	if i < 0 {
		return structural("remove_child", parent, ErrNotAttached)
	}
	pb.children = append(pb.children[:i], pb.children[i+1:]...)
	child.node().parent = nil
	return nil
}

// Detach removes n from its parent, if any.
func Detach(n Node) error {
	if n.Parent() == nil {
		return nil
	}
	if band, ok := n.(*Band); ok {
		return structural("detach", band, ErrInvalidChild)
	}
	return RemoveChild(n.Parent(), n)
}

// ChildAt returns the i-th child of parent.
func ChildAt(parent Node, i int) (Node, error) {
	pb := parent.node()
	if i < 0 || i >= len(pb.children) {
		return nil, structural("child_at", parent, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(pb.children)))
	}
	return pb.children[i], nil
}

// SetStyle replaces the style of n after validating it.
func SetStyle(n Node, spec style.Spec) error {
	if err := spec.Validate(); err != nil {
		return structural("set_style", n, err)
	}
	n.node().spec = spec
	return nil
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node. Section header and footer
// bands are visited after the section body.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.node().children {
		Walk(c, fn)
	}
	if s, ok := n.(*Section); ok {
		if s.header != nil {
			Walk(s.header, fn)
		}
		if s.footer != nil {
			Walk(s.footer, fn)
		}
	}
}

// DocumentOf returns the root document of n, or nil when n is not attached
// to one.
func DocumentOf(n Node) *Document {
	for p := n; p != nil; p = p.Parent() {
		if d, ok := p.(*Document); ok {
			return d
		}
	}
	return nil
}

// EffectiveStyle returns the style of n with text-level fields inherited
// from its ancestors.
func EffectiveStyle(n Node) style.Spec {
	spec := n.Style()
	for p := n.Parent(); p != nil; p = p.Parent() {
		spec = spec.Inherit(p.Style())
	}
	return spec
}
