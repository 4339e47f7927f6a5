package xml

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// ErrAlreadyAttached is returned when an element that already belongs to a
// parent is attached a second time.
var ErrAlreadyAttached = errors.New("xml element already attached")

// Element is a generic XML element with a prefixed name.
type Element struct {
	Name     string
	Attrs    []xml.Attr
	Children []*Element
	Text     string

	attached bool
}

// New creates a detached element.
func New(name string, attrs ...xml.Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// Val creates an element with a single w:val attribute, the most common
// shape of a WordprocessingML property.
func Val(name, value string) *Element {
	return New(name, A("w:val", value))
}

// Attached reports whether the element has an owner.
func (e *Element) Attached() bool {
	return e.attached
}

// SetAttr sets an attribute, replacing an existing one with the same name.
func (e *Element) SetAttr(name, value string) *Element {
	for i, a := range e.Attrs {
		if a.Name.Local == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, A(name, value))
	return e
}

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetText sets the character data of the element.
func (e *Element) SetText(s string) *Element {
	e.Text = s
	return e
}

// Append attaches children in order. Nothing is attached when any child is
// already owned elsewhere.
func (e *Element) Append(children ...*Element) error {
	for _, c := range children {
		if c == nil {
			return fmt.Errorf("append to %s: nil element", e.Name)
		}
		if c.attached {
			return fmt.Errorf("append %s to %s: %w", c.Name, e.Name, ErrAlreadyAttached)
		}
		if c == e {
			return fmt.Errorf("append %s to itself", e.Name)
		}
	}
	for _, c := range children {
		c.attached = true
		e.Children = append(e.Children, c)
	}
	return nil
}

// Add is Append for freshly built children. It panics when a child is
// already attached, which can only happen through a programming error in
// the builder that created the children.
func (e *Element) Add(children ...*Element) *Element {
	if err := e.Append(children...); err != nil {
		panic(err)
	}
	return e
}

// detach releases e from its owner's bookkeeping so it can be attached
// again. It does not remove e from the owner's child list.
func (e *Element) detach() {
	e.attached = false
}

// Child returns the first direct child with the given name.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Clone returns a detached deep copy.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := &Element{Name: e.Name, Text: e.Text}
	if len(e.Attrs) > 0 {
		c.Attrs = make([]xml.Attr, len(e.Attrs))
		copy(c.Attrs, e.Attrs)
	}
	for _, ch := range e.Children {
		cc := ch.Clone()
		cc.attached = true
		c.Children = append(c.Children, cc)
	}
	return c
}

// Equal compares two elements structurally, ignoring ownership.
func Equal(a, b *Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || a.Text != b.Text || len(a.Attrs) != len(b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for _, attr := range a.Attrs {
		v, ok := b.Attr(attr.Name.Local)
		if !ok || v != attr.Value {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the element compactly for diagnostics.
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	data, err := xml.Marshal(e)
	if err != nil {
		return e.Name
	}
	return string(data)
}

// isBodyElement lets raw elements (for example an empty w:p) sit in a body.
func (e *Element) isBodyElement() {}

func (e *Element) isParagraphContent() {}

func (e *Element) isRunContent() {}

// MarshalXML writes the element under its own prefixed name.
func (e Element) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: e.Name}, Attr: e.Attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := c.MarshalXML(enc, xml.StartElement{}); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
