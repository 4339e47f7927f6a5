package xml

import (
	"encoding/xml"
	"fmt"
	"sort"
)

// SchemaError reports an element that the container schema does not allow
// or that appears out of sequence.
type SchemaError struct {
	Container string
	Element   string
	Reason    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in %s: %s %s", e.Container, e.Element, e.Reason)
}

// Conflict describes a Set that replaced a different, already present value.
type Conflict struct {
	Container string
	Name      string
	Previous  string
	Current   string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s/%s: %s replaced by %s", c.Container, c.Name, c.Previous, c.Current)
}

// PropertySet is an ordered attribute set for one property container
// (w:pPr, w:tcPr, a:rPr, p:spPr, ...). Children are keyed by name and
// always marshaled in schema order.
type PropertySet struct {
	schema   *Schema
	attrs    []xml.Attr
	children map[string]*Element
}

// NewPropertySet creates an empty set for a registered container. It
// panics for an unknown container; the container names are fixed by the
// engine.
func NewPropertySet(container string) *PropertySet {
	s, ok := SchemaFor(container)
	if !ok {
		panic(fmt.Sprintf("no schema registered for %s", container))
	}
	return &PropertySet{schema: s, children: make(map[string]*Element)}
}

// Container returns the container element name.
func (p *PropertySet) Container() string {
	return p.schema.Container
}

// Set stores el, replacing any element with the same name and any
// alternative of the same choice. When the replaced element differs from
// el, the returned Conflict describes it. el is attached to the set and
// must not be attached anywhere else.
func (p *PropertySet) Set(el *Element) (*Conflict, error) {
	if el == nil {
		return nil, &SchemaError{Container: p.schema.Container, Element: "<nil>", Reason: "cannot be set"}
	}
	if el.attached {
		return nil, fmt.Errorf("set %s in %s: %w", el.Name, p.schema.Container, ErrAlreadyAttached)
	}
	if _, ok := p.schema.Rank(el.Name); !ok {
		return nil, &SchemaError{Container: p.schema.Container, Element: el.Name, Reason: "is not allowed here"}
	}

	var conflict *Conflict
	if prev, ok := p.children[el.Name]; ok {
		if !Equal(prev, el) {
			conflict = &Conflict{Container: p.schema.Container, Name: el.Name, Previous: prev.String(), Current: el.String()}
		}
		prev.detach()
	}
	for _, alt := range p.schema.Alternatives(el.Name) {
		if prev, ok := p.children[alt]; ok {
			conflict = &Conflict{Container: p.schema.Container, Name: el.Name, Previous: prev.String(), Current: el.String()}
			prev.detach()
			delete(p.children, alt)
		}
	}

	el.attached = true
	p.children[el.Name] = el
	return conflict, nil
}

// MustSet is Set for elements the resolver builds itself. A failure is an
// engine defect and panics with the SchemaError.
func (p *PropertySet) MustSet(el *Element) *Conflict {
	c, err := p.Set(el)
	if err != nil {
		panic(err)
	}
	return c
}

// SetAttr sets an attribute on the container element itself. Replacing a
// different value reports a Conflict.
func (p *PropertySet) SetAttr(name, value string) *Conflict {
	for i, a := range p.attrs {
		if a.Name.Local == name {
			if a.Value == value {
				return nil
			}
			p.attrs[i].Value = value
			return &Conflict{Container: p.schema.Container, Name: "@" + name, Previous: a.Value, Current: value}
		}
	}
	p.attrs = append(p.attrs, A(name, value))
	return nil
}

// Attr returns an attribute of the container element.
func (p *PropertySet) Attr(name string) (string, bool) {
	for _, a := range p.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Get returns the child with the given name, or nil.
func (p *PropertySet) Get(name string) *Element {
	return p.children[name]
}

// Has reports whether a child with the given name is set.
func (p *PropertySet) Has(name string) bool {
	_, ok := p.children[name]
	return ok
}

// Remove deletes a child and releases it.
func (p *PropertySet) Remove(name string) {
	if el, ok := p.children[name]; ok {
		el.detach()
		delete(p.children, name)
	}
}

// Len returns the number of children.
func (p *PropertySet) Len() int {
	return len(p.children)
}

// IsEmpty reports whether the set has neither children nor attributes.
func (p *PropertySet) IsEmpty() bool {
	return p == nil || (len(p.children) == 0 && len(p.attrs) == 0)
}

// Names returns the child names in schema order.
func (p *PropertySet) Names() []string {
	names := make([]string, 0, len(p.children))
	for n := range p.children {
		names = append(names, n)
	}
	sort.SliceStable(names, func(i, j int) bool {
		ri, _ := p.schema.Rank(names[i])
		rj, _ := p.schema.Rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

// Element returns a detached deep copy of the container in schema order.
func (p *PropertySet) Element() *Element {
	el := New(p.schema.Container)
	el.Attrs = append([]xml.Attr(nil), p.attrs...)
	for _, n := range p.Names() {
		c := p.children[n].Clone()
		el.Children = append(el.Children, c)
		c.attached = true
	}
	return el
}

// MarshalXML writes the container in schema order. An empty set writes
// nothing.
func (p PropertySet) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if p.IsEmpty() {
		return nil
	}
	start = xml.StartElement{Name: xml.Name{Local: p.schema.Container}, Attr: p.attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, n := range p.Names() {
		if err := p.children[n].MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Clone returns a detached deep copy of the set.
func (p *PropertySet) Clone() *PropertySet {
	if p == nil {
		return nil
	}
	c := &PropertySet{
		schema:   p.schema,
		attrs:    append([]xml.Attr(nil), p.attrs...),
		children: make(map[string]*Element, len(p.children)),
	}
	for name, el := range p.children {
		cc := el.Clone()
		cc.attached = true
		c.children[name] = cc
	}
	return c
}
