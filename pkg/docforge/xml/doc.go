// Package xml provides the ordered XML model the serializer emits.
//
// Office containers are strict about the order of child elements inside
// property containers such as w:pPr, w:tcPr or p:spPr: a child out of
// sequence makes the whole package unopenable. This package keeps that
// knowledge in one place.
//
// # Structure Organization
//
//   - element.go: generic Element with single-owner attachment
//   - schema.go: child order of every container the engine writes
//   - properties.go: PropertySet, an attribute set that is always in order
//   - validate.go: token-level order check over serialized parts
//   - document.go, paragraph.go, run.go, table.go: WordprocessingML body
//   - drawing.go: DrawingML and PresentationML building blocks
//
// # Key Concepts
//
// Element: one XML element. An element can be attached to exactly one
// parent; attaching it again fails with ErrAlreadyAttached. Shading and
// border elements are therefore always built fresh per attachment point.
//
// PropertySet: the children of a property container keyed by name. Set is
// last-write-wins and reports a Conflict when it replaces a different
// value. Marshaling always follows the schema order.
//
// # XML Namespaces
//
// Element names carry their prefix (w:, a:, p:, r:, wp:, pic:). The
// namespace declarations are written once on each part's root element.
package xml
