package xml

import (
	"bytes"
	"encoding/xml"
)

// Document is the root of word/document.xml.
type Document struct {
	Attrs []xml.Attr
	Body  Body
}

// NewDocument creates a document with the namespaces the engine emits.
func NewDocument() *Document {
	return &Document{Attrs: Namespaces("w", "r", "wp", "a", "pic")}
}

// MarshalXML implements custom XML marshaling for Document
func (d Document) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:document"}, Attr: d.Attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := d.Body.MarshalXML(e, xml.StartElement{}); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Body represents the document body
type Body struct {
	// Elements maintains the order of all body elements
	Elements []BodyElement
	// SectionProperties of the last section, written after all content
	SectionProperties *PropertySet
}

// MarshalXML implements custom XML marshaling for Body
func (b Body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:body"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeBodyElements(e, b.Elements); err != nil {
		return err
	}
	if b.SectionProperties != nil {
		if err := b.SectionProperties.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// HeaderFooter is the root of a header or footer part.
type HeaderFooter struct {
	Footer   bool
	Attrs    []xml.Attr
	Elements []BodyElement
}

// NewHeaderFooter creates an empty header (footer=false) or footer part.
func NewHeaderFooter(footer bool) *HeaderFooter {
	return &HeaderFooter{Footer: footer, Attrs: Namespaces("w", "r", "wp", "a", "pic")}
}

// MarshalXML implements custom XML marshaling for HeaderFooter
func (h HeaderFooter) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	name := "w:hdr"
	if h.Footer {
		name = "w:ftr"
	}
	start = xml.StartElement{Name: xml.Name{Local: name}, Attr: h.Attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	elements := h.Elements
	if len(elements) == 0 {
		// A header part must hold at least one block.
		elements = []BodyElement{&Paragraph{}}
	}
	if err := encodeBodyElements(e, elements); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func encodeBodyElements(e *xml.Encoder, elements []BodyElement) error {
	for _, el := range elements {
		var err error
		switch v := el.(type) {
		case *Paragraph:
			err = v.MarshalXML(e, xml.StartElement{})
		case *Table:
			err = v.MarshalXML(e, xml.StartElement{})
		case *Element:
			err = v.MarshalXML(e, xml.StartElement{})
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Marshal serializes a part root with the XML declaration.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
