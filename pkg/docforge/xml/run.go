package xml

import (
	"encoding/xml"
	"strings"
)

// Run represents a run of text with common properties
type Run struct {
	Properties *PropertySet
	Content    []RunContent
}

// isParagraphContent implements the ParagraphContent interface
func (r Run) isParagraphContent() {}

// NewRun creates a run with the given properties.
func NewRun(props *PropertySet) *Run {
	return &Run{Properties: props}
}

// Add appends content and returns the run.
func (r *Run) Add(c ...RunContent) *Run {
	r.Content = append(r.Content, c...)
	return r
}

// MarshalXML implements custom XML marshaling for Run
func (r Run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:r"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if r.Properties != nil {
		if err := r.Properties.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	for _, c := range r.Content {
		var err error
		switch v := c.(type) {
		case *Text:
			err = v.MarshalXML(e, xml.StartElement{})
		case *Break:
			err = v.MarshalXML(e, xml.StartElement{})
		case *FieldChar:
			err = v.MarshalXML(e, xml.StartElement{})
		case *InstrText:
			err = v.MarshalXML(e, xml.StartElement{})
		case *Element:
			err = v.MarshalXML(e, xml.StartElement{})
		}
		if err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Text represents text content in a run
type Text struct {
	Content string
}

func (t Text) isRunContent() {}

// MarshalXML implements custom XML marshaling for Text. Leading or trailing
// whitespace is kept with xml:space="preserve".
func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:t"}}
	if t.Content != strings.TrimSpace(t.Content) {
		start.Attr = append(start.Attr, A("xml:space", "preserve"))
	}
	return e.EncodeElement(t.Content, start)
}

// Break represents a line break
type Break struct {
	Type string
}

func (b Break) isRunContent() {}

// MarshalXML implements xml.Marshaler for Break
func (b Break) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:br"}}
	if b.Type != "" {
		start.Attr = []xml.Attr{A("w:type", b.Type)}
	}
	return e.EncodeElement(struct{}{}, start)
}

// FieldChar marks the begin, separator or end of a complex field.
type FieldChar struct {
	Type string
}

func (f FieldChar) isRunContent() {}

// MarshalXML implements xml.Marshaler for FieldChar
func (f FieldChar) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:fldChar"}, Attr: []xml.Attr{A("w:fldCharType", f.Type)}}
	return e.EncodeElement(struct{}{}, start)
}

// InstrText is the instruction of a complex field, e.g. " PAGE ".
type InstrText struct {
	Content string
}

func (i InstrText) isRunContent() {}

// MarshalXML implements xml.Marshaler for InstrText
func (i InstrText) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:instrText"}, Attr: []xml.Attr{A("xml:space", "preserve")}}
	return e.EncodeElement(i.Content, start)
}
