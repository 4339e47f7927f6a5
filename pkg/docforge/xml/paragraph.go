package xml

import (
	"encoding/xml"
)

// Paragraph represents a paragraph in the document
type Paragraph struct {
	Properties *PropertySet
	Content    []ParagraphContent
}

// isBodyElement implements the BodyElement interface
func (p Paragraph) isBodyElement() {}

// NewParagraph creates a paragraph with an empty w:pPr.
func NewParagraph() *Paragraph {
	return &Paragraph{Properties: NewPropertySet("w:pPr")}
}

// AddRun appends a run and returns it.
func (p *Paragraph) AddRun(r *Run) *Run {
	p.Content = append(p.Content, r)
	return r
}

// MarshalXML implements custom XML marshaling for Paragraph
func (p Paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:p"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	// Properties first, per schema
	if p.Properties != nil {
		if err := p.Properties.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	for _, c := range p.Content {
		var err error
		switch v := c.(type) {
		case *Run:
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
