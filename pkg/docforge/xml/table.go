package xml

import (
	"encoding/xml"
	"strconv"
)

// Table represents a table in the document
type Table struct {
	Properties *PropertySet
	// Grid holds the column widths in twips.
	Grid []int
	Rows []*TableRow
}

// isBodyElement implements the BodyElement interface
func (t Table) isBodyElement() {}

// NewTable creates a table with an empty w:tblPr and the given grid.
func NewTable(grid []int) *Table {
	return &Table{Properties: NewPropertySet("w:tblPr"), Grid: grid}
}

// MarshalXML implements custom XML marshaling for Table to ensure proper namespacing
func (t Table) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:tbl"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	// Table properties are mandatory, even when empty
	props := t.Properties
	if props.IsEmpty() {
		if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:tblPr"}}); err != nil {
			return err
		}
	} else if err := props.MarshalXML(e, xml.StartElement{}); err != nil {
		return err
	}

	// Encode table grid
	grid := xml.StartElement{Name: xml.Name{Local: "w:tblGrid"}}
	if err := e.EncodeToken(grid); err != nil {
		return err
	}
	for _, w := range t.Grid {
		col := xml.StartElement{Name: xml.Name{Local: "w:gridCol"}, Attr: []xml.Attr{A("w:w", strconv.Itoa(w))}}
		if err := e.EncodeElement(struct{}{}, col); err != nil {
			return err
		}
	}
	if err := e.EncodeToken(xml.EndElement{Name: grid.Name}); err != nil {
		return err
	}

	// Encode rows
	for _, row := range t.Rows {
		if err := row.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableRow represents a row in a table
type TableRow struct {
	Properties *PropertySet
	Cells      []*TableCell
}

// NewTableRow creates a row with an empty w:trPr.
func NewTableRow() *TableRow {
	return &TableRow{Properties: NewPropertySet("w:trPr")}
}

// MarshalXML implements custom XML marshaling for TableRow
func (r TableRow) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:tr"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if r.Properties != nil {
		if err := r.Properties.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	for _, cell := range r.Cells {
		if err := cell.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableCell represents a cell in a table row
type TableCell struct {
	Properties *PropertySet
	Content    []BodyElement
}

// NewTableCell creates a cell with an empty w:tcPr.
func NewTableCell() *TableCell {
	return &TableCell{Properties: NewPropertySet("w:tcPr")}
}

// MarshalXML implements custom XML marshaling for TableCell. A cell always
// ends with a paragraph, so an empty one is added when needed.
func (c TableCell) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:tc"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if c.Properties != nil {
		if err := c.Properties.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	content := c.Content
	if len(content) == 0 {
		content = []BodyElement{&Paragraph{}}
	} else if _, ok := content[len(content)-1].(*Paragraph); !ok {
		content = append(content[:len(content):len(content)], &Paragraph{})
	}
	if err := encodeBodyElements(e, content); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
