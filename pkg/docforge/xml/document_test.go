package xml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParagraphMarshal(t *testing.T) {
	p := NewParagraph()
	p.Properties.MustSet(Val("w:jc", "right"))
	p.Properties.MustSet(New("w:bidi"))

	props := NewPropertySet("w:rPr")
	props.MustSet(New("w:rtl"))
	props.MustSet(New("w:b"))
	p.AddRun(NewRun(props)).Add(&Text{Content: "عنوان"})
	p.AddRun(NewRun(nil)).Add(&Text{Content: " padded "})

	out := marshalString(t, p)

	for _, e := range []string{
		`<w:p><w:pPr><w:bidi></w:bidi><w:jc w:val="right"></w:jc></w:pPr>`,
		`<w:r><w:rPr><w:b></w:b><w:rtl></w:rtl></w:rPr><w:t>عنوان</w:t></w:r>`,
		`<w:t xml:space="preserve"> padded </w:t>`,
	} {
		assert.Contains(t, out, e)
	}
	assert.NoError(t, ValidatePart([]byte(out)))
}

func TestFieldRuns(t *testing.T) {
	p := &Paragraph{}
	p.AddRun(NewRun(nil)).Add(&FieldChar{Type: "begin"})
	p.AddRun(NewRun(nil)).Add(&InstrText{Content: " PAGE "})
	p.AddRun(NewRun(nil)).Add(&FieldChar{Type: "separate"})
	p.AddRun(NewRun(nil)).Add(&Text{Content: "1"})
	p.AddRun(NewRun(nil)).Add(&FieldChar{Type: "end"})

	out := marshalString(t, p)
	assert.NotContains(t, out, "w:pPr", "nil properties are not written")
	for _, e := range []string{
		`<w:fldChar w:fldCharType="begin"></w:fldChar>`,
		`<w:instrText xml:space="preserve"> PAGE </w:instrText>`,
		`<w:fldChar w:fldCharType="end"></w:fldChar>`,
	} {
		assert.Contains(t, out, e)
	}
	assert.Equal(t, 5, strings.Count(out, "<w:r>"), "each field part in its own run")
}

func TestTableMarshal(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *Table
		contains []string
		absent   []string
	}{
		{
			name: "empty properties still written",
			build: func() *Table {
				tbl := NewTable([]int{4050, 9900})
				row := NewTableRow()
				row.Cells = append(row.Cells, NewTableCell(), NewTableCell())
				tbl.Rows = append(tbl.Rows, row)
				return tbl
			},
			contains: []string{
				`<w:tbl><w:tblPr></w:tblPr><w:tblGrid>`,
				`<w:gridCol w:w="4050"></w:gridCol><w:gridCol w:w="9900"></w:gridCol>`,
				`<w:tc><w:p></w:p></w:tc>`,
			},
			absent: []string{"<w:trPr>", "<w:tcPr>"},
		},
		{
			name: "merged header",
			build: func() *Table {
				tbl := NewTable([]int{4050, 9900})
				tbl.Properties.MustSet(New("w:bidiVisual"))
				tbl.Properties.MustSet(New("w:tblW", A("w:w", "13950"), A("w:type", "dxa")))
				row := NewTableRow()
				row.Properties.MustSet(New("w:trHeight", A("w:val", "1400")))
				cell := NewTableCell()
				cell.Properties.MustSet(Val("w:gridSpan", "2"))
				cell.Properties.MustSet(New("w:tcW", A("w:w", "13950"), A("w:type", "dxa")))
				cell.Content = append(cell.Content, NewParagraph())
				row.Cells = append(row.Cells, cell)
				tbl.Rows = append(tbl.Rows, row)
				return tbl
			},
			contains: []string{
				`<w:tblPr><w:bidiVisual></w:bidiVisual><w:tblW w:w="13950" w:type="dxa"></w:tblW></w:tblPr>`,
				`<w:trPr><w:trHeight w:val="1400"></w:trHeight></w:trPr>`,
				`<w:tcPr><w:tcW w:w="13950" w:type="dxa"></w:tcW><w:gridSpan w:val="2"></w:gridSpan></w:tcPr>`,
			},
		},
		{
			name: "nested table gets trailing paragraph",
			build: func() *Table {
				inner := NewTable([]int{1000})
				cell := NewTableCell()
				cell.Content = append(cell.Content, inner)
				row := NewTableRow()
				row.Cells = append(row.Cells, cell)
				outer := NewTable([]int{2000})
				outer.Rows = append(outer.Rows, row)
				return outer
			},
			contains: []string{`</w:tbl><w:p></w:p></w:tc>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := marshalString(t, tt.build())
			for _, e := range tt.contains {
				assert.Contains(t, out, e)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, out, a)
			}
			assert.NoError(t, ValidatePart([]byte(out)))
		})
	}
}

func TestDocumentMarshal(t *testing.T) {
	doc := NewDocument()
	doc.Body.Elements = append(doc.Body.Elements, NewParagraph(), NewTable([]int{100}))
	sect := NewPropertySet("w:sectPr")
	sect.MustSet(New("w:pgMar", A("w:top", "1440")))
	sect.MustSet(New("w:pgSz", A("w:w", "16838"), A("w:h", "11906"), A("w:orient", "landscape")))
	doc.Body.SectionProperties = sect

	data, err := Marshal(doc)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, Header), "XML declaration")
	assert.Contains(t, out, `xmlns:w="`+NamespaceW+`"`)
	assert.Contains(t, out, `<w:sectPr><w:pgSz`)
	assert.True(t, strings.HasSuffix(out, `</w:sectPr></w:body></w:document>`), "section properties close the body")
	assert.NoError(t, ValidatePart(data))

	data, err = Marshal(NewHeaderFooter(true))
	require.NoError(t, err)
	assert.Contains(t, string(data), `<w:p></w:p></w:ftr>`, "empty footer holds a paragraph")
}

func TestDrawingBuilders(t *testing.T) {
	spPr := NewPropertySet("p:spPr")
	spPr.MustSet(OuterShadow(76200, 38100, 2700000, "000000", 75))
	spPr.MustSet(Outline(12700, "31849B"))
	spPr.MustSet(SolidFill("DBE5F1", 100))
	spPr.MustSet(PresetGeometry("roundRect", -1))
	spPr.MustSet(Xfrm(0, 0, 914400, 914400))

	out := marshalString(t, spPr)
	assert.NoError(t, ValidatePart([]byte(out)), out)
	for _, e := range []string{
		`<a:off x="0" y="0"></a:off><a:ext cx="914400" cy="914400"></a:ext>`,
		`prst="roundRect"`,
		`<a:srgbClr val="DBE5F1">`,
		`blurRad="76200"`,
		`dist="38100"`,
	} {
		assert.Contains(t, out, e)
	}
}
