package xml

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalString(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := xml.Marshal(v)
	require.NoError(t, err, "marshal failed")
	return string(data)
}

func TestPropertySetSchemaOrder(t *testing.T) {
	tests := []struct {
		name      string
		container string
		insert    []string
		expected  []string
	}{
		{
			name:      "paragraph bidi before jc",
			container: "w:pPr",
			insert:    []string{"w:jc", "w:spacing", "w:bidi", "w:pBdr"},
			expected:  []string{"w:pBdr", "w:bidi", "w:spacing", "w:jc"},
		},
		{
			name:      "run fonts and complex script size",
			container: "w:rPr",
			insert:    []string{"w:rtl", "w:szCs", "w:sz", "w:color", "w:b", "w:rFonts"},
			expected:  []string{"w:rFonts", "w:b", "w:color", "w:sz", "w:szCs", "w:rtl"},
		},
		{
			name:      "cell properties",
			container: "w:tcPr",
			insert:    []string{"w:vAlign", "w:shd", "w:tcBorders", "w:gridSpan", "w:tcW"},
			expected:  []string{"w:tcW", "w:gridSpan", "w:tcBorders", "w:shd", "w:vAlign"},
		},
		{
			name:      "table properties",
			container: "w:tblPr",
			insert:    []string{"w:tblLayout", "w:tblBorders", "w:tblInd", "w:tblW", "w:bidiVisual"},
			expected:  []string{"w:bidiVisual", "w:tblW", "w:tblInd", "w:tblBorders", "w:tblLayout"},
		},
		{
			name:      "drawing run",
			container: "a:rPr",
			insert:    []string{"a:cs", "a:latin", "a:solidFill", "a:ea"},
			expected:  []string{"a:solidFill", "a:latin", "a:ea", "a:cs"},
		},
		{
			name:      "shape properties",
			container: "p:spPr",
			insert:    []string{"a:effectLst", "a:ln", "a:solidFill", "a:prstGeom", "a:xfrm"},
			expected:  []string{"a:xfrm", "a:prstGeom", "a:solidFill", "a:ln", "a:effectLst"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := NewPropertySet(tt.container)
			for _, name := range tt.insert {
				_, err := ps.Set(New(name))
				require.NoError(t, err, "Set(%s)", name)
			}
			assert.Equal(t, tt.expected, ps.Names())

			out := marshalString(t, ps)
			last := -1
			for _, name := range tt.expected {
				idx := strings.Index(out, "<"+name)
				assert.Greater(t, idx, last, "%s marshaled out of order in %s", name, out)
				last = idx
			}
			assert.NoError(t, ValidatePart([]byte(out)))
		})
	}
}

func TestPropertySetRejectsUnknownChild(t *testing.T) {
	ps := NewPropertySet("w:tcPr")
	_, err := ps.Set(New("w:jc"))
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "w:tcPr", se.Container)
	assert.Equal(t, "w:jc", se.Element)
}

func TestPropertySetLastWriteWins(t *testing.T) {
	ps := NewPropertySet("w:tcPr")

	first := New("w:shd", A("w:val", "clear"), A("w:fill", "31849B"))
	c, err := ps.Set(first)
	require.NoError(t, err)
	require.Nil(t, c)

	same := New("w:shd", A("w:val", "clear"), A("w:fill", "31849B"))
	c, err = ps.Set(same)
	require.NoError(t, err)
	require.Nil(t, c, "identical value does not conflict")

	second := New("w:shd", A("w:val", "clear"), A("w:fill", "DBE5F1"))
	c, err = ps.Set(second)
	require.NoError(t, err)
	require.NotNil(t, c, "replacing a different value conflicts")
	assert.Contains(t, c.Previous, "31849B")
	assert.Contains(t, c.Current, "DBE5F1")

	fill, _ := ps.Get("w:shd").Attr("w:fill")
	assert.Equal(t, "DBE5F1", fill, "last write wins")
	assert.False(t, first.Attached(), "replaced element is released")
}

func TestPropertySetChoiceExcludesAlternatives(t *testing.T) {
	ps := NewPropertySet("p:spPr")
	ps.MustSet(NoFill())
	c := ps.MustSet(SolidFill("FFFFFF", 100))
	assert.NotNil(t, c, "a fill choice replacing another conflicts")
	assert.False(t, ps.Has("a:noFill"))

	borders := NewPropertySet("w:tcBorders")
	borders.MustSet(New("w:left"))
	borders.MustSet(New("w:start"))
	assert.False(t, borders.Has("w:left"))
	assert.True(t, borders.Has("w:start"))
}

func TestElementSingleOwner(t *testing.T) {
	shd := New("w:shd", A("w:fill", "31849B"))

	a := NewPropertySet("w:tcPr")
	b := NewPropertySet("w:tcPr")
	_, err := a.Set(shd)
	require.NoError(t, err)
	_, err = b.Set(shd)
	require.ErrorIs(t, err, ErrAlreadyAttached)
	assert.False(t, b.Has("w:shd"), "rejected element is not stored")

	parent := New("w:tcBorders")
	require.ErrorIs(t, parent.Append(New("w:top"), shd), ErrAlreadyAttached)
	assert.Empty(t, parent.Children, "Append is all-or-nothing")

	clone := shd.Clone()
	assert.False(t, clone.Attached())
	_, err = b.Set(clone)
	assert.NoError(t, err)

	a.Remove("w:shd")
	_, err = b.Set(shd)
	assert.NoError(t, err, "removed element attaches again")
}

func TestPropertySetContainerAttrs(t *testing.T) {
	ps := NewPropertySet("a:pPr")
	assert.Nil(t, ps.SetAttr("algn", "r"))
	assert.Nil(t, ps.SetAttr("rtl", "1"))
	assert.NotNil(t, ps.SetAttr("algn", "ctr"), "attribute change conflicts")
	assert.Equal(t, `<a:pPr algn="ctr" rtl="1"></a:pPr>`, marshalString(t, ps))

	assert.Empty(t, marshalString(t, NewPropertySet("w:rPr")), "empty set marshals to nothing")
}

func TestValidatePart(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "ordered paragraph",
			input: `<w:p><w:pPr><w:bidi/><w:jc w:val="right"/></w:pPr><w:r><w:rPr><w:rtl/></w:rPr><w:t>x</w:t></w:r></w:p>`,
		},
		{
			name:  "explicit left to right",
			input: `<w:p><w:pPr><w:bidi w:val="0"/></w:pPr><w:r><w:rPr><w:rtl w:val="0"/></w:rPr><w:t>x</w:t></w:r></w:p>`,
		},
		{
			name:    "jc before bidi",
			input:   `<w:p><w:pPr><w:jc w:val="right"/><w:bidi/></w:pPr></w:p>`,
			wantErr: true,
		},
		{
			name:    "pPr after run",
			input:   `<w:p><w:r><w:t>x</w:t></w:r><w:pPr/></w:p>`,
			wantErr: true,
		},
		{
			name:    "duplicate property",
			input:   `<w:tcPr><w:tcW/><w:tcW/></w:tcPr>`,
			wantErr: true,
		},
		{
			name:  "repeated content",
			input: `<w:tc><w:tcPr/><w:p/><w:tbl><w:tblPr/><w:tblGrid/></w:tbl><w:p/></w:tc>`,
		},
		{
			name:    "unknown child",
			input:   `<w:tcPr><w:bogus/></w:tcPr>`,
			wantErr: true,
		},
		{
			name:    "malformed",
			input:   `<w:p><w:r></w:p>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePart([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
