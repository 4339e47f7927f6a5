package resolve

import (
	"strconv"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/layout"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/style"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/xml"
)

func (r *Resolver) resolveWord(n tree.Node) (*xml.PropertySet, error) {
	switch v := n.(type) {
	case *tree.Paragraph:
		return r.paragraphProperties(v)
	case *tree.Run:
		return r.runProperties(v)
	case *tree.Table:
		return r.tableProperties(v)
	case *tree.Row:
		return r.rowProperties(v)
	case *tree.Cell:
		return r.cellProperties(v)
	default:
		return nil, nil
	}
}

func (r *Resolver) paragraphProperties(p *tree.Paragraph) (*xml.PropertySet, error) {
	own, err := r.declaredChecked(p)
	if err != nil {
		return nil, err
	}
	spec := tree.EffectiveStyle(p)
	ps := xml.NewPropertySet("w:pPr")

	if bdr := edgeSet("w:pBdr", own.Borders, style.OuterEdges); bdr != nil {
		ps.MustSet(bdr)
	}
	if own.Fill.IsSet() {
		ps.MustSet(shading(own.Fill))
	}
	switch {
	case spec.IsRTL():
		ps.MustSet(xml.New("w:bidi"))
	case spec.IsLTR():
		ps.MustSet(xml.Val("w:bidi", "0"))
	}
	if !spec.Spacing.IsZero() {
		ps.MustSet(spacing(spec.Spacing))
	}
	if spec.HAlign != style.AlignUnset {
		ps.MustSet(xml.Val("w:jc", spec.HAlign.String()))
	}
	return ps, nil
}

func (r *Resolver) runProperties(run *tree.Run) (*xml.PropertySet, error) {
	own, err := r.declaredChecked(run)
	if err != nil {
		return nil, err
	}
	spec := tree.EffectiveStyle(run)
	ps := xml.NewPropertySet("w:rPr")
	f := spec.Font

	// The renderer picks the font slot from the detected script, so every
	// slot carries a family.
	family, cs := f.Family, spec.ComplexFont
	if family == "" {
		family = cs
	}
	if cs == "" {
		cs = family
	}
	if family != "" {
		ps.MustSet(xml.New("w:rFonts",
			xml.A("w:ascii", family),
			xml.A("w:hAnsi", family),
			xml.A("w:eastAsia", family),
			xml.A("w:cs", cs),
		))
	}
	if f.Bold {
		ps.MustSet(xml.New("w:b"))
		ps.MustSet(xml.New("w:bCs"))
	}
	if f.Italic {
		ps.MustSet(xml.New("w:i"))
		ps.MustSet(xml.New("w:iCs"))
	}
	if f.Color.IsSet() {
		ps.MustSet(xml.Val("w:color", f.Color.String()))
	}
	if f.Size > 0 {
		sz := strconv.Itoa(f.Size)
		ps.MustSet(xml.Val("w:sz", sz))
		ps.MustSet(xml.Val("w:szCs", sz))
	}
	if f.Underline {
		ps.MustSet(xml.Val("w:u", "single"))
	}
	if own.Fill.IsSet() {
		ps.MustSet(shading(own.Fill))
	}
	switch {
	case spec.IsRTL():
		ps.MustSet(xml.New("w:rtl"))
	case spec.IsLTR():
		ps.MustSet(xml.Val("w:rtl", "0"))
	}
	if spec.Language != "" {
		attr := "w:val"
		if spec.IsRTL() {
			attr = "w:bidi"
		}
		ps.MustSet(xml.New("w:lang", xml.A(attr, spec.Language)))
	}
	return ps, nil
}

func (r *Resolver) tableProperties(t *tree.Table) (*xml.PropertySet, error) {
	own, err := r.declaredChecked(t)
	if err != nil {
		return nil, err
	}
	spec := tree.EffectiveStyle(t)
	ps := xml.NewPropertySet("w:tblPr")

	if spec.IsRTL() {
		ps.MustSet(xml.New("w:bidiVisual"))
	}
	ps.MustSet(width("w:tblW", t.Width()))
	switch own.HAlign {
	case style.AlignCenter, style.AlignRight, style.AlignLeft:
		ps.MustSet(xml.Val("w:jc", own.HAlign.String()))
	}
	if t.Indent != 0 {
		ps.MustSet(width("w:tblInd", t.Indent))
	}
	if bdr := edgeSet("w:tblBorders", own.Borders.Merge(r.defaults), style.Edges); bdr != nil {
		ps.MustSet(bdr)
	}
	if own.Fill.IsSet() {
		ps.MustSet(shading(own.Fill))
	}
	ps.MustSet(xml.New("w:tblLayout", xml.A("w:type", "fixed")))
	if m := t.CellMargins; m != nil {
		ps.MustSet(margins("w:tblCellMar", *m, spec.IsRTL()))
	}
	return ps, nil
}

func (r *Resolver) rowProperties(row *tree.Row) (*xml.PropertySet, error) {
	if _, err := r.declaredChecked(row); err != nil {
		return nil, err
	}
	ps := xml.NewPropertySet("w:trPr")
	if row.Height > 0 {
		rule := "atLeast"
		if row.Exact {
			rule = "exact"
		}
		ps.MustSet(xml.New("w:trHeight",
			xml.A("w:val", strconv.Itoa(row.Height.Twips())),
			xml.A("w:hRule", rule),
		))
	}
	if row.Header {
		ps.MustSet(xml.New("w:tblHeader"))
	}
	return ps, nil
}

func (r *Resolver) cellProperties(cell *tree.Cell) (*xml.PropertySet, error) {
	own, err := r.declaredChecked(cell)
	if err != nil {
		return nil, err
	}
	pos, err := locate(cell)
	if err != nil {
		return nil, err
	}
	ps := xml.NewPropertySet("w:tcPr")

	// The grid is authoritative; a declared cell width that drifted from it
	// is reported and replaced.
	w := pos.table.SpanWidth(pos.colIdx, pos.colSpan)
	if g, ok := cell.Geometry(); ok && g.Width != 0 && g.Width.Twips() != w.Twips() {
		if err := r.warn(cell, "declared width %s differs from grid width %s", g.Width, w); err != nil {
			return nil, err
		}
	}
	ps.MustSet(width("w:tcW", w))
	if pos.colSpan > 1 {
		ps.MustSet(xml.Val("w:gridSpan", strconv.Itoa(pos.colSpan)))
	}
	if pos.rowSpan > 1 {
		ps.MustSet(xml.Val("w:vMerge", "restart"))
	}
	if bdr := edgeSet("w:tcBorders", r.cellBorders(own, pos), style.OuterEdges); bdr != nil {
		ps.MustSet(bdr)
	}
	if fill := cellFill(own, pos.row); fill.IsSet() {
		ps.MustSet(shading(fill))
	}
	if cell.Margins != nil {
		ps.MustSet(margins("w:tcMar", *cell.Margins, tree.EffectiveStyle(cell).IsRTL()))
	}
	if va := cellVAlign(own, pos.row); va != style.VAlignUnset {
		ps.MustSet(xml.Val("w:vAlign", va.String()))
	}
	return ps, nil
}

// Continuation returns the w:tcPr of a placeholder cell that continues a
// vertical merge in a following row. Every call builds a fresh set.
func (r *Resolver) Continuation(cell *tree.Cell) (*xml.PropertySet, error) {
	origin, err := r.Resolve(cell)
	if err != nil {
		return nil, err
	}
	if origin == nil || origin.Container() != "w:tcPr" {
		return nil, nil
	}
	ps := xml.NewPropertySet("w:tcPr")
	for _, name := range []string{"w:tcW", "w:gridSpan", "w:tcBorders", "w:shd", "w:vAlign"} {
		if el := origin.Get(name); el != nil {
			ps.MustSet(el.Clone())
		}
	}
	ps.MustSet(xml.New("w:vMerge"))
	return ps, nil
}

// shading builds a fresh w:shd. Shading elements are never shared between
// containers.
func shading(fill style.Color) *xml.Element {
	return xml.New("w:shd",
		xml.A("w:val", "clear"),
		xml.A("w:color", "auto"),
		xml.A("w:fill", fill.String()),
	)
}

func border(name string, b style.Border) *xml.Element {
	el := xml.New(name, xml.A("w:val", string(b.Style)))
	if b.Style == style.BorderNone {
		return el
	}
	color := "auto"
	if b.Color.IsSet() {
		color = b.Color.String()
	}
	el.SetAttr("w:sz", strconv.Itoa(b.Size))
	el.SetAttr("w:space", strconv.Itoa(b.Space))
	el.SetAttr("w:color", color)
	return el
}

// edgeSet builds a border container for the given edges, or nil when none
// of them is set.
func edgeSet(container string, set style.BorderSet, edges []style.Edge) *xml.Element {
	ps := xml.NewPropertySet(container)
	for _, e := range edges {
		if b := set.Get(e); b != nil {
			ps.MustSet(border("w:"+e.String(), *b))
		}
	}
	if ps.IsEmpty() {
		return nil
	}
	return ps.Element()
}

func width(name string, l layout.Length) *xml.Element {
	return xml.New(name, xml.A("w:w", strconv.Itoa(l.Twips())), xml.A("w:type", "dxa"))
}

func spacing(s style.Spacing) *xml.Element {
	el := xml.New("w:spacing")
	if s.Before != 0 {
		el.SetAttr("w:before", strconv.Itoa(s.Before))
	}
	if s.After != 0 {
		el.SetAttr("w:after", strconv.Itoa(s.After))
	}
	if s.Line != 0 {
		el.SetAttr("w:line", strconv.Itoa(s.Line*240/100))
		el.SetAttr("w:lineRule", "auto")
	}
	return el
}

// margins builds w:tcMar or w:tblCellMar. Right-to-left containers use the
// logical start/end edges.
func margins(name string, m tree.CellMargins, rtl bool) *xml.Element {
	lead, trail := "w:left", "w:right"
	if rtl {
		lead, trail = "w:start", "w:end"
	}
	ps := xml.NewPropertySet(name)
	ps.MustSet(width("w:top", m.Top))
	ps.MustSet(width(lead, m.Left))
	ps.MustSet(width("w:bottom", m.Bottom))
	ps.MustSet(width(trail, m.Right))
	return ps.Element()
}
