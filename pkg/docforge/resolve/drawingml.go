package resolve

import (
	"strconv"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/layout"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/style"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/xml"
)

func (r *Resolver) resolveDrawing(n tree.Node) (*xml.PropertySet, error) {
	switch v := n.(type) {
	case *tree.Paragraph:
		return r.textParagraphProperties(v)
	case *tree.Run:
		return r.textRunProperties(v)
	case *tree.Shape:
		return r.shapeProperties(v)
	case *tree.Picture:
		return r.pictureProperties(v)
	case *tree.Group:
		return r.groupProperties(v)
	case *tree.Table:
		return r.slideTableProperties(v)
	case *tree.Row:
		return nil, r.checkRow(v)
	case *tree.Cell:
		return r.slideCellProperties(v)
	default:
		return nil, nil
	}
}

var drawingAlign = map[style.HAlign]string{
	style.AlignLeft:    "l",
	style.AlignCenter:  "ctr",
	style.AlignRight:   "r",
	style.AlignJustify: "just",
}

var drawingAnchor = map[style.VAlign]string{
	style.VAlignTop:    "t",
	style.VAlignCenter: "ctr",
	style.VAlignBottom: "b",
}

func (r *Resolver) textParagraphProperties(p *tree.Paragraph) (*xml.PropertySet, error) {
	if _, err := r.declaredChecked(p); err != nil {
		return nil, err
	}
	spec := tree.EffectiveStyle(p)
	ps := xml.NewPropertySet("a:pPr")

	if a, ok := drawingAlign[spec.HAlign]; ok {
		ps.SetAttr("algn", a)
	}
	switch {
	case spec.IsRTL():
		ps.SetAttr("rtl", "1")
	case spec.IsLTR():
		ps.SetAttr("rtl", "0")
	}
	if sp := spec.Spacing; !sp.IsZero() {
		if sp.Line != 0 {
			ps.MustSet(xml.New("a:lnSpc").Add(xml.New("a:spcPct", xml.A("val", strconv.Itoa(sp.Line*1000)))))
		}
		// Twentieths of a point to hundredths of a point.
		if sp.Before != 0 {
			ps.MustSet(xml.New("a:spcBef").Add(xml.New("a:spcPts", xml.A("val", strconv.Itoa(sp.Before*5)))))
		}
		if sp.After != 0 {
			ps.MustSet(xml.New("a:spcAft").Add(xml.New("a:spcPts", xml.A("val", strconv.Itoa(sp.After*5)))))
		}
	}
	return ps, nil
}

func (r *Resolver) textRunProperties(run *tree.Run) (*xml.PropertySet, error) {
	if _, err := r.declaredChecked(run); err != nil {
		return nil, err
	}
	spec := tree.EffectiveStyle(run)
	ps := xml.NewPropertySet("a:rPr")
	f := spec.Font

	if spec.Language != "" {
		ps.SetAttr("lang", spec.Language)
	}
	if f.Size > 0 {
		ps.SetAttr("sz", strconv.Itoa(f.Size*50))
	}
	if f.Bold {
		ps.SetAttr("b", "1")
	}
	if f.Italic {
		ps.SetAttr("i", "1")
	}
	if f.Underline {
		ps.SetAttr("u", "sng")
	}
	if f.Color.IsSet() {
		ps.MustSet(xml.SolidFill(f.Color.String(), 100))
	}

	family, cs := f.Family, spec.ComplexFont
	if family == "" {
		family = cs
	}
	if cs == "" {
		cs = family
	}
	if family != "" {
		ps.MustSet(xml.New("a:latin", xml.A("typeface", family)))
		ps.MustSet(xml.New("a:ea", xml.A("typeface", family)))
		ps.MustSet(xml.New("a:cs", xml.A("typeface", cs)))
	}
	return ps, nil
}

// shapeProperties builds p:spPr. Shapes without a declared fill or outline
// get explicit noFill and no line so the theme does not paint them.
func (r *Resolver) shapeProperties(s *tree.Shape) (*xml.PropertySet, error) {
	own, err := r.declaredChecked(s)
	if err != nil {
		return nil, err
	}
	ps := xml.NewPropertySet("p:spPr")

	if g, ok := s.Geometry(); ok {
		ps.MustSet(xfrm(g))
	}
	adj := -1
	if s.Preset == tree.PresetRoundRect && s.CornerRadius >= 0 {
		radius := s.CornerRadius
		if radius > 1 {
			radius = 1
		}
		adj = int(radius*50000 + 0.5)
	}
	ps.MustSet(xml.PresetGeometry(s.Preset.Name(), adj))
	if own.Fill.IsSet() {
		ps.MustSet(xml.SolidFill(own.Fill.String(), 100))
	} else {
		ps.MustSet(xml.NoFill())
	}
	if o := own.Outline; o != nil {
		color := o.Color
		if !color.IsSet() {
			color = style.Black
		}
		ps.MustSet(xml.Outline(o.Width, color.String()))
	} else {
		ps.MustSet(xml.NoOutline())
	}
	if sh := own.Shadow; sh != nil {
		color := sh.Color
		if !color.IsSet() {
			color = style.Black
		}
		ps.MustSet(xml.OuterShadow(sh.Blur, sh.Distance, sh.Direction, color.String(), sh.Alpha))
	}
	return ps, nil
}

func (r *Resolver) pictureProperties(p *tree.Picture) (*xml.PropertySet, error) {
	if _, err := r.declaredChecked(p); err != nil {
		return nil, err
	}
	ps := xml.NewPropertySet("p:spPr")
	if g, ok := p.Geometry(); ok {
		ps.MustSet(xfrm(g))
	}
	ps.MustSet(xml.PresetGeometry("rect", -1))
	return ps, nil
}

func (r *Resolver) groupProperties(g *tree.Group) (*xml.PropertySet, error) {
	if _, err := r.declaredChecked(g); err != nil {
		return nil, err
	}
	b := g.Bounds()
	ps := xml.NewPropertySet("p:grpSpPr")
	ps.MustSet(xml.GroupXfrm(b.X.EMU(), b.Y.EMU(), b.Width.EMU(), b.Height.EMU()))
	return ps, nil
}

func (r *Resolver) slideTableProperties(t *tree.Table) (*xml.PropertySet, error) {
	own, err := r.declaredChecked(t)
	if err != nil {
		return nil, err
	}
	ps := xml.NewPropertySet("a:tblPr")
	if tree.EffectiveStyle(t).IsRTL() {
		ps.SetAttr("rtl", "1")
	}
	if rows := t.Rows(); len(rows) > 0 && rows[0].Header {
		ps.SetAttr("firstRow", "1")
	}
	if own.Fill.IsSet() {
		ps.MustSet(xml.SolidFill(own.Fill.String(), 100))
	}
	return ps, nil
}

var cellLines = []struct {
	edge style.Edge
	name string
}{
	{style.EdgeLeft, "a:lnL"},
	{style.EdgeRight, "a:lnR"},
	{style.EdgeTop, "a:lnT"},
	{style.EdgeBottom, "a:lnB"},
}

func (r *Resolver) slideCellProperties(cell *tree.Cell) (*xml.PropertySet, error) {
	own, err := r.declaredChecked(cell)
	if err != nil {
		return nil, err
	}
	pos, err := locate(cell)
	if err != nil {
		return nil, err
	}
	if err := r.checkRow(pos.row); err != nil {
		return nil, err
	}
	ps := xml.NewPropertySet("a:tcPr")

	m := cell.Margins
	if m == nil {
		m = pos.table.CellMargins
	}
	if m != nil {
		ps.SetAttr("marL", strconv.FormatInt(m.Left.EMU(), 10))
		ps.SetAttr("marR", strconv.FormatInt(m.Right.EMU(), 10))
		ps.SetAttr("marT", strconv.FormatInt(m.Top.EMU(), 10))
		ps.SetAttr("marB", strconv.FormatInt(m.Bottom.EMU(), 10))
	}
	if a, ok := drawingAnchor[cellVAlign(own, pos.row)]; ok {
		ps.SetAttr("anchor", a)
	}

	borders := r.cellBorders(own, pos)
	for _, l := range cellLines {
		if b := borders.Get(l.edge); b != nil {
			ps.MustSet(cellLine(l.name, *b))
		}
	}
	if fill := cellFill(own, pos.row); fill.IsSet() {
		ps.MustSet(xml.SolidFill(fill.String(), 100))
	}
	return ps, nil
}

// cellLine converts a border, sized in eighths of a point, to a DrawingML
// cell line.
func cellLine(name string, b style.Border) *xml.Element {
	ln := xml.New(name)
	if b.Style == style.BorderNone || b.Size == 0 {
		return ln.Add(xml.NoFill())
	}
	ln.SetAttr("w", strconv.FormatInt(int64(b.Size)*int64(layout.Point)/8, 10))
	color := b.Color
	if !color.IsSet() {
		color = style.Black
	}
	ln.Add(xml.SolidFill(color.String(), 100))
	if b.Style == style.BorderDashed {
		ln.Add(xml.New("a:prstDash", xml.A("val", "dash")))
	} else if b.Style == style.BorderDotted {
		ln.Add(xml.New("a:prstDash", xml.A("val", "sysDot")))
	}
	return ln
}

// Body returns the a:bodyPr of a shape's text frame. It is built fresh on
// every call.
func (r *Resolver) Body(s *tree.Shape) *xml.PropertySet {
	ps := xml.NewPropertySet("a:bodyPr")
	wrap := "square"
	if s.NoWrap {
		wrap = "none"
	}
	ps.SetAttr("wrap", wrap)
	if in := s.Insets; in != nil {
		ps.SetAttr("lIns", strconv.FormatInt(in.Left.EMU(), 10))
		ps.SetAttr("tIns", strconv.FormatInt(in.Top.EMU(), 10))
		ps.SetAttr("rIns", strconv.FormatInt(in.Right.EMU(), 10))
		ps.SetAttr("bIns", strconv.FormatInt(in.Bottom.EMU(), 10))
	}
	if a, ok := drawingAnchor[s.Style().VAlign]; ok {
		ps.SetAttr("anchor", a)
	}
	ps.SetAttr("rtlCol", "0")
	switch s.AutoFit {
	case tree.AutoFitText:
		ps.MustSet(xml.New("a:normAutofit"))
	case tree.AutoFitShape:
		ps.MustSet(xml.New("a:spAutoFit"))
	default:
		ps.MustSet(xml.New("a:noAutofit"))
	}
	return ps
}

func xfrm(g layout.Geometry) *xml.Element {
	return xml.Xfrm(g.X.EMU(), g.Y.EMU(), g.Width.EMU(), g.Height.EMU())
}
