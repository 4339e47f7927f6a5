package docforge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/layout"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/opc"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/style"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
	docxml "github.com/benjaminschreck/go-docforge/pkg/docforge/xml"
)

const (
	presentationPart = "ppt/presentation.xml"
	presPropsPart    = "ppt/presProps.xml"
	viewPropsPart    = "ppt/viewProps.xml"
	tableStylesPart  = "ppt/tableStyles.xml"
	masterPart       = "ppt/slideMasters/slideMaster1.xml"
	layoutPart       = "ppt/slideLayouts/slideLayout1.xml"
	themePart        = "ppt/theme/theme1.xml"
	notesMasterPart  = "ppt/notesMasters/notesMaster1.xml"
	notesThemePart   = "ppt/theme/theme2.xml"

	namespaceTable = "http://schemas.openxmlformats.org/drawingml/2006/table"

	// slideNumberField is the field id PowerPoint uses for slide numbers.
	slideNumberField = "{B6F15528-21DE-4FAA-801E-634DDDAF4B2B}"
	// defaultTableStyle is "Medium Style 2 - Accent 1".
	defaultTableStyle = "{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"
)

// Ids of the master and layout lists start above the slide id range.
const (
	firstMasterID = 2147483648
	firstSlideID  = 256
)

var defaultRowHeight = layout.Cm(1)

// slideWriter serializes the shapes of one slide.
type slideWriter struct {
	*renderer
	part   string
	slide  *tree.Slide
	parts  map[*tree.Slide]string
	nextID int
}

func (r *renderer) presentation() error {
	slides := r.doc.Slides()
	if len(slides) == 0 {
		return NewDocumentError("render", r.doc.Title, fmt.Errorf("presentation has no slides"))
	}
	r.mediaDir = "ppt/media"

	parts := make(map[*tree.Slide]string, len(slides))
	withNotes := false
	for i, s := range slides {
		parts[s] = fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		if s.Notes != "" {
			withNotes = true
		}
	}

	r.pkg.Relate("", opc.RelOfficeDocument, presentationPart)
	if err := r.properties(docxml.New("Slides").SetText(itoa(len(slides)))); err != nil {
		return err
	}

	masterRid := r.pkg.Relate(presentationPart, opc.RelSlideMaster, masterPart)
	slideRids := make([]string, len(slides))
	for i, s := range slides {
		slideRids[i] = r.pkg.Relate(presentationPart, opc.RelSlide, parts[s])
	}
	var notesMasterRid string
	if withNotes {
		notesMasterRid = r.pkg.Relate(presentationPart, opc.RelNotesMaster, notesMasterPart)
	}
	r.pkg.Relate(presentationPart, opc.RelPresProps, presPropsPart)
	r.pkg.Relate(presentationPart, opc.RelViewProps, viewPropsPart)
	r.pkg.Relate(presentationPart, opc.RelTheme, themePart)
	r.pkg.Relate(presentationPart, opc.RelTableStyles, tableStylesPart)

	if err := r.masterParts(); err != nil {
		return err
	}
	if withNotes {
		if err := r.notesMaster(); err != nil {
			return err
		}
	}
	for i, s := range slides {
		w := &slideWriter{renderer: r, part: parts[s], slide: s, parts: parts, nextID: 1}
		if err := w.write(i + 1); err != nil {
			return err
		}
	}

	pres := docxml.New("p:presentation", docxml.Namespaces("a", "r", "p")...)
	pres.SetAttr("saveSubsetFonts", "1")
	pres.Add(docxml.New("p:sldMasterIdLst").Add(
		docxml.New("p:sldMasterId", docxml.A("id", strconv.Itoa(firstMasterID)), docxml.A("r:id", masterRid)),
	))
	if withNotes {
		pres.Add(docxml.New("p:notesMasterIdLst").Add(
			docxml.New("p:notesMasterId", docxml.A("r:id", notesMasterRid)),
		))
	}
	ids := docxml.New("p:sldIdLst")
	for i, rid := range slideRids {
		ids.Add(docxml.New("p:sldId", docxml.A("id", itoa(firstSlideID+i)), docxml.A("r:id", rid)))
	}
	pres.Add(
		ids,
		docxml.New("p:sldSz", docxml.A("cx", emu(r.doc.SlideWidth)), docxml.A("cy", emu(r.doc.SlideHeight))),
		docxml.New("p:notesSz", docxml.A("cx", "6858000"), docxml.A("cy", "9144000")),
	)
	if err := r.addPart(presentationPart, opc.TypePresentation, pres); err != nil {
		return err
	}

	if err := r.addPart(presPropsPart, opc.TypePresProps, docxml.New("p:presentationPr", docxml.Namespaces("a", "r", "p")...)); err != nil {
		return err
	}
	view := docxml.New("p:viewPr", docxml.Namespaces("a", "r", "p")...).Add(
		docxml.New("p:gridSpacing", docxml.A("cx", "72008"), docxml.A("cy", "72008")),
	)
	if err := r.addPart(viewPropsPart, opc.TypeViewProps, view); err != nil {
		return err
	}
	styles := docxml.New("a:tblStyleLst", docxml.Namespaces("a")...)
	styles.SetAttr("def", defaultTableStyle)
	return r.addPart(tableStylesPart, opc.TypeTableStyles, styles)
}

// masterParts writes the slide master, its single blank layout and the
// theme.
func (r *renderer) masterParts() error {
	layoutRid := r.pkg.Relate(masterPart, opc.RelSlideLayout, layoutPart)
	r.pkg.Relate(masterPart, opc.RelTheme, themePart)
	r.pkg.Relate(layoutPart, opc.RelSlideMaster, masterPart)

	master := docxml.New("p:sldMaster", docxml.Namespaces("a", "r", "p")...).Add(
		docxml.New("p:cSld").Add(
			docxml.New("p:bg").Add(
				docxml.New("p:bgRef", docxml.A("idx", "1001")).Add(docxml.New("a:schemeClr", docxml.A("val", "bg1"))),
			),
			emptyTree(),
		),
		colorMap("p:clrMap"),
		docxml.New("p:sldLayoutIdLst").Add(
			docxml.New("p:sldLayoutId", docxml.A("id", strconv.Itoa(firstMasterID+1)), docxml.A("r:id", layoutRid)),
		),
		docxml.New("p:txStyles").Add(
			docxml.New("p:titleStyle"),
			docxml.New("p:bodyStyle"),
			docxml.New("p:otherStyle"),
		),
	)
	if err := r.addPart(masterPart, opc.TypeSlideMaster, master); err != nil {
		return err
	}

	blank := docxml.New("p:sldLayout", docxml.Namespaces("a", "r", "p")...)
	blank.SetAttr("type", "blank")
	blank.SetAttr("preserve", "1")
	blank.Add(
		docxml.New("p:cSld", docxml.A("name", "Blank")).Add(emptyTree()),
		docxml.New("p:clrMapOvr").Add(docxml.New("a:masterClrMapping")),
	)
	if err := r.addPart(layoutPart, opc.TypeSlideLayout, blank); err != nil {
		return err
	}
	return r.addPart(themePart, opc.TypeTheme, r.themeElement("Docforge"))
}

func (r *renderer) notesMaster() error {
	r.pkg.Relate(notesMasterPart, opc.RelTheme, notesThemePart)
	master := docxml.New("p:notesMaster", docxml.Namespaces("a", "r", "p")...).Add(
		docxml.New("p:cSld").Add(emptyTree()),
		colorMap("p:clrMap"),
	)
	if err := r.addPart(notesMasterPart, opc.TypeNotesMaster, master); err != nil {
		return err
	}
	return r.addPart(notesThemePart, opc.TypeTheme, r.themeElement("Docforge Notes"))
}

// themeElement builds a theme whose color and font schemes come from the
// engine theme.
func (r *renderer) themeElement(name string) *docxml.Element {
	t := r.theme
	colors := docxml.New("a:clrScheme", docxml.A("name", name))
	for _, c := range []struct {
		slot  string
		color style.Color
	}{
		{"dk1", t.TextColor}, {"lt1", style.White}, {"dk2", t.DarkBackground}, {"lt2", t.CardFill},
		{"accent1", t.Primary}, {"accent2", t.Accent}, {"accent3", t.Success}, {"accent4", t.Warning},
		{"accent5", t.Danger}, {"accent6", t.SlideText}, {"hlink", t.Primary}, {"folHlink", t.Accent},
	} {
		colors.Add(docxml.New("a:" + c.slot).Add(docxml.RGB(c.color.String(), 100)))
	}

	font := func(tag, latin string) *docxml.Element {
		return docxml.New(tag).Add(
			docxml.New("a:latin", docxml.A("typeface", latin)),
			docxml.New("a:ea", docxml.A("typeface", "")),
			docxml.New("a:cs", docxml.A("typeface", t.FallbackFont)),
		)
	}
	fonts := docxml.New("a:fontScheme", docxml.A("name", name)).Add(
		font("a:majorFont", t.TitleFont),
		font("a:minorFont", t.SlideFont),
	)

	phFill := func() *docxml.Element {
		return docxml.New("a:solidFill").Add(docxml.New("a:schemeClr", docxml.A("val", "phClr")))
	}
	fills := docxml.New("a:fillStyleLst")
	lines := docxml.New("a:lnStyleLst")
	effects := docxml.New("a:effectStyleLst")
	backgrounds := docxml.New("a:bgFillStyleLst")
	for _, width := range []string{"6350", "12700", "19050"} {
		fills.Add(phFill())
		lines.Add(docxml.New("a:ln", docxml.A("w", width)).Add(phFill()))
		effects.Add(docxml.New("a:effectStyle").Add(docxml.New("a:effectLst")))
		backgrounds.Add(phFill())
	}

	return docxml.New("a:theme", docxml.Namespaces("a")...).Add(
		docxml.New("a:themeElements").Add(
			colors,
			fonts,
			docxml.New("a:fmtScheme", docxml.A("name", name)).Add(fills, lines, effects, backgrounds),
		),
		docxml.New("a:objectDefaults"),
		docxml.New("a:extraClrSchemeLst"),
	)
}

func colorMap(name string) *docxml.Element {
	return docxml.New(name,
		docxml.A("bg1", "lt1"), docxml.A("tx1", "dk1"), docxml.A("bg2", "lt2"), docxml.A("tx2", "dk2"),
		docxml.A("accent1", "accent1"), docxml.A("accent2", "accent2"), docxml.A("accent3", "accent3"),
		docxml.A("accent4", "accent4"), docxml.A("accent5", "accent5"), docxml.A("accent6", "accent6"),
		docxml.A("hlink", "hlink"), docxml.A("folHlink", "folHlink"),
	)
}

// emptyTree is the shape tree root every slide-like part starts from.
func emptyTree() *docxml.Element {
	return docxml.New("p:spTree").Add(
		docxml.New("p:nvGrpSpPr").Add(
			docxml.New("p:cNvPr", docxml.A("id", "1"), docxml.A("name", "")),
			docxml.New("p:cNvGrpSpPr"),
			docxml.New("p:nvPr"),
		),
		docxml.New("p:grpSpPr").Add(docxml.GroupXfrm(0, 0, 0, 0)),
	)
}

func (w *slideWriter) id() int {
	w.nextID++
	return w.nextID
}

func (w *slideWriter) write(number int) error {
	w.pkg.Relate(w.part, opc.RelSlideLayout, layoutPart)

	spTree := emptyTree()
	if w.slide.Title != "" {
		spTree.Add(w.hiddenTitle())
	}
	for _, c := range w.slide.Children() {
		el, err := w.element(c)
		if err != nil {
			return err
		}
		if el == nil {
			continue
		}
		spTree.Add(el)
		if err := w.checkBounds(c); err != nil {
			return err
		}
	}

	sld := docxml.New("p:sld", docxml.Namespaces("a", "r", "p")...).Add(
		docxml.New("p:cSld").Add(spTree),
		docxml.New("p:clrMapOvr").Add(docxml.New("a:masterClrMapping")),
	)
	if w.slide.Notes != "" {
		if err := w.notes(number); err != nil {
			return err
		}
	}
	return w.addPart(w.part, opc.TypeSlide, sld)
}

// checkBounds reports every edge of a top-level element that lies outside
// the slide.
func (w *slideWriter) checkBounds(n tree.Node) error {
	var g layout.Geometry
	switch v := n.(type) {
	case *tree.Group:
		g = v.Bounds()
	case *tree.Table:
		g = w.tableFrame(v)
	default:
		var ok bool
		if g, ok = n.Geometry(); !ok {
			return nil
		}
	}
	for _, o := range layout.CheckBounds(g, w.doc.SlideWidth, w.doc.SlideHeight) {
		if err := w.res.Warn(n, "slide %d: %s", w.slide.Index()+1, o); err != nil {
			return err
		}
	}
	return nil
}

func (w *slideWriter) element(n tree.Node) (*docxml.Element, error) {
	switch v := n.(type) {
	case *tree.Shape:
		return w.shape(v)
	case *tree.Picture:
		return w.picture(v)
	case *tree.Group:
		return w.group(v)
	case *tree.Table:
		return w.table(v)
	}
	return nil, nil
}

func (w *slideWriter) shape(s *tree.Shape) (*docxml.Element, error) {
	spPr, err := w.res.Resolve(s)
	if err != nil {
		return nil, err
	}
	id := w.id()
	cNvPr := docxml.New("p:cNvPr", docxml.A("id", itoa(id)), docxml.A("name", nodeName(s, "Shape", id)))
	if s.JumpTo != nil {
		target, ok := w.parts[s.JumpTo]
		if !ok {
			if err := w.res.Warn(s, "jump target is not a slide of this presentation"); err != nil {
				return nil, err
			}
		} else {
			cNvPr.Add(docxml.SlideJump(w.pkg.Relate(w.part, opc.RelSlide, target)))
		}
	}
	cNvSpPr := docxml.New("p:cNvSpPr")
	if s.Preset == tree.PresetTextBox {
		cNvSpPr.SetAttr("txBox", "1")
	}

	body, err := w.textBody("p:txBody", w.res.Body(s), s.Paragraphs())
	if err != nil {
		return nil, err
	}
	return docxml.New("p:sp").Add(
		docxml.New("p:nvSpPr").Add(cNvPr, cNvSpPr, docxml.New("p:nvPr")),
		spPr.Element(),
		body,
	), nil
}

// textBody builds a text frame. A frame always holds at least one
// paragraph.
func (w *slideWriter) textBody(name string, bodyPr *docxml.PropertySet, paragraphs []*tree.Paragraph) (*docxml.Element, error) {
	body := docxml.New(name).Add(bodyPr.Element(), docxml.New("a:lstStyle"))
	if len(paragraphs) == 0 {
		return body.Add(docxml.New("a:p")), nil
	}
	for _, p := range paragraphs {
		ap, err := w.paragraph(p)
		if err != nil {
			return nil, err
		}
		body.Add(ap)
	}
	return body, nil
}

func (w *slideWriter) paragraph(p *tree.Paragraph) (*docxml.Element, error) {
	pPr, err := w.res.Resolve(p)
	if err != nil {
		return nil, err
	}
	ap := docxml.New("a:p")
	if !pPr.IsEmpty() {
		ap.Add(pPr.Element())
	}

	var last *docxml.PropertySet
	for _, c := range p.Children() {
		switch v := c.(type) {
		case *tree.Run:
			rPr, err := w.res.Resolve(v)
			if err != nil {
				return nil, err
			}
			last = rPr
			switch {
			case v.Field == tree.FieldPage:
				ap.Add(docxml.New("a:fld", docxml.A("id", slideNumberField), docxml.A("type", "slidenum")).Add(
					rPr.Element(),
					docxml.New("a:t").SetText(v.Text),
				))
			case v.Text != "":
				ap.Add(docxml.New("a:r").Add(rPr.Element(), docxml.New("a:t").SetText(v.Text)))
			}
			if v.Break {
				br := rPr.Element()
				ap.Add(docxml.New("a:br").Add(br))
			}
		case *tree.Picture:
			w.res.Info(v, "picture inside slide text dropped")
		}
	}
	if last != nil {
		end := last.Element()
		end.Name = "a:endParaRPr"
		ap.Add(end)
	}
	return ap, nil
}

func (w *slideWriter) picture(pic *tree.Picture) (*docxml.Element, error) {
	asset, rid, ok, err := w.embed(w.part, pic)
	if !ok {
		return nil, err
	}
	spPr, err := w.res.Resolve(pic)
	if err != nil {
		return nil, err
	}
	// The placement depends on the image size, known only now.
	g := pictureGeometry(pic, asset)
	placed := spPr.Clone()
	placed.Remove("a:xfrm")
	placed.MustSet(docxml.Xfrm(g.X.EMU(), g.Y.EMU(), g.Width.EMU(), g.Height.EMU()))

	id := w.id()
	cNvPr := docxml.New("p:cNvPr", docxml.A("id", itoa(id)), docxml.A("name", nodeName(pic, "Picture", id)))
	if pic.Description != "" {
		cNvPr.SetAttr("descr", pic.Description)
	}
	return docxml.New("p:pic").Add(
		docxml.New("p:nvPicPr").Add(
			cNvPr,
			docxml.New("p:cNvPicPr").Add(docxml.New("a:picLocks", docxml.A("noChangeAspect", "1"))),
			docxml.New("p:nvPr"),
		),
		docxml.BlipFill("p", rid),
		placed.Element(),
	), nil
}

func (w *slideWriter) group(g *tree.Group) (*docxml.Element, error) {
	grpSpPr, err := w.res.Resolve(g)
	if err != nil {
		return nil, err
	}
	id := w.id()
	el := docxml.New("p:grpSp").Add(
		docxml.New("p:nvGrpSpPr").Add(
			docxml.New("p:cNvPr", docxml.A("id", itoa(id)), docxml.A("name", nodeName(g, "Group", id))),
			docxml.New("p:cNvGrpSpPr"),
			docxml.New("p:nvPr"),
		),
		grpSpPr.Element(),
	)
	for _, c := range g.Children() {
		child, err := w.element(c)
		if err != nil {
			return nil, err
		}
		if child != nil {
			el.Add(child)
		}
	}
	return el, nil
}

// tableFrame returns the box of a slide table: its declared offset, the
// grid width and the sum of the row heights.
func (w *slideWriter) tableFrame(t *tree.Table) layout.Geometry {
	g, _ := t.Geometry()
	var height layout.Length
	for _, row := range t.Rows() {
		height += rowHeight(row)
	}
	return layout.Box(g.X, g.Y, t.Width(), height)
}

func rowHeight(row *tree.Row) layout.Length {
	if row.Height > 0 {
		return row.Height
	}
	return defaultRowHeight
}

// table emits a graphic frame holding an a:tbl. Every grid slot gets an
// a:tc; slots covered by a merge are marked with hMerge or vMerge.
func (w *slideWriter) table(t *tree.Table) (*docxml.Element, error) {
	grid, err := t.Layout()
	if err != nil {
		return nil, err
	}
	tblPr, err := w.res.Resolve(t)
	if err != nil {
		return nil, err
	}
	tblPr.SetAttr("bandRow", "1")

	cols := docxml.New("a:tblGrid")
	for _, width := range t.Grid() {
		cols.Add(docxml.New("a:gridCol", docxml.A("w", emu(width))))
	}
	tbl := docxml.New("a:tbl").Add(tblPr.Element(), cols)

	for ri, row := range t.Rows() {
		tr := docxml.New("a:tr", docxml.A("h", emu(rowHeight(row))))
		for ci, cell := range grid[ri] {
			tc := docxml.New("a:tc")
			switch {
			case cell == nil:
				tc.Add(emptyCellBody(), docxml.New("a:tcPr"))
			case grid.IsOrigin(ri, ci):
				rows, span := cell.Span()
				if rows > 1 {
					tc.SetAttr("rowSpan", itoa(rows))
				}
				if span > 1 {
					tc.SetAttr("gridSpan", itoa(span))
				}
				tcPr, err := w.res.Resolve(cell)
				if err != nil {
					return nil, err
				}
				body, err := w.cellBody(cell)
				if err != nil {
					return nil, err
				}
				tc.Add(body, tcPr.Element())
			default:
				if ci > 0 && grid[ri][ci-1] == cell {
					tc.SetAttr("hMerge", "1")
				}
				if ri > 0 && grid[ri-1][ci] == cell {
					tc.SetAttr("vMerge", "1")
				}
				tc.Add(emptyCellBody(), docxml.New("a:tcPr"))
			}
			tr.Add(tc)
		}
		tbl.Add(tr)
	}

	frame := w.tableFrame(t)
	id := w.id()
	return docxml.New("p:graphicFrame").Add(
		docxml.New("p:nvGraphicFramePr").Add(
			docxml.New("p:cNvPr", docxml.A("id", itoa(id)), docxml.A("name", nodeName(t, "Table", id))),
			docxml.New("p:cNvGraphicFramePr").Add(docxml.New("a:graphicFrameLocks", docxml.A("noGrp", "1"))),
			docxml.New("p:nvPr"),
		),
		docxml.New("p:xfrm").Add(
			docxml.New("a:off", docxml.A("x", emu(frame.X)), docxml.A("y", emu(frame.Y))),
			docxml.New("a:ext", docxml.A("cx", emu(frame.Width)), docxml.A("cy", emu(frame.Height))),
		),
		docxml.New("a:graphic").Add(
			docxml.New("a:graphicData", docxml.A("uri", namespaceTable)).Add(tbl),
		),
	), nil
}

func (w *slideWriter) cellBody(cell *tree.Cell) (*docxml.Element, error) {
	var paragraphs []*tree.Paragraph
	for _, c := range cell.Children() {
		switch v := c.(type) {
		case *tree.Paragraph:
			paragraphs = append(paragraphs, v)
		case *tree.Table:
			w.res.Info(v, "nested table in a slide table dropped")
		}
	}
	return w.textBody("a:txBody", docxml.NewPropertySet("a:bodyPr"), paragraphs)
}

func emptyCellBody() *docxml.Element {
	return docxml.New("a:txBody").Add(docxml.New("a:bodyPr"), docxml.New("a:lstStyle"), docxml.New("a:p"))
}

// hiddenTitle is a text box named "title" placed far outside the slide.
// Outline and menu views read it; the audience never sees it.
func (w *slideWriter) hiddenTitle() *docxml.Element {
	t := w.theme
	id := w.id()
	rPr := docxml.New("a:rPr", docxml.A("lang", t.Language), docxml.A("sz", "1200"), docxml.A("dirty", "0")).Add(
		docxml.SolidFill(style.White.String(), 100),
		docxml.New("a:latin", docxml.A("typeface", t.SlideFont)),
		docxml.New("a:cs", docxml.A("typeface", t.SlideFont)),
	)
	return docxml.New("p:sp").Add(
		docxml.New("p:nvSpPr").Add(
			docxml.New("p:cNvPr", docxml.A("id", itoa(id)), docxml.A("name", "title")),
			docxml.New("p:cNvSpPr", docxml.A("txBox", "1")),
			docxml.New("p:nvPr"),
		),
		docxml.New("p:spPr").Add(
			docxml.Xfrm(-layout.Cm(20).EMU(), -layout.Cm(20).EMU(), layout.Cm(10).EMU(), layout.Cm(2).EMU()),
			docxml.PresetGeometry("rect", -1),
			docxml.NoFill(),
		),
		docxml.New("p:txBody").Add(
			docxml.New("a:bodyPr", docxml.A("wrap", "square"), docxml.A("rtlCol", "0")).Add(docxml.New("a:spAutoFit")),
			docxml.New("a:lstStyle"),
			docxml.New("a:p").Add(
				docxml.New("a:pPr", docxml.A("algn", "r"), docxml.A("rtl", "1")),
				docxml.New("a:r").Add(rPr, docxml.New("a:t").SetText(w.slide.Title)),
			),
		),
	)
}

// notes writes the notes page of the slide. Each line of the notes text
// becomes a paragraph.
func (w *slideWriter) notes(number int) error {
	name := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", number)
	w.pkg.Relate(w.part, opc.RelNotesSlide, name)
	w.pkg.Relate(name, opc.RelNotesMaster, notesMasterPart)
	w.pkg.Relate(name, opc.RelSlide, w.part)

	body := docxml.New("p:txBody").Add(docxml.New("a:bodyPr"), docxml.New("a:lstStyle"))
	for _, line := range strings.Split(w.slide.Notes, "\n") {
		p := docxml.New("a:p")
		if line != "" {
			p.Add(docxml.New("a:r").Add(
				docxml.New("a:rPr", docxml.A("lang", w.theme.Language), docxml.A("dirty", "0")),
				docxml.New("a:t").SetText(line),
			))
		}
		body.Add(p)
	}

	placeholder := func(id int, name, kind string, extra ...*docxml.Element) *docxml.Element {
		ph := docxml.New("p:ph", docxml.A("type", kind))
		if kind == "body" {
			ph.SetAttr("idx", "1")
		}
		sp := docxml.New("p:sp").Add(
			docxml.New("p:nvSpPr").Add(
				docxml.New("p:cNvPr", docxml.A("id", itoa(id)), docxml.A("name", name)),
				docxml.New("p:cNvSpPr"),
				docxml.New("p:nvPr").Add(ph),
			),
			docxml.New("p:spPr"),
		)
		return sp.Add(extra...)
	}

	notes := docxml.New("p:notes", docxml.Namespaces("a", "r", "p")...).Add(
		docxml.New("p:cSld").Add(emptyTree().Add(
			placeholder(2, "Slide Image Placeholder 1", "sldImg"),
			placeholder(3, "Notes Placeholder 2", "body", body),
		)),
		docxml.New("p:clrMapOvr").Add(docxml.New("a:masterClrMapping")),
	)
	return w.addPart(name, opc.TypeNotesSlide, notes)
}
