package docforge

import (
	"fmt"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/opc"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
	docxml "github.com/benjaminschreck/go-docforge/pkg/docforge/xml"
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
	settingsPart = "word/settings.xml"
)

// docxWriter serializes a wordprocessing tree.
type docxWriter struct {
	*renderer
	headers  int
	footers  int
	pictures int
}

func (r *renderer) wordprocessing() error {
	sections := r.doc.Sections()
	if len(sections) == 0 {
		return NewDocumentError("render", r.doc.Title, fmt.Errorf("document has no sections"))
	}
	r.mediaDir = "word/media"
	w := &docxWriter{renderer: r}

	r.pkg.Relate("", opc.RelOfficeDocument, documentPart)
	if err := r.properties(); err != nil {
		return err
	}
	r.pkg.Relate(documentPart, opc.RelStyles, stylesPart)
	r.pkg.Relate(documentPart, opc.RelSettings, settingsPart)

	body := docxml.NewDocument()
	for i, sec := range sections {
		blocks, err := w.blocks(documentPart, sec.Children())
		if err != nil {
			return err
		}
		body.Body.Elements = append(body.Body.Elements, blocks...)

		sectPr, err := w.sectionProperties(sec)
		if err != nil {
			return err
		}
		if i == len(sections)-1 {
			body.Body.SectionProperties = sectPr
			continue
		}
		// Every section but the last ends with a paragraph carrying its
		// properties.
		brk := docxml.NewParagraph()
		brk.Properties.MustSet(sectPr.Element())
		body.Body.Elements = append(body.Body.Elements, brk)
	}

	if err := r.addPart(documentPart, opc.TypeDocument, body); err != nil {
		return err
	}
	if err := r.addPart(stylesPart, opc.TypeStyles, w.styles()); err != nil {
		return err
	}
	return r.addPart(settingsPart, opc.TypeSettings, w.settings())
}

func (w *docxWriter) blocks(part string, nodes []tree.Node) ([]docxml.BodyElement, error) {
	out := make([]docxml.BodyElement, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case *tree.Paragraph:
			p, err := w.paragraph(part, v)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		case *tree.Table:
			t, err := w.table(part, v)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}
	return out, nil
}

func (w *docxWriter) paragraph(part string, p *tree.Paragraph) (*docxml.Paragraph, error) {
	pPr, err := w.res.Resolve(p)
	if err != nil {
		return nil, err
	}
	out := &docxml.Paragraph{Properties: pPr}
	for _, c := range p.Children() {
		switch v := c.(type) {
		case *tree.Run:
			runs, err := w.run(v)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, runs...)
		case *tree.Picture:
			run, err := w.inlinePicture(part, v)
			if err != nil {
				return nil, err
			}
			if run != nil {
				out.Content = append(out.Content, run)
			}
		}
	}
	return out, nil
}

// run converts a text run. A field becomes the five runs of a complex
// field, each with its own copy of the run properties.
func (w *docxWriter) run(run *tree.Run) ([]docxml.ParagraphContent, error) {
	rPr, err := w.res.Resolve(run)
	if err != nil {
		return nil, err
	}
	if run.Field != tree.FieldNone {
		return []docxml.ParagraphContent{
			docxml.NewRun(rPr.Clone()).Add(&docxml.FieldChar{Type: "begin"}),
			docxml.NewRun(rPr.Clone()).Add(&docxml.InstrText{Content: " " + run.Field.Instruction() + " "}),
			docxml.NewRun(rPr.Clone()).Add(&docxml.FieldChar{Type: "separate"}),
			docxml.NewRun(rPr.Clone()).Add(&docxml.Text{Content: run.Text}),
			docxml.NewRun(rPr).Add(&docxml.FieldChar{Type: "end"}),
		}, nil
	}

	out := docxml.NewRun(rPr)
	if run.Text != "" {
		out.Add(&docxml.Text{Content: run.Text})
	}
	if run.Break {
		out.Add(&docxml.Break{})
	}
	return []docxml.ParagraphContent{out}, nil
}

func (w *docxWriter) inlinePicture(part string, pic *tree.Picture) (*docxml.Run, error) {
	asset, rid, ok, err := w.embed(part, pic)
	if !ok {
		return nil, err
	}
	g := pictureGeometry(pic, asset)
	w.pictures++
	name := nodeName(pic, "Picture", w.pictures)
	drawing := docxml.InlinePicture(rid, w.pictures, name, pic.Description, g.Width.EMU(), g.Height.EMU())
	return docxml.NewRun(nil).Add(drawing), nil
}

// table emits the rows slot by slot. The top-left slot of a cell carries
// the cell, lower slots of a vertical merge get a continuation cell and the
// remaining slots of a horizontal span are covered by w:gridSpan.
func (w *docxWriter) table(part string, t *tree.Table) (*docxml.Table, error) {
	grid, err := t.Layout()
	if err != nil {
		return nil, err
	}
	tblPr, err := w.res.Resolve(t)
	if err != nil {
		return nil, err
	}
	cols := make([]int, 0, t.Columns())
	for _, width := range t.Grid() {
		cols = append(cols, width.Twips())
	}
	out := &docxml.Table{Properties: tblPr, Grid: cols}

	for ri, row := range t.Rows() {
		trPr, err := w.res.Resolve(row)
		if err != nil {
			return nil, err
		}
		tr := &docxml.TableRow{Properties: trPr}
		for ci := 0; ci < len(grid[ri]); ci++ {
			cell := grid[ri][ci]
			if cell == nil {
				continue
			}
			var tc *docxml.TableCell
			if grid.IsOrigin(ri, ci) {
				tc, err = w.cell(part, cell)
			} else {
				var tcPr *docxml.PropertySet
				tcPr, err = w.res.Continuation(cell)
				tc = &docxml.TableCell{Properties: tcPr}
			}
			if err != nil {
				return nil, err
			}
			tr.Cells = append(tr.Cells, tc)
			_, span := cell.Span()
			ci += span - 1
		}
		out.Rows = append(out.Rows, tr)
	}
	return out, nil
}

func (w *docxWriter) cell(part string, cell *tree.Cell) (*docxml.TableCell, error) {
	tcPr, err := w.res.Resolve(cell)
	if err != nil {
		return nil, err
	}
	content, err := w.blocks(part, cell.Children())
	if err != nil {
		return nil, err
	}
	return &docxml.TableCell{Properties: tcPr, Content: content}, nil
}

// sectionProperties builds w:sectPr and writes the header and footer parts
// of the section.
func (w *docxWriter) sectionProperties(sec *tree.Section) (*docxml.PropertySet, error) {
	ps := docxml.NewPropertySet("w:sectPr")
	if sec.HasHeader() {
		w.headers++
		rid, err := w.band(sec.Header(), fmt.Sprintf("word/header%d.xml", w.headers), opc.RelHeader, opc.TypeHeader)
		if err != nil {
			return nil, err
		}
		ps.MustSet(docxml.New("w:headerReference", docxml.A("w:type", "default"), docxml.A("r:id", rid)))
	}
	if sec.HasFooter() {
		w.footers++
		rid, err := w.band(sec.Footer(), fmt.Sprintf("word/footer%d.xml", w.footers), opc.RelFooter, opc.TypeFooter)
		if err != nil {
			return nil, err
		}
		ps.MustSet(docxml.New("w:footerReference", docxml.A("w:type", "default"), docxml.A("r:id", rid)))
	}

	page := sec.Page
	pgSz := docxml.New("w:pgSz",
		docxml.A("w:w", itoa(page.Width.Twips())),
		docxml.A("w:h", itoa(page.Height.Twips())),
	)
	if page.Landscape {
		pgSz.SetAttr("w:orient", "landscape")
	}
	ps.MustSet(pgSz)
	m := page.Margins
	ps.MustSet(docxml.New("w:pgMar",
		docxml.A("w:top", itoa(m.Top.Twips())),
		docxml.A("w:right", itoa(m.Right.Twips())),
		docxml.A("w:bottom", itoa(m.Bottom.Twips())),
		docxml.A("w:left", itoa(m.Left.Twips())),
		docxml.A("w:header", itoa(m.Header.Twips())),
		docxml.A("w:footer", itoa(m.Footer.Twips())),
		docxml.A("w:gutter", itoa(m.Gutter.Twips())),
	))
	ps.MustSet(docxml.New("w:cols", docxml.A("w:space", "720")))
	if tree.EffectiveStyle(sec).IsRTL() {
		ps.MustSet(docxml.New("w:bidi"))
	}
	ps.MustSet(docxml.New("w:docGrid", docxml.A("w:linePitch", "360")))
	return ps, nil
}

// band writes a header or footer part and relates it to the document.
func (w *docxWriter) band(b *tree.Band, name, relType, contentType string) (string, error) {
	hf := docxml.NewHeaderFooter(b.Role == tree.BandFooter)
	blocks, err := w.blocks(name, b.Children())
	if err != nil {
		return "", err
	}
	hf.Elements = blocks
	rid := w.pkg.Relate(documentPart, relType, name)
	if err := w.addPart(name, contentType, hf); err != nil {
		return "", err
	}
	return rid, nil
}

// styles builds word/styles.xml with the theme's body font as document
// default.
func (w *docxWriter) styles() *docxml.Element {
	t := w.theme
	rPr := docxml.NewPropertySet("w:rPr")
	rPr.MustSet(docxml.New("w:rFonts",
		docxml.A("w:ascii", t.BodyFont),
		docxml.A("w:hAnsi", t.BodyFont),
		docxml.A("w:eastAsia", t.BodyFont),
		docxml.A("w:cs", t.BodyFont),
	))
	rPr.MustSet(docxml.Val("w:sz", itoa(t.BodySize)))
	rPr.MustSet(docxml.Val("w:szCs", itoa(t.BodySize)))
	rPr.MustSet(docxml.New("w:lang", docxml.A("w:val", "en-US"), docxml.A("w:bidi", t.Language)))

	pPr := docxml.NewPropertySet("w:pPr")
	pPr.MustSet(docxml.New("w:spacing",
		docxml.A("w:after", "0"),
		docxml.A("w:line", "240"),
		docxml.A("w:lineRule", "auto"),
	))

	cellMar := docxml.New("w:tblCellMar").Add(
		docxml.New("w:top", docxml.A("w:w", "0"), docxml.A("w:type", "dxa")),
		docxml.New("w:left", docxml.A("w:w", "108"), docxml.A("w:type", "dxa")),
		docxml.New("w:bottom", docxml.A("w:w", "0"), docxml.A("w:type", "dxa")),
		docxml.New("w:right", docxml.A("w:w", "108"), docxml.A("w:type", "dxa")),
	)

	return docxml.New("w:styles", docxml.Namespaces("w", "r")...).Add(
		docxml.New("w:docDefaults").Add(
			docxml.New("w:rPrDefault").Add(rPr.Element()),
			docxml.New("w:pPrDefault").Add(pPr.Element()),
		),
		docxml.New("w:style", docxml.A("w:type", "paragraph"), docxml.A("w:default", "1"), docxml.A("w:styleId", "Normal")).Add(
			docxml.Val("w:name", "Normal"),
			docxml.New("w:qFormat"),
		),
		docxml.New("w:style", docxml.A("w:type", "character"), docxml.A("w:default", "1"), docxml.A("w:styleId", "DefaultParagraphFont")).Add(
			docxml.Val("w:name", "Default Paragraph Font"),
			docxml.Val("w:uiPriority", "1"),
			docxml.New("w:semiHidden"),
		),
		docxml.New("w:style", docxml.A("w:type", "table"), docxml.A("w:default", "1"), docxml.A("w:styleId", "TableNormal")).Add(
			docxml.Val("w:name", "Normal Table"),
			docxml.Val("w:uiPriority", "99"),
			docxml.New("w:semiHidden"),
			docxml.New("w:tblPr").Add(
				docxml.New("w:tblInd", docxml.A("w:w", "0"), docxml.A("w:type", "dxa")),
				cellMar,
			),
		),
	)
}

func (w *docxWriter) settings() *docxml.Element {
	return docxml.New("w:settings", docxml.Namespaces("w", "r")...).Add(
		docxml.New("w:zoom", docxml.A("w:percent", "100")),
		docxml.Val("w:defaultTabStop", "720"),
		docxml.Val("w:characterSpacingControl", "doNotCompress"),
		docxml.New("w:compat").Add(
			docxml.New("w:compatSetting",
				docxml.A("w:name", "compatibilityMode"),
				docxml.A("w:uri", "http://schemas.microsoft.com/office/word"),
				docxml.A("w:val", "15"),
			),
		),
	)
}
