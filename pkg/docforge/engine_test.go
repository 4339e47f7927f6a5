package docforge

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/inspect"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/layout"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/opc"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/resolve"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/style"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
)

func testEngine(opts ...Option) *Engine {
	opts = append([]Option{WithLogger(NewLogger(io.Discard, LogOff))}, opts...)
	return NewWithConfig(DefaultConfig(), opts...)
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 0x31, G: 0x84, B: 0x9B, A: 0xFF})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func cellAt(t *testing.T, tbl *tree.Table, row, col int) *tree.Cell {
	t.Helper()
	c, err := tbl.CellAt(row, col)
	require.NoError(t, err)
	return c
}

func fill(t *testing.T, cell *tree.Cell, spec style.Spec, text string) {
	t.Helper()
	require.NoError(t, tree.SetStyle(cell, spec))
	require.NoError(t, tree.AppendChild(cell.Paragraphs()[0], tree.NewRun(text)))
}

// storyboard builds a one-section document with a merged-header metadata
// table and a question table whose first column spans two rows.
func storyboard(t *testing.T) *tree.Document {
	t.Helper()
	theme := DefaultTheme()

	doc := tree.NewDocument(tree.Wordprocessing)
	doc.Title = "Lesson 3"
	doc.Creator = "docforge tests"
	sec := tree.NewSection(theme.Page)
	require.NoError(t, tree.SetStyle(sec, theme.Body()))
	require.NoError(t, tree.AppendChild(doc, sec))

	require.NoError(t, tree.AppendChild(sec.Header(), tree.NewParagraph(tree.NewRun("Storyboard"))))
	footer := tree.NewParagraph(
		tree.NewRun("Page "), tree.NewField(tree.FieldPage),
		tree.NewRun(" of "), tree.NewField(tree.FieldNumPages),
	)
	require.NoError(t, tree.SetStyle(footer, theme.Footer()))
	require.NoError(t, tree.AppendChild(sec.Footer(), footer))

	meta := tree.NewTable(theme.MetaGrid...)
	for i := 0; i < 3; i++ {
		meta.AddRow()
	}
	meta.Rows()[0].Height = theme.HeaderRowHeight
	head := cellAt(t, meta, 0, 0)
	require.NoError(t, tree.MergeSpan(head, 1, 2))
	fill(t, head, theme.HeaderCell(), "Lesson data")
	for i, label := range []string{"Subject", "Grade"} {
		fill(t, cellAt(t, meta, i+1, 0), theme.LabelCell(), label)
		fill(t, cellAt(t, meta, i+1, 1), theme.ValueCell(), "value")
	}
	require.NoError(t, tree.AppendChild(sec, meta))

	questions := tree.NewTable(theme.QuestionGrid...)
	questions.AddRow()
	questions.AddRow()
	first := cellAt(t, questions, 0, 0)
	fill(t, first, theme.LabelCell(), "Question 1")
	require.NoError(t, tree.MergeSpan(first, 2, 1))
	require.NoError(t, tree.AppendChild(sec, questions))
	return doc
}

func TestRenderDocumentTables(t *testing.T) {
	result, err := testEngine().Render(storyboard(t))
	require.NoError(t, err)
	assert.Equal(t, tree.Wordprocessing, result.Format)

	summary, err := inspect.Read(result.Data)
	require.NoError(t, err)
	assert.Empty(t, summary.Unreachable)
	require.Len(t, summary.Tables, 2)

	meta, err := summary.Table(0)
	require.NoError(t, err)
	require.Len(t, meta.Rows, 3)
	header := meta.Rows[0]
	require.Len(t, header.Cells, 1, "merged header keeps one cell")
	assert.Equal(t, 2, header.Cells[0].GridSpan)
	assert.Equal(t, 13950, header.Cells[0].Width)
	assert.Equal(t, "Lesson data", header.Cells[0].Text)
	for _, row := range meta.Rows[1:] {
		assert.Len(t, row.Cells, 2)
		assert.Equal(t, 13950, row.Width())
	}

	questions, err := summary.Table(1)
	require.NoError(t, err)
	require.Len(t, questions.Rows, 2)
	require.Len(t, questions.Rows[1].Cells, 4)
	assert.Equal(t, inspect.MergeRestart, questions.Rows[0].Cells[0].VMerge)
	assert.Equal(t, inspect.MergeContinue, questions.Rows[1].Cells[0].VMerge)
	assert.Equal(t, "Question 1", questions.Rows[0].Cells[0].Text)
	assert.Equal(t, "", questions.Rows[1].Cells[0].Text)
	assert.Equal(t, 3240, questions.Rows[1].Cells[0].Width)
}

func TestRenderDocumentParts(t *testing.T) {
	result, err := testEngine().Render(storyboard(t))
	require.NoError(t, err)

	pr, err := opc.NewReader(bytes.NewReader(result.Data), int64(result.Size()))
	require.NoError(t, err)
	for _, part := range []string{documentPart, stylesPart, settingsPart, "word/header1.xml", "word/footer1.xml", corePart, appPart} {
		assert.Contains(t, pr.ListParts(), part)
	}
	assert.Equal(t, result.Parts[0], "[Content_Types].xml")

	footer, err := pr.GetPart("word/footer1.xml")
	require.NoError(t, err)
	xml := string(footer)
	assert.Equal(t, 2, strings.Count(xml, `w:fldCharType="begin"`))
	assert.Equal(t, 2, strings.Count(xml, `w:fldCharType="end"`))
	assert.Contains(t, xml, " PAGE ")
	assert.Contains(t, xml, " NUMPAGES ")
	assert.Contains(t, xml, `w:sz w:val="16"`)

	body, err := pr.GetPart(documentPart)
	require.NoError(t, err)
	assert.Contains(t, string(body), `w:orient="landscape"`)
	assert.Contains(t, string(body), "<w:bidi></w:bidi>")
	assert.Contains(t, string(body), `w:headerReference`)

	core, err := pr.GetPart(corePart)
	require.NoError(t, err)
	assert.Contains(t, string(core), "<dc:title>Lesson 3</dc:title>")
}

func TestRenderMultipleSections(t *testing.T) {
	theme := DefaultTheme()
	doc := tree.NewDocument(tree.Wordprocessing)
	for _, title := range []string{"first", "second"} {
		sec := tree.NewSection(theme.Page)
		require.NoError(t, tree.AppendChild(sec, tree.NewParagraph(tree.NewRun(title))))
		require.NoError(t, tree.AppendChild(sec.Footer(), tree.NewParagraph(tree.NewRun(title+" footer"))))
		require.NoError(t, tree.AppendChild(doc, sec))
	}

	result, err := testEngine().Render(doc)
	require.NoError(t, err)
	pr, err := opc.NewReader(bytes.NewReader(result.Data), int64(result.Size()))
	require.NoError(t, err)
	assert.Contains(t, pr.ListParts(), "word/footer2.xml")

	body, err := pr.GetPart(documentPart)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(body), "<w:sectPr>"))
}

func TestRenderPictures(t *testing.T) {
	dir := t.TempDir()
	logo := writePNG(t, dir, "logo.png", 96, 48)

	theme := DefaultTheme()
	doc := tree.NewDocument(tree.Wordprocessing)
	sec := tree.NewSection(theme.Page)
	require.NoError(t, tree.AppendChild(doc, sec))

	for i := 0; i < 2; i++ {
		p := tree.NewParagraph()
		require.NoError(t, tree.AppendChild(p, tree.NewPicture(logo)))
		require.NoError(t, tree.AppendChild(sec, p))
	}
	headerLogo := tree.NewParagraph()
	require.NoError(t, tree.AppendChild(headerLogo, tree.NewPicture(logo)))
	require.NoError(t, tree.AppendChild(sec.Header(), headerLogo))

	missing := tree.NewParagraph()
	require.NoError(t, tree.AppendChild(missing, tree.NewPicture(filepath.Join(dir, "absent.png"))))
	require.NoError(t, tree.AppendChild(sec, missing))

	result, err := testEngine(WithStrictMode(true)).Render(doc)
	require.NoError(t, err, "a missing picture is not a warning")

	pr, err := opc.NewReader(bytes.NewReader(result.Data), int64(result.Size()))
	require.NoError(t, err)
	assert.Contains(t, pr.ListParts(), "word/media/image1.png")
	assert.NotContains(t, pr.ListParts(), "word/media/image2.png")

	rels, err := pr.GetRelationships(documentPart)
	require.NoError(t, err)
	images := 0
	for _, rel := range rels {
		if rel.Type == opc.RelImage {
			images++
			assert.Equal(t, "word/media/image1.png", opc.ResolveTarget(documentPart, rel.Target))
		}
	}
	assert.Equal(t, 1, images, "one relationship per part and image")

	headerRels, err := pr.GetRelationships("word/header1.xml")
	require.NoError(t, err)
	require.Len(t, headerRels, 1)
	assert.Equal(t, "media/image1.png", headerRels[0].Target)

	body, err := pr.GetPart(documentPart)
	require.NoError(t, err)
	// 96x48 pixels at 96 dpi.
	assert.Contains(t, string(body), `cx="914400" cy="457200"`)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, resolve.SeverityInfo, result.Diagnostics[0].Severity)
	assert.Contains(t, result.Diagnostics[0].Message, "absent.png")
	assert.Empty(t, result.Warnings())
}

func lecture(t *testing.T) (*tree.Document, *tree.Shape) {
	t.Helper()
	theme := DefaultTheme()
	doc := tree.NewDocument(tree.Presentation)
	doc.Title = "Lecture"

	intro := tree.NewSlide()
	intro.Title = "Intro"
	intro.Notes = "line one\nline two"
	next := tree.NewSlide()
	require.NoError(t, tree.AppendChild(doc, intro))
	require.NoError(t, tree.AppendChild(doc, next))

	run := tree.NewRun("Start")
	require.NoError(t, tree.SetStyle(run, theme.SlideBody(style.Pt(18))))
	card := tree.NewTextBox(layout.Box(layout.Cm(2), layout.Cm(2), layout.Cm(10), layout.Cm(3)), tree.NewParagraph(run))
	card.Preset = tree.PresetRoundRect
	require.NoError(t, tree.SetStyle(card, theme.Card()))
	card.JumpTo = next
	require.NoError(t, tree.AppendChild(intro, card))

	table := tree.NewTable(layout.Cm(4), layout.Cm(4), layout.Cm(4))
	table.SetGeometry(layout.Box(layout.Cm(1), layout.Cm(1), 0, 0))
	table.AddRow().Header = true
	table.AddRow()
	head := cellAt(t, table, 0, 0)
	require.NoError(t, tree.MergeSpan(head, 1, 3))
	fill(t, head, theme.SlideTitle(style.Pt(20)), "Plan")
	require.NoError(t, tree.AppendChild(next, table))

	number := tree.NewTextBox(layout.Box(layout.Cm(30), layout.Cm(17), layout.Cm(2), layout.Cm(1)), tree.NewParagraph(tree.NewField(tree.FieldPage)))
	require.NoError(t, tree.AppendChild(next, number))
	return doc, card
}

func TestRenderPresentation(t *testing.T) {
	doc, _ := lecture(t)
	result, err := testEngine().Render(doc)
	require.NoError(t, err)
	assert.Equal(t, tree.Presentation, result.Format)
	assert.Empty(t, result.Warnings())

	summary, err := inspect.Read(result.Data)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Slides)
	assert.Empty(t, summary.Unreachable)
	assert.Contains(t, summary.Parts, "ppt/notesSlides/notesSlide1.xml")
	assert.NotContains(t, summary.Parts, "ppt/notesSlides/notesSlide2.xml")
	assert.Contains(t, summary.Parts, notesThemePart)

	pr, err := opc.NewReader(bytes.NewReader(result.Data), int64(result.Size()))
	require.NoError(t, err)

	first, err := pr.GetPart("ppt/slides/slide1.xml")
	require.NoError(t, err)
	assert.Contains(t, string(first), `name="title"`)
	assert.Contains(t, string(first), "<a:t>Intro</a:t>")
	assert.Contains(t, string(first), "ppaction://hlinksldjump")
	assert.Contains(t, string(first), `prst="roundRect"`)

	rels, err := pr.GetRelationships("ppt/slides/slide1.xml")
	require.NoError(t, err)
	var jump, notes bool
	for _, rel := range rels {
		switch rel.Type {
		case opc.RelSlide:
			jump = opc.ResolveTarget("ppt/slides/slide1.xml", rel.Target) == "ppt/slides/slide2.xml"
		case opc.RelNotesSlide:
			notes = true
		}
	}
	assert.True(t, jump, "jump relationship to slide 2")
	assert.True(t, notes, "notes relationship")

	second, err := pr.GetPart("ppt/slides/slide2.xml")
	require.NoError(t, err)
	assert.Contains(t, string(second), `gridSpan="3"`)
	assert.Equal(t, 2, strings.Count(string(second), `hMerge="1"`))
	assert.Contains(t, string(second), `type="slidenum"`)
	assert.Contains(t, string(second), `firstRow="1"`)

	notesXML, err := pr.GetPart("ppt/notesSlides/notesSlide1.xml")
	require.NoError(t, err)
	assert.Contains(t, string(notesXML), "<a:t>line one</a:t>")
	assert.Contains(t, string(notesXML), "<a:t>line two</a:t>")
}

func TestRenderOverflowWarning(t *testing.T) {
	doc, card := lecture(t)
	card.SetGeometry(layout.Box(tree.DefaultSlideWidth-layout.Cm(2), layout.Cm(2), layout.Cm(10), layout.Cm(3)))

	result, err := testEngine().Render(doc)
	require.NoError(t, err)
	warnings := result.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "slide 1")
	assert.Equal(t, tree.Node(card), warnings[0].Node)

	doc, card = lecture(t)
	card.SetGeometry(layout.Box(tree.DefaultSlideWidth-layout.Cm(2), layout.Cm(2), layout.Cm(10), layout.Cm(3)))
	_, err = testEngine(WithStrictMode(true)).Render(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, resolve.ErrConflict)
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := testEngine().Render(storyboard(t))
	require.NoError(t, err)
	second, err := testEngine().Render(storyboard(t))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first.Data, second.Data))

	doc, _ := lecture(t)
	a, err := testEngine().Render(doc)
	require.NoError(t, err)
	b, err := testEngine().Render(doc)
	require.NoError(t, err, "rendering does not consume the tree")
	assert.True(t, bytes.Equal(a.Data, b.Data))
}

func TestRenderVerifyOutput(t *testing.T) {
	tests := []struct {
		name   string
		build  func(t *testing.T) *tree.Document
		strict bool
	}{
		{name: "document", build: storyboard},
		{name: "deck with slide jump", build: func(t *testing.T) *tree.Document {
			doc, _ := lecture(t)
			return doc
		}},
		{name: "deck with slide jump strict", strict: true, build: func(t *testing.T) *tree.Document {
			doc, _ := lecture(t)
			return doc
		}},
		{name: "deck without slide jump", build: func(t *testing.T) *tree.Document {
			doc, card := lecture(t)
			card.JumpTo = nil
			return doc
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.VerifyOutput = true
			config.StrictMode = tt.strict
			e := NewWithConfig(config, WithLogger(NewLogger(io.Discard, LogOff)))

			doc := tt.build(t)
			result, err := e.Render(doc)
			require.NoError(t, err)
			if doc.Format == tree.Presentation {
				summary, err := inspect.Read(result.Data)
				require.NoError(t, err)
				assert.Equal(t, len(doc.Slides()), summary.Slides)
			}
		})
	}
}

func TestRenderRejects(t *testing.T) {
	e := testEngine()

	_, err := e.Render(nil)
	assert.True(t, IsDocumentError(err))

	_, err = e.Render(tree.NewDocument(tree.Wordprocessing))
	assert.True(t, IsDocumentError(err))

	_, err = e.Render(tree.NewDocument(tree.Presentation))
	assert.True(t, IsDocumentError(err))
}

func TestSave(t *testing.T) {
	var logs bytes.Buffer
	e := NewWithConfig(DefaultConfig(), WithLogger(NewLogger(&logs, LogInfo)))
	path := filepath.Join(t.TempDir(), "out", "lesson.docx")

	result, err := e.Save(storyboard(t), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, result.Data, data)
	assert.Contains(t, logs.String(), "saved lesson.docx")
	assert.Contains(t, logs.String(), "path="+path)

	summary, err := inspect.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, summary.Tables, 2)
}

func TestRenderBatch(t *testing.T) {
	doc, _ := lecture(t)
	docs := []*tree.Document{storyboard(t), tree.NewDocument(tree.Wordprocessing), doc}

	results, err := testEngine().RenderBatch(docs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document 1")
	require.Len(t, results, 3)
	assert.NotNil(t, results[0])
	assert.Nil(t, results[1])
	require.NotNil(t, results[2])
	assert.Equal(t, tree.Presentation, results[2].Format)
}

func TestResultWriteTo(t *testing.T) {
	result, err := testEngine().Render(storyboard(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := result.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(result.Size()), n)
	assert.Equal(t, result.Data, buf.Bytes())
}

func TestWithTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.BodyFont = "Amiri"
	e := testEngine(WithTheme(theme))
	assert.Equal(t, "Amiri", e.Theme().BodyFont)

	result, err := e.Render(storyboard(t))
	require.NoError(t, err)
	pr, err := opc.NewReader(bytes.NewReader(result.Data), int64(result.Size()))
	require.NoError(t, err)
	styles, err := pr.GetPart(stylesPart)
	require.NoError(t, err)
	assert.Contains(t, string(styles), `w:ascii="Amiri"`)
}
