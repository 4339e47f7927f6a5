package inspect_test

import (
	"archive/zip"
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docforge/pkg/docforge"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/inspect"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/layout"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
)

func render(t *testing.T, doc *tree.Document) []byte {
	t.Helper()
	e := docforge.NewWithConfig(docforge.DefaultConfig(), docforge.WithLogger(docforge.NewLogger(io.Discard, docforge.LogOff)))
	data, err := e.Bytes(doc)
	require.NoError(t, err)
	return data
}

func sceneTable(t *testing.T) *tree.Document {
	t.Helper()
	theme := docforge.DefaultTheme()
	doc := tree.NewDocument(tree.Wordprocessing)
	sec := tree.NewSection(theme.Page)
	require.NoError(t, tree.AppendChild(doc, sec))
	require.NoError(t, tree.AppendChild(sec, tree.NewParagraph(tree.NewRun("Scenes"))))

	table := tree.NewTable(theme.SceneGrid...)
	for i := 0; i < 3; i++ {
		table.AddRow()
	}
	top, err := table.CellAt(0, 1)
	require.NoError(t, err)
	require.NoError(t, tree.MergeSpan(top, 1, 3))
	require.NoError(t, tree.AppendChild(top.Paragraphs()[0], tree.NewRun("Scene 1")))

	side, err := table.CellAt(1, 0)
	require.NoError(t, err)
	require.NoError(t, tree.MergeSpan(side, 2, 2))
	require.NoError(t, tree.AppendChild(sec, table))
	return doc
}

func TestReadDocument(t *testing.T) {
	summary, err := inspect.Read(render(t, sceneTable(t)))
	require.NoError(t, err)

	assert.Equal(t, tree.Wordprocessing, summary.Format)
	assert.Contains(t, summary.Parts, "word/document.xml")
	assert.NotContains(t, summary.Parts, "[Content_Types].xml")
	assert.Empty(t, summary.Unreachable)
	assert.Contains(t, summary.Paragraphs, "Scenes")

	table, err := summary.Table(0)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	row := table.Rows[0]
	require.Len(t, row.Cells, 2)
	assert.Equal(t, 3, row.Cells[1].GridSpan)
	assert.Equal(t, "Scene 1", row.Cells[1].Text)
	assert.Equal(t, 13960, row.Width())

	for i, want := range []inspect.Merge{inspect.MergeRestart, inspect.MergeContinue} {
		cells := table.Rows[i+1].Cells
		require.Len(t, cells, 3)
		assert.Equal(t, want, cells[0].VMerge, "row %d", i+1)
		assert.Equal(t, 2, cells[0].GridSpan)
		assert.Equal(t, 6492, cells[0].Width)
		assert.Equal(t, inspect.MergeNone, cells[1].VMerge)
	}

	_, err = summary.Table(1)
	assert.Error(t, err)
}

func TestReadPresentation(t *testing.T) {
	doc := tree.NewDocument(tree.Presentation)
	for i := 0; i < 3; i++ {
		s := tree.NewSlide()
		require.NoError(t, tree.AppendChild(doc, s))
		box := tree.NewTextBox(layout.Box(layout.Cm(1), layout.Cm(1), layout.Cm(5), layout.Cm(2)), tree.NewParagraph(tree.NewRun("text")))
		require.NoError(t, tree.AppendChild(s, box))
	}

	summary, err := inspect.Read(render(t, doc))
	require.NoError(t, err)
	assert.Equal(t, tree.Presentation, summary.Format)
	assert.Equal(t, 3, summary.Slides)
	assert.Empty(t, summary.Tables)
	assert.Empty(t, summary.Unreachable)
}

func TestReadPresentationWithSlideLinks(t *testing.T) {
	doc := tree.NewDocument(tree.Presentation)
	var slides []*tree.Slide
	for i := 0; i < 3; i++ {
		s := tree.NewSlide()
		require.NoError(t, tree.AppendChild(doc, s))
		slides = append(slides, s)
	}
	for i, s := range slides {
		link := tree.NewTextBox(layout.Box(layout.Cm(1), layout.Cm(1), layout.Cm(4), layout.Cm(2)), tree.NewParagraph(tree.NewRun("next")))
		link.JumpTo = slides[(i+1)%len(slides)]
		require.NoError(t, tree.AppendChild(s, link))
	}

	summary, err := inspect.Read(render(t, doc))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Slides, "links between slides do not add slides")
	assert.Empty(t, summary.Unreachable)
}

func TestReadKeepsStandardLogQuiet(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	_, err := inspect.Read(render(t, sceneTable(t)))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.docx")
	require.NoError(t, os.WriteFile(path, render(t, sceneTable(t)), 0o644))

	summary, err := inspect.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, summary.Tables, 1)

	_, err = inspect.ReadFile(filepath.Join(t.TempDir(), "missing.docx"))
	assert.Error(t, err)
}

func TestReadRejectsForeignArchive(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("not a package"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = inspect.Read(buf.Bytes())
	assert.Error(t, err)

	_, err = inspect.Read([]byte("garbage"))
	assert.Error(t, err)
}

func TestMergeString(t *testing.T) {
	assert.Equal(t, "none", inspect.MergeNone.String())
	assert.Equal(t, "restart", inspect.MergeRestart.String())
	assert.Equal(t, "continue", inspect.MergeContinue.String())
}
