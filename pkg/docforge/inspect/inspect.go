// Package inspect reads a generated package back and summarizes its
// structure: the part manifest, the tables of a wordprocessing document
// with their rows, cells, spans and text, and the slides of a
// presentation. It is used by tests and by the engine's output
// verification.
package inspect

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/opc"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
)

// Merge is the vertical merge state of a cell.
type Merge int

const (
	MergeNone Merge = iota
	MergeRestart
	MergeContinue
)

func (m Merge) String() string {
	switch m {
	case MergeRestart:
		return "restart"
	case MergeContinue:
		return "continue"
	default:
		return "none"
	}
}

// Cell is one w:tc as written.
type Cell struct {
	// Width is the w:tcW value in twips, 0 when absent.
	Width    int
	GridSpan int
	VMerge   Merge
	Text     string
}

// Row is one table row.
type Row struct {
	Cells []Cell
}

// Table is one top-level table of the document body.
type Table struct {
	Rows []Row
}

// Summary describes a package.
type Summary struct {
	Format tree.Format
	// Parts lists the content parts, manifest and relationship parts
	// excluded.
	Parts []string
	// Unreachable lists parts no relationship chain from the root leads to.
	Unreachable []string
	Tables      []Table
	Paragraphs  []string
	Slides      int
	// Notes holds the messages the document reader logged while parsing.
	Notes []string
}

const (
	presentationPart = "ppt/presentation.xml"
	relSlide         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

// unioffice logs through a package variable; readMu serializes the swap.
var readMu sync.Mutex

// ReadFile summarizes the package at path.
func ReadFile(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Read(data)
}

// Read summarizes a package held in memory.
func Read(data []byte) (*Summary, error) {
	size := int64(len(data))
	pr, err := opc.NewReader(bytes.NewReader(data), size)
	if err != nil {
		return nil, err
	}
	s := &Summary{Parts: pr.ListParts()}

	reachable, err := pr.Reachable()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(reachable))
	for _, p := range reachable {
		seen[p] = true
	}
	for _, p := range s.Parts {
		if !seen[p] {
			s.Unreachable = append(s.Unreachable, p)
		}
	}

	switch {
	case s.has("word/document.xml"):
		s.Format = tree.Wordprocessing
		err = s.readDocument(data, size)
	case s.has(presentationPart):
		s.Format = tree.Presentation
		err = s.readPresentation(pr)
	default:
		err = fmt.Errorf("package has neither a document nor a presentation part")
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Summary) has(part string) bool {
	for _, p := range s.Parts {
		if p == part {
			return true
		}
	}
	return false
}

func (s *Summary) readDocument(data []byte, size int64) error {
	doc, err := s.openDocument(data, size)
	if err != nil {
		return err
	}
	for _, p := range doc.Paragraphs() {
		s.Paragraphs = append(s.Paragraphs, paragraphText(p))
	}
	for _, t := range doc.Tables() {
		var table Table
		for _, row := range t.Rows() {
			var r Row
			for _, cell := range row.Cells() {
				r.Cells = append(r.Cells, readCell(cell))
			}
			table.Rows = append(table.Rows, r)
		}
		s.Tables = append(s.Tables, table)
	}
	return nil
}

// openDocument parses the package with unioffice. Its log output is
// collected into s.Notes and a panic inside the reader becomes an error.
func (s *Summary) openDocument(data []byte, size int64) (doc *document.Document, err error) {
	readMu.Lock()
	saved := unioffice.Log
	unioffice.Log = func(format string, args ...interface{}) {
		s.Notes = append(s.Notes, fmt.Sprintf(format, args...))
	}
	defer func() {
		unioffice.Log = saved
		readMu.Unlock()
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("failed to read document: %v", r)
		}
	}()

	doc, err = document.Read(bytes.NewReader(data), size)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return doc, nil
}

func readCell(cell document.Cell) Cell {
	c := Cell{GridSpan: 1}
	var texts []string
	for _, p := range cell.Paragraphs() {
		if t := paragraphText(p); t != "" {
			texts = append(texts, t)
		}
	}
	c.Text = strings.Join(texts, "\n")

	tcPr := cell.X().TcPr
	if tcPr == nil {
		return c
	}
	if tcPr.GridSpan != nil && tcPr.GridSpan.ValAttr > 1 {
		c.GridSpan = int(tcPr.GridSpan.ValAttr)
	}
	if tcPr.VMerge != nil {
		if tcPr.VMerge.ValAttr == wml.ST_MergeRestart {
			c.VMerge = MergeRestart
		} else {
			c.VMerge = MergeContinue
		}
	}
	if w := tcPr.TcW; w != nil && w.WAttr != nil {
		if n := w.WAttr.ST_DecimalNumberOrPercent; n != nil && n.ST_UnqualifiedPercentage != nil {
			c.Width = int(*n.ST_UnqualifiedPercentage)
		}
	}
	return c
}

func paragraphText(p document.Paragraph) string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// slideIDList reads p:sldIdLst. RID comes first: an attribute is matched
// against the fields in order and the unqualified id field accepts r:id too.
type slideIDList struct {
	Slides []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		ID  string `xml:"id,attr"`
	} `xml:"sldIdLst>sldId"`
}

// readPresentation counts the slides listed in p:sldIdLst. Every entry
// must resolve through a slide relationship to a part in the package.
// Slide-to-slide links are ordinary relationships of the slide parts and
// do not add slides.
func (s *Summary) readPresentation(pr *opc.Reader) error {
	content, err := pr.GetPart(presentationPart)
	if err != nil {
		return err
	}
	var list slideIDList
	if err := xml.Unmarshal(content, &list); err != nil {
		return fmt.Errorf("failed to parse %s: %w", presentationPart, err)
	}
	rels, err := pr.GetRelationships(presentationPart)
	if err != nil {
		return err
	}
	byID := make(map[string]opc.Relationship, len(rels))
	for _, rel := range rels {
		byID[rel.ID] = rel
	}
	for _, sld := range list.Slides {
		rel, ok := byID[sld.RID]
		if !ok {
			return fmt.Errorf("slide %s refers to missing relationship %q", sld.ID, sld.RID)
		}
		if rel.Type != relSlide {
			return fmt.Errorf("slide %s relationship %s has type %s", sld.ID, sld.RID, rel.Type)
		}
		if target := opc.ResolveTarget(presentationPart, rel.Target); !s.has(target) {
			return fmt.Errorf("slide %s targets missing part %s", sld.ID, target)
		}
		s.Slides++
	}
	return nil
}

// Table returns the i-th table or an error naming how many exist.
func (s *Summary) Table(i int) (Table, error) {
	if i < 0 || i >= len(s.Tables) {
		return Table{}, fmt.Errorf("table %d out of range, package has %d", i, len(s.Tables))
	}
	return s.Tables[i], nil
}

// Width returns the sum of the cell widths of a row.
func (r Row) Width() int {
	total := 0
	for _, c := range r.Cells {
		total += c.Width
	}
	return total
}
