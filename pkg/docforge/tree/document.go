package tree

import (
	"time"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/layout"
)

// Format selects the output container of a document.
type Format int

const (
	// Wordprocessing documents contain sections of paragraphs and tables.
	Wordprocessing Format = iota
	// Presentation documents contain slides of positioned shapes.
	Presentation
)

func (f Format) String() string {
	if f == Presentation {
		return "pptx"
	}
	return "docx"
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// Document is the root of a tree.
type Document struct {
	base
	Format  Format
	Title   string
	Subject string
	Creator string
	Created time.Time
	// SlideWidth and SlideHeight size every slide of a presentation.
	SlideWidth  layout.Length
	SlideHeight layout.Length
}

// Default 16:9 slide size.
const (
	DefaultSlideWidth  layout.Length = 12192000
	DefaultSlideHeight layout.Length = 6858000
)

// NewDocument creates an empty document of the given format.
func NewDocument(f Format) *Document {
	return &Document{
		base:        newBase(KindDocument),
		Format:      f,
		SlideWidth:  DefaultSlideWidth,
		SlideHeight: DefaultSlideHeight,
	}
}

// Sections returns the sections of a wordprocessing document.
func (d *Document) Sections() []*Section {
	var out []*Section
	for _, c := range d.children {
		if s, ok := c.(*Section); ok {
			out = append(out, s)
		}
	}
	return out
}

// Slides returns the slides of a presentation in order.
func (d *Document) Slides() []*Slide {
	var out []*Slide
	for _, c := range d.children {
		if s, ok := c.(*Slide); ok {
			out = append(out, s)
		}
	}
	return out
}

// Margins are page margins. Header and Footer are the distances of the
// header and footer bands from the page edge.
type Margins struct {
	Top    layout.Length
	Right  layout.Length
	Bottom layout.Length
	Left   layout.Length
	Header layout.Length
	Footer layout.Length
	Gutter layout.Length
}

// PageSetup is the page geometry of a section.
type PageSetup struct {
	Width     layout.Length
	Height    layout.Length
	Landscape bool
	Margins   Margins
}

// A4Landscape returns an A4 landscape page with 2.54cm margins.
func A4Landscape() PageSetup {
	m := layout.Cm(2.54)
	return PageSetup{
		Width:     layout.Cm(29.7),
		Height:    layout.Cm(21),
		Landscape: true,
		Margins: Margins{
			Top:    m,
			Right:  m,
			Bottom: m,
			Left:   m,
			Header: layout.Cm(0.25),
			Footer: layout.Cm(0.7),
		},
	}
}

// ContentWidth returns the width between the left and right margins.
func (p PageSetup) ContentWidth() layout.Length {
	return p.Width - p.Margins.Left - p.Margins.Right
}

// Section is a run of body content sharing one page setup, header and
// footer.
type Section struct {
	base
	Page   PageSetup
	header *Band
	footer *Band
}

// NewSection creates a section with the given page setup.
func NewSection(page PageSetup) *Section {
	return &Section{base: newBase(KindSection), Page: page}
}

// Header returns the header band, creating it on first use.
func (s *Section) Header() *Band {
	if s.header == nil {
		s.header = newBand(BandHeader, s)
	}
	return s.header
}

// Footer returns the footer band, creating it on first use.
func (s *Section) Footer() *Band {
	if s.footer == nil {
		s.footer = newBand(BandFooter, s)
	}
	return s.footer
}

// HasHeader reports whether a header band with content exists.
func (s *Section) HasHeader() bool {
	return s.header != nil && len(s.header.children) > 0
}

// HasFooter reports whether a footer band with content exists.
func (s *Section) HasFooter() bool {
	return s.footer != nil && len(s.footer.children) > 0
}

// BandKind distinguishes headers from footers.
type BandKind int

const (
	BandHeader BandKind = iota
	BandFooter
)

func (k BandKind) String() string {
	if k == BandFooter {
		return "footer"
	}
	return "header"
}

// Band is the content of a section header or footer. It belongs to its
// section but is not one of the section's body children.
type Band struct {
	base
	Role BandKind
}

func newBand(role BandKind, owner *Section) *Band {
	b := &Band{base: newBase(KindBand), Role: role}
	b.parent = owner
	return b
}

// Slide is one slide of a presentation. Shapes are positioned with explicit
// geometry relative to the slide origin.
type Slide struct {
	base
	// Title is emitted as an off-canvas title shape so that outline and
	// table-of-contents views can name the slide.
	Title string
	// Notes is the speaker-notes text. Empty means no notes page.
	Notes string
}

// NewSlide creates an empty slide.
func NewSlide() *Slide {
	return &Slide{base: newBase(KindSlide)}
}

// Index returns the zero-based position of the slide in its document, or
// -1 when detached.
func (s *Slide) Index() int {
	if s.parent == nil {
		return -1
	}
	i := 0
	for _, c := range s.parent.node().children {
		if c == Node(s) {
			return i
		}
		if c.Kind() == KindSlide {
			i++
		}
	}
	return -1
}
