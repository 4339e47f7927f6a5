package tree

import "strings"

// Paragraph is a block of runs.
type Paragraph struct {
	base
}

// NewParagraph creates a paragraph holding the given runs. It panics if a
// run is already attached elsewhere.
func NewParagraph(runs ...*Run) *Paragraph {
	p := &Paragraph{base: newBase(KindParagraph)}
	for _, r := range runs {
		adopt(p, r)
	}
	return p
}

// Runs returns the text runs of the paragraph.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	for _, c := range p.children {
		if r, ok := c.(*Run); ok {
			out = append(out, r)
		}
	}
	return out
}

// Text concatenates the text of all plain runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		if r.Field == FieldNone {
			sb.WriteString(r.Text)
		}
	}
	return sb.String()
}

// HasContent reports whether the paragraph shows anything.
func (p *Paragraph) HasContent() bool {
	for _, c := range p.children {
		switch n := c.(type) {
		case *Run:
			if n.Text != "" || n.Field != FieldNone {
				return true
			}
		case *Picture:
			return true
		}
	}
	return false
}

// FieldKind selects a computed field instead of literal text.
type FieldKind int

const (
	FieldNone FieldKind = iota
	// FieldPage is the current page number.
	FieldPage
	// FieldNumPages is the total page count.
	FieldNumPages
)

// Instruction returns the field instruction text.
func (f FieldKind) Instruction() string {
	switch f {
	case FieldPage:
		return "PAGE"
	case FieldNumPages:
		return "NUMPAGES"
	default:
		return ""
	}
}

// Run is a span of text with uniform formatting.
type Run struct {
	base
	Text  string
	Field FieldKind
	// Break emits a line break after the text.
	Break bool
}

// NewRun creates a plain text run.
func NewRun(text string) *Run {
	return &Run{base: newBase(KindRun), Text: text}
}

// NewField creates a run that renders a computed field. Text is the
// placeholder shown until the consumer updates fields.
func NewField(kind FieldKind) *Run {
	return &Run{base: newBase(KindRun), Field: kind, Text: "1"}
}

// NewBreak creates an empty run that only carries a line break.
func NewBreak() *Run {
	return &Run{base: newBase(KindRun), Break: true}
}

// IsPlain reports whether the run is literal text without a break.
func (r *Run) IsPlain() bool {
	return r.Field == FieldNone && !r.Break
}
