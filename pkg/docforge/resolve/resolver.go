package resolve

import (
	"errors"
	"fmt"

	"github.com/k0kubun/pp"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/style"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/xml"
)

// ErrNoProperties is returned by Override for nodes that have no property
// container in their format (documents, sections, bands, slides and
// presentation table rows).
var ErrNoProperties = errors.New("node has no property container")

// Resolver computes property sets for the nodes of one document. It is not
// safe for concurrent use.
type Resolver struct {
	reporter Reporter
	strict   bool
	defaults style.BorderSet

	cache       map[tree.Node]*xml.PropertySet
	diagnostics []Diagnostic
	// checked holds presentation rows whose overrides were already
	// checked for conflicts; they have no property set to cache.
	checked map[tree.Node]bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithReporter forwards diagnostics to r.
func WithReporter(r Reporter) Option {
	return func(res *Resolver) {
		if r != nil {
			res.reporter = r
		}
	}
}

// WithStrict turns warnings into ConflictErrors.
func WithStrict(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// WithDefaultBorders sets the lowest precedence level of table borders.
func WithDefaultBorders(b style.BorderSet) Option {
	return func(r *Resolver) {
		r.defaults = b
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		reporter: nopReporter{},
		cache:    make(map[tree.Node]*xml.PropertySet),
		checked:  make(map[tree.Node]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the property set of n: w:pPr, w:rPr, w:tblPr, w:trPr or
// w:tcPr in a wordprocessing document; a:pPr, a:rPr, p:spPr, p:grpSpPr,
// a:tblPr or a:tcPr in a presentation. Nodes without a property container
// resolve to nil. The set is computed once and cached, so overrides added
// through Override stay in place.
func (r *Resolver) Resolve(n tree.Node) (*xml.PropertySet, error) {
	if n == nil {
		return nil, fmt.Errorf("resolve: nil node")
	}
	if ps, ok := r.cache[n]; ok {
		return ps, nil
	}

	var (
		ps  *xml.PropertySet
		err error
	)
	if isPresentation(n) {
		ps, err = r.resolveDrawing(n)
	} else {
		ps, err = r.resolveWord(n)
	}
	if err != nil || ps == nil {
		return nil, err
	}

	r.cache[n] = ps
	if r.reporter.IsDebugMode() {
		r.reporter.Debug("resolved %s into %s: %s", describe(n), ps.Container(), pp.Sprint(ps.Names()))
	}
	return ps, nil
}

// Override sets an explicit element in the resolved set of n. Replacing a
// different value is last-write-wins and records a warning.
func (r *Resolver) Override(n tree.Node, el *xml.Element) error {
	ps, err := r.Resolve(n)
	if err != nil {
		return err
	}
	if ps == nil {
		return fmt.Errorf("override %s on %s: %w", el.Name, describe(n), ErrNoProperties)
	}
	c, err := ps.Set(el)
	if err != nil {
		return err
	}
	if c != nil {
		return r.warn(n, "override %s", c)
	}
	return nil
}

// Diagnostics returns the findings recorded so far.
func (r *Resolver) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// Reset drops cached sets and diagnostics. Call it after the tree was
// edited structurally.
func (r *Resolver) Reset() {
	r.cache = make(map[tree.Node]*xml.PropertySet)
	r.checked = make(map[tree.Node]bool)
	r.diagnostics = nil
}

// Info records an informational diagnostic.
func (r *Resolver) Info(n tree.Node, format string, args ...interface{}) {
	r.diagnostics = append(r.diagnostics, Diagnostic{Severity: SeverityInfo, Node: n, Message: fmt.Sprintf(format, args...)})
}

// Warn records a warning found outside property resolution, such as a
// shape placed beyond the slide edge. In strict mode it returns a
// ConflictError.
func (r *Resolver) Warn(n tree.Node, format string, args ...interface{}) error {
	return r.warn(n, format, args...)
}

// warn records a warning and reports it. In strict mode it returns a
// ConflictError instead.
func (r *Resolver) warn(n tree.Node, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	r.diagnostics = append(r.diagnostics, Diagnostic{Severity: SeverityWarning, Node: n, Message: msg})
	if r.strict {
		return &ConflictError{Node: n, Message: msg}
	}
	r.reporter.Warn("%s: %s", describe(n), msg)
	return nil
}

func isPresentation(n tree.Node) bool {
	d := tree.DocumentOf(n)
	return d != nil && d.Format == tree.Presentation
}

// declared returns the style of n with its explicit overrides applied in
// order. Two overrides of the same target that disagree are reported as
// conflicts.
func declared(n tree.Node) (style.Spec, []string) {
	spec := n.Style()
	var conflicts []string
	edges := make(map[style.Edge]style.Border)
	var fill style.Color

	for _, o := range n.Overrides() {
		if o.IsBorder() {
			if prev, ok := edges[o.Edge]; ok && prev != *o.Border {
				conflicts = append(conflicts, fmt.Sprintf("%s border %s replaced by %s", o.Edge, prev, *o.Border))
			}
			edges[o.Edge] = *o.Border
			spec.Borders = spec.Borders.With(o.Edge, *o.Border)
			continue
		}
		if fill.IsSet() && fill != o.Fill {
			conflicts = append(conflicts, fmt.Sprintf("fill %s replaced by %s", fill, o.Fill))
		}
		fill = o.Fill
		spec.Fill = o.Fill
	}
	return spec, conflicts
}

// declaredChecked is declared with every conflict reported against n.
func (r *Resolver) declaredChecked(n tree.Node) (style.Spec, error) {
	spec, conflicts := declared(n)
	for _, c := range conflicts {
		if err := r.warn(n, "%s", c); err != nil {
			return spec, err
		}
	}
	return spec, nil
}

// checkRow reports conflicting overrides of a presentation table row once.
// Slide rows have no property container, so their overrides only reach
// the output through the cells.
func (r *Resolver) checkRow(row *tree.Row) error {
	if r.checked[row] {
		return nil
	}
	r.checked[row] = true
	_, err := r.declaredChecked(row)
	return err
}

// cellPosition locates a cell in its table.
type cellPosition struct {
	table          *tree.Table
	row            *tree.Row
	rowIdx, colIdx int
	rowSpan        int
	colSpan        int
	rows, cols     int
}

func locate(cell *tree.Cell) (cellPosition, error) {
	row := cell.Row()
	if row == nil || row.Table() == nil {
		return cellPosition{}, fmt.Errorf("resolve %s: %w", describe(cell), tree.ErrNotAttached)
	}
	t := row.Table()
	grid, err := t.Layout()
	if err != nil {
		return cellPosition{}, err
	}
	ri, ci, ok := grid.Origin(cell)
	if !ok {
		return cellPosition{}, fmt.Errorf("resolve %s: cell is outside the table grid: %w", describe(cell), tree.ErrOutOfRange)
	}
	rs, cs := cell.Span()
	return cellPosition{
		table: t, row: row,
		rowIdx: ri, colIdx: ci,
		rowSpan: rs, colSpan: cs,
		rows: len(grid), cols: t.Columns(),
	}, nil
}

// positional maps the edges of a container level onto one cell: outer
// edges where the cell touches the container boundary, inside edges
// elsewhere.
func positional(set style.BorderSet, top, left, bottom, right bool) style.BorderSet {
	var out style.BorderSet
	pick := func(dst style.Edge, outer bool, outerEdge, inner style.Edge) {
		src := inner
		if outer {
			src = outerEdge
		}
		if b := set.Get(src); b != nil {
			out = out.With(dst, *b)
		}
	}
	pick(style.EdgeTop, top, style.EdgeTop, style.EdgeInsideH)
	pick(style.EdgeLeft, left, style.EdgeLeft, style.EdgeInsideV)
	pick(style.EdgeBottom, bottom, style.EdgeBottom, style.EdgeInsideH)
	pick(style.EdgeRight, right, style.EdgeRight, style.EdgeInsideV)
	return out
}

// cellBorders resolves the four outer edges of a cell, each edge on its
// own: cell (overrides included) > row > table > resolver default.
func (r *Resolver) cellBorders(own style.Spec, pos cellPosition) style.BorderSet {
	first := pos.colIdx == 0
	last := pos.colIdx+pos.colSpan >= pos.cols
	top := pos.rowIdx == 0
	bottom := pos.rowIdx+pos.rowSpan >= pos.rows

	rowSpec, _ := declared(pos.row)
	tableSpec, _ := declared(pos.table)

	var cell style.BorderSet
	for _, e := range style.OuterEdges {
		if b := own.Borders.Get(e); b != nil {
			cell = cell.With(e, *b)
		}
	}
	return cell.
		Merge(positional(rowSpec.Borders, true, first, true, last)).
		Merge(positional(tableSpec.Borders, top, first, bottom, last)).
		Merge(positional(r.defaults, top, first, bottom, last))
}

// cellFill returns the shading of a cell, falling back to its row.
func cellFill(own style.Spec, row *tree.Row) style.Color {
	if own.Fill.IsSet() {
		return own.Fill
	}
	rowSpec, _ := declared(row)
	return rowSpec.Fill
}

func cellVAlign(own style.Spec, row *tree.Row) style.VAlign {
	if own.VAlign != style.VAlignUnset {
		return own.VAlign
	}
	return row.Style().VAlign
}
