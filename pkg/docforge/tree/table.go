package tree

import (
	"fmt"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/layout"
)

// CellMargins are the inner margins of table cells.
type CellMargins struct {
	Top    layout.Length
	Left   layout.Length
	Bottom layout.Length
	Right  layout.Length
}

// Table is a grid of rows and cells. The grid column widths are the
// authoritative widths; cell widths are derived from them when the
// document is resolved.
type Table struct {
	base
	grid []layout.Length
	// Indent shifts the table from the leading margin.
	Indent layout.Length
	// CellMargins applies to every cell that does not declare its own.
	CellMargins *CellMargins
}

// NewTable creates a table with the given grid column widths.
func NewTable(grid ...layout.Length) *Table {
	g := make([]layout.Length, len(grid))
	copy(g, grid)
	return &Table{base: newBase(KindTable), grid: g}
}

// Grid returns a copy of the column widths.
func (t *Table) Grid() []layout.Length {
	out := make([]layout.Length, len(t.grid))
	copy(out, t.grid)
	return out
}

// Columns returns the number of grid columns.
func (t *Table) Columns() int {
	return len(t.grid)
}

// Width returns the sum of the grid columns.
func (t *Table) Width() layout.Length {
	var w layout.Length
	for _, c := range t.grid {
		w += c
	}
	return w
}

// SpanWidth returns the width of cols grid columns starting at col.
func (t *Table) SpanWidth(col, cols int) layout.Length {
	var w layout.Length
	for i := col; i < col+cols && i < len(t.grid); i++ {
		if i >= 0 {
			w += t.grid[i]
		}
	}
	return w
}

// Rows returns the rows of the table.
func (t *Table) Rows() []*Row {
	out := make([]*Row, 0, len(t.children))
	for _, c := range t.children {
		if r, ok := c.(*Row); ok {
			out = append(out, r)
		}
	}
	return out
}

// AddRow creates a row with one empty-paragraph cell per grid column and
// appends it.
func (t *Table) AddRow() *Row {
	r := NewRow()
	for range t.grid {
		adopt(r, NewCell(NewParagraph()))
	}
	adopt(t, r)
	return r
}

// Row is a table row. Height zero lets the row size to its content.
type Row struct {
	base
	Height layout.Length
	// Exact fixes the height instead of treating it as a minimum.
	Exact bool
	// Header repeats the row at the top of each page.
	Header bool
}

// NewRow creates a row holding the given cells. It panics if a cell is
// already attached elsewhere.
func NewRow(cells ...*Cell) *Row {
	r := &Row{base: newBase(KindRow)}
	for _, c := range cells {
		adopt(r, c)
	}
	return r
}

// Cells returns the effective cells of the row: absorbed cells of a merge
// are no longer part of it.
func (r *Row) Cells() []*Cell {
	out := make([]*Cell, 0, len(r.children))
	for _, c := range r.children {
		if cell, ok := c.(*Cell); ok {
			out = append(out, cell)
		}
	}
	return out
}

// Cell returns the i-th effective cell.
func (r *Row) Cell(i int) (*Cell, error) {
	cells := r.Cells()
	if i < 0 || i >= len(cells) {
		return nil, structural("cell", r, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(cells)))
	}
	return cells[i], nil
}

// Table returns the owning table, or nil.
func (r *Row) Table() *Table {
	t, _ := r.parent.(*Table)
	return t
}

// Cell is a table cell.
type Cell struct {
	base
	Margins *CellMargins
}

// NewCell creates a cell holding the given paragraphs. It panics if a
// paragraph is already attached elsewhere.
func NewCell(paragraphs ...*Paragraph) *Cell {
	c := &Cell{base: newBase(KindCell)}
	for _, p := range paragraphs {
		adopt(c, p)
	}
	return c
}

// Row returns the owning row, or nil.
func (c *Cell) Row() *Row {
	r, _ := c.parent.(*Row)
	return r
}

// Span returns the merge span of the cell.
func (c *Cell) Span() (rows, cols int) {
	g, _ := c.Geometry()
	return g.Span()
}

// IsMerged reports whether the cell covers more than one grid slot.
func (c *Cell) IsMerged() bool {
	g, _ := c.Geometry()
	return g.IsMerged()
}

// Paragraphs returns the paragraphs of the cell.
func (c *Cell) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, n := range c.children {
		if p, ok := n.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Grid maps every (row, column) slot of the table to the cell covering it.
// Slots not covered by any cell are nil.
type Grid [][]*Cell

// Layout computes the slot map of the table, honoring merge spans. It fails
// when a row holds more cells than the grid has columns or when spans
// collide.
func (t *Table) Layout() (Grid, error) {
	rows := t.Rows()
	cols := len(t.grid)
	grid := make(Grid, len(rows))
	for i := range grid {
		grid[i] = make([]*Cell, cols)
	}

	for r, row := range rows {
		c := 0
		for _, cell := range row.Cells() {
			for c < cols && grid[r][c] != nil {
				c++
			}
			rs, cs := cell.Span()
			if c+cs > cols || r+rs > len(rows) {
				return nil, structural("layout", cell, fmt.Errorf("%w: cell at row %d col %d spans %dx%d in %dx%d grid", ErrOutOfRange, r, c, rs, cs, len(rows), cols))
			}
			for dr := 0; dr < rs; dr++ {
				for dc := 0; dc < cs; dc++ {
					if grid[r+dr][c+dc] != nil {
						return nil, structural("layout", cell, fmt.Errorf("%w: slot %d,%d covered twice", ErrAlreadyMerged, r+dr, c+dc))
					}
					grid[r+dr][c+dc] = cell
				}
			}
			c += cs
		}
	}
	return grid, nil
}

// Origin returns the top-left slot of a cell, or ok=false when it is not in
// the grid.
func (g Grid) Origin(cell *Cell) (row, col int, ok bool) {
	for r := range g {
		for c := range g[r] {
			if g[r][c] == cell {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// IsOrigin reports whether the slot is the top-left slot of its cell.
func (g Grid) IsOrigin(row, col int) bool {
	cell := g[row][col]
	if cell == nil {
		return false
	}
	if row > 0 && g[row-1][col] == cell {
		return false
	}
	if col > 0 && g[row][col-1] == cell {
		return false
	}
	return true
}

// CellAt returns the cell covering grid slot (row, col).
func (t *Table) CellAt(row, col int) (*Cell, error) {
	grid, err := t.Layout()
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= len(grid) || col < 0 || col >= len(t.grid) {
		return nil, structural("cell_at", t, fmt.Errorf("%w: slot %d,%d", ErrOutOfRange, row, col))
	}
	if grid[row][col] == nil {
		return nil, structural("cell_at", t, fmt.Errorf("%w: slot %d,%d is empty", ErrOutOfRange, row, col))
	}
	return grid[row][col], nil
}

// EffectiveCells returns the number of cells owned by a row.
func (t *Table) EffectiveCells(row int) (int, error) {
	rows := t.Rows()
	if row < 0 || row >= len(rows) {
		return 0, structural("effective_cells", t, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, row, len(rows)))
	}
	return len(rows[row].Cells()), nil
}

// MergeSpan merges the rowSpan x colSpan region whose top-left slot is
// cell. Absorbed cells are removed from their rows and any content they
// hold moves into cell. The surviving cell is widened to the total declared
// width of the region's first row.
//
// The whole region is validated first. Touching a cell that is already
// part of a merge fails with ErrAlreadyMerged and leaves the table as it
// was.
func MergeSpan(cell *Cell, rowSpan, colSpan int) error {
	const op = "merge_span"
	if rowSpan < 1 || colSpan < 1 {
		return structural(op, cell, fmt.Errorf("%w: got %dx%d", ErrInvalidSpan, rowSpan, colSpan))
	}
	row := cell.Row()
	if row == nil || row.Table() == nil {
		return structural(op, cell, ErrNotAttached)
	}
	if cell.IsMerged() {
		return structural(op, cell, ErrAlreadyMerged)
	}
	if rowSpan == 1 && colSpan == 1 {
		return nil
	}

	table := row.Table()
	grid, err := table.Layout()
	if err != nil {
		return err
	}
	r, c, ok := grid.Origin(cell)
	if !ok {
		return structural(op, cell, ErrNotAttached)
	}
	if r+rowSpan > len(grid) || c+colSpan > table.Columns() {
		return structural(op, cell, fmt.Errorf("%w: %dx%d at %d,%d exceeds %dx%d grid", ErrOutOfRange, rowSpan, colSpan, r, c, len(grid), table.Columns()))
	}

	var absorbed []*Cell
	for dr := 0; dr < rowSpan; dr++ {
		for dc := 0; dc < colSpan; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			owner := grid[r+dr][c+dc]
			if owner == nil {
				return structural(op, cell, fmt.Errorf("%w: no cell at %d,%d", ErrOutOfRange, r+dr, c+dc))
			}
			if owner == cell || owner.IsMerged() {
				return structural(op, cell, ErrAlreadyMerged)
			}
			absorbed = append(absorbed, owner)
		}
	}

	var width layout.Length
	for dc := 0; dc < colSpan; dc++ {
		owner := grid[r][c+dc]
		if g, ok := owner.Geometry(); ok && g.Width > 0 {
			width += g.Width
		} else {
			width += table.grid[c+dc]
		}
	}
	var height layout.Length
	rows := table.Rows()
	for dr := 0; dr < rowSpan; dr++ {
		if rows[r+dr].Height <= 0 {
			height = 0
			break
		}
		height += rows[r+dr].Height
	}

	// Validation is complete; from here on nothing can fail.
	for _, a := range absorbed {
		for _, child := range a.Children() {
			if p, ok := child.(*Paragraph); ok && !p.HasContent() {
				continue
			}
			_ = RemoveChild(a, child)
			_ = AppendChild(cell, child)
		}
		_ = RemoveChild(a.Row(), a)
	}

	geom, _ := cell.Geometry()
	geom.Width = width
	if rowSpan > 1 && height > 0 {
		geom.Height = height
	}
	geom.RowSpan = rowSpan
	geom.ColSpan = colSpan
	cell.SetGeometry(geom)
	return nil
}
