package layout

// MinGap is the smallest gap the allocator ever leaves between two items
// (0.2cm).
const MinGap Length = 72000

// Allocate packs itemCount items into the span [spanStart, spanEnd].
//
// When the items fit at minItem with at least MinGap between them, every
// item keeps minItem and the leftover space is spread evenly across the
// gaps (floor division; the remainder stays unused after the last item).
// Otherwise the gap collapses to MinGap and items shrink uniformly to fill
// the span exactly, within integer rounding. A single item gets no gap, and
// a count of zero returns (minItem, 0).
func Allocate(itemCount int, spanStart, spanEnd, minItem Length) (itemSize, gap Length) {
	if itemCount <= 0 {
		return minItem, 0
	}

	n := Length(itemCount)
	available := spanEnd - spanStart

	if n*minItem+(n-1)*MinGap <= available {
		if itemCount == 1 {
			return minItem, 0
		}
		return minItem, (available - n*minItem) / (n - 1)
	}

	itemSize = (available - (n-1)*MinGap) / n
	return maxLength(itemSize, 0), MinGap
}

// Request describes one list-like region to lay out.
type Request struct {
	Count   int
	Start   Length
	End     Length
	MinItem Length
	// Floor is the smallest readable item size. Zero disables the check.
	Floor Length
}

// Allocation is the result of laying out a Request.
type Allocation struct {
	Count int
	Start Length
	Size  Length
	Gap   Length
	// Degraded is set when the computed size fell below the readability
	// floor and was clamped up to it. The region may then overflow.
	Degraded bool
	// Shrunk is set when items had to shrink below MinItem.
	Shrunk bool
}

// AllocateRequest runs Allocate and applies the readability floor.
func AllocateRequest(req Request) Allocation {
	size, gap := Allocate(req.Count, req.Start, req.End, req.MinItem)
	a := Allocation{
		Count:  req.Count,
		Start:  req.Start,
		Size:   size,
		Gap:    gap,
		Shrunk: req.Count > 0 && size < req.MinItem,
	}
	if req.Floor > 0 && req.Count > 0 && size < req.Floor {
		a.Size = req.Floor
		a.Degraded = true
	}
	return a
}

// Positions returns the leading offset of every item.
func (a Allocation) Positions() []Length {
	out := make([]Length, a.Count)
	for i := range out {
		out[i] = a.Start + Length(i)*(a.Size+a.Gap)
	}
	return out
}

// Extent returns the total span consumed by items and gaps.
func (a Allocation) Extent() Length {
	if a.Count <= 0 {
		return 0
	}
	n := Length(a.Count)
	return n*a.Size + (n-1)*a.Gap
}
