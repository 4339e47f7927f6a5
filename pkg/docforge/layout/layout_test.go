package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnits(t *testing.T) {
	assert.Equal(t, Length(72000), Cm(0.2))
	assert.Equal(t, Length(914400), Inches(1))
	assert.Equal(t, Length(12700), Pt(1))
	assert.Equal(t, Length(4050*635), Twips(4050))
	assert.Equal(t, 4050, Twips(4050).Twips())
	assert.Equal(t, 1440, Inches(1).Twips())
	assert.InDelta(t, 29.7, Cm(29.7).Cm(), 1e-9)
}

func TestAllocateBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		start    Length
		end      Length
		minItem  Length
		wantSize Length
		wantGap  Length
	}{
		{name: "zero items", count: 0, start: 0, end: 1000000, minItem: 600002, wantSize: 600002, wantGap: 0},
		{name: "negative count", count: -3, start: 0, end: 1000000, minItem: 5, wantSize: 5, wantGap: 0},
		{name: "single item fits", count: 1, start: 0, end: 1000000, minItem: 600002, wantSize: 600002, wantGap: 0},
		{name: "two items absorb remainder", count: 2, start: 0, end: 1000000, minItem: 400000, wantSize: 400000, wantGap: 200000},
		{name: "exact fit at min gap", count: 3, start: 0, end: 3*100000 + 2*MinGap, minItem: 100000, wantSize: 100000, wantGap: MinGap},
		{name: "single item too big shrinks", count: 1, start: 0, end: 500000, minItem: 600002, wantSize: 500000, wantGap: MinGap},
		{name: "gaps alone overflow", count: 10, start: 0, end: 100000, minItem: 50000, wantSize: 0, wantGap: MinGap},
		{name: "inverted span", count: 2, start: 100, end: 0, minItem: 10, wantSize: 0, wantGap: MinGap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, gap := Allocate(tt.count, tt.start, tt.end, tt.minItem)
			assert.Equal(t, tt.wantSize, size)
			assert.Equal(t, tt.wantGap, gap)
		})
	}
}

func TestAllocateNeverExceedsSpan(t *testing.T) {
	spans := []Length{0, 1, 72000, 500000, 3984388, Cm(19)}
	mins := []Length{1, 100000, 600002, Cm(3)}

	for _, span := range spans {
		for _, minItem := range mins {
			for n := 0; n <= 40; n++ {
				size, gap := Allocate(n, 0, span, minItem)
				require.GreaterOrEqual(t, size, Length(0))
				require.Greater(t, gap, Length(-1))
				if n == 0 {
					continue
				}
				total := Length(n)*size + Length(n-1)*gap
				if size > 0 {
					assert.LessOrEqual(t, total, span, "n=%d span=%d min=%d", n, span, minItem)
				}
				if n > 1 {
					assert.GreaterOrEqual(t, gap, MinGap)
				}
			}
		}
	}
}

func TestAllocateShrinkFillsSpan(t *testing.T) {
	for n := 2; n <= 30; n++ {
		span := Length(3984388)
		minItem := Length(600002)
		if Length(n)*minItem <= span {
			continue
		}
		size, gap := Allocate(n, 0, span, minItem)
		total := Length(n)*size + Length(n-1)*gap
		assert.Equal(t, MinGap, gap)
		assert.InDelta(t, float64(span), float64(total), float64(n), "n=%d", n)
	}
}

func TestAllocateEightObjectives(t *testing.T) {
	const (
		top       Length = 2315612
		bottom    Length = 6300000
		preferred Length = 600002
	)
	require.Greater(t, 8*preferred, bottom-top)

	size, gap := Allocate(8, top, bottom, preferred)
	assert.Equal(t, MinGap, gap)
	assert.Equal(t, (Length(3984388)-7*MinGap)/8, size)
	assert.Equal(t, Length(435048), size)

	total := 8*size + 7*gap
	assert.InDelta(t, 3984388, float64(total), 8)
}

func TestAllocateRequest(t *testing.T) {
	a := AllocateRequest(Request{Count: 8, Start: 2315612, End: 6300000, MinItem: 600002, Floor: Cm(1)})
	assert.True(t, a.Shrunk)
	assert.False(t, a.Degraded)

	pos := a.Positions()
	require.Len(t, pos, 8)
	assert.Equal(t, Length(2315612), pos[0])
	assert.Equal(t, pos[0]+a.Size+a.Gap, pos[1])
	assert.LessOrEqual(t, pos[7]+a.Size, Length(6300000))

	degraded := AllocateRequest(Request{Count: 20, Start: 0, End: Cm(5), MinItem: Cm(2), Floor: Cm(1)})
	assert.True(t, degraded.Degraded)
	assert.Equal(t, Cm(1), degraded.Size)
	assert.Greater(t, degraded.Extent(), Cm(5))

	empty := AllocateRequest(Request{Count: 0, MinItem: Cm(2), Floor: Cm(1)})
	assert.Empty(t, empty.Positions())
	assert.Equal(t, Length(0), empty.Extent())
}

func TestAspectFit(t *testing.T) {
	box := Box(Cm(1), Cm(1), Cm(10), Cm(5))

	wide := AspectFit(2000, 500, box)
	assert.Equal(t, Cm(10), wide.Width)
	assert.Equal(t, Cm(2.5), wide.Height)
	assert.Equal(t, box.X, wide.X)
	assert.Equal(t, box.Y+(Cm(5)-Cm(2.5))/2, wide.Y)

	tall := AspectFit(100, 400, box)
	assert.Equal(t, Cm(5), tall.Height)
	assert.Equal(t, Cm(1.25), tall.Width)
	assert.Equal(t, Center(box.X, box.Width, tall.Width), tall.X)

	assert.Equal(t, box, AspectFit(0, 10, box))
}

func TestCheckBounds(t *testing.T) {
	w, h := Length(12192000), Length(6858000)

	assert.Empty(t, CheckBounds(Box(0, 0, w, h), w, h))

	over := CheckBounds(Box(w-Cm(1), h-Cm(1), Cm(3), Cm(2)), w, h)
	require.Len(t, over, 2)
	assert.Equal(t, "right", over[0].Edge)
	assert.Equal(t, Cm(2), over[0].Amount)
	assert.Equal(t, "bottom", over[1].Edge)
	assert.Contains(t, over[1].String(), "1.0cm")

	neg := CheckBounds(Box(-Cm(1), 0, Cm(1), Cm(1)), w, h)
	require.Len(t, neg, 1)
	assert.Equal(t, "left", neg[0].Edge)
}

func TestGeometrySpan(t *testing.T) {
	rows, cols := Geometry{}.Span()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, cols)
	assert.False(t, Geometry{}.IsMerged())
	assert.True(t, Geometry{ColSpan: 2}.IsMerged())
	assert.Error(t, Geometry{Width: -1}.Validate())
	assert.Error(t, Geometry{RowSpan: -1}.Validate())
}
