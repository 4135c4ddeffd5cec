package gallery

import "math"

// row is the transient unit of accumulation: an ordered run of items, their
// summed aspect ratio, and the vertical offset where the row begins. Rows
// exist only between the accumulator and the finalizer; they are never part
// of any persisted model.
type row struct {
	items []Item
	sum   float64
	y     float64
	last  bool
}

// finalize converts the row into placed items and returns the row's height
// (the amount the y cursor advances before any inter-row gutter).
//
// Justified rows compute their height so the scaled item widths plus gutters
// exactly fill the container. The trailing row instead uses the target height
// (or its capped natural height, see Options.LastRowCapMultiplier) and is
// left-aligned. All widths and heights are floor-rounded so accumulated
// rounding can only leave a sub-pixel gap at the right edge, never an
// overflow; SnapLastToEdge trades that gap for a slightly distorted final
// item.
func (r row) finalize(containerWidth, targetRowHeight float64, opts Options) ([]PlacedItem, float64) {
	n := len(r.items)
	if n == 0 || r.sum <= 0 {
		return nil, 0
	}

	gutter := opts.gutter()
	usable := containerWidth - gutter*float64(n-1)

	var rowHeight float64
	switch {
	case !r.last:
		rowHeight = usable / r.sum
	case opts.LastRowCapMultiplier > 0:
		rowHeight = math.Min(usable/r.sum, targetRowHeight*opts.LastRowCapMultiplier)
	default:
		rowHeight = targetRowHeight
	}

	// Extreme aspect sums can push rowHeight below one pixel; keep the placed
	// height positive so the y cursor always advances.
	itemHeight := math.Max(math.Floor(rowHeight), 1)
	placed := make([]PlacedItem, 0, n)

	x := 0.0
	for i, it := range r.items {
		w := math.Floor(rowHeight * it.Aspect())
		if !r.last && opts.SnapLastToEdge && i == n-1 {
			w = containerWidth - x
		}
		placed = append(placed, PlacedItem{
			Item:    it,
			X:       x,
			Y:       r.y,
			Width:   w,
			Height:  itemHeight,
			LastRow: r.last,
		})
		x += w + gutter
	}

	return placed, itemHeight
}
