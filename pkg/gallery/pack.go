package gallery

import (
	"errors"
	"math"
)

var (
	// ErrContainerWidth is returned by [Pack] when the container width is
	// zero, negative, or not finite. Packing into a degenerate container
	// would produce NaN or negative geometry, so it is rejected up front.
	ErrContainerWidth = errors.New("container width must be a positive finite number")

	// ErrTargetRowHeight is returned by [Pack] when the target row height is
	// zero, negative, or not finite.
	ErrTargetRowHeight = errors.New("target row height must be a positive finite number")
)

// Pack lays the items out into a justified grid of the given container width,
// aiming each row's height at targetRowHeight. It returns the placed items in
// row order: all of row one left to right, then row two, and so on, with the
// trailing partial row last.
//
// Pinned items are moved to the front before packing (see [PartitionPinned]);
// order is otherwise preserved. An empty input yields an empty, non-nil
// result and no error.
func Pack(items []Item, containerWidth, targetRowHeight float64, opts Options) ([]PlacedItem, error) {
	l, err := PackLayout(items, containerWidth, targetRowHeight, opts)
	if err != nil {
		return nil, err
	}
	return l.Items, nil
}

// PackLayout is [Pack] plus the overall layout dimensions: total height
// (including inter-row gutters) and row count. UI surfaces need the height to
// size scroll regions without re-deriving it from the last row.
func PackLayout(items []Item, containerWidth, targetRowHeight float64, opts Options) (Layout, error) {
	if containerWidth <= 0 || math.IsNaN(containerWidth) || math.IsInf(containerWidth, 0) {
		return Layout{}, ErrContainerWidth
	}
	if targetRowHeight <= 0 || math.IsNaN(targetRowHeight) || math.IsInf(targetRowHeight, 0) {
		return Layout{}, ErrTargetRowHeight
	}

	ordered := PartitionPinned(items)
	gutter := opts.gutter()

	l := Layout{
		Items: make([]PlacedItem, 0, len(ordered)),
		Width: containerWidth,
	}

	y := 0.0
	emit := func(r row) {
		placed, height := r.finalize(containerWidth, targetRowHeight, opts)
		if len(placed) == 0 {
			return
		}
		l.Items = append(l.Items, placed...)
		l.Rows++
		y = r.y + height
	}

	var buf row
	for _, it := range ordered {
		a := it.Aspect()
		grown := containerWidth / (buf.sum + a)

		// Row still at or above target height: not enough items yet to
		// bring it down to target, keep accumulating.
		if grown >= targetRowHeight {
			buf.items = append(buf.items, it)
			buf.sum += a
			continue
		}

		// Adding this item drops the row below target. Break wherever the
		// height lands closer to target; an empty buffer counts as
		// infinitely far so a single oversized item is still included.
		prev := math.Inf(1)
		if len(buf.items) > 0 {
			prev = containerWidth / buf.sum
		}
		if math.Abs(prev-targetRowHeight) <= math.Abs(grown-targetRowHeight) {
			emit(buf)
			buf = row{items: []Item{it}, sum: a, y: y + gutter}
			continue
		}

		buf.items = append(buf.items, it)
		buf.sum += a
		emit(buf)
		buf = row{y: y + gutter}
	}

	if len(buf.items) > 0 {
		buf.last = true
		emit(buf)
	}

	l.Height = y
	return l, nil
}
