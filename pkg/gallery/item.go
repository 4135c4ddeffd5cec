package gallery

import "math"

// FallbackAspect is the aspect ratio assumed for items whose dimensions are
// missing or degenerate (zero, negative, or non-finite).
const FallbackAspect = 1.0

// Item is one rectangular element to be placed: a photo, a text block, or any
// other content the caller wants laid out. The packer only reads the aspect
// ratio and the pinned flag; every other field is caller-owned payload that
// is carried through to the output unchanged.
//
// The zero value is usable and resolves to a square aspect ratio.
type Item struct {
	// ID identifies the item to the caller. The packer never interprets it.
	ID string

	// AspectRatio is the width/height ratio. When zero (or invalid) it is
	// derived from Width and Height, falling back to FallbackAspect when
	// those are missing too.
	AspectRatio float64

	// Width and Height are the source dimensions in caller units (usually
	// source image pixels). They are only consulted when AspectRatio is
	// unset and are never modified.
	Width  float64
	Height float64

	// Pinned items are moved to the front of the gallery before packing,
	// keeping their relative order.
	Pinned bool

	// Source references the underlying content (file path, URL, object key).
	Source string

	// Caption is optional display text carried through to the output.
	Caption string

	// Meta holds arbitrary caller metadata. The packer passes it through
	// without copying, so callers must not rely on isolation.
	Meta map[string]any
}

// Aspect resolves the item's aspect ratio per the rules above. The result is
// always a finite positive number, so downstream arithmetic never sees a zero
// or negative divisor.
func (it Item) Aspect() float64 {
	if isUsableRatio(it.AspectRatio) {
		return it.AspectRatio
	}
	if isUsableRatio(it.Width) && isUsableRatio(it.Height) {
		return it.Width / it.Height
	}
	return FallbackAspect
}

func isUsableRatio(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// PlacedItem is an Item annotated with its computed position and render size
// in container-local coordinates (origin top-left, y growing downward).
type PlacedItem struct {
	Item Item

	X      float64
	Y      float64
	Width  float64
	Height float64

	// LastRow marks items in the trailing, non-justified row.
	LastRow bool
}

// Layout is the result of packing a full item list: the placed items in row
// order plus the overall dimensions the container needs to display them.
type Layout struct {
	Items []PlacedItem

	// Width is the container width the layout was computed for.
	Width float64

	// Height is the total vertical extent: the y coordinate just below the
	// last row, including inter-row gutters.
	Height float64

	// Rows is the number of rows emitted, counting the trailing partial row.
	Rows int
}
