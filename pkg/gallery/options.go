package gallery

// Options tunes the packing policies that vary between gallery surfaces.
// The zero value gives the default behavior: no gutter, floor-rounded widths
// without edge snapping, and a trailing row rendered at exactly the target
// height.
type Options struct {
	// Gutter is a fixed spacing in container units inserted between items in
	// a row and between consecutive rows. Negative values are treated as 0.
	Gutter float64

	// SnapLastToEdge stretches the final item of every justified row so the
	// row's right edge lands exactly on the container boundary, absorbing
	// the sub-pixel drift that floor rounding leaves behind. The snapped
	// item's aspect ratio is slightly distorted.
	SnapLastToEdge bool

	// LastRowCapMultiplier switches the trailing row to its natural
	// justified height, capped at multiplier*targetRowHeight. At 0 (the
	// default) the trailing row always uses the target height directly.
	LastRowCapMultiplier float64
}

func (o Options) gutter() float64 {
	if o.Gutter < 0 {
		return 0
	}
	return o.Gutter
}
