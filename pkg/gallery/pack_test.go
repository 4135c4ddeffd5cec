package gallery

import (
	"math"
	"testing"
)

// rowsOf groups placed items by their y offset, preserving row order.
func rowsOf(placed []PlacedItem) [][]PlacedItem {
	var rows [][]PlacedItem
	for _, p := range placed {
		if len(rows) == 0 || rows[len(rows)-1][0].Y != p.Y {
			rows = append(rows, []PlacedItem{p})
			continue
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], p)
	}
	return rows
}

func TestPackRejectsDegenerateInputs(t *testing.T) {
	items := []Item{{AspectRatio: 1}}

	tests := []struct {
		name    string
		width   float64
		target  float64
		wantErr error
	}{
		{"zero width", 0, 150, ErrContainerWidth},
		{"negative width", -10, 150, ErrContainerWidth},
		{"NaN width", math.NaN(), 150, ErrContainerWidth},
		{"infinite width", math.Inf(1), 150, ErrContainerWidth},
		{"zero target", 400, 0, ErrTargetRowHeight},
		{"negative target", 400, -1, ErrTargetRowHeight},
		{"NaN target", 400, math.NaN(), ErrTargetRowHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(items, tt.width, tt.target, Options{})
			if err != tt.wantErr {
				t.Errorf("Pack() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPackEmptyInput(t *testing.T) {
	placed, err := Pack(nil, 400, 150, Options{})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if len(placed) != 0 {
		t.Errorf("Pack(nil) returned %d items, want 0", len(placed))
	}

	l, err := PackLayout(nil, 400, 150, Options{})
	if err != nil {
		t.Fatalf("PackLayout() error = %v", err)
	}
	if l.Height != 0 || l.Rows != 0 {
		t.Errorf("empty layout = height %v rows %d, want 0 and 0", l.Height, l.Rows)
	}
}

// The worked example from the layout contract: aspect ratios [2, 1, 1] in a
// 400-wide container targeting 150. Items one and two justify into the first
// row at height floor(400/3)=133; item three becomes the trailing row at the
// target height.
func TestPackWorkedExample(t *testing.T) {
	items := []Item{
		{ID: "a", AspectRatio: 2},
		{ID: "b", AspectRatio: 1},
		{ID: "c", AspectRatio: 1},
	}

	placed, err := Pack(items, 400, 150, Options{})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if len(placed) != 3 {
		t.Fatalf("Pack() returned %d items, want 3", len(placed))
	}

	rows := rowsOf(placed)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if len(first) != 2 {
		t.Fatalf("first row has %d items, want 2", len(first))
	}
	if first[0].Height != 133 || first[1].Height != 133 {
		t.Errorf("first row heights = %v, %v, want 133", first[0].Height, first[1].Height)
	}
	if first[0].Width != 266 {
		t.Errorf("first item width = %v, want 266", first[0].Width)
	}
	if first[1].Width != 133 {
		t.Errorf("second item width = %v, want 133", first[1].Width)
	}
	if first[0].LastRow || first[1].LastRow {
		t.Error("first row must not be flagged as last")
	}

	trailing := rows[1]
	if len(trailing) != 1 {
		t.Fatalf("trailing row has %d items, want 1", len(trailing))
	}
	got := trailing[0]
	if got.Y != 133 {
		t.Errorf("trailing row y = %v, want 133", got.Y)
	}
	if got.Height != 150 || got.Width != 150 {
		t.Errorf("trailing item = %vx%v, want 150x150", got.Width, got.Height)
	}
	if got.X != 0 {
		t.Errorf("trailing row must be left-aligned, x = %v", got.X)
	}
	if !got.LastRow {
		t.Error("trailing row items must be flagged LastRow")
	}
}

// Exact-equality boundary: five unit squares in a 500-wide container with
// target 100 reach h == target exactly at the fifth item. The >= comparator
// keeps accumulating, so all five stay in one (trailing) row; a sixth item
// forces the break and the first five become a justified row of height 100.
func TestPackExactTargetBoundary(t *testing.T) {
	unit := func(n int) []Item {
		items := make([]Item, n)
		for i := range items {
			items[i].AspectRatio = 1
		}
		return items
	}

	placed, err := Pack(unit(5), 500, 100, Options{})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	rows := rowsOf(placed)
	if len(rows) != 1 || len(rows[0]) != 5 {
		t.Fatalf("5 items: got %d rows (first has %d items), want 1 row of 5", len(rows), len(rows[0]))
	}

	placed, err = Pack(unit(6), 500, 100, Options{})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	rows = rowsOf(placed)
	if len(rows) != 2 {
		t.Fatalf("6 items: got %d rows, want 2", len(rows))
	}
	if len(rows[0]) != 5 {
		t.Errorf("6 items: first row has %d items, want 5", len(rows[0]))
	}
	for _, p := range rows[0] {
		if p.Height != 100 {
			t.Errorf("justified row height = %v, want 100", p.Height)
		}
		if p.LastRow {
			t.Error("justified row must not be flagged LastRow")
		}
	}
	if !rows[1][0].LastRow {
		t.Error("sixth item must land in the trailing row")
	}
}

// A single item already below target on first insertion must still be
// included (empty-buffer baseline counts as infinitely far from target) and
// forms a completed, justified row of its own.
func TestPackSingleWideItem(t *testing.T) {
	placed, err := Pack([]Item{{AspectRatio: 8}}, 400, 150, Options{})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if len(placed) != 1 {
		t.Fatalf("Pack() returned %d items, want 1", len(placed))
	}
	if placed[0].LastRow {
		t.Error("a row closed at a decision point is justified, not trailing")
	}
	// Justified alone: height is the exact fit 400/8.
	if placed[0].Height != 50 || placed[0].Width != 400 {
		t.Errorf("geometry = %vx%v, want 400x50", placed[0].Width, placed[0].Height)
	}
}

// A single narrow item never reaches a decision point, so it lands in the
// trailing row at the target height.
func TestPackSingleNarrowItem(t *testing.T) {
	placed, err := Pack([]Item{{AspectRatio: 1}}, 400, 150, Options{})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if len(placed) != 1 {
		t.Fatalf("Pack() returned %d items, want 1", len(placed))
	}
	if !placed[0].LastRow {
		t.Error("item must land in the trailing row")
	}
	if placed[0].Height != 150 || placed[0].Width != 150 {
		t.Errorf("geometry = %vx%v, want 150x150", placed[0].Width, placed[0].Height)
	}
}

// An extreme aspect sum can push the exact row height below one pixel.
// Placed heights stay at least 1 so the y cursor never stalls.
func TestPackExtremeAspectClampsHeight(t *testing.T) {
	l, err := PackLayout([]Item{{AspectRatio: 1000}, {AspectRatio: 1}}, 400, 150, Options{})
	if err != nil {
		t.Fatalf("PackLayout() error = %v", err)
	}
	if got := l.Items[0].Height; got != 1 {
		t.Errorf("sub-pixel row height = %v, want clamp to 1", got)
	}
	if l.Items[1].Y <= l.Items[0].Y {
		t.Errorf("second row y = %v, must advance past first row y = %v", l.Items[1].Y, l.Items[0].Y)
	}
}

func TestPackLastRowCapMultiplier(t *testing.T) {
	// A lone unit square in an 800-wide container has natural height 800.
	items := []Item{{AspectRatio: 1}}

	l, err := PackLayout(items, 800, 200, Options{LastRowCapMultiplier: 1.5})
	if err != nil {
		t.Fatalf("PackLayout() error = %v", err)
	}
	if got := l.Items[0].Height; got != 300 {
		t.Errorf("capped trailing height = %v, want 300 (1.5x target)", got)
	}

	// When the natural height is already below the cap it is kept.
	items = []Item{{AspectRatio: 4}}
	l, err = PackLayout(items, 800, 200, Options{LastRowCapMultiplier: 1.5})
	if err != nil {
		t.Fatalf("PackLayout() error = %v", err)
	}
	if got := l.Items[0].Height; got != 200 {
		t.Errorf("natural trailing height = %v, want 200 (800/4)", got)
	}
}

func TestPackPinnedFirst(t *testing.T) {
	items := []Item{
		{ID: "a", AspectRatio: 1},
		{ID: "b", AspectRatio: 1, Pinned: true},
		{ID: "c", AspectRatio: 1},
		{ID: "d", AspectRatio: 1, Pinned: true},
	}

	placed, err := Pack(items, 400, 100, Options{})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	want := []string{"b", "d", "a", "c"}
	for i, id := range want {
		if placed[i].Item.ID != id {
			t.Errorf("placed[%d] = %q, want %q", i, placed[i].Item.ID, id)
		}
	}
}

// Geometry invariants over a varied input: width containment, uniform row
// height, monotonically increasing y, and no horizontal overlap.
func TestPackGeometryInvariants(t *testing.T) {
	items := []Item{
		{AspectRatio: 1.78}, {AspectRatio: 0.66}, {AspectRatio: 1.0},
		{AspectRatio: 2.35}, {AspectRatio: 1.5}, {AspectRatio: 0.8},
		{AspectRatio: 1.33}, {AspectRatio: 1.0}, {AspectRatio: 3.2},
		{AspectRatio: 0.5}, {AspectRatio: 1.78}, {AspectRatio: 1.2},
	}

	for _, opts := range []Options{
		{},
		{Gutter: 8},
		{SnapLastToEdge: true},
		{Gutter: 4, SnapLastToEdge: true},
		{Gutter: 4, LastRowCapMultiplier: 1.5},
	} {
		const width, target = 1200.0, 180.0

		l, err := PackLayout(items, width, target, opts)
		if err != nil {
			t.Fatalf("PackLayout(%+v) error = %v", opts, err)
		}
		if len(l.Items) != len(items) {
			t.Fatalf("opts %+v: %d items placed, want %d", opts, len(l.Items), len(items))
		}

		rows := rowsOf(l.Items)
		if l.Rows != len(rows) {
			t.Errorf("opts %+v: Rows = %d, observed %d", opts, l.Rows, len(rows))
		}

		prevBottom := 0.0
		for ri, r := range rows {
			lastRow := ri == len(rows)-1

			// Uniform height and no overlap within the row.
			for i, p := range r {
				if p.Height != r[0].Height {
					t.Errorf("opts %+v row %d: mixed heights %v and %v", opts, ri, p.Height, r[0].Height)
				}
				if i > 0 {
					prev := r[i-1]
					if prev.X+prev.Width > p.X {
						t.Errorf("opts %+v row %d: items %d and %d overlap", opts, ri, i-1, i)
					}
				}
			}

			// Width containment: justified rows fill the container to
			// within one floor-rounding loss per item (exactly when
			// snapping).
			if !lastRow {
				total := opts.Gutter * float64(len(r)-1)
				for _, p := range r {
					total += p.Width
				}
				if opts.SnapLastToEdge {
					if total != width {
						t.Errorf("opts %+v row %d: snapped width sum = %v, want %v", opts, ri, total, width)
					}
				} else if total > width || width-total > float64(len(r)) {
					t.Errorf("opts %+v row %d: width sum = %v, want within %d of %v", opts, ri, total, len(r), width)
				}
			}

			// Monotonic y across rows.
			if ri > 0 {
				wantY := prevBottom + opts.Gutter
				if r[0].Y != wantY {
					t.Errorf("opts %+v row %d: y = %v, want %v", opts, ri, r[0].Y, wantY)
				}
			}
			prevBottom = r[0].Y + r[0].Height
		}

		if l.Height != prevBottom {
			t.Errorf("opts %+v: layout height = %v, want %v", opts, l.Height, prevBottom)
		}
	}
}

// Packing the packer's own output (aspect ratios re-derived from the placed
// width/height) reproduces the same geometry.
func TestPackIdempotence(t *testing.T) {
	items := []Item{
		{AspectRatio: 1.78}, {AspectRatio: 0.66}, {AspectRatio: 1.0},
		{AspectRatio: 2.35}, {AspectRatio: 1.5}, {AspectRatio: 0.8},
	}
	const width, target = 900.0, 160.0

	first, err := Pack(items, width, target, Options{})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	rederived := make([]Item, len(first))
	for i, p := range first {
		rederived[i] = Item{Width: p.Width, Height: p.Height}
	}

	second, err := Pack(rederived, width, target, Options{})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	for i := range first {
		a, b := first[i], second[i]
		if math.Abs(a.X-b.X) > 1 || a.Y != b.Y ||
			math.Abs(a.Width-b.Width) > 1 || a.Height != b.Height {
			t.Errorf("item %d moved: first %+v, second %+v",
				i, [4]float64{a.X, a.Y, a.Width, a.Height}, [4]float64{b.X, b.Y, b.Width, b.Height})
		}
	}
}

func TestPackGutterReducesRowHeight(t *testing.T) {
	items := []Item{{AspectRatio: 1}, {AspectRatio: 1}, {AspectRatio: 1}, {AspectRatio: 1}}

	// Without a gutter: four unit squares in 400 justify at height 100...
	plain, err := Pack(items[:4], 400, 90, Options{})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	// ...exact target boundary is not hit here (400/4=100 >= 90 keeps
	// accumulating, input ends), so this is the trailing row at height 90.
	if !plain[0].LastRow {
		t.Fatal("expected trailing row without enough items to break")
	}

	// Justified case: a fifth item forces a break after four, and the row
	// height accounts for the three intra-row gutters: (400 - 30)/4 = 92.5.
	five := append(items, Item{AspectRatio: 1})
	gut, err := Pack(five, 400, 95, Options{Gutter: 10})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	rows := rowsOf(gut)
	if len(rows) < 2 {
		t.Fatalf("got %d rows, want at least 2", len(rows))
	}
	justified := rows[0]
	n := len(justified)
	want := math.Floor((400 - 10*float64(n-1)) / float64(n))
	if justified[0].Height != want {
		t.Errorf("gutter row height = %v, want %v", justified[0].Height, want)
	}
}
