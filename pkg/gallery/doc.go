// Package gallery implements the row-justified layout algorithm at the heart
// of the collage application.
//
// The packer consumes an ordered list of rectangular items of varying aspect
// ratio and places them into horizontal rows that exactly fill a container
// width, in the style of justified photo galleries: every item in a row
// shares the row's height, and the height is chosen so the row's total width
// matches the container. Row breaks are decided greedily with a
// closest-to-target rule - each row ends at the point where its height
// deviates least from the caller's target row height.
//
// The trailing row is treated differently: it is usually incomplete, so it is
// rendered at the target height (or optionally capped, see
// [Options.LastRowCapMultiplier]) and left-aligned rather than stretched.
//
// # Usage
//
//	items := []gallery.Item{
//	    {ID: "a", AspectRatio: 1.5},
//	    {ID: "b", Width: 400, Height: 300},
//	    {ID: "c"}, // falls back to a square aspect
//	}
//	placed, err := gallery.Pack(items, 1200, 180, gallery.Options{Gutter: 4})
//
// The packer is a pure function: it holds no state between calls, performs no
// I/O, and may be invoked concurrently from any number of goroutines. Callers
// re-run it in full whenever an input changes (item added, container resized,
// target height adjusted); there is no incremental mode.
package gallery
