package gallery

// PartitionPinned reorders items so that all pinned items come first,
// preserving the original relative order within both groups. This is a
// stable two-bucket partition, not a sort; when nothing is pinned the input
// order is returned unchanged.
//
// The returned slice is freshly allocated only when at least one item is
// pinned; otherwise it aliases the input.
func PartitionPinned(items []Item) []Item {
	pinned := 0
	for _, it := range items {
		if it.Pinned {
			pinned++
		}
	}
	if pinned == 0 {
		return items
	}

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Pinned {
			out = append(out, it)
		}
	}
	for _, it := range items {
		if !it.Pinned {
			out = append(out, it)
		}
	}
	return out
}
