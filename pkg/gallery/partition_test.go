package gallery

import "testing"

func TestPartitionPinned(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  []string
	}{
		{
			name:  "no pinned items is identity",
			items: []Item{{ID: "a"}, {ID: "b"}, {ID: "c"}},
			want:  []string{"a", "b", "c"},
		},
		{
			name: "pinned move to front in original order",
			items: []Item{
				{ID: "a"},
				{ID: "b", Pinned: true},
				{ID: "c"},
				{ID: "d", Pinned: true},
			},
			want: []string{"b", "d", "a", "c"},
		},
		{
			name: "all pinned is identity",
			items: []Item{
				{ID: "a", Pinned: true},
				{ID: "b", Pinned: true},
			},
			want: []string{"a", "b"},
		},
		{
			name:  "empty input",
			items: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PartitionPinned(tt.items)
			if len(got) != len(tt.want) {
				t.Fatalf("PartitionPinned() returned %d items, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("item %d = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestPartitionPinnedDoesNotMutateInput(t *testing.T) {
	items := []Item{
		{ID: "a"},
		{ID: "b", Pinned: true},
	}
	_ = PartitionPinned(items)

	if items[0].ID != "a" || items[1].ID != "b" {
		t.Errorf("input slice was reordered: %v", items)
	}
}
