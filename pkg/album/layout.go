package album

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nakamurapomeo/collage-app/pkg/gallery"
)

// Placed is the serialized form of one placed item: the item plus its
// computed geometry in container-local coordinates.
type Placed struct {
	Item Item `json:"item" bson:"item"`

	X       float64 `json:"x" bson:"x"`
	Y       float64 `json:"y" bson:"y"`
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	LastRow bool    `json:"last_row,omitempty" bson:"last_row,omitempty"`
}

// Layout is the serialized result of a pack run, including the parameters it
// was computed with so consumers can re-derive or invalidate it.
type Layout struct {
	// Parameters
	Width           float64 `json:"width" bson:"width"`
	TargetRowHeight float64 `json:"target_row_height" bson:"target_row_height"`
	Gutter          float64 `json:"gutter,omitempty" bson:"gutter,omitempty"`
	SnapLastToEdge  bool    `json:"snap_last_to_edge,omitempty" bson:"snap_last_to_edge,omitempty"`
	LastRowCap      float64 `json:"last_row_cap,omitempty" bson:"last_row_cap,omitempty"`

	// Results
	Height float64  `json:"height" bson:"height"`
	Rows   int      `json:"rows" bson:"rows"`
	Items  []Placed `json:"items" bson:"items"`
}

// Export converts a packed gallery layout to the serialization format,
// recording the parameters used to compute it.
func Export(l gallery.Layout, target float64, opts gallery.Options) Layout {
	out := Layout{
		Width:           l.Width,
		TargetRowHeight: target,
		Gutter:          opts.Gutter,
		SnapLastToEdge:  opts.SnapLastToEdge,
		LastRowCap:      opts.LastRowCapMultiplier,
		Height:          l.Height,
		Rows:            l.Rows,
		Items:           make([]Placed, len(l.Items)),
	}
	for i, p := range l.Items {
		out.Items[i] = Placed{
			Item:    FromGalleryItem(p.Item),
			X:       p.X,
			Y:       p.Y,
			Width:   p.Width,
			Height:  p.Height,
			LastRow: p.LastRow,
		}
	}
	return out
}

// Parse converts a serialized layout back to the packer's output type.
func Parse(l Layout) gallery.Layout {
	out := gallery.Layout{
		Width:  l.Width,
		Height: l.Height,
		Rows:   l.Rows,
		Items:  make([]gallery.PlacedItem, len(l.Items)),
	}
	for i, p := range l.Items {
		items := p.Item
		out.Items[i] = gallery.PlacedItem{
			Item: gallery.Item{
				ID:          items.ID,
				AspectRatio: items.AspectRatio,
				Width:       items.Width,
				Height:      items.Height,
				Pinned:      items.Pinned,
				Source:      items.Source,
				Caption:     items.Caption,
				Meta:        items.Meta,
			},
			X:       p.X,
			Y:       p.Y,
			Width:   p.Width,
			Height:  p.Height,
			LastRow: p.LastRow,
		}
	}
	return out
}

// Options reconstructs the pack options the layout was computed with.
func (l Layout) Options() gallery.Options {
	return gallery.Options{
		Gutter:               l.Gutter,
		SnapLastToEdge:       l.SnapLastToEdge,
		LastRowCapMultiplier: l.LastRowCap,
	}
}

// MarshalLayout serializes a layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that the document carries the parameters needed to reproduce it.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 {
		return Layout{}, fmt.Errorf("layout must have a positive width")
	}
	if l.TargetRowHeight <= 0 {
		return Layout{}, fmt.Errorf("layout must have a positive target row height")
	}
	return l, nil
}

// WriteLayoutFile writes a layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
