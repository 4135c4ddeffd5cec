// Package album defines the serialization formats for the collage
// application: albums (ordered item lists supplied by callers) and layouts
// (the packed output). Both are plain JSON documents and double as the Mongo
// document shapes via bson tags.
//
// The core packer in pkg/gallery works on its own in-memory types; this
// package converts between those and the wire format, mirroring the split
// between computation types and interchange types used throughout the
// codebase.
package album

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nakamurapomeo/collage-app/pkg/gallery"
)

// Item is the serialized form of one gallery item. Dimension fields are
// optional; pkg/gallery resolves a usable aspect ratio from whatever is
// present (see gallery.Item.Aspect).
type Item struct {
	ID          string         `json:"id,omitempty" bson:"id,omitempty"`
	AspectRatio float64        `json:"aspect_ratio,omitempty" bson:"aspect_ratio,omitempty"`
	Width       float64        `json:"width,omitempty" bson:"width,omitempty"`
	Height      float64        `json:"height,omitempty" bson:"height,omitempty"`
	Pinned      bool           `json:"pinned,omitempty" bson:"pinned,omitempty"`
	Source      string         `json:"source,omitempty" bson:"source,omitempty"`
	Caption     string         `json:"caption,omitempty" bson:"caption,omitempty"`
	Meta        map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Album is an ordered collection of items owned by one caller. The packer
// never sees albums directly; callers load one, convert with
// [Album.GalleryItems], and pack.
type Album struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Items     []Item    `json:"items" bson:"items"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// GalleryItems converts the album's items to the packer's input type.
func (a *Album) GalleryItems() []gallery.Item {
	items := make([]gallery.Item, len(a.Items))
	for i, it := range a.Items {
		items[i] = gallery.Item{
			ID:          it.ID,
			AspectRatio: it.AspectRatio,
			Width:       it.Width,
			Height:      it.Height,
			Pinned:      it.Pinned,
			Source:      it.Source,
			Caption:     it.Caption,
			Meta:        it.Meta,
		}
	}
	return items
}

// FromGalleryItem converts a packer item back to the serialized form.
func FromGalleryItem(it gallery.Item) Item {
	return Item{
		ID:          it.ID,
		AspectRatio: it.AspectRatio,
		Width:       it.Width,
		Height:      it.Height,
		Pinned:      it.Pinned,
		Source:      it.Source,
		Caption:     it.Caption,
		Meta:        it.Meta,
	}
}

// MarshalAlbum serializes an album to pretty-printed JSON bytes.
func MarshalAlbum(a Album) ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// UnmarshalAlbum deserializes JSON bytes into an Album.
// An album must contain an items array (possibly empty); documents without
// one are rejected so layout commands fail early on the wrong file kind.
func UnmarshalAlbum(data []byte) (Album, error) {
	var a Album
	if err := json.Unmarshal(data, &a); err != nil {
		return Album{}, fmt.Errorf("unmarshal album: %w", err)
	}
	if a.Items == nil {
		return Album{}, fmt.Errorf("album must contain an items array")
	}
	return a, nil
}

// WriteAlbumFile writes an album to a JSON file.
func WriteAlbumFile(a Album, path string) error {
	data, err := MarshalAlbum(a)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadAlbumFile reads an album from a JSON file.
func ReadAlbumFile(path string) (Album, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Album{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalAlbum(data)
}
