package pipeline

import (
	"github.com/nakamurapomeo/collage-app/pkg/album"
	"github.com/nakamurapomeo/collage-app/pkg/errors"
	"github.com/nakamurapomeo/collage-app/pkg/gallery"
)

// GenerateLayout packs the album's items into justified rows.
// This is the pure pack stage; caching and probing live on the Runner.
func GenerateLayout(a album.Album, opts Options) (album.Layout, error) {
	if err := opts.ValidateForPack(); err != nil {
		return album.Layout{}, err
	}

	l, err := gallery.PackLayout(a.GalleryItems(), opts.Width, opts.TargetRowHeight, opts.GalleryOptions())
	if err != nil {
		return album.Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "pack %q", a.Name)
	}
	return album.Export(l, opts.TargetRowHeight, opts.GalleryOptions()), nil
}
