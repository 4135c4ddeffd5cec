// Package store persists albums between packing runs.
//
// The packer itself is stateless; the embedding application keeps the item
// lists somewhere and re-packs on every mutation. This package defines the
// storage interface that the CLI and HTTP server program against, with two
// backends:
//   - memory: in-process storage for development and tests
//   - mongo: MongoDB-backed storage for server deployments
package store

import (
	"context"
	"errors"

	"github.com/nakamurapomeo/collage-app/pkg/album"
)

// ErrNotFound is returned when an album with the requested ID does not exist.
var ErrNotFound = errors.New("album not found")

// Store is the interface for album storage backends.
type Store interface {
	// Get retrieves an album by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (album.Album, error)

	// List returns all stored albums, ordered by name.
	List(ctx context.Context) ([]album.Album, error)

	// Put stores an album, replacing any existing album with the same ID.
	Put(ctx context.Context, a album.Album) error

	// Delete removes an album. Deleting a missing album is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
