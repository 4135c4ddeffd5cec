package store

import (
	"context"
	"sort"
	"sync"

	"github.com/nakamurapomeo/collage-app/pkg/album"
)

// MemoryStore keeps albums in process memory. It is safe for concurrent use
// and is the default backend for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	albums map[string]album.Album
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{albums: make(map[string]album.Album)}
}

// Get retrieves an album by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (album.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.albums[id]
	if !ok {
		return album.Album{}, ErrNotFound
	}
	return a, nil
}

// List returns all stored albums, ordered by name.
func (s *MemoryStore) List(ctx context.Context) ([]album.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]album.Album, 0, len(s.albums))
	for _, a := range s.albums {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Put stores an album, replacing any existing album with the same ID.
func (s *MemoryStore) Put(ctx context.Context, a album.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.albums[a.ID] = a
	return nil
}

// Delete removes an album. Deleting a missing album is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.albums, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
