// Package store keeps captured images in memory under random UUIDs.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fotoshot/annotate"
)

var (
	// ErrInvalidID is returned when an image ID is not a UUID.
	ErrInvalidID = errors.New("store: invalid image ID")

	// ErrNotFound is returned when no image has the given ID.
	ErrNotFound = errors.New("store: image not found")
)

// Store maps IDs to images. Stored pixmaps are shared with callers and must
// be treated as read-only; compositing always works on a copy.
//
// Store is safe for concurrent use. The zero value is an empty store.
type Store struct {
	mu     sync.RWMutex
	images map[uuid.UUID]*annotate.Pixmap
}

// New creates an empty store.
func New() *Store {
	return &Store{images: make(map[uuid.UUID]*annotate.Pixmap)}
}

// Insert stores pm under a new random ID and returns the ID.
func (s *Store) Insert(pm *annotate.Pixmap) uuid.UUID {
	id := uuid.New()
	s.Put(id, pm)
	return id
}

// Put stores pm under id, replacing any previous image.
func (s *Store) Put(id uuid.UUID, pm *annotate.Pixmap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.images == nil {
		s.images = make(map[uuid.UUID]*annotate.Pixmap)
	}
	s.images[id] = pm
}

// Get returns the image stored under id.
func (s *Store) Get(id uuid.UUID) (*annotate.Pixmap, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pm, ok := s.images[id]
	return pm, ok
}

// Lookup parses id and returns the stored image, failing with ErrInvalidID
// or ErrNotFound.
func (s *Store) Lookup(id string) (*annotate.Pixmap, error) {
	uid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	pm, ok := s.Get(uid)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return pm, nil
}

// Remove deletes and returns the image stored under id.
func (s *Store) Remove(id uuid.UUID) (*annotate.Pixmap, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pm, ok := s.images[id]
	delete(s.images, id)
	return pm, ok
}

// Len returns the number of stored images.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// ParseID parses a UUID in any of the forms uuid.Parse accepts.
func ParseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w %q: %w", ErrInvalidID, id, err)
	}
	return uid, nil
}
