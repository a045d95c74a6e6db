package sealbox

import (
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// KeyStorage persists opaque private key reference blobs by tag. The blobs
// are never interpreted; for hardware-backed keys they contain a key
// reference, for software keys the key material itself.
//
// Get must return ErrKeyNotFound (possibly wrapped) when no blob exists
// under the tag; any other error is treated as a storage failure.
// Implementations must be safe for concurrent use.
type KeyStorage interface {
	// Put stores a blob under the tag, replacing any existing blob.
	Put(tag string, blob []byte) error

	// Get returns the blob stored under the tag.
	Get(tag string) ([]byte, error)

	// Delete removes the blob stored under the tag. Deleting an absent tag
	// returns ErrKeyNotFound.
	Delete(tag string) error
}

// MemoryStorage is an in-memory KeyStorage. Contents are lost when the
// process exits; intended for tests and ephemeral identities.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

// Put stores a copy of the blob under the tag.
func (s *MemoryStorage) Put(tag string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[tag] = stored
	return nil
}

// Get returns a copy of the blob stored under the tag.
func (s *MemoryStorage) Get(tag string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[tag]
	if !ok {
		return nil, ErrKeyNotFound
	}

	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// Delete removes the blob stored under the tag.
func (s *MemoryStorage) Delete(tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[tag]; !ok {
		return ErrKeyNotFound
	}
	delete(s.blobs, tag)
	return nil
}

// FileStorage is a KeyStorage that keeps one file per tag under a directory.
// Tags are encoded into filenames, so arbitrary tag strings are safe.
type FileStorage struct {
	dir string
}

// NewFileStorage returns a file-backed storage rooted at dir, creating the
// directory if it does not exist.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(tag string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(tag)) + ".key"
	return filepath.Join(s.dir, name)
}

// Put writes the blob to the tag's file with owner-only permissions.
func (s *FileStorage) Put(tag string, blob []byte) error {
	return os.WriteFile(s.path(tag), blob, 0o600)
}

// Get reads the blob from the tag's file.
func (s *FileStorage) Get(tag string) ([]byte, error) {
	blob, err := os.ReadFile(s.path(tag))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

// Delete removes the tag's file.
func (s *FileStorage) Delete(tag string) error {
	err := os.Remove(s.path(tag))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrKeyNotFound
	}
	return err
}
