// Package storage persists uploaded files (profile pictures, outfit
// images). Handlers depend on the BlobStore interface so tests can swap in
// an in-memory implementation.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore stores named binary blobs. Save returns the generated filename
// under which the blob was stored; that name is what goes into the database.
type BlobStore interface {
	Save(originalName string, r io.Reader) (string, error)
	Remove(filename string) error
}

// DiskStore keeps blobs as flat files under one directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the blob under a random name, keeping the original extension.
// The original name never reaches the filesystem; clients control it.
func (s *DiskStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	name := hex.EncodeToString(buf) + ext
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return name, nil
}

// Remove deletes a stored blob. A missing file is not an error; the row it
// backed may already be gone.
func (s *DiskStore) Remove(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(filename)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
