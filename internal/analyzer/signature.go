package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
)

// FileEntry is the clustering engine's view of one input file. The Path
// string is its identity; Size, LastModified and the content hash are only
// populated for content-aware grouping.
type FileEntry struct {
	Path         string
	Name         string
	Size         uint64
	LastModified uint64

	// Content hash state. The digest is computed at most once per entry;
	// hashed marks the transition from "not yet computed" to "computed".
	hash   string
	hashed bool
}

// NewFileEntry builds a name-only entry. The path needs not exist on disk.
func NewFileEntry(path string) *FileEntry {
	return &FileEntry{
		Path: path,
		Name: filepath.Base(path),
	}
}

// StatFileEntry builds an entry with size and modification time from disk
func StatFileEntry(path string) (*FileEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	entry := NewFileEntry(path)
	entry.Size = uint64(info.Size())
	if mod := info.ModTime(); !mod.IsZero() {
		entry.LastModified = uint64(mod.Unix())
	}
	return entry, nil
}

// EnsureHash computes the whole-file SHA-256 digest unless it is already
// present. A successful computation is never repeated.
func (e *FileEntry) EnsureHash() error {
	if e.hashed {
		return nil
	}

	f, err := os.Open(e.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return err
	}

	e.hash = hex.EncodeToString(h.Sum(nil))
	e.hashed = true
	return nil
}

// Hash returns the content digest and whether it has been computed
func (e *FileEntry) Hash() (string, bool) {
	return e.hash, e.hashed
}

// SetHash injects a precomputed digest, marking the hash state as computed
func (e *FileEntry) SetHash(hash string) {
	e.hash = hash
	e.hashed = true
}
