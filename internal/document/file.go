package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the file access used by Load and Save.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	MkdirAll(path string, perm fs.FileMode) error
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path.
func (OSFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Rename renames oldpath to newpath.
func (OSFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// MkdirAll creates a directory and its parents.
func (OSFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Store loads and saves documents at one path.
type Store struct {
	fs     FileSystem
	path   string
	format Format
}

// NewStore creates a store for path, picking the format from its extension.
func NewStore(path string) (*Store, error) {
	return NewStoreWithFS(OSFS{}, path)
}

// NewStoreWithFS creates a store backed by a custom file system.
func NewStoreWithFS(fsys FileSystem, path string) (*Store, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return &Store{fs: fsys, path: path, format: f}, nil
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Format returns the document format.
func (s *Store) Format() Format {
	return s.format
}

// Load reads the document. A missing file yields an empty document.
func (s *Store) Load() (*Document, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading styles document %s: %w", s.path, err)
	}
	return Unmarshal(s.path, data, s.format)
}

// Save writes the document through a temporary file and a rename so
// readers never observe a partial write.
func (s *Store) Save(d *Document) error {
	data, err := Marshal(d, s.format)
	if err != nil {
		return fmt.Errorf("encoding styles document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Load reads the document at path.
func Load(path string) (*Document, error) {
	s, err := NewStore(path)
	if err != nil {
		return nil, err
	}
	return s.Load()
}

// Save writes d to path.
func Save(path string, d *Document) error {
	s, err := NewStore(path)
	if err != nil {
		return err
	}
	return s.Save(d)
}
