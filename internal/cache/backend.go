package cache

import (
	"os"
	"path/filepath"
)

// Backend abstracts where the serialized cache root lives. The store only
// ever reads or replaces the whole blob.
type Backend interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// FileBackend keeps the cache root in a single JSON file
type FileBackend struct {
	Path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

func (b *FileBackend) Read() ([]byte, error) {
	return os.ReadFile(b.Path)
}

// Write replaces the file contents. The blob is staged in a temp file and
// renamed into place, so a crash mid-write leaves the prior file untouched.
func (b *FileBackend) Write(data []byte) error {
	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.Path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), b.Path)
}

// MemoryBackend holds the blob in memory. Used by tests and by callers that
// want a store without a backing file.
type MemoryBackend struct {
	data []byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Read() ([]byte, error) {
	if b.data == nil {
		return nil, os.ErrNotExist
	}
	return b.data, nil
}

func (b *MemoryBackend) Write(data []byte) error {
	b.data = append([]byte(nil), data...)
	return nil
}
