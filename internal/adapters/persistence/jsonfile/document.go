// Package jsonfile persists a list of records as one pretty-printed JSON
// document that is rewritten wholesale on every mutation.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Document is a JSON array of T stored at a single path. All access goes
// through one mutex, and writes land via temp file + rename so a failed
// write leaves the previous document in place.
type Document[T any] struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewDocument returns a document at path on the given filesystem
func NewDocument[T any](fsys afero.Fs, path string) *Document[T] {
	return &Document[T]{fs: fsys, path: path}
}

// Path returns the document location
func (d *Document[T]) Path() string {
	return d.path
}

// Read returns the current list. A missing or empty file is an empty list.
func (d *Document[T]) Read() ([]T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.read()
}

// Update runs fn on the current list and persists what it returns. If fn
// returns an error nothing is written.
func (d *Document[T]) Update(fn func(items []T) ([]T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	items, err := d.read()
	if err != nil {
		return err
	}

	updated, err := fn(items)
	if err != nil {
		return err
	}

	return d.write(updated)
}

// Exists reports whether the document has been created yet
func (d *Document[T]) Exists() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return afero.Exists(d.fs, d.path)
}

func (d *Document[T]) read() ([]T, error) {
	data, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(d.path), err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(d.path), err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (d *Document[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(d.path), err)
	}

	dir := filepath.Dir(d.path)
	if err := d.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := afero.TempFile(d.fs, dir, "."+filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = d.fs.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = d.fs.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = d.fs.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := d.fs.Rename(tmpName, d.path); err != nil {
		_ = d.fs.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", filepath.Base(d.path), err)
	}
	return nil
}
