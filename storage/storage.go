// SPDX-License-Identifier: EPL-2.0

// Package storage abstracts the byte-oriented backing store that audio
// containers are read from. The engine only ever sees these interfaces;
// whether the bytes come from a local directory, an in-memory table, or
// something slower is invisible above this boundary.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound reports that a named file does not exist in the source.
var ErrNotFound = errors.New("file not found")

// File is an open handle on a stored file. Reads may block; callers on
// a real-time path must not touch a File directly.
type File interface {
	io.Reader
	io.Seeker
	io.Closer

	// Size returns the total file length in bytes.
	Size() int64
}

// Entry describes one stored file.
type Entry struct {
	Name string
	Size int64
}

// Source is an openable collection of files.
type Source interface {
	// Open returns a handle for name, or an error wrapping ErrNotFound.
	Open(name string) (File, error)

	// List enumerates the files in the source, sorted by name.
	List() ([]Entry, error)
}

// Dir is a Source backed by a single directory on the OS filesystem.
type Dir struct {
	path string
}

// NewDir returns a Source over the given directory.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

func (d *Dir) Open(name string) (File, error) {
	f, err := os.Open(filepath.Join(d.path, filepath.Base(name)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}

	return &dirFile{File: f, size: info.Size()}, nil
}

func (d *Dir) List() ([]Entry, error) {
	dirents, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", d.path, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Name: de.Name(), Size: info.Size()})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

type dirFile struct {
	*os.File
	size int64
}

func (f *dirFile) Size() int64 { return f.size }
