// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides in-memory storage and container fixtures
// for tests.
package audiotest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync/atomic"

	"github.com/ik5/audstream/storage"
)

// MemSource is a storage.Source over an in-memory file table.
type MemSource struct {
	files map[string][]byte

	// Opens counts Open calls, for lifecycle assertions.
	Opens atomic.Int32
}

// NewMemSource builds a source from name -> contents.
func NewMemSource(files map[string][]byte) *MemSource {
	return &MemSource{files: files}
}

func (s *MemSource) Open(name string) (storage.File, error) {
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	s.Opens.Add(1)
	return &MemFile{Reader: bytes.NewReader(data), size: int64(len(data))}, nil
}

func (s *MemSource) List() ([]storage.Entry, error) {
	entries := make([]storage.Entry, 0, len(s.files))
	for name, data := range s.files {
		entries = append(entries, storage.Entry{Name: name, Size: int64(len(data))})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// MemFile is a storage.File over a byte slice.
type MemFile struct {
	*bytes.Reader
	size   int64
	closed atomic.Bool
}

// NewMemFile wraps data as an open storage.File.
func NewMemFile(data []byte) *MemFile {
	return &MemFile{Reader: bytes.NewReader(data), size: int64(len(data))}
}

func (f *MemFile) Size() int64 { return f.size }

func (f *MemFile) Close() error {
	f.closed.Store(true)
	return nil
}

// Closed reports whether Close was called.
func (f *MemFile) Closed() bool { return f.closed.Load() }

// ErrReadFailed is returned by FailingFile after its budget runs out.
var ErrReadFailed = errors.New("injected read failure")

// FailingFile reads normally for budget bytes, then fails every read.
// It models storage-media failure mid-stream.
type FailingFile struct {
	*MemFile
	budget int
}

func NewFailingFile(data []byte, budget int) *FailingFile {
	return &FailingFile{MemFile: NewMemFile(data), budget: budget}
}

func (f *FailingFile) Read(p []byte) (int, error) {
	if f.budget <= 0 {
		return 0, ErrReadFailed
	}
	if len(p) > f.budget {
		p = p[:f.budget]
	}
	n, err := f.MemFile.Read(p)
	f.budget -= n
	if err == io.EOF {
		return n, io.EOF
	}
	return n, err
}
