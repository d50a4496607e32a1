// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ik5/audstream/storage"
)

// Codec identifies the payload encoding inside a container.
type Codec uint8

const (
	CodecUnknown Codec = iota
	CodecPCM16
	CodecMP3
	CodecVorbis
)

func (c Codec) String() string {
	switch c {
	case CodecPCM16:
		return "pcm16"
	case CodecMP3:
		return "mp3"
	case CodecVorbis:
		return "vorbis"
	default:
		return "unknown"
	}
}

// Format is the container metadata captured when a stream is opened.
type Format struct {
	Codec         Codec
	Channels      int
	SampleRate    int
	BitsPerSample int

	// DataBytes is the payload length in bytes, or 0 when the container
	// does not declare one (e.g. a raw MP3 stream).
	DataBytes int64
}

// Decoder turns container bytes from a storage file into mono 16-bit
// PCM, one bounded step at a time. A Decoder is owned by a single
// producer; none of its methods are safe for concurrent use.
type Decoder interface {
	// Open reads and validates the container headers from f. The
	// decoder keeps the file handle until Close. Open may be called
	// again after Close to restart the same decoder instance.
	Open(f storage.File) (Format, error)

	// DecodeStep reads a bounded amount of payload from the file,
	// decodes it, and writes up to len(dst) mono samples into dst.
	// It returns the number of samples produced. A return of (0, nil)
	// means no samples were produced this step (e.g. the step was spent
	// resynchronizing); io.EOF reports end of stream.
	DecodeStep(dst []int16) (int, error)

	// EOF reports whether the payload is exhausted.
	EOF() bool

	// Close releases the file handle. The decoder may be reopened.
	Close() error
}

// Factory builds a fresh Decoder for one stream.
type Factory func() Decoder

// Registry maps format keys (file extensions, lower case, no dot) to
// decoder factories.
type Registry struct {
	codecs map[string]Factory

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Factory),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, f Factory) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = f
}

// Get returns a factory for an exact format key.
func (r *Registry) Get(format string) (Factory, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	f, ok := r.codecs[strings.ToLower(format)]
	return f, ok
}

// ForName selects a decoder by the file name's extension.
func (r *Registry) ForName(name string) (Decoder, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	f, ok := r.Get(ext)
	if !ok {
		return nil, ErrUnknownFormat
	}
	return f(), nil
}

// Formats returns the registered format keys, sorted.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sniff guesses a format key from the first bytes of a file. It
// recognizes the container magics of the built-in formats; header gives
// at least 4 bytes for a useful answer.
func Sniff(header []byte) (string, bool) {
	switch {
	case len(header) >= 4 && bytes.Equal(header[:4], []byte("RIFF")):
		return "wav", true
	case len(header) >= 4 && bytes.Equal(header[:4], []byte("OggS")):
		return "ogg", true
	case len(header) >= 4 && bytes.Equal(header[:4], []byte("FORM")):
		return "aiff", true
	case len(header) >= 3 && bytes.Equal(header[:3], []byte("ID3")):
		return "mp3", true
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		return "mp3", true
	default:
		return "", false
	}
}
