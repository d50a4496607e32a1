// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"

	"github.com/ik5/audstream/storage"
)

// nopDecoder is a minimal Decoder for registry tests.
type nopDecoder struct{ key string }

func (d *nopDecoder) Open(f storage.File) (Format, error) { return Format{}, nil }
func (d *nopDecoder) DecodeStep(dst []int16) (int, error) { return 0, nil }
func (d *nopDecoder) EOF() bool                           { return true }
func (d *nopDecoder) Close() error                        { return nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", func() Decoder { return &nopDecoder{key: "wav"} })

	f, ok := registry.Get("WAV")
	if !ok {
		t.Fatal("Get() failed to retrieve registered factory (case-insensitive)")
	}
	if f == nil {
		t.Fatal("Get() returned nil factory")
	}
}

func TestRegistry_ForName(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", func() Decoder { return &nopDecoder{key: "wav"} })
	registry.Register("mp3", func() Decoder { return &nopDecoder{key: "mp3"} })

	tests := []struct {
		name    string
		wantKey string
		wantErr bool
	}{
		{"track1.wav", "wav", false},
		{"TRACK2.MP3", "mp3", false},
		{"song.flac", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		dec, err := registry.ForName(tt.name)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ForName(%q) error = %v, want ErrUnknownFormat", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForName(%q) error = %v", tt.name, err)
			continue
		}
		if got := dec.(*nopDecoder).key; got != tt.wantKey {
			t.Errorf("ForName(%q) selected %q, want %q", tt.name, got, tt.wantKey)
		}
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", func() Decoder { return &nopDecoder{} })
	registry.Register("aiff", func() Decoder { return &nopDecoder{} })

	got := registry.Formats()
	if len(got) != 2 || got[0] != "aiff" || got[1] != "wav" {
		t.Errorf("Formats() = %v, want [aiff wav]", got)
	}
}

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header []byte
		want   string
		ok     bool
	}{
		{[]byte("RIFF....WAVE"), "wav", true},
		{[]byte("OggS\x00"), "ogg", true},
		{[]byte("FORMxxxxAIFF"), "aiff", true},
		{[]byte("ID3\x04\x00"), "mp3", true},
		{[]byte{0xFF, 0xFB, 0x90, 0x00}, "mp3", true},
		{[]byte{0xFF, 0x00}, "", false},
		{[]byte("RI"), "", false},
		{nil, "", false},
	}

	for _, tt := range tests {
		got, ok := Sniff(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Sniff(% x) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}
