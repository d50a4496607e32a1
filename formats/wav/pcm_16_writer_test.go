// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"testing"

	goaudiowav "github.com/go-audio/wav"

	"github.com/ik5/audstream/internal/audiotest"
)

func TestWriteWAV16_RoundTrip(t *testing.T) {
	t.Parallel()

	samples := []int16{100, -100, 200, -200, 32767, -32768}

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 44100, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	dec := NewDecoder()
	format, err := dec.Open(audiotest.NewMemFile(buf.Bytes()))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if format.Channels != 1 || format.SampleRate != 44100 {
		t.Errorf("format = %+v, want mono 44100", format)
	}

	got := decodeAll(t, dec)
	if len(got) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], samples[i])
		}
	}
}

// TestWriteWAV16_CrossDecoder validates the writer's output against an
// independent WAV implementation.
func TestWriteWAV16_CrossDecoder(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 1000, -1000, 2000, -2000}

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	dec := goaudiowav.NewDecoder(bytes.NewReader(buf.Bytes()))
	if !dec.IsValidFile() {
		t.Fatal("go-audio/wav rejects the written file")
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}

	if pcm.Format.NumChannels != 1 {
		t.Errorf("NumChannels = %d, want 1", pcm.Format.NumChannels)
	}
	if pcm.Format.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", pcm.Format.SampleRate)
	}
	if len(pcm.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(pcm.Data), len(samples))
	}
	for i, want := range samples {
		if pcm.Data[i] != int(want) {
			t.Errorf("sample %d = %d, want %d", i, pcm.Data[i], want)
		}
	}
}

func TestWriteWAV16_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, nil); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	if buf.Len() != 44 {
		t.Errorf("header-only file is %d bytes, want 44", buf.Len())
	}
}
