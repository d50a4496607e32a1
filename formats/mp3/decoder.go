// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/pcm"
	"github.com/ik5/audstream/storage"
)

// pcmReader is the slice of gomp3.Decoder we use, as an interface so
// tests can substitute a fake.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// frameStream feeds validated frame bytes from the scanner into the PCM
// decoder, skipping junk (ID3 tags, sync loss) along the way.
type frameStream struct {
	sc     *scanner
	frame  []byte
	off    int
	frames int64
}

func (fs *frameStream) Read(p []byte) (int, error) {
	for fs.off >= len(fs.frame) {
		if fs.frame != nil {
			fs.sc.discard(len(fs.frame))
			fs.frame = nil
			fs.off = 0
		}

		_, frame, err := fs.sc.nextFrame()
		switch {
		case err == nil:
			fs.frame = frame
			fs.frames++
		case errors.Is(err, errNoSync), errors.Is(err, errShortFrame):
			// One byte discarded (or waiting for bytes); keep scanning.
			continue
		default:
			return 0, err
		}
	}

	n := copy(p, fs.frame[fs.off:])
	fs.off += n
	return n, nil
}

// Decoder streams an MPEG Layer III file as mono samples. It implements
// audio.Decoder. Frame location and resynchronization are handled by
// the staging-buffer scanner; PCM synthesis by go-mp3.
type Decoder struct {
	f      storage.File
	sc     *scanner
	fs     *frameStream
	dec    pcmReader
	format audio.Format
	raw    []byte
	eof    bool
}

// NewDecoder returns an empty Decoder; Open binds it to a file.
func NewDecoder() *Decoder { return &Decoder{} }

// Open scans for the first MPEG frame and primes the PCM decoder. Files
// with no recognizable frames fail with ErrNotMP3.
func (d *Decoder) Open(f storage.File) (audio.Format, error) {
	sc := newScanner(f)
	fs := &frameStream{sc: sc}

	dec, err := gomp3.NewDecoder(fs)
	if err != nil {
		return audio.Format{}, fmt.Errorf("%w: %w", ErrNotMP3, err)
	}

	// Stream format comes from the first valid frame header, recorded
	// by the scanner while go-mp3 primed itself.
	channels := 2
	rate := dec.SampleRate()
	if sc.first != nil {
		channels = sc.first.channels
		rate = sc.first.sampleRate
	}

	d.f = f
	d.sc = sc
	d.fs = fs
	d.dec = dec
	d.eof = false
	d.format = audio.Format{
		Codec:         audio.CodecMP3,
		Channels:      channels,
		SampleRate:    rate,
		BitsPerSample: 16,
		DataBytes:     f.Size(),
	}
	if d.raw == nil {
		d.raw = make([]byte, readChunkBytes)
	}
	return d.format, nil
}

// DecodeStep decodes a bounded amount of PCM and fills dst with mono
// samples. go-mp3 always emits interleaved stereo, so every step
// downmixes; for mono streams the two channels are identical and the
// average is exact.
func (d *Decoder) DecodeStep(dst []int16) (int, error) {
	if d.dec == nil || d.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) * 4 // one mono sample per 4-byte stereo frame
	if want > len(d.raw) {
		want = len(d.raw)
	}
	want -= want % 4

	n, err := d.dec.Read(d.raw[:want])
	frames := n / 4

	for i := 0; i < frames; i++ {
		left := int16(binary.LittleEndian.Uint16(d.raw[4*i:]))
		right := int16(binary.LittleEndian.Uint16(d.raw[4*i+2:]))
		dst[i] = pcm.DownmixFrame(left, right)
	}

	if err != nil {
		if err == io.EOF {
			d.eof = true
			if frames == 0 {
				return 0, io.EOF
			}
			return frames, nil
		}
		return frames, fmt.Errorf("decode mp3: %w", err)
	}
	return frames, nil
}

// EOF reports whether the compressed stream is exhausted.
func (d *Decoder) EOF() bool { return d.dec == nil || d.eof }

// Progress returns compressed bytes consumed and the file size.
func (d *Decoder) Progress() (int64, int64) {
	if d.sc == nil {
		return 0, 0
	}
	return d.sc.consumed, d.format.DataBytes
}

// Frames returns the number of MPEG frames served to the PCM decoder.
func (d *Decoder) Frames() int64 {
	if d.fs == nil {
		return 0
	}
	return d.fs.frames
}

// Close releases the file. The decoder can be reused with Open.
func (d *Decoder) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	d.sc = nil
	d.fs = nil
	d.dec = nil
	if err != nil {
		return fmt.Errorf("close mp3 file: %w", err)
	}
	return nil
}
