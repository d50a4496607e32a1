// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/pcm"
	"github.com/ik5/audstream/storage"
)

// oggReader is the slice of oggvorbis.Reader we use, as an interface so
// tests can substitute a fake.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// Decoder streams an Ogg Vorbis file as mono samples. It implements
// audio.Decoder.
type Decoder struct {
	f        storage.File
	counting *countingReader
	dec      oggReader
	format   audio.Format
	fbuf     []float32
	eof      bool
}

// NewDecoder returns an empty Decoder; Open binds it to a file.
func NewDecoder() *Decoder { return &Decoder{} }

func (d *Decoder) Open(f storage.File) (audio.Format, error) {
	cr := &countingReader{r: f}
	dec, err := oggvorbis.NewReader(cr)
	if err != nil {
		return audio.Format{}, fmt.Errorf("%w: %w", ErrNotOggFile, err)
	}

	channels := dec.Channels()
	if channels != 1 && channels != 2 {
		return audio.Format{}, ErrBadChannelCount
	}

	d.f = f
	d.counting = cr
	d.dec = dec
	d.eof = false
	d.format = audio.Format{
		Codec:         audio.CodecVorbis,
		Channels:      channels,
		SampleRate:    dec.SampleRate(),
		BitsPerSample: 16,
		DataBytes:     f.Size(),
	}
	if d.fbuf == nil {
		d.fbuf = make([]float32, 2048)
	}
	return d.format, nil
}

// DecodeStep pulls a bounded amount of decoded audio, converts it to
// int16, and downmixes stereo. Returns mono samples produced.
func (d *Decoder) DecodeStep(dst []int16) (int, error) {
	if d.dec == nil || d.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) * d.format.Channels
	if want > len(d.fbuf) {
		want = len(d.fbuf)
	}
	want -= want % d.format.Channels

	n, err := d.dec.Read(d.fbuf[:want])
	frames := n / d.format.Channels

	if d.format.Channels == 2 {
		for i := 0; i < frames; i++ {
			left := pcm.Float32ToInt16(d.fbuf[2*i])
			right := pcm.Float32ToInt16(d.fbuf[2*i+1])
			dst[i] = pcm.DownmixFrame(left, right)
		}
	} else {
		pcm.Float32ToInt16Buf(dst[:frames], d.fbuf[:frames])
	}

	if err != nil {
		if err == io.EOF {
			d.eof = true
			if frames == 0 {
				return 0, io.EOF
			}
			return frames, nil
		}
		return frames, fmt.Errorf("decode vorbis: %w", err)
	}
	return frames, nil
}

func (d *Decoder) EOF() bool { return d.dec == nil || d.eof }

// Progress returns compressed bytes consumed and the file size.
func (d *Decoder) Progress() (int64, int64) {
	if d.counting == nil {
		return 0, 0
	}
	return d.counting.n, d.format.DataBytes
}

func (d *Decoder) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	d.counting = nil
	d.dec = nil
	if err != nil {
		return fmt.Errorf("close ogg file: %w", err)
	}
	return nil
}

// countingReader tracks compressed bytes consumed for progress
// reporting.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
