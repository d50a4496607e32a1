// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/pcm"
	"github.com/ik5/audstream/storage"
)

// aiffReader is the slice of aiff.Decoder we use, as an interface so
// tests can substitute a fake.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Decoder streams an AIFF file as mono samples. Only 16-bit PCM with
// one or two channels is accepted. It implements audio.Decoder.
type Decoder struct {
	f      storage.File
	dec    aiffReader
	format audio.Format
	intBuf *goaudio.IntBuffer
	eof    bool
}

// NewDecoder returns an empty Decoder; Open binds it to a file.
func NewDecoder() *Decoder { return &Decoder{} }

func (d *Decoder) Open(f storage.File) (audio.Format, error) {
	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		return audio.Format{}, ErrNotAiffFile
	}

	dec.ReadInfo()
	if dec.BitDepth != 16 {
		return audio.Format{}, ErrOnlyPCM16bitSupported
	}

	format := dec.Format()
	if format == nil {
		return audio.Format{}, ErrUnsupportedAiffLayout
	}
	if format.NumChannels != 1 && format.NumChannels != 2 {
		return audio.Format{}, ErrUnsupportedAiffLayout
	}

	d.f = f
	d.dec = dec
	d.eof = false
	d.format = audio.Format{
		Codec:         audio.CodecPCM16,
		Channels:      format.NumChannels,
		SampleRate:    format.SampleRate,
		BitsPerSample: 16,
		DataBytes:     f.Size(),
	}
	return d.format, nil
}

// DecodeStep pulls a bounded amount of PCM frames and downmixes
// stereo. Returns mono samples produced.
func (d *Decoder) DecodeStep(dst []int16) (int, error) {
	if d.dec == nil || d.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) * d.format.Channels
	if d.intBuf == nil || cap(d.intBuf.Data) < want {
		d.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: d.dec.Format(),
		}
	}
	d.intBuf.Data = d.intBuf.Data[:want]

	n, err := d.dec.PCMBuffer(d.intBuf)
	frames := n / d.format.Channels

	if d.format.Channels == 2 {
		for i := 0; i < frames; i++ {
			dst[i] = pcm.DownmixFrame(
				int16(d.intBuf.Data[2*i]),
				int16(d.intBuf.Data[2*i+1]),
			)
		}
	} else {
		for i := 0; i < frames; i++ {
			dst[i] = int16(d.intBuf.Data[i])
		}
	}

	if err != nil {
		if err == io.EOF {
			d.eof = true
			if frames == 0 {
				return 0, io.EOF
			}
			return frames, nil
		}
		return frames, fmt.Errorf("decode aiff: %w", err)
	}
	if n < want {
		// Short read with no error means the sound chunk ended.
		d.eof = true
		if frames == 0 {
			return 0, io.EOF
		}
	}
	return frames, nil
}

func (d *Decoder) EOF() bool { return d.dec == nil || d.eof }

func (d *Decoder) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	d.dec = nil
	if err != nil {
		return fmt.Errorf("close aiff file: %w", err)
	}
	return nil
}
