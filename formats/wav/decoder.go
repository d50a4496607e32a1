// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/pcm"
	"github.com/ik5/audstream/storage"
)

// DefaultChunkBytes is the per-step read size from storage.
const DefaultChunkBytes = 4096

// Decoder streams a PCM 16-bit WAV file as mono samples, one bounded
// read per DecodeStep. It implements audio.Decoder.
type Decoder struct {
	f          storage.File
	format     audio.Format
	chunkBytes int

	remaining int64 // payload bytes not yet read
	consumed  int64 // payload bytes read so far

	raw    []byte
	frames []int16
}

// NewDecoder returns a Decoder reading DefaultChunkBytes per step.
func NewDecoder() *Decoder { return NewDecoderChunk(DefaultChunkBytes) }

// NewDecoderChunk returns a Decoder with a custom per-step read size.
func NewDecoderChunk(chunkBytes int) *Decoder {
	if chunkBytes < 512 {
		chunkBytes = 512
	}
	return &Decoder{chunkBytes: chunkBytes}
}

// Open parses the RIFF/WAVE headers from f. Any chunk other than
// "fmt " and "data" is skipped by its declared size; the canonical
// 44-byte layout is therefore not assumed. On any validation failure
// the file is left for the caller to close and an error is returned.
func (d *Decoder) Open(f storage.File) (audio.Format, error) {
	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return audio.Format{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return audio.Format{}, ErrNotWavFile
	}

	format, dataSize, err := walkChunks(f)
	if err != nil {
		return audio.Format{}, err
	}

	d.f = f
	d.format = format
	d.remaining = dataSize
	d.consumed = 0
	if d.raw == nil {
		d.raw = make([]byte, d.chunkBytes)
		d.frames = make([]int16, d.chunkBytes/2)
	}
	return format, nil
}

// walkChunks scans sub-chunks until the data chunk, validating the fmt
// chunk on the way.
func walkChunks(f storage.File) (audio.Format, int64, error) {
	var (
		format audio.Format
		sawFmt bool
		hdr    [8]byte
	)

	for {
		if _, err := io.ReadFull(f, hdr[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return format, 0, ErrNoDataChunk
			}
			return format, 0, fmt.Errorf("read chunk header: %w", err)
		}

		id := string(hdr[0:4])
		size := binary.LittleEndian.Uint32(hdr[4:8])

		switch id {
		case "fmt ":
			var err error
			format, err = parseFmt(f, size)
			if err != nil {
				return format, 0, err
			}
			sawFmt = true

		case "data":
			if !sawFmt {
				return format, 0, ErrNoDataChunk
			}
			format.DataBytes = int64(size)
			return format, int64(size), nil

		default:
			// Unknown chunk (LIST, fact, ...): skip by declared size,
			// padded to even per RIFF alignment.
			skip := int64(size) + int64(size&1)
			if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
				return format, 0, fmt.Errorf("skip %q chunk: %w", id, err)
			}
		}
	}
}

func parseFmt(f storage.File, size uint32) (audio.Format, error) {
	if size < 16 {
		return audio.Format{}, ErrNotWavFile
	}

	var body [16]byte
	if _, err := io.ReadFull(f, body[:]); err != nil {
		return audio.Format{}, fmt.Errorf("read fmt chunk: %w", err)
	}

	audioFormat := binary.LittleEndian.Uint16(body[0:2])
	channels := int(binary.LittleEndian.Uint16(body[2:4]))
	sampleRate := int(binary.LittleEndian.Uint32(body[4:8]))
	bits := int(binary.LittleEndian.Uint16(body[14:16]))

	if audioFormat != 1 || bits != 16 {
		return audio.Format{}, ErrOnlyPCM16bitSupported
	}
	if channels != 1 && channels != 2 {
		return audio.Format{}, ErrBadChannelCount
	}

	// Skip any fmt extension bytes plus RIFF padding.
	if rest := int64(size) - 16 + int64(size&1); rest > 0 {
		if _, err := f.Seek(rest, io.SeekCurrent); err != nil {
			return audio.Format{}, fmt.Errorf("skip fmt extension: %w", err)
		}
	}

	return audio.Format{
		Codec:         audio.CodecPCM16,
		Channels:      channels,
		SampleRate:    sampleRate,
		BitsPerSample: bits,
	}, nil
}

// DecodeStep reads one chunk of payload, interprets it as interleaved
// 16-bit samples, downmixes stereo to mono, and fills dst. Returns the
// number of mono samples produced; io.EOF once the payload is drained.
func (d *Decoder) DecodeStep(dst []int16) (int, error) {
	if d.f == nil {
		return 0, io.EOF
	}
	if d.remaining <= 0 {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	frameBytes := int64(2 * d.format.Channels)

	want := int64(d.chunkBytes)
	if limit := int64(len(dst)) * frameBytes; want > limit {
		want = limit
	}
	if want > d.remaining {
		want = d.remaining
	}
	want -= want % frameBytes
	if want <= 0 {
		// Trailing partial frame; treat as end of payload.
		d.remaining = 0
		return 0, io.EOF
	}

	n, err := io.ReadFull(d.f, d.raw[:want])
	n -= n % int(frameBytes)
	if n == 0 {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, fmt.Errorf("%w: %d bytes missing", ErrTruncated, d.remaining)
		}
		return 0, fmt.Errorf("read payload: %w", err)
	}

	d.remaining -= int64(n)
	d.consumed += int64(n)

	samples := n / 2
	for i := 0; i < samples; i++ {
		d.frames[i] = int16(binary.LittleEndian.Uint16(d.raw[2*i : 2*i+2]))
	}

	if d.format.Channels == 2 {
		return pcm.DownmixStereo(dst, d.frames[:samples]), nil
	}
	return copy(dst, d.frames[:samples]), nil
}

// EOF reports whether the data payload has been fully consumed.
func (d *Decoder) EOF() bool { return d.f == nil || d.remaining <= 0 }

// Progress returns payload bytes consumed and the payload total.
func (d *Decoder) Progress() (int64, int64) {
	return d.consumed, d.format.DataBytes
}

// Close releases the file. The decoder can be reused with Open.
func (d *Decoder) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	d.remaining = 0
	if err != nil {
		return fmt.Errorf("close wav file: %w", err)
	}
	return nil
}
