// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
	"sync/atomic"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/storage"
)

// StepDecoder is a synthetic audio.Decoder generating mono samples
// from a waveform function. A feed budget makes producer stalls
// reproducible: with a budget of zero DecodeStep returns no samples
// without signalling end of stream.
type StepDecoder struct {
	rate    int
	total   int // samples to generate; negative means endless
	emitted int
	wave    func(i int) int16

	// budget is the number of samples DecodeStep may still emit;
	// negative means unlimited.
	budget atomic.Int64

	f storage.File
}

// NewStepDecoder builds a decoder generating total samples of
// wave(i) at the given rate. total < 0 generates forever.
func NewStepDecoder(rate, total int, wave func(i int) int16) *StepDecoder {
	d := &StepDecoder{rate: rate, total: total, wave: wave}
	d.budget.Store(-1)
	return d
}

// NewConstDecoder generates total samples of a constant value.
func NewConstDecoder(rate, total int, value int16) *StepDecoder {
	return NewStepDecoder(rate, total, func(int) int16 { return value })
}

// NewSineDecoder generates total samples of a sine wave.
func NewSineDecoder(rate, total int, frequency float64) *StepDecoder {
	return NewStepDecoder(rate, total, func(i int) int16 {
		t := float64(i) / float64(rate)
		return int16(30000 * math.Sin(2*math.Pi*frequency*t))
	})
}

// Starve sets the feed budget to zero so DecodeStep stalls.
func (d *StepDecoder) Starve() { d.budget.Store(0) }

// Feed grants n more samples to a starved decoder.
func (d *StepDecoder) Feed(n int) { d.budget.Add(int64(n)) }

// Emitted returns the samples generated since the last Open.
func (d *StepDecoder) Emitted() int { return d.emitted }

func (d *StepDecoder) Open(f storage.File) (audio.Format, error) {
	d.f = f
	d.emitted = 0
	var size int64
	if d.total > 0 {
		size = int64(d.total) * 2
	}
	return audio.Format{
		Codec:         audio.CodecPCM16,
		Channels:      1,
		SampleRate:    d.rate,
		BitsPerSample: 16,
		DataBytes:     size,
	}, nil
}

func (d *StepDecoder) DecodeStep(dst []int16) (int, error) {
	if d.EOF() {
		return 0, io.EOF
	}

	n := len(dst)
	if d.total >= 0 && n > d.total-d.emitted {
		n = d.total - d.emitted
	}
	if b := d.budget.Load(); b >= 0 && int64(n) > b {
		n = int(b)
	}
	if n == 0 {
		return 0, nil
	}

	for i := 0; i < n; i++ {
		dst[i] = d.wave(d.emitted + i)
	}
	d.emitted += n
	if b := d.budget.Load(); b >= 0 {
		d.budget.Add(-int64(n))
	}
	return n, nil
}

func (d *StepDecoder) EOF() bool {
	return d.total >= 0 && d.emitted >= d.total
}

func (d *StepDecoder) Close() error {
	if d.f != nil {
		err := d.f.Close()
		d.f = nil
		return err
	}
	return nil
}
