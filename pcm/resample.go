// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
)

// ReadFunc yields mono int16 samples into dst and reports how many were
// written. It follows the io.Reader contract for EOF; a (0, nil) return
// means no samples were produced this step and the caller should retry.
type ReadFunc func(dst []int16) (int, error)

// ErrBadRate reports a non-positive sample rate.
var ErrBadRate = errors.New("sample rate must be positive")

// Resampler converts a mono int16 stream from one sample rate to
// another using Catmull-Rom cubic interpolation over a four-sample
// window. It pulls source samples through a ReadFunc, so it can sit
// directly behind a container decoder's step function.
type Resampler struct {
	read  ReadFunc
	ratio float64 // source samples advanced per output sample

	// Interpolation window: hist[1]..hist[2] bracket the output
	// position, hist[0] and hist[3] are the outer support points.
	hist   [4]float32
	filled int
	pos    float64
	primed bool
	eof    bool
	done   bool

	srcBuf  []int16
	srcLen  int
	srcOff  int
	pad     int
	stalled bool
	srcErr  error
}

// NewResampler builds a Resampler converting from srcRate to dstRate.
func NewResampler(read ReadFunc, srcRate, dstRate int) (*Resampler, error) {
	if srcRate <= 0 || dstRate <= 0 {
		return nil, ErrBadRate
	}
	return &Resampler{
		read:   read,
		ratio:  float64(srcRate) / float64(dstRate),
		srcBuf: make([]int16, 1024),
	}, nil
}

// Read fills dst with resampled output and returns the count written.
// It returns io.EOF once the source is exhausted and the window has
// drained. A (0, nil) return mirrors a source that produced nothing
// this step; the caller retries on its next cycle.
func (r *Resampler) Read(dst []int16) (int, error) {
	if r.done {
		return 0, r.endErr()
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			r.done = true
			return 0, err
		}
		if !r.primed {
			// Source stalled before the window filled.
			return 0, nil
		}
	}

	written := 0
	for written < len(dst) {
		for r.pos >= 1.0 {
			if !r.shift() {
				if r.stalled {
					// Window and position are untouched; resume
					// exactly here on the next call.
					r.stalled = false
					return written, nil
				}
				r.done = true
				return written, r.endErr()
			}
			r.pos -= 1.0
		}

		dst[written] = interpolate(r.hist, float32(r.pos))
		written++
		r.pos += r.ratio
	}
	return written, nil
}

func (r *Resampler) endErr() error {
	if r.srcErr != nil {
		return r.srcErr
	}
	return io.EOF
}

// prime loads the initial four-sample window, duplicating the last
// sample when the source is shorter than the window. A stalled source
// leaves the window partially filled and primed unset, so the next Read
// resumes where this one left off.
func (r *Resampler) prime() error {
	for r.filled < len(r.hist) {
		s, ok := r.next()
		if !ok {
			if r.stalled {
				r.stalled = false
				return nil
			}
			if r.filled == 0 {
				return r.endErr()
			}
			for j := r.filled; j < len(r.hist); j++ {
				r.hist[j] = r.hist[r.filled-1]
			}
			break
		}
		r.hist[r.filled] = float32(s)
		r.filled++
	}
	r.primed = true
	return nil
}

// shift advances the window by one source sample. After the source is
// exhausted the window is padded twice with the final sample so output
// can reach it, then shifting stops.
func (r *Resampler) shift() bool {
	s, ok := r.next()
	if !ok {
		if r.stalled || r.pad >= 2 {
			return false
		}
		r.pad++
		s = int16(r.hist[3])
	}
	r.hist[0] = r.hist[1]
	r.hist[1] = r.hist[2]
	r.hist[2] = r.hist[3]
	r.hist[3] = float32(s)
	return true
}

func (r *Resampler) next() (int16, bool) {
	if r.srcOff >= r.srcLen {
		if r.eof {
			return 0, false
		}
		n, err := r.read(r.srcBuf)
		r.srcLen = n
		r.srcOff = 0
		if err != nil {
			r.eof = true
			if err != io.EOF {
				r.srcErr = err
			}
		}
		if n == 0 {
			if err == nil {
				// Not the end: the source produced nothing this
				// step. Report a stall so the caller retries.
				r.stalled = true
			}
			return 0, false
		}
	}
	s := r.srcBuf[r.srcOff]
	r.srcOff++
	return s, true
}

// interpolate evaluates a Catmull-Rom spline through the window at
// fractional position x in [0, 1) between hist[1] and hist[2].
func interpolate(y [4]float32, x float32) int16 {
	a0 := -0.5*y[0] + 1.5*y[1] - 1.5*y[2] + 0.5*y[3]
	a1 := y[0] - 2.5*y[1] + 2*y[2] - 0.5*y[3]
	a2 := -0.5*y[0] + 0.5*y[2]
	a3 := y[1]

	v := a0*x*x*x + a1*x*x + a2*x + a3
	if v > 32767 {
		v = 32767
	} else if v < -32768 {
		v = -32768
	}
	return int16(v)
}
