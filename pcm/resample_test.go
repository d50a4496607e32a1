// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"testing"
)

// sliceReader serves a fixed sample slice through a ReadFunc.
func sliceReader(samples []int16) ReadFunc {
	off := 0
	return func(dst []int16) (int, error) {
		if off >= len(samples) {
			return 0, io.EOF
		}
		n := copy(dst, samples[off:])
		off += n
		return n, nil
	}
}

func readAll(t *testing.T, r *Resampler) []int16 {
	t.Helper()
	var out []int16
	buf := make([]int16, 16)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Read: %s", err)
		}
	}
}

func TestResampler_RejectsBadRates(t *testing.T) {
	t.Parallel()

	if _, err := NewResampler(sliceReader(nil), 0, 8000); !errors.Is(err, ErrBadRate) {
		t.Errorf("zero source rate: expected ErrBadRate, got %v", err)
	}
	if _, err := NewResampler(sliceReader(nil), 8000, -1); !errors.Is(err, ErrBadRate) {
		t.Errorf("negative target rate: expected ErrBadRate, got %v", err)
	}
}

func TestResampler_UpsampleConstant(t *testing.T) {
	t.Parallel()

	src := make([]int16, 40)
	for i := range src {
		src[i] = 1000
	}

	r, err := NewResampler(sliceReader(src), 4000, 8000)
	if err != nil {
		t.Fatalf("NewResampler: %s", err)
	}

	out := readAll(t, r)
	if len(out) < 70 || len(out) > 90 {
		t.Fatalf("expected roughly 80 samples for 40 at half rate, got %d", len(out))
	}
	for i, s := range out {
		if s != 1000 {
			t.Fatalf("sample %d: constant input must stay constant, got %d", i, s)
		}
	}
}

func TestResampler_DownsampleHalvesCount(t *testing.T) {
	t.Parallel()

	src := make([]int16, 40)
	for i := range src {
		src[i] = int16(i * 100)
	}

	r, err := NewResampler(sliceReader(src), 8000, 4000)
	if err != nil {
		t.Fatalf("NewResampler: %s", err)
	}

	out := readAll(t, r)
	if len(out) < 17 || len(out) > 23 {
		t.Fatalf("expected roughly 20 samples for 40 at double rate, got %d", len(out))
	}
	// A linear ramp must stay monotonic through interpolation.
	for i := 1; i < len(out); i++ {
		if out[i] < out[i-1] {
			t.Fatalf("output not monotonic at %d: %d then %d", i, out[i-1], out[i])
		}
	}
}

func TestResampler_EOFIsSticky(t *testing.T) {
	t.Parallel()

	r, err := NewResampler(sliceReader(make([]int16, 10)), 8000, 8000)
	if err != nil {
		t.Fatalf("NewResampler: %s", err)
	}
	readAll(t, r)

	buf := make([]int16, 4)
	if n, err := r.Read(buf); n != 0 || err != io.EOF {
		t.Fatalf("expected sticky io.EOF, got n=%d err=%v", n, err)
	}
}

func TestResampler_PropagatesSourceError(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("storage gone")

	// Fails immediately: the error must surface on the first Read.
	r, err := NewResampler(func([]int16) (int, error) {
		return 0, errBroken
	}, 8000, 8000)
	if err != nil {
		t.Fatalf("NewResampler: %s", err)
	}
	if _, err := r.Read(make([]int16, 4)); !errors.Is(err, errBroken) {
		t.Fatalf("expected source error, got %v", err)
	}

	// Fails mid-stream: data first, then the error instead of EOF.
	served := false
	r, err = NewResampler(func(dst []int16) (int, error) {
		if served {
			return 0, errBroken
		}
		served = true
		for i := range dst {
			dst[i] = 5
		}
		return len(dst), nil
	}, 8000, 8000)
	if err != nil {
		t.Fatalf("NewResampler: %s", err)
	}

	var lastErr error
	buf := make([]int16, 64)
	for i := 0; i < 100; i++ {
		_, lastErr = r.Read(buf)
		if lastErr != nil {
			break
		}
	}
	if !errors.Is(lastErr, errBroken) {
		t.Fatalf("expected source error after drain, got %v", lastErr)
	}
}

// stutterReader serves samples one at a time with a (0, nil) stall
// before each, the way a decoder resynchronizing mid-stream behaves.
func stutterReader(samples []int16) ReadFunc {
	off := 0
	starve := false
	return func(dst []int16) (int, error) {
		starve = !starve
		if starve {
			return 0, nil
		}
		if off >= len(samples) {
			return 0, io.EOF
		}
		dst[0] = samples[off]
		off++
		return 1, nil
	}
}

func TestResampler_RetriesStalledSource(t *testing.T) {
	t.Parallel()

	src := make([]int16, 40)
	for i := range src {
		src[i] = int16(i * 100)
	}

	steady, err := NewResampler(sliceReader(src), 8000, 4000)
	if err != nil {
		t.Fatalf("NewResampler: %s", err)
	}
	stalling, err := NewResampler(stutterReader(src), 8000, 4000)
	if err != nil {
		t.Fatalf("NewResampler: %s", err)
	}

	// Stalls must neither end the stream early nor inject padding
	// samples: the output must match a source that never stalls.
	want := readAll(t, steady)
	got := readAll(t, stalling)
	if len(got) != len(want) {
		t.Fatalf("stalled source produced %d samples, steady source %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: stalled source gave %d, steady source %d", i, got[i], want[i])
		}
	}
}

func TestInterpolate_LinearMidpoint(t *testing.T) {
	t.Parallel()

	// Catmull-Rom through a straight line reproduces the line.
	got := interpolate([4]float32{0, 10, 20, 30}, 0.5)
	if got != 15 {
		t.Errorf("expected 15 at the midpoint of 10..20, got %d", got)
	}
	if got := interpolate([4]float32{0, 10, 20, 30}, 0); got != 10 {
		t.Errorf("expected 10 at x=0, got %d", got)
	}
}

func TestInterpolate_Clamps(t *testing.T) {
	t.Parallel()

	if got := interpolate([4]float32{32767, 32767, 32767, 32767}, 0.5); got != 32767 {
		t.Errorf("expected clamp at 32767, got %d", got)
	}
	if got := interpolate([4]float32{-32768, -32768, -32768, -32768}, 0.5); got != -32768 {
		t.Errorf("expected clamp at -32768, got %d", got)
	}
}
