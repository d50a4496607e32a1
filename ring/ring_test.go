// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"sync"
	"sync/atomic"
	"testing"
)

// checkInvariant verifies avail == (writePos - readPos) mod capacity and
// that avail stays within [0, capacity].
func checkInvariant(t *testing.T, b *Buffer) {
	t.Helper()

	b.mu.Lock()
	defer b.mu.Unlock()

	capacity := uint32(len(b.buf))
	if b.avail > capacity {
		t.Fatalf("avail = %d exceeds capacity %d", b.avail, capacity)
	}

	diff := (b.writePos + capacity - b.readPos) % capacity
	if diff != b.avail%capacity {
		t.Fatalf("avail = %d inconsistent with writePos=%d readPos=%d", b.avail, b.writePos, b.readPos)
	}
}

func seq(start, n int) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = int16(start + i)
	}
	return s
}

func TestBuffer_PushPop(t *testing.T) {
	t.Parallel()

	b := New(16)

	if got := b.Push(seq(0, 10)); got != 10 {
		t.Fatalf("Push() = %d, want 10", got)
	}
	checkInvariant(t, b)

	if got := b.Available(); got != 10 {
		t.Fatalf("Available() = %d, want 10", got)
	}

	dst := make([]int16, 10)
	if !b.Pop(dst) {
		t.Fatal("Pop() = false, want true")
	}
	checkInvariant(t, b)

	for i, v := range dst {
		if v != int16(i) {
			t.Fatalf("dst[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestBuffer_PopInsufficient(t *testing.T) {
	t.Parallel()

	b := New(16)
	b.Push(seq(0, 4))

	dst := make([]int16, 8)
	if b.Pop(dst) {
		t.Fatal("Pop() = true with only 4 of 8 samples buffered")
	}

	// A failed pop must not consume anything.
	if got := b.Available(); got != 4 {
		t.Errorf("Available() after failed Pop = %d, want 4", got)
	}
	checkInvariant(t, b)
}

func TestBuffer_NoOverrun(t *testing.T) {
	t.Parallel()

	b := New(8)

	if got := b.Push(seq(0, 8)); got != 8 {
		t.Fatalf("Push() = %d, want 8", got)
	}

	// Full buffer: the push must be a no-op, not a drop-oldest.
	if got := b.Push(seq(100, 4)); got != 0 {
		t.Fatalf("Push() on full buffer = %d, want 0", got)
	}
	checkInvariant(t, b)

	dst := make([]int16, 8)
	if !b.Pop(dst) {
		t.Fatal("Pop() = false, want true")
	}
	for i, v := range dst {
		if v != int16(i) {
			t.Fatalf("dst[%d] = %d, want %d (unread region corrupted)", i, v, i)
		}
	}
}

func TestBuffer_PartialPush(t *testing.T) {
	t.Parallel()

	b := New(8)
	b.Push(seq(0, 6))

	// Only 2 slots free: push accepts what fits.
	if got := b.Push(seq(6, 5)); got != 2 {
		t.Fatalf("Push() = %d, want 2", got)
	}
	checkInvariant(t, b)

	dst := make([]int16, 8)
	if !b.Pop(dst) {
		t.Fatal("Pop() = false, want true")
	}
	for i, v := range dst {
		if v != int16(i) {
			t.Fatalf("dst[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestBuffer_Wraparound(t *testing.T) {
	t.Parallel()

	b := New(8)
	dst := make([]int16, 5)

	// Drive the indices around the buffer several times.
	next := 0
	for cycle := 0; cycle < 10; cycle++ {
		if got := b.Push(seq(next, 5)); got != 5 {
			t.Fatalf("cycle %d: Push() = %d, want 5", cycle, got)
		}
		checkInvariant(t, b)

		if !b.Pop(dst) {
			t.Fatalf("cycle %d: Pop() = false", cycle)
		}
		checkInvariant(t, b)

		for i, v := range dst {
			if v != int16(next+i) {
				t.Fatalf("cycle %d: dst[%d] = %d, want %d", cycle, i, v, next+i)
			}
		}
		next += 5
	}
}

func TestBuffer_Reset(t *testing.T) {
	t.Parallel()

	b := New(16)
	b.Push(seq(0, 12))
	b.Reset()

	if got := b.Available(); got != 0 {
		t.Errorf("Available() after Reset = %d, want 0", got)
	}
	if got := b.Free(); got != 16 {
		t.Errorf("Free() after Reset = %d, want 16", got)
	}
	checkInvariant(t, b)
}

func TestBuffer_ConcurrentPushPop(t *testing.T) {
	t.Parallel()

	const total = 100000
	b := New(256)

	var wg sync.WaitGroup
	wg.Add(1)

	// Producer pushes a known sequence; partial pushes retry.
	go func() {
		defer wg.Done()
		pending := seq(0, total)
		for len(pending) > 0 {
			chunk := pending
			if len(chunk) > 64 {
				chunk = chunk[:64]
			}
			n := b.Push(chunk)
			pending = pending[n:]
		}
	}()

	// Consumer pops fixed blocks and verifies ordering.
	dst := make([]int16, 32)
	got := 0
	for got < total {
		if !b.Pop(dst) {
			continue
		}
		for i, v := range dst {
			want := int16(got + i)
			if v != want {
				t.Fatalf("sample %d = %d, want %d", got+i, v, want)
			}
		}
		got += len(dst)
	}

	wg.Wait()
	checkInvariant(t, b)
}

func TestBuffer_ResetDuringConcurrentPop(t *testing.T) {
	t.Parallel()

	const (
		capacity = 1024
		resets   = 2000
	)
	b := New(capacity)

	var stop atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)

	// Consumer pops full-capacity blocks so the copy window is wide and
	// a Reset from the other goroutine is likely to land inside it.
	go func() {
		defer wg.Done()
		dst := make([]int16, capacity)
		for !stop.Load() {
			b.Pop(dst)
		}
	}()

	fill := seq(0, capacity)
	for i := 0; i < resets; i++ {
		b.Push(fill)
		b.Reset()

		// The index triple must stay consistent after every reset; a
		// pop publishing across the reset would drive avail below zero
		// and wrap the unsigned counter.
		b.mu.Lock()
		avail, w, r := b.avail, b.writePos, b.readPos
		b.mu.Unlock()
		if avail > capacity {
			t.Fatalf("avail = %d exceeds capacity %d (counter wrapped)", avail, capacity)
		}
		if diff := (w + capacity - r) % capacity; diff != avail%capacity {
			t.Fatalf("avail = %d inconsistent with writePos=%d readPos=%d", avail, w, r)
		}
	}

	stop.Store(true)
	wg.Wait()
	checkInvariant(t, b)

	// The buffer must remain usable for a restarted stream.
	if got := b.Push(seq(0, 64)); got != 64 {
		t.Fatalf("Push() after reset storm = %d, want 64", got)
	}
	dst := make([]int16, 64)
	if !b.Pop(dst) {
		t.Fatal("Pop() after reset storm = false, want true")
	}
	for i, v := range dst {
		if v != int16(i) {
			t.Fatalf("dst[%d] = %d, want %d", i, v, i)
		}
	}
}

func BenchmarkBuffer_PushPop(b *testing.B) {
	buf := New(4096)
	in := seq(0, 128)
	out := make([]int16, 128)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf.Push(in)
		buf.Pop(out)
	}
}
