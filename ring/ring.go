// SPDX-License-Identifier: EPL-2.0

package ring

import "sync"

// Buffer is a fixed-capacity circular buffer of mono int16 samples.
// See the package documentation for the ownership and locking rules.
type Buffer struct {
	mu sync.Mutex

	// Shared index triple, valid only under mu. The invariant
	// avail == (writePos - readPos) mod cap holds after every call.
	writePos uint32
	readPos  uint32
	avail    uint32

	// gen is bumped by Reset. Push and Pop record it before their
	// unlocked copy and abort the publish when it changed, so a reset
	// landing inside the copy window cannot desync the index triple.
	gen uint32

	buf []int16
}

// New allocates a Buffer holding capacity samples. The backing array is
// allocated once and reused across play cycles via Reset.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}
	return &Buffer{buf: make([]int16, capacity)}
}

// Capacity returns the fixed sample capacity.
func (b *Buffer) Capacity() int { return len(b.buf) }

// Available returns the number of buffered samples ready to pop.
func (b *Buffer) Available() int {
	b.mu.Lock()
	n := b.avail
	b.mu.Unlock()
	return int(n)
}

// Free returns the number of samples that can currently be pushed.
func (b *Buffer) Free() int {
	b.mu.Lock()
	n := uint32(len(b.buf)) - b.avail
	b.mu.Unlock()
	return int(n)
}

// Push copies samples into the buffer and returns how many were
// accepted. It never overwrites unread samples: a full buffer accepts
// zero. Producer side only.
func (b *Buffer) Push(samples []int16) int {
	b.mu.Lock()
	w := b.writePos
	free := uint32(len(b.buf)) - b.avail
	gen := b.gen
	b.mu.Unlock()

	n := uint32(len(samples))
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	// Copy outside the lock: the write region cannot be touched by the
	// consumer until the publish below.
	b.copyIn(w, samples[:n])

	b.mu.Lock()
	if b.gen != gen {
		// Reset raced the copy. The indices were rewound, so the
		// staged samples belong to a discarded stream.
		b.mu.Unlock()
		return 0
	}
	b.writePos = wrap(w+n, uint32(len(b.buf)))
	b.avail += n
	b.mu.Unlock()
	return int(n)
}

// Pop moves exactly len(dst) samples into dst, or nothing at all. It
// returns false without blocking when fewer samples are available, so
// the caller can substitute silence. Consumer side only.
func (b *Buffer) Pop(dst []int16) bool {
	n := uint32(len(dst))

	b.mu.Lock()
	if b.avail < n {
		b.mu.Unlock()
		return false
	}
	r := b.readPos
	gen := b.gen
	b.mu.Unlock()

	b.copyOut(dst, r)

	b.mu.Lock()
	if b.gen != gen {
		// Reset raced the copy: the samples in dst are from a
		// discarded stream. Report failure so the caller substitutes
		// silence instead of playing them.
		b.mu.Unlock()
		return false
	}
	b.readPos = wrap(r+n, uint32(len(b.buf)))
	b.avail -= n
	b.mu.Unlock()
	return true
}

// Reset discards buffered samples and rewinds both positions. A Push or
// Pop whose copy is in flight when Reset runs publishes nothing.
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.writePos = 0
	b.readPos = 0
	b.avail = 0
	b.gen++
	b.mu.Unlock()
}

// copyIn writes src at position w, splitting at the wrap point.
func (b *Buffer) copyIn(w uint32, src []int16) {
	first := uint32(len(b.buf)) - w
	if first >= uint32(len(src)) {
		copy(b.buf[w:], src)
		return
	}
	copy(b.buf[w:], src[:first])
	copy(b.buf, src[first:])
}

// copyOut reads len(dst) samples starting at position r.
func (b *Buffer) copyOut(dst []int16, r uint32) {
	first := uint32(len(b.buf)) - r
	if first >= uint32(len(dst)) {
		copy(dst, b.buf[r:r+uint32(len(dst))])
		return
	}
	copy(dst[:first], b.buf[r:])
	copy(dst[first:], b.buf)
}

// wrap reduces pos into [0, capacity). Positions advance by at most
// capacity per call, so a single subtraction suffices.
func wrap(pos, capacity uint32) uint32 {
	if pos >= capacity {
		return pos - capacity
	}
	return pos
}
