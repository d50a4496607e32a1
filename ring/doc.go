// SPDX-License-Identifier: EPL-2.0

// Package ring provides the single-producer single-consumer sample
// buffer that connects a stream's producer and consumer sides.
//
// One Buffer belongs to exactly one producer/consumer pair. The
// producer calls Push and Free; the consumer calls Pop; Available and
// Reset may be called from either side. Only the index bookkeeping
// (write position, read position, available count) is guarded by the
// internal mutex — the sample copies themselves run outside the lock,
// which is safe because the producer is the sole writer of the write
// region and the consumer the sole reader of the read region. The lock
// is therefore held for a few integer assignments, never across a copy,
// a decode, or an I/O call, so the real-time consumer can take it
// without missing a deadline.
//
// Push never overwrites unread samples: when the buffer is full it
// writes nothing and the producer simply refrains from reading more
// from storage that cycle. Pop is all-or-nothing and non-blocking: if
// fewer samples are buffered than requested it returns false and the
// caller substitutes silence.
package ring
