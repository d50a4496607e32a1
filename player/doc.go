// SPDX-License-Identifier: EPL-2.0

// Package player implements a fixed pool of audio players fed from a
// storage source. Each player owns a ring buffer that connects two
// execution contexts: the producer, which may block on storage reads
// and decoding, and the consumer, which mixes fixed-size blocks for
// the output device and must never block.
//
// The producer side runs a cooperative service loop over all players.
// The consumer side is driven by the output device, one block at a
// time. Control (play, stop, status) goes through Controller.
package player
