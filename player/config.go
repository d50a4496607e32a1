// SPDX-License-Identifier: EPL-2.0

package player

import (
	"log/slog"
	"time"
)

// Defaults applied by withDefaults for zero Config fields.
const (
	DefaultSampleRate   = 44100
	DefaultBlockSamples = 128
	DefaultRingCapacity = 8192
	DefaultRefill       = 0.5
	DefaultChunkBytes   = 4096
	DefaultStopTimeout  = time.Second
	DefaultPlayers      = 4
)

// Config tunes the engine. The zero value is usable; every field has
// a default. All buffers are allocated once when the pool is built,
// nothing grows at runtime.
type Config struct {
	// SampleRate is the output rate in Hz. Files at other rates
	// are resampled on the producer side.
	SampleRate int

	// BlockSamples is the number of mono samples the consumer
	// hands to the output device per cycle.
	BlockSamples int

	// RingCapacity is the per-player ring buffer size in samples.
	RingCapacity int

	// RefillFraction is the fill level below which the producer
	// performs a decode step, as a fraction of RingCapacity.
	// Playback variants disagree on the right value, so it is a
	// tunable rather than a constant.
	RefillFraction float64

	// ChunkBytes bounds a single storage read inside one decode
	// step.
	ChunkBytes int

	// PrefillSamples is the fill level a freshly opened stream
	// reaches before the consumer starts draining it. Trades
	// startup latency for glitch avoidance. Defaults to half the
	// ring capacity.
	PrefillSamples int

	// StopTimeout bounds how long Stop waits for the producer to
	// acknowledge.
	StopTimeout time.Duration

	// Players is the pool size.
	Players int

	// Logger receives lifecycle events from the producer and the
	// controller. The consumer path never logs. Nil means
	// slog.Default().
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.BlockSamples <= 0 {
		c.BlockSamples = DefaultBlockSamples
	}
	if c.RingCapacity <= 0 {
		c.RingCapacity = DefaultRingCapacity
	}
	if c.RefillFraction <= 0 || c.RefillFraction >= 1 {
		c.RefillFraction = DefaultRefill
	}
	if c.ChunkBytes <= 0 {
		c.ChunkBytes = DefaultChunkBytes
	}
	if c.PrefillSamples <= 0 || c.PrefillSamples > c.RingCapacity {
		c.PrefillSamples = c.RingCapacity / 2
	}
	if c.StopTimeout <= 0 {
		c.StopTimeout = DefaultStopTimeout
	}
	if c.Players <= 0 {
		c.Players = DefaultPlayers
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// refillThreshold is the fill level below which the producer decodes
// more.
func (c Config) refillThreshold() int {
	return int(c.RefillFraction * float64(c.RingCapacity))
}
