// SPDX-License-Identifier: EPL-2.0

package player

import (
	"time"

	"github.com/ik5/audstream/audio"
)

// Status is a point-in-time snapshot of one player slot, assembled by
// Controller.Status from atomics and the player's snapshot fields.
type Status struct {
	Index  int
	State  State
	Name   string
	Format audio.Format

	// Buffered and Capacity describe the ring fill in samples.
	Buffered int
	Capacity int

	// Underruns counts silence blocks substituted by the consumer.
	Underruns uint64

	// Decoded counts mono samples pushed into the ring.
	Decoded uint64

	// Consumed and Total are container byte offsets, when the
	// decoder tracks them. Zero otherwise.
	Consumed int64
	Total    int64

	Gain float64

	// Err is the last producer-side failure, nil while healthy.
	Err error
}

// Position estimates the playback position from container byte
// offsets. Only PCM containers map bytes to time directly; other
// codecs return zero.
func (s Status) Position() time.Duration {
	return s.pcmDuration(s.Consumed)
}

// Duration estimates the stream length for PCM containers that
// declare a payload size. Zero when unknown.
func (s Status) Duration() time.Duration {
	return s.pcmDuration(s.Total)
}

func (s Status) pcmDuration(bytes int64) time.Duration {
	if s.Format.Codec != audio.CodecPCM16 || s.Format.SampleRate == 0 {
		return 0
	}
	byteRate := int64(s.Format.SampleRate) * int64(s.Format.Channels) * 2
	if byteRate == 0 {
		return 0
	}
	return time.Duration(bytes) * time.Second / time.Duration(byteRate)
}
