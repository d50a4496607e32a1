// SPDX-License-Identifier: EPL-2.0

// Package pcm provides sample-level helpers for mono 16-bit PCM audio.
//
// The engine works on int16 samples throughout; this package holds the
// conversions into that representation:
//   - DownmixStereo averages interleaved stereo frames into mono
//   - Float32ToInt16 clamps and scales normalized samples
//   - Resampler converts a mono int16 stream between sample rates
//
// # Downmixing
//
// Stereo sources are reduced to mono by averaging left and right in a
// 32-bit intermediate. Adding two int16 values directly overflows at
// the extremes; DownmixFrame avoids that:
//
//	mono := pcm.DownmixFrame(32767, -32768) // -1, not garbage
//
// # Resampling
//
// Resampler is a pull-based converter using Catmull-Rom cubic
// interpolation. It wraps any function that yields source samples:
//
//	rs := pcm.NewResampler(src.DecodeStep, 48000, 44100)
//	n, err := rs.Read(buf)
package pcm
