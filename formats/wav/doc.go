// SPDX-License-Identifier: EPL-2.0

// Package wav provides streaming WAV decoding and encoding.
//
// The decoder handles PCM 16-bit mono or stereo files. It walks the
// RIFF chunk list rather than assuming the canonical 44-byte layout,
// so files with LIST/fact/other chunks before "data" parse correctly.
// Stereo payloads are downmixed to mono during decoding.
//
// # Decoding
//
//	dec := wav.NewDecoder()
//	format, err := dec.Open(file)
//	buf := make([]int16, 2048)
//	n, err := dec.DecodeStep(buf)
//
// DecodeStep reads one bounded chunk from storage per call, which is
// what the producer loop needs to keep per-stream work fair.
//
// # Validation
//
// Open rejects, with a sentinel error, anything that is not RIFF/WAVE
// (ErrNotWavFile), not linear PCM at 16 bits (ErrOnlyPCM16bitSupported),
// or not mono/stereo (ErrBadChannelCount). A missing data chunk is
// ErrNoDataChunk.
//
// # Writing WAV Files
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	err := wav.WriteWAV16(file, 44100, samples)
package wav
