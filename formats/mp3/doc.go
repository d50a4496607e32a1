// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides streaming MPEG Layer III decoding.
//
// The decoder is split in two layers. A staging-buffer scanner reads
// compressed bytes from storage in bounded chunks, locates frame
// boundaries by parsing MPEG headers, and resynchronizes after junk
// (leading ID3 tags, mid-stream sync loss) by discarding exactly one
// byte per failed attempt — never more, so a valid frame boundary can
// not be skipped. Validated frames are then fed to
// github.com/hajimehoshi/go-mp3 for PCM synthesis.
//
// End of stream is declared when the staging buffer holds less than a
// minimum viable frame and storage has no more bytes.
//
// # Usage
//
//	dec := mp3.NewDecoder()
//	format, err := dec.Open(file)
//	buf := make([]int16, 1152)
//	n, err := dec.DecodeStep(buf)
//
// Output is always mono int16: go-mp3 emits interleaved stereo, which
// each step downmixes through a 32-bit intermediate.
package mp3
