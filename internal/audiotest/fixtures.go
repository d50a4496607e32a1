// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// Chunk is an extra RIFF sub-chunk inserted before "data" in BuildWAV.
type Chunk struct {
	ID   string
	Body []byte
}

// BuildWAV constructs a PCM 16-bit WAV file in memory. samples are
// interleaved when channels == 2. extra chunks are emitted between the
// fmt and data chunks, which exercises chunk-skip logic in parsers.
func BuildWAV(sampleRate, channels int, samples []int16, extra ...Chunk) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	byteRate := uint32(sampleRate) * uint32(numChannels) * 2
	blockAlign := numChannels * 2
	dataSize := uint32(len(samples) * 2)

	extraSize := 0
	for _, c := range extra {
		extraSize += 8 + len(c.Body) + len(c.Body)&1
	}
	riffSize := 36 + dataSize + uint32(extraSize)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, uint16(16)) // bits

	for _, c := range extra {
		buf.WriteString(c.ID)
		binary.Write(buf, binary.LittleEndian, uint32(len(c.Body)))
		buf.Write(c.Body)
		if len(c.Body)&1 == 1 {
			buf.WriteByte(0) // RIFF pad
		}
	}

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}

	return buf.Bytes()
}

// Corrupt returns a copy of data with the bytes at off replaced.
func Corrupt(data []byte, off int, with string) []byte {
	out := bytes.Clone(data)
	copy(out[off:], with)
	return out
}

// ConstSamples returns n mono samples all set to v.
func ConstSamples(v int16, n int) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// InterleaveStereo builds an interleaved stereo buffer from per-channel
// constants.
func InterleaveStereo(left, right int16, frames int) []int16 {
	s := make([]int16, 2*frames)
	for i := 0; i < frames; i++ {
		s[2*i] = left
		s[2*i+1] = right
	}
	return s
}
