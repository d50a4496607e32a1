// SPDX-License-Identifier: EPL-2.0

package mp3

// MPEG audio frame header parsing, enough to locate frame boundaries
// and read the stream format. PCM synthesis is delegated to go-mp3.

const (
	versionMPEG25 = 0
	versionMPEG2  = 2
	versionMPEG1  = 3
)

// Layer III bitrates in kbps, indexed by the header bitrate field.
// Index 0 (free format) and 15 are invalid.
var (
	bitratesV1 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320}
	bitratesV2 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160}
)

var sampleRates = map[byte][3]int{
	versionMPEG1:  {44100, 48000, 32000},
	versionMPEG2:  {22050, 24000, 16000},
	versionMPEG25: {11025, 12000, 8000},
}

// frameInfo describes one MPEG Layer III frame.
type frameInfo struct {
	size        int // total frame length in bytes, header included
	sampleRate  int
	channels    int
	bitrateKbps int
	samples     int // PCM samples per channel in this frame
}

// parseFrameHeader decodes the 4-byte header at the start of h. It
// accepts only MPEG-1/2/2.5 Layer III with a known bitrate and sample
// rate; anything else reports false and the caller resynchronizes.
func parseFrameHeader(h []byte) (frameInfo, bool) {
	if len(h) < 4 {
		return frameInfo{}, false
	}
	if h[0] != 0xFF || h[1]&0xE0 != 0xE0 {
		return frameInfo{}, false
	}

	version := h[1] >> 3 & 0x3
	layer := h[1] >> 1 & 0x3
	if version == 1 || layer != 1 { // reserved version, or not Layer III
		return frameInfo{}, false
	}

	bitrateIdx := h[2] >> 4 & 0xF
	rateIdx := h[2] >> 2 & 0x3
	padding := int(h[2] >> 1 & 0x1)
	mode := h[3] >> 6 & 0x3

	if bitrateIdx == 0 || bitrateIdx == 15 || rateIdx == 3 {
		return frameInfo{}, false
	}

	var (
		bitrate int
		samples int
	)
	if version == versionMPEG1 {
		bitrate = bitratesV1[bitrateIdx]
		samples = 1152
	} else {
		bitrate = bitratesV2[bitrateIdx]
		samples = 576
	}
	sampleRate := sampleRates[version][rateIdx]

	channels := 2
	if mode == 3 {
		channels = 1
	}

	// Layer III frame sizing: (samples/8) * bitrate / samplerate.
	size := samples / 8 * bitrate * 1000 / sampleRate
	size += padding
	if size < 4 {
		return frameInfo{}, false
	}

	return frameInfo{
		size:        size,
		sampleRate:  sampleRate,
		channels:    channels,
		bitrateKbps: bitrate,
		samples:     samples,
	}, true
}
