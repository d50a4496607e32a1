// SPDX-License-Identifier: EPL-2.0

package pcm

// DownmixFrame averages one stereo frame into a mono sample. The sum is
// computed in 32 bits; an arithmetic shift keeps (32767, -32768) at -1
// instead of wrapping.
func DownmixFrame(left, right int16) int16 {
	return int16((int32(left) + int32(right)) >> 1)
}

// DownmixStereo averages interleaved stereo samples from src into dst
// and returns the number of mono samples produced. Odd trailing samples
// in src are ignored. dst may alias the front of src.
func DownmixStereo(dst, src []int16) int {
	frames := len(src) / 2
	if frames > len(dst) {
		frames = len(dst)
	}
	for i := 0; i < frames; i++ {
		dst[i] = DownmixFrame(src[2*i], src[2*i+1])
	}
	return frames
}

// Float32ToInt16 converts a normalized sample in [-1, 1] to int16,
// clamping out-of-range input.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Float32ToInt16Buf converts src into dst and returns the number of
// samples written, bounded by the shorter slice.
func Float32ToInt16Buf(dst []int16, src []float32) int {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = Float32ToInt16(src[i])
	}
	return n
}
