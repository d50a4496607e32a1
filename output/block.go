// SPDX-License-Identifier: EPL-2.0

package output

// BlockSource supplies fixed-size blocks of mono 16-bit samples at a
// fixed rate. NextBlock must be non-blocking: when no stream has data
// it fills dst with silence. player.Consumer implements this.
type BlockSource interface {
	// BlockSamples is the block size NextBlock expects.
	BlockSamples() int

	// SampleRate is the stream rate in Hz.
	SampleRate() int

	// NextBlock fills dst, whose length must be BlockSamples.
	NextBlock(dst []int16)
}
