// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"io"

	"github.com/ik5/audstream/formats/wav"
)

// Capture pulls blocks from a source into memory, mainly for tests
// and offline mixdowns. It is not safe for concurrent use.
type Capture struct {
	src     BlockSource
	samples []int16
	block   []int16
}

func NewCapture(src BlockSource) *Capture {
	return &Capture{
		src:   src,
		block: make([]int16, src.BlockSamples()),
	}
}

// Pull appends n blocks from the source.
func (c *Capture) Pull(n int) {
	for i := 0; i < n; i++ {
		c.src.NextBlock(c.block)
		c.samples = append(c.samples, c.block...)
	}
}

// Samples returns everything captured so far.
func (c *Capture) Samples() []int16 { return c.samples }

// Reset drops the captured samples.
func (c *Capture) Reset() { c.samples = c.samples[:0] }

// WriteWAV persists the capture as a mono 16-bit WAV stream.
func (c *Capture) WriteWAV(w io.Writer) error {
	if err := wav.WriteWAV16(w, c.src.SampleRate(), c.samples); err != nil {
		return fmt.Errorf("write capture: %w", err)
	}
	return nil
}
