// SPDX-License-Identifier: EPL-2.0

package player

// Consumer mixes one fixed-size block per cycle from all draining
// players. It is the real-time side of the pool: NextBlock performs
// no I/O, no allocation and no logging, and touches each ring only
// through its non-blocking Pop.
type Consumer struct {
	pool  *Pool
	block []int16
	acc   []int32
}

func NewConsumer(pool *Pool) *Consumer {
	n := pool.cfg.BlockSamples
	return &Consumer{
		pool:  pool,
		block: make([]int16, n),
		acc:   make([]int32, n),
	}
}

// BlockSamples returns the mix block size in mono samples.
func (c *Consumer) BlockSamples() int { return c.pool.cfg.BlockSamples }

// SampleRate returns the output rate in Hz.
func (c *Consumer) SampleRate() int { return c.pool.cfg.SampleRate }

// NextBlock fills dst with the next mixed block. Players whose ring
// cannot supply a full block contribute silence; in steady state that
// is an underrun and counts as one. len(dst) must be BlockSamples.
func (c *Consumer) NextBlock(dst []int16) {
	for i := range c.acc {
		c.acc[i] = 0
	}

	volume := c.pool.Volume()
	for _, p := range c.pool.players {
		st := p.State()
		if st != StatePlaying && st != StateDraining {
			continue
		}
		if !p.ring.Pop(c.block) {
			// While draining or stopping an empty ring is the
			// expected end of the stream, not an underrun.
			if st == StatePlaying && !p.stopRequested.Load() {
				p.underruns.Add(1)
			}
			continue
		}
		gain := p.Gain() * volume
		for i, s := range c.block {
			c.acc[i] += int32(float64(s) * gain)
		}
	}

	for i, v := range c.acc {
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		dst[i] = int16(v)
	}
}
