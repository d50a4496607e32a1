// SPDX-License-Identifier: EPL-2.0

package player

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/ring"
	"github.com/ik5/audstream/storage"
)

// stepFunc pulls decoded mono samples; it is the decoder's DecodeStep
// or a resampler wrapped around it.
type stepFunc func(dst []int16) (int, error)

// Player is one stream slot. Field ownership:
//
//   - ring, state, stopRequested, gain and the counters are shared;
//     they are internally locked or atomic.
//   - file, dec, pull, srcEOF belong to the controller while the
//     player is idle and to the producer from the Opening store until
//     the Idle store. The state transition is the handoff.
//   - mu guards the snapshot fields (name, format, lastErr, loop)
//     read by Status.
type Player struct {
	index int
	ring  *ring.Buffer

	state         atomic.Int32
	stopRequested atomic.Bool
	gain          atomic.Uint64

	underruns atomic.Uint64
	decoded   atomic.Uint64
	consumed  atomic.Int64
	total     atomic.Int64

	// ctl serializes control operations (Play/Stop) per player.
	ctl sync.Mutex

	mu      sync.Mutex
	name    string
	format  audio.Format
	lastErr error
	loop    bool

	file   storage.File
	dec    audio.Decoder
	pull   stepFunc
	srcEOF bool
}

func newPlayer(index, capacity int) *Player {
	p := &Player{
		index: index,
		ring:  ring.New(capacity),
	}
	p.setGain(1.0)
	return p
}

// Index returns the slot number of the player within its pool.
func (p *Player) Index() int { return p.index }

// State returns the current lifecycle stage.
func (p *Player) State() State { return State(p.state.Load()) }

func (p *Player) setState(s State) { p.state.Store(int32(s)) }

// Underruns returns how many consumer blocks were substituted with
// silence because the ring ran dry.
func (p *Player) Underruns() uint64 { return p.underruns.Load() }

// Gain returns the per-player mix gain.
func (p *Player) Gain() float64 {
	return math.Float64frombits(p.gain.Load())
}

func (p *Player) setGain(g float64) {
	p.gain.Store(math.Float64bits(g))
}

// snapshot copies the mu-guarded fields.
func (p *Player) snapshot() (name string, format audio.Format, lastErr error, loop bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name, p.format, p.lastErr, p.loop
}

func (p *Player) setErr(err error) {
	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
}

func (p *Player) setFormat(f audio.Format) {
	p.mu.Lock()
	p.format = f
	p.mu.Unlock()
}

// resetCounters clears telemetry before a new stream starts.
func (p *Player) resetCounters() {
	p.underruns.Store(0)
	p.decoded.Store(0)
	p.consumed.Store(0)
	p.total.Store(0)
}
