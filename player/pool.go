// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/storage"
)

// Pool owns a fixed set of players plus the collaborators they share:
// the storage source, the decoder registry and the logger. Everything
// is allocated once here; the producer, consumer and controller are
// views over the same pool.
type Pool struct {
	cfg     Config
	players []*Player
	src     storage.Source
	reg     *audio.Registry
	volume  atomic.Uint64
}

// NewPool builds the pool with cfg defaults applied. All ring buffers
// are allocated up front.
func NewPool(cfg Config, src storage.Source, reg *audio.Registry) *Pool {
	cfg = cfg.withDefaults()
	pl := &Pool{
		cfg:     cfg,
		players: make([]*Player, cfg.Players),
		src:     src,
		reg:     reg,
	}
	for i := range pl.players {
		pl.players[i] = newPlayer(i, cfg.RingCapacity)
	}
	pl.SetVolume(1.0)
	return pl
}

// Config returns the effective configuration, defaults applied.
func (pl *Pool) Config() Config { return pl.cfg }

// Len returns the number of player slots.
func (pl *Pool) Len() int { return len(pl.players) }

// Player returns the slot at index.
func (pl *Pool) Player(index int) (*Player, error) {
	if index < 0 || index >= len(pl.players) {
		return nil, fmt.Errorf("%w: %d of %d", ErrBadIndex, index, len(pl.players))
	}
	return pl.players[index], nil
}

// Volume returns the master mix volume.
func (pl *Pool) Volume() float64 {
	return math.Float64frombits(pl.volume.Load())
}

// SetVolume sets the master mix volume. Values are clamped to [0, 1].
func (pl *Pool) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	pl.volume.Store(math.Float64bits(v))
}
