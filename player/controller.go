// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/storage"
)

// stopPoll is the period at which Stop re-checks the player state.
const stopPoll = 10 * time.Millisecond

// PlayOpts tunes a single play request.
type PlayOpts struct {
	// Loop rewinds the stream at end of file instead of stopping.
	Loop bool

	// Gain is the per-player mix gain. Zero means unity.
	Gain float64
}

// Controller is the control surface of the pool: play, stop, status
// and file listing. It is safe for concurrent use; requests for the
// same player are serialized and the loser gets ErrBusy.
type Controller struct {
	pool *Pool
	log  *slog.Logger
}

func NewController(pool *Pool) *Controller {
	return &Controller{pool: pool, log: pool.cfg.Logger}
}

// Play binds name to the player at index and requests playback. A
// player that is already active is first stopped and waited for. The
// file must exist and carry a registered extension; the container
// header itself is parsed later, on the producer side.
func (c *Controller) Play(index int, name string, opts PlayOpts) error {
	p, err := c.pool.Player(index)
	if err != nil {
		return err
	}

	if !p.ctl.TryLock() {
		return fmt.Errorf("%w: player %d", ErrBusy, index)
	}
	defer p.ctl.Unlock()

	if p.State().Active() {
		if err := c.stopWait(p); err != nil {
			return err
		}
	}

	f, err := c.pool.src.Open(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return fmt.Errorf("open %s: %w", name, err)
	}

	dec, err := c.decoderFor(name, f)
	if err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	gain := opts.Gain
	if gain == 0 {
		gain = 1.0
	}

	p.mu.Lock()
	p.name = name
	p.lastErr = nil
	p.loop = opts.Loop
	p.mu.Unlock()

	p.file = f
	p.dec = dec
	p.setGain(gain)
	p.resetCounters()
	p.ring.Reset()
	p.stopRequested.Store(false)

	// Publishes the handoff; the producer owns the player from here.
	p.setState(StateOpening)
	c.log.Info("play requested",
		slog.Int("player", index),
		slog.String("name", name),
		slog.Bool("loop", opts.Loop),
	)
	return nil
}

// decoderFor picks a decoder by file extension, falling back to
// header sniffing for names the registry does not recognize.
func (c *Controller) decoderFor(name string, f storage.File) (audio.Decoder, error) {
	if dec, err := c.pool.reg.ForName(name); err == nil {
		return dec, nil
	}

	var hdr [16]byte
	n, _ := io.ReadFull(f, hdr[:])
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind after sniff: %w", err)
	}

	format, ok := audio.Sniff(hdr[:n])
	if !ok {
		return nil, audio.ErrUnknownFormat
	}
	factory, ok := c.pool.reg.Get(format)
	if !ok {
		return nil, audio.ErrUnknownFormat
	}
	return factory(), nil
}

// Stop requests the player at index to stop and waits until the
// producer parks it, bounded by Config.StopTimeout.
func (c *Controller) Stop(index int) error {
	p, err := c.pool.Player(index)
	if err != nil {
		return err
	}
	if !p.ctl.TryLock() {
		return fmt.Errorf("%w: player %d", ErrBusy, index)
	}
	defer p.ctl.Unlock()

	if !p.State().Active() {
		return nil
	}
	return c.stopWait(p)
}

// StopAll requests every active player to stop, then waits for all of
// them. The first timeout is reported.
func (c *Controller) StopAll() error {
	for _, p := range c.pool.players {
		if p.State().Active() {
			p.stopRequested.Store(true)
		}
	}

	var firstErr error
	for _, p := range c.pool.players {
		if err := c.waitIdle(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// stopWait flags the player and blocks until the producer
// acknowledges. Cancellation is cooperative: the producer observes
// the flag on its next cycle, so this can take up to StopTimeout.
func (c *Controller) stopWait(p *Player) error {
	p.stopRequested.Store(true)
	return c.waitIdle(p)
}

func (c *Controller) waitIdle(p *Player) error {
	deadline := time.Now().Add(c.pool.cfg.StopTimeout)
	for p.State().Active() {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: player %d", ErrStopTimeout, p.index)
		}
		time.Sleep(stopPoll)
	}
	return nil
}

// SetGain adjusts the mix gain of one player.
func (c *Controller) SetGain(index int, gain float64) error {
	p, err := c.pool.Player(index)
	if err != nil {
		return err
	}
	p.setGain(gain)
	return nil
}

// SetVolume adjusts the master mix volume, clamped to [0, 1].
func (c *Controller) SetVolume(v float64) { c.pool.SetVolume(v) }

// Volume returns the master mix volume.
func (c *Controller) Volume() float64 { return c.pool.Volume() }

// Status returns a snapshot of every player slot.
func (c *Controller) Status() []Status {
	out := make([]Status, len(c.pool.players))
	for i, p := range c.pool.players {
		name, format, lastErr, _ := p.snapshot()
		out[i] = Status{
			Index:     i,
			State:     p.State(),
			Name:      name,
			Format:    format,
			Buffered:  p.ring.Available(),
			Capacity:  p.ring.Capacity(),
			Underruns: p.underruns.Load(),
			Decoded:   p.decoded.Load(),
			Consumed:  p.consumed.Load(),
			Total:     p.total.Load(),
			Gain:      p.Gain(),
			Err:       lastErr,
		}
	}
	return out
}

// List returns the storage entries a registered decoder can play,
// filtered by extension.
func (c *Controller) List() ([]storage.Entry, error) {
	entries, err := c.pool.src.List()
	if err != nil {
		return nil, fmt.Errorf("list storage: %w", err)
	}

	playable := entries[:0]
	for _, e := range entries {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(e.Name)), ".")
		if _, ok := c.pool.reg.Get(ext); ok {
			playable = append(playable, e)
		}
	}
	return playable, nil
}
