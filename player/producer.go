// SPDX-License-Identifier: EPL-2.0

package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ik5/audstream/pcm"
)

// idleWait is how long Run sleeps when no player needed service.
const idleWait = 2 * time.Millisecond

// progresser is implemented by decoders that track container byte
// offsets.
type progresser interface {
	Progress() (consumed, total int64)
}

// Producer services all players in the pool: opening files, prefilling
// rings and refilling them as the consumer drains. It is the only
// goroutine that performs storage I/O and decoding. Run one Producer
// per pool.
type Producer struct {
	pool    *Pool
	log     *slog.Logger
	scratch []int16
}

func NewProducer(pool *Pool) *Producer {
	return &Producer{
		pool:    pool,
		log:     pool.cfg.Logger,
		scratch: make([]int16, pool.cfg.ChunkBytes/2),
	}
}

// Run services the pool until ctx is cancelled. It sleeps briefly
// whenever a full pass over the pool found nothing to do.
func (pr *Producer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !pr.ServiceOnce() {
			time.Sleep(idleWait)
		}
	}
}

// ServiceOnce performs one pass over all players, at most one bounded
// decode step each so no stream can starve the others. It reports
// whether any player needed work.
func (pr *Producer) ServiceOnce() bool {
	worked := false
	for _, p := range pr.pool.players {
		if pr.service(p) {
			worked = true
		}
	}
	return worked
}

func (pr *Producer) service(p *Player) bool {
	switch p.State() {
	case StateOpening:
		if p.stopRequested.Load() {
			pr.finish(p, "stopped")
			return true
		}
		pr.open(p)
		return true

	case StateFilling:
		if p.stopRequested.Load() {
			pr.finish(p, "stopped")
			return true
		}
		pr.fill(p)
		return true

	case StatePlaying:
		if p.stopRequested.Load() {
			pr.finish(p, "stopped")
			return true
		}
		if p.srcEOF {
			p.setState(StateDraining)
			return true
		}
		if p.ring.Available() >= pr.pool.cfg.refillThreshold() {
			return false
		}
		pr.step(p)
		return true

	case StateDraining:
		if p.stopRequested.Load() {
			pr.finish(p, "stopped")
			return true
		}
		// A tail shorter than one block can never be popped; it is
		// dropped with the stream end.
		if p.ring.Available() >= pr.pool.cfg.BlockSamples {
			return false
		}
		if _, _, _, loop := p.snapshot(); loop {
			pr.rewind(p)
		} else {
			pr.finish(p, "finished")
		}
		return true

	default:
		return false
	}
}

// open parses the container header of the pending file and prepares
// the sample path, inserting a resampler when the file rate differs
// from the engine rate.
func (pr *Producer) open(p *Player) {
	name, _, _, _ := p.snapshot()

	format, err := p.dec.Open(p.file)
	if err != nil {
		// Open does not take ownership of the file on failure.
		p.file.Close()
		p.file = nil
		pr.fail(p, name, fmt.Errorf("%w: %w", ErrInvalidFormat, err))
		return
	}
	p.setFormat(format)

	p.pull = p.dec.DecodeStep
	if format.SampleRate != pr.pool.cfg.SampleRate {
		rs, err := pcm.NewResampler(p.dec.DecodeStep, format.SampleRate, pr.pool.cfg.SampleRate)
		if err != nil {
			pr.fail(p, name, fmt.Errorf("%w: %w", ErrInvalidFormat, err))
			return
		}
		p.pull = rs.Read
	}

	p.srcEOF = false
	p.setState(StateFilling)
	pr.log.Info("stream opened",
		slog.Int("player", p.index),
		slog.String("name", name),
		slog.String("codec", format.Codec.String()),
		slog.Int("channels", format.Channels),
		slog.Int("rate", format.SampleRate),
	)
}

// fill runs decode steps until the ring holds the prefill level, then
// lets the consumer start draining.
func (pr *Producer) fill(p *Player) {
	if !pr.step(p) {
		return
	}
	if p.ring.Available() >= pr.pool.cfg.PrefillSamples || p.srcEOF {
		p.setState(StatePlaying)
	}
}

/// step performs one bounded decode step: pull at most one chunk of
// samples, never more than the ring can accept, and push them. It
// reports false if the player was torn down by a decode error.
func (pr *Producer) step(p *Player) bool {
	free := p.ring.Free()
	if free == 0 {
		return true
	}
	dst := pr.scratch
	if free < len(dst) {
		dst = dst[:free]
	}

	n, err := p.pull(dst)
	if n > 0 {
		p.ring.Push(dst[:n])
		p.decoded.Add(uint64(n))
	}
	if prog, ok := p.dec.(progresser); ok {
		consumed, total := prog.Progress()
		p.consumed.Store(consumed)
		p.total.Store(total)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			p.srcEOF = true
			return true
		}
		name, _, _, _ := p.snapshot()
		pr.fail(p, name, fmt.Errorf("decode %s: %w", name, err))
		return false
	}
	return true
}

// rewind re-opens the current file for looped playback.
func (pr *Producer) rewind(p *Player) {
	name, _, _, _ := p.snapshot()
	if err := p.dec.Close(); err != nil {
		pr.log.Warn("close before rewind", slog.Int("player", p.index), slog.String("error", err.Error()))
	}
	f, err := pr.pool.src.Open(name)
	if err != nil {
		pr.fail(p, name, fmt.Errorf("reopen %s: %w", name, err))
		return
	}
	p.file = f
	p.ring.Reset()
	pr.log.Debug("stream loops", slog.Int("player", p.index), slog.String("name", name))
	pr.open(p)
}

// finish tears the stream down and parks the player. The Idle store
// is last so a Play request cannot race the cleanup.
func (pr *Producer) finish(p *Player, reason string) {
	name, _, _, _ := p.snapshot()
	if p.dec != nil {
		if err := p.dec.Close(); err != nil {
			pr.log.Warn("close stream",
				slog.Int("player", p.index), slog.String("error", err.Error()))
		}
	}
	p.file = nil
	p.pull = nil
	p.srcEOF = false
	p.ring.Reset()
	p.stopRequested.Store(false)
	p.setState(StateIdle)
	pr.log.Info("stream "+reason,
		slog.Int("player", p.index),
		slog.String("name", name),
		slog.Uint64("underruns", p.underruns.Load()),
	)
}

// fail records the error, logs it and parks the player.
func (pr *Producer) fail(p *Player, name string, err error) {
	p.setErr(err)
	pr.log.Error("stream failed",
		slog.Int("player", p.index),
		slog.String("name", name),
		slog.String("error", err.Error()),
	)
	pr.finish(p, "aborted")
}
