// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// Speaker plays a block source on the system audio device. The oto
// context is process-global, so build at most one Speaker per process.
type Speaker struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewSpeaker opens the audio device at the source rate and binds the
// source to it. Playback starts with Start.
func NewSpeaker(src BlockSource) (*Speaker, error) {
	op := &oto.NewContextOptions{
		SampleRate:   src.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	s := &Speaker{ctx: ctx}
	s.player = ctx.NewPlayer(newBlockReader(src))
	return s, nil
}

// Start begins pulling blocks; the device paces the source.
func (s *Speaker) Start() { s.player.Play() }

// Pause suspends the device without tearing it down.
func (s *Speaker) Pause() { s.player.Pause() }

// Close releases the device player.
func (s *Speaker) Close() error {
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("close audio player: %w", err)
	}
	return nil
}

// blockReader adapts a BlockSource to the io.Reader oto pulls from,
// serializing samples as little-endian int16. It never returns EOF;
// a silent engine produces silent bytes.
type blockReader struct {
	src BlockSource
	blk []int16
	raw []byte
	off int
}

func newBlockReader(src BlockSource) *blockReader {
	n := src.BlockSamples()
	return &blockReader{
		src: src,
		blk: make([]int16, n),
		raw: make([]byte, 0, 2*n),
	}
}

func (r *blockReader) Read(p []byte) (int, error) {
	if r.off >= len(r.raw) {
		r.src.NextBlock(r.blk)
		r.raw = r.raw[:2*len(r.blk)]
		for i, s := range r.blk {
			binary.LittleEndian.PutUint16(r.raw[2*i:], uint16(s))
		}
		r.off = 0
	}
	n := copy(p, r.raw[r.off:])
	r.off += n
	return n, nil
}
