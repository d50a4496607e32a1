// SPDX-License-Identifier: EPL-2.0

package audstream

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/formats/aiff"
	"github.com/ik5/audstream/formats/mp3"
	"github.com/ik5/audstream/formats/vorbis"
	"github.com/ik5/audstream/formats/wav"
	"github.com/ik5/audstream/player"
	"github.com/ik5/audstream/storage"
)

// DefaultRegistry returns a registry with every decoder this module
// ships: wav, mp3, ogg and aiff.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", func() audio.Decoder { return wav.NewDecoder() })
	reg.Register("mp3", func() audio.Decoder { return mp3.NewDecoder() })
	reg.Register("ogg", func() audio.Decoder { return vorbis.NewDecoder() })
	reg.Register("aiff", func() audio.Decoder { return aiff.NewDecoder() })
	reg.Register("aif", func() audio.Decoder { return aiff.NewDecoder() })
	return reg
}

// Engine bundles the four views over one player pool.
type Engine struct {
	Pool       *player.Pool
	Producer   *player.Producer
	Consumer   *player.Consumer
	Controller *player.Controller
}

// NewEngine assembles a ready-to-run engine over src with the default
// decoder registry. Start the producer with Engine.Producer.Run and
// attach Engine.Consumer to an output sink.
func NewEngine(cfg player.Config, src storage.Source) *Engine {
	return NewEngineRegistry(cfg, src, DefaultRegistry())
}

// NewEngineRegistry is NewEngine with a caller-supplied registry.
func NewEngineRegistry(cfg player.Config, src storage.Source, reg *audio.Registry) *Engine {
	pool := player.NewPool(cfg, src, reg)
	return &Engine{
		Pool:       pool,
		Producer:   player.NewProducer(pool),
		Consumer:   player.NewConsumer(pool),
		Controller: player.NewController(pool),
	}
}

// DecodeFile decodes an entire file into mono 16-bit samples using
// the default registry. Intended for offline use; the engine streams
// instead of loading whole files.
func DecodeFile(path string) ([]int16, audio.Format, error) {
	src := storage.NewDir(filepath.Dir(path))
	return DecodeName(src, filepath.Base(path))
}

// DecodeName is DecodeFile against an arbitrary storage source.
func DecodeName(src storage.Source, name string) ([]int16, audio.Format, error) {
	dec, err := DefaultRegistry().ForName(name)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("decode %s: %w", name, err)
	}

	f, err := src.Open(name)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("decode %s: %w", name, err)
	}

	format, err := dec.Open(f)
	if err != nil {
		f.Close()
		return nil, audio.Format{}, fmt.Errorf("decode %s: %w", name, err)
	}
	defer dec.Close()

	var samples []int16
	buf := make([]int16, 4096)
	for {
		n, err := dec.DecodeStep(buf)
		samples = append(samples, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return samples, format, nil
			}
			return samples, format, fmt.Errorf("decode %s: %w", name, err)
		}
	}
}
