// SPDX-License-Identifier: EPL-2.0

// Package audio defines the decoder contract shared by all container
// formats and the registry that selects one per stream.
//
// # Decoder Interface
//
// Every container format implements Decoder:
//
//	type Decoder interface {
//	    Open(f storage.File) (Format, error)
//	    DecodeStep(dst []int16) (int, error)
//	    EOF() bool
//	    Close() error
//	}
//
// Open parses and validates the container headers; DecodeStep performs
// one bounded read-and-decode pass, producing mono 16-bit samples. The
// producer loop drives DecodeStep and pushes the output into the
// stream's ring buffer — decoders never touch shared state and may
// block on storage freely.
//
// # Format Registry
//
// Decoders register a factory per file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", func() audio.Decoder { return wav.NewDecoder() })
//	dec, err := registry.ForName("track1.wav")
//
// Sniff recognizes the built-in container magics when a name has no
// usable extension.
package audio
