// SPDX-License-Identifier: EPL-2.0

// Package audstream is a multi-stream, storage-backed audio player
// engine. A fixed pool of players streams files from a storage source
// through per-stream ring buffers into a real-time mixer, one
// fixed-size block at a time.
//
// # Supported Formats
//
// The default registry decodes the following containers to mono
// 16-bit PCM:
//   - WAV (PCM 16-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// # Quick Start
//
// The simplest way to play files is through an Engine:
//
//	eng := audstream.NewEngine(player.Config{}, storage.NewDir("media"))
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	go eng.Producer.Run(ctx)
//
//	spk, _ := output.NewSpeaker(eng.Consumer)
//	spk.Start()
//
//	eng.Controller.Play(0, "intro.wav", player.PlayOpts{})
//	eng.Controller.Play(1, "music.mp3", player.PlayOpts{Loop: true})
//
// For offline work, DecodeFile loads a whole file as mono samples:
//
//	samples, format, err := audstream.DecodeFile("media/intro.wav")
//
// # Architecture
//
// Each player slot owns a single-producer/single-consumer ring
// buffer. The producer goroutine performs all storage I/O and
// decoding; the consumer mixes one block per cycle and never blocks.
// See the player package for the engine internals and the audio
// package for the decoder contract.
package audstream
