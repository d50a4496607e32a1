// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into mono 16-bit samples
// using github.com/jfreymuth/oggvorbis for the actual Vorbis
// synthesis. Stereo streams are downmixed, floats are converted to
// int16 with clamping.
package vorbis
