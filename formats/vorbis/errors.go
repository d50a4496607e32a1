// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	// ErrNotOggFile reports that the stream did not start with a
	// valid Ogg Vorbis header chain.
	ErrNotOggFile = errors.New("not an ogg vorbis file")

	// ErrBadChannelCount reports a stream with more than two
	// channels.
	ErrBadChannelCount = errors.New("only mono or stereo streams are supported")
)
