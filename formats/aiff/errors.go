// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile reports that the stream did not carry a valid
	// FORM/AIFF header.
	ErrNotAiffFile = errors.New("not an aiff file")

	// ErrOnlyPCM16bitSupported reports an unsupported bit depth.
	ErrOnlyPCM16bitSupported = errors.New("only 16-bit PCM is supported")

	// ErrUnsupportedAiffLayout reports a channel layout other than
	// mono or stereo, or a file with no usable COMM chunk.
	ErrUnsupportedAiffLayout = errors.New("unsupported aiff layout")
)
