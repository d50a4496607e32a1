// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

var (
	// ErrFileNotFound reports that the requested name does not
	// exist in the storage source. Play fails fast and the player
	// stays idle.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFormat reports a file the registered decoders
	// cannot handle: unknown extension, bad magic, unsupported
	// codec, bit depth or channel count.
	ErrInvalidFormat = errors.New("invalid container format")

	// ErrStopTimeout reports that a stop request was not
	// acknowledged by the producer within Config.StopTimeout.
	ErrStopTimeout = errors.New("stop timed out")

	// ErrBadIndex reports a player index outside the pool.
	ErrBadIndex = errors.New("player index out of range")

	// ErrBusy reports a concurrent control operation on the same
	// player.
	ErrBusy = errors.New("player busy")
)
