// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnknownFormat = errors.New("no decoder registered for format")
)
