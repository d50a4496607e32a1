package mp3

import "errors"

var (
	ErrNotMP3 = errors.New("no MPEG audio frames found")
)
