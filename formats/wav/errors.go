package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("not a WAV file")
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
	ErrBadChannelCount       = errors.New("channel count must be 1 or 2")
	ErrNoDataChunk           = errors.New("no data chunk found")
	ErrTruncated             = errors.New("file truncated mid-payload")
)
