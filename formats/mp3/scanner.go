// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audstream/storage"
)

const (
	// stagingBytes is the compressed-byte staging buffer size.
	stagingBytes = 8192
	// readChunkBytes is the per-refill storage read size.
	readChunkBytes = 4096
	// minFrameBytes is the smallest staged amount still worth scanning.
	// Below this, with storage exhausted, the stream is over.
	minFrameBytes = 128
)

// errNoSync reports that the scanner discarded one byte without finding
// a frame; the caller retries on its next cycle.
var errNoSync = errors.New("no frame sync")

// scanner maintains the staging buffer of compressed bytes and carves
// whole MPEG frames out of it. Resynchronization after junk (ID3 tags,
// sync loss) discards exactly one byte per failed attempt so that no
// valid frame boundary can be skipped.
type scanner struct {
	f       storage.File
	staging [stagingBytes]byte
	fill    int

	fileDone bool
	consumed int64 // bytes handed out or discarded
	skipped  int64 // resync discards within consumed

	// first holds the format of the first valid frame, once seen.
	first *frameInfo
}

func newScanner(f storage.File) *scanner {
	return &scanner{f: f}
}

// refill tops the staging buffer up from storage in bounded chunks.
func (s *scanner) refill() error {
	if s.fileDone || s.fill >= stagingBytes {
		return nil
	}

	want := stagingBytes - s.fill
	if want > readChunkBytes {
		want = readChunkBytes
	}

	n, err := s.f.Read(s.staging[s.fill : s.fill+want])
	s.fill += n
	if err == io.EOF {
		s.fileDone = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("read mp3 payload: %w", err)
	}
	return nil
}

// nextFrame locates the next whole frame at the front of the staging
// buffer. The caller copies the returned bytes and then removes them
// with discard(info.size). On a failed sync it discards one byte and
// returns errNoSync. It returns io.EOF when the staging buffer is below
// a viable frame size and storage has no more bytes.
func (s *scanner) nextFrame() (frameInfo, []byte, error) {
	if s.fill < stagingBytes/2 {
		if err := s.refill(); err != nil {
			return frameInfo{}, nil, err
		}
	}

	if s.fileDone && s.fill < minFrameBytes {
		return frameInfo{}, nil, io.EOF
	}

	info, ok := parseFrameHeader(s.staging[:s.fill])
	if !ok {
		s.discard(1)
		s.skipped++
		return frameInfo{}, nil, errNoSync
	}

	if info.size > s.fill {
		if s.fileDone {
			// Final frame is cut short; nothing more will arrive.
			return frameInfo{}, nil, io.EOF
		}
		if err := s.refill(); err != nil {
			return frameInfo{}, nil, err
		}
		if info.size > s.fill {
			// Waiting for more bytes; no discard.
			return frameInfo{}, nil, errShortFrame
		}
	}

	if s.first == nil {
		f := info
		s.first = &f
	}

	// The slice stays valid until the caller's matching discard call.
	return info, s.staging[:info.size], nil
}

var errShortFrame = errors.New("frame incomplete")

// discard drops n staged bytes, moving the remainder to the front.
func (s *scanner) discard(n int) {
	if n > s.fill {
		n = s.fill
	}
	copy(s.staging[:], s.staging[n:s.fill])
	s.fill -= n
	s.consumed += int64(n)
}
