// SPDX-License-Identifier: EPL-2.0

package audstream_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audstream"
	"github.com/ik5/audstream/formats/wav"
)

// Example_decodeFile demonstrates offline decoding of a WAV file into
// mono 16-bit samples.
func Example_decodeFile() {
	dir, err := os.MkdirTemp("", "audstream")
	if err != nil {
		fmt.Printf("tempdir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	// Build a small WAV file for demonstration.
	var buf bytes.Buffer
	wav.WriteWAV16(&buf, 8000, []int16{100, -100, 200, -200, 300, -300})
	path := filepath.Join(dir, "tone.wav")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		fmt.Printf("write: %v\n", err)
		return
	}

	samples, format, err := audstream.DecodeFile(path)
	if err != nil {
		fmt.Printf("decode: %v\n", err)
		return
	}

	fmt.Printf("decoded %d samples at %d Hz\n", len(samples), format.SampleRate)
	// Output: decoded 6 samples at 8000 Hz
}
