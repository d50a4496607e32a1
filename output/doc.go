// SPDX-License-Identifier: EPL-2.0

// Package output connects a block-producing mixer to audio sinks: the
// system audio device through ebitengine/oto, or an in-memory capture
// that can persist to a WAV file.
package output
