// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into mono 16-bit samples using
// github.com/go-audio/aiff for chunk parsing. Stereo files are
// downmixed; bit depths other than 16 are rejected.
package aiff
