// SPDX-License-Identifier: EPL-2.0

// Package aiff exports decoded audio as AIFF (Audio Interchange File Format).
//
// This package uses github.com/go-audio/aiff to write the FORM/COMM/SSND
// chunks. AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
//   - Big-endian integer PCM at 16, 24 or 32 bits
//   - Mono and multi-channel
//   - Any sample rate
//
// # Exporting a Source
//
//	decoder, _ := mp3.Decoder{}.Open("song.mp3")
//	defer decoder.Close()
//
//	out, _ := os.Create("song.aiff")
//	defer out.Close()
//
//	err := aiff.Encoder{}.Encode(out, decoder, 16)
//
// Encoder implements audio.Encoder, so it can be registered with an
// audio.Registry under "aiff" and "aif".
package aiff
