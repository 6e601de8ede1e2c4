// SPDX-License-Identifier: EPL-2.0

package mpeg

import "errors"

var (
	// ErrInvalidArgument is returned when a nil frame or an out of range
	// argument is passed to the engine.
	ErrInvalidArgument = errors.New("mpeg: invalid argument")

	// ErrSeekOutOfRange is returned by SetPosition and SeekTo for negative or
	// out of range targets, and for seeks on sources that cannot seek.
	ErrSeekOutOfRange = errors.New("mpeg: seek target out of range")

	// ErrCorruptFrame marks a malformed payload. Synthesizers wrap it.
	ErrCorruptFrame = errors.New("mpeg: corrupt frame")

	// ErrPayloadExhausted is returned by Frame.ReadBits when fewer bits are
	// left in the payload than requested.
	ErrPayloadExhausted = errors.New("mpeg: frame payload exhausted")

	// ErrInvalidHeader is returned by ParseHeader.
	ErrInvalidHeader = errors.New("mpeg: invalid frame header")

	// ErrNoFrames is returned when no MPEG audio frame could be located.
	ErrNoFrames = errors.New("mpeg: no audio frames found")

	// ErrNoSynthesizer is returned by callers that refuse a stream whose
	// layer has no registered synthesizer.
	ErrNoSynthesizer = errors.New("mpeg: no synthesizer for layer")
)
