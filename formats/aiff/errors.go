// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrUnsupportedBitDepth indicates a bit depth the exporter cannot write
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")

	// ErrInvalidChannels indicates a source without channels
	ErrInvalidChannels = errors.New("channel count must be positive")
)
