// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	ErrInvalidChannels     = errors.New("channel count must be positive")
	ErrPartialFrame        = errors.New("sample count is not a multiple of channels")
)
