// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/mpadec/audio"
	"github.com/ik5/mpadec/internal/pcmexport"
)

// Encoder writes an audio.Source as big-endian integer PCM AIFF.
type Encoder struct{}

var _ audio.Encoder = Encoder{}

func (Encoder) Encode(w io.WriteSeeker, src audio.Source, bitDepth int) error {
	if !pcmexport.CheckBitDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if src.Channels() <= 0 {
		return ErrInvalidChannels
	}

	enc := aiff.NewEncoder(w, src.SampleRate(), bitDepth, src.Channels())
	if err := pcmexport.Export(enc, src, bitDepth); err != nil {
		return fmt.Errorf("aiff: %w", err)
	}

	return nil
}
