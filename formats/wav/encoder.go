// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/mpadec/audio"
	"github.com/ik5/mpadec/internal/pcmexport"
)

// pcmFormat is the WAVE_FORMAT_PCM tag.
const pcmFormat = 1

// Encoder writes an audio.Source as integer PCM WAV.
type Encoder struct{}

var _ audio.Encoder = Encoder{}

// Encode drains src into w at bitDepth (16, 24 or 32). The source is not
// closed.
func (Encoder) Encode(w io.WriteSeeker, src audio.Source, bitDepth int) error {
	if !pcmexport.CheckBitDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if src.Channels() <= 0 {
		return ErrInvalidChannels
	}

	enc := wav.NewEncoder(w, src.SampleRate(), bitDepth, src.Channels(), pcmFormat)
	if err := pcmexport.Export(enc, src, bitDepth); err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	return nil
}
