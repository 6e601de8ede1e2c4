// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	"github.com/ik5/mpadec/audio"
	"github.com/ik5/mpadec/mpeg"
)

// Decoder is the audio.Decoder for MPEG audio streams. Options are passed to
// every mpeg.FileDecoder it builds, after the Layer III synthesizer, so they
// may replace it or register synthesizers for Layers I and II. Streams whose
// layer has no synthesizer are refused with mpeg.ErrNoSynthesizer.
type Decoder struct {
	Options []mpeg.Option
}

// Decode returns a seekable source over r. The caller keeps ownership of r;
// closing the source does not close it.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := mpeg.NewFileDecoder(r, d.options(mpeg.WithRetainedSource())...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if err := checkLayer(dec); err != nil {
		return nil, err
	}
	return dec, nil
}

// Open decodes the named file. Closing the decoder closes the file.
func (d Decoder) Open(path string) (*mpeg.FileDecoder, error) {
	dec, err := mpeg.Open(path, d.options()...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if err := checkLayer(dec); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dec, nil
}

// checkLayer refuses streams that would decode to silence because nothing
// is registered for their layer. dec is closed on error.
func checkLayer(dec *mpeg.FileDecoder) error {
	if l := dec.Layer(); l != mpeg.LayerUnknown && !dec.HasSynthesizer(l) {
		_ = dec.Close()
		return fmt.Errorf("%w: %v", mpeg.ErrNoSynthesizer, l)
	}
	return nil
}

func (d Decoder) options(extra ...mpeg.Option) []mpeg.Option {
	opts := make([]mpeg.Option, 0, len(d.Options)+len(extra)+1)
	opts = append(opts, mpeg.WithSynthesizer(mpeg.Layer3, NewLayer3Synthesizer))
	opts = append(opts, d.Options...)
	return append(opts, extra...)
}
