// SPDX-License-Identifier: EPL-2.0

package mpadec

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/mpadec/audio"
	"github.com/ik5/mpadec/formats/aiff"
	"github.com/ik5/mpadec/formats/mp3"
	"github.com/ik5/mpadec/formats/wav"
	"github.com/ik5/mpadec/mpeg"
)

// DefaultRegistry maps file extensions to the bundled decoder and exporters.
// It is used by OpenSource, Encode and Convert.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry with the MPEG audio decoder under mp3, mp2,
// mp1 and mpa, and the WAV and AIFF exporters under wav, aiff and aif.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	for _, ext := range []string{"mp3", "mp2", "mp1", "mpa"} {
		r.Register(ext, mp3.Decoder{})
	}
	r.RegisterEncoder("wav", wav.Encoder{})
	r.RegisterEncoder("aiff", aiff.Encoder{})
	r.RegisterEncoder("aif", aiff.Encoder{})

	return r
}

// Open returns a seekable decoder for the MPEG audio file at path. Closing
// the decoder closes the file.
func Open(path string, opts ...mpeg.Option) (*mpeg.FileDecoder, error) {
	return mp3.Decoder{Options: opts}.Open(path)
}

// fileSource closes the file behind a decoded source.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

// OpenSource decodes path with the decoder DefaultRegistry holds for its
// extension. Closing the source closes the file.
func OpenSource(path string) (audio.Source, error) {
	decoder, err := DefaultRegistry.DecoderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := decoder.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return fileSource{Source: src, f: f}, nil
}

// DecodeAll reads src to the end and returns interleaved 16-bit PCM.
// bufferSize is the read chunk in samples; 0 uses src.BufSize().
func DecodeAll(src audio.Source, bufferSize int) ([]int16, error) {
	return audio.ReadAll16(src, bufferSize)
}

// Encode writes src to outPath with the exporter registered for its
// extension. src is drained but not closed.
func Encode(src audio.Source, outPath string, bitDepth int) error {
	encoder, err := DefaultRegistry.EncoderFor(outPath)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := encoder.Encode(out, src, bitDepth); err != nil {
		out.Close()
		os.Remove(outPath)
		return fmt.Errorf("encoding %s: %w", outPath, err)
	}

	return out.Close()
}

// Convert decodes inPath and writes it to outPath, picking the decoder and
// exporter from the two extensions.
func Convert(inPath, outPath string, bitDepth int) error {
	// fail before opening anything when the output format is unknown
	if _, err := DefaultRegistry.EncoderFor(outPath); err != nil {
		return err
	}

	src, err := OpenSource(inPath)
	if err != nil {
		return err
	}
	defer src.Close()

	return Encode(src, outPath, bitDepth)
}
