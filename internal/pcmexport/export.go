// SPDX-License-Identifier: EPL-2.0

// Package pcmexport feeds an audio.Source into a go-audio encoder.
package pcmexport

import (
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/mpadec/audio"
	"github.com/ik5/mpadec/utils"
)

// Writer is the part of the go-audio WAV and AIFF encoders used here.
type Writer interface {
	Write(buf *goaudio.IntBuffer) error
	Close() error
}

// Export drains src into w as integers of bitDepth bits and closes w. At
// least one Write is issued so the container header is always emitted.
func Export(w Writer, src audio.Source, bitDepth int) error {
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: src.Channels(),
			SampleRate:  src.SampleRate(),
		},
		SourceBitDepth: bitDepth,
	}

	wrote := false
	err := audio.Drain(src, 0, func(chunk []float32) error {
		wrote = true
		if cap(buf.Data) < len(chunk) {
			buf.Data = make([]int, len(chunk))
		}
		buf.Data = buf.Data[:len(chunk)]
		for i, x := range chunk {
			buf.Data[i] = utils.FloatToInt(x, bitDepth)
		}

		return w.Write(buf)
	})
	if err == nil && !wrote {
		err = w.Write(buf)
	}
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("writing samples: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("closing encoder: %w", err)
	}

	return nil
}

// CheckBitDepth reports whether bitDepth is one the exporters write.
func CheckBitDepth(bitDepth int) bool {
	switch bitDepth {
	case 16, 24, 32:
		return true
	}

	return false
}
