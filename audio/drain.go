// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/mpadec/utils"
)

// Drain reads src until io.EOF and hands every non-empty chunk to fn. The
// chunk is only valid during the call.
//
// bufferSize is the chunk capacity in samples; 0 uses src.BufSize(). It must
// be a multiple of the channel count so chunks hold whole sample frames.
func Drain(src Source, bufferSize int, fn func(chunk []float32) error) error {
	if bufferSize <= 0 {
		bufferSize = src.BufSize()
	}
	if ch := src.Channels(); ch > 0 && bufferSize%ch != 0 {
		return ErrInvalidDstSize
	}

	buf := make([]float32, bufferSize)
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if ferr := fn(buf[:n]); ferr != nil {
				return ferr
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}
}

// ReadAll16 drains src and returns everything as interleaved 16-bit PCM.
func ReadAll16(src Source, bufferSize int) ([]int16, error) {
	var pcm16 []int16
	if s, ok := src.(SeekableSource); ok {
		if d, ok := s.TotalTime(); ok {
			frames := int(d.Seconds()*float64(src.SampleRate())) + 1
			pcm16 = make([]int16, 0, frames*src.Channels())
		}
	}

	err := Drain(src, bufferSize, func(chunk []float32) error {
		for _, x := range chunk {
			pcm16 = append(pcm16, utils.Float32ToInt16(x))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pcm16, nil
}
