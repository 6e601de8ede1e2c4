// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/mpadec/mpeg"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
}

func newGoMP3(r io.Reader) (mp3Reader, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return dec, nil
}

// Layer3Synthesizer is the mpeg.Synthesizer for Layer III frames. It feeds
// each frame to a go-mp3 decoder, which keeps the bit reservoir and the
// filter-bank history between frames.
//
// go-mp3 has no sub-band hooks, so an equalizer table is applied as one
// broadband gain: the mean of its factors.
type Layer3Synthesizer struct {
	newReader func(io.Reader) (mp3Reader, error)

	queue bytes.Buffer
	dec   mp3Reader
	pcm   []byte

	gain float32
	mode mpeg.StereoMode
}

var _ mpeg.Synthesizer = (*Layer3Synthesizer)(nil)

// NewLayer3Synthesizer has the mpeg.SynthesizerFactory signature.
func NewLayer3Synthesizer() mpeg.Synthesizer {
	return &Layer3Synthesizer{
		newReader: newGoMP3,
		pcm:       make([]byte, mpeg.MaxSamplesPerFrame*4),
		gain:      1,
	}
}

func (s *Layer3Synthesizer) Decode(f *mpeg.Frame, ch0, ch1 []float32) (int, error) {
	if f.Layer != mpeg.Layer3 {
		return 0, fmt.Errorf("%w: %v frame", mpeg.ErrCorruptFrame, f.Layer)
	}
	if f.IsCorrupted() {
		// The reservoir of the next frame may point into this one.
		s.drop()
		return 0, fmt.Errorf("%w: crc mismatch", mpeg.ErrCorruptFrame)
	}

	s.queue.Write(f.Bytes())
	if s.dec == nil {
		dec, err := s.newReader(&s.queue)
		if err != nil {
			s.drop()
			return 0, fmt.Errorf("%w: %v", mpeg.ErrCorruptFrame, err)
		}
		s.dec = dec
	}

	// go-mp3 always emits 16-bit little-endian stereo.
	n := f.SampleCount
	pcm := s.pcm[:n*4]
	if _, err := io.ReadFull(s.dec, pcm); err != nil {
		s.drop()
		return 0, fmt.Errorf("%w: %v", mpeg.ErrCorruptFrame, err)
	}

	mono := f.Channels() == 1
	for i := range n {
		l := s.gain * float32(int16(uint16(pcm[4*i])|uint16(pcm[4*i+1])<<8)) / 32768.0
		r := s.gain * float32(int16(uint16(pcm[4*i+2])|uint16(pcm[4*i+3])<<8)) / 32768.0

		switch {
		case mono:
			ch0[i] = l
		case s.mode == mpeg.StereoLeftOnly:
			ch0[i] = l
		case s.mode == mpeg.StereoRightOnly:
			ch0[i] = r
		case s.mode == mpeg.StereoDownmixToMono:
			ch0[i] = (l + r) / 2
		default:
			ch0[i], ch1[i] = l, r
		}
	}

	return n, nil
}

func (s *Layer3Synthesizer) SetEqualizer(factors []float32) {
	if len(factors) == 0 {
		s.gain = 1
		return
	}

	var sum float32
	for _, f := range factors {
		sum += f
	}
	s.gain = sum / float32(len(factors))
}

func (s *Layer3Synthesizer) StereoMode() mpeg.StereoMode     { return s.mode }
func (s *Layer3Synthesizer) SetStereoMode(m mpeg.StereoMode) { s.mode = m }

// ResetForSeek drops the go-mp3 decoder; the next frame starts a new one.
func (s *Layer3Synthesizer) ResetForSeek() { s.drop() }

func (s *Layer3Synthesizer) drop() {
	s.dec = nil
	s.queue.Reset()
}
