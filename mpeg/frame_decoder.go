// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"errors"
	"fmt"
	"io"
)

type decodeStatus uint8

const (
	statusOK decodeStatus = iota
	statusCorrupt
	statusEndOfInput
	statusFailed
)

type decodeResult struct {
	n        int // samples written to dst
	channels int // interleaved channels in dst
	status   decodeStatus
	err      error
}

// FrameDecoder dispatches frames to the synthesizer of their layer and
// formats the per-channel output. Synthesizers are created on first use from
// the registered factories and live as long as the FrameDecoder.
type FrameDecoder struct {
	factories map[Layer]SynthesizerFactory
	synths    map[Layer]Synthesizer

	equalizer  []float32
	stereoMode StereoMode

	ch0 [MaxSamplesPerFrame]float32
	ch1 [MaxSamplesPerFrame]float32
}

// NewFrameDecoder returns a FrameDecoder for the given per-layer factories.
// Frames of a layer without a factory decode to zero samples.
func NewFrameDecoder(factories map[Layer]SynthesizerFactory) *FrameDecoder {
	d := &FrameDecoder{
		factories: make(map[Layer]SynthesizerFactory, len(factories)),
		synths:    make(map[Layer]Synthesizer, 3),
	}
	for l, f := range factories {
		d.factories[l] = f
	}
	return d
}

// StereoMode returns the active output channel policy.
func (d *FrameDecoder) StereoMode() StereoMode { return d.stereoMode }

// SetStereoMode takes effect on the next decoded frame.
func (d *FrameDecoder) SetStereoMode(m StereoMode) { d.stereoMode = m }

// SetEqualizer stores dB gains, converted to linear factors, for the next
// decode. nil or empty disables equalization.
func (d *FrameDecoder) SetEqualizer(dB []float32) { d.equalizer = equalizerFactors(dB) }

// HasSynthesizer reports whether a factory is registered for layer l.
func (d *FrameDecoder) HasSynthesizer(l Layer) bool {
	f, ok := d.factories[l]
	return ok && f != nil
}

// Reset drops the filter-bank history of every synthesizer created so far.
func (d *FrameDecoder) Reset() {
	for _, s := range d.synths {
		s.ResetForSeek()
	}
}

// DecodeFrame decodes f into dst and returns the number of samples written.
// Stereo output with StereoBoth is interleaved; any other case writes one
// channel. A corrupt payload returns an error wrapping ErrCorruptFrame.
func (d *FrameDecoder) DecodeFrame(f *Frame, dst []float32) (int, error) {
	res := d.decode(f, dst)
	if res.status != statusOK {
		return 0, res.err
	}
	return res.n, nil
}

func (d *FrameDecoder) synthesizer(l Layer) Synthesizer {
	switch l {
	case Layer1, Layer2, Layer3:
	default:
		return nil
	}

	if s, ok := d.synths[l]; ok {
		return s
	}
	newSynth, ok := d.factories[l]
	if !ok || newSynth == nil {
		return nil
	}
	s := newSynth()
	d.synths[l] = s

	return s
}

func (d *FrameDecoder) decode(f *Frame, dst []float32) decodeResult {
	if f == nil {
		return decodeResult{status: statusFailed, err: fmt.Errorf("%w: nil frame", ErrInvalidArgument)}
	}

	s := d.synthesizer(f.Layer)
	if s == nil {
		return decodeResult{channels: 1}
	}

	f.Reset()
	s.SetEqualizer(d.equalizer)
	s.SetStereoMode(d.stereoMode)

	n, err := s.Decode(f, d.ch0[:], d.ch1[:])
	if err != nil {
		return classify(err)
	}
	if n < 0 || n > MaxSamplesPerFrame {
		return decodeResult{status: statusCorrupt, err: fmt.Errorf("%w: %d samples", ErrCorruptFrame, n)}
	}

	if f.Channels() == 1 || d.stereoMode != StereoBoth {
		if len(dst) < n {
			return decodeResult{status: statusFailed, err: io.ErrShortBuffer}
		}
		copy(dst, d.ch0[:n])
		return decodeResult{n: n, channels: 1}
	}

	if len(dst) < 2*n {
		return decodeResult{status: statusFailed, err: io.ErrShortBuffer}
	}
	for i := range n {
		dst[2*i] = d.ch0[i]
		dst[2*i+1] = d.ch1[i]
	}

	return decodeResult{n: 2 * n, channels: 2}
}

func classify(err error) decodeResult {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return decodeResult{status: statusEndOfInput, err: io.ErrUnexpectedEOF}
	case errors.Is(err, ErrCorruptFrame):
		return decodeResult{status: statusCorrupt, err: err}
	default:
		// Anything else a synthesizer reports is treated like a bad payload.
		return decodeResult{status: statusCorrupt, err: fmt.Errorf("%w: %w", ErrCorruptFrame, err)}
	}
}
