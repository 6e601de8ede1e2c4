// SPDX-License-Identifier: EPL-2.0

package mpeg

// StereoMode selects how the two channels of a stereo frame reach the output.
type StereoMode uint8

const (
	StereoBoth StereoMode = iota
	StereoLeftOnly
	StereoRightOnly
	StereoDownmixToMono
)

func (m StereoMode) String() string {
	switch m {
	case StereoBoth:
		return "both"
	case StereoLeftOnly:
		return "left"
	case StereoRightOnly:
		return "right"
	case StereoDownmixToMono:
		return "downmix"
	default:
		return "unknown"
	}
}

// Synthesizer turns the bits of one frame into per-channel PCM for a single
// layer. It carries filter-bank history from one frame to the next.
//
// Decode writes at most MaxSamplesPerFrame samples into each channel slice and
// returns the per-channel count. When the stereo mode is anything but
// StereoBoth, the selected or mixed channel is written to ch0 only.
// A malformed payload is reported with an error wrapping ErrCorruptFrame;
// io.ErrUnexpectedEOF reports that the input ended mid-decode.
type Synthesizer interface {
	Decode(f *Frame, ch0, ch1 []float32) (int, error)
	// SetEqualizer installs linear per-band factors; nil disables.
	SetEqualizer(factors []float32)
	StereoMode() StereoMode
	SetStereoMode(StereoMode)
	// ResetForSeek drops filter-bank history and keeps the instance usable.
	ResetForSeek()
}

// SynthesizerFactory creates the synthesizer of one layer on first use.
type SynthesizerFactory func() Synthesizer
