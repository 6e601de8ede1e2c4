// SPDX-License-Identifier: EPL-2.0

package mpeg

import "fmt"

// HeaderSize is the size of an MPEG audio frame header in bytes.
const HeaderSize = 4

// MaxSamplesPerFrame is the largest per-channel sample count of any frame.
const MaxSamplesPerFrame = 1152

// maxFrameLength is the longest possible frame (Layer II, 160 kbit/s, 8 kHz, padded).
const maxFrameLength = 2881

// Version is the MPEG audio version of a frame.
type Version uint8

const (
	VersionUnknown Version = iota
	Version1
	Version2
	Version25
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "MPEG-1"
	case Version2:
		return "MPEG-2"
	case Version25:
		return "MPEG-2.5"
	default:
		return "unknown"
	}
}

// Layer is the MPEG audio layer of a frame.
type Layer uint8

const (
	LayerUnknown Layer = 0
	Layer1       Layer = 1
	Layer2       Layer = 2
	Layer3       Layer = 3
)

func (l Layer) String() string {
	switch l {
	case Layer1:
		return "Layer I"
	case Layer2:
		return "Layer II"
	case Layer3:
		return "Layer III"
	default:
		return "unknown"
	}
}

// ChannelMode uses the values of the two header bits.
type ChannelMode uint8

const (
	ModeStereo      ChannelMode = 0
	ModeJointStereo ChannelMode = 1
	ModeDualChannel ChannelMode = 2
	ModeMono        ChannelMode = 3
)

func (m ChannelMode) String() string {
	switch m {
	case ModeStereo:
		return "stereo"
	case ModeJointStereo:
		return "joint stereo"
	case ModeDualChannel:
		return "dual channel"
	case ModeMono:
		return "mono"
	default:
		return "unknown"
	}
}

// bitrates in kbit/s, indexed by [row][bitrate index].
var bitrates = [5][15]int{
	{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448}, // V1 L1
	{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384},    // V1 L2
	{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320},     // V1 L3
	{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256},    // V2/2.5 L1
	{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},         // V2/2.5 L2, L3
}

var sampleRates = [4][3]int{
	Version1:  {44100, 48000, 32000},
	Version2:  {22050, 24000, 16000},
	Version25: {11025, 12000, 8000},
}

// Header is the decoded 32-bit header of one frame.
type Header struct {
	Version         Version
	Layer           Layer
	HasCRC          bool
	BitRate         int // bit/s
	BitRateIndex    int
	SampleRate      int // Hz
	SampleRateIndex int
	Padding         bool
	Private         bool
	ChannelMode     ChannelMode
	ModeExtension   int
	Copyright       bool
	Original        bool
	Emphasis        int

	// SampleCount is the number of samples per channel carried by the frame.
	SampleCount int
	// FrameLength is the size of the whole frame in bytes, header included.
	FrameLength int
}

// ParseHeader decodes the first four bytes of b as a frame header.
// Free-format streams (bitrate index 0) are rejected.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: short header", ErrInvalidHeader)
	}
	if b[0] != 0xFF || b[1]&0xE0 != 0xE0 {
		return Header{}, fmt.Errorf("%w: no sync word", ErrInvalidHeader)
	}

	var h Header
	switch (b[1] >> 3) & 0x03 {
	case 0:
		h.Version = Version25
	case 2:
		h.Version = Version2
	case 3:
		h.Version = Version1
	default:
		return Header{}, fmt.Errorf("%w: reserved version", ErrInvalidHeader)
	}

	switch (b[1] >> 1) & 0x03 {
	case 1:
		h.Layer = Layer3
	case 2:
		h.Layer = Layer2
	case 3:
		h.Layer = Layer1
	default:
		return Header{}, fmt.Errorf("%w: reserved layer", ErrInvalidHeader)
	}

	h.HasCRC = b[1]&0x01 == 0
	h.BitRateIndex = int(b[2] >> 4)
	h.SampleRateIndex = int((b[2] >> 2) & 0x03)
	h.Padding = (b[2]>>1)&0x01 == 1
	h.Private = b[2]&0x01 == 1
	h.ChannelMode = ChannelMode(b[3] >> 6)
	h.ModeExtension = int((b[3] >> 4) & 0x03)
	h.Copyright = (b[3]>>3)&0x01 == 1
	h.Original = (b[3]>>2)&0x01 == 1
	h.Emphasis = int(b[3] & 0x03)

	if h.BitRateIndex == 0 {
		return Header{}, fmt.Errorf("%w: free format is not supported", ErrInvalidHeader)
	}
	if h.BitRateIndex == 15 {
		return Header{}, fmt.Errorf("%w: bad bitrate index", ErrInvalidHeader)
	}
	if h.SampleRateIndex == 3 {
		return Header{}, fmt.Errorf("%w: reserved sample rate", ErrInvalidHeader)
	}

	h.BitRate = bitrates[bitrateRow(h.Version, h.Layer)][h.BitRateIndex] * 1000
	h.SampleRate = sampleRates[h.Version][h.SampleRateIndex]
	h.SampleCount = samplesPerFrame(h.Version, h.Layer)
	h.FrameLength = frameLength(h)

	return h, nil
}

func bitrateRow(v Version, l Layer) int {
	if v == Version1 {
		return int(l) - 1
	}
	if l == Layer1 {
		return 3
	}
	return 4
}

func samplesPerFrame(v Version, l Layer) int {
	switch l {
	case Layer1:
		return 384
	case Layer2:
		return 1152
	default:
		if v == Version1 {
			return 1152
		}
		return 576
	}
}

func frameLength(h Header) int {
	pad := 0
	if h.Padding {
		pad = 1
	}

	switch h.Layer {
	case Layer1:
		return (12*h.BitRate/h.SampleRate + pad) * 4
	case Layer2:
		return 144*h.BitRate/h.SampleRate + pad
	default:
		if h.Version == Version1 {
			return 144*h.BitRate/h.SampleRate + pad
		}
		return 72*h.BitRate/h.SampleRate + pad
	}
}

// Channels returns 1 for mono frames and 2 otherwise.
func (h Header) Channels() int {
	if h.ChannelMode == ModeMono {
		return 1
	}
	return 2
}

// PayloadOffset is the offset of the first payload byte within the frame.
func (h Header) PayloadOffset() int {
	if h.HasCRC {
		return HeaderSize + 2
	}
	return HeaderSize
}

// SideInfoSize returns the Layer III side information size in bytes, or 0
// for the other layers.
func (h Header) SideInfoSize() int {
	if h.Layer != Layer3 {
		return 0
	}
	mono := h.ChannelMode == ModeMono
	switch {
	case h.Version == Version1 && mono:
		return 17
	case h.Version == Version1:
		return 32
	case mono:
		return 9
	default:
		return 17
	}
}

// compatible reports whether o can belong to the same stream as h.
func (h Header) compatible(o Header) bool {
	return h.Version == o.Version && h.Layer == o.Layer && h.SampleRate == o.SampleRate
}
