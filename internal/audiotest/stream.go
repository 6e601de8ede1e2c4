// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// StreamSpec describes a synthetic MPEG audio stream. Zero values select
// MPEG-1 Layer III, 128 kbit/s, 44100 Hz, stereo, no CRC.
type StreamSpec struct {
	Version         int // 1, 2 or 25
	Layer           int // 1, 2 or 3
	BitRateIndex    int
	SampleRateIndex int
	Mono            bool
	CRC             bool
	Frames          int

	// Payload fills the payload (the bytes after header and CRC) of frame i.
	// A nil Payload leaves payloads zeroed.
	Payload func(i int, payload []byte)

	// CorruptFrames get their first payload byte flipped after the CRC word
	// is written, so a CRC check fails.
	CorruptFrames []int

	// JunkBefore inserts that many zero bytes before frame i.
	JunkBefore map[int]int

	ID3v2Size int // ID3v2 tag body size; 0 for no tag
	Xing      bool
	Encoder   string // LAME style encoder block in the Xing frame
	Delay     int
	Padding   int

	Truncate int // bytes cut from the end of the stream
}

var specBitrates = map[[2]int][15]int{
	{1, 1}: {0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448},
	{1, 2}: {0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384},
	{1, 3}: {0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320},
	{2, 1}: {0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256},
	{2, 2}: {0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},
	{2, 3}: {0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},
}

var specSampleRates = map[int][3]int{
	1:  {44100, 48000, 32000},
	2:  {22050, 24000, 16000},
	25: {11025, 12000, 8000},
}

func (s StreamSpec) normalized() StreamSpec {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.Layer == 0 {
		s.Layer = 3
	}
	if s.BitRateIndex == 0 {
		s.BitRateIndex = 9
	}
	return s
}

// SampleRate of the stream in Hz.
func (s StreamSpec) SampleRate() int {
	s = s.normalized()
	return specSampleRates[s.Version][s.SampleRateIndex]
}

// Channels of the stream.
func (s StreamSpec) Channels() int {
	if s.Mono {
		return 1
	}
	return 2
}

// SamplesPerFrame is the per-channel sample count of each frame.
func (s StreamSpec) SamplesPerFrame() int {
	s = s.normalized()
	switch s.Layer {
	case 1:
		return 384
	case 2:
		return 1152
	default:
		if s.Version == 1 {
			return 1152
		}
		return 576
	}
}

// FrameLength is the size of each frame in bytes.
func (s StreamSpec) FrameLength() int {
	s = s.normalized()
	row := s.Version
	if row == 25 {
		row = 2
	}
	br := specBitrates[[2]int{row, s.Layer}][s.BitRateIndex] * 1000
	sr := s.SampleRate()

	switch {
	case s.Layer == 1:
		return 12 * br / sr * 4
	case s.Layer == 3 && s.Version != 1:
		return 72 * br / sr
	default:
		return 144 * br / sr
	}
}

// PayloadOffset is the offset of the payload inside a frame.
func (s StreamSpec) PayloadOffset() int {
	if s.CRC {
		return 6
	}
	return 4
}

// TotalSamples is the per-channel sample count of the audio frames.
func (s StreamSpec) TotalSamples() int64 {
	return int64(s.Frames) * int64(s.SamplesPerFrame())
}

func (s StreamSpec) header() []byte {
	s = s.normalized()

	var ver, layer byte
	switch s.Version {
	case 1:
		ver = 3
	case 2:
		ver = 2
	default:
		ver = 0
	}
	layer = byte(4 - s.Layer)

	prot := byte(1)
	if s.CRC {
		prot = 0
	}

	mode := byte(0)
	if s.Mono {
		mode = 3
	}

	return []byte{
		0xFF,
		0xE0 | ver<<3 | layer<<1 | prot,
		byte(s.BitRateIndex)<<4 | byte(s.SampleRateIndex)<<2,
		mode << 6,
	}
}

func (s StreamSpec) sideInfoSize() int {
	s = s.normalized()
	if s.Layer != 3 {
		return 0
	}
	switch {
	case s.Version == 1 && s.Mono:
		return 17
	case s.Version == 1:
		return 32
	case s.Mono:
		return 9
	default:
		return 17
	}
}

func (s StreamSpec) protectedSize() int {
	s = s.normalized()
	switch s.Layer {
	case 3:
		return s.sideInfoSize()
	case 1:
		if s.Mono {
			return 16
		}
		return 32
	default:
		return 0
	}
}

func (s StreamSpec) frame(fill func(payload []byte), corrupt bool) []byte {
	f := make([]byte, s.FrameLength())
	copy(f, s.header())
	payload := f[s.PayloadOffset():]
	if fill != nil {
		fill(payload)
	}

	if s.CRC {
		crc := crc16(0xFFFF, f[2:4])
		crc = crc16(crc, payload[:s.protectedSize()])
		binary.BigEndian.PutUint16(f[4:6], crc)
	}
	if corrupt {
		payload[0] ^= 0xFF
	}

	return f
}

func (s StreamSpec) xingFrame() []byte {
	return s.frame(func(p []byte) {
		x := p[s.sideInfoSize():]
		copy(x, "Xing")
		binary.BigEndian.PutUint32(x[4:], 0x0003)
		binary.BigEndian.PutUint32(x[8:], uint32(s.Frames))
		binary.BigEndian.PutUint32(x[12:], uint32(s.Frames*s.FrameLength()))
		if s.Encoder != "" {
			e := x[16:]
			copy(e[:9], s.Encoder)
			d := e[21:]
			d[0] = byte(s.Delay >> 4)
			d[1] = byte(s.Delay&0x0F)<<4 | byte(s.Padding>>8)
			d[2] = byte(s.Padding)
		}
	}, false)
}

// Build renders the stream.
func Build(s StreamSpec) []byte {
	s = s.normalized()

	var buf bytes.Buffer
	if s.ID3v2Size > 0 {
		n := s.ID3v2Size
		buf.Write([]byte{'I', 'D', '3', 4, 0, 0,
			byte(n >> 21 & 0x7F), byte(n >> 14 & 0x7F), byte(n >> 7 & 0x7F), byte(n & 0x7F)})
		buf.Write(make([]byte, n))
	}
	if s.Xing {
		buf.Write(s.xingFrame())
	}

	corrupt := make(map[int]bool, len(s.CorruptFrames))
	for _, i := range s.CorruptFrames {
		corrupt[i] = true
	}

	for i := range s.Frames {
		if n := s.JunkBefore[i]; n > 0 {
			buf.Write(make([]byte, n))
		}
		var fill func([]byte)
		if s.Payload != nil {
			fill = func(p []byte) { s.Payload(i, p) }
		}
		buf.Write(s.frame(fill, corrupt[i]))
	}

	out := buf.Bytes()
	if s.Truncate > 0 && s.Truncate < len(out) {
		out = out[:len(out)-s.Truncate]
	}

	return out
}

func crc16(crc uint16, data []byte) uint16 {
	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			in := (b >> uint(bit)) & 1
			top := byte(crc >> 15)
			crc <<= 1
			if in^top == 1 {
				crc ^= 0x8005
			}
		}
	}
	return crc
}
