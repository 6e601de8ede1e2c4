// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"encoding/binary"
	"strings"
)

// Xing/Info flag bits.
const (
	xingFrames = 0x0001
	xingBytes  = 0x0002
	xingTOC    = 0x0004
	xingScale  = 0x0008
)

// Info is the content of a Xing/Info tag frame, with the LAME extension when
// present. The tag frame itself carries no audio.
type Info struct {
	VBR        bool // "Xing" rather than "Info"
	Frames     int  // 0 when absent
	Bytes      int  // 0 when absent
	Encoder    string
	Delay      int // encoder delay in samples
	Padding    int // encoder padding in samples
	hasFrames  bool
	hasEncoder bool
}

// HasFrameCount reports whether the tag stores the number of audio frames.
func (i *Info) HasFrameCount() bool { return i.hasFrames }

// HasEncoderInfo reports whether a LAME style encoder block was found.
func (i *Info) HasEncoderInfo() bool { return i.hasEncoder }

func parseInfo(h Header, frame []byte) (*Info, bool) {
	if h.Layer != Layer3 {
		return nil, false
	}

	pos := h.PayloadOffset() + h.SideInfoSize()
	if len(frame) < pos+8 {
		return nil, false
	}

	tag := string(frame[pos : pos+4])
	if tag != "Xing" && tag != "Info" {
		return nil, false
	}

	info := &Info{VBR: tag == "Xing"}
	flags := binary.BigEndian.Uint32(frame[pos+4 : pos+8])
	pos += 8

	if flags&xingFrames != 0 {
		if len(frame) < pos+4 {
			return nil, false
		}
		info.Frames = int(binary.BigEndian.Uint32(frame[pos:]))
		info.hasFrames = true
		pos += 4
	}
	if flags&xingBytes != 0 {
		if len(frame) < pos+4 {
			return nil, false
		}
		info.Bytes = int(binary.BigEndian.Uint32(frame[pos:]))
		pos += 4
	}
	if flags&xingTOC != 0 {
		pos += 100
	}
	if flags&xingScale != 0 {
		pos += 4
	}

	// LAME block: 9 byte version string, 12 bytes of tuning data, then
	// 12 bits of delay and 12 bits of padding.
	if len(frame) >= pos+9+12+3 {
		enc := string(frame[pos : pos+9])
		if isEncoderTag(enc) {
			info.Encoder = strings.TrimRight(enc, "\x00 ")
			info.hasEncoder = true
			d := frame[pos+21:]
			info.Delay = int(d[0])<<4 | int(d[1])>>4
			info.Padding = int(d[1]&0x0F)<<8 | int(d[2])
		}
	}

	return info, true
}

func isEncoderTag(s string) bool {
	switch s[:4] {
	case "LAME", "L3.9", "Lavf", "Lavc", "Gogo", "GOGO":
		return true
	}
	return false
}
