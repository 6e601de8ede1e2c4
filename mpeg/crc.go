// SPDX-License-Identifier: EPL-2.0

package mpeg

import "encoding/binary"

// crc16 is the MPEG audio CRC: polynomial 0x8005, MSB first.
func crc16(crc uint16, data []byte) uint16 {
	for _, b := range data {
		crc ^= uint16(b) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x8005
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// protectedSize is the number of payload bytes covered by the CRC word.
// Layer II coverage depends on the allocation tables and returns 0.
func protectedSize(h Header) int {
	switch h.Layer {
	case Layer3:
		return h.SideInfoSize()
	case Layer1:
		if h.ChannelMode == ModeMono {
			return 32 * 4 / 8
		}
		bound := 32
		if h.ChannelMode == ModeJointStereo {
			bound = (h.ModeExtension + 1) * 4
		}
		return (2*bound + (32 - bound)) * 4 / 8
	default:
		return 0
	}
}

// checkCRC reports false only when the frame carries a CRC that can be
// verified and does not match.
func checkCRC(h Header, frame []byte) bool {
	if !h.HasCRC {
		return true
	}
	n := protectedSize(h)
	if n == 0 {
		return true
	}
	off := h.PayloadOffset()
	if len(frame) < off+n {
		return false
	}

	crc := crc16(0xFFFF, frame[2:4])
	crc = crc16(crc, frame[off:off+n])

	return crc == binary.BigEndian.Uint16(frame[4:6])
}
