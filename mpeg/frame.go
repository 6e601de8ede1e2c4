// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"bytes"
	"sync"
	"time"

	"github.com/icza/bitio"
)

var framePool = sync.Pool{
	New: func() any {
		b := make([]byte, maxFrameLength)
		return &b
	},
}

// Frame is one located frame: its header plus a resettable bit cursor over
// the payload that follows the header and the optional CRC word.
//
// A Frame is consumed by one decode attempt. Release must be called once the
// consumer is done with it, on every path.
type Frame struct {
	Header

	data      []byte
	pooled    *[]byte
	crcFailed bool

	payload  bytes.Reader
	cursor   *bitio.Reader
	bitsLeft int
}

// NewFrame wraps data, the complete frame including its header, in a Frame.
// The caller keeps ownership of data; Release only drops the reference.
func NewFrame(h Header, data []byte) *Frame {
	f := &Frame{Header: h, data: data}
	f.Reset()
	return f
}

func newPooledFrame(h Header) *Frame {
	buf := framePool.Get().(*[]byte)
	return &Frame{Header: h, data: (*buf)[:h.FrameLength], pooled: buf}
}

// Bytes returns the complete frame, header included.
func (f *Frame) Bytes() []byte { return f.data }

// Payload returns the bytes after the header and CRC word.
func (f *Frame) Payload() []byte {
	off := f.PayloadOffset()
	if len(f.data) < off {
		return nil
	}
	return f.data[off:]
}

// IsCorrupted reports a CRC mismatch. The frame is still decodable; what to
// do with it is left to the synthesizer.
func (f *Frame) IsCorrupted() bool { return f.crcFailed }

// Duration of the audio carried by the frame.
func (f *Frame) Duration() time.Duration {
	if f.SampleRate == 0 {
		return 0
	}
	return time.Duration(f.SampleCount) * time.Second / time.Duration(f.SampleRate)
}

// Reset rewinds the bit cursor to the first payload bit.
func (f *Frame) Reset() {
	p := f.Payload()
	f.payload.Reset(p)
	f.cursor = bitio.NewReader(&f.payload)
	f.bitsLeft = len(p) * 8
}

// ReadBits returns the next n bits, 0 <= n <= 32, MSB first. When fewer than n
// bits remain nothing is consumed and ErrPayloadExhausted is returned.
func (f *Frame) ReadBits(n int) (uint32, error) {
	if n < 0 || n > 32 {
		return 0, ErrInvalidArgument
	}
	if n == 0 {
		return 0, nil
	}
	if f.cursor == nil || n > f.bitsLeft {
		return 0, ErrPayloadExhausted
	}

	v, err := f.cursor.ReadBits(uint8(n))
	if err != nil {
		f.bitsLeft = 0
		return 0, ErrPayloadExhausted
	}
	f.bitsLeft -= n

	return uint32(v), nil
}

// BitsLeft returns the number of unread payload bits.
func (f *Frame) BitsLeft() int { return f.bitsLeft }

// Release clears the backing payload. The frame must not be used afterwards.
func (f *Frame) Release() {
	if f.pooled != nil {
		clear(*f.pooled)
		framePool.Put(f.pooled)
		f.pooled = nil
	}
	f.data = nil
	f.cursor = nil
	f.bitsLeft = 0
	f.payload.Reset(nil)
}
