// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"testing"

	"github.com/ik5/mpadec/internal/audiotest"
)

const (
	seedCorrupt uint16 = 0xDEAD
	seedEOF     uint16 = 0xBEEF
)

// fakeSynth emits a ramp derived from the first 16 payload bits. Its history
// is the seed of the previous frame, so a frame only decodes identically when
// the frame before it was decoded first.
type fakeSynth struct {
	mode    StereoMode
	eq      []float32
	history float32
	resets  int
	decodes int
}

func (s *fakeSynth) Decode(f *Frame, ch0, ch1 []float32) (int, error) {
	s.decodes++
	if f.IsCorrupted() {
		return 0, fmt.Errorf("%w: crc mismatch", ErrCorruptFrame)
	}

	v, err := f.ReadBits(16)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
	}
	switch uint16(v) {
	case seedCorrupt:
		return 0, fmt.Errorf("%w: bad seed", ErrCorruptFrame)
	case seedEOF:
		return 0, io.ErrUnexpectedEOF
	}

	gain := float32(1)
	if len(s.eq) > 0 {
		gain = s.eq[0]
	}

	seed := float32(v) / 65536
	n := f.SampleCount
	for i := range n {
		l := gain * (seed*0.5 + s.history*0.25 + float32(i)/float32(8*n))
		r := l * 0.5
		switch {
		case f.Channels() == 1:
			ch0[i] = l
		case s.mode == StereoBoth:
			ch0[i], ch1[i] = l, r
		case s.mode == StereoLeftOnly:
			ch0[i] = l
		case s.mode == StereoRightOnly:
			ch0[i] = r
		default:
			ch0[i] = (l + r) / 2
		}
	}
	s.history = seed

	return n, nil
}

func (s *fakeSynth) SetEqualizer(f []float32)   { s.eq = f }
func (s *fakeSynth) StereoMode() StereoMode     { return s.mode }
func (s *fakeSynth) SetStereoMode(m StereoMode) { s.mode = m }
func (s *fakeSynth) ResetForSeek() {
	s.history = 0
	s.resets++
}

// synthRecorder hands out fakeSynths and keeps them for inspection.
type synthRecorder struct {
	made []*fakeSynth
}

func (r *synthRecorder) factory() Synthesizer {
	s := &fakeSynth{}
	r.made = append(r.made, s)
	return s
}

func seedPayload(i int, p []byte) {
	binary.BigEndian.PutUint16(p, uint16(1000+37*i))
}

func testStream(frames int) audiotest.StreamSpec {
	return audiotest.StreamSpec{Frames: frames, Payload: seedPayload}
}

func newTestDecoder(t *testing.T, data []byte, opts ...Option) (*FileDecoder, *synthRecorder) {
	t.Helper()

	rec := &synthRecorder{}
	opts = append([]Option{WithSynthesizer(Layer3, rec.factory)}, opts...)
	d, err := NewFileDecoder(bytes.NewReader(data), opts...)
	if err != nil {
		t.Fatalf("NewFileDecoder() error = %v", err)
	}

	return d, rec
}

// readAll drains d in chunks of size and returns everything it produced.
func readAll(t *testing.T, d *FileDecoder, size int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, size)
	for range 100000 {
		n, err := d.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatal("ReadSamples() never reached io.EOF")
	return nil
}

// fakeLocator serves frames with arbitrary sample counts.
type fakeLocator struct {
	counts   []int
	seeds    []uint16
	next     int
	seekable bool
	channels int
	failNext error // returned once by the next NextFrame
}

func newFakeLocator(counts ...int) *fakeLocator {
	seeds := make([]uint16, len(counts))
	for i := range seeds {
		seeds[i] = uint16(1000 + 37*i)
	}
	return &fakeLocator{counts: counts, seeds: seeds, seekable: true, channels: 2}
}

func (l *fakeLocator) NextFrame() (*Frame, error) {
	if err := l.failNext; err != nil {
		l.failNext = nil
		return nil, err
	}
	if l.next >= len(l.counts) {
		return nil, io.EOF
	}

	mode := ModeStereo
	if l.channels == 1 {
		mode = ModeMono
	}
	h := Header{
		Version:     Version1,
		Layer:       Layer3,
		SampleRate:  44100,
		ChannelMode: mode,
		SampleCount: l.counts[l.next],
		FrameLength: 64,
	}
	data := make([]byte, h.FrameLength)
	binary.BigEndian.PutUint16(data[HeaderSize:], l.seeds[l.next])
	l.next++

	return NewFrame(h, data), nil
}

func (l *fakeLocator) SeekTo(target int64) (int64, error) {
	if !l.seekable {
		return 0, fmt.Errorf("%w: not seekable", ErrSeekOutOfRange)
	}
	var start int64
	for i, n := range l.counts {
		if target < start+int64(n) {
			l.next = i
			return start, nil
		}
		start += int64(n)
	}
	if target == start {
		l.next = len(l.counts)
		return start, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrSeekOutOfRange, target)
}

func (l *fakeLocator) SampleRate() int        { return 44100 }
func (l *fakeLocator) Channels() int          { return l.channels }
func (l *fakeLocator) CanSeek() bool          { return l.seekable }
func (l *fakeLocator) FirstFrameSamples() int { return l.counts[0] }

func (l *fakeLocator) TotalSamples() (int64, bool) {
	var total int64
	for _, n := range l.counts {
		total += int64(n)
	}
	return total, true
}
