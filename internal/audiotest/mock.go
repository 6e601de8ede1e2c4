// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"io"
	"math"
)

// MockSource generates interleaved float32 PCM from a waveform function. It
// satisfies audio.Source without importing it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // per-channel samples to produce
	pos        int // interleaved samples produced
	waveform   func(frame, channel int) float32
	closed     bool
}

// NewMockSource returns a source of frames per-channel samples.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewSineSource returns a sine tone at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * frequency * float64(frame) / float64(sampleRate)))
	})
}

// NewConstantSource returns a source holding value on every sample.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// ReadSamples returns (0, io.EOF) after the last sample.
func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	total := m.frames * m.channels
	if m.pos >= total {
		return 0, io.EOF
	}

	n := min(len(dst), total-m.pos)
	for i := range n {
		idx := m.pos + i
		dst[i] = m.waveform(idx/m.channels, idx%m.channels)
	}
	m.pos += n

	return n, nil
}

// ClosingReader is a bytes.Reader that records Close calls.
type ClosingReader struct {
	*bytes.Reader
	Closes int
}

// NewClosingReader wraps b.
func NewClosingReader(b []byte) *ClosingReader {
	return &ClosingReader{Reader: bytes.NewReader(b)}
}

func (c *ClosingReader) Close() error {
	c.Closes++
	return nil
}

// StreamOnly hides every method of r except Read, so a seekable reader can be
// used as a non-seekable stream.
func StreamOnly(r io.Reader) io.Reader {
	return struct{ io.Reader }{r}
}
