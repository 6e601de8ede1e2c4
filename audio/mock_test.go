package audio

import (
	"io"
	"time"
)

// mockSource is a test helper that generates a ramp. Like many decoders it
// reports io.EOF together with the last samples.
type mockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	failAfter    int // return failErr once this many per-channel samples were generated; 0 disables
	failErr      error
	reads        int
}

func newMockSource(sampleRate, channels, totalSamples int) *mockSource {
	return &mockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
	}
}

// value is the sample the mock produces at a per-channel index and channel.
func (m *mockSource) value(sample, channel int) float32 {
	return float32(sample%100)/100 - float32(channel)*0.5
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }
func (m *mockSource) Close() error    { return nil }

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	m.reads++
	if m.failAfter > 0 && m.generated >= m.failAfter {
		return 0, m.failErr
	}
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range framesToWrite {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.value(m.generated+frame, ch)
		}
	}
	m.generated += framesToWrite

	samplesWritten := framesToWrite * m.channels
	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// seekableMock adds the SeekableSource methods to mockSource.
type seekableMock struct {
	*mockSource
}

var _ SeekableSource = seekableMock{}

func (s seekableMock) CanSeek() bool   { return true }
func (s seekableMock) Position() int64 { return int64(s.generated * s.channels) }

func (s seekableMock) SetPosition(p int64) error {
	s.generated = int(p) / s.channels
	return nil
}

func (s seekableMock) Time() time.Duration {
	return time.Duration(s.generated) * time.Second / time.Duration(s.sampleRate)
}

func (s seekableMock) SetTime(t time.Duration) error {
	return s.SetPosition(int64(t.Seconds()*float64(s.sampleRate)) * int64(s.channels))
}

func (s seekableMock) TotalTime() (time.Duration, bool) {
	return time.Duration(s.totalSamples) * time.Second / time.Duration(s.sampleRate), true
}
