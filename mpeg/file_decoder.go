// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// State of a FileDecoder.
type State uint8

const (
	StateNotStarted State = iota
	StateStreaming
	StateSeeking
	StateEndOfStream
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateStreaming:
		return "streaming"
	case StateSeeking:
		return "seeking"
	case StateEndOfStream:
		return "end of stream"
	default:
		return "unknown"
	}
}

// FileDecoder is the streaming decode and seek engine. It pulls frames from a
// Locator, decodes them through a FrameDecoder and hands out interleaved
// float32 PCM in [-1, 1].
//
// A FileDecoder is not safe for concurrent use.
type FileDecoder struct {
	loc    Locator
	frames *FrameDecoder
	closer io.Closer
	logger *slog.Logger
	state  State

	// PCM of the last decoded frame not yet handed out.
	lookahead   [2 * MaxSamplesPerFrame]float32
	readOffset  int
	readLen     int
	bufChannels int

	// sample counts per-channel samples delivered; sub counts the interleaved
	// samples delivered past it.
	sample int64
	sub    int
}

// NewFileDecoder locates the first frame of r and returns a decoder over it.
// r is closed by Close when it implements io.Closer, unless
// WithRetainedSource is given.
func NewFileDecoder(r io.Reader, opts ...Option) (*FileDecoder, error) {
	cfg := newConfig(opts)

	loc, err := NewStreamLocator(r, cfg.logger)
	if err != nil {
		return nil, err
	}

	d := newFileDecoder(loc, cfg)
	if c, ok := r.(io.Closer); ok && !cfg.retain {
		d.closer = c
	}

	return d, nil
}

// NewFileDecoderFromLocator builds a decoder over an existing Locator.
func NewFileDecoderFromLocator(loc Locator, opts ...Option) *FileDecoder {
	return newFileDecoder(loc, newConfig(opts))
}

// Open opens the named file and returns a decoder that owns it.
func Open(path string, opts ...Option) (*FileDecoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	d, err := NewFileDecoder(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.closer = f

	return d, nil
}

func newFileDecoder(loc Locator, cfg *config) *FileDecoder {
	d := &FileDecoder{
		loc:         loc,
		frames:      NewFrameDecoder(cfg.factories),
		logger:      cfg.logger,
		bufChannels: 1,
	}
	d.frames.SetStereoMode(cfg.stereoMode)
	d.frames.SetEqualizer(cfg.equalizer)
	return d
}

func (d *FileDecoder) SampleRate() int { return d.loc.SampleRate() }

// Channels is the number of interleaved output channels: 1 for mono sources
// or when the stereo mode selects or mixes a single channel.
// A stereo mode change takes effect with the next decoded frame; until the
// current frame is handed out Channels keeps reporting its layout.
func (d *FileDecoder) Channels() int {
	if d.readOffset < d.readLen {
		return d.bufChannels
	}
	if d.loc.Channels() == 1 || d.frames.StereoMode() != StereoBoth {
		return 1
	}
	return 2
}

// Layer is the layer of the first frame, or LayerUnknown when the locator
// does not expose frame headers.
func (d *FileDecoder) Layer() Layer {
	if h, ok := d.loc.(interface{ FirstHeader() Header }); ok {
		return h.FirstHeader().Layer
	}
	return LayerUnknown
}

// HasSynthesizer reports whether frames of layer l produce samples.
func (d *FileDecoder) HasSynthesizer(l Layer) bool { return d.frames.HasSynthesizer(l) }

func (d *FileDecoder) CanSeek() bool       { return d.loc.CanSeek() }
func (d *FileDecoder) State() State        { return d.state }
func (d *FileDecoder) IsEndOfStream() bool { return d.state == StateEndOfStream }
func (d *FileDecoder) BufSize() int        { return len(d.lookahead) }

func (d *FileDecoder) StereoMode() StereoMode     { return d.frames.StereoMode() }
func (d *FileDecoder) SetStereoMode(m StereoMode) { d.frames.SetStereoMode(m) }

// SetEqualizer installs up to EqualizerBands gains in dB; nil disables.
func (d *FileDecoder) SetEqualizer(dB []float32) { d.frames.SetEqualizer(dB) }

// TotalSamples is the per-channel length of the stream.
func (d *FileDecoder) TotalSamples() (int64, bool) { return d.loc.TotalSamples() }

// Length is the interleaved length of the stream.
func (d *FileDecoder) Length() (int64, bool) {
	n, ok := d.loc.TotalSamples()
	if !ok {
		return 0, false
	}
	return n * int64(d.Channels()), true
}

// TotalTime is the duration of the stream.
func (d *FileDecoder) TotalTime() (time.Duration, bool) {
	n, ok := d.loc.TotalSamples()
	if !ok {
		return 0, false
	}
	return d.samplesToTime(n), true
}

// Position is the interleaved index of the next sample ReadSamples returns.
func (d *FileDecoder) Position() int64 {
	return d.sample*int64(d.Channels()) + int64(d.sub)
}

// Time is Position expressed as a duration.
func (d *FileDecoder) Time() time.Duration {
	return d.samplesToTime(d.sample)
}

// SetTime seeks to the sample at t.
func (d *FileDecoder) SetTime(t time.Duration) error {
	if t < 0 {
		return fmt.Errorf("%w: %v", ErrSeekOutOfRange, t)
	}
	return d.SetPosition(d.timeToSamples(t) * int64(d.Channels()))
}

// samplesToTime truncates to the nanosecond; timeToSamples rounds up, so
// timeToSamples(samplesToTime(n)) == n.
func (d *FileDecoder) samplesToTime(n int64) time.Duration {
	sr := int64(d.SampleRate())
	if sr <= 0 {
		return 0
	}
	secs, rem := n/sr, n%sr
	return time.Duration(secs)*time.Second + time.Duration(rem)*time.Second/time.Duration(sr)
}

func (d *FileDecoder) timeToSamples(t time.Duration) int64 {
	sr := int64(d.SampleRate())
	secs, rem := int64(t/time.Second), int64(t%time.Second)
	return secs*sr + (rem*sr+int64(time.Second)-1)/int64(time.Second)
}

// ReadSamples copies decoded interleaved samples into dst and returns how
// many were written. It decodes only as many frames as needed to fill dst.
// (0, io.EOF) is returned once the stream has ended.
func (d *FileDecoder) ReadSamples(dst []float32) (int, error) {
	if d.state == StateNotStarted {
		d.state = StateStreaming
	}

	written := 0
	for written < len(dst) {
		if d.readOffset < d.readLen {
			n := copy(dst[written:], d.lookahead[d.readOffset:d.readLen])
			d.readOffset += n
			d.advance(n)
			written += n
			continue
		}

		if d.state == StateEndOfStream {
			break
		}

		ok, err := d.decodeNext()
		if err != nil {
			return written, err
		}
		if !ok {
			break
		}
	}

	if written == 0 && d.state == StateEndOfStream && len(dst) > 0 {
		return 0, io.EOF
	}

	return written, nil
}

func (d *FileDecoder) advance(n int) {
	total := d.sub + n
	d.sample += int64(total / d.bufChannels)
	d.sub = total % d.bufChannels
}

// decodeNext fills the look-ahead buffer from the next decodable frame.
// Corrupt frames are skipped after resetting synthesizer state. It reports
// false once the input has ended.
func (d *FileDecoder) decodeNext() (bool, error) {
	for {
		f, err := d.loc.NextFrame()
		if err != nil {
			if isEndOfInput(err) {
				d.state = StateEndOfStream
				return false, nil
			}
			return false, fmt.Errorf("mpeg: next frame: %w", err)
		}

		res := d.frames.decode(f, d.lookahead[:])
		f.Release()

		switch res.status {
		case statusCorrupt:
			d.logger.Debug("mpeg: skipping corrupt frame", "sample", d.sample, "err", res.err)
			d.frames.Reset()
			d.readOffset, d.readLen = 0, 0
			continue
		case statusEndOfInput:
			d.state = StateEndOfStream
			return false, nil
		case statusFailed:
			return false, res.err
		}

		d.readOffset, d.readLen = 0, res.n
		d.bufChannels = res.channels
		return true, nil
	}
}

// SetPosition seeks to the interleaved sample index s. The achieved position
// is the start of the frame covering s; read it back with Position. A target
// out of range leaves the decoder unchanged. When the warm-up frame cannot be
// read the error is returned with the decoder positioned at the frame that
// failed, and buffered PCM from before the seek is dropped.
func (d *FileDecoder) SetPosition(s int64) error {
	if s < 0 {
		return fmt.Errorf("%w: %d", ErrSeekOutOfRange, s)
	}
	if !d.loc.CanSeek() {
		return fmt.Errorf("%w: source is not seekable", ErrSeekOutOfRange)
	}

	samples := s / int64(d.Channels())
	if total, ok := d.loc.TotalSamples(); ok && samples > total {
		return fmt.Errorf("%w: %d beyond %d", ErrSeekOutOfRange, s, total*int64(d.Channels()))
	}

	warmup := int64(d.loc.FirstFrameSamples())
	target := samples
	needWarmup := samples >= warmup
	if needWarmup {
		target = samples - warmup
	}

	prev := d.state
	d.state = StateSeeking

	got, err := d.loc.SeekTo(target)
	if err != nil {
		d.state = prev
		if errors.Is(err, ErrSeekOutOfRange) {
			return err
		}
		return fmt.Errorf("mpeg: seek: %w", err)
	}

	d.frames.Reset()

	d.readOffset, d.readLen = 0, 0
	d.sub = 0

	if needWarmup {
		if err := d.warmUp(); err != nil {
			// the locator has moved; the next read resumes at the frame
			// that failed to load
			d.sample = got
			d.state = StateStreaming
			return err
		}
		got += warmup
	}

	d.sample = got
	d.state = StateStreaming
	d.logger.Debug("mpeg: seek", "target", s, "achieved", d.Position())

	return nil
}

// warmUp decodes and discards one frame to prime filter-bank history.
func (d *FileDecoder) warmUp() error {
	f, err := d.loc.NextFrame()
	if err != nil {
		if isEndOfInput(err) {
			return nil
		}
		return fmt.Errorf("mpeg: warm-up frame: %w", err)
	}

	res := d.frames.decode(f, d.lookahead[:])
	f.Release()
	if res.status == statusCorrupt {
		d.frames.Reset()
	}

	return nil
}

// Close closes the byte source unless it was retained by the caller.
func (d *FileDecoder) Close() error {
	if d.closer == nil {
		return nil
	}
	c := d.closer
	d.closer = nil
	if err := c.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func isEndOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
