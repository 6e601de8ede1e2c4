// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
)

// Locator finds successive frames in a byte source and relocates the byte
// cursor for seeking. Positions are per-channel sample indexes.
type Locator interface {
	// NextFrame returns the next frame, or io.EOF at the true end of input.
	NextFrame() (*Frame, error)
	// SeekTo moves to the frame covering target and returns the first sample
	// of that frame. Invalid targets return an error wrapping ErrSeekOutOfRange.
	SeekTo(target int64) (int64, error)

	SampleRate() int
	Channels() int
	CanSeek() bool
	// FirstFrameSamples is the sample count of the first frame. It is also the
	// decoder's warm-up length after a seek.
	FirstFrameSamples() int
	// TotalSamples returns the per-channel sample count, or false when it
	// cannot be known.
	TotalSamples() (int64, bool)
}

const readBufferSize = 8192

type indexEntry struct {
	offset  int64
	sample  int64
	samples int32
	length  int32
}

// StreamLocator is the Locator over an io.Reader. When the reader is also an
// io.Seeker, a frame index is built while reading and extended on demand by a
// header-only scan, which makes seeking and the total sample count exact.
type StreamLocator struct {
	r      io.Reader
	seeker io.Seeker
	br     *bufio.Reader
	pos    int64

	first Header
	info  *Info
	start int64

	index      []indexEntry
	complete   bool
	next       int
	nextSample int64

	logger *slog.Logger
}

var _ Locator = (*StreamLocator)(nil)

// NewStreamLocator skips a leading ID3v2 tag, locates the first frame and
// consumes a Xing/Info tag frame if there is one. A nil logger discards.
func NewStreamLocator(r io.Reader, logger *slog.Logger) (*StreamLocator, error) {
	if logger == nil {
		logger = discardLogger
	}

	l := &StreamLocator{
		r:      r,
		br:     bufio.NewReaderSize(r, readBufferSize),
		logger: logger,
	}

	if s, ok := r.(io.Seeker); ok {
		if off, err := s.Seek(0, io.SeekCurrent); err == nil {
			l.seeker = s
			l.pos = off
		}
	}

	if err := l.skipID3v2(); err != nil {
		return nil, err
	}

	h, err := l.syncFirst()
	if err != nil {
		return nil, err
	}
	l.first = h

	if b, err := l.br.Peek(h.FrameLength); err == nil {
		if info, ok := parseInfo(h, b); ok {
			l.info = info
			if err := l.discard(h.FrameLength); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("mpeg: skip info frame: %w", err)
			}
			logger.Debug("mpeg: info tag", "vbr", info.VBR, "frames", info.Frames, "encoder", info.Encoder)
		}
	}
	l.start = l.pos

	return l, nil
}

func (l *StreamLocator) SampleRate() int        { return l.first.SampleRate }
func (l *StreamLocator) Channels() int          { return l.first.Channels() }
func (l *StreamLocator) CanSeek() bool          { return l.seeker != nil }
func (l *StreamLocator) FirstFrameSamples() int { return l.first.SampleCount }

// FirstHeader is the header of the first frame of the stream.
func (l *StreamLocator) FirstHeader() Header { return l.first }

// Info returns the Xing/Info tag, or nil.
func (l *StreamLocator) Info() *Info { return l.info }

func (l *StreamLocator) TotalSamples() (int64, bool) {
	if l.seeker == nil {
		if l.info != nil && l.info.HasFrameCount() {
			return int64(l.info.Frames) * int64(l.first.SampleCount), true
		}
		return 0, false
	}

	if err := l.extendIndex(func() bool { return false }); err != nil {
		l.logger.Debug("mpeg: index scan failed", "err", err)
		return 0, false
	}

	return l.indexedSamples(), true
}

func (l *StreamLocator) NextFrame() (*Frame, error) {
	h, err := l.sync(true)
	if err != nil {
		if errors.Is(err, io.EOF) {
			l.markEnd()
		}
		return nil, err
	}

	offset := l.pos
	f := newPooledFrame(h)
	n, err := io.ReadFull(l.br, f.data)
	l.pos += int64(n)
	if err != nil {
		f.Release()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			l.logger.Debug("mpeg: truncated final frame", "offset", offset, "have", n, "want", h.FrameLength)
			l.markEnd()
			return nil, io.EOF
		}
		return nil, fmt.Errorf("mpeg: read frame: %w", err)
	}

	f.crcFailed = !checkCRC(h, f.data)
	f.Reset()
	l.record(offset, h)

	return f, nil
}

func (l *StreamLocator) SeekTo(target int64) (int64, error) {
	if l.seeker == nil {
		return 0, fmt.Errorf("%w: source is not seekable", ErrSeekOutOfRange)
	}
	if target < 0 {
		return 0, fmt.Errorf("%w: %d", ErrSeekOutOfRange, target)
	}

	if err := l.extendIndex(func() bool { return l.indexedSamples() > target }); err != nil {
		return 0, err
	}

	total := l.indexedSamples()
	if target > total {
		return 0, fmt.Errorf("%w: %d beyond %d", ErrSeekOutOfRange, target, total)
	}

	i := sort.Search(len(l.index), func(i int) bool {
		e := l.index[i]
		return e.sample+int64(e.samples) > target
	})

	offset, sample := l.indexEnd(), total
	if i < len(l.index) {
		offset, sample = l.index[i].offset, l.index[i].sample
	}
	if err := l.seek(offset); err != nil {
		return 0, err
	}

	l.next = i
	l.nextSample = sample

	return sample, nil
}

func (l *StreamLocator) skipID3v2() error {
	b, err := l.br.Peek(10)
	if err != nil || string(b[:3]) != "ID3" {
		return nil
	}

	size := int(b[6]&0x7F)<<21 | int(b[7]&0x7F)<<14 | int(b[8]&0x7F)<<7 | int(b[9]&0x7F)
	size += 10
	if b[5]&0x10 != 0 {
		size += 10 // footer
	}

	if err := l.discard(size); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrNoFrames
		}
		return fmt.Errorf("mpeg: skip ID3v2 tag: %w", err)
	}
	l.logger.Debug("mpeg: skipped ID3v2 tag", "size", size)

	return nil
}

// syncFirst accepts a header only when the header that follows it agrees,
// or when the frame ends exactly at the end of input.
func (l *StreamLocator) syncFirst() (Header, error) {
	for {
		h, err := l.sync(false)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Header{}, ErrNoFrames
			}
			return Header{}, err
		}

		b, err := l.br.Peek(h.FrameLength + HeaderSize)
		switch {
		case err == nil:
			if next, nerr := ParseHeader(b[h.FrameLength:]); nerr == nil && h.compatible(next) {
				return h, nil
			}
		case errors.Is(err, io.EOF):
			if len(b) == h.FrameLength {
				return h, nil
			}
		default:
			return Header{}, fmt.Errorf("mpeg: read: %w", err)
		}

		if err := l.discard(1); err != nil {
			return Header{}, ErrNoFrames
		}
	}
}

// sync advances to the next plausible frame header without consuming it.
// When locked, only headers compatible with the first frame are accepted.
func (l *StreamLocator) sync(locked bool) (Header, error) {
	skipped := 0
	defer func() {
		if skipped > 0 {
			l.logger.Debug("mpeg: resynchronised", "skipped", skipped, "offset", l.pos)
		}
	}()

	for {
		b, err := l.br.Peek(HeaderSize)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Header{}, io.EOF
			}
			return Header{}, fmt.Errorf("mpeg: read: %w", err)
		}

		h, herr := ParseHeader(b)
		if herr == nil && (!locked || l.first.compatible(h)) {
			return h, nil
		}

		if err := l.discard(1); err != nil {
			return Header{}, err
		}
		skipped++
	}
}

func (l *StreamLocator) discard(n int) error {
	m, err := l.br.Discard(n)
	l.pos += int64(m)
	return err
}

func (l *StreamLocator) seek(offset int64) error {
	if _, err := l.seeker.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("mpeg: seek: %w", err)
	}
	l.br.Reset(l.r)
	l.pos = offset
	return nil
}

func (l *StreamLocator) record(offset int64, h Header) {
	if l.seeker != nil && l.next == len(l.index) && !l.complete {
		l.index = append(l.index, indexEntry{
			offset:  offset,
			sample:  l.nextSample,
			samples: int32(h.SampleCount),
			length:  int32(h.FrameLength),
		})
	}
	l.next++
	l.nextSample += int64(h.SampleCount)
}

func (l *StreamLocator) markEnd() {
	if l.seeker != nil && l.next == len(l.index) {
		l.complete = true
	}
}

func (l *StreamLocator) indexedSamples() int64 {
	if len(l.index) == 0 {
		return 0
	}
	e := l.index[len(l.index)-1]
	return e.sample + int64(e.samples)
}

func (l *StreamLocator) indexEnd() int64 {
	if len(l.index) == 0 {
		return l.start
	}
	e := l.index[len(l.index)-1]
	return e.offset + int64(e.length)
}

// extendIndex scans frame headers past the indexed region until done reports
// true or the input ends. The read position is restored on every return; the
// first error wins.
func (l *StreamLocator) extendIndex(done func() bool) (err error) {
	if l.complete || done() {
		return nil
	}

	resume := l.pos
	defer func() {
		if serr := l.seek(resume); err == nil {
			err = serr
		}
	}()

	if err := l.seek(l.indexEnd()); err != nil {
		return err
	}

	sample := l.indexedSamples()
	for !done() {
		h, err := l.sync(true)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			l.complete = true
			break
		}

		offset := l.pos
		if err := l.discard(h.FrameLength); err != nil {
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("mpeg: scan: %w", err)
			}
			l.complete = true
			break
		}

		l.index = append(l.index, indexEntry{
			offset:  offset,
			sample:  sample,
			samples: int32(h.SampleCount),
			length:  int32(h.FrameLength),
		})
		sample += int64(h.SampleCount)
	}

	return nil
}
