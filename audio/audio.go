// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// SeekableSource is a Source with random access. Positions are interleaved
// sample indexes; seeks may round down to the start of a frame.
type SeekableSource interface {
	Source

	CanSeek() bool
	Position() int64
	SetPosition(s int64) error
	Time() time.Duration
	SetTime(t time.Duration) error
	// TotalTime returns false when the length of the stream is unknown.
	TotalTime() (time.Duration, bool)
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Encoder writes all of a Source to w as integer PCM of the given bit depth.
type Encoder interface {
	Encode(w io.WriteSeeker, src Source, bitDepth int) error
}

// Registry for decoders and encoders by format key (e.g., "wav", "mp3").
type Registry struct {
	codecs   map[string]Decoder
	encoders map[string]Encoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:   make(map[string]Decoder),
		encoders: make(map[string]Encoder),
		mtx:      &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

func (r *Registry) RegisterEncoder(format string, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.encoders[format] = e
}

func (r *Registry) GetEncoder(format string) (Encoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.encoders[format]
	return e, ok
}

// DecoderFor picks the decoder registered under the extension of path.
func (r *Registry) DecoderFor(path string) (Decoder, error) {
	format := FormatOf(path)
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return d, nil
}

// EncoderFor picks the encoder registered under the extension of path.
func (r *Registry) EncoderFor(path string) (Encoder, error) {
	format := FormatOf(path)
	e, ok := r.GetEncoder(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return e, nil
}

// FormatOf returns the lower-cased extension of path without the dot.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
