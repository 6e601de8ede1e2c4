// SPDX-License-Identifier: EPL-2.0

package mpeg

import "log/slog"

var discardLogger = slog.New(slog.DiscardHandler)

type config struct {
	logger     *slog.Logger
	factories  map[Layer]SynthesizerFactory
	stereoMode StereoMode
	equalizer  []float32
	retain     bool
}

// Option configures a FileDecoder.
type Option func(*config)

// WithLogger sets the logger for resynchronisation and seek diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSynthesizer registers the synthesizer factory for a layer.
func WithSynthesizer(l Layer, f SynthesizerFactory) Option {
	return func(c *config) {
		c.factories[l] = f
	}
}

// WithStereoMode sets the initial stereo mode.
func WithStereoMode(m StereoMode) Option {
	return func(c *config) { c.stereoMode = m }
}

// WithEqualizer sets initial equalizer gains in dB.
func WithEqualizer(dB []float32) Option {
	return func(c *config) { c.equalizer = append([]float32(nil), dB...) }
}

// WithRetainedSource leaves the byte source open on Close.
func WithRetainedSource() Option {
	return func(c *config) { c.retain = true }
}

func newConfig(opts []Option) *config {
	c := &config{
		logger:    discardLogger,
		factories: make(map[Layer]SynthesizerFactory),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
