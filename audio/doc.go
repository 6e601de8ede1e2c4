// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM interfaces shared by decoders and encoders.
//
// This package contains:
//   - Source interface for audio input
//   - SeekableSource for sources with random access
//   - Decoder and Encoder interfaces
//   - Format registry keyed by file extension
//   - Drain and ReadAll16 helpers for reading a Source to the end
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders return a Source; encoders consume one.
//
// # Format Registry
//
// The registry allows dynamic decoder and encoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("mp3", mp3.Decoder{})
//	registry.RegisterEncoder("wav", wav.Encoder{})
//	decoder, err := registry.DecoderFor("song.mp3")
//
// Lookups by path return ErrUnknownFormat when nothing is registered for the
// extension.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Other errors
// indicate problems with the source:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // Process n samples from buf
//	}
//
// Drain wraps this loop and also accepts sources that return the last
// samples together with io.EOF.
package audio
