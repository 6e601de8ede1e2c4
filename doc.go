// SPDX-License-Identifier: EPL-2.0

// Package mpadec decodes MPEG-1, MPEG-2 and MPEG-2.5 audio (Layers I, II and
// III) to PCM and exports it to WAV or AIFF.
//
// The decode engine lives in the mpeg subpackage. It locates frames in the
// byte stream, recovers from corrupt frames, keeps a look-ahead buffer so
// reads of any size are served sample-accurately, and seeks to any sample.
// This package wires the engine to the bundled Layer III synthesizer and to
// the exporters.
//
// # Supported Formats
//
// Decoding:
//   - MPEG audio files (.mp3, .mp2, .mp1, .mpa) via formats/mp3
//   - Layer III is decoded out of the box; Layers I and II need a
//     synthesizer registered with mpeg.WithSynthesizer, otherwise Open,
//     OpenSource and Convert return mpeg.ErrNoSynthesizer
//
// Exporting:
//   - WAV (16, 24 or 32-bit PCM) via formats/wav
//   - AIFF (16, 24 or 32-bit PCM) via formats/aiff
//
// # Quick Start
//
// The simplest way to convert a file is Convert:
//
//	err := mpadec.Convert("song.mp3", "song.wav", 16)
//
// # Decoding and Seeking
//
// Open returns the engine's decoder, which implements audio.SeekableSource:
//
//	dec, err := mpadec.Open("song.mp3", mpeg.WithStereoMode(mpeg.StereoDownmixToMono))
//	if err != nil {
//	    return err
//	}
//	defer dec.Close()
//
//	// Skip the first ten seconds
//	if err := dec.SetTime(10 * time.Second); err != nil {
//	    return err
//	}
//
//	buf := make([]float32, dec.BufSize())
//	n, err := dec.ReadSamples(buf)
//
// Positions are counted in interleaved samples. A seek lands on the first
// sample of the frame that covers the target; seeking outside the stream
// returns mpeg.ErrSeekOutOfRange and leaves the decoder untouched.
//
// # Collecting PCM
//
// DecodeAll drains any audio.Source into 16-bit samples:
//
//	pcm, err := mpadec.DecodeAll(dec, 0)
//
//	out, _ := os.Create("song.wav")
//	defer out.Close()
//	wav.WriteWAV16(out, dec.SampleRate(), dec.Channels(), pcm)
//
// # Format Registry
//
// OpenSource, Encode and Convert pick codecs through DefaultRegistry by file
// extension. Unknown extensions return audio.ErrUnknownFormat.
//
// See the individual subpackages for more detailed documentation.
package mpadec
