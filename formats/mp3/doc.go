// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MPEG audio decoding as an audio.Source.
//
// Frame location, seeking and corrupt frame recovery come from the mpeg
// package. Layer III synthesis is done by github.com/hajimehoshi/go-mp3,
// fed one frame at a time through Layer3Synthesizer.
//
// # Decoding MP3 Files
//
// Use the Decoder to read MP3 files:
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	// Read samples as float32 in range [-1.0, 1.0]
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// The returned source is an *mpeg.FileDecoder, so it can also seek:
//
//	dec := source.(*mpeg.FileDecoder)
//	dec.SetTime(30 * time.Second)
//
// # Options
//
// Decoder.Options are handed to the engine unchanged:
//
//	decoder := mp3.Decoder{Options: []mpeg.Option{
//	    mpeg.WithStereoMode(mpeg.StereoDownmixToMono),
//	    mpeg.WithLogger(slog.Default()),
//	}}
//
// # Limitations
//
//   - Only Layer III is synthesized. Decode and Open return
//     mpeg.ErrNoSynthesizer for Layer I and II streams unless a synthesizer
//     is registered with mpeg.WithSynthesizer.
//   - go-mp3 handles MPEG-1 and MPEG-2 only. MPEG-2.5 Layer III streams
//     (8, 11.025 and 12 kHz) are located but every frame is rejected as
//     corrupt, so they yield no samples with the bundled synthesizer.
//   - The 32-band equalizer is reduced to a single gain, the mean of the
//     band factors, because go-mp3 does not expose its sub-bands.
//   - Free-format streams are not supported.
package mp3
