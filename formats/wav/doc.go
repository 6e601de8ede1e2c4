// SPDX-License-Identifier: EPL-2.0

// Package wav exports decoded audio as PCM WAV files.
//
// It uses github.com/go-audio/wav for the RIFF layout, so the output is the
// canonical 44 byte header followed by interleaved little-endian samples.
//
// # Supported Formats
//
//   - Integer PCM at 16, 24 or 32 bits
//   - Any channel count and sample rate
//
// # Exporting a Source
//
// Encoder implements audio.Encoder and drains any audio.Source:
//
//	decoder, _ := mp3.Decoder{}.Open("song.mp3")
//	defer decoder.Close()
//
//	out, _ := os.Create("song.wav")
//	defer out.Close()
//
//	err := wav.Encoder{}.Encode(out, decoder, 16)
//
// Samples outside [-1.0, 1.0] are clamped. The destination must be an
// io.WriteSeeker because the chunk sizes are patched once the data is
// written.
//
// # Writing 16-bit PCM
//
// WriteWAV16 writes samples that are already int16, such as the result of
// audio.ReadAll16:
//
//	pcm, _ := audio.ReadAll16(decoder, 0)
//	err := wav.WriteWAV16(out, decoder.SampleRate(), decoder.Channels(), pcm)
//
// # Error Handling
//
//   - ErrUnsupportedBitDepth: bit depth other than 16, 24 or 32
//   - ErrInvalidChannels: the source reports no channels
//   - ErrPartialFrame: WriteWAV16 got a sample count that is not a multiple of channels
package wav
