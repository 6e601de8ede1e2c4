// SPDX-License-Identifier: EPL-2.0

// Package mpeg implements the streaming decode and seek engine for MPEG-1,
// MPEG-2 and MPEG-2.5 audio, Layers I to III.
//
// The engine sits above the per-layer synthesis step. It locates frames,
// keeps inter-frame decoder state, formats channel output, buffers PCM that
// was decoded but not yet delivered, and seeks with frame granularity.
//
// # Components
//
//   - Frame: one header plus a resettable bit cursor over its payload.
//   - Locator: finds successive frames and relocates for seeking.
//     StreamLocator implements it over any io.Reader.
//   - Synthesizer: turns one frame into per-channel PCM for a single layer.
//     Implementations are registered per layer with WithSynthesizer.
//   - FrameDecoder: picks the synthesizer for a frame, applies the
//     equalizer and stereo mode, and interleaves output.
//   - FileDecoder: the top-level engine with position tracking, corrupt
//     frame recovery and seeking.
//
// # Reading
//
//	dec, err := mpeg.Open("track.mp3", mpeg.WithSynthesizer(mpeg.Layer3, newSynth))
//	if err != nil {
//	    return err
//	}
//	defer dec.Close()
//
//	buf := make([]float32, 4096)
//	for {
//	    n, err := dec.ReadSamples(buf)
//	    if err == io.EOF {
//	        break
//	    }
//	    // use buf[:n]
//	}
//
// Frames whose payload is malformed are skipped after resetting synthesizer
// state; a read then simply returns fewer samples. The end of the stream is
// reported only after a request for another frame finds none.
//
// # Seeking
//
// SetPosition takes an interleaved sample index. The decoder jumps one frame
// before the target, decodes and discards that frame to prime filter-bank
// history, and resumes at the start of the frame covering the target. The
// achieved position therefore rounds down to a frame boundary.
//
// # Thread Safety
//
// None of the types in this package are safe for concurrent use. Use one
// FileDecoder per stream.
package mpeg
