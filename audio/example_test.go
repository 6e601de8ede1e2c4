// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"log"

	"github.com/ik5/mpadec/audio"
	"github.com/ik5/mpadec/internal/audiotest"
)

// ExampleDrain reads a source to the end in fixed chunks.
func ExampleDrain() {
	source := audiotest.NewSineSource(16000, 2, 16000, 440.0) // 1 second stereo

	chunks, total := 0, 0
	err := audio.Drain(source, 4096, func(chunk []float32) error {
		chunks++
		total += len(chunk)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Chunks: %d\n", chunks)
	fmt.Printf("Total samples read: %d\n", total)
	// Output:
	// Chunks: 8
	// Total samples read: 32000
}

// ExampleReadAll16 collects a source as 16-bit PCM.
func ExampleReadAll16() {
	source := audiotest.NewConstantSource(8000, 1, 4, 0.5)

	pcm, err := audio.ReadAll16(source, 0)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(pcm)
	// Output:
	// [16383 16383 16383 16383]
}

// ExampleRegistry_DecoderFor looks a decoder up by file name.
func ExampleRegistry_DecoderFor() {
	registry := audio.NewRegistry()

	_, err := registry.DecoderFor("track.flac")
	fmt.Println(err)
	// Output:
	// no codec registered for format: "flac"
}
