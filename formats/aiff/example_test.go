// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ik5/mpadec/formats/aiff"
	"github.com/ik5/mpadec/internal/audiotest"
)

// Example exports one second of a tone as 16-bit AIFF.
func Example() {
	out, err := os.CreateTemp("", "tone-*.aiff")
	if err != nil {
		log.Fatal(err)
	}
	defer os.Remove(out.Name())
	defer out.Close()

	source := audiotest.NewSineSource(44100, 2, 44100, 440.0)
	if err := (aiff.Encoder{}).Encode(out, source, 16); err != nil {
		log.Fatal(err)
	}

	fmt.Println("exported")
	// Output:
	// exported
}

// ExampleEncoder_Encode shows the bit depth check.
func ExampleEncoder_Encode() {
	source := audiotest.NewConstantSource(8000, 1, 10, 0)

	err := aiff.Encoder{}.Encode(nil, source, 8)
	fmt.Println(errors.Is(err, aiff.ErrUnsupportedBitDepth))
	// Output:
	// true
}
