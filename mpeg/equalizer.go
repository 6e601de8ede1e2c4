// SPDX-License-Identifier: EPL-2.0

package mpeg

import "math"

// EqualizerBands is the number of sub-band gains an equalizer table holds.
const EqualizerBands = 32

// equalizerFactors converts decibel gains to linear factors, 2^(dB/6).
// Entries past EqualizerBands are ignored; an empty input disables.
func equalizerFactors(dB []float32) []float32 {
	if len(dB) == 0 {
		return nil
	}

	n := min(len(dB), EqualizerBands)
	factors := make([]float32, n)
	for i := range n {
		factors[i] = float32(math.Pow(2, float64(dB[i])/6))
	}

	return factors
}
