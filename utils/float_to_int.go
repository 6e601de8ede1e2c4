// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a sample in [-1, 1] to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	return int16(FloatToInt(x, 16))
}

// FloatToInt clamps x to [-1, 1] and scales it to a signed integer of
// bitDepth bits. Full scale is 2^(bitDepth-1)-1 so that +1 does not overflow;
// bitDepth outside 2..32 returns 0.
func FloatToInt(x float32, bitDepth int) int {
	if bitDepth < 2 || bitDepth > 32 {
		return 0
	}

	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	full := float64(int64(1)<<(bitDepth-1) - 1)
	return int(float64(x) * full)
}
