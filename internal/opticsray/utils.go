package opticsray

import "math"

func clamp01(x Real) Real {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// toByte maps a [0,1] channel to 0..255 with rounding.
func toByte(v Real) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(clamp01(v) * 255))
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
