package common

import "math"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Damp moves current toward target, closing the fraction 1-smoothing of the
// gap every second regardless of dt.
func Damp(current, target, smoothing, dt float32) float32 {
	if smoothing <= 0 {
		return target
	}
	if smoothing >= 1 || dt <= 0 {
		return current
	}
	return Lerp(current, target, 1-float32(math.Pow(float64(smoothing), float64(dt))))
}
