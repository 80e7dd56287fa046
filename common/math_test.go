package common

import (
	"math"
	"testing"
)

func TestDamp(t *testing.T) {
	tests := []struct {
		name                        string
		current, target, smooth, dt float32
		want                        float32
	}{
		{"no_smoothing_snaps", 0, 10, 0, 0.016, 10},
		{"full_smoothing_holds", 3, 10, 1, 0.016, 3},
		{"zero_dt_holds", 3, 10, 0.5, 0, 3},
		{"one_second_halves_gap", 0, 10, 0.5, 1, 5},
		{"two_seconds", 0, 8, 0.5, 2, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Damp(tc.current, tc.target, tc.smooth, tc.dt)
			if math.Abs(float64(got-tc.want)) > 1e-5 {
				t.Fatalf("Damp = %v, want %v", got, tc.want)
			}
		})
	}

	// Two half steps equal one full step.
	a := Damp(Damp(0, 10, 0.25, 0.5), 10, 0.25, 0.5)
	b := Damp(0, 10, 0.25, 1)
	if math.Abs(float64(a-b)) > 1e-4 {
		t.Fatalf("frame-rate dependent: %v vs %v", a, b)
	}
}
