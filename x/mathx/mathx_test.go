package mathx

import "testing"

func TestMapI32(t *testing.T) {
	cases := []struct {
		x, inMin, inMax int32
		want            int32
	}{
		{512, 512, 3584, 0},
		{3584, 512, 3584, 100},
		{2400, 512, 3584, 61},
		// Inverted polarity.
		{3584, 3584, 512, 0},
		{512, 3584, 512, 100},
		{2400, 3584, 512, 38},
		// Outside the calibrated range is not clamped.
		{0, 512, 3584, -16},
		{4095, 512, 3584, 116},
		// Zero span.
		{1234, 700, 700, 0},
		{-5, 0, 0, 0},
	}
	for _, tc := range cases {
		if got := MapI32(tc.x, tc.inMin, tc.inMax, 0, 100); got != tc.want {
			t.Fatalf("MapI32(%d, %d, %d, 0, 100) = %d, want %d", tc.x, tc.inMin, tc.inMax, got, tc.want)
		}
	}
}

func TestMapI32TruncatesTowardZero(t *testing.T) {
	// 100 * -1 / 3 = -33.3 -> -33, not -34.
	if got := MapI32(-1, 0, 3, 0, 100); got != -33 {
		t.Fatalf("got %d, want -33", got)
	}
}

func TestClampAndBetween(t *testing.T) {
	if got := Clamp(1500, 1, 1023); got != 1023 {
		t.Fatalf("Clamp high = %d", got)
	}
	if got := Clamp(0, 1023, 1); got != 1 {
		t.Fatalf("Clamp swapped bounds = %d", got)
	}
	if !Between(50, 100, 0) || Between(101, 0, 100) {
		t.Fatalf("Between mismatch")
	}
}
