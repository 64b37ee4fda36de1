package fixmesh

import (
	"math"
	"testing"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want int32
	}{
		{"one", 1.0, 16383},
		{"minus one", -1.0, -16383},
		{"zero", 0.0, 0},
		{"half truncates", 0.5, 8191},
		{"minus half truncates toward zero", -0.5, -8191},
		{"just below one", 0.99999, 16382},
		{"two", 2.0, 32766},
		{"beyond int16", 3.0, 49149},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.in); got != tt.want {
				t.Errorf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuantize_NonFinite(t *testing.T) {
	if got := Quantize(float32(math.NaN())); got != 0 {
		t.Errorf("Quantize(NaN) = %d, want 0", got)
	}
	if got := Quantize(float32(math.Inf(1))); got != math.MaxInt32 {
		t.Errorf("Quantize(+Inf) = %d, want %d", got, int32(math.MaxInt32))
	}
	if got := Quantize(float32(math.Inf(-1))); got != math.MinInt32 {
		t.Errorf("Quantize(-Inf) = %d, want %d", got, int32(math.MinInt32))
	}
	if got := Quantize(1e30); got != math.MaxInt32 {
		t.Errorf("Quantize(1e30) = %d, want saturation", got)
	}
}
