// Package fixmesh converts triangle meshes into fixed-point vertex records
// for renderers without floating point support.
package fixmesh

import "math"

// Scale maps a unit-range float into the positive half of a 16-bit signed
// integer: 1.0 becomes 16383.
const Scale float32 = 16383.0

// Quantize returns trunc(f * Scale) as an int32. The product is computed in
// float32 and truncated toward zero; no rounding is applied, so
// Quantize(0.99999) is 16382.
//
// NaN maps to 0 and values beyond the int32 range saturate, so every input
// produces a value without panicking.
func Quantize(f float32) int32 {
	x := f * Scale
	switch {
	case math.IsNaN(float64(x)):
		return 0
	case x >= math.MaxInt32:
		return math.MaxInt32
	case x <= math.MinInt32:
		return math.MinInt32
	}
	return int32(x)
}
