package fixmesh

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Narrowing errors returned under OverflowStrict.
var (
	ErrComponentOverflow = errors.New("component does not fit in int16")
	ErrTriangleOverflow  = errors.New("triangle count does not fit in uint16")
	ErrUnknownOverflow   = errors.New("unknown overflow policy")
)

// Overflow selects how int32 values are narrowed to the 16-bit output types.
type Overflow int

const (
	// OverflowWrap keeps the low 16 bits, matching what a C compiler stores
	// when the literal is placed in an int16_t or uint16_t.
	OverflowWrap Overflow = iota
	// OverflowSaturate clamps to the limits of the output type.
	OverflowSaturate
	// OverflowStrict reports an error for any value out of range.
	OverflowStrict
)

// String returns the policy name used in configuration files.
func (o Overflow) String() string {
	switch o {
	case OverflowWrap:
		return "wrap"
	case OverflowSaturate:
		return "saturate"
	case OverflowStrict:
		return "strict"
	default:
		return fmt.Sprintf("Unknown(%d)", int(o))
	}
}

// ParseOverflow parses a policy name. The empty string selects OverflowWrap.
func ParseOverflow(name string) (Overflow, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "wrap":
		return OverflowWrap, nil
	case "saturate":
		return OverflowSaturate, nil
	case "strict":
		return OverflowStrict, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOverflow, name)
	}
}

// Narrow converts a quantized component to int16 under the given policy.
func Narrow(v int32, policy Overflow) (int16, error) {
	if v >= math.MinInt16 && v <= math.MaxInt16 {
		return int16(v), nil
	}
	switch policy {
	case OverflowSaturate:
		if v < 0 {
			return math.MinInt16, nil
		}
		return math.MaxInt16, nil
	case OverflowStrict:
		return 0, fmt.Errorf("%w: %d", ErrComponentOverflow, v)
	default:
		return int16(v), nil
	}
}

// Narrow converts every component of the record.
func (q QuantizedVertex) Narrow(policy Overflow) ([6]int16, error) {
	var out [6]int16
	for i, c := range q {
		n, err := Narrow(c, policy)
		if err != nil {
			return out, err
		}
		out[i] = n
	}
	return out, nil
}

// Count16 returns the triangle count as the emitted uint16.
func (s Summary) Count16(policy Overflow) (uint16, error) {
	n := s.Triangles
	if n <= math.MaxUint16 {
		return uint16(n), nil
	}
	switch policy {
	case OverflowSaturate:
		return math.MaxUint16, nil
	case OverflowStrict:
		return 0, fmt.Errorf("%w: %d", ErrTriangleOverflow, n)
	default:
		return uint16(n), nil
	}
}
