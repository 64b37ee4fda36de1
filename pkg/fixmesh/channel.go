package fixmesh

import "github.com/Faultbox/meshc/pkg/formats"

// Channel is the auxiliary data that fills the U, V, W slots of a vertex
// record. It is one of NoChannel, UVChannel or NormalChannel.
type Channel interface {
	// Slots returns the quantized U, V, W components.
	Slots() [3]int32
	isChannel()
}

// NoChannel is used by vertices that carry neither texcoords nor normals.
type NoChannel struct{}

// UVChannel carries a texture coordinate. W is always zero.
type UVChannel struct {
	U, V float32
}

// NormalChannel carries a vertex normal.
type NormalChannel struct {
	X, Y, Z float32
}

func (NoChannel) isChannel()     {}
func (UVChannel) isChannel()     {}
func (NormalChannel) isChannel() {}

// Slots returns (0, 0, 0).
func (NoChannel) Slots() [3]int32 {
	return [3]int32{}
}

// Slots returns (q(u), q(v), 0).
func (c UVChannel) Slots() [3]int32 {
	return [3]int32{Quantize(c.U), Quantize(c.V), 0}
}

// Slots returns (q(x), q(y), q(z)).
func (c NormalChannel) Slots() [3]int32 {
	return [3]int32{Quantize(c.X), Quantize(c.Y), Quantize(c.Z)}
}

// Resolve picks the channel for a single vertex. A normal takes precedence:
// when both are present the texture coordinate is dropped for this vertex.
func Resolve(v formats.Vertex) Channel {
	switch {
	case v.Normal != nil:
		return NormalChannel{X: v.Normal.X, Y: v.Normal.Y, Z: v.Normal.Z}
	case v.UV != nil:
		return UVChannel{U: v.UV.X, V: v.UV.Y}
	default:
		return NoChannel{}
	}
}
