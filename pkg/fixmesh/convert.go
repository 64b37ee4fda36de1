package fixmesh

import (
	"iter"

	"github.com/Faultbox/meshc/pkg/formats"
)

// QuantizedVertex is one emitted record: X, Y, Z, U, V, W.
type QuantizedVertex [6]int32

// QuantizeVertex builds the record for a single vertex.
func QuantizeVertex(v formats.Vertex) QuantizedVertex {
	slots := Resolve(v).Slots()
	return QuantizedVertex{
		Quantize(v.Position.X),
		Quantize(v.Position.Y),
		Quantize(v.Position.Z),
		slots[0],
		slots[1],
		slots[2],
	}
}

// Summary is the metadata accumulated over a conversion pass.
//
// HasTexCoords and HasNormals are sticky: once a vertex anywhere in the mesh
// supplies the attribute they stay true, whether or not that vertex's
// output used it.
type Summary struct {
	Triangles    int
	HasTexCoords bool
	HasNormals   bool
}

// Observe returns s with the flags updated for one vertex.
func (s Summary) Observe(v formats.Vertex) Summary {
	s.HasTexCoords = s.HasTexCoords || v.UV != nil
	s.HasNormals = s.HasNormals || v.Normal != nil
	return s
}

// Step returns s after consuming one triangle.
func (s Summary) Step(tri formats.Triangle) Summary {
	for _, v := range tri {
		s = s.Observe(v)
	}
	s.Triangles++
	return s
}

// Result is the output of a conversion pass.
type Result struct {
	Vertices []QuantizedVertex
	Summary
}

// Convert walks the triangles once, in order, and returns three records per
// triangle plus the accumulated summary. An empty sequence yields an empty
// result with both flags false.
func Convert(triangles iter.Seq[formats.Triangle]) Result {
	var res Result
	for tri := range triangles {
		for _, v := range tri {
			res.Vertices = append(res.Vertices, QuantizeVertex(v))
		}
		res.Summary = res.Summary.Step(tri)
	}
	return res
}
