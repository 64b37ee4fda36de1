// glTF 2.0 reader built on github.com/qmuntal/gltf.
package formats

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshc/pkg/math"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// glTF errors.
var (
	ErrNoGLTFMesh      = errors.New("glTF document has no mesh")
	ErrMissingPosition = errors.New("glTF primitive has no POSITION attribute")
	ErrGLTFIndex       = errors.New("glTF index out of range")
)

// ParseGLTFFile reads a .gltf or .glb file and returns the triangles of its
// first mesh. Every triangle-list primitive of that mesh is concatenated in
// document order; point, line and strip primitives are skipped. Node
// transforms are not applied.
func ParseGLTFFile(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading glTF file: %w", err)
	}
	return ParseGLTF(doc)
}

// ParseGLTF converts the first mesh of a decoded document.
func ParseGLTF(doc *gltf.Document) (*Mesh, error) {
	if len(doc.Meshes) == 0 {
		return nil, ErrNoGLTFMesh
	}

	src := doc.Meshes[0]
	mesh := &Mesh{Name: src.Name}
	for i, prim := range src.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		if err := appendGLTFPrimitive(doc, prim, mesh); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
	}
	return mesh, nil
}

func appendGLTFPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return ErrMissingPosition
	}
	posAcr, err := accessor(doc, posIdx)
	if err != nil {
		return fmt.Errorf("POSITION: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, posAcr, nil)
	if err != nil {
		return fmt.Errorf("reading positions: %w", err)
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := accessor(doc, idx)
		if err != nil {
			return fmt.Errorf("TEXCOORD_0: %w", err)
		}
		if uvs, err = modeler.ReadTextureCoord(doc, acr, nil); err != nil {
			return fmt.Errorf("reading texcoords: %w", err)
		}
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		acr, err := accessor(doc, idx)
		if err != nil {
			return fmt.Errorf("NORMAL: %w", err)
		}
		if normals, err = modeler.ReadNormal(doc, acr, nil); err != nil {
			return fmt.Errorf("reading normals: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		acr, err := accessor(doc, *prim.Indices)
		if err != nil {
			return fmt.Errorf("indices: %w", err)
		}
		if indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	vertex := func(i uint32) (Vertex, error) {
		if int(i) >= len(positions) {
			return Vertex{}, fmt.Errorf("%w: %d (have %d vertices)", ErrGLTFIndex, i, len(positions))
		}
		p := positions[i]
		v := Vertex{Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]}}
		if int(i) < len(uvs) {
			v.UV = vec2Ptr(uvs[i][0], uvs[i][1])
		}
		if int(i) < len(normals) {
			v.Normal = vec3Ptr(normals[i][0], normals[i][1], normals[i][2])
		}
		return v, nil
	}

	// Trailing indices that do not form a full triangle are dropped.
	for i := 0; i+2 < len(indices); i += 3 {
		var tri Triangle
		for c := range tri {
			v, err := vertex(indices[i+c])
			if err != nil {
				return err
			}
			tri[c] = v
		}
		mesh.Triangles = append(mesh.Triangles, tri)
	}
	return nil
}

// accessor looks up an accessor by index. Documents written by broken
// exporters may reference accessors that do not exist.
func accessor(doc *gltf.Document, idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d (have %d)", ErrGLTFIndex, idx, len(doc.Accessors))
	}
	return doc.Accessors[idx], nil
}
