package formats

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"github.com/Faultbox/meshc/pkg/math"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Vertex is a single triangle corner. UV and Normal are nil when the source
// file does not supply them for this corner.
type Vertex struct {
	Position math.Vec3
	UV       *math.Vec2
	Normal   *math.Vec3
}

// Triangle holds three vertices in source winding order.
type Triangle [3]Vertex

// Mesh is a triangulated mesh.
type Mesh struct {
	Name      string
	Triangles []Triangle
}

// All returns an iterator over the mesh triangles in file order.
// It can be ranged over any number of times.
func (m *Mesh) All() iter.Seq[Triangle] {
	return func(yield func(Triangle) bool) {
		for _, tri := range m.Triangles {
			if !yield(tri) {
				return
			}
		}
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Load reads a mesh file, picking the parser from the file extension.
func Load(path string) (*Mesh, error) {
	var (
		mesh *Mesh
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		mesh, err = ParseOBJFile(path)
	case ".stl":
		mesh, err = ParseSTLFile(path)
	case ".gltf", ".glb":
		mesh, err = ParseGLTFFile(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	if mesh.Name == "" {
		mesh.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return mesh, nil
}

func vec2Ptr(x, y float32) *math.Vec2 {
	return &math.Vec2{X: x, Y: y}
}

func vec3Ptr(x, y, z float32) *math.Vec3 {
	return &math.Vec3{X: x, Y: y, Z: z}
}
