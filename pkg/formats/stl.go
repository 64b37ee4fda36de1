// STL parser for binary and ASCII stereolithography files.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	stdmath "math"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/meshc/pkg/math"
)

// STL format errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrSTLSyntax        = errors.New("invalid ASCII STL syntax")
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 4*3*4 + 2 // normal + 3 vertices + attribute byte count
)

// ParseSTL parses binary or ASCII STL data.
//
// STL stores one normal per facet; it is attached to all three corners.
// Facets written with a zero normal get the normalized cross product of
// their edges instead, following the counter-clockwise winding rule.
// STL carries no texture coordinates.
func ParseSTL(data []byte) (*Mesh, error) {
	if isBinarySTL(data) {
		return parseBinarySTL(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCIISTL(data)
	}
	return parseBinarySTL(data)
}

// ParseSTLFile parses an STL file from disk.
func ParseSTLFile(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	return ParseSTL(data)
}

// isBinarySTL reports whether the facet count in the header matches the
// data length exactly. Some exporters start binary headers with "solid",
// so the prefix alone is not enough.
func isBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize+4 {
		return false
	}
	n := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	return uint64(len(data)) == stlHeaderSize+4+uint64(n)*stlFacetSize
}

func parseBinarySTL(data []byte) (*Mesh, error) {
	if len(data) < stlHeaderSize+4 {
		return nil, fmt.Errorf("%w: header", ErrTruncatedSTLData)
	}

	// The 80-byte header is free-form, so it is not used as a name.
	mesh := &Mesh{}

	n := int(binary.LittleEndian.Uint32(data[stlHeaderSize:]))
	body := data[stlHeaderSize+4:]
	if len(body) < n*stlFacetSize {
		return nil, fmt.Errorf("%w: header declares %d facets, data holds %d", ErrTruncatedSTLData, n, len(body)/stlFacetSize)
	}

	readVec := func(b []byte) math.Vec3 {
		return math.Vec3{
			X: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			Y: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			Z: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
		}
	}

	mesh.Triangles = make([]Triangle, 0, n)
	for i := 0; i < n; i++ {
		facet := body[i*stlFacetSize:]
		normal := readVec(facet[0:])
		var corners [3]math.Vec3
		for v := range corners {
			corners[v] = readVec(facet[12+12*v:])
		}
		mesh.Triangles = append(mesh.Triangles, stlTriangle(normal, corners))
	}

	return mesh, nil
}

func parseASCIISTL(data []byte) (*Mesh, error) {
	mesh := &Mesh{}
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var (
		normal  math.Vec3
		corners []math.Vec3
		inFacet bool
		line    int
	)

	parseVec := func(args []string) (math.Vec3, error) {
		if len(args) < 3 {
			return math.Vec3{}, fmt.Errorf("%w: line %d: expected 3 values", ErrSTLSyntax, line)
		}
		var f [3]float32
		for i := range f {
			v, err := strconv.ParseFloat(args[i], 32)
			if err != nil {
				return math.Vec3{}, fmt.Errorf("%w: line %d: bad number %q", ErrSTLSyntax, line, args[i])
			}
			f[i] = float32(v)
		}
		return math.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
	}

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if mesh.Name == "" && len(fields) > 1 {
				mesh.Name = strings.Join(fields[1:], " ")
			}
		case "facet":
			if inFacet {
				return nil, fmt.Errorf("%w: line %d: nested facet", ErrSTLSyntax, line)
			}
			inFacet = true
			corners = corners[:0]
			normal = math.Vec3{}
			if len(fields) > 1 && fields[1] == "normal" {
				n, err := parseVec(fields[2:])
				if err != nil {
					return nil, err
				}
				normal = n
			}
		case "vertex":
			if !inFacet {
				return nil, fmt.Errorf("%w: line %d: vertex outside facet", ErrSTLSyntax, line)
			}
			v, err := parseVec(fields[1:])
			if err != nil {
				return nil, err
			}
			corners = append(corners, v)
		case "endfacet":
			if !inFacet || len(corners) != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices, want 3", ErrSTLSyntax, line, len(corners))
			}
			inFacet = false
			mesh.Triangles = append(mesh.Triangles, stlTriangle(normal, [3]math.Vec3{corners[0], corners[1], corners[2]}))
		}
		// outer loop, endloop and endsolid are structural only.
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading STL data: %w", err)
	}
	if inFacet {
		return nil, fmt.Errorf("%w: unterminated facet", ErrTruncatedSTLData)
	}

	return mesh, nil
}

func stlTriangle(normal math.Vec3, corners [3]math.Vec3) Triangle {
	if normal.IsZero() {
		normal = corners[1].Sub(corners[0]).Cross(corners[2].Sub(corners[0])).Normalize()
	}

	var tri Triangle
	for i, c := range corners {
		tri[i] = Vertex{
			Position: c,
			Normal:   vec3Ptr(normal.X, normal.Y, normal.Z),
		}
	}
	return tri
}
