// Wavefront OBJ parser.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/meshc/pkg/math"
)

// OBJ format errors.
var (
	ErrOBJSyntax          = errors.New("invalid OBJ syntax")
	ErrOBJIndexOutOfRange = errors.New("OBJ index out of range")
)

// objRef is one "v/vt/vn" corner reference, resolved to 0-based indices.
// -1 means the component was omitted.
type objRef struct {
	pos, uv, normal int
}

type objParser struct {
	positions []math.Vec3
	uvs       []math.Vec2
	normals   []math.Vec3
	mesh      *Mesh
	line      int
}

// ParseOBJ parses Wavefront OBJ text. Polygons with more than three corners
// are fan-triangulated around their first corner. Materials, groups and
// smoothing statements are ignored.
func ParseOBJ(data []byte) (*Mesh, error) {
	p := &objParser{mesh: &Mesh{}}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var pending strings.Builder
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		// A comment runs to the end of its physical line, so a backslash
		// inside it does not continue the statement.
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		// Line continuation: errors report the first physical line.
		if pending.Len() == 0 {
			p.line = lineNo
		}
		if trimmed := strings.TrimRight(text, " \t"); strings.HasSuffix(trimmed, "\\") {
			pending.WriteString(strings.TrimSuffix(trimmed, "\\"))
			pending.WriteByte(' ')
			continue
		}
		if pending.Len() > 0 {
			pending.WriteString(text)
			text = pending.String()
			pending.Reset()
		}

		if err := p.parseLine(text); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}
	if pending.Len() > 0 {
		if err := p.parseLine(pending.String()); err != nil {
			return nil, err
		}
	}

	return p.mesh, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

func (p *objParser) parseLine(text string) error {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	args := fields[1:]
	switch fields[0] {
	case "v":
		f, err := p.floats(args, 3, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, math.Vec3{X: f[0], Y: f[1], Z: f[2]})
	case "vt":
		f, err := p.floats(args, 1, 2)
		if err != nil {
			return err
		}
		p.uvs = append(p.uvs, math.Vec2{X: f[0], Y: f[1]})
	case "vn":
		f, err := p.floats(args, 3, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, math.Vec3{X: f[0], Y: f[1], Z: f[2]})
	case "f":
		return p.parseFace(args)
	case "o":
		if p.mesh.Name == "" && len(args) > 0 {
			p.mesh.Name = strings.Join(args, " ")
		}
	}
	// g, s, usemtl, mtllib, l, p and friends carry nothing we export.
	return nil
}

// floats parses at least required values and keeps the first want of them.
// Missing trailing values (vt with only u) are zero.
func (p *objParser) floats(args []string, required, want int) ([]float32, error) {
	if len(args) < required {
		return nil, fmt.Errorf("%w: line %d: expected %d values, got %d", ErrOBJSyntax, p.line, required, len(args))
	}
	out := make([]float32, want)
	for i := 0; i < want && i < len(args); i++ {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad number %q", ErrOBJSyntax, p.line, args[i])
		}
		out[i] = float32(v)
	}
	return out, nil
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: line %d: face needs at least 3 vertices, got %d", ErrOBJSyntax, p.line, len(args))
	}

	corners := make([]Vertex, len(args))
	for i, arg := range args {
		ref, err := p.parseRef(arg)
		if err != nil {
			return err
		}
		corners[i] = p.vertex(ref)
	}

	// Fan triangulation: (0, i, i+1)
	for i := 1; i+1 < len(corners); i++ {
		p.mesh.Triangles = append(p.mesh.Triangles, Triangle{corners[0], corners[i], corners[i+1]})
	}
	return nil
}

func (p *objParser) parseRef(arg string) (objRef, error) {
	parts := strings.Split(arg, "/")
	if len(parts) > 3 {
		return objRef{}, fmt.Errorf("%w: line %d: bad vertex reference %q", ErrOBJSyntax, p.line, arg)
	}

	ref := objRef{pos: -1, uv: -1, normal: -1}
	var err error
	if ref.pos, err = p.index(parts[0], len(p.positions), "position"); err != nil {
		return objRef{}, err
	}
	if ref.pos < 0 {
		return objRef{}, fmt.Errorf("%w: line %d: vertex reference %q has no position", ErrOBJSyntax, p.line, arg)
	}
	if len(parts) > 1 {
		if ref.uv, err = p.index(parts[1], len(p.uvs), "texcoord"); err != nil {
			return objRef{}, err
		}
	}
	if len(parts) > 2 {
		if ref.normal, err = p.index(parts[2], len(p.normals), "normal"); err != nil {
			return objRef{}, err
		}
	}
	return ref, nil
}

// index resolves a 1-based or negative (relative) OBJ index against count
// elements. An empty field resolves to -1.
func (p *objParser) index(field string, count int, kind string) (int, error) {
	if field == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: bad %s index %q", ErrOBJSyntax, p.line, kind, field)
	}

	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: line %d: %s index %d (have %d)", ErrOBJIndexOutOfRange, p.line, kind, n, count)
	}
	return idx, nil
}

func (p *objParser) vertex(ref objRef) Vertex {
	v := Vertex{Position: p.positions[ref.pos]}
	if ref.uv >= 0 {
		uv := p.uvs[ref.uv]
		v.UV = vec2Ptr(uv.X, uv.Y)
	}
	if ref.normal >= 0 {
		n := p.normals[ref.normal]
		v.Normal = vec3Ptr(n.X, n.Y, n.Z)
	}
	return v
}
