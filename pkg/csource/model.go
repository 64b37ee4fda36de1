package csource

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/meshc/pkg/fixmesh"
)

// Header is the preamble of every generated file.
const Header = "#include <stdint.h>\n\n"

// Symbol suffixes appended to the derived base name.
const (
	ModelSuffix        = "_model"
	TrianglesSuffix    = "_triangles"
	HasTexCoordsSuffix = "_has_texcoords"
	HasNormalsSuffix   = "_has_normals"
)

// WriteModel writes res as an int16_t array with one line per vertex,
// followed by the triangle count and the two attribute flags:
//
//	#include <stdint.h>
//
//	const int16_t cube_model[] = {
//	16383, 0, 0, 16383, 16383, 0,
//	...
//	};
//
//	const uint16_t cube_triangles = 12;
//	const bool cube_has_texcoords = true;
//	const bool cube_has_normals = false;
//
// The output has no trailing newline. Values outside the 16-bit range are
// handled according to policy; under OverflowStrict nothing is written when
// a value does not fit.
func WriteModel(w io.Writer, name string, res fixmesh.Result, policy fixmesh.Overflow) error {
	count, err := res.Count16(policy)
	if err != nil {
		return err
	}

	records := make([][6]int16, len(res.Vertices))
	for i, q := range res.Vertices {
		rec, err := q.Narrow(policy)
		if err != nil {
			return fmt.Errorf("triangle %d vertex %d: %w", i/3, i%3, err)
		}
		records[i] = rec
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(Header)
	fmt.Fprintf(bw, "const int16_t %s%s[] = {\n", name, ModelSuffix)
	for _, r := range records {
		fmt.Fprintf(bw, "%d, %d, %d, %d, %d, %d,\n", r[0], r[1], r[2], r[3], r[4], r[5])
	}
	bw.WriteString("};\n")

	fmt.Fprintf(bw, "\nconst uint16_t %s%s = %d;", name, TrianglesSuffix, count)
	fmt.Fprintf(bw, "\nconst bool %s%s = %t;", name, HasTexCoordsSuffix, res.HasTexCoords)
	fmt.Fprintf(bw, "\nconst bool %s%s = %t;", name, HasNormalsSuffix, res.HasNormals)

	return bw.Flush()
}
