// Package csource writes converted data as C source literals.
package csource

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrEmptyName is returned when a path yields no usable identifier.
var ErrEmptyName = errors.New("cannot derive a C identifier from an empty name")

// BaseName strips directory components from path and returns the text
// before the first '.', so "models/ship.lod0.obj" gives "ship".
// Dots in directory names are ignored. A dotfile such as ".obj" gives "".
func BaseName(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	name, _, _ := strings.Cut(base, ".")
	return name
}

// Identifier returns BaseName(path) as a valid C identifier. Bytes outside
// [A-Za-z0-9_] become '_' and a leading digit gets an '_' prefix.
func Identifier(path string) (string, error) {
	name := BaseName(path)
	if name == "" {
		return "", ErrEmptyName
	}

	var b strings.Builder
	b.Grow(len(name) + 1)
	if name[0] >= '0' && name[0] <= '9' {
		b.WriteByte('_')
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isIdentByte(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String(), nil
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
