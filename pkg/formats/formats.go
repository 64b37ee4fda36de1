// Package formats provides parsers that turn mesh files into triangle lists.
package formats

// Note: Wavefront OBJ is implemented in obj.go
// Note: STL (binary and ASCII) is implemented in stl.go
// Note: glTF 2.0 (.gltf/.glb) is implemented in gltf.go
