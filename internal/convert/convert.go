// Package convert runs the file-to-C-source pipelines behind the CLIs.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/meshc/internal/logger"
	"github.com/Faultbox/meshc/pkg/csource"
	"github.com/Faultbox/meshc/pkg/fixmesh"
	"github.com/Faultbox/meshc/pkg/formats"
)

// Pipeline errors. The CLIs map these to their user-facing messages.
var (
	ErrInputNotFound = errors.New("input file not found")
	ErrCreateOutput  = errors.New("could not create output file")
	ErrWriteOutput   = errors.New("could not write output file")
	ErrSameFile      = errors.New("output would overwrite input")
)

// Options controls where and how output is written.
type Options struct {
	OutputDir string // empty: next to the input
	Overflow  fixmesh.Overflow

	// OnInput, if set, is called once the input has been checked and sized,
	// before it is parsed or any output is written. It runs even when the
	// conversion later fails.
	OnInput func(Report)
}

// Report describes a finished conversion.
type Report struct {
	Input     string
	Output    string
	InputSize int64
	Summary   fixmesh.Summary // zero for raw conversions
}

// OutputPath returns the .c path for input: the base name before the first
// dot, placed in outputDir or, when that is empty, next to the input.
func OutputPath(input, outputDir string) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, csource.BaseName(input)+".c")
}

// Model converts a mesh file into a C source file holding the fixed-point
// vertex array and its metadata.
func Model(input string, opts Options) (*Report, error) {
	rep, name, err := prepare(input, opts)
	if err != nil {
		return nil, err
	}
	opts.started(rep)

	mesh, err := formats.Load(input)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", input, err)
	}
	logger.Debug("mesh loaded",
		zap.String("input", input),
		zap.String("mesh", mesh.Name),
		zap.Int("triangles", mesh.TriangleCount()))

	res := fixmesh.Convert(mesh.All())
	rep.Summary = res.Summary

	var buf bytes.Buffer
	if err := csource.WriteModel(&buf, name, res, opts.Overflow); err != nil {
		return nil, fmt.Errorf("emitting %s: %w", name, err)
	}

	if err := writeOutput(rep.Output, buf.Bytes()); err != nil {
		return nil, err
	}

	logger.Info("model exported",
		zap.String("output", rep.Output),
		zap.String("symbol", name+csource.ModelSuffix),
		zap.Int("triangles", res.Triangles),
		zap.Bool("has_texcoords", res.HasTexCoords),
		zap.Bool("has_normals", res.HasNormals),
		zap.Stringer("overflow", opts.Overflow))
	return rep, nil
}

// Raw converts any file into a C source file holding its bytes.
func Raw(input string, opts Options) (*Report, error) {
	rep, name, err := prepare(input, opts)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", input, err)
	}
	rep.InputSize = int64(len(data))
	opts.started(rep)

	if len(data) > 0xFFFF {
		logger.Warn("file size overflows the uint16_t size constant",
			zap.String("input", input),
			zap.Int("size", len(data)))
	}

	var buf bytes.Buffer
	if err := csource.WriteRaw(&buf, name, data); err != nil {
		return nil, fmt.Errorf("emitting %s: %w", name, err)
	}

	if err := writeOutput(rep.Output, buf.Bytes()); err != nil {
		return nil, err
	}

	logger.Info("raw data exported",
		zap.String("output", rep.Output),
		zap.String("symbol", name+csource.DataSuffix),
		zap.Int("bytes", len(data)))
	return rep, nil
}

func (o Options) started(rep *Report) {
	if o.OnInput != nil {
		o.OnInput(*rep)
	}
}

// prepare checks the input and derives the output path and symbol name.
func prepare(input string, opts Options) (*Report, string, error) {
	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrInputNotFound, input)
		}
		return nil, "", fmt.Errorf("reading %s: %w", input, err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("%w: %s is a directory", ErrInputNotFound, input)
	}

	name, err := csource.Identifier(input)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", input, err)
	}

	rep := &Report{
		Input:     input,
		Output:    OutputPath(input, opts.OutputDir),
		InputSize: info.Size(),
	}
	if same, _ := sameFile(rep.Input, rep.Output); same {
		return nil, "", fmt.Errorf("%w: %s", ErrSameFile, rep.Output)
	}

	logger.Debug("conversion prepared",
		zap.String("input", input),
		zap.Int64("size", rep.InputSize),
		zap.String("output", rep.Output),
		zap.String("name", name))
	return rep, name, nil
}

func sameFile(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCreateOutput, path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCreateOutput, path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}
