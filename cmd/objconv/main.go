// objconv converts a triangle mesh (.obj, .stl, .gltf, .glb) into a C source
// file of fixed-point vertex data for firmware renderers.
//
// Vertices are exported as 16-bit signed components scaled by 16383, so scale
// the model into roughly [-2, 2] before converting. Each vertex carries either
// its texture coordinate in U, V or its normal in U, V, W; normals take
// precedence.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/meshc/internal/config"
	"github.com/Faultbox/meshc/internal/convert"
	"github.com/Faultbox/meshc/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func printUsage() {
	fmt.Println(`objconv - mesh to fixed-point C array converter

Usage:
  objconv <mesh-file>

Supported inputs: .obj, .stl, .gltf, .glb
Output is written as <name>.c next to the input (or to output.dir from
meshc.yaml) and defines <name>_model, <name>_triangles,
<name>_has_texcoords and <name>_has_normals.

Example:
  objconv scene.obj`)
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 0
	}
	input := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := logger.Init("objconv", cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	policy, err := cfg.OverflowPolicy()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	output := convert.OutputPath(input, cfg.Output.Dir)
	rep, err := convert.Model(input, convert.Options{
		OutputDir: cfg.Output.Dir,
		Overflow:  policy,
		OnInput:   printParsing,
	})
	if err != nil {
		reportError(err, input, output)
		return 1
	}

	fmt.Printf("Exported as file %s\n", rep.Output)
	return 0
}

func printParsing(rep convert.Report) {
	fmt.Printf("Parsing file %s of size %d bytes\n", rep.Input, rep.InputSize)
}

func reportError(err error, input, output string) {
	switch {
	case errors.Is(err, convert.ErrInputNotFound):
		fmt.Printf("File %s not found!\n", input)
	case errors.Is(err, convert.ErrCreateOutput):
		fmt.Printf("Could not create %s!\n", output)
	case errors.Is(err, convert.ErrWriteOutput):
		fmt.Printf("Error writing to file %s\n", output)
	default:
		logger.Error("conversion failed", zap.Error(err))
		return
	}
	logger.Debug("conversion failed", zap.Error(err))
}
