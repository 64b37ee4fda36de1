// rawconv converts any file into a C source file holding its bytes as a
// uint8_t array, plus a uint16_t size constant.
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
	fmt.Println(`rawconv - binary file to C byte array converter

Usage:
  rawconv <file>

Output is written as <name>.c next to the input (or to output.dir from
meshc.yaml) and defines <name>_size and <name>_data.

Example:
  rawconv data.bin`)
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
	if err := logger.Init("rawconv", cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	output := convert.OutputPath(input, cfg.Output.Dir)
	rep, err := convert.Raw(input, convert.Options{
		OutputDir: cfg.Output.Dir,
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
