// Package cmd is the top-level driver package for the Axen compiler: it
// parses command-line arguments, loads the optional build configuration,
// and runs the front-end and IR generation phases before handing the
// finished module to the object sink.
package cmd

import (
	"os"

	"github.com/ComedicChimera/olive"

	"github.com/arsoniv/axenc/report"
)

// Execute runs the main `axenc` application.
func Execute() {
	cli := olive.NewCLI("axenc", "axenc compiles Axen source files to LLVM IR and native objects", true)
	cli.AddStringArg("file", "f", "the root source file to compile", true)
	cli.AddStringArg("output", "o", "the path of the native object file to emit", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(1)
	}

	srcFile, _ := result.Arguments["file"].(string)
	outputFile := ""
	if outArgVal, ok := result.Arguments["output"]; ok {
		outputFile = outArgVal.(string)
	}

	c := NewCompiler(srcFile, outputFile)
	c.Compile()
}
