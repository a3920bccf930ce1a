package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arsoniv/axenc/generate"
	"github.com/arsoniv/axenc/report"
	"github.com/arsoniv/axenc/syntax"
)

// Compiler represents the overall state and configuration of a compilation.
type Compiler struct {
	// srcPath is the path to the root source file.
	srcPath string

	// outputPath is the path of the native object file to emit.  Empty
	// means the module is printed as textual IR to standard output.
	outputPath string

	// config is the build configuration loaded from `axenc.toml`, if any.
	config *BuildConfig

	// sink receives the finished module when an object file is requested.
	sink ObjectSink
}

// NewCompiler creates a compiler for the given root source file.
func NewCompiler(srcPath, outputPath string) *Compiler {
	config, err := LoadConfig(filepath.Dir(srcPath))
	if err != nil {
		report.PrintErrorMessage("Config Error", err)
		os.Exit(1)
	}

	if outputPath == "" {
		outputPath = config.Output
	}

	return &Compiler{
		srcPath:    srcPath,
		outputPath: outputPath,
		config:     config,
		sink:       NewLLCSink(config),
	}
}

// Compile runs the whole compilation pipeline.  Any diagnostic raised along
// the way terminates the process with a non-zero status.
func (c *Compiler) Compile() {
	defer report.Catch()

	source, err := os.ReadFile(c.srcPath)
	if err != nil {
		report.Raise(report.KindSyntax, nil, "Could not open file: '%s'", c.srcPath)
	}

	p := syntax.NewParser(string(source), c.srcPath, loadSourceFile)
	p.Parse()

	mod := generate.Generate(p.Classes(), p.Functions())

	if c.outputPath == "" {
		fmt.Print(mod.String())
		return
	}

	if err := c.sink.Emit(mod, c.outputPath); err != nil {
		report.RaiseStdError(report.KindCodegen, err)
	}
}

// loadSourceFile supplies source text for an imported path.
func loadSourceFile(path string) (string, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(buff), nil
}
