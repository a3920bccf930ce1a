package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/llir/llvm/ir"
)

// ObjectSink accepts a finished IR module and produces a native object file
// at the given path.
type ObjectSink interface {
	Emit(mod *ir.Module, outputPath string) error
}

// LLCSink emits object files by writing the module as textual IR and
// invoking the LLVM static compiler for the host triple.
type LLCSink struct {
	// Tool is the emitter binary to invoke, `llc` by default.
	Tool string

	CPU        string
	Features   string
	RelocModel string
}

// NewLLCSink creates the default object sink from the build configuration.
func NewLLCSink(config *BuildConfig) *LLCSink {
	return &LLCSink{
		Tool:       config.Emitter,
		CPU:        config.CPU,
		Features:   config.Features,
		RelocModel: config.RelocModel,
	}
}

// Emit writes the module to a temporary `.ll` file and compiles it to an
// object file for the host with the configured relocation model
// (position-independent by default).
func (s *LLCSink) Emit(mod *ir.Module, outputPath string) error {
	tmpFile, err := os.CreateTemp("", "axenc-*.ll")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(mod.String()); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	args := []string{
		"-filetype=obj",
		"-relocation-model=" + s.RelocModel,
		"-mcpu=" + s.CPU,
	}
	if s.Features != "" {
		args = append(args, "-mattr="+s.Features)
	}
	args = append(args, "-o", outputPath, tmpPath)

	emitCommand := exec.Command(s.Tool, args...)
	out, err := emitCommand.CombinedOutput()
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return errors.New(string(out))
		}

		return fmt.Errorf("failed to run '%s': %w", s.Tool, err)
	}

	return nil
}
