package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn and returns everything it wrote to standard output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.Nil(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	out, err := io.ReadAll(r)
	require.Nil(t, err)
	return string(out)
}

func TestCompileEmitsTextualIR(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "main.ax")
	require.Nil(t, os.WriteFile(srcPath, []byte("void main() {}"), 0644))

	out := captureStdout(t, func() {
		NewCompiler(srcPath, "").Compile()
	})

	assert.Contains(t, out, "define void @main()")
	assert.Contains(t, out, "ret void")
}

func TestCompileResolvesImportsFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "lib.ax"), []byte("class C { int a; }"), 0644))

	srcPath := filepath.Join(dir, "main.ax")
	require.Nil(t, os.WriteFile(srcPath, []byte(`
import "lib.ax";
int main() {
	C c;
	c.a = 1;
	return c.a;
}
`), 0644))

	out := captureStdout(t, func() {
		NewCompiler(srcPath, "").Compile()
	})

	assert.Contains(t, out, "%C = type { i32 }")
	assert.Contains(t, out, "define i32 @main()")
}

func TestNewCompilerUsesConfigOutput(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[build]\noutput = \"prog.o\"\n"), 0644))

	srcPath := filepath.Join(dir, "main.ax")
	require.Nil(t, os.WriteFile(srcPath, []byte("void main() {}"), 0644))

	c := NewCompiler(srcPath, "")
	assert.Equal(t, "prog.o", c.outputPath)

	// an explicit -o wins over the config file
	c = NewCompiler(srcPath, "other.o")
	assert.Equal(t, "other.o", c.outputPath)
}

func TestLLCSinkMissingTool(t *testing.T) {
	sink := &LLCSink{Tool: "axenc-no-such-emitter", CPU: "generic", RelocModel: "pic"}

	err := sink.Emit(ir.NewModule(), filepath.Join(t.TempDir(), "out.o"))
	assert.NotNil(t, err)
}
