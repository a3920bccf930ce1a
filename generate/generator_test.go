package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsoniv/axenc/report"
	"github.com/arsoniv/axenc/syntax"
)

// compileSource parses and lowers a source string, returning the textual IR
// of the resulting module.
func compileSource(t *testing.T, src string) string {
	t.Helper()

	p := syntax.NewParser(src, "", nil)
	p.Parse()
	return Generate(p.Classes(), p.Functions()).String()
}

// compileError parses and lowers a source string expected to raise a
// diagnostic, returning it.
func compileError(src string) (d *report.Diagnostic) {
	defer func() {
		if x := recover(); x != nil {
			var ok bool
			if d, ok = x.(*report.Diagnostic); !ok {
				panic(x)
			}
		}
	}()

	p := syntax.NewParser(src, "", nil)
	p.Parse()
	Generate(p.Classes(), p.Functions())
	return nil
}

func TestGenVoidLeaf(t *testing.T) {
	irText := compileSource(t, "void main() {}")

	assert.Contains(t, irText, "define void @main()")
	assert.Contains(t, irText, "ret void")
	assert.Equal(t, 1, strings.Count(irText, "ret void"))
}

func TestGenTypedLocalsWithWidening(t *testing.T) {
	irText := compileSource(t, `
int add(char a, int b) {
	int r = b + a;
	return r;
}
`)

	// the i8 argument is sign-extended to 32 bits before the add
	assert.Contains(t, irText, "sext i8")
	assert.Contains(t, irText, "add i32")
	assert.Contains(t, irText, "ret i32")

	// parameters are spilled to mutable stack slots
	assert.Contains(t, irText, "alloca i8")
	assert.Contains(t, irText, "alloca i32")
}

func TestGenNarrowingConversion(t *testing.T) {
	irText := compileSource(t, `
char narrow(int v) {
	char c = v;
	return c;
}
`)

	assert.Contains(t, irText, "trunc i32")
	assert.Contains(t, irText, "ret i8")
}

func TestGenUnsignedExtension(t *testing.T) {
	irText := compileSource(t, `
ulong widen(uchar v) {
	ulong u = v;
	return u;
}
`)

	assert.Contains(t, irText, "zext i8")
	assert.NotContains(t, irText, "sext")
}

func TestGenClassMethodAndMemberAccess(t *testing.T) {
	irText := compileSource(t, `
class Point {
	int x;
	int y;
	int sum() { return x + y; }
}
int main() {
	Point p;
	p.x = 3;
	p.y = 4;
	return p.sum();
}
`)

	assert.Contains(t, irText, "%Point = type { i32, i32 }")
	assert.Contains(t, irText, "@Point_sum")
	assert.Contains(t, irText, "%this")
	assert.Contains(t, irText, "getelementptr %Point")
	assert.Contains(t, irText, "call i32 @Point_sum")
	assert.Contains(t, irText, "alloca %Point")
}

func TestGenPointerIndexing(t *testing.T) {
	irText := compileSource(t, `
char get(ptr char s, int i) {
	return s[i];
}
`)

	assert.Contains(t, irText, "getelementptr i8")
	assert.Contains(t, irText, "load i8")
}

func TestGenArrayAccess(t *testing.T) {
	irText := compileSource(t, `
char first() {
	char[0x10] buf;
	return buf[0];
}
`)

	assert.Contains(t, irText, "alloca [16 x i8]")
	assert.Contains(t, irText, "getelementptr [16 x i8]")
	assert.Contains(t, irText, "load i8")
}

func TestGenControlFlow(t *testing.T) {
	irText := compileSource(t, `
int clamp(int x) {
	if (x < 0) {
		return 0;
	}
	return x;
}
`)

	assert.Contains(t, irText, "icmp ult i32")
	assert.Contains(t, irText, "br i1")
	assert.Contains(t, irText, "then:")
	assert.Contains(t, irText, "ifcont:")
	assert.Contains(t, irText, "ret i32 0")
}

func TestGenIfElse(t *testing.T) {
	irText := compileSource(t, `
int pick(int x) {
	if (x == 0) {
		return 1;
	} else {
		return 2;
	}
}
`)

	assert.Contains(t, irText, "icmp eq i32")
	assert.Contains(t, irText, "else:")
	assert.Contains(t, irText, "ret i32 1")
	assert.Contains(t, irText, "ret i32 2")
}

func TestGenWhileLoop(t *testing.T) {
	irText := compileSource(t, `
int count(int n) {
	int i = 0;
	while (i < n) {
		i = i + 1;
	}
	return i;
}
`)

	assert.Contains(t, irText, "cond:")
	assert.Contains(t, irText, "body:")
	assert.Contains(t, irText, "exit:")
	assert.Contains(t, irText, "br label %cond")
	assert.Contains(t, irText, "icmp ult i32")
}

// An always-false loop condition still emits a well-formed body block.
func TestGenWhileFalseCondition(t *testing.T) {
	irText := compileSource(t, `
void spin() {
	while (0 == 1) {
	}
}
`)

	assert.Contains(t, irText, "body:")
	assert.Contains(t, irText, "exit:")
	assert.Contains(t, irText, "ret void")
}

func TestGenStringLiteral(t *testing.T) {
	irText := compileSource(t, `
int puts(ptr char s);
int main() {
	puts("hi");
	return 0;
}
`)

	assert.Contains(t, irText, `c"hi\00"`)
	assert.Contains(t, irText, "private")
	assert.Contains(t, irText, "declare i32 @puts")
	assert.Contains(t, irText, "call i32 @puts")
}

func TestGenPointerArithmetic(t *testing.T) {
	irText := compileSource(t, `
ptr char advance(ptr char s, int n) {
	return s + n;
}
`)

	assert.Contains(t, irText, "getelementptr i8")
}

func TestGenUnsignedDivision(t *testing.T) {
	irText := compileSource(t, `
int half(int v) {
	return v / 2;
}
`)

	assert.Contains(t, irText, "udiv i32")
}

func TestGenClassReopenAcrossImport(t *testing.T) {
	files := map[string]string{
		"a.ax": `class C { int a; }`,
	}
	loader := func(path string) (string, error) {
		return files[path], nil
	}

	p := syntax.NewParser(`
import "a.ax";
class C { int b; }
int main() {
	C c;
	c.a = 1;
	c.b = 2;
	return 0;
}
`, "main.ax", loader)
	p.Parse()
	irText := Generate(p.Classes(), p.Functions()).String()

	assert.Contains(t, irText, "%C = type { i32, i32 }")
}

func TestGenDeeplyNestedControlTerminators(t *testing.T) {
	irText := compileSource(t, `
int f(int x) {
	if (x < 1) {
		if (x < 2) {
			return 1;
		}
		return 2;
	}
	while (x > 10) {
		return 3;
	}
	return 4;
}
`)

	// repeated labels are uniquified
	assert.Contains(t, irText, "then:")
	assert.Contains(t, irText, "then1:")
	assert.Contains(t, irText, "ifcont:")
	assert.Contains(t, irText, "ifcont1:")
}

// -----------------------------------------------------------------------------

func TestGenErrors(t *testing.T) {
	testDatas := []struct {
		name string
		src  string
	}{
		{
			name: "bare return from non-void function",
			src:  `int f() { return; }`,
		},
		{
			name: "float arithmetic is rejected",
			src:  `float f(float a, float b) { return a + b; }`,
		},
		{
			name: "float comparison is rejected",
			src:  `void f(float a) { if (a < 1.0) { } }`,
		},
		{
			name: "duplicate function names",
			src: `void f();
void f();`,
		},
	}

	for _, testData := range testDatas {
		d := compileError(testData.src)
		require.NotNil(t, d, "case: %s", testData.name)
		assert.Equal(t, report.KindCodegen, d.Kind, "case: %s", testData.name)
	}
}
