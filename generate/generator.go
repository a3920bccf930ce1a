// Package generate converts the typed Axen AST into an LLVM IR module using
// llir/llvm.  Classes are lowered to named struct types first, then
// functions are lowered in declaration order.  Generation is assumed to
// always succeed: any error raised here is fatal.
package generate

import (
	"fmt"
	"strconv"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/arsoniv/axenc/ast"
	"github.com/arsoniv/axenc/report"
	"github.com/arsoniv/axenc/typing"
)

// Generator is responsible for converting the typed AST into LLVM IR.  It
// converts a whole program into a single LLVM module.
type Generator struct {
	// mod is the LLVM module being generated.
	mod *ir.Module

	// enclosingFunc is the function enclosing the block being generated.
	enclosingFunc *ir.Func

	// block stores the current insertion block.
	block *ir.Block

	// funcs maps mangled function names to their declarations.
	funcs map[string]*ir.Func

	// structs maps class names to their named LLVM struct types.  A class is
	// registered before its body is set so recursive references resolve to
	// the same type handle.
	structs map[string]*lltypes.StructType

	// localScopes is the stack of local scopes mapping variable names to
	// their stack slots.
	localScopes []map[string]*ir.InstAlloca

	// blockNames tracks label usage in the current function so repeated
	// labels receive a numeric suffix.
	blockNames map[string]int

	// globalCounter numbers anonymous globals such as interned strings.
	globalCounter int
}

// NewGenerator creates a new generator with an empty module.
func NewGenerator() *Generator {
	return &Generator{
		mod:     ir.NewModule(),
		funcs:   make(map[string]*ir.Func),
		structs: make(map[string]*lltypes.StructType),
	}
}

// Generate lowers the parsed classes and functions, in declaration order,
// into a finished LLVM module.
func Generate(classes []*typing.ClassDecl, funcs []*ast.Function) *ir.Module {
	g := NewGenerator()

	for _, decl := range classes {
		g.genClass(decl)
	}

	for _, fn := range funcs {
		g.genFunc(fn)
	}

	return g.mod
}

// -----------------------------------------------------------------------------

// pushScope pushes a new local scope onto the scope stack.
func (g *Generator) pushScope() {
	g.localScopes = append(g.localScopes, make(map[string]*ir.InstAlloca))
}

// popScope pops a local scope off of the scope stack.
func (g *Generator) popScope() {
	g.localScopes = g.localScopes[:len(g.localScopes)-1]
}

// defineLocal binds a variable name to its stack slot.
func (g *Generator) defineLocal(name string, slot *ir.InstAlloca) {
	g.localScopes[len(g.localScopes)-1][name] = slot
}

// lookupLocal looks up the stack slot of a variable, walking scopes from the
// innermost outward.  It returns nil if the variable is not defined.
func (g *Generator) lookupLocal(name string) *ir.InstAlloca {
	for i := len(g.localScopes) - 1; i >= 0; i-- {
		if slot, ok := g.localScopes[i][name]; ok {
			return slot
		}
	}

	return nil
}

// appendBlock adds a basic block with the given label to the current
// function.  Repeated labels get a numeric suffix so the emitted IR stays
// well formed.
func (g *Generator) appendBlock(label string) *ir.Block {
	if n, ok := g.blockNames[label]; ok {
		g.blockNames[label] = n + 1
		label += strconv.Itoa(n)
	} else {
		g.blockNames[label] = 1
	}

	return g.enclosingFunc.NewBlock(label)
}

// nextGlobalName produces the name for the next anonymous global.
func (g *Generator) nextGlobalName(prefix string) string {
	name := fmt.Sprintf("%s.%d", prefix, g.globalCounter)
	g.globalCounter++
	return name
}

func (g *Generator) raiseCodegenError(msg string, args ...interface{}) {
	report.Raise(report.KindCodegen, nil, msg, args...)
}
