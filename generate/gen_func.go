package generate

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"

	"github.com/arsoniv/axenc/ast"
)

// genFunc lowers a function declaration and, if present, its body.  Public
// functions receive external linkage, others internal.  Mangled method names
// share one namespace with detached functions, so a duplicate name is
// reported here rather than left for module verification.
func (g *Generator) genFunc(fn *ast.Function) {
	if _, ok := g.funcs[fn.Name]; ok {
		g.raiseCodegenError("Duplicate function name '%s'", fn.Name)
	}

	params := make([]*ir.Param, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = ir.NewParam(param.Name, g.convType(param.Type))
	}

	f := g.mod.NewFunc(fn.Name, g.convType(fn.ReturnType), params...)

	// external linkage is the module default and stays untagged
	if !fn.Public {
		f.Linkage = enum.LinkageInternal
	}

	g.funcs[fn.Name] = f

	// a bodyless function is an external declaration
	if !fn.HasBody {
		return
	}

	g.enclosingFunc = f
	g.blockNames = make(map[string]int)

	entry := g.appendBlock("entry")
	g.block = entry

	g.pushScope()
	defer g.popScope()

	// spill the parameters to stack slots at function entry so they are
	// mutable like any local; the slots stay unnamed since the parameter
	// owns the name
	for i, param := range params {
		slot := entry.NewAlloca(param.Typ)
		entry.NewStore(param, slot)
		g.defineLocal(fn.Params[i].Name, slot)
	}

	g.genStmts(fn.Body)

	// implicitly return void if the final block has no terminator
	if g.block.Term == nil {
		g.block.NewRet(nil)
	}
}

// genStmts emits a statement sequence, stopping once the current insertion
// block has been terminated.
func (g *Generator) genStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		g.genStmt(stmt)

		if g.block.Term != nil {
			break
		}
	}
}
