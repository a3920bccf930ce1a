package generate

import (
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/arsoniv/axenc/ast"
)

// genStmt emits a single statement into the current insertion block.
func (g *Generator) genStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		g.genVarDecl(v)
	case *ast.Assign:
		g.genAssign(v)
	case *ast.Return:
		g.genReturn(v)
	case *ast.If:
		g.genIf(v)
	case *ast.While:
		g.genWhile(v)
	case *ast.ExprStmt:
		g.genExpr(v.X)
	default:
		g.raiseCodegenError("Statement generation not supported for this node")
	}
}

// genVarDecl allocates a stack slot for a local variable and stores its
// initial value if one is present.
func (g *Generator) genVarDecl(decl *ast.VarDecl) {
	typ := g.convType(decl.Type)

	slot := g.block.NewAlloca(typ)
	slot.SetName(decl.Name)

	if decl.Init != nil {
		initVal := g.genExpr(decl.Init)
		converted := g.convertIfNeeded(initVal, typ, decl.Init.Signed())

		if !converted.Type().Equal(typ) {
			g.raiseCodegenError("Cannot initialize variable '%s' with incompatible type", decl.Name)
		}

		g.block.NewStore(converted, slot)
	}

	g.defineLocal(decl.Name, slot)
}

// genAssign stores a value through an l-value target.  The target's pointee
// type sizes the conversion of the stored value.
func (g *Generator) genAssign(assign *ast.Assign) {
	ptr := g.genLValue(assign.Target)
	val := g.genExpr(assign.Value)

	var targetType lltypes.Type
	if ptrType, ok := ptr.Type().(*lltypes.PointerType); ok {
		targetType = ptrType.ElemType
	} else {
		targetType = val.Type()
	}

	converted := g.convertIfNeeded(val, targetType, assign.Value.Signed())
	g.block.NewStore(converted, ptr)
}

// genReturn emits a return, converting the value to the function's return
// type.  A bare `return;` from a non-void function is fatal.
func (g *Generator) genReturn(ret *ast.Return) {
	returnType := g.enclosingFunc.Sig.RetType

	if ret.Value == nil {
		if !returnType.Equal(lltypes.Void) {
			g.raiseCodegenError("Non-void function must return a value")
		}

		g.block.NewRet(nil)
		return
	}

	val := g.genExpr(ret.Value)
	converted := g.convertIfNeeded(val, returnType, ret.Value.Signed())

	if !converted.Type().Equal(returnType) {
		g.raiseCodegenError("Return value type does not match function return type")
	}

	g.block.NewRet(converted)
}

// genIf lowers an if statement with an optional else arm.
func (g *Generator) genIf(ifStmt *ast.If) {
	thenBlock := g.appendBlock("then")

	condVal := g.genExpr(ifStmt.Cond)
	if !isIntegerValue(condVal) {
		g.raiseCodegenError("If statement condition must be integer type")
	}

	if ifStmt.Else != nil {
		elseBlk := g.appendBlock("else")
		mergeBlk := g.appendBlock("ifcont")

		g.block.NewCondBr(condVal, thenBlock, elseBlk)

		g.block = thenBlock
		g.genStmts(ifStmt.Then)
		if g.block.Term == nil {
			g.block.NewBr(mergeBlk)
		}

		g.block = elseBlk
		g.genStmts(ifStmt.Else)
		if g.block.Term == nil {
			g.block.NewBr(mergeBlk)
		}

		g.block = mergeBlk
		return
	}

	mergeBlk := g.appendBlock("ifcont")

	g.block.NewCondBr(condVal, thenBlock, mergeBlk)

	g.block = thenBlock
	g.genStmts(ifStmt.Then)
	if g.block.Term == nil {
		g.block.NewBr(mergeBlk)
	}

	g.block = mergeBlk
}

// genWhile lowers a pre-tested loop.
func (g *Generator) genWhile(whileStmt *ast.While) {
	condBlock := g.appendBlock("cond")
	bodyBlock := g.appendBlock("body")
	exitBlock := g.appendBlock("exit")

	g.block.NewBr(condBlock)

	g.block = condBlock
	condVal := g.genExpr(whileStmt.Cond)
	if !isIntegerValue(condVal) {
		g.raiseCodegenError("While statement condition must be integer type")
	}
	g.block.NewCondBr(condVal, bodyBlock, exitBlock)

	g.block = bodyBlock
	g.genStmts(whileStmt.Body)
	if g.block.Term == nil {
		g.block.NewBr(condBlock)
	}

	g.block = exitBlock
}

// isIntegerValue reports whether a value has LLVM integer type.
func isIntegerValue(v value.Value) bool {
	_, ok := v.Type().(*lltypes.IntType)
	return ok
}
