package generate

import (
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/arsoniv/axenc/ast"
)

// genLValue lowers an addressable expression to a pointer to its storage.
func (g *Generator) genLValue(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.VarRef:
		slot := g.lookupLocal(v.Name)
		if slot == nil {
			g.raiseCodegenError("Undefined variable '%s'", v.Name)
		}

		return slot

	case *ast.Dref:
		// the pointer value itself is the storage address
		ptr := g.genExpr(v.Target)
		if _, ok := ptr.Type().(*lltypes.PointerType); !ok {
			g.raiseCodegenError("Cannot dereference non-pointer type")
		}

		return ptr

	case *ast.StructAccess:
		structPtr := g.genLValue(v.Target)

		st, ok := g.structs[v.Class]
		if !ok {
			g.raiseCodegenError("Unknown class '%s'", v.Class)
		}

		memberIndex := v.ClassType.Decl.MemberIndex(v.Member)
		if memberIndex < 0 {
			g.raiseCodegenError("Could not find index of member '%s' in class '%s'", v.Member, v.Class)
		}

		zero := constant.NewInt(lltypes.I32, 0)
		return g.block.NewGetElementPtr(st, structPtr, zero, constant.NewInt(lltypes.I32, int64(memberIndex)))

	case *ast.ArrayAccess:
		arrayPtr := g.genLValue(v.Target)

		indexVal := g.genExpr(v.Index)
		if !isIntegerValue(indexVal) {
			g.raiseCodegenError("Array index must be an integer type")
		}

		arrayType, ok := g.convType(v.ArrType).(*lltypes.ArrayType)
		if !ok {
			g.raiseCodegenError("Expected array type but got different type")
		}

		zero := constant.NewInt(lltypes.I32, 0)
		return g.block.NewGetElementPtr(arrayType, arrayPtr, zero, indexVal)

	case *ast.PtrIndexAccess:
		// the pointer value is the base of the subscript
		ptrVal := g.genExpr(v.Target)
		if _, ok := ptrVal.Type().(*lltypes.PointerType); !ok {
			g.raiseCodegenError("Cannot index into non-pointer type")
		}

		indexVal := g.genExpr(v.Index)
		if !isIntegerValue(indexVal) {
			g.raiseCodegenError("Pointer index must be an integer type")
		}

		return g.block.NewGetElementPtr(g.convType(v.PtrType.Target), ptrVal, indexVal)
	}

	g.raiseCodegenError("Lvalue generation not supported on this expression")
	return nil // unreachable
}
