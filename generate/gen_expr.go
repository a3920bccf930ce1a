package generate

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/arsoniv/axenc/ast"
)

// genExpr lowers an expression to its r-value.
func (g *Generator) genExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.IntLit:
		// integer literals are always 32-bit; conversion happens at the use
		// site
		return constant.NewInt(lltypes.I32, v.Value)

	case *ast.FloatLit:
		return constant.NewFloat(lltypes.Float, v.Value)

	case *ast.StringLit:
		return g.genStringLit(v)

	case *ast.VarRef:
		slot := g.lookupLocal(v.Name)
		if slot == nil {
			g.raiseCodegenError("Undefined variable '%s'", v.Name)
		}

		return g.block.NewLoad(slot.ElemType, slot)

	case *ast.Dref:
		ptr := g.genExpr(v.Target)
		if _, ok := ptr.Type().(*lltypes.PointerType); !ok {
			g.raiseCodegenError("Cannot dereference non-pointer type")
		}

		// the dereferenced AST type sizes the load
		return g.block.NewLoad(g.convType(v.DerivedType), ptr)

	case *ast.AddressOf:
		return g.genLValue(v.Target)

	case *ast.StructAccess:
		fieldPtr := g.genLValue(v)

		memberType := v.ClassType.Decl.MemberType(v.Member)
		if memberType == nil {
			g.raiseCodegenError("Class '%s' has no member named '%s'", v.Class, v.Member)
		}

		return g.block.NewLoad(g.convType(memberType), fieldPtr)

	case *ast.ArrayAccess:
		elemPtr := g.genLValue(v)
		return g.block.NewLoad(g.convType(v.ArrType.Elem), elemPtr)

	case *ast.PtrIndexAccess:
		elemPtr := g.genLValue(v)
		return g.block.NewLoad(g.convType(v.PtrType.Target), elemPtr)

	case *ast.Call:
		return g.genCall(v)

	case *ast.BinOp:
		return g.genBinOp(v)
	}

	g.raiseCodegenError("Expression generation not supported for this node")
	return nil // unreachable
}

// genStringLit interns a string literal as a NUL-terminated global constant
// and yields a pointer to its first byte.
func (g *Generator) genStringLit(lit *ast.StringLit) value.Value {
	chars := constant.NewCharArrayFromString(lit.Value + "\x00")

	global := g.mod.NewGlobalDef(g.nextGlobalName(".str"), chars)
	global.Linkage = enum.LinkagePrivate
	global.Immutable = true

	zero := constant.NewInt(lltypes.I32, 0)
	return g.block.NewGetElementPtr(chars.Typ, global, zero, zero)
}

// genCall lowers a function call, checking arity against the callee.
func (g *Generator) genCall(call *ast.Call) value.Value {
	callee, ok := g.funcs[call.Name]
	if !ok {
		g.raiseCodegenError("Unknown function '%s'", call.Name)
	}

	if len(callee.Params) != len(call.Args) {
		g.raiseCodegenError("Function '%s' expects %d arguments, got %d",
			call.Name, len(callee.Params), len(call.Args))
	}

	args := make([]value.Value, len(call.Args))
	for i, arg := range call.Args {
		args[i] = g.genExpr(arg)
	}

	return g.block.NewCall(callee, args...)
}

// genBinOp lowers a binary operation.  The right-hand value is converted to
// the left-hand type first; pointer plus/minus integer becomes a GEP, and
// the remaining operations require integer operands.
func (g *Generator) genBinOp(binop *ast.BinOp) value.Value {
	lhs := g.genExpr(binop.Lhs)
	rhs := g.genExpr(binop.Rhs)

	rhs = g.convertIfNeeded(rhs, lhs.Type(), binop.IsSigned)

	switch binop.Op {
	case ast.OpAdd:
		if ptrType, ok := lhs.Type().(*lltypes.PointerType); ok {
			if !isIntegerValue(rhs) {
				g.raiseCodegenError("Cannot add non-integer to pointer")
			}
			return g.block.NewGetElementPtr(ptrType.ElemType, lhs, rhs)
		} else if ptrType, ok := rhs.Type().(*lltypes.PointerType); ok {
			if !isIntegerValue(lhs) {
				g.raiseCodegenError("Cannot add non-integer to pointer")
			}
			return g.block.NewGetElementPtr(ptrType.ElemType, rhs, lhs)
		}

		if !isIntegerValue(lhs) || !isIntegerValue(rhs) {
			g.raiseCodegenError("Addition requires integer operands")
		}
		return g.block.NewAdd(lhs, rhs)

	case ast.OpSub:
		if ptrType, ok := lhs.Type().(*lltypes.PointerType); ok {
			if !isIntegerValue(rhs) {
				g.raiseCodegenError("Cannot subtract non-integer from pointer")
			}

			neg := g.block.NewSub(constant.NewInt(rhs.Type().(*lltypes.IntType), 0), rhs)
			return g.block.NewGetElementPtr(ptrType.ElemType, lhs, neg)
		}

		if !isIntegerValue(lhs) || !isIntegerValue(rhs) {
			g.raiseCodegenError("Subtraction requires integer operands")
		}
		return g.block.NewSub(lhs, rhs)

	case ast.OpMul:
		if !isIntegerValue(lhs) || !isIntegerValue(rhs) {
			g.raiseCodegenError("Multiplication requires integer operands")
		}
		return g.block.NewMul(lhs, rhs)

	case ast.OpDiv:
		if !isIntegerValue(lhs) || !isIntegerValue(rhs) {
			g.raiseCodegenError("Division requires integer operands")
		}
		return g.block.NewUDiv(lhs, rhs)

	case ast.OpLess:
		if !isIntegerValue(lhs) || !isIntegerValue(rhs) {
			g.raiseCodegenError("Comparison requires integer operands")
		}
		return g.block.NewICmp(enum.IPredULT, lhs, rhs)

	case ast.OpGreater:
		if !isIntegerValue(lhs) || !isIntegerValue(rhs) {
			g.raiseCodegenError("Comparison requires integer operands")
		}
		return g.block.NewICmp(enum.IPredUGT, lhs, rhs)

	case ast.OpEqual:
		if !isIntegerValue(lhs) || !isIntegerValue(rhs) {
			g.raiseCodegenError("Equality comparison requires integer operands")
		}
		return g.block.NewICmp(enum.IPredEQ, lhs, rhs)
	}

	g.raiseCodegenError("Unexpected binary operation type")
	return nil // unreachable
}

// convertIfNeeded converts an integer value to the target integer type if
// the widths differ, extending by the signedness of the source expression.
// Non-integer or already matching values pass through unchanged.
func (g *Generator) convertIfNeeded(val value.Value, targetType lltypes.Type, signed bool) value.Value {
	if val.Type().Equal(targetType) {
		return val
	}

	valInt, ok1 := val.Type().(*lltypes.IntType)
	targetInt, ok2 := targetType.(*lltypes.IntType)
	if !ok1 || !ok2 {
		return val
	}

	if valInt.BitSize < targetInt.BitSize {
		if signed {
			return g.block.NewSExt(val, targetType)
		}
		return g.block.NewZExt(val, targetType)
	} else if valInt.BitSize > targetInt.BitSize {
		return g.block.NewTrunc(val, targetType)
	}

	return val
}
