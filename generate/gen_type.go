package generate

import (
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/arsoniv/axenc/typing"
)

// convType converts a type descriptor to its LLVM type.
func (g *Generator) convType(typ typing.Type) lltypes.Type {
	switch v := typ.(type) {
	case *typing.PrimType:
		return g.convPrimType(v)
	case *typing.PointerType:
		return lltypes.NewPointer(g.convType(v.Target))
	case *typing.ArrayType:
		return lltypes.NewArray(uint64(v.Len), g.convType(v.Elem))
	case *typing.ClassRef:
		return g.genClass(v.Decl)
	}

	g.raiseCodegenError("Could not convert type, how did we get here?")
	return nil // unreachable
}

// convPrimType converts a primitive type descriptor to its LLVM type.
func (g *Generator) convPrimType(pt *typing.PrimType) lltypes.Type {
	switch pt.Kind {
	case typing.PrimVoid:
		return lltypes.Void
	case typing.PrimBool:
		return lltypes.I1
	case typing.PrimChar:
		return lltypes.I8
	case typing.PrimShort:
		return lltypes.I16
	case typing.PrimInt:
		return lltypes.I32
	case typing.PrimLong:
		return lltypes.I64
	case typing.PrimHalf:
		return lltypes.Half
	case typing.PrimFloat:
		return lltypes.Float
	case typing.PrimDouble:
		return lltypes.Double
	case typing.PrimQuad:
		return lltypes.FP128
	}

	g.raiseCodegenError("Could not convert primitive type, how did we get here?")
	return nil // unreachable
}

// genClass lowers a class declaration to a named struct type.  The empty
// struct is registered before its body is set so member types that refer
// back to the class resolve to the same handle.
func (g *Generator) genClass(decl *typing.ClassDecl) *lltypes.StructType {
	if st, ok := g.structs[decl.Name()]; ok {
		return st
	}

	st := lltypes.NewStruct()
	g.mod.NewTypeDef(decl.Name(), st)
	g.structs[decl.Name()] = st

	for _, member := range decl.Members() {
		st.Fields = append(st.Fields, g.convType(member.Type))
	}

	return st
}
