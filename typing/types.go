// Package typing defines the type descriptors used by the Axen compiler:
// primitives, pointers, fixed-length arrays, and class references, plus the
// type registry and the lexical scope stack the parser resolves names with.
package typing

// Type is the abstract interface for all type descriptors.
type Type interface {
	// Signed indicates whether values of this type are signed.  Pointer and
	// array types delegate to their element type; class references are
	// always unsigned.
	Signed() bool
}

// Enumeration of primitive type kinds.
const (
	PrimVoid = iota
	PrimBool

	// int
	PrimChar
	PrimShort
	PrimInt
	PrimLong

	// fp
	PrimHalf
	PrimFloat
	PrimDouble
	PrimQuad
)

// PrimType is a primitive type descriptor.
type PrimType struct {
	// The kind of the primitive.  This must be one of the enumerated
	// primitive kinds.
	Kind int

	// Whether the type is signed.  This only applies to integer kinds:
	// floating-point types are always signed, void and bool never are.
	IsSigned bool
}

func (pt *PrimType) Signed() bool {
	return pt.IsSigned
}

// IsFloat returns whether the primitive is a floating-point kind.
func (pt *PrimType) IsFloat() bool {
	switch pt.Kind {
	case PrimHalf, PrimFloat, PrimDouble, PrimQuad:
		return true
	default:
		return false
	}
}

// PointerType is a pointer type descriptor.  The pointer is opaque at the
// source level but carries its referenced type for arithmetic and
// dereferencing.
type PointerType struct {
	Target Type
}

func (pt *PointerType) Signed() bool {
	return pt.Target.Signed()
}

// ArrayType is a fixed-length array type descriptor.  Len is always > 0.
type ArrayType struct {
	Elem Type
	Len  int
}

func (at *ArrayType) Signed() bool {
	return at.Elem.Signed()
}

// ClassRef is a non-owning handle to a class declaration.  Multiple
// references share one declaration since classes may be re-opened across
// files.
type ClassRef struct {
	Decl *ClassDecl
}

func (cr *ClassRef) Signed() bool {
	return false
}
