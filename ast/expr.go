// Package ast defines the typed abstract syntax tree of the Axen compiler.
// Nodes are tagged variants: the IR generator dispatches on the concrete
// node type.  Every expression carries a resolved signedness at construction;
// no untyped expression exists past the parser.
package ast

import "github.com/arsoniv/axenc/typing"

// Expr is the abstract interface for all expression nodes.
type Expr interface {
	// Signed indicates the signedness of the expression's value, propagated
	// from its type at parse time.
	Signed() bool
}

// LValue marks expressions whose lowering can yield a pointer to storage.
// It is implemented by VarRef, StructAccess, ArrayAccess, PtrIndexAccess,
// and Dref.
type LValue interface {
	Expr
	lvalue()
}

// VarRef is a reference to a named local variable or parameter.
type VarRef struct {
	Name     string
	IsSigned bool
}

func (vr *VarRef) Signed() bool { return vr.IsSigned }
func (vr *VarRef) lvalue()      {}

// StructAccess is the access of a named member of a class value.
type StructAccess struct {
	// Target is the class-typed expression being accessed.
	Target Expr

	// The member and class names.
	Member string
	Class  string

	IsSigned bool

	// ClassType is the reference to the class declaration the member
	// belongs to.
	ClassType *typing.ClassRef
}

func (sa *StructAccess) Signed() bool { return sa.IsSigned }
func (sa *StructAccess) lvalue()      {}

// ArrayAccess is the subscript of a fixed-length array value.
type ArrayAccess struct {
	Target   Expr
	Index    Expr
	IsSigned bool

	// ArrType is the array type being subscripted.
	ArrType *typing.ArrayType
}

func (aa *ArrayAccess) Signed() bool { return aa.IsSigned }
func (aa *ArrayAccess) lvalue()      {}

// PtrIndexAccess is the subscript of a pointer value.
type PtrIndexAccess struct {
	Target   Expr
	Index    Expr
	IsSigned bool

	// PtrType is the pointer type being indexed.
	PtrType *typing.PointerType
}

func (pa *PtrIndexAccess) Signed() bool { return pa.IsSigned }
func (pa *PtrIndexAccess) lvalue()      {}

// Dref is a pointer dereference.
type Dref struct {
	Target Expr

	// DerivedType is the type of the dereferenced value.
	DerivedType typing.Type

	IsSigned bool
}

func (d *Dref) Signed() bool { return d.IsSigned }
func (d *Dref) lvalue()      {}

// AddressOf takes the address of an l-value expression.
type AddressOf struct {
	Target   LValue
	IsSigned bool
}

func (ao *AddressOf) Signed() bool { return ao.IsSigned }

// IntLit is an integer literal.  Integer literals are always 32-bit and
// signed; conversion to wider or narrower types happens at the use site.
type IntLit struct {
	Value int64
}

func (il *IntLit) Signed() bool { return true }

// FloatLit is a floating-point literal.
type FloatLit struct {
	Value float64
}

func (fl *FloatLit) Signed() bool { return true }

// StringLit is a string literal; it lowers to a pointer to the first byte of
// a global constant.
type StringLit struct {
	Value string
}

func (sl *StringLit) Signed() bool { return false }

// Call is a function call.  Method calls are lowered by the parser to calls
// of the mangled name with the receiver address prepended to the arguments.
type Call struct {
	Name     string
	Args     []Expr
	IsSigned bool
}

func (c *Call) Signed() bool { return c.IsSigned }

// Enumeration of binary operation kinds.
const (
	OpAdd = iota
	OpSub
	OpMul
	OpDiv
	OpLess
	OpGreater
	OpEqual
)

// BinOp is a binary operation.  The parser guarantees both operands share
// the result's signedness.
type BinOp struct {
	Op       int
	Lhs, Rhs Expr
	IsSigned bool
}

func (bo *BinOp) Signed() bool { return bo.IsSigned }
