package ast

import "github.com/arsoniv/axenc/typing"

// Param is a single function parameter.
type Param struct {
	Name string
	Type typing.Type
}

// Function is a function declaration, detached or mangled method.  The
// parser inserts the implicit `this` parameter as the first parameter of
// every non-detached method.
type Function struct {
	// Name is the mangled name: `Class_method` for methods, the source name
	// for detached functions.
	Name string

	ReturnType typing.Type
	Params     []Param

	// Body is the statement list of the function body.  HasBody
	// distinguishes an empty body from a bodyless external declaration.
	Body    []Stmt
	HasBody bool

	// Public functions receive external linkage.
	Public bool

	// Detached is true for functions declared outside any class.
	Detached bool
}
