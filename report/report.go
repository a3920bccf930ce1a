// Package report implements the diagnostic machinery for the Axen compiler.
// All compilation errors are fatal: deep compiler code raises a diagnostic
// which unwinds to the driver where it is displayed and the process exits
// with a non-zero status.
package report

import (
	"fmt"
	"os"
)

// Enumeration of diagnostic kinds.
const (
	KindSyntax = iota
	KindSemantic
	KindCodegen
	KindInternal
)

// kindLabels maps diagnostic kinds to their display labels.
var kindLabels = map[int]string{
	KindSyntax:   "Syntax Error",
	KindSemantic: "Semantic Error",
	KindCodegen:  "Code Generation Error",
	KindInternal: "Internal Compiler Error",
}

// Location identifies the source position a diagnostic refers to.  Any field
// may be empty/zero if the information is not available at the raise site.
type Location struct {
	// The path of the file being compiled.
	File string

	// The name of the class being parsed, if any.
	Class string

	// The line and column of the offending token.  Both are one-indexed; a
	// zero value means no position is known.
	Line, Col int

	// The text of the offending token.
	Token string
}

// Diagnostic is a fatal compiler error.  It implements error so tests can
// inspect raised diagnostics directly.
type Diagnostic struct {
	// The kind of the diagnostic.  This must be one of the enumerated kinds.
	Kind int

	// The diagnostic message.
	Message string

	// The source location the diagnostic refers to, if known.
	Loc *Location
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// Raise raises a fatal diagnostic.  It panics with a *Diagnostic which is
// recovered by a deferred Catch in the driver.  loc may be nil.
// NB: Raise never returns.
func Raise(kind int, loc *Location, msg string, args ...interface{}) {
	panic(&Diagnostic{Kind: kind, Message: fmt.Sprintf(msg, args...), Loc: loc})
}

// RaiseStdError raises a fatal diagnostic wrapping a standard Go error.
func RaiseStdError(kind int, err error) {
	panic(&Diagnostic{Kind: kind, Message: err.Error()})
}

// Catch recovers a raised diagnostic, displays it, and exits the process
// with a non-zero status.  Any other panic is propagated unchanged.
// NB: This function must ALWAYS be deferred.
func Catch() {
	if x := recover(); x != nil {
		if d, ok := x.(*Diagnostic); ok {
			d.display()
			os.Exit(1)
		}

		panic(x)
	}
}
