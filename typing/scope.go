package typing

// ScopeStack is a stack of lexical variable scopes, each mapping a variable
// name to its type.  Lookups walk from the innermost scope outward.
type ScopeStack struct {
	frames []map[string]Type
}

// Push pushes a fresh scope frame.
func (ss *ScopeStack) Push() {
	ss.frames = append(ss.frames, make(map[string]Type))
}

// Pop pops the innermost scope frame.
func (ss *ScopeStack) Pop() {
	if len(ss.frames) > 0 {
		ss.frames = ss.frames[:len(ss.frames)-1]
	}
}

// Declare binds a variable name to a type in the innermost scope.
func (ss *ScopeStack) Declare(name string, typ Type) {
	ss.frames[len(ss.frames)-1][name] = typ
}

// Lookup returns the type of the named variable, walking scopes from the
// innermost outward.  It returns nil if the variable is not declared.
func (ss *ScopeStack) Lookup(name string) Type {
	for i := len(ss.frames) - 1; i >= 0; i-- {
		if typ, ok := ss.frames[i][name]; ok {
			return typ
		}
	}

	return nil
}

// ExistsInCurrent returns whether the name is declared in the innermost
// scope only.
func (ss *ScopeStack) ExistsInCurrent(name string) bool {
	_, ok := ss.frames[len(ss.frames)-1][name]
	return ok
}
