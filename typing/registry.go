package typing

// Registry maps type names to their descriptors.  It is seeded with the
// primitive names; class declarations and typedefs are registered as parsing
// proceeds.
type Registry struct {
	table map[string]Type
}

// NewRegistry creates a registry seeded with the primitive types.
func NewRegistry() *Registry {
	r := &Registry{table: make(map[string]Type)}

	r.Register("bool", &PrimType{Kind: PrimBool, IsSigned: false})
	r.Register("void", &PrimType{Kind: PrimVoid, IsSigned: false})

	r.Register("char", &PrimType{Kind: PrimChar, IsSigned: true})
	r.Register("uchar", &PrimType{Kind: PrimChar, IsSigned: false})

	r.Register("short", &PrimType{Kind: PrimShort, IsSigned: true})
	r.Register("ushort", &PrimType{Kind: PrimShort, IsSigned: false})

	r.Register("int", &PrimType{Kind: PrimInt, IsSigned: true})
	r.Register("uint", &PrimType{Kind: PrimInt, IsSigned: false})

	r.Register("long", &PrimType{Kind: PrimLong, IsSigned: true})
	r.Register("ulong", &PrimType{Kind: PrimLong, IsSigned: false})

	// fp types are always signed
	r.Register("half", &PrimType{Kind: PrimHalf, IsSigned: true})
	r.Register("float", &PrimType{Kind: PrimFloat, IsSigned: true})
	r.Register("double", &PrimType{Kind: PrimDouble, IsSigned: true})
	r.Register("quad", &PrimType{Kind: PrimQuad, IsSigned: true})

	return r
}

// Register binds a name to a type descriptor.
func (r *Registry) Register(name string, typ Type) {
	r.table[name] = typ
}

// Lookup returns the descriptor bound to name, or nil if the name is not a
// registered type.
func (r *Registry) Lookup(name string) Type {
	return r.table[name]
}
