package typing

// Member is a single data member of a class.
type Member struct {
	Name string
	Type Type
}

// ClassDecl is a class declaration: a name plus an ordered member list.  The
// member order is the declaration order and is the struct layout.  A class
// may be re-opened by a later declaration which appends its members.
type ClassDecl struct {
	name    string
	members []Member
}

// NewClassDecl creates a class declaration with the given members.
func NewClassDecl(name string, members []Member) *ClassDecl {
	return &ClassDecl{name: name, members: members}
}

// Name returns the class name.
func (cd *ClassDecl) Name() string {
	return cd.name
}

// Members returns the member list in declaration order.
func (cd *ClassDecl) Members() []Member {
	return cd.members
}

// AddMembers appends new members to the class, replacing any member that is
// redeclared with the same name.  This implements class re-opening.
func (cd *ClassDecl) AddMembers(newMembers []Member) {
	for _, nm := range newMembers {
		replaced := false
		for i, m := range cd.members {
			if m.Name == nm.Name {
				cd.members[i] = nm
				replaced = true
				break
			}
		}

		if !replaced {
			cd.members = append(cd.members, nm)
		}
	}
}

// MemberType returns the type of the named member, or nil if the class has
// no such member.
func (cd *ClassDecl) MemberType(name string) Type {
	for _, m := range cd.members {
		if m.Name == name {
			return m.Type
		}
	}

	return nil
}

// MemberIndex returns the layout index of the named member, or -1 if the
// class has no such member.
func (cd *ClassDecl) MemberIndex(name string) int {
	for i, m := range cd.members {
		if m.Name == name {
			return i
		}
	}

	return -1
}
