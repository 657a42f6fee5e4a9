package types

// MemberKind classifies what a call node resolved to.
type MemberKind int

const (
	KindConstructor MemberKind = iota
	KindField
	KindMethod
	KindSuper
)

// Member is the resolved target of a call node, supplied by the
// type-resolution collaborator. The back end only reads members; a call
// that reaches the back end without one is a front-end defect.
type Member struct {
	Name         string
	Kind         MemberKind
	Static       bool
	Owner        *Type   // declaring type; qualifies static access
	ArgTypes     []*Type
	ReturnType   *Type // declared return type
	ActualReturn *Type // what the target really returns; nil means same as declared
}

// Returns reports the member's effective return type.
func (m *Member) Returns() *Type {
	if m.ActualReturn != nil {
		return m.ActualReturn
	}
	return m.ReturnType
}

// IsVoid reports whether calling this member produces no value.
func (m *Member) IsVoid() bool {
	r := m.Returns()
	return r == nil || r.IsVoid()
}

func (m *Member) IsField() bool {
	return m.Kind == KindField
}

func (m *Member) IsConstructor() bool {
	return m.Kind == KindConstructor
}
