package types

// Type describes a Java-visible type the way the front end resolved it.
// The back end never infers types; it only reads them off the tree.
type Type struct {
	Name      string // Java source rendering: "int", "java.lang.String", "int[]"
	Primitive bool
	Component *Type // element type when this is an array type
}

// Builtin primitive and reference types shared by every compilation.
var (
	Void    = &Type{Name: "void", Primitive: true}
	Boolean = &Type{Name: "boolean", Primitive: true}
	Byte    = &Type{Name: "byte", Primitive: true}
	Short   = &Type{Name: "short", Primitive: true}
	Int     = &Type{Name: "int", Primitive: true}
	Long    = &Type{Name: "long", Primitive: true}
	Char    = &Type{Name: "char", Primitive: true}
	Float   = &Type{Name: "float", Primitive: true}
	Double  = &Type{Name: "double", Primitive: true}
	Object  = &Type{Name: "java.lang.Object"}
	String  = &Type{Name: "java.lang.String"}
)

// Reference returns a named reference type.
func Reference(name string) *Type {
	return &Type{Name: name}
}

// ArrayOf returns the array type with the given element type.
func ArrayOf(elem *Type) *Type {
	return &Type{Name: elem.Name + "[]", Component: elem}
}

func (t *Type) IsArray() bool {
	return t.Component != nil
}

func (t *Type) IsPrimitive() bool {
	return t.Primitive
}

func (t *Type) IsVoid() bool {
	return t == Void || t.Name == "void"
}

func (t *Type) String() string {
	return t.Name
}
