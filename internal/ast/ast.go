package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ejmvar/mirah/internal/types"
)

// Node is the base interface for every typed tree node the back end
// consumes. The set of implementations is closed: each variant defines
// the unexported marker method, so the compile dispatch can treat an
// unknown variant as a fatal unsupported construct instead of guessing.
type Node interface {
	node()
	// Type is the node's inferred result type, assigned by the front end.
	Type() *types.Type
	// String renders the node roughly as source, for error messages and
	// the debug tree. It is not valid target code.
	String() string
}

// IntLit is an int literal.
type IntLit struct {
	Value int64
}

func (n *IntLit) node()             {}
func (n *IntLit) Type() *types.Type { return types.Int }
func (n *IntLit) String() string    { return strconv.FormatInt(n.Value, 10) }

// LongLit is a long literal; it renders with the L suffix.
type LongLit struct {
	Value int64
}

func (n *LongLit) node()             {}
func (n *LongLit) Type() *types.Type { return types.Long }
func (n *LongLit) String() string    { return strconv.FormatInt(n.Value, 10) + "L" }

// FloatLit is a float literal; it renders with the f suffix.
type FloatLit struct {
	Value float64
}

func (n *FloatLit) node()             {}
func (n *FloatLit) Type() *types.Type { return types.Float }
func (n *FloatLit) String() string {
	return forceDecimal(strconv.FormatFloat(n.Value, 'g', -1, 32)) + "f"
}

// DoubleLit is a double literal.
type DoubleLit struct {
	Value float64
}

func (n *DoubleLit) node()             {}
func (n *DoubleLit) Type() *types.Type { return types.Double }
func (n *DoubleLit) String() string {
	return forceDecimal(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

// forceDecimal makes sure a formatted float reads as a floating literal
// even when the value is integral.
func forceDecimal(s string) string {
	if strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}

// BoolLit is true or false.
type BoolLit struct {
	Value bool
}

func (n *BoolLit) node()             {}
func (n *BoolLit) Type() *types.Type { return types.Boolean }
func (n *BoolLit) String() string    { return strconv.FormatBool(n.Value) }

// CharLit is a char literal.
type CharLit struct {
	Value rune
}

func (n *CharLit) node()             {}
func (n *CharLit) Type() *types.Type { return types.Char }
func (n *CharLit) String() string    { return "'" + EscapeChar(n.Value) + "'" }

// StrLit is a string literal.
type StrLit struct {
	Value string
}

func (n *StrLit) node()             {}
func (n *StrLit) Type() *types.Type { return types.String }
func (n *StrLit) String() string    { return "\"" + EscapeString(n.Value) + "\"" }

// NullLit is the null literal; its type is whatever the front end
// inferred for the surrounding context.
type NullLit struct {
	Typ *types.Type
}

func (n *NullLit) node() {}
func (n *NullLit) Type() *types.Type {
	if n.Typ == nil {
		return types.Object
	}
	return n.Typ
}
func (n *NullLit) String() string { return "null" }

// Self is the receiver of the enclosing method.
type Self struct {
	Typ *types.Type
}

func (n *Self) node()             {}
func (n *Self) Type() *types.Type { return n.Typ }
func (n *Self) String() string    { return "self" }

// Local reads a local variable. When the owning scope captured the
// variable, the read goes through the capture container instead.
type Local struct {
	Name  string
	Typ   *types.Type
	Scope *Scope
}

func (n *Local) node()             {}
func (n *Local) Type() *types.Type { return n.Typ }
func (n *Local) String() string    { return n.Name }

// LocalAssign writes a local variable, declaring it on first write.
type LocalAssign struct {
	Name  string
	Value Node
	Typ   *types.Type
	Scope *Scope
}

func (n *LocalAssign) node()             {}
func (n *LocalAssign) Type() *types.Type { return n.Typ }
func (n *LocalAssign) String() string    { return n.Name + " = " + n.Value.String() }

// FieldAccess reads a field of the enclosing class.
type FieldAccess struct {
	Name   string
	Typ    *types.Type
	Static bool
}

func (n *FieldAccess) node()             {}
func (n *FieldAccess) Type() *types.Type { return n.Typ }
func (n *FieldAccess) String() string    { return "@" + n.Name }

// FieldAssign writes a field of the enclosing class, declaring it on
// first write.
type FieldAssign struct {
	Name        string
	Value       Node
	Typ         *types.Type
	Static      bool
	Annotations []string
}

func (n *FieldAssign) node()             {}
func (n *FieldAssign) Type() *types.Type { return n.Typ }
func (n *FieldAssign) String() string    { return "@" + n.Name + " = " + n.Value.String() }

// Call is a resolved call: operator, array operation, nil test, or a
// member call described by Member. Target is nil for constructor and
// static calls with no explicit receiver.
type Call struct {
	Target Node
	Name   string
	Args   []Node
	Member *types.Member
	Typ    *types.Type
}

func (n *Call) node()             {}
func (n *Call) Type() *types.Type { return n.Typ }
func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	recv := ""
	if n.Target != nil {
		recv = n.Target.String() + "."
	}
	return fmt.Sprintf("%s%s(%s)", recv, n.Name, strings.Join(args, ", "))
}

// Branch is a conditional. Else may be nil; in expression position the
// missing arm still yields the type's zero value.
type Branch struct {
	Condition Node
	Then      Node
	Else      Node
	Typ       *types.Type
}

func (n *Branch) node()             {}
func (n *Branch) Type() *types.Type { return n.Typ }
func (n *Branch) String() string    { return "if " + n.Condition.String() }

// Loop is a while/until loop. Post means the condition is tested after
// the body; Redoable means the body may re-enter itself via redo;
// Negative inverts the predicate (an until loop).
type Loop struct {
	Condition Node
	Body      Node
	Post      bool
	Redoable  bool
	Negative  bool
	Typ       *types.Type
}

func (n *Loop) node() {}
func (n *Loop) Type() *types.Type {
	if n.Typ == nil {
		return types.Object
	}
	return n.Typ
}
func (n *Loop) String() string {
	kw := "while"
	if n.Negative {
		kw = "until"
	}
	return kw + " " + n.Condition.String()
}

// Break exits the innermost loop.
type Break struct{}

func (n *Break) node()             {}
func (n *Break) Type() *types.Type { return types.Void }
func (n *Break) String() string    { return "break" }

// Next skips to the next iteration of the innermost loop.
type Next struct{}

func (n *Next) node()             {}
func (n *Next) Type() *types.Type { return types.Void }
func (n *Next) String() string    { return "next" }

// Redo re-runs the innermost loop body without re-testing the condition.
type Redo struct{}

func (n *Redo) node()             {}
func (n *Redo) Type() *types.Type { return types.Void }
func (n *Redo) String() string    { return "redo" }

// Return exits the enclosing method. Value is nil for a bare return.
type Return struct {
	Value Node
}

func (n *Return) node()             {}
func (n *Return) Type() *types.Type { return types.Void }
func (n *Return) String() string {
	if n.Value == nil {
		return "return"
	}
	return "return " + n.Value.String()
}

// Raise throws an exception value.
type Raise struct {
	Value Node
}

func (n *Raise) node()             {}
func (n *Raise) Type() *types.Type { return types.Void }
func (n *Raise) String() string    { return "raise " + n.Value.String() }

// RescueClause handles the listed exception types, binding the caught
// exception to Name (a fresh name is allocated when empty).
type RescueClause struct {
	Types []*types.Type
	Name  string
	Body  Node
}

// Rescue protects Body with one or more rescue clauses.
type Rescue struct {
	Body    Node
	Clauses []*RescueClause
	Typ     *types.Type
}

func (n *Rescue) node()             {}
func (n *Rescue) Type() *types.Type { return n.Typ }
func (n *Rescue) String() string    { return "begin/rescue" }

// Ensure runs Clause on every exit from Body.
type Ensure struct {
	Body   Node
	Clause Node
	Typ    *types.Type
}

func (n *Ensure) node()             {}
func (n *Ensure) Type() *types.Type { return n.Typ }
func (n *Ensure) String() string    { return "begin/ensure" }

// NodeList is an ordered statement sequence; its value is the value of
// the last child.
type NodeList struct {
	Children []Node
}

func (n *NodeList) node() {}
func (n *NodeList) Type() *types.Type {
	if len(n.Children) == 0 {
		return types.Void
	}
	return n.Children[len(n.Children)-1].Type()
}
func (n *NodeList) String() string {
	if len(n.Children) == 0 {
		return "<empty>"
	}
	return n.Children[0].String() + "; ..."
}

// Param is a method or closure parameter.
type Param struct {
	Name string
	Typ  *types.Type
}

// Closure defines an anonymous function implementing the single method
// Method of interface type Iface. Scope is the defining (enclosing)
// scope; captured variables reach the closure through that scope's
// capture container, shared by reference.
type Closure struct {
	Scope  *Scope
	Iface  *types.Type
	Method *types.Member
	Params []Param
	Body   Node
}

func (n *Closure) node()             {}
func (n *Closure) Type() *types.Type { return n.Iface }
func (n *Closure) String() string    { return "closure " + n.Iface.Name }

// EmptyArray allocates an array of the given size, zero-filled.
type EmptyArray struct {
	Size Node
	Typ  *types.Type // the array type
}

func (n *EmptyArray) node()             {}
func (n *EmptyArray) Type() *types.Type { return n.Typ }
func (n *EmptyArray) String() string {
	return n.Typ.Component.Name + "[" + n.Size.String() + "]"
}

// Noop emits nothing.
type Noop struct{}

func (n *Noop) node()             {}
func (n *Noop) Type() *types.Type { return types.Void }
func (n *Noop) String() string    { return "noop" }

// TempValue stands for a value already computed into a freshly
// allocated local by the precompilation pass. Keeping it a distinct
// variant lets every consumer tell precomputed values apart from values
// still requiring evaluation-order care.
type TempValue struct {
	Name string
	Typ  *types.Type
}

func (n *TempValue) node()             {}
func (n *TempValue) Type() *types.Type { return n.Typ }
func (n *TempValue) String() string    { return n.Name }

// MethodDef is one compilation unit: a named method with a typed body.
type MethodDef struct {
	Name       string
	Params     []Param
	ReturnType *types.Type
	Static     bool
	Body       Node
	Scope      *Scope
}

// Delegation is a constructor's leading super(...) or this(...) call.
type Delegation struct {
	Super bool
	Args  []Node
}

// ConstructorDef is a constructor compilation unit.
type ConstructorDef struct {
	Params   []Param
	Body     Node
	Scope    *Scope
	Delegate *Delegation
}

// FieldDecl is an explicit field declaration on a class.
type FieldDecl struct {
	Name        string
	Typ         *types.Type
	Static      bool
	Annotations []string
}

// ClassDef groups the units of one generated class.
type ClassDef struct {
	Package      string
	Name         string
	Extends      *types.Type
	Fields       []FieldDecl
	Constructors []*ConstructorDef
	Methods      []*MethodDef
}

// EscapeString escapes a string for a Java string literal.
func EscapeString(s string) string {
	var out strings.Builder
	for _, r := range s {
		out.WriteString(escapeRune(r, '"'))
	}
	return out.String()
}

// EscapeChar escapes a rune for a Java char literal.
func EscapeChar(r rune) string {
	return escapeRune(r, '\'')
}

func escapeRune(r rune, quote rune) string {
	switch r {
	case '\\':
		return "\\\\"
	case '\n':
		return "\\n"
	case '\r':
		return "\\r"
	case '\t':
		return "\\t"
	case quote:
		return "\\" + string(quote)
	}
	if r < 0x20 || r == 0x7f {
		return fmt.Sprintf("\\u%04x", r)
	}
	return string(r)
}
