package javasrc

import (
	"github.com/ejmvar/mirah/internal/ast"
	"github.com/ejmvar/mirah/internal/types"
)

// callKind classifies a call node. Classification order matters:
// operator symbols first, then array operations, then the nil test,
// then member calls resolved by the front end.
type callKind int

const (
	callInfix callKind = iota
	callPrefix
	callArrayRead
	callArrayWrite
	callArrayLength
	callNilTest
	callMember
)

var infixOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"<<": true, ">>": true, ">>>": true,
	"&": true, "|": true, "^": true,
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true,
}

var prefixOps = map[string]string{
	"-": "-", "-@": "-", "+@": "+", "!": "!", "~": "~",
}

func (c *Compiler) classify(n *ast.Call) callKind {
	if len(n.Args) == 1 && infixOps[n.Name] {
		return callInfix
	}
	if len(n.Args) == 0 {
		if _, ok := prefixOps[n.Name]; ok {
			return callPrefix
		}
	}
	if n.Target != nil && n.Target.Type() != nil && n.Target.Type().IsArray() {
		switch {
		case n.Name == "[]" && len(n.Args) == 1:
			return callArrayRead
		case n.Name == "[]=" && len(n.Args) == 2:
			return callArrayWrite
		case (n.Name == "length" || n.Name == "size") && len(n.Args) == 0:
			return callArrayLength
		}
	}
	if n.Name == "nil?" && len(n.Args) == 0 {
		return callNilTest
	}
	return callMember
}

func (c *Compiler) callIsExpr(n *ast.Call) bool {
	kind := c.classify(n)
	if kind == callMember {
		if n.Member == nil {
			return false
		}
		if n.Member.IsVoid() && !n.Member.IsConstructor() {
			return false
		}
	}
	if n.Target != nil && !c.isExpr(n.Target) {
		return false
	}
	for _, a := range n.Args {
		if !c.isExpr(a) {
			return false
		}
	}
	return true
}

func (c *Compiler) call(n *ast.Call, expression bool) {
	kind := c.classify(n)
	if kind == callMember && n.Member == nil {
		c.failNode("call reached the back end without a resolved member", n)
	}
	if expression && kind == callMember && n.Member.IsVoid() && !n.Member.IsConstructor() {
		c.voidValueCall(n)
		return
	}
	if expression && !c.isExpr(n) {
		// hoist the receiver and arguments in source order, then the
		// whole call is simple and stores through the active lvalue
		c.storeValue(c.lvalue, c.hoistCall(n))
		return
	}
	if expression {
		c.renderCall(n, kind)
		return
	}
	c.callStatement(n, kind)
}

// hoistCall precompiles the receiver and arguments of a call, returning
// a call node whose children are all simple.
func (c *Compiler) hoistCall(n *ast.Call) *ast.Call {
	nodes := make([]ast.Node, 0, len(n.Args)+1)
	nodes = append(nodes, n.Target)
	nodes = append(nodes, n.Args...)
	nodes = c.precompileAll(nodes)
	m := *n
	m.Target = nodes[0]
	m.Args = nodes[1:]
	return &m
}

// callStatement emits a call for its side effects alone. Value-only
// shapes (operators, reads, the nil test) reduce to evaluating their
// operands; real calls and stores emit as statements.
func (c *Compiler) callStatement(n *ast.Call, kind callKind) {
	switch kind {
	case callInfix, callPrefix, callArrayRead, callArrayLength, callNilTest:
		if n.Target != nil {
			c.compile(n.Target, false)
		}
		for _, a := range n.Args {
			c.compile(a, false)
		}
	case callArrayWrite:
		m := n
		if !c.isExpr(n) {
			m = c.hoistCall(n)
		}
		c.compile(m.Target, true)
		c.method.Print("[")
		c.compile(m.Args[0], true)
		c.method.Print("] = ")
		c.compile(m.Args[1], true)
		c.method.Puts("")
	case callMember:
		if n.Member.IsField() && len(n.Args) == 0 {
			// a bare field read has no effect
			if n.Target != nil {
				c.compile(n.Target, false)
			}
			return
		}
		m := n
		if !c.allPartsSimple(n) {
			m = c.hoistCall(n)
		}
		c.renderMember(m, false)
		c.method.Puts("")
	}
}

func (c *Compiler) allPartsSimple(n *ast.Call) bool {
	if n.Target != nil && !c.isExpr(n.Target) {
		return false
	}
	for _, a := range n.Args {
		if !c.isExpr(a) {
			return false
		}
	}
	return true
}

// renderCall prints a simple call in-line.
func (c *Compiler) renderCall(n *ast.Call, kind callKind) {
	switch kind {
	case callInfix:
		c.method.Print("(")
		c.compile(n.Target, true)
		c.method.Print(" " + n.Name + " ")
		c.compile(n.Args[0], true)
		c.method.Print(")")
	case callPrefix:
		c.method.Print("(" + prefixOps[n.Name])
		c.compile(n.Target, true)
		c.method.Print(")")
	case callArrayRead:
		c.compile(n.Target, true)
		c.method.Print("[")
		c.compile(n.Args[0], true)
		c.method.Print("]")
	case callArrayWrite:
		c.method.Print("(")
		c.compile(n.Target, true)
		c.method.Print("[")
		c.compile(n.Args[0], true)
		c.method.Print("] = ")
		c.compile(n.Args[1], true)
		c.method.Print(")")
	case callArrayLength:
		c.compile(n.Target, true)
		c.method.Print(".length")
	case callNilTest:
		c.method.Print("(")
		c.compile(n.Target, true)
		c.method.Print(" == null)")
	case callMember:
		c.renderMember(n, true)
	}
}

// renderMember prints the call shape a member descriptor asks for:
// constructor, field read, field assignment, super call, or a plain
// static/instance call. parenthesize wraps value-yielding assignment
// shapes used in-line.
func (c *Compiler) renderMember(n *ast.Call, parenthesize bool) {
	m := n.Member
	switch {
	case m.IsConstructor():
		c.method.Print("new " + c.constructedType(n) + "(")
		c.renderArgs(n.Args)
		c.method.Print(")")
	case m.Kind == types.KindSuper:
		c.method.Print("super." + m.Name + "(")
		c.renderArgs(n.Args)
		c.method.Print(")")
	case m.IsField() && len(n.Args) == 0:
		c.renderReceiver(n)
		c.method.Print(m.Name)
	case m.IsField():
		if parenthesize {
			c.method.Print("(")
		}
		c.renderReceiver(n)
		c.method.Print(m.Name + " = ")
		c.compile(n.Args[0], true)
		if parenthesize {
			c.method.Print(")")
		}
	default:
		c.renderReceiver(n)
		c.method.Print(m.Name + "(")
		c.renderArgs(n.Args)
		c.method.Print(")")
	}
}

func (c *Compiler) constructedType(n *ast.Call) string {
	if n.Member.Owner != nil {
		return n.Member.Owner.Name
	}
	if n.Typ != nil {
		return n.Typ.Name
	}
	c.failNode("constructor call without a target type", n)
	return ""
}

func (c *Compiler) renderReceiver(n *ast.Call) {
	m := n.Member
	if n.Target != nil {
		c.compile(n.Target, true)
		c.method.Print(".")
		return
	}
	if m.Static && m.Owner != nil {
		c.method.Print(m.Owner.Name + ".")
	}
	// an instance member with no explicit receiver binds to this
}

func (c *Compiler) renderArgs(args []ast.Node) {
	for i, a := range args {
		if i > 0 {
			c.method.Print(", ")
		}
		c.compile(a, true)
	}
}

// voidValueCall keeps "every expression position yields a value" for a
// call whose target returns nothing: the call emits as a statement,
// then the active lvalue receives null for static targets or the call's
// receiver for instance targets. Ordinary and super calls share this
// path.
func (c *Compiler) voidValueCall(n *ast.Call) {
	m := c.hoistCall(n)
	c.renderMember(m, false)
	c.method.Puts("")
	if n.Member.Static {
		c.storeLiteral(c.lvalue, "null")
		return
	}
	if m.Target == nil {
		c.storeLiteral(c.lvalue, "this")
		return
	}
	c.storeValue(c.lvalue, m.Target)
}
