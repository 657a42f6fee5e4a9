// Package javasrc translates typed trees into Java source text. Every
// node compiles exactly once per control-flow path, knowing whether its
// result must read as an in-line expression or may be emitted as a
// statement sequence with a side effect.
package javasrc

import (
	"github.com/ejmvar/mirah/internal/ast"
	"github.com/ejmvar/mirah/internal/emitter"
	"github.com/ejmvar/mirah/internal/types"
)

// Compiler emits one compilation unit (a method, constructor or closure
// body). Nested closure bodies compile under a fresh Compiler that
// shares the class state but carries its own method context.
type Compiler struct {
	state      *classState
	method     *emitter.MethodWriter
	returnType *types.Type
	static     bool
	selfType   *types.Type

	// lvalue is the pending destination a non-simple sub-node must
	// write its final value into exactly once.
	lvalue   string
	loop     loopStrategy
	bindings map[*ast.Scope]*bindingRef
}

// classState is shared by every compiler working on the same class.
type classState struct {
	builder *emitter.Builder
	class   *emitter.ClassWriter
}

func newCompiler(st *classState, mw *emitter.MethodWriter, returnType *types.Type, static bool, selfType *types.Type) *Compiler {
	return &Compiler{
		state:      st,
		method:     mw,
		returnType: returnType,
		static:     static,
		selfType:   selfType,
		bindings:   make(map[*ast.Scope]*bindingRef),
	}
}

// compile is the duality contract. expression means the caller needs
// this node's value: a simple node then renders in-line, anything else
// emits statements that store into the active lvalue. With expression
// false the node may emit pure side-effecting statements and produce no
// value at all.
func (c *Compiler) compile(n ast.Node, expression bool) {
	switch n := n.(type) {
	case *ast.IntLit, *ast.LongLit, *ast.FloatLit, *ast.DoubleLit,
		*ast.BoolLit, *ast.CharLit, *ast.StrLit, *ast.NullLit:
		if expression {
			c.method.Print(n.String())
		}
	case *ast.Self:
		if expression {
			c.method.Print("this")
		}
	case *ast.TempValue:
		if expression {
			c.method.Print(n.Name)
		}
	case *ast.Noop:
		// emits nothing
	case *ast.Local:
		if expression {
			c.method.Print(c.localRef(n.Scope, n.Name))
		}
	case *ast.LocalAssign:
		c.localAssign(n, expression)
	case *ast.FieldAccess:
		if expression {
			c.method.Print(c.fieldRef(n.Name, n.Static))
		}
	case *ast.FieldAssign:
		c.fieldAssign(n, expression)
	case *ast.Call:
		c.call(n, expression)
	case *ast.Branch:
		c.branch(n, expression)
	case *ast.Loop:
		c.loopNode(n, expression)
	case *ast.Break:
		c.loopExit(n, func(s loopStrategy) { s.breakStmt(c) })
	case *ast.Next:
		c.loopExit(n, func(s loopStrategy) { s.nextStmt(c) })
	case *ast.Redo:
		c.loopExit(n, func(s loopStrategy) { s.redoStmt(c) })
	case *ast.Return:
		c.returnNode(n)
	case *ast.Raise:
		c.storeValue("throw ", n.Value)
	case *ast.Rescue:
		c.rescue(n, expression)
	case *ast.Ensure:
		c.ensure(n, expression)
	case *ast.NodeList:
		c.bodyNode(n, expression)
	case *ast.Closure:
		c.closure(n, expression)
	case *ast.EmptyArray:
		c.emptyArray(n, expression)
	default:
		c.failNode("no rule to compile this construct", n)
	}
}

// isExpr answers the per-node "renderable as a single in-line
// expression" query for the current context. The answer may depend on
// compiler state: a local assignment is in-line only when the local is
// already declared, because a declaration is not a Java expression.
func (c *Compiler) isExpr(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.IntLit, *ast.LongLit, *ast.FloatLit, *ast.DoubleLit,
		*ast.BoolLit, *ast.CharLit, *ast.StrLit, *ast.NullLit,
		*ast.Self, *ast.TempValue, *ast.Local, *ast.FieldAccess,
		*ast.Closure:
		return true
	case *ast.LocalAssign:
		if n.Scope != nil && n.Scope.Captured(n.Name) {
			return c.isExpr(n.Value)
		}
		return c.method.Local(n.Name) && c.isExpr(n.Value)
	case *ast.FieldAssign:
		return c.isExpr(n.Value)
	case *ast.Call:
		return c.callIsExpr(n)
	case *ast.Branch:
		return c.isExpr(n.Condition) &&
			(n.Then == nil || c.isExpr(n.Then)) &&
			(n.Else == nil || c.isExpr(n.Else))
	case *ast.NodeList:
		return len(n.Children) == 1 && c.isExpr(n.Children[0])
	case *ast.EmptyArray:
		return c.isExpr(n.Size)
	default:
		return false
	}
}

// storeValue is the unifying primitive behind assignment, return,
// throw, field and array stores and "store into temporary". A simple
// value prints as lvalue + value + ";"; anything else compiles in
// statement form with lvalue as the active target, which the sub-node
// must honor exactly once along exactly one path.
func (c *Compiler) storeValue(lvalue string, value ast.Node) {
	if c.isExpr(value) {
		c.method.Print(lvalue)
		c.compile(value, true)
		c.method.Puts("")
		return
	}
	c.withLvalue(lvalue, func() {
		c.compile(value, true)
	})
}

// storeLiteral stores ready-made expression text into lvalue.
func (c *Compiler) storeLiteral(lvalue, text string) {
	c.method.Puts(lvalue + text)
}

// maybeStore compiles a tail position: store into the active lvalue
// when a value is needed, otherwise compile for effect only.
func (c *Compiler) maybeStore(value ast.Node, expression bool) {
	if expression {
		c.storeValue(c.lvalue, value)
	} else {
		c.compile(value, false)
	}
}

// inlineText renders a simple node to a string without emitting it.
func (c *Compiler) inlineText(n ast.Node) string {
	return c.method.Capture(func() {
		c.compile(n, true)
	})
}

func (c *Compiler) withLvalue(lv string, f func()) {
	prev := c.lvalue
	c.lvalue = lv
	defer func() { c.lvalue = prev }()
	f()
}

func (c *Compiler) withLoop(s loopStrategy, f func()) {
	prev := c.loop
	c.loop = s
	defer func() { c.loop = prev }()
	f()
}

func (c *Compiler) loopExit(n ast.Node, emit func(loopStrategy)) {
	if c.loop == nil {
		c.failNode("loop control statement outside of a loop", n)
	}
	emit(c.loop)
}

// localAssign writes a local, declaring it on first write. In
// expression position the assigned value is also delivered to the
// active lvalue (or rendered in-line when everything is simple).
func (c *Compiler) localAssign(n *ast.LocalAssign, expression bool) {
	if expression && c.isExpr(n) {
		c.method.Print("(" + c.localRef(n.Scope, n.Name) + " = ")
		c.compile(n.Value, true)
		c.method.Print(")")
		return
	}
	c.storeValue(c.assignTarget(n), n.Value)
	if expression {
		c.storeLiteral(c.lvalue, c.localRef(n.Scope, n.Name))
	}
}

// assignTarget builds the lvalue text for a local write, emitting a
// bare declaration first when the value has to split into statements
// (a declaration inside a branch arm would not reach the enclosing
// scope).
func (c *Compiler) assignTarget(n *ast.LocalAssign) string {
	if n.Scope != nil && n.Scope.Captured(n.Name) {
		return c.localRef(n.Scope, n.Name) + " = "
	}
	if !c.method.Local(n.Name) {
		c.method.DeclareLocal(n.Typ, n.Name)
		if c.isExpr(n.Value) {
			return n.Typ.Name + " " + n.Name + " = "
		}
		c.method.Puts(n.Typ.Name + " " + n.Name)
	}
	return n.Name + " = "
}

func (c *Compiler) fieldAssign(n *ast.FieldAssign, expression bool) {
	c.declareField(n)
	target := c.fieldRef(n.Name, n.Static) + " = "
	if expression && c.isExpr(n) {
		c.method.Print("(" + target)
		c.compile(n.Value, true)
		c.method.Print(")")
		return
	}
	c.storeValue(target, n.Value)
	if expression {
		c.storeLiteral(c.lvalue, c.fieldRef(n.Name, n.Static))
	}
}

func (c *Compiler) declareField(n *ast.FieldAssign) {
	c.state.class.DeclareField(n.Typ, n.Name, n.Static, "private", n.Annotations)
}

func (c *Compiler) fieldRef(name string, static bool) string {
	if static {
		return c.selfType.Name + "." + name
	}
	return "this." + name
}

func (c *Compiler) returnNode(n *ast.Return) {
	if n.Value == nil || c.returnType == nil || c.returnType.IsVoid() {
		if n.Value != nil {
			c.compile(n.Value, false)
		}
		c.method.Puts("return")
		return
	}
	c.storeValue("return ", n.Value)
}

// bodyNode compiles a statement sequence; only the last child may carry
// the sequence's value. Children following an exit statement are
// unreachable and emit nothing; Java rejects unreachable statements.
func (c *Compiler) bodyNode(n *ast.NodeList, expression bool) {
	if expression && c.isExpr(n) {
		c.compile(n.Children[0], true)
		return
	}
	if len(n.Children) == 0 {
		if expression {
			c.storeLiteral(c.lvalue, emitter.InitValue(types.Object))
		}
		return
	}
	for i, child := range n.Children {
		if i == len(n.Children)-1 {
			c.maybeStore(child, expression)
		} else {
			c.compile(child, false)
			if terminates(child) {
				return
			}
		}
	}
}

// terminates reports statements control cannot fall out of.
func terminates(n ast.Node) bool {
	switch n.(type) {
	case *ast.Return, *ast.Raise, *ast.Break, *ast.Next, *ast.Redo:
		return true
	}
	return false
}

func (c *Compiler) emptyArray(n *ast.EmptyArray, expression bool) {
	if n.Typ == nil || n.Typ.Component == nil {
		c.failNode("array allocation without an array type", n)
	}
	if !expression {
		c.compile(n.Size, false)
		return
	}
	if !c.isExpr(n) {
		m := *n
		m.Size = c.precompile(n.Size)
		c.storeValue(c.lvalue, &m)
		return
	}
	c.method.Print("new " + n.Typ.Component.Name + "[")
	c.compile(n.Size, true)
	c.method.Print("]")
}

// compileBody compiles a unit body: in expression mode with the
// "return " lvalue when the unit returns a value, otherwise as pure
// statements.
func (c *Compiler) compileBody(body ast.Node, returnType *types.Type) {
	if body == nil {
		body = &ast.Noop{}
	}
	if returnType == nil || returnType.IsVoid() {
		c.compile(body, false)
		return
	}
	c.storeValue("return ", body)
}
