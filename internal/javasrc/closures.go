package javasrc

import (
	"github.com/ejmvar/mirah/internal/ast"
	"github.com/ejmvar/mirah/internal/emitter"
)

// bindingRef is the live handle to a scope's capture container: the
// reference text valid in the current method, plus the container class
// fields are declared on.
type bindingRef struct {
	ref   string
	class *emitter.ClassWriter
}

// prepareBinding allocates the capture container for a scope that needs
// one, copies captured parameters into it, and keeps the container
// reference active only while f runs. The defer clears it on every exit
// path, abnormal exits included.
func (c *Compiler) prepareBinding(scope *ast.Scope, params []ast.Param, f func()) {
	if scope == nil || !scope.HasBinding() {
		f()
		return
	}
	bt := scope.BindingType()
	container := c.state.class.NestedClass(bt.Name, true)
	name := "binding"
	if c.method.Local(name) {
		name = c.method.Tmp(bt)
	} else {
		c.method.DeclareLocal(bt, name)
	}
	c.storeLiteral(bt.Name+" "+name+" = ", "new "+bt.Name+"()")

	ref := &bindingRef{ref: name, class: container}
	c.bindings[scope] = ref
	defer delete(c.bindings, scope)

	// captured parameters start life in the container
	for _, p := range params {
		if scope.Captured(p.Name) {
			container.DeclareField(p.Typ, p.Name, false, "public", nil)
			c.storeLiteral(name+"."+p.Name+" = ", p.Name)
		}
	}
	f()
}

// localRef resolves a variable reference: captured variables read and
// write through their scope's container, everything else is a plain
// local. Container fields are declared on first use; declaring twice is
// a no-op.
func (c *Compiler) localRef(scope *ast.Scope, name string) string {
	if scope == nil || !scope.Captured(name) {
		return name
	}
	owner := scope.OwnerOf(name)
	b := c.bindings[owner]
	if b == nil {
		c.fail("captured variable " + name + " has no active capture container")
	}
	t, _ := scope.CapturedType(name)
	b.class.DeclareField(t, name, false, "public", nil)
	return b.ref + "." + name
}

// closure emits an anonymous-function definition as a nested class
// implementing the closure's interface. The class holds the enclosing
// capture container by reference in a binding field; it never copies
// it, so writes made through any closure are visible to the defining
// scope and to every sibling closure.
func (c *Compiler) closure(n *ast.Closure, expression bool) {
	if !expression {
		// defining a closure has no side effect
		return
	}
	name := c.state.class.AnonName("Closure")
	cw := c.state.class.NestedClass(name, true, n.Iface.Name)

	ctorArg := ""
	owner := n.Scope.NearestBinding()
	if owner != nil {
		b := c.bindings[owner]
		if b == nil {
			c.failNode("closure captures variables but no capture container is active", n)
		}
		bt := owner.BindingType()
		cw.DeclareField(bt, "binding", false, "private final", nil)
		ctor := cw.Constructor([]emitter.Param{{Type: bt, Name: "binding"}})
		ctor.Puts("this.binding = binding")
		ctorArg = b.ref
	}

	c.compileClosureBody(n, cw, owner)

	c.method.Print("new " + name + "(" + ctorArg + ")")
}

// compileClosureBody compiles the closure's method under a nested
// compiler that shares the class state but substitutes its own method
// context. Its binding is received from the closure's field, not
// allocated.
func (c *Compiler) compileClosureBody(n *ast.Closure, cw *emitter.ClassWriter, owner *ast.Scope) {
	returnType := n.Method.Returns()
	mw := cw.Method(n.Method.Name, returnType, false, emitterParams(n.Params))
	child := newCompiler(c.state, mw, returnType, false, c.selfType)
	if owner != nil {
		child.bindings[owner] = &bindingRef{ref: "binding", class: c.bindings[owner].class}
	}
	child.compileBody(n.Body, returnType)
}

func emitterParams(params []ast.Param) []emitter.Param {
	out := make([]emitter.Param, len(params))
	for i, p := range params {
		out[i] = emitter.Param{Type: p.Typ, Name: p.Name}
	}
	return out
}
