package javasrc

import (
	"fmt"

	"github.com/ejmvar/mirah/internal/ast"
	"github.com/ejmvar/mirah/internal/emitter"
	"github.com/ejmvar/mirah/internal/types"
)

// Generator turns class definitions into Java source files, one
// compilation unit (method or constructor) at a time. A unit either
// renders completely or fails with a located error; a class with any
// failed unit produces no output at all.
type Generator struct {
	errors []CompileError
}

// New creates a generator.
func New() *Generator {
	return &Generator{}
}

// Generate renders one class to Java source. It returns "" when any
// unit failed; Errors reports every accumulated failure.
func (g *Generator) Generate(class *ast.ClassDef) string {
	g.errors = nil
	builder := emitter.NewBuilder(class.Package)
	extends := ""
	if class.Extends != nil {
		extends = class.Extends.Name
	}
	cw := builder.PublicClass(class.Name, extends)
	for _, f := range class.Fields {
		cw.DeclareField(f.Typ, f.Name, f.Static, "private", f.Annotations)
	}
	st := &classState{builder: builder, class: cw}
	selfType := types.Reference(class.Name)

	for i, ctor := range class.Constructors {
		unit := fmt.Sprintf("%s constructor %d", class.Name, i+1)
		g.runUnit(unit, func() {
			g.compileConstructor(st, selfType, ctor)
		})
	}
	for _, m := range class.Methods {
		g.runUnit(class.Name+"."+m.Name, func() {
			g.compileMethod(st, selfType, m)
		})
	}

	if len(g.errors) > 0 {
		return ""
	}
	return builder.String()
}

// runUnit compiles one unit, converting an abort into a recorded error.
// Other panics are programming defects and keep propagating.
func (g *Generator) runUnit(unit string, f func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		a, ok := r.(abort)
		if !ok {
			panic(r)
		}
		a.err.Unit = unit
		g.errors = append(g.errors, *a.err)
	}()
	f()
}

func (g *Generator) compileMethod(st *classState, selfType *types.Type, m *ast.MethodDef) {
	returnType := m.ReturnType
	if returnType == nil {
		returnType = types.Void
	}
	mw := st.class.Method(m.Name, returnType, m.Static, emitterParams(m.Params))
	c := newCompiler(st, mw, returnType, m.Static, selfType)
	c.prepareBinding(m.Scope, m.Params, func() {
		c.compileBody(m.Body, returnType)
	})
}

func (g *Generator) compileConstructor(st *classState, selfType *types.Type, ctor *ast.ConstructorDef) {
	mw := st.class.Constructor(emitterParams(ctor.Params))
	c := newCompiler(st, mw, types.Void, false, selfType)
	if d := ctor.Delegate; d != nil {
		c.delegation(d)
	}
	c.prepareBinding(ctor.Scope, ctor.Params, func() {
		c.compileBody(ctor.Body, types.Void)
	})
}

// delegation emits the constructor's leading super(...) or this(...)
// call. Java requires it to be the first statement, so every argument
// must render in-line; an argument that cannot is a malformed tree.
func (c *Compiler) delegation(d *ast.Delegation) {
	for _, arg := range d.Args {
		if !c.isExpr(arg) {
			c.failNode("constructor delegation argument must be an expression", arg)
		}
	}
	kw := "this"
	if d.Super {
		kw = "super"
	}
	c.method.Print(kw + "(")
	c.renderArgs(d.Args)
	c.method.Print(")")
	c.method.Puts("")
}

// Errors returns the accumulated unit failures, formatted.
func (g *Generator) Errors() []string {
	out := make([]string, len(g.errors))
	for i := range g.errors {
		out[i] = g.errors[i].Error()
	}
	return out
}

// DetailedErrors returns a copy of the raw error records.
func (g *Generator) DetailedErrors() []CompileError {
	out := make([]CompileError, len(g.errors))
	copy(out, g.errors)
	return out
}
