// Package emitter owns all Java source text bookkeeping: lines, braces,
// indentation, field and local declarations, temporary and label names.
// The back end only issues print/puts/block/declare requests; it never
// writes raw newlines or counts braces itself.
package emitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ejmvar/mirah/internal/types"
)

const indentUnit = "  "

// Builder accumulates one generated source file.
type Builder struct {
	pkg     string
	classes []*ClassWriter
}

// NewBuilder creates a file builder for the given package (may be "").
func NewBuilder(pkg string) *Builder {
	return &Builder{pkg: pkg}
}

// PublicClass starts a new top-level public class.
func (b *Builder) PublicClass(name string, extends string) *ClassWriter {
	cw := newClassWriter(name, "public", extends)
	b.classes = append(b.classes, cw)
	return cw
}

// String renders the whole file.
func (b *Builder) String() string {
	var out strings.Builder
	if b.pkg != "" {
		out.WriteString("package " + b.pkg + ";\n\n")
	}
	for _, cw := range b.classes {
		cw.render(&out, 0)
		out.WriteString("\n")
	}
	return out.String()
}

type fieldDecl struct {
	typ         string
	name        string
	modifiers   string
	annotations []string
}

// ClassWriter accumulates one class: fields, constructors, methods and
// nested classes (capture containers and closure classes end up here).
type ClassWriter struct {
	name       string
	modifiers  string
	extends    string
	implements []string
	fields     []fieldDecl
	fieldSet   map[string]bool
	methods    []*MethodWriter
	nested     []*ClassWriter
	nestedSet  map[string]*ClassWriter
	anonCount  int
}

func newClassWriter(name, modifiers, extends string) *ClassWriter {
	return &ClassWriter{
		name:      name,
		modifiers: modifiers,
		extends:   extends,
		fieldSet:  make(map[string]bool),
		nestedSet: make(map[string]*ClassWriter),
	}
}

// Name returns the class name as usable in generated source.
func (c *ClassWriter) Name() string { return c.name }

// DeclareField declares a field once; repeated declarations of the same
// name are ignored, which is what capture containers rely on.
func (c *ClassWriter) DeclareField(typ *types.Type, name string, static bool, visibility string, annotations []string) {
	if c.fieldSet[name] {
		return
	}
	c.fieldSet[name] = true
	mods := visibility
	if static {
		if mods != "" {
			mods += " "
		}
		mods += "static"
	}
	c.fields = append(c.fields, fieldDecl{typ: typ.Name, name: name, modifiers: mods, annotations: annotations})
}

// HasField reports whether a field name is already declared.
func (c *ClassWriter) HasField(name string) bool { return c.fieldSet[name] }

// NestedClass returns the named nested class, creating it on first use.
func (c *ClassWriter) NestedClass(name string, static bool, implements ...string) *ClassWriter {
	if cw, ok := c.nestedSet[name]; ok {
		return cw
	}
	mods := "public"
	if static {
		mods += " static"
	}
	cw := newClassWriter(name, mods, "")
	cw.implements = implements
	c.nestedSet[name] = cw
	c.nested = append(c.nested, cw)
	return cw
}

// AnonName allocates a fresh nested class name with the given prefix.
func (c *ClassWriter) AnonName(prefix string) string {
	c.anonCount++
	return fmt.Sprintf("%s%d", prefix, c.anonCount)
}

// Method starts a method body writer. Parameters count as declared
// locals from the start.
func (c *ClassWriter) Method(name string, returnType *types.Type, static bool, params []Param) *MethodWriter {
	mods := "public"
	if static {
		mods += " static"
	}
	header := fmt.Sprintf("%s %s %s(%s)", mods, returnType.Name, name, renderParams(params))
	return c.addMethod(header, params)
}

// Constructor starts a constructor body writer.
func (c *ClassWriter) Constructor(params []Param) *MethodWriter {
	header := fmt.Sprintf("public %s(%s)", c.name, renderParams(params))
	return c.addMethod(header, params)
}

func (c *ClassWriter) addMethod(header string, params []Param) *MethodWriter {
	mw := &MethodWriter{header: header, locals: make(map[string]bool)}
	for _, p := range params {
		mw.locals[p.Name] = true
	}
	c.methods = append(c.methods, mw)
	return mw
}

// Param is a rendered parameter declaration.
type Param struct {
	Type *types.Type
	Name string
}

func renderParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type.Name + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

func (c *ClassWriter) render(out *strings.Builder, depth int) {
	ind := strings.Repeat(indentUnit, depth)
	header := ind
	if c.modifiers != "" {
		header += c.modifiers + " "
	}
	header += "class " + c.name
	if c.extends != "" {
		header += " extends " + c.extends
	}
	if len(c.implements) > 0 {
		header += " implements " + strings.Join(c.implements, ", ")
	}
	out.WriteString(header + " {\n")
	inner := ind + indentUnit
	for _, f := range c.fields {
		for _, a := range f.annotations {
			out.WriteString(inner + a + "\n")
		}
		mods := f.modifiers
		if mods != "" {
			mods += " "
		}
		out.WriteString(fmt.Sprintf("%s%s%s %s;\n", inner, mods, f.typ, f.name))
	}
	if len(c.fields) > 0 && (len(c.methods) > 0 || len(c.nested) > 0) {
		out.WriteString("\n")
	}
	for i, m := range c.methods {
		if i > 0 {
			out.WriteString("\n")
		}
		m.render(out, depth+1)
	}
	for _, n := range c.nested {
		out.WriteString("\n")
		n.render(out, depth+1)
	}
	out.WriteString(ind + "}\n")
}

// MethodWriter accumulates one method or constructor body as a request
// stream: print builds up the current line, puts terminates a
// statement, block brackets nested requests in braces.
type MethodWriter struct {
	header     string
	lines      []string
	indent     int
	cur        strings.Builder
	locals     map[string]bool
	tmpCount   int
	labelCount int
}

// Print appends text to the statement being built.
func (m *MethodWriter) Print(text string) {
	m.cur.WriteString(text)
}

// Puts appends text, terminates the statement and ends the line.
func (m *MethodWriter) Puts(text string) {
	m.cur.WriteString(text)
	m.cur.WriteString(";")
	m.flush()
}

func (m *MethodWriter) flush() {
	m.lines = append(m.lines, strings.Repeat(indentUnit, m.indent)+m.cur.String())
	m.cur.Reset()
}

// Block emits header and an open brace, runs body with one more level
// of indentation, then closes the brace.
func (m *MethodWriter) Block(header string, body func()) {
	m.cur.WriteString(header + " {")
	m.flush()
	m.indent++
	body()
	m.indent--
	m.cur.WriteString("}")
	m.flush()
}

// DeclareLocal records a name as a declared local. The declaration text
// itself is printed by the caller, so declarations always carry their
// initializer.
func (m *MethodWriter) DeclareLocal(typ *types.Type, name string) {
	m.locals[name] = true
}

// Local reports whether name is a declared local or parameter.
func (m *MethodWriter) Local(name string) bool {
	return m.locals[name]
}

// Tmp allocates a fresh temporary local of the given type and returns
// its name. The caller prints the declaration.
func (m *MethodWriter) Tmp(typ *types.Type) string {
	for {
		name := fmt.Sprintf("t%d", m.tmpCount)
		m.tmpCount++
		if !m.locals[name] {
			m.locals[name] = true
			return name
		}
	}
}

// Label allocates a fresh statement label with the given prefix.
func (m *MethodWriter) Label(prefix string) string {
	m.labelCount++
	return fmt.Sprintf("%s%d", prefix, m.labelCount)
}

// Capture redirects Print output to a string. The callback must only
// print; emitting a full statement inside a capture is a coding defect.
func (m *MethodWriter) Capture(f func()) string {
	saved := m.cur.String()
	m.cur.Reset()
	f()
	out := m.cur.String()
	m.cur.Reset()
	m.cur.WriteString(saved)
	return out
}

// Locals returns the declared local names, sorted; test helper.
func (m *MethodWriter) Locals() []string {
	names := make([]string, 0, len(m.locals))
	for n := range m.locals {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (m *MethodWriter) render(out *strings.Builder, depth int) {
	ind := strings.Repeat(indentUnit, depth)
	out.WriteString(ind + m.header + " {\n")
	for _, line := range m.lines {
		out.WriteString(ind + indentUnit + line + "\n")
	}
	out.WriteString(ind + "}\n")
}

// InitValue returns the Java literal for a type's zero value: the
// default used to complete an expression-position branch lacking an arm.
func InitValue(t *types.Type) string {
	if t == nil || !t.Primitive {
		return "null"
	}
	switch t.Name {
	case "boolean":
		return "false"
	case "float":
		return "0.0f"
	case "double":
		return "0.0"
	case "long":
		return "0L"
	case "char":
		return "'\\0'"
	case "void":
		return ""
	default:
		return "0"
	}
}
