package javasrc

import (
	"github.com/ejmvar/mirah/internal/ast"
)

// precompile guarantees a node's value is computed exactly once even
// when its text would otherwise appear more than once. A simple node
// passes through unchanged; anything else is evaluated now, in source
// order, into a fresh temporary local.
func (c *Compiler) precompile(n ast.Node) ast.Node {
	if c.isExpr(n) {
		return n
	}
	return c.forceTemp(n)
}

// precompileAll hoists an ordered sibling list. When every sibling is
// simple, nothing moves. Otherwise every non-constant sibling is forced
// into a temporary in source order, so a hoisted sibling can never
// observe effects of a later one. nil entries pass through.
func (c *Compiler) precompileAll(nodes []ast.Node) []ast.Node {
	simple := true
	for _, n := range nodes {
		if n != nil && !c.isExpr(n) {
			simple = false
			break
		}
	}
	if simple {
		return nodes
	}
	out := make([]ast.Node, len(nodes))
	for i, n := range nodes {
		if n == nil || isConstant(n) {
			out[i] = n
			continue
		}
		out[i] = c.forceTemp(n)
	}
	return out
}

// forceTemp evaluates a node into a fresh typed temporary and returns
// the placeholder standing for the stored value.
func (c *Compiler) forceTemp(n ast.Node) ast.Node {
	if tv, ok := n.(*ast.TempValue); ok {
		return tv
	}
	t := n.Type()
	if t == nil || t.IsVoid() {
		c.failNode("cannot hoist a valueless expression", n)
	}
	name := c.method.Tmp(t)
	if c.isExpr(n) {
		c.method.Print(t.Name + " " + name + " = ")
		c.compile(n, true)
		c.method.Puts("")
	} else {
		c.method.Puts(t.Name + " " + name)
		c.storeValue(name+" = ", n)
	}
	return &ast.TempValue{Name: name, Typ: t}
}

// isConstant reports nodes whose rendered text always yields the same
// value, making them safe to leave in place during hoisting.
func isConstant(n ast.Node) bool {
	switch n.(type) {
	case *ast.IntLit, *ast.LongLit, *ast.FloatLit, *ast.DoubleLit,
		*ast.BoolLit, *ast.CharLit, *ast.StrLit, *ast.NullLit,
		*ast.Self, *ast.TempValue:
		return true
	}
	return false
}
