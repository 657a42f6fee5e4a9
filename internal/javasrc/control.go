package javasrc

import (
	"github.com/ejmvar/mirah/internal/ast"
	"github.com/ejmvar/mirah/internal/emitter"
	"github.com/ejmvar/mirah/internal/types"
)

// branch lowers a conditional. In expression position with simple
// condition and arms it renders as a ternary; otherwise it becomes an
// if/else statement whose arms each store into the active lvalue. A
// missing else arm in expression position still assigns the type's zero
// value, so every path yields a value.
func (c *Compiler) branch(n *ast.Branch, expression bool) {
	if expression && c.isExpr(n) {
		c.method.Print("((")
		c.compile(n.Condition, true)
		c.method.Print(") ? (")
		c.armInline(n.Then, n.Typ)
		c.method.Print(") : (")
		c.armInline(n.Else, n.Typ)
		c.method.Print("))")
		return
	}
	pred := c.precompile(n.Condition)
	c.method.Block("if ("+c.inlineText(pred)+")", func() {
		c.armStatement(n.Then, n.Typ, expression)
	})
	if n.Else != nil || expression {
		c.method.Block("else", func() {
			c.armStatement(n.Else, n.Typ, expression)
		})
	}
}

func (c *Compiler) armInline(arm ast.Node, typ *types.Type) {
	if arm == nil {
		c.method.Print(emitter.InitValue(typ))
		return
	}
	c.compile(arm, true)
}

func (c *Compiler) armStatement(arm ast.Node, typ *types.Type, expression bool) {
	if arm == nil {
		if expression {
			c.storeLiteral(c.lvalue, emitter.InitValue(typ))
		}
		return
	}
	c.maybeStore(arm, expression)
}

// loopStrategy is the active loop's statement vocabulary. The strategy
// is selected per loop; break, next and redo delegate to it.
type loopStrategy interface {
	breakStmt(c *Compiler)
	nextStmt(c *Compiler)
	redoStmt(c *Compiler)
}

// directWhile is the plain while (pred) { body } lowering, usable when
// the loop is pre-tested, cannot redo, and the predicate is simple.
type directWhile struct{}

func (directWhile) breakStmt(c *Compiler) { c.method.Puts("break") }
func (directWhile) nextStmt(c *Compiler)  { c.method.Puts("continue") }
func (directWhile) redoStmt(c *Compiler) {
	c.fail("redo reached a loop compiled without redo support")
}

// labeledLoop is the labelled while(true) lowering supporting post-test
// conditions and mid-body re-entry. The inner label wraps the body when
// present: redo re-enters it, and next in a post-tested loop breaks out
// of it so the trailing condition check still runs.
type labeledLoop struct {
	outer string
	inner string
	post  bool
}

func (g *labeledLoop) breakStmt(c *Compiler) { c.method.Puts("break " + g.outer) }

func (g *labeledLoop) nextStmt(c *Compiler) {
	if g.post {
		c.method.Puts("break " + g.inner)
		return
	}
	c.method.Puts("continue " + g.outer)
}

func (g *labeledLoop) redoStmt(c *Compiler) {
	if g.inner == "" {
		c.fail("redo reached a loop compiled without redo support")
	}
	c.method.Puts("continue " + g.inner)
}

// loopNode lowers a loop, choosing the direct or the general strategy
// from the loop's three source-level properties. A loop has no value of
// its own; in expression position it is followed by a zero-value store.
func (c *Compiler) loopNode(n *ast.Loop, expression bool) {
	if !n.Redoable && !n.Post && c.isExpr(n.Condition) {
		c.directLoop(n)
	} else {
		c.generalLoop(n)
	}
	if expression {
		c.storeLiteral(c.lvalue, emitter.InitValue(n.Type()))
	}
}

func (c *Compiler) directLoop(n *ast.Loop) {
	pred := c.inlineText(n.Condition)
	if n.Negative {
		pred = "!(" + pred + ")"
	}
	c.withLoop(directWhile{}, func() {
		c.method.Block("while ("+pred+")", func() {
			c.compile(n.Body, false)
		})
	})
}

func (c *Compiler) generalLoop(n *ast.Loop) {
	outer := c.method.Label("loop")
	strategy := &labeledLoop{outer: outer, post: n.Post}
	if n.Redoable || n.Post {
		strategy.inner = c.method.Label("redo")
	}
	c.withLoop(strategy, func() {
		c.method.Block(outer+": while (true)", func() {
			if !n.Post {
				c.loopCondition(n, outer)
			}
			if strategy.inner != "" {
				c.method.Block(strategy.inner+": while (true)", func() {
					c.compile(n.Body, false)
					c.method.Puts("break " + strategy.inner)
				})
			} else {
				c.compile(n.Body, false)
			}
			if n.Post {
				c.loopCondition(n, outer)
			}
		})
	})
}

// loopCondition precompiles the predicate and emits the exit check.
func (c *Compiler) loopCondition(n *ast.Loop, outer string) {
	pred := c.precompile(n.Condition)
	text := c.inlineText(pred)
	if !n.Negative {
		text = "!(" + text + ")"
	}
	c.method.Block("if ("+text+")", func() {
		c.method.Puts("break " + outer)
	})
}

// rescue lowers to try/catch with one catch block per declared
// exception type per clause. Body and clauses go through maybeStore, so
// a rescue used as an expression stores into the same target on every
// path.
func (c *Compiler) rescue(n *ast.Rescue, expression bool) {
	c.method.Block("try", func() {
		c.maybeStore(n.Body, expression)
	})
	for _, clause := range n.Clauses {
		if len(clause.Types) == 0 {
			c.failNode("rescue clause declares no exception types", n)
		}
		name := clause.Name
		if name == "" {
			name = c.method.Tmp(types.Reference("java.lang.Throwable"))
		} else {
			c.method.DeclareLocal(clause.Types[0], name)
		}
		for _, exType := range clause.Types {
			c.method.Block("catch ("+exType.Name+" "+name+")", func() {
				c.maybeStore(clause.Body, expression)
			})
		}
	}
}

// ensure lowers to try/finally. The clause runs for effect only; the
// protected body may still feed an enclosing expression.
func (c *Compiler) ensure(n *ast.Ensure, expression bool) {
	c.method.Block("try", func() {
		c.maybeStore(n.Body, expression)
	})
	c.method.Block("finally", func() {
		c.compile(n.Clause, false)
	})
}
