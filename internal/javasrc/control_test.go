package javasrc

import (
	"strings"
	"testing"

	"github.com/ejmvar/mirah/internal/ast"
	"github.com/ejmvar/mirah/internal/types"
)

func TestBranchRendersTernaryWhenSimple(t *testing.T) {
	scope := ast.NewScope(nil)
	flag := ast.Param{Name: "flag", Typ: types.Boolean}
	body := &ast.Branch{
		Condition: local(scope, "flag", types.Boolean),
		Then:      intLit(1),
		Else:      intLit(2),
		Typ:       types.Int,
	}
	src := generateMethod(t, method("run", types.Int, scope, body, flag))
	wantContains(t, src, "return ((flag) ? (1) : (2));")
}

func TestBranchStatementStoresThroughBothArms(t *testing.T) {
	scope := ast.NewScope(nil)
	flag := ast.Param{Name: "flag", Typ: types.Boolean}
	then := seq(println(&ast.StrLit{Value: "yes"}), intLit(1))
	body := &ast.Branch{
		Condition: local(scope, "flag", types.Boolean),
		Then:      then,
		Else:      intLit(2),
		Typ:       types.Int,
	}
	src := generateMethod(t, method("run", types.Int, scope, body, flag))
	wantOrder(t, src, "if (flag) {", "return 1;", "else {", "return 2;")
}

func TestBranchMissingElseYieldsZeroValue(t *testing.T) {
	scope := ast.NewScope(nil)
	flag := ast.Param{Name: "flag", Typ: types.Boolean}
	then := seq(println(&ast.StrLit{Value: "yes"}), intLit(1))
	body := &ast.Branch{
		Condition: local(scope, "flag", types.Boolean),
		Then:      then,
		Typ:       types.Int,
	}
	src := generateMethod(t, method("run", types.Int, scope, body, flag))
	wantOrder(t, src, "if (flag) {", "return 1;", "else {", "return 0;")
}

func TestBranchMissingElseInTernary(t *testing.T) {
	scope := ast.NewScope(nil)
	flag := ast.Param{Name: "flag", Typ: types.Boolean}
	body := &ast.Branch{
		Condition: local(scope, "flag", types.Boolean),
		Then:      &ast.StrLit{Value: "on"},
		Typ:       types.String,
	}
	src := generateMethod(t, method("run", types.String, scope, body, flag))
	wantContains(t, src, "return ((flag) ? (\"on\") : (null));")
}

func TestBranchStatementWithoutElseOmitsElse(t *testing.T) {
	scope := ast.NewScope(nil)
	flag := ast.Param{Name: "flag", Typ: types.Boolean}
	body := &ast.Branch{
		Condition: local(scope, "flag", types.Boolean),
		Then:      println(&ast.StrLit{Value: "yes"}),
		Typ:       types.Void,
	}
	src := generateMethod(t, method("run", types.Void, scope, body, flag))
	wantContains(t, src, "if (flag) {")
	if strings.Contains(src, "else") {
		t.Fatalf("statement branch without an else arm must not emit one, got:\n%s", src)
	}
}

func TestBranchHoistsNonSimpleCondition(t *testing.T) {
	scope := ast.NewScope(nil)
	cond := seq(println(&ast.StrLit{Value: "checking"}), &ast.BoolLit{Value: true})
	body := &ast.Branch{Condition: cond, Then: println(&ast.StrLit{Value: "yes"}), Typ: types.Void}
	src := generateMethod(t, method("run", types.Void, scope, body))
	wantOrder(t, src, "boolean t0;", "t0 = true;", "if (t0) {")
}

func TestDirectWhileLoop(t *testing.T) {
	scope := ast.NewScope(nil)
	i := ast.Param{Name: "i", Typ: types.Int}
	n := ast.Param{Name: "n", Typ: types.Int}
	cond := infix(local(scope, "i", types.Int), "<", local(scope, "n", types.Int), types.Boolean)
	body := &ast.Loop{Condition: cond, Body: println(&ast.StrLit{Value: "hi"})}
	src := generateMethod(t, method("run", types.Void, scope, body, i, n))
	wantContains(t, src, "while ((i < n)) {")
	if strings.Contains(src, "loop1") {
		t.Fatalf("a plain pre-tested loop must not use labels, got:\n%s", src)
	}
}

func TestUntilLoopNegatesPredicate(t *testing.T) {
	scope := ast.NewScope(nil)
	done := ast.Param{Name: "done", Typ: types.Boolean}
	body := &ast.Loop{
		Condition: local(scope, "done", types.Boolean),
		Negative:  true,
		Body:      println(&ast.StrLit{Value: "hi"}),
	}
	src := generateMethod(t, method("run", types.Void, scope, body, done))
	wantContains(t, src, "while (!(done)) {")
}

func TestBreakAndNextInDirectLoop(t *testing.T) {
	scope := ast.NewScope(nil)
	done := ast.Param{Name: "done", Typ: types.Boolean}
	body := &ast.Loop{
		Condition: local(scope, "done", types.Boolean),
		Body: seq(
			&ast.Branch{Condition: local(scope, "done", types.Boolean), Then: &ast.Break{}, Typ: types.Void},
			&ast.Next{},
		),
	}
	src := generateMethod(t, method("run", types.Void, scope, body, done))
	wantContains(t, src, "break;")
	wantContains(t, src, "continue;")
}

func TestRedoableLoopUsesLabels(t *testing.T) {
	scope := ast.NewScope(nil)
	done := ast.Param{Name: "done", Typ: types.Boolean}
	body := &ast.Loop{
		Condition: local(scope, "done", types.Boolean),
		Redoable:  true,
		Body:      seq(println(&ast.StrLit{Value: "work"}), &ast.Redo{}),
	}
	src := generateMethod(t, method("run", types.Void, scope, body, done))
	wantOrder(t, src,
		"loop1: while (true) {",
		"if (!(done)) {",
		"break loop1;",
		"redo2: while (true) {",
		"continue redo2;",
		"break redo2;",
	)
}

func TestPostLoopChecksConditionAfterBody(t *testing.T) {
	scope := ast.NewScope(nil)
	done := ast.Param{Name: "done", Typ: types.Boolean}
	body := &ast.Loop{
		Condition: local(scope, "done", types.Boolean),
		Post:      true,
		Body:      println(&ast.StrLit{Value: "work"}),
	}
	src := generateMethod(t, method("run", types.Void, scope, body, done))
	wantOrder(t, src,
		"loop1: while (true) {",
		"redo2: while (true) {",
		"System.out.println(\"work\");",
		"if (!(done)) {",
		"break loop1;",
	)
}

func TestNextInPostLoopStillReachesCondition(t *testing.T) {
	scope := ast.NewScope(nil)
	done := ast.Param{Name: "done", Typ: types.Boolean}
	body := &ast.Loop{
		Condition: local(scope, "done", types.Boolean),
		Post:      true,
		Body:      &ast.Next{},
	}
	src := generateMethod(t, method("run", types.Void, scope, body, done))
	wantOrder(t, src, "redo2: while (true) {", "break redo2;", "if (!(done)) {")
}

func TestBreakInLabeledLoop(t *testing.T) {
	scope := ast.NewScope(nil)
	done := ast.Param{Name: "done", Typ: types.Boolean}
	body := &ast.Loop{
		Condition: local(scope, "done", types.Boolean),
		Redoable:  true,
		Body:      &ast.Break{},
	}
	src := generateMethod(t, method("run", types.Void, scope, body, done))
	wantContains(t, src, "break loop1;")
}

func TestLoopInExpressionYieldsZeroValue(t *testing.T) {
	scope := ast.NewScope(nil)
	done := ast.Param{Name: "done", Typ: types.Boolean}
	body := &ast.Loop{
		Condition: local(scope, "done", types.Boolean),
		Body:      println(&ast.StrLit{Value: "hi"}),
		Typ:       types.Int,
	}
	src := generateMethod(t, method("run", types.Int, scope, body, done))
	wantOrder(t, src, "while (done) {", "return 0;")
}

func TestLoopControlOutsideLoopFails(t *testing.T) {
	scope := ast.NewScope(nil)
	gen := New()
	out := gen.Generate(&ast.ClassDef{Name: "Test", Methods: []*ast.MethodDef{
		method("run", types.Void, scope, &ast.Break{}),
	}})
	if out != "" {
		t.Fatalf("expected no output, got:\n%s", out)
	}
	errs := gen.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0], "loop control statement outside of a loop") {
		t.Fatalf("errors=%v", errs)
	}
	if !strings.Contains(errs[0], "Test.run") {
		t.Fatalf("error must name the failing unit, got %q", errs[0])
	}
}

func TestRescueStoresOnEveryPath(t *testing.T) {
	scope := ast.NewScope(nil)
	body := &ast.Rescue{
		Body: &ast.StrLit{Value: "ok"},
		Clauses: []*ast.RescueClause{{
			Types: []*types.Type{types.Reference("java.lang.Exception")},
			Name:  "e",
			Body:  &ast.StrLit{Value: "bad"},
		}},
		Typ: types.String,
	}
	src := generateMethod(t, method("run", types.String, scope, body))
	wantOrder(t, src,
		"try {",
		"return \"ok\";",
		"catch (java.lang.Exception e) {",
		"return \"bad\";",
	)
}

func TestRescueClauseWithSeveralTypes(t *testing.T) {
	scope := ast.NewScope(nil)
	body := &ast.Rescue{
		Body: println(&ast.StrLit{Value: "risky"}),
		Clauses: []*ast.RescueClause{{
			Types: []*types.Type{
				types.Reference("java.io.IOException"),
				types.Reference("java.sql.SQLException"),
			},
			Name: "e",
			Body: println(&ast.StrLit{Value: "caught"}),
		}},
		Typ: types.Void,
	}
	src := generateMethod(t, method("run", types.Void, scope, body))
	wantContains(t, src, "catch (java.io.IOException e) {")
	wantContains(t, src, "catch (java.sql.SQLException e) {")
	if got := strings.Count(src, "System.out.println(\"caught\");"); got != 2 {
		t.Fatalf("expected the handler body in each catch block, got %d in:\n%s", got, src)
	}
}

func TestRescueAllocatesNameForAnonymousClause(t *testing.T) {
	scope := ast.NewScope(nil)
	body := &ast.Rescue{
		Body: println(&ast.StrLit{Value: "risky"}),
		Clauses: []*ast.RescueClause{{
			Types: []*types.Type{types.Reference("java.lang.Exception")},
			Body:  println(&ast.StrLit{Value: "caught"}),
		}},
		Typ: types.Void,
	}
	src := generateMethod(t, method("run", types.Void, scope, body))
	wantContains(t, src, "catch (java.lang.Exception t0) {")
}

func TestRescueClauseWithoutTypesFails(t *testing.T) {
	scope := ast.NewScope(nil)
	body := &ast.Rescue{
		Body:    println(&ast.StrLit{Value: "risky"}),
		Clauses: []*ast.RescueClause{{Body: &ast.Noop{}}},
		Typ:     types.Void,
	}
	gen := New()
	out := gen.Generate(&ast.ClassDef{Name: "Test", Methods: []*ast.MethodDef{
		method("run", types.Void, scope, body),
	}})
	if out != "" {
		t.Fatalf("expected no output, got:\n%s", out)
	}
	if errs := gen.Errors(); len(errs) != 1 || !strings.Contains(errs[0], "declares no exception types") {
		t.Fatalf("errors=%v", gen.Errors())
	}
}

func TestEnsureRendersFinally(t *testing.T) {
	scope := ast.NewScope(nil)
	body := &ast.Ensure{
		Body:   &ast.StrLit{Value: "v"},
		Clause: println(&ast.StrLit{Value: "cleanup"}),
		Typ:    types.String,
	}
	src := generateMethod(t, method("run", types.String, scope, body))
	wantOrder(t, src,
		"try {",
		"return \"v\";",
		"finally {",
		"System.out.println(\"cleanup\");",
	)
}
