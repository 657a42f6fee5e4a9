package javasrc

import (
	"strings"
	"testing"

	"github.com/ejmvar/mirah/internal/ast"
	"github.com/ejmvar/mirah/internal/types"
)

func TestGenerateClassSkeleton(t *testing.T) {
	scope := ast.NewScope(nil)
	src := generateClass(t, &ast.ClassDef{
		Package: "com.example",
		Name:    "Greeter",
		Extends: types.Reference("Base"),
		Fields:  []ast.FieldDecl{{Name: "count", Typ: types.Int}},
		Methods: []*ast.MethodDef{method("run", types.Void, scope, &ast.Noop{})},
	})
	wantContains(t, src, "package com.example;")
	wantContains(t, src, "public class Greeter extends Base {")
	wantContains(t, src, "private int count;")
	wantContains(t, src, "public void run() {")
}

func TestStaticMethod(t *testing.T) {
	scope := ast.NewScope(nil)
	src := generateClass(t, &ast.ClassDef{Name: "Test", Methods: []*ast.MethodDef{{
		Name: "main", Static: true, ReturnType: types.Void, Scope: scope, Body: &ast.Noop{},
	}}})
	wantContains(t, src, "public static void main() {")
}

func TestMethodWithoutReturnTypeDefaultsToVoid(t *testing.T) {
	scope := ast.NewScope(nil)
	src := generateClass(t, &ast.ClassDef{Name: "Test", Methods: []*ast.MethodDef{{
		Name: "run", Scope: scope, Body: println(&ast.StrLit{Value: "hi"}),
	}}})
	wantContains(t, src, "public void run() {")
}

func TestConstructorWithDelegation(t *testing.T) {
	scope := ast.NewScope(nil)
	ctor := &ast.ConstructorDef{
		Params:   []ast.Param{{Name: "n", Typ: types.Int}},
		Scope:    scope,
		Delegate: &ast.Delegation{Super: true, Args: []ast.Node{local(scope, "n", types.Int)}},
		Body:     &ast.FieldAssign{Name: "count", Typ: types.Int, Value: local(scope, "n", types.Int)},
	}
	src := generateClass(t, &ast.ClassDef{Name: "Test", Constructors: []*ast.ConstructorDef{ctor}})
	wantOrder(t, src,
		"public Test(int n) {",
		"super(n);",
		"this.count = n;",
	)
	wantContains(t, src, "private int count;")
}

func TestConstructorThisDelegation(t *testing.T) {
	scope := ast.NewScope(nil)
	ctor := &ast.ConstructorDef{
		Scope:    scope,
		Delegate: &ast.Delegation{Args: []ast.Node{intLit(0)}},
		Body:     &ast.Noop{},
	}
	src := generateClass(t, &ast.ClassDef{Name: "Test", Constructors: []*ast.ConstructorDef{ctor}})
	wantContains(t, src, "this(0);")
}

func TestDelegationRejectsNonSimpleArgument(t *testing.T) {
	scope := ast.NewScope(nil)
	ctor := &ast.ConstructorDef{
		Scope:    scope,
		Delegate: &ast.Delegation{Super: true, Args: []ast.Node{seq(println(&ast.StrLit{Value: "x"}), intLit(1))}},
		Body:     &ast.Noop{},
	}
	gen := New()
	out := gen.Generate(&ast.ClassDef{Name: "Test", Constructors: []*ast.ConstructorDef{ctor}})
	if out != "" {
		t.Fatalf("expected no output, got:\n%s", out)
	}
	errs := gen.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0], "constructor delegation argument must be an expression") {
		t.Fatalf("errors=%v", errs)
	}
	if !strings.Contains(errs[0], "Test constructor 1") {
		t.Fatalf("error must name the constructor unit, got %q", errs[0])
	}
}

func TestUnresolvedMemberCallFails(t *testing.T) {
	scope := ast.NewScope(nil)
	body := &ast.Call{Name: "mystery", Typ: types.Int}
	gen := New()
	out := gen.Generate(&ast.ClassDef{Name: "Test", Methods: []*ast.MethodDef{
		method("run", types.Int, scope, body),
	}})
	if out != "" {
		t.Fatalf("expected no output, got:\n%s", out)
	}
	errs := gen.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0], "without a resolved member") {
		t.Fatalf("errors=%v", errs)
	}
	if !strings.Contains(errs[0], "mystery") {
		t.Fatalf("error context must show the offending call, got %q", errs[0])
	}
}

func TestOneFailedUnitSuppressesAllOutput(t *testing.T) {
	scope := ast.NewScope(nil)
	gen := New()
	out := gen.Generate(&ast.ClassDef{Name: "Test", Methods: []*ast.MethodDef{
		method("good", types.Int, scope, intLit(1)),
		method("bad", types.Void, scope, &ast.Break{}),
	}})
	if out != "" {
		t.Fatalf("a class with a failed unit must produce no source, got:\n%s", out)
	}
	if errs := gen.Errors(); len(errs) != 1 || !strings.Contains(errs[0], "Test.bad") {
		t.Fatalf("errors=%v", gen.Errors())
	}
}

func TestErrorsAccumulateAcrossUnits(t *testing.T) {
	scope := ast.NewScope(nil)
	gen := New()
	gen.Generate(&ast.ClassDef{Name: "Test", Methods: []*ast.MethodDef{
		method("first", types.Void, scope, &ast.Break{}),
		method("second", types.Void, scope, &ast.Next{}),
	}})
	errs := gen.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected both failed units reported, got %v", errs)
	}
	wantFirst := "Test.first"
	wantSecond := "Test.second"
	if !strings.Contains(errs[0], wantFirst) || !strings.Contains(errs[1], wantSecond) {
		t.Fatalf("errors must name their units, got %v", errs)
	}
}

func TestDetailedErrors(t *testing.T) {
	scope := ast.NewScope(nil)
	gen := New()
	gen.Generate(&ast.ClassDef{Name: "Test", Methods: []*ast.MethodDef{
		method("run", types.Void, scope, &ast.Break{}),
	}})
	detailed := gen.DetailedErrors()
	if len(detailed) != 1 {
		t.Fatalf("detailed=%v", detailed)
	}
	if detailed[0].Unit != "Test.run" {
		t.Fatalf("unit=%q", detailed[0].Unit)
	}
	if detailed[0].Message == "" || detailed[0].Context == "" {
		t.Fatalf("message and context must be populated, got %+v", detailed[0])
	}
}

func TestGenerateResetsErrorsBetweenRuns(t *testing.T) {
	scope := ast.NewScope(nil)
	gen := New()
	gen.Generate(&ast.ClassDef{Name: "Test", Methods: []*ast.MethodDef{
		method("run", types.Void, scope, &ast.Break{}),
	}})
	if len(gen.Errors()) != 1 {
		t.Fatalf("expected one error, got %v", gen.Errors())
	}
	src := gen.Generate(&ast.ClassDef{Name: "Test", Methods: []*ast.MethodDef{
		method("run", types.Void, scope, &ast.Noop{}),
	}})
	if len(gen.Errors()) != 0 || src == "" {
		t.Fatalf("a clean run must clear earlier errors, errors=%v", gen.Errors())
	}
}

func TestCompileErrorFormatting(t *testing.T) {
	err := &CompileError{Unit: "Test.run", Message: "boom", Context: "x + y"}
	want := "compile error in Test.run: boom (at `x + y`)"
	if err.Error() != want {
		t.Fatalf("Error()=%q, want %q", err.Error(), want)
	}
	bare := &CompileError{Message: "boom"}
	if bare.Error() != "compile error: boom" {
		t.Fatalf("Error()=%q", bare.Error())
	}
}
