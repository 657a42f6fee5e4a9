package main

import (
	"github.com/ejmvar/mirah/internal/ast"
	"github.com/ejmvar/mirah/internal/types"
)

type demo struct {
	name  string
	doc   string
	class *ast.ClassDef
}

var samples = []demo{
	{name: "greeter", doc: "conditionals, loops and a field", class: greeterClass()},
	{name: "counter", doc: "a closure capturing and mutating a local", class: counterClass()},
}

// greeterClass exercises branches in expression position, a while loop
// and field state.
func greeterClass() *ast.ClassDef {
	scope := ast.NewScope(nil)
	printMember := &types.Member{
		Name:       "println",
		Kind:       types.KindMethod,
		Static:     true,
		Owner:      types.Reference("System.out"),
		ArgTypes:   []*types.Type{types.String},
		ReturnType: types.Void,
	}
	greeting := func(loud bool) ast.Node {
		if loud {
			return &ast.StrLit{Value: "HELLO"}
		}
		return &ast.StrLit{Value: "hello"}
	}
	return &ast.ClassDef{
		Name:   "Greeter",
		Fields: []ast.FieldDecl{{Name: "count", Typ: types.Int}},
		Methods: []*ast.MethodDef{
			{
				Name:       "greet",
				Params:     []ast.Param{{Name: "loud", Typ: types.Boolean}},
				ReturnType: types.String,
				Scope:      scope,
				Body: &ast.Branch{
					Condition: &ast.Local{Name: "loud", Typ: types.Boolean, Scope: scope},
					Then:      greeting(true),
					Else:      greeting(false),
					Typ:       types.String,
				},
			},
			{
				Name:       "repeat",
				Params:     []ast.Param{{Name: "n", Typ: types.Int}},
				ReturnType: types.Void,
				Scope:      scope,
				Body: &ast.NodeList{Children: []ast.Node{
					&ast.LocalAssign{Name: "i", Typ: types.Int, Scope: scope, Value: &ast.IntLit{Value: 0}},
					&ast.Loop{
						Condition: &ast.Call{
							Target: &ast.Local{Name: "i", Typ: types.Int, Scope: scope},
							Name:   "<",
							Args:   []ast.Node{&ast.Local{Name: "n", Typ: types.Int, Scope: scope}},
							Typ:    types.Boolean,
						},
						Body: &ast.NodeList{Children: []ast.Node{
							&ast.Call{
								Name:   "println",
								Args:   []ast.Node{&ast.StrLit{Value: "hi"}},
								Member: printMember,
								Typ:    types.Void,
							},
							&ast.LocalAssign{
								Name: "i", Typ: types.Int, Scope: scope,
								Value: &ast.Call{
									Target: &ast.Local{Name: "i", Typ: types.Int, Scope: scope},
									Name:   "+",
									Args:   []ast.Node{&ast.IntLit{Value: 1}},
									Typ:    types.Int,
								},
							},
						}},
					},
				}},
			},
		},
	}
}

// counterClass exercises capture containers: a closure increments a
// local of the defining method.
func counterClass() *ast.ClassDef {
	binding := types.Reference("CounterBinding")
	scope := ast.NewScope(nil)
	scope.Capture("total", types.Int, binding)
	runMember := &types.Member{
		Name:       "run",
		Kind:       types.KindMethod,
		ReturnType: types.Void,
	}
	total := func() *ast.Local {
		return &ast.Local{Name: "total", Typ: types.Int, Scope: scope}
	}
	return &ast.ClassDef{
		Name: "Counter",
		Methods: []*ast.MethodDef{
			{
				Name:       "tally",
				ReturnType: types.Int,
				Scope:      scope,
				Body: &ast.NodeList{Children: []ast.Node{
					&ast.LocalAssign{Name: "total", Typ: types.Int, Scope: scope, Value: &ast.IntLit{Value: 0}},
					&ast.LocalAssign{
						Name: "bump", Typ: types.Reference("java.lang.Runnable"), Scope: scope,
						Value: &ast.Closure{
							Scope:  scope,
							Iface:  types.Reference("java.lang.Runnable"),
							Method: runMember,
							Body: &ast.LocalAssign{
								Name: "total", Typ: types.Int, Scope: scope,
								Value: &ast.Call{
									Target: total(),
									Name:   "+",
									Args:   []ast.Node{&ast.IntLit{Value: 1}},
									Typ:    types.Int,
								},
							},
						},
					},
					total(),
				}},
			},
		},
	}
}
