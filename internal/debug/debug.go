// Package debug renders typed trees in the terminal, which is mostly
// useful for eyeballing what the front end handed the back end.
package debug

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"

	"github.com/ejmvar/mirah/internal/ast"
)

// Draw renders a typed tree as ASCII art.
func Draw(n ast.Node) string {
	t := tree.NewTree(tree.NodeString(label(n)))
	for _, child := range children(n) {
		addSubtree(t, child)
	}
	return t.String()
}

func addSubtree(parent *tree.Tree, n ast.Node) {
	if n == nil {
		return
	}
	t := parent.AddChild(tree.NodeString(label(n)))
	for _, child := range children(n) {
		addSubtree(t, child)
	}
}

func label(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Local:
		return "local " + n.Name
	case *ast.LocalAssign:
		return n.Name + " ="
	case *ast.FieldAccess:
		return "field " + n.Name
	case *ast.FieldAssign:
		return "field " + n.Name + " ="
	case *ast.Call:
		return "call " + n.Name
	case *ast.Branch:
		return "if"
	case *ast.Loop:
		kw := "while"
		if n.Negative {
			kw = "until"
		}
		if n.Post {
			kw += " (post)"
		}
		return kw
	case *ast.Return:
		return "return"
	case *ast.Raise:
		return "raise"
	case *ast.Rescue:
		return "rescue"
	case *ast.Ensure:
		return "ensure"
	case *ast.NodeList:
		return fmt.Sprintf("body[%d]", len(n.Children))
	case *ast.Closure:
		return "closure " + n.Iface.Name
	case *ast.EmptyArray:
		return "new[] " + n.Typ.Name
	case nil:
		return "<nil>"
	default:
		return n.String()
	}
}

func children(n ast.Node) []ast.Node {
	switch n := n.(type) {
	case *ast.LocalAssign:
		return []ast.Node{n.Value}
	case *ast.FieldAssign:
		return []ast.Node{n.Value}
	case *ast.Call:
		kids := make([]ast.Node, 0, len(n.Args)+1)
		if n.Target != nil {
			kids = append(kids, n.Target)
		}
		return append(kids, n.Args...)
	case *ast.Branch:
		kids := []ast.Node{n.Condition, n.Then}
		if n.Else != nil {
			kids = append(kids, n.Else)
		}
		return kids
	case *ast.Loop:
		return []ast.Node{n.Condition, n.Body}
	case *ast.Return:
		if n.Value != nil {
			return []ast.Node{n.Value}
		}
	case *ast.Raise:
		return []ast.Node{n.Value}
	case *ast.Rescue:
		kids := []ast.Node{n.Body}
		for _, cl := range n.Clauses {
			kids = append(kids, cl.Body)
		}
		return kids
	case *ast.Ensure:
		return []ast.Node{n.Body, n.Clause}
	case *ast.NodeList:
		return n.Children
	case *ast.Closure:
		return []ast.Node{n.Body}
	case *ast.EmptyArray:
		return []ast.Node{n.Size}
	}
	return nil
}
