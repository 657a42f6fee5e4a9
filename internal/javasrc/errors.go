package javasrc

import (
	"fmt"
	"strings"

	"github.com/ejmvar/mirah/internal/ast"
)

// CompileError is a fatal failure of one compilation unit. Nothing is
// retried and no partial source is produced for the failed unit.
type CompileError struct {
	Unit    string // method or constructor the failure occurred in
	Message string
	Context string // source-ish rendering of the offending node
}

func (e *CompileError) Error() string {
	msg := "compile error"
	if e.Unit != "" {
		msg += " in " + e.Unit
	}
	msg += ": " + e.Message
	if e.Context != "" {
		msg += fmt.Sprintf(" (at `%s`)", e.Context)
	}
	return msg
}

// abort carries a CompileError up to the unit boundary. Using a panic
// keeps every scoped context override on the way down restorable by
// defer, so a failed unit never leaves partial state behind.
type abort struct {
	err *CompileError
}

func (c *Compiler) failNode(msg string, n ast.Node) {
	ctx := ""
	if n != nil {
		ctx = strings.TrimSpace(n.String())
	}
	panic(abort{&CompileError{Message: msg, Context: ctx}})
}

func (c *Compiler) fail(msg string) {
	panic(abort{&CompileError{Message: msg}})
}
