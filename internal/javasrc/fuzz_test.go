package javasrc

import (
	"strings"
	"testing"

	"github.com/ejmvar/mirah/internal/ast"
	"github.com/ejmvar/mirah/internal/types"
)

// FuzzGenerateNoPanic ensures the generator either renders a class or
// records errors; it must never panic, whatever literal values and
// names reach it.
func FuzzGenerateNoPanic(f *testing.F) {
	f.Add("greet", "hello \"world\"\n", int64(42))
	f.Add("", "", int64(0))
	f.Add("run", "tab\tand\\slash", int64(-1))
	f.Add("x", "\x00\x7f", int64(1<<40))

	f.Fuzz(func(t *testing.T, name, text string, number int64) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("generator panicked for (%q, %q, %d): %v", name, text, number, r)
			}
		}()

		scope := ast.NewScope(nil)
		body := seq(
			&ast.LocalAssign{Name: "s", Typ: types.String, Scope: scope, Value: &ast.StrLit{Value: text}},
			println(local(scope, "s", types.String)),
			infix(&ast.IntLit{Value: number}, "+", &ast.LongLit{Value: number}, types.Long),
		)
		gen := New()
		src := gen.Generate(&ast.ClassDef{Name: "Test", Methods: []*ast.MethodDef{{
			Name: "m" + name, ReturnType: types.Long, Scope: scope, Body: body,
		}}})
		if len(gen.Errors()) == 0 && src == "" {
			t.Fatalf("no errors but no source either for (%q, %q, %d)", name, text, number)
		}
		if src != "" && strings.ContainsAny(src, "\x00") {
			t.Fatalf("raw NUL in generated source for %q", text)
		}
	})
}
