package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ejmvar/mirah/internal/debug"
	"github.com/ejmvar/mirah/internal/javasrc"
)

// The front end (parser and type checker) lives outside this tool, so
// the driver demonstrates the back end on built-in typed sample trees.
func main() {
	list := flag.Bool("list", false, "list the available samples")
	showTree := flag.Bool("tree", false, "draw the typed tree before the generated source")
	output := flag.String("o", "", "write generated Java to this file instead of stdout")
	flag.Parse()

	if *list {
		for _, s := range samples {
			fmt.Printf("%-12s %s\n", s.name, s.doc)
		}
		return
	}

	name := "greeter"
	if flag.NArg() > 0 {
		name = flag.Arg(0)
	}
	src, err := generate(name, *showTree, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mirahjc: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(src), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "mirahjc: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(src)
}

// generate compiles the named sample, optionally drawing each method
// body tree to w first.
func generate(name string, showTree bool, w *os.File) (string, error) {
	sample, ok := findSample(name)
	if !ok {
		return "", fmt.Errorf("unknown sample %q (use -list)", name)
	}
	if showTree {
		for _, m := range sample.class.Methods {
			fmt.Fprintf(w, "// %s.%s\n%s\n", sample.class.Name, m.Name, debug.Draw(m.Body))
		}
	}
	gen := javasrc.New()
	src := gen.Generate(sample.class)
	if errs := gen.DetailedErrors(); len(errs) > 0 {
		return "", fmt.Errorf("sample %s: %w", name, &errs[0])
	}
	return src, nil
}

func findSample(name string) (demo, bool) {
	for _, s := range samples {
		if s.name == name {
			return s, true
		}
	}
	return demo{}, false
}
