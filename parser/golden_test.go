package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"mvdan.cc/sh-frontend/ast"
	"mvdan.cc/sh-frontend/config"
)

// argDump is a comparable, exported-fields-only projection of a parsed
// program's SimpleCommand argv lists, used so go-cmp never has to cross
// an unexported field (the AST nodes carry a private execCtx on every
// UnifiedControlStructure).
type argDump struct {
	Args       [][]string
	Background []bool
}

func dumpArgs(top *ast.TopLevel) argDump {
	var out argDump
	var visit func(ast.Node) ast.Visitor
	visit = func(node ast.Node) ast.Visitor {
		if node == nil {
			return nil
		}
		if sc, ok := node.(*ast.SimpleCommand); ok {
			out.Args = append(out.Args, append([]string(nil), sc.Args...))
			out.Background = append(out.Background, sc.Background)
		}
		return visitorFunc(visit)
	}
	ast.Walk(visitorFunc(visit), top)
	return out
}

type visitorFunc func(ast.Node) ast.Visitor

func (f visitorFunc) Visit(node ast.Node) ast.Visitor { return f(node) }

// TestGoldenASTStructuralEquality exercises go-cmp for the golden-AST
// style comparisons spec.md §9 ("Testability") recommends: two
// independent parses of the same source must yield the same argv shape.
func TestGoldenASTStructuralEquality(t *testing.T) {
	src := `if true; then echo found arg2; else echo missing; fi | cat &`
	cfg := config.Default()

	top1, errs1 := parseSrc(t, src, cfg)
	require.Empty(t, errs1)
	top2, errs2 := parseSrc(t, src, cfg)
	require.Empty(t, errs2)

	if diff := cmp.Diff(dumpArgs(top1), dumpArgs(top2)); diff != "" {
		t.Fatalf("parsing the same source twice produced different argv shapes (-first +second):\n%s", diff)
	}

	want := argDump{
		Args:       [][]string{{"true"}, {"echo", "found", "arg2"}, {"echo", "missing"}, {"cat"}},
		Background: []bool{false, false, false, true},
	}
	if diff := cmp.Diff(want, dumpArgs(top1)); diff != "" {
		t.Fatalf("unexpected argv shape (-want +got):\n%s", diff)
	}
}
