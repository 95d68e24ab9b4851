package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvdan.cc/sh-frontend/ast"
	"mvdan.cc/sh-frontend/config"
	"mvdan.cc/sh-frontend/lexer"
	"mvdan.cc/sh-frontend/parser"
)

func parseSrc(t *testing.T, src string, cfg config.Config) (*ast.TopLevel, []string) {
	t.Helper()
	res := lexer.Lex([]byte(src), cfg)
	top, report := parser.Parse(res.Tokens, res.Heredocs, cfg)
	require.NotNil(t, top)
	var msgs []string
	for _, d := range report.Diagnostics {
		msgs = append(msgs, d.String())
	}
	return top, msgs
}

func firstStatement(t *testing.T, top *ast.TopLevel) ast.Statement {
	t.Helper()
	require.Len(t, top.Items, 1)
	cl, ok := top.Items[0].(*ast.CommandList)
	require.True(t, ok)
	require.NotEmpty(t, cl.Statements)
	return cl.Statements[0]
}

func TestParseSimplePipeline(t *testing.T) {
	// §8 scenario 1
	top, errs := parseSrc(t, "cat file | grep pattern", config.Default())
	assert.Empty(t, errs)

	stmt := firstStatement(t, top)
	aol, ok := stmt.(*ast.AndOrList)
	require.True(t, ok)
	require.Len(t, aol.Pipelines, 1)
	pl := aol.Pipelines[0]
	require.Len(t, pl.Commands, 2)

	sc1 := pl.Commands[0].(*ast.SimpleCommand)
	assert.Equal(t, []string{"cat", "file"}, sc1.Args)
	sc2 := pl.Commands[1].(*ast.SimpleCommand)
	assert.Equal(t, []string{"grep", "pattern"}, sc2.Args)
}

func TestAndOrListOperatorInvariant(t *testing.T) {
	top, _ := parseSrc(t, "a && b || c", config.Default())
	stmt := firstStatement(t, top)
	aol := stmt.(*ast.AndOrList)
	assert.Len(t, aol.Operators, len(aol.Pipelines)-1)
	assert.Equal(t, []string{"&&", "||"}, aol.Operators)
}

func TestParseIfMissingSeparatorStrict(t *testing.T) {
	// §8 scenario 2, STRICT mode raises rather than collecting.
	cfg := config.Default()
	cfg.ErrorHandling = config.Strict
	res := lexer.Lex([]byte("if true then echo hi fi"), cfg)
	_, report := parser.Parse(res.Tokens, res.Heredocs, cfg)
	assert.True(t, report.HasErrors())
}

func TestParseIfMissingSeparatorCollect(t *testing.T) {
	cfg := config.Default()
	cfg.ErrorHandling = config.Collect
	res := lexer.Lex([]byte("if true then echo hi fi"), cfg)
	top, report := parser.Parse(res.Tokens, res.Heredocs, cfg)
	assert.True(t, report.HasErrors())
	assert.NotNil(t, top, "a best-effort partial tree is still returned")
}

func TestParseIfElifElse(t *testing.T) {
	src := `if a; then b; elif c; then d; else e; fi`
	top, errs := parseSrc(t, src, config.Default())
	assert.Empty(t, errs)
	stmt := firstStatement(t, top)
	ifc := stmt.(*ast.AndOrList).Pipelines[0].Commands[0].(*ast.IfConditional)
	require.Len(t, ifc.ElifParts, 1)
	require.NotNil(t, ifc.ElsePart)
}

func TestParseCStyleFor(t *testing.T) {
	// §8 scenario 4
	src := "for ((i=0; i<10; i++)); do echo $i; done"
	top, errs := parseSrc(t, src, config.Default())
	assert.Empty(t, errs)
	stmt := firstStatement(t, top)
	cf := stmt.(*ast.AndOrList).Pipelines[0].Commands[0].(*ast.CStyleForLoop)
	assert.Equal(t, "i=0", cf.Init)
	assert.Equal(t, "i<10", cf.Condition)
	assert.Equal(t, "i++", cf.Update)
	require.Len(t, cf.Body.Statements, 1)
}

func TestParseTraditionalFor(t *testing.T) {
	src := "for x in a b c; do echo $x; done"
	top, errs := parseSrc(t, src, config.Default())
	assert.Empty(t, errs)
	stmt := firstStatement(t, top)
	fl := stmt.(*ast.AndOrList).Pipelines[0].Commands[0].(*ast.ForLoop)
	assert.Equal(t, "x", fl.Variable)
	assert.Len(t, fl.Items, 3)
}

func TestParseCaseTerminators(t *testing.T) {
	src := "case $x in a) echo a;; b) echo b;& c) echo c;;& esac"
	top, errs := parseSrc(t, src, config.Default())
	assert.Empty(t, errs)
	stmt := firstStatement(t, top)
	cc := stmt.(*ast.AndOrList).Pipelines[0].Commands[0].(*ast.CaseConditional)
	require.Len(t, cc.Items, 3)
	assert.Equal(t, ast.TerminatorBreak, cc.Items[0].Terminator)
	assert.Equal(t, ast.TerminatorFallThrough, cc.Items[1].Terminator)
	assert.Equal(t, ast.TerminatorContinueTest, cc.Items[2].Terminator)
}

func TestParseFunctionDefBothForms(t *testing.T) {
	top1, errs1 := parseSrc(t, "function foo { echo hi; }", config.Default())
	assert.Empty(t, errs1)
	fd1 := top1.Items[0].(*ast.CommandList).Statements[0].(*ast.FunctionDef)
	assert.True(t, fd1.BashStyle)
	assert.Equal(t, "foo", fd1.Name)

	top2, errs2 := parseSrc(t, "bar() { echo hi; }", config.Default())
	assert.Empty(t, errs2)
	fd2 := top2.Items[0].(*ast.CommandList).Statements[0].(*ast.FunctionDef)
	assert.False(t, fd2.BashStyle)
	assert.Equal(t, "bar", fd2.Name)
}

func TestParsePipelineComponentExecutionContext(t *testing.T) {
	src := "if a; then b; fi | cat"
	top, errs := parseSrc(t, src, config.Default())
	assert.Empty(t, errs)
	stmt := firstStatement(t, top)
	pl := stmt.(*ast.AndOrList).Pipelines[0]
	require.Len(t, pl.Commands, 2)
	ifc := pl.Commands[0].(*ast.IfConditional)
	assert.Equal(t, ast.PipelineContext, ifc.ExecutionContext())
}

func TestParseStandaloneIfIsStatementContext(t *testing.T) {
	top, errs := parseSrc(t, "if a; then b; fi", config.Default())
	assert.Empty(t, errs)
	stmt := firstStatement(t, top)
	ifc := stmt.(*ast.AndOrList).Pipelines[0].Commands[0].(*ast.IfConditional)
	assert.Equal(t, ast.StatementContext, ifc.ExecutionContext())
}

func TestParseHeredocAttachment(t *testing.T) {
	// §8 scenario 5
	src := "cat <<'END'\n$USER\nEND\n"
	cfg := config.Default()
	res := lexer.Lex([]byte(src), cfg)
	top, report := parser.Parse(res.Tokens, res.Heredocs, cfg)
	assert.Empty(t, report.Diagnostics)
	stmt := top.Items[0].(*ast.CommandList).Statements[0]
	sc := stmt.(*ast.AndOrList).Pipelines[0].Commands[0].(*ast.SimpleCommand)
	require.Len(t, sc.Redirects, 1)
	assert.Equal(t, "$USER\n", sc.Redirects[0].HeredocBody)
	assert.True(t, sc.Redirects[0].HeredocQuoted)
}

func TestParseBraceGroupVsSubshell(t *testing.T) {
	top1, errs1 := parseSrc(t, "{ echo hi; }", config.Default())
	assert.Empty(t, errs1)
	_, ok1 := firstStatement(t, top1).(*ast.AndOrList).Pipelines[0].Commands[0].(*ast.BraceGroup)
	assert.True(t, ok1)

	top2, errs2 := parseSrc(t, "( echo hi )", config.Default())
	assert.Empty(t, errs2)
	_, ok2 := firstStatement(t, top2).(*ast.AndOrList).Pipelines[0].Commands[0].(*ast.SubshellGroup)
	assert.True(t, ok2)
}

func TestParseArrayAssignment(t *testing.T) {
	top, errs := parseSrc(t, "arr=(a b c)", config.Default())
	assert.Empty(t, errs)
	sc := firstStatement(t, top).(*ast.AndOrList).Pipelines[0].Commands[0].(*ast.SimpleCommand)
	require.Len(t, sc.ArrayAssigns, 1)
	assert.Equal(t, "arr", sc.ArrayAssigns[0].Name)
	assert.Len(t, sc.ArrayAssigns[0].Elements, 3)
}

func TestParseEnhancedTest(t *testing.T) {
	top, errs := parseSrc(t, "[[ -f foo.txt ]]", config.Default())
	assert.Empty(t, errs)
	ets := firstStatement(t, top).(*ast.AndOrList).Pipelines[0].Commands[0].(*ast.EnhancedTestStatement)
	ute, ok := ets.Expression.(*ast.UnaryTestExpression)
	require.True(t, ok)
	assert.Equal(t, "-f", ute.Operator)
}

func TestParseNoCycles(t *testing.T) {
	// Smoke test: walking the AST of a reasonably complex program
	// terminates, which would not happen if Walk followed a cycle.
	src := `
f() {
  if [ "$1" = x ]; then
    for i in 1 2 3; do
      while read line; do
        echo "$line" | grep foo && break
      done < file
    done
  fi
}
`
	top, errs := parseSrc(t, src, config.Default())
	assert.Empty(t, errs)
	count := 0
	ast.Walk(walkCounter{count: &count}, top)
	assert.Greater(t, count, 5)
}

type walkCounter struct{ count *int }

func (w walkCounter) Visit(node ast.Node) ast.Visitor {
	if node == nil {
		return nil
	}
	*w.count++
	return w
}
