package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvdan.cc/sh-frontend/check"
	"mvdan.cc/sh-frontend/config"
	"mvdan.cc/sh-frontend/lexer"
	"mvdan.cc/sh-frontend/parser"
)

func validate(t *testing.T, src string) *check.ValidationReport {
	t.Helper()
	cfg := config.Default()
	res := lexer.Lex([]byte(src), cfg)
	top, parseReport := parser.Parse(res.Tokens, res.Heredocs, cfg)
	require.Empty(t, parseReport.GetErrors(), "source must parse cleanly: %v", parseReport.Diagnostics)
	return check.Validate(top, check.DefaultRules(), []byte(src))
}

func hasWarningContaining(issues []check.Issue, substr string) bool {
	for _, i := range issues {
		if i.Severity.String() == "WARNING" && contains(i.Message, substr) {
			return true
		}
	}
	return false
}

func contains(haystack, needle string) bool {
	return len(needle) == 0 || (len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0)
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

func TestBreakOutsideLoopWarns(t *testing.T) {
	// §8 scenario 6
	report := validate(t, "echo start; break; echo end")
	assert.True(t, hasWarningContaining(report.Issues, "break"))
}

func TestContinueOutsideLoopWarns(t *testing.T) {
	report := validate(t, "continue")
	assert.True(t, hasWarningContaining(report.Issues, "continue"))
}

func TestBreakInsideLoopIsSilent(t *testing.T) {
	report := validate(t, "for x in a b; do break; done")
	assert.False(t, hasWarningContaining(report.Issues, "break"))
}

func TestReturnOutsideFunctionWarns(t *testing.T) {
	report := validate(t, "return")
	assert.True(t, hasWarningContaining(report.Issues, "return"))
}

func TestReturnInsideFunctionIsSilent(t *testing.T) {
	report := validate(t, "f() { return 0; }")
	assert.False(t, hasWarningContaining(report.Issues, "return"))
}

func TestDuplicateFunctionDefinitionErrors(t *testing.T) {
	report := validate(t, "f() { :; }\nf() { :; }")
	assert.True(t, report.HasErrors())
}

func TestNonEmptyFunctionBodyDoesNotWarn(t *testing.T) {
	report := validate(t, "f() { :; }")
	_ = report // function has a body (":"), so no empty-body warning expected
	assert.False(t, hasWarningContaining(report.Issues, "empty body"))
}

func TestUnreachableCodeAfterReturnInAllBranches(t *testing.T) {
	// spec.md §9 open question (c): three-way if/elif/else coverage.
	report := validate(t, `
f() {
  if a; then
    return 1
  elif b; then
    return 2
  else
    return 3
  fi
  echo unreachable
}`)
	assert.True(t, hasWarningContaining(report.Issues, "unreachable"))
}

func TestNoUnreachableWarningWhenOneBranchDoesNotTerminate(t *testing.T) {
	report := validate(t, `
f() {
  if a; then
    return 1
  else
    echo not-terminating
  fi
  echo reached
}`)
	assert.False(t, hasWarningContaining(report.Issues, "unreachable"))
}

func TestReadonlyAssignmentWarns(t *testing.T) {
	report := validate(t, "readonly X=1\nX=2")
	assert.True(t, hasWarningContaining(report.Issues, "readonly"))
}

func TestNoEmptyBodyRuleFires(t *testing.T) {
	report := validate(t, "while true; do done")
	assert.True(t, hasWarningContaining(report.Issues, "body is empty"))
}

func TestRuleSetDisable(t *testing.T) {
	rules := check.DefaultRules()
	rules.Disable("no-empty-body")

	cfg := config.Default()
	res := lexer.Lex([]byte("while true; do done"), cfg)
	top, _ := parser.Parse(res.Tokens, res.Heredocs, cfg)

	report := check.Validate(top, rules, nil)
	assert.False(t, hasWarningContaining(report.Issues, "body is empty"))
}

func TestValidationReportSortedOrder(t *testing.T) {
	report := validate(t, "break\nreturn")
	sorted := report.Sorted()
	require.Len(t, sorted, 2)
	assert.LessOrEqual(t, sorted[0].Pos, sorted[1].Pos)
}
