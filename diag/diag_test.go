package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvdan.cc/sh-frontend/token"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "INFO", Info.String())
	assert.Equal(t, "WARNING", Warning.String())
	assert.Equal(t, "ERROR", Error.String())
	assert.Equal(t, "FATAL", Fatal.String())
	assert.Equal(t, "UNKNOWN", Severity(99).String())
}

func TestCatalogueLookup(t *testing.T) {
	tpl := Lookup("E001")
	assert.Equal(t, "E001", tpl.Code)
	assert.Contains(t, tpl.Message, "then")

	unknown := Lookup("E999")
	assert.Equal(t, "E015", unknown.Code, "unknown codes fall back to the generic E015 template")
}

func TestReportMaxErrorsStopsCollection(t *testing.T) {
	r := &Report{MaxErrors: 2}
	assert.True(t, r.Add(Diagnostic{Severity: Error, Code: "E015"}))
	assert.True(t, r.Add(Diagnostic{Severity: Error, Code: "E015"}))
	assert.False(t, r.ShouldContinue(), "should stop once MaxErrors errors are collected")
}

func TestReportFatalStopsImmediately(t *testing.T) {
	r := &Report{}
	assert.False(t, r.Add(Diagnostic{Severity: Fatal, Code: "E016"}))
	assert.False(t, r.ShouldContinue())
}

func TestReportSortedByPositionThenSeverity(t *testing.T) {
	r := &Report{}
	r.Add(Diagnostic{Pos: 10, Severity: Warning})
	r.Add(Diagnostic{Pos: 5, Severity: Error})
	r.Add(Diagnostic{Pos: 10, Severity: Error})

	sorted := r.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, token.Pos(5), sorted[0].Pos)
	assert.Equal(t, token.Pos(10), sorted[1].Pos)
	assert.Equal(t, Error, sorted[1].Severity, "higher severity sorts first within the same position")
	assert.Equal(t, Warning, sorted[2].Severity)
}

func TestReportMerge(t *testing.T) {
	a := &Report{}
	a.Add(Diagnostic{Pos: 1})
	b := &Report{}
	b.Add(Diagnostic{Pos: 2, Severity: Fatal})

	a.Merge(b)
	assert.Len(t, a.Diagnostics, 2)
	assert.False(t, a.ShouldContinue(), "merging in a fatal diagnostic should propagate the fatal flag")
}

func TestTypoHint(t *testing.T) {
	assert.Equal(t, "while", TypoHint("whille"))
	assert.Equal(t, "", TypoHint(""))
}

func TestContextHint(t *testing.T) {
	hint := ContextHint([]token.Token{{Kind: token.IF}})
	assert.Contains(t, hint, "then")

	assert.Equal(t, "", ContextHint(nil))
}

func TestSuggestPrefersExistingSuggestion(t *testing.T) {
	d := Diagnostic{Suggestion: "already set"}
	out := Suggest(d, []token.Token{{Kind: token.IF}})
	assert.Equal(t, "already set", out.Suggestion)
}

func TestSuggestFillsContextHint(t *testing.T) {
	d := Diagnostic{}
	out := Suggest(d, []token.Token{{Kind: token.WHILE}})
	assert.Contains(t, out.Suggestion, "'do'")
}
