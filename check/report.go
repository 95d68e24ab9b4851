// Package check implements the AST validator: a semantic analyser that
// walks the finished tree maintaining a symbol table and control-flow
// depth counters, followed by a registry of independent validation
// rules. Both feed one ValidationReport.
package check

import (
	"fmt"
	"sort"
	"strings"

	"mvdan.cc/sh-frontend/ast"
	"mvdan.cc/sh-frontend/diag"
	"mvdan.cc/sh-frontend/token"
)

// Validate runs the semantic analyser (§4.5.1) and, if rules is
// non-nil, the validation-rule pipeline (§4.5.2) over top, returning one
// combined report. src, if non-nil, is used to resolve line/column
// positions for display.
func Validate(top *ast.TopLevel, rules *RuleSet, src []byte) *ValidationReport {
	report := &ValidationReport{}
	newAnalyzer(report).analyzeTopLevel(top)
	if rules != nil {
		rules.Run(top, report)
	}
	if src != nil {
		for i := range report.Issues {
			report.Issues[i].Position = resolvePosition(src, report.Issues[i].Pos)
		}
	}
	return report
}

// Issue is one finding from the semantic analyser or a validation rule.
type Issue struct {
	Severity diag.Severity
	Message  string
	Pos      token.Pos
	Position token.Position
	Suggestion string
	Source   string // analyser or rule name that produced this issue
}

func (i Issue) String() string {
	loc := i.Position.String()
	msg := fmt.Sprintf("%s [%s] %s: %s", loc, i.Source, i.Severity, i.Message)
	if i.Suggestion != "" {
		msg += " (" + i.Suggestion + ")"
	}
	return msg
}

// ValidationReport accumulates issues produced by validating one AST.
type ValidationReport struct {
	Issues []Issue
}

func (r *ValidationReport) add(sev diag.Severity, source string, pos token.Pos, msg, suggestion string) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Source: source, Pos: pos, Message: msg, Suggestion: suggestion})
}

// HasErrors reports whether any issue at Error severity or above was recorded.
func (r *ValidationReport) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity >= diag.Error {
			return true
		}
	}
	return false
}

// GetErrors returns all Error/Fatal issues.
func (r *ValidationReport) GetErrors() []Issue { return r.filter(diag.Error) }

// GetWarnings returns all Warning issues.
func (r *ValidationReport) GetWarnings() []Issue {
	out := make([]Issue, 0)
	for _, i := range r.Issues {
		if i.Severity == diag.Warning {
			out = append(out, i)
		}
	}
	return out
}

func (r *ValidationReport) filter(min diag.Severity) []Issue {
	out := make([]Issue, 0)
	for _, i := range r.Issues {
		if i.Severity >= min {
			out = append(out, i)
		}
	}
	return out
}

// Sorted returns the issues ordered by (position, severity), descending
// severity within the same position — matching diag.Report's ordering so
// combined-report callers see one consistent convention.
func (r *ValidationReport) Sorted() []Issue {
	out := make([]Issue, len(r.Issues))
	copy(out, r.Issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pos != out[j].Pos {
			return out[i].Pos < out[j].Pos
		}
		return out[i].Severity > out[j].Severity
	})
	return out
}

func (r *ValidationReport) String() string {
	var b strings.Builder
	for _, i := range r.Sorted() {
		b.WriteString(i.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Merge appends another report's issues onto r, in order.
func (r *ValidationReport) Merge(other *ValidationReport) {
	if other == nil {
		return
	}
	r.Issues = append(r.Issues, other.Issues...)
}

func resolvePosition(src []byte, pos token.Pos) token.Position {
	if src == nil {
		return token.Position{Offset: int(pos)}
	}
	line, col := 1, 1
	for i := 0; i < int(pos) && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return token.Position{Offset: int(pos), Line: line, Column: col}
}
