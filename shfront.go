// Package shfront is the root-level convenience API over the three
// pipeline stages (§6.4): tokenize, parse, and validate, plus a combined
// parse_source entry point for callers that don't need the intermediate
// token stream or bare AST. It is grounded on the teacher's own
// root-package wrapper (mvdan.cc/sh/v3's legacy parse.go/tokenize.go),
// which plays the same role over that module's syntax package.
package shfront

import (
	"mvdan.cc/sh-frontend/ast"
	"mvdan.cc/sh-frontend/check"
	"mvdan.cc/sh-frontend/config"
	"mvdan.cc/sh-frontend/diag"
	"mvdan.cc/sh-frontend/lexer"
	"mvdan.cc/sh-frontend/parser"
	"mvdan.cc/sh-frontend/token"
)

// Tokenize runs the lexer stage alone (§4.1). The returned heredocs map
// keys a HEREDOC/HEREDOC_STRIP token's Value to its collected body.
func Tokenize(src []byte, cfg config.Config) ([]token.Token, map[string]string, *diag.Report) {
	res := lexer.Lex(src, cfg)
	return res.Tokens, res.Heredocs, res.Report
}

// Parse runs the parser stage alone (§4.3) over an already-tokenized
// stream, as produced by Tokenize.
func Parse(toks []token.Token, heredocs map[string]string, cfg config.Config) (*ast.TopLevel, *diag.Report) {
	return parser.Parse(toks, heredocs, cfg)
}

// Validate runs the AST validator (§4.5) over an already-parsed tree.
// Semantic analysis and the rule pipeline are each gated by the
// corresponding config toggle.
func Validate(top *ast.TopLevel, cfg config.Config, src []byte) *check.ValidationReport {
	if !cfg.EnableValidation {
		return &check.ValidationReport{}
	}
	var rules *check.RuleSet
	if cfg.EnableValidationRules {
		rules = check.DefaultRules()
	}
	if !cfg.EnableSemanticAnalysis && rules == nil {
		return &check.ValidationReport{}
	}
	if !cfg.EnableSemanticAnalysis {
		report := &check.ValidationReport{}
		rules.Run(top, report)
		return report
	}
	return check.Validate(top, rules, src)
}

// Report bundles the diagnostics produced across all three phases of
// ParseSource behind one view, matching §6.4's "combined_report".
type Report struct {
	Lex        *diag.Report
	Parse      *diag.Report
	Validation *check.ValidationReport
}

// HasErrors reports whether any phase recorded an Error/Fatal diagnostic.
func (r *Report) HasErrors() bool {
	if r.Lex != nil && r.Lex.HasErrors() {
		return true
	}
	if r.Parse != nil && r.Parse.HasErrors() {
		return true
	}
	if r.Validation != nil && r.Validation.HasErrors() {
		return true
	}
	return false
}

// Combined returns every lex and parse diagnostic (validation issues use
// a distinct Issue type and are reached via r.Validation) in source
// order, sorted by (position, severity).
func (r *Report) Combined() []diag.Diagnostic {
	all := &diag.Report{}
	all.Merge(r.Lex)
	all.Merge(r.Parse)
	return all.Sorted()
}

// ParseSource runs the full tokenize -> parse -> validate pipeline in
// one call (§6.4's "parse_source"). The AST is returned even when
// errors were collected (cfg.ErrorHandling != config.Strict), as a
// best-effort partial tree; callers decide whether it's safe to act on.
func ParseSource(src []byte, cfg config.Config) (*ast.TopLevel, *Report) {
	toks, heredocs, lexReport := Tokenize(src, cfg)
	top, parseReport := Parse(toks, heredocs, cfg)

	report := &Report{Lex: lexReport, Parse: parseReport}
	if top != nil {
		report.Validation = Validate(top, cfg, src)
	} else {
		report.Validation = &check.ValidationReport{}
	}
	return top, report
}
