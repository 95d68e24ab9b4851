package check

import (
	"fmt"

	"mvdan.cc/sh-frontend/ast"
	"mvdan.cc/sh-frontend/diag"
	"mvdan.cc/sh-frontend/token"
)

// Rule is one independent validation rule (§4.5.2): invoked on every AST
// node, it may append zero or more issues to the report.
type Rule interface {
	Name() string
	Check(node ast.Node, report *ValidationReport)
}

// RuleSet is a registry of named rules, each enabled or disabled
// independently, walked over the AST once.
type RuleSet struct {
	rules   []Rule
	enabled map[string]bool
}

// NewRuleSet returns an empty registry. Use DefaultRules for the
// standard set described in §4.5.2.
func NewRuleSet() *RuleSet {
	return &RuleSet{enabled: make(map[string]bool)}
}

// Register adds a rule, enabled by default.
func (rs *RuleSet) Register(r Rule) {
	rs.rules = append(rs.rules, r)
	rs.enabled[r.Name()] = true
}

// Disable turns a rule off by name; unknown names are a no-op.
func (rs *RuleSet) Disable(name string) { rs.enabled[name] = false }

// Enable turns a rule back on by name.
func (rs *RuleSet) Enable(name string) { rs.enabled[name] = true }

// Run walks top, invoking every enabled rule on every node.
func (rs *RuleSet) Run(top *ast.TopLevel, report *ValidationReport) {
	if top == nil {
		return
	}
	active := make([]Rule, 0, len(rs.rules))
	for _, r := range rs.rules {
		if rs.enabled[r.Name()] {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return
	}
	ast.Walk(ruleVisitor{active: active, report: report}, top)
}

type ruleVisitor struct {
	active []Rule
	report *ValidationReport
}

func (v ruleVisitor) Visit(node ast.Node) ast.Visitor {
	if node == nil {
		return nil
	}
	for _, r := range v.active {
		r.Check(node, v.report)
	}
	return v
}

// DefaultRules returns the six rules named in §4.5.2: no empty
// loop/if/case body, valid redirect target and fd range 0-9,
// break/continue level of at least 1, function name validity, non-empty
// arithmetic and test expressions, and valid variable name in
// assignments.
func DefaultRules() *RuleSet {
	rs := NewRuleSet()
	rs.Register(noEmptyBodyRule{})
	rs.Register(validRedirectTargetRule{})
	rs.Register(breakContinueContextRule{})
	rs.Register(functionNameValidityRule{})
	rs.Register(nonEmptyExpressionRule{})
	rs.Register(validAssignmentNameRule{})
	return rs
}

// --- no-empty-body ---------------------------------------------------

type noEmptyBodyRule struct{}

func (noEmptyBodyRule) Name() string { return "no-empty-body" }

func (noEmptyBodyRule) Check(node ast.Node, report *ValidationReport) {
	empty := func(cl *ast.CommandList) bool { return cl == nil || len(cl.Statements) == 0 }
	switch x := node.(type) {
	case *ast.IfConditional:
		if empty(x.ThenPart) {
			report.add(diag.Warning, "no-empty-body", x.Pos(), "'if' body is empty", "")
		}
	case *ast.WhileLoop:
		if empty(x.Body) {
			report.add(diag.Warning, "no-empty-body", x.Pos(), "'while' body is empty", "")
		}
	case *ast.UntilLoop:
		if empty(x.Body) {
			report.add(diag.Warning, "no-empty-body", x.Pos(), "'until' body is empty", "")
		}
	case *ast.ForLoop:
		if empty(x.Body) {
			report.add(diag.Warning, "no-empty-body", x.Pos(), "'for' body is empty", "")
		}
	case *ast.CStyleForLoop:
		if empty(x.Body) {
			report.add(diag.Warning, "no-empty-body", x.Pos(), "'for ((...))' body is empty", "")
		}
	case *ast.SelectLoop:
		if empty(x.Body) {
			report.add(diag.Warning, "no-empty-body", x.Pos(), "'select' body is empty", "")
		}
	case *ast.CaseConditional:
		if len(x.Items) == 0 {
			report.add(diag.Warning, "no-empty-body", x.Pos(), "'case' has no items", "")
		}
	}
}

// --- valid-redirect-target --------------------------------------------

type validRedirectTargetRule struct{}

func (validRedirectTargetRule) Name() string { return "valid-redirect-target" }

func (validRedirectTargetRule) Check(node ast.Node, report *ValidationReport) {
	r, ok := node.(*ast.Redirect)
	if !ok {
		return
	}
	if r.SourceFD < 0 || r.SourceFD > 9 {
		report.add(diag.Error, "valid-redirect-target", r.Pos(),
			fmt.Sprintf("redirect file descriptor %d out of range 0-9", r.SourceFD), "")
	}
	if r.HasDupFD && (r.DupFD < 0 || r.DupFD > 9) {
		report.add(diag.Error, "valid-redirect-target", r.Pos(),
			fmt.Sprintf("redirect dup target %d out of range 0-9", r.DupFD), "")
	}
	switch r.Op {
	case ast.RedirHeredoc, ast.RedirHeredocStrip:
		return // target is a delimiter word, not a path; always non-empty by construction
	}
	if r.Op != ast.RedirCloseFD && r.Op != ast.RedirDupClose && len(r.Target.Parts) == 0 {
		report.add(diag.Error, "valid-redirect-target", r.Pos(), "redirect has an empty target", "")
	}
}

// --- break-continue-context --------------------------------------------
// Checks only that a break/continue level is at least 1. The rule sees
// one node at a time and does not check whether the statement sits
// inside a loop; that check is made only by the semantic analyser
// (checkBreak/checkContinue), so it is absent when semantic analysis is
// disabled.

type breakContinueContextRule struct{}

func (breakContinueContextRule) Name() string { return "break-continue-context" }

func (breakContinueContextRule) Check(node ast.Node, report *ValidationReport) {
	switch x := node.(type) {
	case *ast.BreakStatement:
		if x.Level < 1 {
			report.add(diag.Warning, "break-continue-context", x.Pos(), "break: level must be >= 1", "")
		}
	case *ast.ContinueStatement:
		if x.Level < 1 {
			report.add(diag.Warning, "break-continue-context", x.Pos(), "continue: level must be >= 1", "")
		}
	}
}

// --- function-name-validity --------------------------------------------

type functionNameValidityRule struct{}

func (functionNameValidityRule) Name() string { return "function-name-validity" }

func (functionNameValidityRule) Check(node ast.Node, report *ValidationReport) {
	f, ok := node.(*ast.FunctionDef)
	if !ok {
		return
	}
	if f.Name == "" {
		return
	}
	if f.Name[0] >= '0' && f.Name[0] <= '9' {
		report.add(diag.Error, "function-name-validity", f.Pos(),
			fmt.Sprintf("function name %q may not start with a digit", f.Name), "")
		return
	}
	if _, isKeyword := token.LookupKeyword(f.Name); isKeyword {
		report.add(diag.Error, "function-name-validity", f.Pos(),
			fmt.Sprintf("function name %q is a shell keyword", f.Name), "")
		return
	}
	if !isShellName(f.Name) {
		report.add(diag.Error, "function-name-validity", f.Pos(),
			fmt.Sprintf("function name %q is not a valid identifier", f.Name), "")
	}
}

// --- non-empty-expression --------------------------------------------

type nonEmptyExpressionRule struct{}

func (nonEmptyExpressionRule) Name() string { return "non-empty-expression" }

func (nonEmptyExpressionRule) Check(node ast.Node, report *ValidationReport) {
	switch x := node.(type) {
	case *ast.ArithmeticEvaluation:
		if isBlank(x.Expression) {
			report.add(diag.Error, "non-empty-expression", x.Pos(), "arithmetic expression is empty", "")
		}
	case *ast.EnhancedTestStatement:
		if x.Expression == nil {
			report.add(diag.Error, "non-empty-expression", x.Pos(), "test expression is empty", "")
		}
	}
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

// --- valid-assignment-name --------------------------------------------

type validAssignmentNameRule struct{}

func (validAssignmentNameRule) Name() string { return "valid-assignment-name" }

func (validAssignmentNameRule) Check(node ast.Node, report *ValidationReport) {
	a, ok := node.(*ast.Assignment)
	if !ok {
		return
	}
	if !isShellName(a.Name) {
		report.add(diag.Error, "valid-assignment-name", a.Pos(),
			fmt.Sprintf("%q is not a valid variable name", a.Name), "")
	}
}
