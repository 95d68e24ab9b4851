package check

import (
	"fmt"
	"strings"

	"mvdan.cc/sh-frontend/ast"
	"mvdan.cc/sh-frontend/diag"
	"mvdan.cc/sh-frontend/token"
)

// funcSym is one entry in the global function table.
type funcSym struct {
	Name string
	Pos  token.Pos
	Used bool
}

// varSym is one entry in a variable scope: global, or the body of the
// function currently being walked.
type varSym struct {
	Name     string
	Pos      token.Pos
	ReadOnly bool
	Exported bool
	Used     bool
}

// analyzer is a hand-written recursive-descent tree walker, mirroring
// the shape of a statement interpreter: one method per node kind,
// carrying depth counters and a symbol table instead of runtime state.
type analyzer struct {
	report *ValidationReport

	funcs  map[string]*funcSym
	scopes []map[string]*varSym // scopes[0] is global; deeper entries are function bodies

	loopDepth int
	funcDepth int
	condDepth int
}

func newAnalyzer(report *ValidationReport) *analyzer {
	return &analyzer{
		report: report,
		funcs:  make(map[string]*funcSym),
		scopes: []map[string]*varSym{make(map[string]*varSym)},
	}
}

func (a *analyzer) pushScope() { a.scopes = append(a.scopes, make(map[string]*varSym)) }
func (a *analyzer) popScope()  { a.scopes = a.scopes[:len(a.scopes)-1] }

func (a *analyzer) lookupVar(name string) *varSym {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if v, ok := a.scopes[i][name]; ok {
			return v
		}
	}
	return nil
}

func (a *analyzer) declareVar(name string, pos token.Pos) *varSym {
	scope := a.scopes[len(a.scopes)-1]
	if v, ok := scope[name]; ok {
		return v
	}
	v := &varSym{Name: name, Pos: pos}
	scope[name] = v
	return v
}

// analyzeTopLevel runs the semantic analyser over the whole program,
// reporting into a.report as it goes.
func (a *analyzer) analyzeTopLevel(top *ast.TopLevel) {
	for _, item := range top.Items {
		a.walkTopLevelItem(item)
	}
}

func (a *analyzer) walkTopLevelItem(item ast.TopLevelItem) {
	switch x := item.(type) {
	case *ast.CommandList:
		a.walkCommandList(x)
	case *ast.FunctionDef:
		a.walkFunctionDef(x)
	case *ast.BreakStatement:
		a.checkBreak(x)
	case *ast.ContinueStatement:
		a.checkContinue(x)
	}
}

// walkCommandList walks a statement sequence and reports the first
// statement found after one that unconditionally returns or exits.
// It reports whether the whole sequence itself unconditionally
// terminates, so callers (if/case branches) can propagate that fact.
func (a *analyzer) walkCommandList(cl *ast.CommandList) bool {
	if cl == nil {
		return false
	}
	return a.walkStatements(cl.Statements)
}

func (a *analyzer) walkStatements(stmts []ast.Statement) bool {
	terminated := false
	reported := false
	for _, s := range stmts {
		if terminated && !reported {
			a.report.add(diag.Warning, "semantic", s.Pos(), "unreachable code after 'return'/'exit'", "")
			reported = true
		}
		terminated = a.walkStatement(s)
	}
	return terminated
}

func (a *analyzer) walkStatement(s ast.Statement) bool {
	switch x := s.(type) {
	case *ast.AndOrList:
		return a.walkAndOrList(x)
	case *ast.FunctionDef:
		a.walkFunctionDef(x)
		return false
	case *ast.BreakStatement:
		a.checkBreak(x)
		return false
	case *ast.ContinueStatement:
		a.checkContinue(x)
		return false
	case *ast.ReturnStatement:
		a.checkReturn(x)
		return true
	case ast.UnifiedControlStructure:
		return a.walkControlStructure(x)
	}
	return false
}

func (a *analyzer) walkAndOrList(l *ast.AndOrList) bool {
	// The parser wraps a standalone compound command in a one-pipeline,
	// one-command AndOrList; such a list terminates the sequence exactly
	// when the compound command does.
	if len(l.Pipelines) == 1 && len(l.Pipelines[0].Commands) == 1 {
		if cs, ok := l.Pipelines[0].Commands[0].(ast.UnifiedControlStructure); ok {
			return a.walkControlStructure(cs)
		}
	}
	for _, pl := range l.Pipelines {
		a.walkPipeline(pl)
	}
	// Otherwise only a standalone, unconditional pipeline of a single
	// "exit" call unconditionally terminates the enclosing sequence: once
	// `&&`/`||` chaining is involved, whether the exit call runs depends
	// on the exit status of what came before.
	if len(l.Pipelines) == 1 {
		pl := l.Pipelines[0]
		if len(pl.Commands) == 1 {
			if sc, ok := pl.Commands[0].(*ast.SimpleCommand); ok && isExitCall(sc) {
				return true
			}
		}
	}
	return false
}

func isExitCall(sc *ast.SimpleCommand) bool {
	return len(sc.Args) > 0 && len(sc.ArgTypes) > 0 && sc.ArgTypes[0] == ast.ArgPlain && sc.Args[0] == "exit"
}

func (a *analyzer) walkPipeline(p *ast.Pipeline) {
	for _, cmd := range p.Commands {
		a.walkCommand(cmd)
	}
}

func (a *analyzer) walkCommand(cmd ast.Command) {
	switch x := cmd.(type) {
	case *ast.SimpleCommand:
		a.walkSimpleCommand(x)
	case ast.UnifiedControlStructure:
		a.walkControlStructure(x)
	}
}

// walkControlStructure handles every compound-command kind uniformly,
// whether reached as a statement or as a pipeline component. It reports
// whether the structure unconditionally terminates the enclosing
// sequence, a question only If, Case, and brace groups can answer yes
// to (an exit or return inside a subshell ends only the subshell).
func (a *analyzer) walkControlStructure(cs ast.UnifiedControlStructure) bool {
	switch x := cs.(type) {
	case *ast.IfConditional:
		return a.walkIf(x)
	case *ast.WhileLoop:
		a.walkCommandList(x.Condition)
		a.loopDepth++
		a.walkCommandList(x.Body)
		a.loopDepth--
		return false
	case *ast.UntilLoop:
		a.walkCommandList(x.Condition)
		a.loopDepth++
		a.walkCommandList(x.Body)
		a.loopDepth--
		return false
	case *ast.ForLoop:
		a.loopDepth++
		a.walkCommandList(x.Body)
		a.loopDepth--
		return false
	case *ast.CStyleForLoop:
		a.loopDepth++
		a.walkCommandList(x.Body)
		a.loopDepth--
		return false
	case *ast.CaseConditional:
		return a.walkCase(x)
	case *ast.SelectLoop:
		a.loopDepth++
		a.walkCommandList(x.Body)
		a.loopDepth--
		return false
	case *ast.SubshellGroup:
		a.walkStatements(x.Statements)
		return false
	case *ast.BraceGroup:
		return a.walkStatements(x.Statements)
	case *ast.ArithmeticEvaluation, *ast.EnhancedTestStatement:
		return false
	}
	return false
}

func (a *analyzer) walkIf(x *ast.IfConditional) bool {
	a.condDepth++
	a.walkCommandList(x.Condition)
	thenTerm := a.walkCommandList(x.ThenPart)
	elifTerm := true
	for _, e := range x.ElifParts {
		a.walkCommandList(e.Condition)
		if !a.walkCommandList(e.Body) {
			elifTerm = false
		}
	}
	elseTerm := false
	if x.ElsePart != nil {
		elseTerm = a.walkCommandList(x.ElsePart)
	}
	a.condDepth--
	if x.ElsePart == nil {
		return false
	}
	return thenTerm && elifTerm && elseTerm
}

func (a *analyzer) walkCase(x *ast.CaseConditional) bool {
	a.condDepth++
	allTerm := len(x.Items) > 0
	for _, it := range x.Items {
		if !a.walkCommandList(it.Body) {
			allTerm = false
		}
	}
	a.condDepth--
	return allTerm
}

func (a *analyzer) checkBreak(b *ast.BreakStatement) {
	if a.loopDepth == 0 {
		a.report.add(diag.Warning, "semantic", b.Pos(),
			"break: only meaningful in a 'for', 'while', or 'until' loop", "")
	}
}

func (a *analyzer) checkContinue(c *ast.ContinueStatement) {
	if a.loopDepth == 0 {
		a.report.add(diag.Warning, "semantic", c.Pos(),
			"continue: only meaningful in a 'for', 'while', or 'until' loop", "")
	}
}

func (a *analyzer) checkReturn(r *ast.ReturnStatement) {
	if a.funcDepth == 0 {
		a.report.add(diag.Warning, "semantic", r.Pos(),
			"return: can only be used inside a function body", "")
	}
}

func (a *analyzer) walkFunctionDef(f *ast.FunctionDef) {
	if _, dup := a.funcs[f.Name]; dup {
		a.report.add(diag.Error, "semantic", f.Pos(),
			fmt.Sprintf("duplicate definition of function %q", f.Name), "")
	} else {
		a.funcs[f.Name] = &funcSym{Name: f.Name, Pos: f.Pos()}
	}
	if f.Body == nil || len(f.Body.Statements) == 0 {
		a.report.add(diag.Warning, "semantic", f.Pos(),
			fmt.Sprintf("function %q has an empty body", f.Name), "")
	}
	a.pushScope()
	a.funcDepth++
	a.walkCommandList(f.Body)
	a.funcDepth--
	a.popScope()
}

func (a *analyzer) walkSimpleCommand(sc *ast.SimpleCommand) {
	for _, asg := range sc.Assigns {
		a.recordAssignment(asg)
	}
	for _, arr := range sc.ArrayAssigns {
		a.declareVar(arr.Name, arr.Pos())
	}
	if len(sc.Args) == 0 || len(sc.ArgTypes) == 0 || sc.ArgTypes[0] != ast.ArgPlain {
		return
	}
	switch sc.Args[0] {
	case "readonly":
		a.markNamesFromArgs(sc.Args[1:], true, false)
	case "export":
		a.markNamesFromArgs(sc.Args[1:], false, true)
	}
}

// markNamesFromArgs handles `readonly NAME[=VALUE]...` and
// `export NAME[=VALUE]...`, where the operand words are plain arguments
// (not ASSIGNMENT_WORD tokens: the assignment recogniser only fires in
// command position, and here "readonly"/"export" occupies it).
func (a *analyzer) markNamesFromArgs(args []string, readonly, exported bool) {
	for _, arg := range args {
		name := arg
		if i := strings.IndexByte(arg, '='); i >= 0 {
			name = arg[:i]
		}
		if name == "" || !isShellName(name) {
			continue
		}
		v := a.lookupVar(name)
		if v == nil {
			v = a.declareVar(name, 0)
		}
		if readonly {
			v.ReadOnly = true
		}
		if exported {
			v.Exported = true
		}
	}
}

func (a *analyzer) recordAssignment(asg *ast.Assignment) {
	if v := a.lookupVar(asg.Name); v != nil {
		if v.ReadOnly {
			a.report.add(diag.Warning, "semantic", asg.Pos(),
				fmt.Sprintf("%s: readonly variable", asg.Name), "")
		}
		v.Used = true
		return
	}
	a.declareVar(asg.Name, asg.Pos())
}

func isShellName(s string) bool {
	if s == "" {
		return false
	}
	if !(s[0] == '_' || (s[0] >= 'a' && s[0] <= 'z') || (s[0] >= 'A' && s[0] <= 'Z')) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}
