package ast

import "mvdan.cc/sh-frontend/token"

// ExecContext records whether a control structure was incorporated as a
// standalone statement or as one component of a pipeline. The parser
// sets this at the point of incorporation, once it knows whether a `|`
// follows.
type ExecContext int

const (
	StatementContext ExecContext = iota
	PipelineContext
)

// Statement is a sum of AndOrList, UnifiedControlStructure, and (for
// nested function declarations) FunctionDef.
type Statement interface {
	Node
	statementNode()
}

func (*AndOrList) statementNode()             {}
func (*IfConditional) statementNode()         {}
func (*WhileLoop) statementNode()             {}
func (*UntilLoop) statementNode()             {}
func (*ForLoop) statementNode()               {}
func (*CStyleForLoop) statementNode()         {}
func (*CaseConditional) statementNode()       {}
func (*SelectLoop) statementNode()            {}
func (*ArithmeticEvaluation) statementNode()  {}
func (*EnhancedTestStatement) statementNode() {}
func (*SubshellGroup) statementNode()         {}
func (*BraceGroup) statementNode()            {}
func (*FunctionDef) statementNode()           {}
func (*BreakStatement) statementNode()        {}
func (*ContinueStatement) statementNode()     {}
func (*ReturnStatement) statementNode()       {}

// UnifiedControlStructure is implemented by every compound-command node
// (If/While/Until/For/CStyleFor/Case/Select/Arithmetic/EnhancedTest/
// Subshell/Brace) so that the parser and the word/command layers can
// treat them uniformly where the spec calls for it (e.g. as a Pipeline
// component).
type UnifiedControlStructure interface {
	Statement
	Command
	ExecutionContext() ExecContext
	SetExecutionContext(ExecContext)
}

// AndOrList is `pipeline (('&&'|'||') pipeline)*`.
type AndOrList struct {
	Pipelines []*Pipeline
	Operators []string // "&&" or "||"; len(Operators) == len(Pipelines)-1
}

func (a *AndOrList) Pos() token.Pos { return a.Pipelines[0].Pos() }
func (a *AndOrList) End() token.Pos { return a.Pipelines[len(a.Pipelines)-1].End() }

// IfConditional is `if cond; then body; [elif cond; then body;]* [else body;] fi`.
type IfConditional struct {
	IfPos, FiPos token.Pos
	Condition    *CommandList
	ThenPart     *CommandList
	ElifParts    []*ElifBranch
	ElsePart     *CommandList // nil when absent
	Redirects    []*Redirect
	execCtx      ExecContext
}

// ElifBranch is exactly one condition and one body.
type ElifBranch struct {
	Condition *CommandList
	Body      *CommandList
}

func (c *IfConditional) Pos() token.Pos                   { return c.IfPos }
func (c *IfConditional) End() token.Pos                   { return c.FiPos + 2 }
func (c *IfConditional) ExecutionContext() ExecContext     { return c.execCtx }
func (c *IfConditional) SetExecutionContext(e ExecContext) { c.execCtx = e }

// WhileLoop is `while cond; do body; done`.
type WhileLoop struct {
	WhilePos, DonePos token.Pos
	Condition         *CommandList
	Body              *CommandList
	Redirects         []*Redirect
	execCtx           ExecContext
}

func (w *WhileLoop) Pos() token.Pos                   { return w.WhilePos }
func (w *WhileLoop) End() token.Pos                   { return w.DonePos + 4 }
func (w *WhileLoop) ExecutionContext() ExecContext     { return w.execCtx }
func (w *WhileLoop) SetExecutionContext(e ExecContext) { w.execCtx = e }

// UntilLoop is `until cond; do body; done`.
type UntilLoop struct {
	UntilPos, DonePos token.Pos
	Condition         *CommandList
	Body              *CommandList
	Redirects         []*Redirect
	execCtx           ExecContext
}

func (u *UntilLoop) Pos() token.Pos                   { return u.UntilPos }
func (u *UntilLoop) End() token.Pos                   { return u.DonePos + 4 }
func (u *UntilLoop) ExecutionContext() ExecContext     { return u.execCtx }
func (u *UntilLoop) SetExecutionContext(e ExecContext) { u.execCtx = e }

// ForLoop is the traditional `for name in word...; do body; done`.
type ForLoop struct {
	ForPos, DonePos token.Pos
	Variable        string
	Items           []Word
	ItemQuoteTypes  []byte // quote char in force for each item, or 0
	Body            *CommandList
	Redirects       []*Redirect
	execCtx         ExecContext
}

func (f *ForLoop) Pos() token.Pos                   { return f.ForPos }
func (f *ForLoop) End() token.Pos                   { return f.DonePos + 4 }
func (f *ForLoop) ExecutionContext() ExecContext     { return f.execCtx }
func (f *ForLoop) SetExecutionContext(e ExecContext) { f.execCtx = e }

// CStyleForLoop is `for (( init; cond; update )); do body; done`. Each
// header clause is kept as verbatim arithmetic text; the front-end does
// not evaluate arithmetic.
type CStyleForLoop struct {
	ForPos, DonePos        token.Pos
	Init, Condition, Update string
	Body                   *CommandList
	Redirects              []*Redirect
	execCtx                ExecContext
}

func (c *CStyleForLoop) Pos() token.Pos                   { return c.ForPos }
func (c *CStyleForLoop) End() token.Pos                   { return c.DonePos + 4 }
func (c *CStyleForLoop) ExecutionContext() ExecContext     { return c.execCtx }
func (c *CStyleForLoop) SetExecutionContext(e ExecContext) { c.execCtx = e }

// CaseConditional is `case word in item... esac`.
type CaseConditional struct {
	CasePos, EsacPos token.Pos
	Expr             Word
	Items            []*CaseItem
	Redirects        []*Redirect
	execCtx          ExecContext
}

func (c *CaseConditional) Pos() token.Pos                   { return c.CasePos }
func (c *CaseConditional) End() token.Pos                   { return c.EsacPos + 4 }
func (c *CaseConditional) ExecutionContext() ExecContext     { return c.execCtx }
func (c *CaseConditional) SetExecutionContext(e ExecContext) { c.execCtx = e }

// CaseTerminator distinguishes `;;`, `;&`, and `;;&`.
type CaseTerminator int

const (
	TerminatorBreak     CaseTerminator = iota // ;;  -- no fallthrough
	TerminatorFallThrough                      // ;&  -- unconditional fallthrough
	TerminatorContinueTest                     // ;;& -- continue pattern testing
)

// CaseItem is `[(] pattern ('|' pattern)* ')' commands terminator`.
type CaseItem struct {
	Patterns   []Word
	Body       *CommandList
	Terminator CaseTerminator
}

// SelectLoop is `select name in word...; do body; done`.
type SelectLoop struct {
	SelectPos, DonePos token.Pos
	Variable           string
	Items              []Word
	Body               *CommandList
	Redirects          []*Redirect
	execCtx            ExecContext
}

func (s *SelectLoop) Pos() token.Pos                   { return s.SelectPos }
func (s *SelectLoop) End() token.Pos                   { return s.DonePos + 4 }
func (s *SelectLoop) ExecutionContext() ExecContext     { return s.execCtx }
func (s *SelectLoop) SetExecutionContext(e ExecContext) { s.execCtx = e }

// ArithmeticEvaluation is a standalone `(( expr ))` command.
type ArithmeticEvaluation struct {
	LparenPos, RparenPos token.Pos
	Expression           string
	Redirects            []*Redirect
	execCtx              ExecContext
}

func (a *ArithmeticEvaluation) Pos() token.Pos                   { return a.LparenPos }
func (a *ArithmeticEvaluation) End() token.Pos                   { return a.RparenPos + 2 }
func (a *ArithmeticEvaluation) ExecutionContext() ExecContext     { return a.execCtx }
func (a *ArithmeticEvaluation) SetExecutionContext(e ExecContext) { a.execCtx = e }

// EnhancedTestStatement is a standalone `[[ expr ]]` command.
type EnhancedTestStatement struct {
	LbrackPos, RbrackPos token.Pos
	Expression           TestExpr
	Redirects            []*Redirect
	execCtx              ExecContext
}

func (e *EnhancedTestStatement) Pos() token.Pos                   { return e.LbrackPos }
func (e *EnhancedTestStatement) End() token.Pos                   { return e.RbrackPos + 2 }
func (e *EnhancedTestStatement) ExecutionContext() ExecContext     { return e.execCtx }
func (e *EnhancedTestStatement) SetExecutionContext(ec ExecContext) { e.execCtx = ec }

// SubshellGroup is `( statements )`, run in a nested execution environment.
type SubshellGroup struct {
	LparenPos, RparenPos token.Pos
	Statements           []Statement
	Redirects            []*Redirect
	Background           bool
	execCtx              ExecContext
}

func (s *SubshellGroup) Pos() token.Pos                   { return s.LparenPos }
func (s *SubshellGroup) End() token.Pos                   { return s.RparenPos + 1 }
func (s *SubshellGroup) ExecutionContext() ExecContext     { return s.execCtx }
func (s *SubshellGroup) SetExecutionContext(e ExecContext) { s.execCtx = e }

// BraceGroup is `{ statements; }`, run in the current execution environment.
type BraceGroup struct {
	LbracePos, RbracePos token.Pos
	Statements           []Statement
	Redirects            []*Redirect
	Background           bool
	execCtx              ExecContext
}

func (b *BraceGroup) Pos() token.Pos                   { return b.LbracePos }
func (b *BraceGroup) End() token.Pos                   { return b.RbracePos + 1 }
func (b *BraceGroup) ExecutionContext() ExecContext     { return b.execCtx }
func (b *BraceGroup) SetExecutionContext(e ExecContext) { b.execCtx = e }
