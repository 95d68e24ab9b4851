// Package ast defines the shell abstract syntax tree produced by the
// parser: a disjoint union of statement, command, word, redirect, and
// test-expression node kinds, expressed as tagged interfaces over
// concrete struct types rather than a class hierarchy.
package ast

import "mvdan.cc/sh-frontend/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// TopLevel is the root of a parsed program.
type TopLevel struct {
	Items []TopLevelItem
}

func (t *TopLevel) Pos() token.Pos {
	if len(t.Items) == 0 {
		return 0
	}
	return t.Items[0].Pos()
}

func (t *TopLevel) End() token.Pos {
	if len(t.Items) == 0 {
		return 0
	}
	return t.Items[len(t.Items)-1].End()
}

// TopLevelItem is one of CommandList, FunctionDef, BreakStatement, or
// ContinueStatement appearing directly under the program root.
type TopLevelItem interface {
	Node
	topLevelItemNode()
}

func (*CommandList) topLevelItemNode()      {}
func (*FunctionDef) topLevelItemNode()      {}
func (*BreakStatement) topLevelItemNode()   {}
func (*ContinueStatement) topLevelItemNode() {}

// CommandList is a sequence of statements, e.g. the body of a program,
// a compound-command body, or a function body.
type CommandList struct {
	Statements []Statement
}

func (c *CommandList) Pos() token.Pos {
	if len(c.Statements) == 0 {
		return 0
	}
	return c.Statements[0].Pos()
}

func (c *CommandList) End() token.Pos {
	if len(c.Statements) == 0 {
		return 0
	}
	return c.Statements[len(c.Statements)-1].End()
}

// FunctionDef is a named function declaration: `function NAME [()] body`
// or POSIX `NAME() body`.
type FunctionDef struct {
	NamePos   token.Pos
	Name      string
	BashStyle bool // recognised via `function NAME`, as opposed to `NAME()`
	Body      *CommandList
	EndPos    token.Pos
}

func (f *FunctionDef) Pos() token.Pos { return f.NamePos }
func (f *FunctionDef) End() token.Pos { return f.EndPos }

// BreakStatement is `break [N]`.
type BreakStatement struct {
	Position token.Pos
	Level    int // defaults to 1
}

func (b *BreakStatement) Pos() token.Pos { return b.Position }
func (b *BreakStatement) End() token.Pos { return b.Position + 5 }

// ContinueStatement is `continue [N]`.
type ContinueStatement struct {
	Position token.Pos
	Level    int
}

func (c *ContinueStatement) Pos() token.Pos { return c.Position }
func (c *ContinueStatement) End() token.Pos { return c.Position + 8 }

// ReturnStatement is `return [N]`. It is valid only inside a function
// body; the semantic analyser flags it otherwise.
type ReturnStatement struct {
	Position token.Pos
	Code     Word // optional; zero value means "use last exit status"
	HasCode  bool
}

func (r *ReturnStatement) Pos() token.Pos { return r.Position }
func (r *ReturnStatement) End() token.Pos {
	if r.HasCode {
		return r.Code.End()
	}
	return r.Position + 6
}
