package ast

import "mvdan.cc/sh-frontend/token"

// Pipeline is `['!'] component ('|' component)*`.
type Pipeline struct {
	Negated  bool
	BangPos  token.Pos
	Commands []Command
}

func (p *Pipeline) Pos() token.Pos {
	if p.Negated {
		return p.BangPos
	}
	return p.Commands[0].Pos()
}

func (p *Pipeline) End() token.Pos { return p.Commands[len(p.Commands)-1].End() }

// Command is either a SimpleCommand or any UnifiedControlStructure used
// as a pipeline component.
type Command interface {
	Node
	commandNode()
}

func (*SimpleCommand) commandNode()         {}
func (*IfConditional) commandNode()         {}
func (*WhileLoop) commandNode()             {}
func (*UntilLoop) commandNode()             {}
func (*ForLoop) commandNode()               {}
func (*CStyleForLoop) commandNode()         {}
func (*CaseConditional) commandNode()       {}
func (*SelectLoop) commandNode()            {}
func (*ArithmeticEvaluation) commandNode()  {}
func (*EnhancedTestStatement) commandNode() {}
func (*SubshellGroup) commandNode()         {}
func (*BraceGroup) commandNode()            {}

// ArgType classifies a SimpleCommand argument for quick consumer access
// without re-walking the Word's parts.
type ArgType int

const (
	ArgPlain ArgType = iota
	ArgQuoted
	ArgExpansion
	ArgComposite
)

// ArrayAssignment is `name=(elem elem ...)`, kept separate from regular
// assignment-words because its RHS is a list rather than a single Word.
type ArrayAssignment struct {
	NamePos  token.Pos
	Name     string
	Elements []Word
	EndPos   token.Pos
}

func (a *ArrayAssignment) Pos() token.Pos { return a.NamePos }
func (a *ArrayAssignment) End() token.Pos { return a.EndPos }

// SimpleCommand is a command name plus arguments, leading assignments,
// redirects, and an optional background marker.
type SimpleCommand struct {
	// Words holds argv in source order (Words[0] is the command name,
	// unless the command is assignment-only).
	Words []Word
	// Args is Words rendered for quick literal access by consumers that
	// don't need the full Word AST (populated when every part of a word
	// is a literal).
	Args            []string
	ArgTypes        []ArgType
	QuoteTypes      []byte
	Assigns         []*Assignment
	ArrayAssigns    []*ArrayAssignment
	Redirects       []*Redirect
	Background      bool
	AmpersandPos    token.Pos
}

func (s *SimpleCommand) Pos() token.Pos {
	switch {
	case len(s.Assigns) > 0:
		return s.Assigns[0].Pos()
	case len(s.ArrayAssigns) > 0:
		return s.ArrayAssigns[0].Pos()
	case len(s.Words) > 0:
		return s.Words[0].Pos()
	case len(s.Redirects) > 0:
		return s.Redirects[0].Pos()
	}
	return 0
}

func (s *SimpleCommand) End() token.Pos {
	end := token.Pos(0)
	if len(s.Words) > 0 {
		end = s.Words[len(s.Words)-1].End()
	}
	if len(s.Redirects) > 0 {
		if e := s.Redirects[len(s.Redirects)-1].End(); e > end {
			end = e
		}
	}
	if s.Background {
		end = s.AmpersandPos + 1
	}
	return end
}

// Assignment is `name=value`, `name+=value`, or `name[index]=value`.
type Assignment struct {
	NamePos  token.Pos
	Name     string
	Operator string // "=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>="
	Index    string // array subscript for `name[index]=value`, else ""
	Value    Word
}

func (a *Assignment) Pos() token.Pos { return a.NamePos }
func (a *Assignment) End() token.Pos {
	if len(a.Value.Parts) > 0 {
		return a.Value.End()
	}
	return a.NamePos + token.Pos(len(a.Name))
}
