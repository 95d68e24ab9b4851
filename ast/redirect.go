package ast

import "mvdan.cc/sh-frontend/token"

// RedirectOp identifies the specific redirection operator in play; see
// the token kinds in §6.2 of the front-end spec this mirrors.
type RedirectOp int

const (
	RedirIn RedirectOp = iota
	RedirOut
	RedirAppend
	RedirErr
	RedirErrAppend
	RedirDup     // N>&M, N<&M, >&N, <&N
	RedirCloseFD // >&-, <&-
	RedirHeredoc
	RedirHeredocStrip
	RedirHereString
	RedirDupClose
)

// Redirect is one input/output redirection attached to a command or
// compound-command node.
type Redirect struct {
	OpPos token.Pos
	Op    RedirectOp

	SourceFD int  // defaults: 0 for <, 1 for >, 2 for 2>
	HasDupFD bool
	DupFD    int // target of N>&M / N<&M

	Target Word // file path, heredoc delimiter, or here-string word

	HeredocBody    string
	HeredocQuoted  bool // expansions suppressed in the body
	HeredocStrip   bool // <<- : leading tabs stripped
	HereStringQuote byte // quote char in force for <<<, or 0
}

func (r *Redirect) Pos() token.Pos { return r.OpPos }
func (r *Redirect) End() token.Pos {
	if len(r.Target.Parts) > 0 {
		return r.Target.End()
	}
	return r.OpPos
}
