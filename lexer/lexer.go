// Package lexer implements the shell front-end's tokenizer: a
// line-oriented driver that dispatches to a priority-ordered table of
// recognisers (assignment, operator, expansion, quoted-string, word,
// heredoc-introducer), tracks bracket/quote/expansion balance, collects
// heredoc bodies, and normalises keywords in command position.
package lexer

import (
	"mvdan.cc/sh-frontend/config"
	"mvdan.cc/sh-frontend/diag"
	"mvdan.cc/sh-frontend/token"
)

// Result is everything Lex produces: the token stream, the collected
// heredoc bodies keyed by the introducer's delimiter key, and the
// lex-phase diagnostic report.
type Result struct {
	Tokens   []token.Token
	Heredocs map[string]string
	Report   *diag.Report
}

type lexer struct {
	src []byte
	pos int
	cfg config.Config

	tokens []token.Token
	report *diag.Report

	commandPos bool // true when the next word begins a new simple command

	brackets  bracketStack
	heredocs  *heredocState
}

// Lex tokenizes source under cfg. Every byte of src is accounted for by
// exactly one token's span or by skipped whitespace, comments, or
// heredoc bodies; the returned token slice always ends with an EOF token.
func Lex(src []byte, cfg config.Config) Result {
	l := &lexer{
		src:        src,
		cfg:        cfg,
		report:     &diag.Report{MaxErrors: cfg.MaxErrors},
		commandPos: true,
		heredocs:   newHeredocState(),
	}
	l.brackets.report = l.report

	for l.pos < len(l.src) {
		l.skipBlanks()
		if l.pos >= len(l.src) {
			break
		}
		switch {
		case l.src[l.pos] == '\n':
			l.emitNewline()
		case l.src[l.pos] == '#' && l.atWordStart():
			l.skipComment()
		default:
			l.scanOne()
		}
	}

	l.brackets.reportUnclosed(l.tokens)
	l.emit(token.Token{Kind: token.EOF, Start: token.Pos(len(l.src)), End: token.Pos(len(l.src)), Meta: token.Metadata{PairedIndex: -1}})

	normalizeKeywords(l.tokens)
	normalizeTestOperators(l.tokens)
	computeLineColumns(l.src, l.tokens)

	return Result{Tokens: l.tokens, Heredocs: l.heredocs.bodies, Report: l.report}
}

func (l *lexer) emit(t token.Token) {
	if t.Meta.PairedIndex == 0 {
		t.Meta.PairedIndex = -1
	}
	if l.commandPos {
		t.Meta.Contexts = t.Meta.Contexts.With(token.CommandPosition)
	} else {
		t.Meta.Contexts = t.Meta.Contexts.With(token.ArgumentPosition)
	}
	t.Meta.Contexts = t.Meta.Contexts.With(token.Context(l.brackets.activeContexts()))
	l.tokens = append(l.tokens, t)
	l.commandPos = commandPositionFollows(t)
}

// commandPositionFollows reports whether the token just emitted puts the
// lexer back into command position for the next word, per the FSM in
// the tokenizer spec: true initially and after ';', newline, '&&',
// '||', '|', ';;', ';&', ';;&', 'then', 'do', 'else', 'elif', 'fi',
// 'done', 'esac', '(', '{', and also after '((', '!', and '&'.
func commandPositionFollows(t token.Token) bool {
	switch t.Kind {
	case token.SEMICOLON, token.NEWLINE, token.AND_AND, token.OR_OR, token.PIPE,
		token.DOUBLE_SEMICOLON, token.SEMICOLON_AMP, token.AMP_SEMICOLON,
		token.LPAREN, token.LBRACE, token.DOUBLE_LPAREN, token.EXCLAMATION,
		token.AMPERSAND:
		return true
	case token.WORD:
		switch t.Value {
		case "then", "do", "else", "elif", "fi", "done", "esac":
			return true
		}
	}
	return false
}

func (l *lexer) rest() []byte { return l.src[l.pos:] }

func (l *lexer) skipBlanks() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
		case '\\':
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '\n' {
				l.pos += 2 // line continuation
				continue
			}
			return
		default:
			return
		}
	}
}

func (l *lexer) skipComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

// atWordStart reports whether a '#' at the current position should be
// treated as a comment: preceded only by blanks since the last token
// boundary, which our caller already guarantees by only checking this
// right after skipBlanks found no operator/quote/word match yet. We
// additionally require there is no adjacent non-blank token directly
// before (i.e. '#' is not stuck to a preceding word, as in "foo#bar").
func (l *lexer) atWordStart() bool {
	if len(l.tokens) == 0 {
		return true
	}
	last := l.tokens[len(l.tokens)-1]
	return int(last.End) != l.pos
}

func (l *lexer) emitNewline() {
	start := l.pos
	l.emit(token.Token{Kind: token.NEWLINE, Value: "\n", Start: token.Pos(start), End: token.Pos(start + 1), Meta: token.Metadata{PairedIndex: -1}})
	l.pos = start + 1
	l.collectDueHeredocs()
	l.commandPos = true
}

// scanOne recognises and emits exactly one lexeme at the current
// position, trying recognisers in priority order.
func (l *lexer) scanOne() {
	b := l.src[l.pos]

	// Heredoc introducer: "<<" / "<<-" are operators, but we must detect
	// them before the generic operator path so we can register the
	// pending heredoc and consume its delimiter word immediately.
	if b == '<' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '<' && !(l.pos+2 < len(l.src) && l.src[l.pos+2] == '<') {
		l.scanHeredocIntro()
		return
	}

	if dup, kind, ok := matchDupOrClose(l.rest()); ok {
		start := l.pos
		l.pos += len(dup)
		l.emitRedirectLike(start, dup, kind)
		return
	}

	if b >= '0' && b <= '9' {
		if text, kind, ok := matchFDRedirect(l.rest()); ok {
			start := l.pos
			l.pos += len(text)
			l.emitRedirectLike(start, text, kind)
			return
		}
	}

	if l.cfg.EnableProcessSubstitution && (b == '<' || b == '>') && l.pos+1 < len(l.src) && l.src[l.pos+1] == '(' {
		l.scanWord()
		return
	}

	if l.commandPos {
		if name, op, idx, val, ok := matchAssignment(l.rest()); ok {
			l.emitAssignment(name, op, idx, val)
			return
		}
	}

	if regOps(b) {
		if text, kind, ok := matchOperator(l.rest()); ok {
			start := l.pos
			l.pos += len(text)
			l.emitOperator(start, text, kind)
			return
		}
	}

	l.scanWord()
}

func computeLineColumns(src []byte, toks []token.Token) {
	lineStarts := []int{0}
	for i, b := range src {
		if b == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	lineFor := func(off int) (int, int) {
		lo, hi := 0, len(lineStarts)-1
		for lo < hi {
			mid := (lo + hi + 1) / 2
			if lineStarts[mid] <= off {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		return lo + 1, off - lineStarts[lo] + 1
	}
	for i := range toks {
		line, col := lineFor(int(toks[i].Start))
		toks[i].Line, toks[i].Column = line, col
	}
}
