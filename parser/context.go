package parser

import (
	"mvdan.cc/sh-frontend/config"
	"mvdan.cc/sh-frontend/diag"
	"mvdan.cc/sh-frontend/token"
)

// ParserContext is the mutable state threaded through every grammar
// method: the token cursor, the configuration, the error buffer, and
// the heredoc-body registry collected by the lexer. Ambiguous-token
// classification inside test expressions, arithmetic, and case
// patterns is not done via context flags on this struct; see the
// per-construct grammar methods (parseTestUnary's classifyTestOp,
// parseArithmeticCmd, parseCStyleFor, parseCaseItem) for how each
// actually resolves it. Loop/function/conditional depth for break/continue/
// return placement is tracked by check's semantic analyzer, which
// walks the finished AST rather than the token stream.
type ParserContext struct {
	toks     []token.Token
	pos      int
	cfg      config.Config
	heredocs map[string]string
	report   *diag.Report
}

func newParserContext(toks []token.Token, heredocs map[string]string, cfg config.Config) *ParserContext {
	return &ParserContext{
		toks:     toks,
		heredocs: heredocs,
		cfg:      cfg,
		report:   &diag.Report{MaxErrors: cfg.MaxErrors},
	}
}

func (p *ParserContext) cur() token.Token { return p.peek(0) }

// peek returns the token offset positions ahead of the cursor, clamped
// to the final EOF token so callers never read out of bounds.
func (p *ParserContext) peek(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *ParserContext) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *ParserContext) atEnd() bool { return p.cur().Kind == token.EOF }

func (p *ParserContext) check(kind token.Kind) bool { return p.cur().Kind == kind }

// match advances and returns true if the current token is one of kinds.
func (p *ParserContext) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// skipNewlines consumes any run of NEWLINE tokens, which the grammar
// treats as insignificant between most nonterminals.
func (p *ParserContext) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// consume advances past an expected kind, or records a parse error
// (via addError) and returns ok=false without advancing, leaving the
// cursor for panic-mode recovery to handle.
func (p *ParserContext) consume(kind token.Kind, code, message string) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.addError(code, p.cur().Start, message)
	return token.Token{}, false
}

// parseAbort unwinds the recursive-descent call stack back to Parse
// when ErrorHandling is Strict, mirroring the spec's "raises ParseError
// on the first unexpected token" default.
type parseAbort struct{}

func (p *ParserContext) addError(code string, pos token.Pos, message string) {
	t := diag.Lookup(code)
	msg := message
	if msg == "" {
		msg = t.Message
	}
	d := diag.Diagnostic{
		Code: t.Code, Kind: diag.ParseKind, Severity: t.Severity,
		Message: msg, Suggestion: t.Suggestion, Pos: pos,
		Context: p.precedingContext(),
	}
	d = diag.Suggest(d, d.Context)
	cont := p.report.Add(d)

	switch p.cfg.ErrorHandling {
	case config.Strict:
		panic(parseAbort{})
	case config.Recover:
		if cont {
			p.synchronize()
		} else {
			panic(parseAbort{})
		}
	case config.Collect:
		if !cont {
			panic(parseAbort{})
		}
	}
}

// precedingContext returns up to the last three consumed tokens, used
// by the suggester for context hints.
func (p *ParserContext) precedingContext() []token.Token {
	n := 3
	start := p.pos - n
	if start < 0 {
		start = 0
	}
	out := make([]token.Token, 0, p.pos-start)
	for i := start; i < p.pos && i < len(p.toks); i++ {
		out = append(out, p.toks[i])
	}
	return out
}

// synchronize implements panic-mode recovery: it skips tokens until one
// of the block terminators (';', newline, 'fi', 'done', 'esac', '}')
// is found at the current bracket/brace nesting level, so that parsing
// can resume at the next statement.
func (p *ParserContext) synchronize() {
	depth := 0
	for !p.atEnd() {
		switch p.cur().Kind {
		case token.LPAREN, token.LBRACE, token.DOUBLE_LPAREN, token.DOUBLE_LBRACKET,
			token.IF, token.WHILE, token.UNTIL, token.FOR, token.CASE, token.SELECT:
			depth++
			p.advance()
			continue
		case token.SEMICOLON, token.NEWLINE:
			if depth == 0 {
				p.advance()
				return
			}
		case token.FI, token.DONE, token.ESAC, token.RBRACE:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}
