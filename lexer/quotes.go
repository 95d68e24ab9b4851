package lexer

import (
	"mvdan.cc/sh-frontend/diag"
	"mvdan.cc/sh-frontend/token"
)

// scanSingleQuotedAtom consumes a single-quoted string literally: no
// escapes, no expansions, up to the next single quote. An unterminated
// quote is reported as UNCLOSED_SINGLE_QUOTE and the atom spans to EOF.
func (l *lexer) scanSingleQuotedAtom() atom {
	start := l.pos
	l.pos++ // opening '
	bodyStart := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\'' {
		l.pos++
	}
	body := string(l.src[bodyStart:l.pos])
	if l.pos >= len(l.src) {
		l.reportUnclosed("UNCLOSED_SINGLE_QUOTE", start, "'")
		return atom{kind: token.LiteralPart, value: string(l.src[start:l.pos]), start: start, end: l.pos, quote: '\''}
	}
	l.pos++ // closing '
	return atom{kind: token.LiteralPart, value: body, start: start, end: l.pos, quote: '\''}
}

// scanDoubleQuotedAtom consumes a double-quoted string, which may embed
// expansions and backslash escapes, up to the next unescaped double
// quote. The raw text (including the quotes) is kept as the atom value;
// the atom's own parts field carries its literal runs and nested
// expansions so the parser's word builder never has to re-scan text.
func (l *lexer) scanDoubleQuotedAtom() atom {
	start := l.pos
	l.pos++ // opening "
	var parts []token.Part
	litStart := -1
	flush := func(end int) {
		if litStart < 0 {
			return
		}
		parts = append(parts, token.Part{Kind: token.LiteralPart, Value: string(l.src[litStart:end]), Start: token.Pos(litStart), End: token.Pos(end), Quote: '"'})
		litStart = -1
	}
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		switch {
		case b == '\\' && l.pos+1 < len(l.src):
			if litStart < 0 {
				litStart = l.pos
			}
			l.pos += 2
		case b == '"':
			flush(l.pos)
			l.pos++
			return atom{kind: token.LiteralPart, value: string(l.src[start:l.pos]), start: start, end: l.pos, quote: '"', parts: parts}
		case b == '$':
			flush(l.pos)
			parts = append(parts, atomToPart(l.scanDollarAtom()))
		case b == '`':
			flush(l.pos)
			parts = append(parts, atomToPart(l.scanBacktickAtom()))
		default:
			if litStart < 0 {
				litStart = l.pos
			}
			l.pos++
		}
	}
	flush(l.pos)
	l.reportUnclosed("UNCLOSED_DOUBLE_QUOTE", start, "\"")
	return atom{kind: token.LiteralPart, value: string(l.src[start:l.pos]), start: start, end: l.pos, quote: '"', parts: parts}
}

func (l *lexer) skipBacktickInsideString() {
	l.pos++ // opening `
	for l.pos < len(l.src) && l.src[l.pos] != '`' {
		if l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		l.pos++
	}
	if l.pos < len(l.src) {
		l.pos++
	}
}

// skipBalanced advances past a delimited construct whose open token is
// open (e.g. "${", "$(") and whose close token is close (e.g. "}",
// ")"), honouring nested quotes and nested instances of the same
// construct. Reports UNCLOSED_EXPANSION if EOF is reached first.
func (l *lexer) skipBalanced(open, close string) {
	start := l.pos
	l.pos += len(open)
	depth := 1
	for l.pos < len(l.src) && depth > 0 {
		switch {
		case l.src[l.pos] == '\'':
			l.scanSingleQuotedAtom()
			continue
		case l.src[l.pos] == '"':
			l.scanDoubleQuotedAtom()
			continue
		case l.pos+len(open) <= len(l.src) && string(l.src[l.pos:l.pos+len(open)]) == open:
			depth++
			l.pos += len(open)
		case l.pos+len(close) <= len(l.src) && string(l.src[l.pos:l.pos+len(close)]) == close:
			depth--
			l.pos += len(close)
		default:
			l.pos++
		}
	}
	if depth > 0 {
		l.reportUnclosedExpansion(start, close)
	}
}

// skipBalancedArith advances past $(( ... )), tracking internal paren
// balance in addition to the $(( / )) delimiters themselves.
func (l *lexer) skipBalancedArith() {
	start := l.pos
	l.pos += 3 // "$(("
	depth := 1
	for l.pos < len(l.src) && depth > 0 {
		switch l.src[l.pos] {
		case '(':
			depth++
			l.pos++
		case ')':
			depth--
			l.pos++
			if depth == 0 && l.pos < len(l.src) && l.src[l.pos] == ')' {
				l.pos++
				depth--
			}
		default:
			l.pos++
		}
	}
	if depth > 0 {
		l.reportUnclosedExpansion(start, "))")
	}
}

func (l *lexer) reportUnclosed(kind string, start int, expected string) {
	t := diag.Lookup(kind)
	l.report.Add(diag.Diagnostic{
		Code: t.Code, Kind: diag.LexKind, Severity: t.Severity,
		Message: t.Message, Suggestion: "add a closing " + expected,
		Pos: token.Pos(start),
	})
}

func (l *lexer) reportUnclosedExpansion(start int, expected string) {
	t := diag.Lookup("UNCLOSED_EXPANSION")
	l.report.Add(diag.Diagnostic{
		Code: t.Code, Kind: diag.LexKind, Severity: t.Severity,
		Message: "unclosed expansion: expected " + expected,
		Suggestion: "add " + expected, Pos: token.Pos(start),
	})
}
