package lexer

import "mvdan.cc/sh-frontend/token"

// atom is one piece recognised while scanning a word: either a literal
// run or a quoted string / expansion with its own sub-parts.
type atom struct {
	kind  token.PartKind
	value string
	start int
	end   int
	quote byte       // quote char in force, 0 if none
	parts []token.Part // nested decomposition, set only for double-quoted atoms
}

// isWordBreak reports whether b ends an unquoted literal run within a word.
func isWordBreak(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\'', '"', '`', '$':
		return true
	}
	return regOps(b)
}

// scanLiteralRun consumes an unquoted literal run, honouring backslash
// escapes (the escaped character is kept verbatim, including newlines
// which are swallowed as line continuations).
func (l *lexer) scanLiteralRun() atom {
	start := l.pos
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		if b == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		if isWordBreak(b) {
			break
		}
		l.pos++
	}
	return atom{kind: token.LiteralPart, value: string(l.src[start:l.pos]), start: start, end: l.pos}
}

// atomToPart converts a scanned atom into the token.Part representation
// stored on composite tokens.
func atomToPart(a atom) token.Part {
	if a.quote == '"' {
		return token.Part{Kind: token.QuotedStringPart, Value: a.value, Start: token.Pos(a.start), End: token.Pos(a.end), Quote: '"', Parts: a.parts}
	}
	if a.quote == '\'' {
		return token.Part{Kind: token.LiteralPart, Value: a.value, Start: token.Pos(a.start), End: token.Pos(a.end), Quote: '\''}
	}
	return token.Part{Kind: a.kind, Value: a.value, Start: token.Pos(a.start), End: token.Pos(a.end)}
}

// scanWordAtoms collects the ordered list of atoms making up one word
// starting at the current position, stopping at the first whitespace,
// newline, or unescaped operator-leading byte.
func (l *lexer) scanWordAtoms() []atom {
	var atoms []atom
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			return atoms
		case b == '\'':
			atoms = append(atoms, l.scanSingleQuotedAtom())
		case b == '"':
			atoms = append(atoms, l.scanDoubleQuotedAtom())
		case b == '`':
			atoms = append(atoms, l.scanBacktickAtom())
		case b == '$':
			atoms = append(atoms, l.scanDollarAtom())
		case l.cfg.EnableProcessSubstitution && (b == '<' || b == '>') && l.pos+1 < len(l.src) && l.src[l.pos+1] == '(':
			atoms = append(atoms, l.scanProcessSubstitutionAtom())
		case regOps(b):
			// A new operator begins here; end the word without consuming it.
			return atoms
		default:
			atoms = append(atoms, l.scanLiteralRun())
		}
	}
	return atoms
}
