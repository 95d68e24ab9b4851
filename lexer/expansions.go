package lexer

import "mvdan.cc/sh-frontend/token"

// scanDollarAtom recognises the four '$'-led expansion forms: ${...}
// (parameter), $((...)) (arithmetic), $(...) (command), and a bare
// variable reference. Each delegates to the balanced-delimiter skipper
// in quotes.go so that nested quotes and nested expansions don't
// confuse the boundary search.
func (l *lexer) scanDollarAtom() atom {
	start := l.pos
	switch {
	case l.pos+2 < len(l.src) && l.src[l.pos+1] == '(' && l.src[l.pos+2] == '(':
		l.skipBalancedArith()
		return atom{kind: token.ArithmeticExpansionPart, value: string(l.src[start:l.pos]), start: start, end: l.pos}
	case l.pos+1 < len(l.src) && l.src[l.pos+1] == '(':
		l.skipBalanced("$(", ")")
		return atom{kind: token.CommandSubstitutionPart, value: string(l.src[start:l.pos]), start: start, end: l.pos}
	case l.pos+1 < len(l.src) && l.src[l.pos+1] == '{':
		l.skipBalanced("${", "}")
		return atom{kind: token.ParameterExpansionPart, value: string(l.src[start:l.pos]), start: start, end: l.pos}
	default:
		l.pos++ // '$'
		if l.pos < len(l.src) && (l.src[l.pos] == '@' || l.src[l.pos] == '*' || l.src[l.pos] == '#' ||
			l.src[l.pos] == '?' || l.src[l.pos] == '$' || l.src[l.pos] == '!' || (l.src[l.pos] >= '0' && l.src[l.pos] <= '9')) {
			l.pos++
		} else {
			for l.pos < len(l.src) && isNameByte(l.src[l.pos]) {
				l.pos++
			}
		}
		return atom{kind: token.VariableExpansionPart, value: string(l.src[start:l.pos]), start: start, end: l.pos}
	}
}

// scanBacktickAtom consumes `` `...` `` command substitution. Backslash
// escapes an embedded backtick or backslash; no other nesting is
// possible inside a backtick substitution.
func (l *lexer) scanBacktickAtom() atom {
	start := l.pos
	l.skipBacktickInsideString()
	if l.pos == start {
		l.pos++
	}
	return atom{kind: token.BacktickExpansionPart, value: string(l.src[start:l.pos]), start: start, end: l.pos}
}

// scanProcessSubstitutionAtom consumes `<(...)` / `>(...)`.
func (l *lexer) scanProcessSubstitutionAtom() atom {
	start := l.pos
	dir := l.src[l.pos]
	l.pos++ // '<' or '>'
	l.skipBalanced("(", ")")
	kind := token.CommandSubstitutionPart
	_ = dir
	return atom{kind: kind, value: string(l.src[start:l.pos]), start: start, end: l.pos}
}

// scanWord scans one maximal word (possibly composite) starting at the
// current position and emits the resulting token: WORD for a bare
// literal, STRING/VARIABLE/COMMAND_SUB/.../PROCESS_SUB_OUT for a single
// quoted-or-expansion atom, or COMPOSITE when several atoms are
// adjacent with no gap between their spans.
func (l *lexer) scanWord() {
	start := l.pos
	atoms := l.scanWordAtoms()
	if len(atoms) == 0 {
		// Shouldn't happen in practice; avoid an infinite loop regardless.
		l.pos++
		return
	}
	if len(atoms) == 1 {
		a := atoms[0]
		kind, quote := singleAtomKind(a)
		l.emit(token.Token{
			Kind: kind, Value: a.value, Start: token.Pos(start), End: token.Pos(l.pos),
			Quote: quote, Parts: a.parts,
			Meta: token.Metadata{PairedIndex: -1, SemanticType: semanticTypeFor(kind)},
		})
		return
	}
	var value string
	parts := make([]token.Part, 0, len(atoms))
	for _, a := range atoms {
		value += a.value
		parts = append(parts, atomToPart(a))
	}
	l.emit(token.Token{
		Kind: token.COMPOSITE, Value: value, Start: token.Pos(start), End: token.Pos(l.pos),
		Parts: parts, Meta: token.Metadata{PairedIndex: -1, SemanticType: token.SemanticLiteral},
	})
}

func singleAtomKind(a atom) (token.Kind, byte) {
	switch a.kind {
	case token.VariableExpansionPart:
		return token.VARIABLE, 0
	case token.ParameterExpansionPart:
		return token.PARAM_EXPANSION, 0
	case token.ArithmeticExpansionPart:
		return token.ARITH_EXPANSION, 0
	case token.BacktickExpansionPart:
		return token.COMMAND_SUB_BACKTICK, 0
	case token.CommandSubstitutionPart:
		if len(a.value) > 0 && a.value[0] == '<' {
			return token.PROCESS_SUB_IN, 0
		}
		if len(a.value) > 0 && a.value[0] == '>' {
			return token.PROCESS_SUB_OUT, 0
		}
		return token.COMMAND_SUB, 0
	default:
		if a.quote != 0 {
			return token.STRING, a.quote
		}
		return token.WORD, 0
	}
}

func semanticTypeFor(k token.Kind) token.SemanticType {
	switch k {
	case token.WORD:
		return token.SemanticLiteral
	case token.STRING:
		return token.SemanticLiteral
	case token.VARIABLE, token.PARAM_EXPANSION, token.ARITH_EXPANSION, token.COMMAND_SUB, token.COMMAND_SUB_BACKTICK, token.PROCESS_SUB_IN, token.PROCESS_SUB_OUT:
		return token.SemanticExpansion
	}
	return token.NoSemanticType
}

// emitOperator emits a plain operator/separator/grouping token and
// updates the bracket tracker for the grouping ones.
func (l *lexer) emitOperator(start int, text string, kind token.Kind) {
	l.emit(token.Token{
		Kind: kind, Value: text, Start: token.Pos(start), End: token.Pos(l.pos),
		Meta: token.Metadata{SemanticType: token.SemanticOperator, PairedIndex: -1},
	})
	l.brackets.observe(l.tokens, len(l.tokens)-1)
}

// emitRedirectLike emits one of the fd-qualified or dup/close redirect
// forms recognised by matchDupOrClose.
func (l *lexer) emitRedirectLike(start int, text string, kind token.Kind) {
	l.emit(token.Token{
		Kind: kind, Value: text, Start: token.Pos(start), End: token.Pos(l.pos),
		Meta: token.Metadata{SemanticType: token.SemanticRedirect, PairedIndex: -1},
	})
}
