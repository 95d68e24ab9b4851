package lexer

import (
	"mvdan.cc/sh-frontend/diag"
	"mvdan.cc/sh-frontend/token"
)

// bracketEntry is one open delimiter on the tracker's stack.
type bracketEntry struct {
	kind    token.Kind
	closes  token.Kind
	tokIdx  int
	context token.Context // context flag applied to tokens while this entry is open
}

// bracketStack maintains the open (/ [/ {/ ((/ [[ stack the spec calls
// for, with their source contexts, reporting UNMATCHED_BRACKET on a
// mismatched close and unclosed-bracket errors for anything still open
// at end of input.
type bracketStack struct {
	entries []bracketEntry
	report  *diag.Report
}

var openersToClosers = map[token.Kind]token.Kind{
	token.LPAREN:          token.RPAREN,
	token.LBRACE:          token.RBRACE,
	token.LBRACKET:        token.RBRACKET,
	token.DOUBLE_LPAREN:   token.DOUBLE_RPAREN,
	token.DOUBLE_LBRACKET: token.DOUBLE_RBRACKET,
}

var closersToOpeners = map[token.Kind]token.Kind{
	token.RPAREN:          token.LPAREN,
	token.RBRACE:          token.LBRACE,
	token.RBRACKET:        token.LBRACKET,
	token.DOUBLE_RPAREN:   token.DOUBLE_LPAREN,
	token.DOUBLE_RBRACKET: token.DOUBLE_LBRACKET,
}

func contextFor(k token.Kind) token.Context {
	switch k {
	case token.DOUBLE_LBRACKET:
		return token.TestExpression
	case token.DOUBLE_LPAREN:
		return token.ArithmeticExpression
	}
	return 0
}

// observe inspects the token at idx and, if it is a bracket open or
// close, updates the stack and (for a matched close) the PairedIndex of
// both tokens.
func (b *bracketStack) observe(toks []token.Token, idx int) {
	k := toks[idx].Kind
	if closer, ok := openersToClosers[k]; ok {
		b.entries = append(b.entries, bracketEntry{kind: k, closes: closer, tokIdx: idx, context: contextFor(k)})
		return
	}
	if opener, ok := closersToOpeners[k]; ok {
		for i := len(b.entries) - 1; i >= 0; i-- {
			if b.entries[i].kind == opener {
				openIdx := b.entries[i].tokIdx
				toks[openIdx].Meta.PairedIndex = idx
				toks[idx].Meta.PairedIndex = openIdx
				b.entries = b.entries[:i]
				return
			}
		}
		t := diag.Lookup("UNMATCHED_BRACKET")
		b.report.Add(diag.Diagnostic{
			Code: t.Code, Kind: diag.LexKind, Severity: t.Severity,
			Message: "unmatched '" + toks[idx].Value + "'",
			Pos:     toks[idx].Start,
		})
	}
}

// activeContexts returns the union of contexts contributed by
// currently-open bracket entries, applied to every token recognised
// while they remain open.
func (b *bracketStack) activeContexts() token.Contexts {
	var c token.Context
	for _, e := range b.entries {
		c |= e.context
	}
	return token.Contexts(c)
}

// reportUnclosed emits an unclosed-bracket diagnostic for every entry
// still open when the input ends.
func (b *bracketStack) reportUnclosed(toks []token.Token) {
	for _, e := range b.entries {
		t := diag.Lookup("UNMATCHED_BRACKET")
		closer := "?"
		switch e.closes {
		case token.RPAREN:
			closer = ")"
		case token.RBRACE:
			closer = "}"
		case token.RBRACKET:
			closer = "]"
		case token.DOUBLE_RPAREN:
			closer = "))"
		case token.DOUBLE_RBRACKET:
			closer = "]]"
		}
		b.report.Add(diag.Diagnostic{
			Code: t.Code, Kind: diag.LexKind, Severity: t.Severity,
			Message:    "unclosed bracket: expected '" + closer + "'",
			Suggestion: "add '" + closer + "'",
			Pos:        toks[e.tokIdx].Start,
		})
	}
}
