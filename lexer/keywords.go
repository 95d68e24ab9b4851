package lexer

import "mvdan.cc/sh-frontend/token"

// normalizeKeywords rewrites WORD tokens in command position to their
// reserved-word Kind, plus the "in" that follows the name of a for or
// select loop or the word of a case statement. This runs as a separate pass after the primary
// tokenisation pass (see the lexer's "single-pass normalisation" design
// note: the two passes are separable for clarity and could be fused
// once semantics are stable). Token count and spans are unchanged;
// only Kind (and SemanticType) may change.
func normalizeKeywords(toks []token.Token) {
	for i := range toks {
		t := &toks[i]
		if t.Kind != token.WORD {
			continue
		}
		if !t.Meta.Contexts.Has(token.CommandPosition) {
			if t.Value == "in" && i >= 2 {
				switch toks[i-2].Kind {
				case token.FOR, token.SELECT, token.CASE:
					t.Kind = token.IN
					t.Meta.SemanticType = token.SemanticKeyword
				}
			}
			continue
		}
		if kind, ok := token.LookupKeyword(t.Value); ok {
			t.Kind = kind
			t.Meta.SemanticType = token.SemanticKeyword
		}
	}
}
