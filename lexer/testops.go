package lexer

import "mvdan.cc/sh-frontend/token"

var testOperators = map[string]token.Kind{
	"==": token.EQUAL, "=": token.EQUAL,
	"!=": token.NOT_EQUAL,
	"=~": token.REGEX_MATCH,
}

// normalizeTestOperators rewrites WORD tokens spelled as a comparison
// operator into their dedicated Kind, but only inside a [[...]] test
// expression: the same text is an ordinary word everywhere else (an
// assignment's "=" is already its own ASSIGNMENT_WORD token and never
// reaches this pass as a WORD).
func normalizeTestOperators(toks []token.Token) {
	for i := range toks {
		t := &toks[i]
		if t.Kind != token.WORD {
			continue
		}
		if !t.Meta.Contexts.Has(token.TestExpression) {
			continue
		}
		if kind, ok := testOperators[t.Value]; ok {
			t.Kind = kind
			t.Meta.SemanticType = token.SemanticOperator
		}
	}
}
