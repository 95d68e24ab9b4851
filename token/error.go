package token

// LexError is the structured form of a lex-time failure. The lexer
// reports such failures only through its diagnostic report; it does not
// set Metadata.Err on any token.
type LexError struct {
	Kind       string // e.g. UNCLOSED_QUOTE, UNCLOSED_EXPANSION, UNMATCHED_BRACKET
	Message    string
	Expected   string
	Suggestion string
}

func (e *LexError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}
