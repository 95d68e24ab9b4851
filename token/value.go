package token

// Metadata carries everything the parser needs about a token beyond its
// kind and verbatim text, so that it never has to rescan characters.
type Metadata struct {
	Contexts     Contexts
	SemanticType SemanticType

	// PairedIndex points at the index, in the owning token slice, of the
	// matching bracket/quote close for an opening token (or the open for
	// a closing one). Negative when there is no pair.
	PairedIndex int

	// ParenDepth, BraceDepth and BracketDepth are bracket nesting
	// depths. The lexer does not fill them in; they stay 0.
	ParenDepth  int
	BraceDepth  int
	BracketDepth int

	Err *LexError
}

// Token is the unit the lexer emits and the parser consumes.
type Token struct {
	Kind  Kind
	Value string
	Start Pos
	End   Pos

	Line, Column int // 0 when not computed

	Quote byte // '\'', '"', or 0

	Parts []Part

	Meta Metadata
}

// HasPair reports whether this token has a recorded matching bracket/quote.
func (t *Token) HasPair() bool { return t.Meta.PairedIndex >= 0 }

// IsComposite reports whether the token carries sub-parts (i.e. it spans
// one or more expansion boundaries).
func (t *Token) IsComposite() bool { return len(t.Parts) > 0 }
