package parser

import (
	"strings"

	"mvdan.cc/sh-frontend/ast"
	"mvdan.cc/sh-frontend/lexer"
	"mvdan.cc/sh-frontend/token"
)

// buildWord turns one word-like token into a Word. Every token the
// lexer considers a single word already carries its own decomposition
// in Parts when it crosses an expansion or quote boundary (see
// token.Part and the QuotedStringPart recursion); a plain WORD or
// single-quoted STRING has no Parts and becomes one LiteralPart.
func buildWord(p *ParserContext, t token.Token) ast.Word {
	if len(t.Parts) > 0 {
		var parts []ast.WordPart
		appendPartsFlat(p, &parts, t.Parts, false)
		return ast.Word{Parts: parts}
	}

	switch t.Kind {
	case token.STRING:
		if t.Quote == '\'' {
			return ast.Word{Parts: []ast.WordPart{
				&ast.LiteralPart{ValuePos: t.Start + 1, Value: t.Value, Quoted: true, QuoteChar: '\''},
			}}
		}
		// Double-quoted with no embedded expansions: strip the quotes.
		inner := t.Value
		if len(inner) >= 2 {
			inner = inner[1 : len(inner)-1]
		}
		return ast.Word{Parts: []ast.WordPart{
			&ast.LiteralPart{ValuePos: t.Start + 1, Value: inner, Quoted: true, QuoteChar: '"'},
		}}
	case token.VARIABLE, token.PARAM_EXPANSION, token.ARITH_EXPANSION, token.COMMAND_SUB, token.COMMAND_SUB_BACKTICK:
		part := token.Part{Kind: partKindFor(t.Kind), Value: t.Value, Start: t.Start, End: t.End}
		return ast.Word{Parts: []ast.WordPart{convertExpansionPart(p, part, false)}}
	default:
		return ast.Word{Parts: []ast.WordPart{
			&ast.LiteralPart{ValuePos: t.Start, Value: t.Value},
		}}
	}
}

func partKindFor(k token.Kind) token.PartKind {
	switch k {
	case token.VARIABLE:
		return token.VariableExpansionPart
	case token.PARAM_EXPANSION:
		return token.ParameterExpansionPart
	case token.ARITH_EXPANSION:
		return token.ArithmeticExpansionPart
	case token.COMMAND_SUB_BACKTICK:
		return token.BacktickExpansionPart
	default:
		return token.CommandSubstitutionPart
	}
}

// appendPartsFlat converts a token's Parts into the Word's flat part
// list, recursing into a QuotedStringPart's own Parts so that e.g.
// foo"bar $x"baz yields four WordParts, none of them nested.
func appendPartsFlat(p *ParserContext, dst *[]ast.WordPart, tparts []token.Part, quoted bool) {
	for _, part := range tparts {
		switch part.Kind {
		case token.LiteralPart:
			*dst = append(*dst, &ast.LiteralPart{
				ValuePos: part.Start, Value: part.Value,
				Quoted: part.Quote != 0, QuoteChar: part.Quote,
			})
		case token.QuotedStringPart:
			appendPartsFlat(p, dst, part.Parts, true)
		default:
			*dst = append(*dst, convertExpansionPart(p, part, quoted))
		}
	}
}

// convertExpansionPart builds the ExpansionPart AST node for one of the
// five expansion PartKinds (process substitution has no AST slot of
// its own and is kept as an opaque literal).
func convertExpansionPart(p *ParserContext, part token.Part, quoted bool) ast.WordPart {
	switch part.Kind {
	case token.VariableExpansionPart:
		return &ast.ExpansionPart{
			StartPos: part.Start, EndPos: part.End, Kind: ast.VariableExpansionKind, Quoted: quoted,
			Variable: &ast.VariableExpansion{Name: parseVarName(part.Value)},
		}
	case token.ParameterExpansionPart:
		inner := stripDelims(part.Value, "${", "}")
		return &ast.ExpansionPart{
			StartPos: part.Start, EndPos: part.End, Kind: ast.ParameterExpansionKind, Quoted: quoted,
			Parameter: parseParameterExpansion(inner),
		}
	case token.ArithmeticExpansionPart:
		inner := stripDelims(part.Value, "$((", "))")
		return &ast.ExpansionPart{
			StartPos: part.Start, EndPos: part.End, Kind: ast.ArithmeticExpansionKind, Quoted: quoted,
			Arithmetic: &ast.ArithmeticExpansion{Expression: inner},
		}
	case token.CommandSubstitutionPart:
		if strings.HasPrefix(part.Value, "$(") {
			inner := stripDelims(part.Value, "$(", ")")
			return &ast.ExpansionPart{
				StartPos: part.Start, EndPos: part.End, Kind: ast.CommandSubstitutionKind, Quoted: quoted,
				CommandSub: &ast.CommandSubstitution{Body: parseNestedSource(p, inner)},
			}
		}
		// <(...) or >(...): process substitution has no dedicated Word
		// expansion slot in this front-end's AST; keep the raw text.
		return &ast.LiteralPart{ValuePos: part.Start, Value: part.Value}
	case token.BacktickExpansionPart:
		inner := unescapeBackticks(stripDelims(part.Value, "`", "`"))
		return &ast.ExpansionPart{
			StartPos: part.Start, EndPos: part.End, Kind: ast.BacktickExpansionKind, Quoted: quoted,
			CommandSub: &ast.CommandSubstitution{Body: parseNestedSource(p, inner), BacktickStyle: true},
		}
	}
	return &ast.LiteralPart{ValuePos: part.Start, Value: part.Value}
}

func stripDelims(s, open, close string) string {
	if strings.HasPrefix(s, open) && strings.HasSuffix(s, close) && len(s) >= len(open)+len(close) {
		return s[len(open) : len(s)-len(close)]
	}
	return s
}

func unescapeBackticks(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '`' || s[i+1] == '\\') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func parseVarName(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	c := raw[1]
	if c == '@' || c == '*' || c == '#' || c == '?' || c == '$' || c == '!' || (c >= '0' && c <= '9') {
		return raw[1:2]
	}
	i := 1
	for i < len(raw) && isNameByte(raw[i]) {
		i++
	}
	return raw[1:i]
}

func isNameStart(b byte) bool { return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isNameByte(b byte) bool  { return isNameStart(b) || (b >= '0' && b <= '9') }

// parameterOperators is tried in the exact priority order the spec
// requires: length is handled separately (a leading '#' with nothing
// but a name after it), then these, longest-first within each family
// so "/#" wins over "/" and "#", "##" over "#", "%%" over "%".
var parameterOperators = []string{
	"/#", "/%", "//", "/", "##", "#", "%%", "%", ":-", ":=", ":?", ":+", ":",
}

// parseParameterExpansion parses the text inside ${...} (braces
// already stripped) into a ParameterExpansion: the parameter name (or
// positional digits, or a special parameter), an optional [index], and
// an optional operator+word suffix.
func parseParameterExpansion(inner string) *ast.ParameterExpansion {
	if strings.HasPrefix(inner, "#") && len(inner) > 1 && isValidParamRef(inner[1:]) {
		return &ast.ParameterExpansion{Parameter: inner[1:], Length: true}
	}

	i := 0
	switch {
	case i < len(inner) && (inner[i] == '@' || inner[i] == '*' || inner[i] == '#' ||
		inner[i] == '?' || inner[i] == '$' || inner[i] == '!' || inner[i] == '-'):
		i++
	case i < len(inner) && inner[i] >= '0' && inner[i] <= '9':
		for i < len(inner) && inner[i] >= '0' && inner[i] <= '9' {
			i++
		}
	case i < len(inner) && isNameStart(inner[i]):
		for i < len(inner) && isNameByte(inner[i]) {
			i++
		}
	}
	name := inner[:i]

	var index string
	if i < len(inner) && inner[i] == '[' {
		j := i + 1
		depth := 1
		for j < len(inner) && depth > 0 {
			switch inner[j] {
			case '[':
				depth++
			case ']':
				depth--
			}
			j++
		}
		if depth == 0 {
			index = inner[i+1 : j-1]
			i = j
		}
	}

	rest := inner[i:]
	for _, op := range parameterOperators {
		if strings.HasPrefix(rest, op) {
			return &ast.ParameterExpansion{Parameter: name, Index: index, Operator: op, Word: rest[len(op):]}
		}
	}
	return &ast.ParameterExpansion{Parameter: name, Index: index}
}

func isValidParamRef(s string) bool {
	if s == "" {
		return false
	}
	if len(s) == 1 {
		switch s[0] {
		case '@', '*', '#', '?', '$', '!':
			return true
		}
	}
	if isNameStart(s[0]) {
		for i := 1; i < len(s); i++ {
			if !isNameByte(s[i]) {
				return false
			}
		}
		return true
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseNestedSource re-lexes and re-parses a command-substitution or
// backtick body under the same configuration, merging its diagnostics
// into the enclosing report. Positions it reports are relative to the
// substring, since the body was already excised from the outer source
// by the bracket-balance scan in the lexer.
func parseNestedSource(p *ParserContext, src string) (cl *ast.CommandList) {
	res := lexer.Lex([]byte(src), p.cfg)
	p.report.Merge(res.Report)
	sub := newParserContext(res.Tokens, res.Heredocs, p.cfg)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseAbort); !ok {
				panic(r)
			}
		}
		p.report.Merge(sub.report)
	}()
	cl = sub.parseCommandList(token.EOF)
	return cl
}
