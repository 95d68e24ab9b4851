package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvdan.cc/sh-frontend/config"
	"mvdan.cc/sh-frontend/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestLexEmptyInput(t *testing.T) {
	res := Lex(nil, config.Default())
	require.Len(t, res.Tokens, 1)
	assert.Equal(t, token.EOF, res.Tokens[0].Kind)
	assert.Empty(t, res.Report.Diagnostics)
}

func TestLexWhitespaceOnly(t *testing.T) {
	res := Lex([]byte("  \n\t\n  "), config.Default())
	assert.Equal(t, token.EOF, res.Tokens[len(res.Tokens)-1].Kind)
	assert.Empty(t, res.Report.GetErrors())
}

func TestLexSimplePipeline(t *testing.T) {
	// §8 scenario 1: "cat file | grep pattern"
	res := Lex([]byte("cat file | grep pattern"), config.Default())
	words := []string{}
	var gotKinds []token.Kind
	for _, tk := range res.Tokens {
		gotKinds = append(gotKinds, tk.Kind)
		if tk.Kind == token.WORD {
			words = append(words, tk.Value)
		}
	}
	assert.Equal(t, []string{"cat", "file", "grep", "pattern"}, words)
	assert.Equal(t,
		[]token.Kind{token.WORD, token.WORD, token.PIPE, token.WORD, token.WORD, token.EOF},
		gotKinds)
	assert.Empty(t, res.Report.GetErrors())
}

func TestLexEveryByteAccountedFor(t *testing.T) {
	src := []byte("echo hello; echo world\n")
	res := Lex(src, config.Default())
	require.NotEmpty(t, res.Tokens)
	// Every non-whitespace byte should fall within some token's span.
	covered := make([]bool, len(src))
	for _, tk := range res.Tokens {
		for i := int(tk.Start); i < int(tk.End) && i < len(src); i++ {
			covered[i] = true
		}
	}
	for i, b := range src {
		if b == ' ' || b == '\n' || b == '\t' {
			continue
		}
		assert.True(t, covered[i], "byte %d (%q) not covered by any token", i, b)
	}
}

func TestLexUnclosedSingleQuote(t *testing.T) {
	res := Lex([]byte("echo 'hello"), config.Default())
	errs := res.Report.GetErrors()
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Code == "UNCLOSED_SINGLE_QUOTE" || e.Code == "E030" {
			found = true
		}
	}
	assert.True(t, found, "expected an unclosed single quote error, got %+v", errs)
}

func TestLexAssignmentWord(t *testing.T) {
	res := Lex([]byte("FOO=bar echo hi"), config.Default())
	require.NotEmpty(t, res.Tokens)
	assert.Equal(t, token.ASSIGNMENT_WORD, res.Tokens[0].Kind)
	assert.Equal(t, token.SemanticAssignment, res.Tokens[0].Meta.SemanticType)
}

func TestLexArrayAssignmentWord(t *testing.T) {
	res := Lex([]byte("arr[0]=x"), config.Default())
	require.NotEmpty(t, res.Tokens)
	assert.Equal(t, token.ARRAY_ASSIGNMENT_WORD, res.Tokens[0].Kind)
}

func TestLexKeywordNormalizationOnlyInCommandPosition(t *testing.T) {
	res := Lex([]byte("if true; then echo if; fi"), config.Default())
	var gotKinds []token.Kind
	var vals []string
	for _, tk := range res.Tokens {
		gotKinds = append(gotKinds, tk.Kind)
		vals = append(vals, tk.Value)
	}
	assert.Equal(t, token.IF, gotKinds[0])
	assert.Equal(t, token.THEN, gotKinds[3])
	// The second "if" is an argument to echo, not command position, so
	// it must remain a WORD, not be rewritten to the IF keyword kind.
	idx := -1
	for i, v := range vals {
		if v == "if" && i != 0 {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, token.WORD, gotKinds[idx])
}

func TestLexHeredocCollection(t *testing.T) {
	src := "cat <<'END'\n$USER\nEND\n"
	res := Lex([]byte(src), config.Default())
	require.NotEmpty(t, res.Heredocs)
	var body string
	for _, v := range res.Heredocs {
		body = v
	}
	assert.Equal(t, "$USER\n", body)
}

func TestLexHeredocStrip(t *testing.T) {
	src := "cat <<-END\n\t\thello\nEND\n"
	res := Lex([]byte(src), config.Default())
	require.NotEmpty(t, res.Heredocs)
	var body string
	for _, v := range res.Heredocs {
		body = v
	}
	assert.Equal(t, "hello\n", body, "<<- strips leading tabs from each body line")
}

func TestLexVariableExpansion(t *testing.T) {
	res := Lex([]byte("echo $USER"), config.Default())
	var found bool
	for _, tk := range res.Tokens {
		if tk.Kind == token.VARIABLE {
			found = true
			assert.Equal(t, "$USER", tk.Value)
		}
	}
	assert.True(t, found)
}

func TestLexParamExpansionDefault(t *testing.T) {
	// §8 scenario 3
	res := Lex([]byte("echo ${USER:-nobody}"), config.Default())
	var found bool
	for _, tk := range res.Tokens {
		if tk.Kind == token.PARAM_EXPANSION {
			found = true
			assert.Equal(t, "${USER:-nobody}", tk.Value)
		}
	}
	assert.True(t, found)
}

func TestLexUnclosedExpansion(t *testing.T) {
	res := Lex([]byte("echo ${USER"), config.Default())
	errs := res.Report.GetErrors()
	require.NotEmpty(t, errs)
}

func TestLexCommandSubstitution(t *testing.T) {
	res := Lex([]byte("echo $(date)"), config.Default())
	var found bool
	for _, tk := range res.Tokens {
		if tk.Kind == token.COMMAND_SUB {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLexBacktickSubstitution(t *testing.T) {
	res := Lex([]byte("echo `date`"), config.Default())
	var found bool
	for _, tk := range res.Tokens {
		if tk.Kind == token.COMMAND_SUB_BACKTICK {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLexArithmeticExpansion(t *testing.T) {
	res := Lex([]byte("echo $((1+2))"), config.Default())
	var found bool
	for _, tk := range res.Tokens {
		if tk.Kind == token.ARITH_EXPANSION {
			found = true
			assert.Equal(t, "$((1+2))", tk.Value)
		}
	}
	assert.True(t, found)
}

func TestLexOperatorLongestMatch(t *testing.T) {
	res := Lex([]byte("a && b"), config.Default())
	ks := kinds(res.Tokens)
	assert.Contains(t, ks, token.AND_AND)
	assert.NotContains(t, ks, token.AMPERSAND)
}

func TestLexRedirectOperators(t *testing.T) {
	cases := map[string]token.Kind{
		"cmd < in":    token.REDIRECT_IN,
		"cmd > out":   token.REDIRECT_OUT,
		"cmd >> out":  token.REDIRECT_APPEND,
		"cmd 2> err":  token.REDIRECT_ERR,
		"cmd 2>> err": token.REDIRECT_ERR_APPEND,
		"cmd <<< x":   token.HERE_STRING,
	}
	for src, want := range cases {
		res := Lex([]byte(src), config.Default())
		assert.Contains(t, kinds(res.Tokens), want, "source %q", src)
	}
}

func TestLexDoubleQuotedDecomposesIntoParts(t *testing.T) {
	res := Lex([]byte(`echo "hello $USER today"`), config.Default())
	var strTok *token.Token
	for i := range res.Tokens {
		if res.Tokens[i].Kind == token.STRING {
			strTok = &res.Tokens[i]
		}
	}
	require.NotNil(t, strTok)
	require.NotEmpty(t, strTok.Parts)
	var sawExpansion bool
	for _, p := range strTok.Parts {
		if p.Kind == token.VariableExpansionPart {
			sawExpansion = true
		}
	}
	assert.True(t, sawExpansion)
}

func TestLexUnmatchedBracket(t *testing.T) {
	res := Lex([]byte("if [[ -f x ]"), config.Default())
	errs := res.Report.GetErrors()
	assert.NotEmpty(t, errs)
}
