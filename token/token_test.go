package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKeyword(t *testing.T) {
	for word, want := range map[string]Kind{
		"if": IF, "fi": FI, "while": WHILE, "done": DONE, "function": FUNCTION,
	} {
		got, ok := LookupKeyword(word)
		require.True(t, ok, "expected %q to be a keyword", word)
		assert.Equal(t, want, got)
	}

	_, ok := LookupKeyword("echo")
	assert.False(t, ok, "'echo' is a builtin, not a reserved word")
}

func TestKindIsKeyword(t *testing.T) {
	assert.True(t, IF.IsKeyword())
	assert.True(t, RETURN.IsKeyword())
	assert.False(t, WORD.IsKeyword())
	assert.False(t, PIPE.IsKeyword())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "WORD", WORD.String())
	assert.Equal(t, "EOF", EOF.String())
	assert.Contains(t, Kind(9999).String(), "Kind(")
}

func TestContextsHasWith(t *testing.T) {
	var c Contexts
	assert.False(t, c.Has(TestExpression))
	c = c.With(TestExpression)
	assert.True(t, c.Has(TestExpression))
	assert.False(t, c.Has(ArithmeticExpression))
	c = c.With(ArithmeticExpression)
	assert.Equal(t, "test-expression,arithmetic-expression", c.String())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "#5", Position{Offset: 5}.String())
	assert.Equal(t, "2:3", Position{Offset: 10, Line: 2, Column: 3}.String())
}
