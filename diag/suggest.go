package diag

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"mvdan.cc/sh-frontend/token"
)

// keywordCorpus and commandCorpus back the suggester's typo hints. They
// are deliberately small: the suggester only needs to catch the common
// case of a misspelled keyword or builtin in command position.
var keywordCorpus = []string{
	"if", "then", "else", "elif", "fi", "while", "until", "do", "done",
	"for", "in", "case", "esac", "select", "function", "break", "continue",
	"return",
}

var commandCorpus = []string{
	"echo", "printf", "read", "cd", "pwd", "export", "unset", "local",
	"declare", "test", "exit", "shift", "source", "eval", "trap", "set",
}

// TypoHint returns the closest match for word from the keyword and
// builtin corpora, or "" if nothing is close enough to be useful.
func TypoHint(word string) string {
	if word == "" {
		return ""
	}
	best, bestDist := "", 3 // only suggest within edit-distance 2
	for _, corpus := range [][]string{keywordCorpus, commandCorpus} {
		for _, target := range corpus {
			if d := fuzzy.LevenshteinDistance(word, target); d < bestDist {
				best, bestDist = target, d
			}
		}
	}
	return best
}

// ContextHint derives a "what comes next" suggestion from the last few
// tokens the parser consumed before the error.
func ContextHint(preceding []token.Token) string {
	if len(preceding) == 0 {
		return ""
	}
	last := preceding[len(preceding)-1]
	switch last.Kind {
	case token.IF:
		return "expected a condition, then ';' or a newline, then 'then'"
	case token.WHILE, token.UNTIL:
		return "expected a condition, then ';' or a newline, then 'do'"
	case token.FOR:
		return "expected a loop variable, then 'in' or 'do'"
	case token.THEN, token.ELSE, token.DO:
		return "expected a command list"
	case token.CASE:
		return "expected a word to match against, then 'in'"
	}
	return ""
}

// MissingTokenHint produces a suggestion for a specific (expected,
// context) pair. Neither the parser's consume() nor Suggest calls it.
func MissingTokenHint(expected token.Kind, context string) string {
	switch expected {
	case token.THEN:
		return "add 'then' " + context
	case token.DO:
		return "add 'do' " + context
	case token.FI, token.DONE, token.ESAC:
		return "add '" + expected.String() + "' " + context
	}
	return ""
}

// Suggest enriches d, when it does not already carry a suggestion, with
// a context hint or, failing that, a typo hint for a preceding WORD. It
// adds no missing-token hints.
func Suggest(d Diagnostic, preceding []token.Token) Diagnostic {
	if d.Suggestion != "" {
		return d
	}
	if hint := ContextHint(preceding); hint != "" {
		d.Suggestion = hint
		return d
	}
	if len(preceding) > 0 && preceding[len(preceding)-1].Kind == token.WORD {
		if hint := TypoHint(preceding[len(preceding)-1].Value); hint != "" {
			d.Suggestion = "did you mean '" + hint + "'?"
		}
	}
	return d
}
