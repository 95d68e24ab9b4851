package lexer

import "mvdan.cc/sh-frontend/token"

func isNameStart(b byte) bool { return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isNameByte(b byte) bool  { return isNameStart(b) || (b >= '0' && b <= '9') }

// matchAssignment recognises the three assignment patterns the spec
// calls for: simple NAME=VALUE, compound NAME(op)=VALUE, and array
// NAME[INDEX]=VALUE. It returns the parsed components and, as rawPrefix,
// the matched "NAME=", "NAME(op)=" or "NAME[INDEX]=" text; the caller
// skips len(rawPrefix) bytes and scans the value from there.
func matchAssignment(s []byte) (name, op, index, rawPrefix string, ok bool) {
	if len(s) == 0 || !isNameStart(s[0]) {
		return "", "", "", "", false
	}
	i := 1
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	name = string(s[:i])

	// Array form: NAME[INDEX]=
	if i < len(s) && s[i] == '[' {
		j := i + 1
		depth := 1
		for j < len(s) && depth > 0 {
			switch s[j] {
			case '[':
				depth++
			case ']':
				depth--
			}
			j++
		}
		if depth == 0 && j < len(s) && s[j] == '=' {
			index = string(s[i+1 : j-1])
			return name, "=", index, string(s[:j+1]), true
		}
		return "", "", "", "", false
	}

	// Compound form: NAME(op)=
	for _, o := range []string{"+", "-", "*", "/", "%", "&", "|", "^", "<<", ">>"} {
		if i+len(o) < len(s) && string(s[i:i+len(o)]) == o && s[i+len(o)] == '=' {
			return name, o + "=", "", string(s[:i+len(o)+1]), true
		}
	}

	// Simple form: NAME=
	if i < len(s) && s[i] == '=' {
		return name, "=", "", string(s[:i+1]), true
	}
	return "", "", "", "", false
}

func assignOpKind(op string) token.Kind {
	switch op {
	case "+=":
		return token.PLUS_ASSIGN
	case "-=":
		return token.MINUS_ASSIGN
	case "*=":
		return token.MULT_ASSIGN
	case "/=":
		return token.DIV_ASSIGN
	case "%=":
		return token.MOD_ASSIGN
	case "&=":
		return token.AND_ASSIGN
	case "|=":
		return token.OR_ASSIGN
	case "^=":
		return token.XOR_ASSIGN
	case "<<=":
		return token.LSHIFT_ASSIGN
	case ">>=":
		return token.RSHIFT_ASSIGN
	}
	return token.ASSIGNMENT_WORD
}

// emitAssignment consumes "NAME(op)=" or "NAME[INDEX]=" plus the
// following value word, and emits a single assignment token whose
// metadata carries the parsed variable name, operator, index, and raw
// value text (the value itself may contain expansions; downstream word
// construction re-derives its parts from the token's Parts).
func (l *lexer) emitAssignment(name, op, index, rawPrefix string) {
	start := l.pos
	l.pos += len(rawPrefix)
	valueAtoms := l.scanWordAtoms()
	kind := token.ASSIGNMENT_WORD
	if index != "" {
		kind = token.ARRAY_ASSIGNMENT_WORD
	} else if op != "=" {
		kind = assignOpKind(op)
	}
	value := rawPrefix
	var parts []token.Part
	for _, a := range valueAtoms {
		value += a.value
		parts = append(parts, atomToPart(a))
	}
	l.emit(token.Token{
		Kind:  kind,
		Value: value,
		Start: token.Pos(start),
		End:   token.Pos(l.pos),
		Parts: parts,
		Meta:  token.Metadata{SemanticType: token.SemanticAssignment, PairedIndex: -1},
	})
}
