package parser

import (
	"mvdan.cc/sh-frontend/ast"
	"mvdan.cc/sh-frontend/token"
)

// parseEnhancedTest parses a standalone `[[ ... ]]` command. The
// closing bracket's index comes straight from the opening token's
// PairedIndex, already computed by the lexer's bracket tracker, so the
// sub-grammar below never has to search for its own boundary.
func (p *ParserContext) parseEnhancedTest() *ast.EnhancedTestStatement {
	lb := p.advance() // DOUBLE_LBRACKET
	endIdx := lb.Meta.PairedIndex
	if endIdx < p.pos {
		endIdx = len(p.toks) - 1
	}
	expr := p.parseTestOr(endIdx)
	var rbPos token.Pos
	if p.pos <= endIdx && endIdx < len(p.toks) && p.toks[endIdx].Kind == token.DOUBLE_RBRACKET {
		rbPos = p.toks[endIdx].Start
		p.pos = endIdx + 1
	} else {
		p.addError("E014", p.cur().Start, "")
		rbPos = p.cur().Start
	}
	ets := &ast.EnhancedTestStatement{LbrackPos: lb.Start, RbrackPos: rbPos, Expression: expr}
	ets.Redirects = p.parseTrailingRedirects()
	return ets
}

func (p *ParserContext) parseTestOr(limit int) ast.TestExpr {
	left := p.parseTestAnd(limit)
	for p.pos < limit && p.check(token.OR_OR) {
		p.advance()
		right := p.parseTestAnd(limit)
		left = &ast.CompoundTestExpression{Left: left, Operator: "||", Right: right}
	}
	return left
}

func (p *ParserContext) parseTestAnd(limit int) ast.TestExpr {
	left := p.parseTestUnary(limit)
	for p.pos < limit && p.check(token.AND_AND) {
		p.advance()
		right := p.parseTestUnary(limit)
		left = &ast.CompoundTestExpression{Left: left, Operator: "&&", Right: right}
	}
	return left
}

func (p *ParserContext) parseTestUnary(limit int) ast.TestExpr {
	if p.pos < limit && p.check(token.EXCLAMATION) {
		bang := p.cur().Start
		p.advance()
		return &ast.NegatedTestExpression{Bang: bang, Inner: p.parseTestUnary(limit)}
	}
	if p.pos < limit && p.check(token.LPAREN) {
		p.advance()
		inner := p.parseTestOr(limit)
		p.consume(token.RPAREN, "E015", "expected ')' to close the grouped test expression")
		return inner
	}
	if p.pos < limit && p.check(token.WORD) && isUnaryTestOp(p.cur().Value) {
		op := p.advance()
		operand := p.parseTestOperand(limit)
		return &ast.UnaryTestExpression{OpPos: op.Start, Operator: op.Value, Operand: operand}
	}
	left := p.parseTestOperand(limit)
	if p.pos < limit {
		if text, ok := classifyTestOp(p.cur()); ok {
			opPos := p.cur().Start
			p.advance()
			right := p.parseTestOperand(limit)
			return &ast.BinaryTestExpression{Left: left, Right: right, Operator: text, OpPos: opPos}
		}
	}
	return &ast.UnaryTestExpression{OpPos: left.Pos(), Operator: "", Operand: left}
}

func (p *ParserContext) parseTestOperand(limit int) ast.Word {
	if p.pos >= limit {
		p.addError("E020", p.cur().Start, "")
		return ast.Word{}
	}
	t := p.cur()
	w := buildWord(p, t)
	p.advance()
	return w
}

func isUnaryTestOp(s string) bool {
	switch s {
	case "-e", "-f", "-d", "-r", "-w", "-x", "-s", "-z", "-n", "-L", "-h",
		"-p", "-S", "-b", "-c", "-g", "-u", "-k", "-O", "-G", "-N":
		return true
	}
	return false
}

// classifyTestOp reports whether t is a binary test operator and its
// canonical text. "<" and ">" arrive as REDIRECT_IN/REDIRECT_OUT
// because the lexer doesn't know it's inside [[...]]; the test-
// expression grammar reclassifies them here, mirroring the way the
// arithmetic-section collector reverses the same tokens back to their
// operator characters.
func classifyTestOp(t token.Token) (string, bool) {
	switch t.Kind {
	case token.EQUAL:
		return "==", true
	case token.NOT_EQUAL:
		return "!=", true
	case token.REGEX_MATCH:
		return "=~", true
	case token.REDIRECT_IN:
		return "<", true
	case token.REDIRECT_OUT:
		return ">", true
	case token.WORD:
		switch t.Value {
		case "-eq", "-ne", "-lt", "-le", "-gt", "-ge", "-nt", "-ot", "-ef":
			return t.Value, true
		}
	}
	return "", false
}
