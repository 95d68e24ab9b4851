package ast

import "mvdan.cc/sh-frontend/token"

// TestExpr is the sub-AST for an enhanced test `[[ ... ]]` expression.
type TestExpr interface {
	Node
	testExprNode()
}

func (*BinaryTestExpression) testExprNode()   {}
func (*UnaryTestExpression) testExprNode()    {}
func (*CompoundTestExpression) testExprNode() {}
func (*NegatedTestExpression) testExprNode()  {}

// BinaryTestExpression is `left OP right`, e.g. `-eq`, `==`, `=~`, `<`.
type BinaryTestExpression struct {
	Left, Right               Word
	LeftQuoteType, RightQuoteType byte
	Operator                  string
	OpPos                     token.Pos
}

func (b *BinaryTestExpression) Pos() token.Pos { return b.Left.Pos() }
func (b *BinaryTestExpression) End() token.Pos { return b.Right.End() }

// UnaryTestExpression is `OP operand`, e.g. `-f file`, `-z "$x"`.
type UnaryTestExpression struct {
	OpPos    token.Pos
	Operator string
	Operand  Word
}

func (u *UnaryTestExpression) Pos() token.Pos { return u.OpPos }
func (u *UnaryTestExpression) End() token.Pos { return u.Operand.End() }

// CompoundTestExpression is `left && right` or `left || right`.
type CompoundTestExpression struct {
	Left     TestExpr
	Operator string // "&&" or "||"
	Right    TestExpr
}

func (c *CompoundTestExpression) Pos() token.Pos { return c.Left.Pos() }
func (c *CompoundTestExpression) End() token.Pos { return c.Right.End() }

// NegatedTestExpression is `! inner`.
type NegatedTestExpression struct {
	Bang  token.Pos
	Inner TestExpr
}

func (n *NegatedTestExpression) Pos() token.Pos { return n.Bang }
func (n *NegatedTestExpression) End() token.Pos { return n.Inner.End() }
