package ast

// Visitor holds a Visit method invoked for each node encountered by
// Walk. If the returned visitor w is non-nil, Walk visits each child of
// node with w, followed by a call to w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

func walkStatements(v Visitor, stmts []Statement) {
	for _, s := range stmts {
		Walk(v, s)
	}
}

func walkWords(v Visitor, words []Word) {
	for i := range words {
		Walk(v, &words[i])
	}
}

func walkRedirects(v Visitor, rs []*Redirect) {
	for _, r := range rs {
		Walk(v, r)
	}
}

func walkCommandList(v Visitor, c *CommandList) {
	if c != nil {
		Walk(v, c)
	}
}

// Walk traverses an AST in depth-first order, mirroring go/ast.Walk: it
// calls v.Visit(node), then recurses into children with the visitor it
// returns, until a nil visitor is returned.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}

	switch x := node.(type) {
	case *TopLevel:
		for _, it := range x.Items {
			Walk(v, it)
		}
	case *CommandList:
		walkStatements(v, x.Statements)
	case *FunctionDef:
		walkCommandList(v, x.Body)
	case *BreakStatement, *ContinueStatement:
		// leaves
	case *ReturnStatement:
		if rs := x; rs.HasCode {
			Walk(v, &rs.Code)
		}
	case *AndOrList:
		for _, p := range x.Pipelines {
			Walk(v, p)
		}
	case *Pipeline:
		for _, c := range x.Commands {
			Walk(v, c)
		}
	case *SimpleCommand:
		for _, a := range x.Assigns {
			Walk(v, a)
		}
		for _, a := range x.ArrayAssigns {
			Walk(v, a)
		}
		walkWords(v, x.Words)
		walkRedirects(v, x.Redirects)
	case *Assignment:
		Walk(v, &x.Value)
	case *ArrayAssignment:
		walkWords(v, x.Elements)
	case *Redirect:
		Walk(v, &x.Target)
	case *IfConditional:
		walkCommandList(v, x.Condition)
		walkCommandList(v, x.ThenPart)
		for _, e := range x.ElifParts {
			walkCommandList(v, e.Condition)
			walkCommandList(v, e.Body)
		}
		walkCommandList(v, x.ElsePart)
		walkRedirects(v, x.Redirects)
	case *WhileLoop:
		walkCommandList(v, x.Condition)
		walkCommandList(v, x.Body)
		walkRedirects(v, x.Redirects)
	case *UntilLoop:
		walkCommandList(v, x.Condition)
		walkCommandList(v, x.Body)
		walkRedirects(v, x.Redirects)
	case *ForLoop:
		walkWords(v, x.Items)
		walkCommandList(v, x.Body)
		walkRedirects(v, x.Redirects)
	case *CStyleForLoop:
		walkCommandList(v, x.Body)
		walkRedirects(v, x.Redirects)
	case *CaseConditional:
		Walk(v, &x.Expr)
		for _, it := range x.Items {
			walkWords(v, it.Patterns)
			walkCommandList(v, it.Body)
		}
		walkRedirects(v, x.Redirects)
	case *SelectLoop:
		walkWords(v, x.Items)
		walkCommandList(v, x.Body)
		walkRedirects(v, x.Redirects)
	case *ArithmeticEvaluation:
		walkRedirects(v, x.Redirects)
	case *EnhancedTestStatement:
		if x.Expression != nil {
			Walk(v, x.Expression)
		}
		walkRedirects(v, x.Redirects)
	case *SubshellGroup:
		walkStatements(v, x.Statements)
		walkRedirects(v, x.Redirects)
	case *BraceGroup:
		walkStatements(v, x.Statements)
		walkRedirects(v, x.Redirects)
	case *BinaryTestExpression:
		Walk(v, &x.Left)
		Walk(v, &x.Right)
	case *UnaryTestExpression:
		Walk(v, &x.Operand)
	case *CompoundTestExpression:
		Walk(v, x.Left)
		Walk(v, x.Right)
	case *NegatedTestExpression:
		Walk(v, x.Inner)
	case *Word:
		for _, p := range x.Parts {
			Walk(v, p)
		}
	case *LiteralPart:
		// leaf
	case *ExpansionPart:
		switch x.Kind {
		case CommandSubstitutionKind:
			if x.CommandSub != nil {
				walkCommandList(v, x.CommandSub.Body)
			}
		}
	}

	v.Visit(nil)
}
