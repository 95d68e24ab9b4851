// Package parser turns a lexed token stream into the front-end's AST,
// following the grammar in the tokenizer/parser design: a plain
// recursive-descent parser over the token slice, with panic/recover
// used internally to unwind on a Strict-mode error and with explicit
// synchronisation for Recover-mode error collection.
package parser

import (
	"strconv"
	"strings"

	"mvdan.cc/sh-frontend/ast"
	"mvdan.cc/sh-frontend/config"
	"mvdan.cc/sh-frontend/diag"
	"mvdan.cc/sh-frontend/token"
)

// Parse builds a TopLevel AST from a lexed token stream. heredocs maps
// a HEREDOC/HEREDOC_STRIP token's Value to its collected body text, as
// produced by lexer.Lex. The returned report is never nil.
func Parse(toks []token.Token, heredocs map[string]string, cfg config.Config) (top *ast.TopLevel, report *diag.Report) {
	p := newParserContext(toks, heredocs, cfg)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseAbort); !ok {
				panic(r)
			}
		}
		report = p.report
	}()
	top = p.parseTopLevel()
	return top, p.report
}

// parseTopLevel models "TopLevel = (FunctionDef | ControlStructure-as-
// statement | CommandList)*" as a single CommandList spanning the whole
// program: FunctionDef, break/continue/return, and every control
// structure are already valid Statement alternatives reachable inside
// a CommandList, so a program is just the top-level statement sequence
// wrapped as the root's one CommandList item.
func (p *ParserContext) parseTopLevel() *ast.TopLevel {
	cl := p.parseCommandList(token.EOF)
	tl := &ast.TopLevel{}
	if cl != nil && len(cl.Statements) > 0 {
		tl.Items = append(tl.Items, cl)
	}
	return tl
}

// parseCommandList parses "Statement ((';'|newline))+ Statement?" up to
// (but not consuming) one of terminators, or EOF.
func (p *ParserContext) parseCommandList(terminators ...token.Kind) *ast.CommandList {
	cl := &ast.CommandList{}
	p.skipNewlines()
	for !p.atEnd() && !p.atTerminator(terminators) {
		if !p.report.ShouldContinue() {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			cl.Statements = append(cl.Statements, stmt)
		}
		if p.atEnd() || p.atTerminator(terminators) {
			break
		}
		if !p.consumeSeparator() {
			p.addError("E025", p.cur().Start, "")
		}
	}
	return cl
}

func (p *ParserContext) atTerminator(kinds []token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			return true
		}
	}
	return false
}

// consumeSeparator consumes a run of ';' and/or newline tokens, which
// the grammar treats as one separator between statements.
func (p *ParserContext) consumeSeparator() bool {
	found := false
	for p.check(token.SEMICOLON) || p.check(token.NEWLINE) {
		p.advance()
		found = true
	}
	return found
}

func (p *ParserContext) parseTrailingRedirects() []*ast.Redirect {
	var rs []*ast.Redirect
	for isRedirectKind(p.cur().Kind) {
		rs = append(rs, p.parseRedirect())
	}
	return rs
}

func isWordLike(k token.Kind) bool {
	switch k {
	case token.WORD, token.STRING, token.VARIABLE, token.PARAM_EXPANSION,
		token.ARITH_EXPANSION, token.COMMAND_SUB, token.COMMAND_SUB_BACKTICK,
		token.PROCESS_SUB_IN, token.PROCESS_SUB_OUT, token.COMPOSITE:
		return true
	}
	return false
}

func isRedirectKind(k token.Kind) bool {
	switch k {
	case token.REDIRECT_IN, token.REDIRECT_OUT, token.REDIRECT_APPEND,
		token.REDIRECT_ERR, token.REDIRECT_ERR_APPEND, token.REDIRECT_DUP,
		token.HEREDOC, token.HEREDOC_STRIP, token.HERE_STRING:
		return true
	}
	return false
}

func isAssignmentKind(k token.Kind) bool {
	switch k {
	case token.ASSIGNMENT_WORD, token.ARRAY_ASSIGNMENT_WORD,
		token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.MULT_ASSIGN, token.DIV_ASSIGN,
		token.MOD_ASSIGN, token.AND_ASSIGN, token.OR_ASSIGN, token.XOR_ASSIGN,
		token.LSHIFT_ASSIGN, token.RSHIFT_ASSIGN:
		return true
	}
	return false
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (p *ParserContext) parseStatement() ast.Statement {
	switch p.cur().Kind {
	case token.FUNCTION:
		return p.parseFunctionDef()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.RETURN:
		return p.parseReturn()
	}
	if p.looksLikeFunctionDef() {
		return p.parseFunctionDef()
	}
	return p.parseAndOrList()
}

// looksLikeFunctionDef recognises the POSIX `NAME()` function-definition
// header: a bare word immediately followed by '(' ')' at command
// position, distinct from a subshell group (which starts with '(' with
// no preceding name).
func (p *ParserContext) looksLikeFunctionDef() bool {
	return p.check(token.WORD) && p.peek(1).Kind == token.LPAREN && p.peek(2).Kind == token.RPAREN
}

func (p *ParserContext) parseFunctionDef() *ast.FunctionDef {
	bashStyle := false
	var namePos token.Pos
	var name string
	if p.check(token.FUNCTION) {
		bashStyle = true
		p.advance()
		nameTok, _ := p.consume(token.WORD, "E017", "expected a function name after 'function'")
		namePos, name = nameTok.Start, nameTok.Value
		if p.check(token.LPAREN) && p.peek(1).Kind == token.RPAREN {
			p.advance()
			p.advance()
		}
	} else {
		nameTok := p.advance() // WORD
		namePos, name = nameTok.Start, nameTok.Value
		p.advance() // (
		p.advance() // )
	}
	p.skipNewlines()
	body := p.parseFunctionBody()
	fd := &ast.FunctionDef{NamePos: namePos, Name: name, BashStyle: bashStyle, Body: body}
	fd.EndPos = p.cur().Start
	if len(body.Statements) > 0 {
		fd.EndPos = body.Statements[len(body.Statements)-1].End()
	}
	return fd
}

// parseFunctionBody parses the compound command that serves as a
// function body: almost always a brace group, but any compound command
// (subshell, if, for, ...) is valid per Bash's grammar.
func (p *ParserContext) parseFunctionBody() *ast.CommandList {
	switch p.cur().Kind {
	case token.LBRACE:
		g := p.parseBraceGroup()
		return &ast.CommandList{Statements: g.Statements}
	case token.LPAREN:
		s := p.parseSubshell()
		return &ast.CommandList{Statements: s.Statements}
	default:
		comp := p.parsePipelineComponent()
		cl := &ast.CommandList{}
		if uc, ok := comp.(ast.Statement); ok {
			cl.Statements = []ast.Statement{uc}
		}
		return cl
	}
}

func (p *ParserContext) parseBreak() *ast.BreakStatement {
	pos := p.cur().Start
	p.advance()
	level := 1
	if p.check(token.WORD) {
		if n, err := strconv.Atoi(p.cur().Value); err == nil {
			level = n
			p.advance()
		}
	}
	return &ast.BreakStatement{Position: pos, Level: level}
}

func (p *ParserContext) parseContinue() *ast.ContinueStatement {
	pos := p.cur().Start
	p.advance()
	level := 1
	if p.check(token.WORD) {
		if n, err := strconv.Atoi(p.cur().Value); err == nil {
			level = n
			p.advance()
		}
	}
	return &ast.ContinueStatement{Position: pos, Level: level}
}

func (p *ParserContext) parseReturn() *ast.ReturnStatement {
	pos := p.cur().Start
	p.advance()
	r := &ast.ReturnStatement{Position: pos}
	if isWordLike(p.cur().Kind) {
		r.Code = buildWord(p, p.cur())
		r.HasCode = true
		p.advance()
	}
	return r
}

func (p *ParserContext) parseAndOrList() *ast.AndOrList {
	first := p.parsePipeline()
	al := &ast.AndOrList{Pipelines: []*ast.Pipeline{first}}
	for p.check(token.AND_AND) || p.check(token.OR_OR) {
		op := "&&"
		if p.check(token.OR_OR) {
			op = "||"
		}
		p.advance()
		p.skipNewlines()
		al.Operators = append(al.Operators, op)
		al.Pipelines = append(al.Pipelines, p.parsePipeline())
	}
	return al
}

func (p *ParserContext) parsePipeline() *ast.Pipeline {
	pl := &ast.Pipeline{}
	if p.check(token.EXCLAMATION) {
		pl.Negated = true
		pl.BangPos = p.cur().Start
		p.advance()
	}
	pl.Commands = append(pl.Commands, p.parsePipelineComponent())
	for p.check(token.PIPE) {
		p.advance()
		p.skipNewlines()
		pl.Commands = append(pl.Commands, p.parsePipelineComponent())
	}
	if len(pl.Commands) > 1 {
		for _, c := range pl.Commands {
			if uc, ok := c.(ast.UnifiedControlStructure); ok {
				uc.SetExecutionContext(ast.PipelineContext)
			}
		}
	}
	return pl
}

func (p *ParserContext) parsePipelineComponent() ast.Command {
	switch p.cur().Kind {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.UNTIL:
		return p.parseUntil()
	case token.FOR:
		return p.parseFor()
	case token.CASE:
		return p.parseCase()
	case token.SELECT:
		return p.parseSelect()
	case token.DOUBLE_LPAREN:
		return p.parseArithmeticCmd()
	case token.DOUBLE_LBRACKET:
		return p.parseEnhancedTest()
	case token.LBRACE:
		return p.parseBraceGroup()
	case token.LPAREN:
		return p.parseSubshell()
	}
	return p.parseSimpleCommand()
}

// ---------------------------------------------------------------------
// Simple commands, assignments, redirects
// ---------------------------------------------------------------------

func (p *ParserContext) parseSimpleCommand() *ast.SimpleCommand {
	sc := &ast.SimpleCommand{}
	for {
		switch {
		case isAssignmentKind(p.cur().Kind):
			t := p.cur()
			if t.Kind == token.ASSIGNMENT_WORD && strings.HasSuffix(t.Value, "=") && p.peek(1).Kind == token.LPAREN {
				p.advance()
				sc.ArrayAssigns = append(sc.ArrayAssigns, p.parseArrayInitializer(t))
			} else {
				sc.Assigns = append(sc.Assigns, p.parseAssignment())
			}
		case isRedirectKind(p.cur().Kind):
			sc.Redirects = append(sc.Redirects, p.parseRedirect())
		case isWordLike(p.cur().Kind):
			t := p.cur()
			w := buildWord(p, t)
			p.advance()
			arg, quote := flattenArg(w)
			sc.Words = append(sc.Words, w)
			sc.Args = append(sc.Args, arg)
			sc.ArgTypes = append(sc.ArgTypes, classifyArg(w))
			sc.QuoteTypes = append(sc.QuoteTypes, quote)
		case p.check(token.AMPERSAND):
			sc.Background = true
			sc.AmpersandPos = p.cur().Start
			p.advance()
			return sc
		default:
			return sc
		}
	}
}

func classifyArg(w ast.Word) ast.ArgType {
	if len(w.Parts) != 1 {
		if len(w.Parts) > 1 {
			return ast.ArgComposite
		}
		return ast.ArgPlain
	}
	switch part := w.Parts[0].(type) {
	case *ast.LiteralPart:
		if part.Quoted {
			return ast.ArgQuoted
		}
		return ast.ArgPlain
	case *ast.ExpansionPart:
		return ast.ArgExpansion
	}
	return ast.ArgPlain
}

// flattenArg renders a Word to a plain string when every part is a
// literal, for consumers that don't need the full part breakdown. Its
// quote byte is meaningful only for a single-part word.
func flattenArg(w ast.Word) (string, byte) {
	if len(w.Parts) == 1 {
		if lp, ok := w.Parts[0].(*ast.LiteralPart); ok {
			return lp.Value, lp.QuoteChar
		}
		return "", 0
	}
	var b strings.Builder
	allLiteral := true
	for _, part := range w.Parts {
		lp, ok := part.(*ast.LiteralPart)
		if !ok {
			allLiteral = false
			continue
		}
		b.WriteString(lp.Value)
	}
	if !allLiteral {
		return "", 0
	}
	return b.String(), 0
}

// splitAssignmentPrefix mirrors the lexer's matchAssignment, applied to
// an already-scanned assignment token's Value so the parser can recover
// the name/operator/index without the lexer threading them through
// Metadata.
func splitAssignmentPrefix(raw string) (name, op, index, value string) {
	i := 0
	for i < len(raw) && isNameByte(raw[i]) {
		i++
	}
	name = raw[:i]
	if i < len(raw) && raw[i] == '[' {
		j := i + 1
		depth := 1
		for j < len(raw) && depth > 0 {
			switch raw[j] {
			case '[':
				depth++
			case ']':
				depth--
			}
			j++
		}
		if depth == 0 {
			index = raw[i+1 : j-1]
			i = j
		}
	}
	for _, o := range []string{"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=", "="} {
		if strings.HasPrefix(raw[i:], o) {
			op = o
			i += len(o)
			break
		}
	}
	value = raw[i:]
	return
}

func (p *ParserContext) parseAssignment() *ast.Assignment {
	t := p.advance()
	name, op, index, _ := splitAssignmentPrefix(t.Value)
	var val ast.Word
	if len(t.Parts) > 0 {
		var parts []ast.WordPart
		appendPartsFlat(p, &parts, t.Parts, false)
		val = ast.Word{Parts: parts}
	}
	return &ast.Assignment{NamePos: t.Start, Name: name, Operator: op, Index: index, Value: val}
}

// parseArrayInitializer parses `(elem elem ...)` following a bare
// "name=" assignment token whose value was left empty by the lexer
// because '(' can't be scanned as a word atom.
func (p *ParserContext) parseArrayInitializer(nameTok token.Token) *ast.ArrayAssignment {
	name := strings.TrimSuffix(nameTok.Value, "=")
	p.advance() // consume '('
	aa := &ast.ArrayAssignment{NamePos: nameTok.Start, Name: name}
	p.skipNewlines()
	for isWordLike(p.cur().Kind) {
		aa.Elements = append(aa.Elements, buildWord(p, p.cur()))
		p.advance()
		p.skipNewlines()
	}
	if rp, ok := p.consume(token.RPAREN, "E015", "expected ')' to close the array initializer"); ok {
		aa.EndPos = rp.End
	} else {
		aa.EndPos = p.cur().Start
	}
	return aa
}

func (p *ParserContext) parseRedirect() *ast.Redirect {
	t := p.advance()
	r := &ast.Redirect{OpPos: t.Start}
	fd, rest := splitLeadingFD(t.Value)

	switch t.Kind {
	case token.REDIRECT_IN:
		r.Op = ast.RedirIn
		r.SourceFD = fdOrDefault(fd, 0)
	case token.REDIRECT_OUT:
		r.Op = ast.RedirOut
		r.SourceFD = fdOrDefault(fd, 1)
	case token.REDIRECT_APPEND:
		r.Op = ast.RedirAppend
		r.SourceFD = fdOrDefault(fd, 1)
	case token.REDIRECT_ERR:
		r.Op = ast.RedirErr
		r.SourceFD = 2
	case token.REDIRECT_ERR_APPEND:
		r.Op = ast.RedirErrAppend
		r.SourceFD = 2
	case token.REDIRECT_DUP:
		r.SourceFD = fdOrDefault(fd, defaultDupFD(rest))
		if strings.HasSuffix(rest, "-") {
			r.Op = ast.RedirCloseFD
		} else {
			r.Op = ast.RedirDup
			r.HasDupFD = true
			r.DupFD = parseDupTarget(rest)
		}
		return r
	case token.HEREDOC, token.HEREDOC_STRIP:
		if t.Kind == token.HEREDOC_STRIP {
			r.Op = ast.RedirHeredocStrip
			r.HeredocStrip = true
		} else {
			r.Op = ast.RedirHeredoc
		}
		delimTok := p.advance() // the delimiter STRING token scanHeredocIntro emitted
		r.Target = ast.Word{Parts: []ast.WordPart{&ast.LiteralPart{
			ValuePos: delimTok.Start, Value: delimTok.Value,
			Quoted: delimTok.Quote != 0, QuoteChar: delimTok.Quote,
		}}}
		r.HeredocQuoted = delimTok.Quote != 0
		if body, ok := p.heredocs[t.Value]; ok {
			r.HeredocBody = body
		}
		return r
	case token.HERE_STRING:
		r.Op = ast.RedirHereString
	}

	if isWordLike(p.cur().Kind) {
		wt := p.cur()
		r.Target = buildWord(p, wt)
		r.HereStringQuote = wt.Quote
		p.advance()
	} else {
		p.addError("E021", p.cur().Start, "")
	}
	return r
}

func splitLeadingFD(v string) (int, string) {
	i := 0
	for i < len(v) && v[i] >= '0' && v[i] <= '9' {
		i++
	}
	if i == 0 {
		return -1, v
	}
	n, _ := strconv.Atoi(v[:i])
	return n, v[i:]
}

func fdOrDefault(fd, def int) int {
	if fd < 0 {
		return def
	}
	return fd
}

func defaultDupFD(rest string) int {
	if len(rest) > 0 && rest[0] == '<' {
		return 0
	}
	return 1
}

func parseDupTarget(rest string) int {
	idx := strings.IndexByte(rest, '&')
	if idx < 0 {
		return -1
	}
	n, _ := strconv.Atoi(rest[idx+1:])
	return n
}

// ---------------------------------------------------------------------
// Compound commands
// ---------------------------------------------------------------------

func (p *ParserContext) parseIf() *ast.IfConditional {
	ifPos := p.cur().Start
	p.advance()
	cond := p.parseCommandList(token.THEN)
	p.consume(token.THEN, "E028", "")
	body := p.parseCommandList(token.ELIF, token.ELSE, token.FI)
	ic := &ast.IfConditional{IfPos: ifPos, Condition: cond, ThenPart: body}
	for p.check(token.ELIF) {
		p.advance()
		c := p.parseCommandList(token.THEN)
		p.consume(token.THEN, "E028", "")
		b := p.parseCommandList(token.ELIF, token.ELSE, token.FI)
		ic.ElifParts = append(ic.ElifParts, &ast.ElifBranch{Condition: c, Body: b})
	}
	if p.check(token.ELSE) {
		p.advance()
		ic.ElsePart = p.parseCommandList(token.FI)
	}
	if fi, ok := p.consume(token.FI, "E005", ""); ok {
		ic.FiPos = fi.Start
	} else {
		ic.FiPos = p.cur().Start
	}
	ic.Redirects = p.parseTrailingRedirects()
	return ic
}

func (p *ParserContext) parseWhile() *ast.WhileLoop {
	pos := p.cur().Start
	p.advance()
	cond := p.parseCommandList(token.DO)
	p.consume(token.DO, "E003", "")
	body := p.parseCommandList(token.DONE)
	w := &ast.WhileLoop{WhilePos: pos, Condition: cond, Body: body}
	if done, ok := p.consume(token.DONE, "E006", ""); ok {
		w.DonePos = done.Start
	} else {
		w.DonePos = p.cur().Start
	}
	w.Redirects = p.parseTrailingRedirects()
	return w
}

func (p *ParserContext) parseUntil() *ast.UntilLoop {
	pos := p.cur().Start
	p.advance()
	cond := p.parseCommandList(token.DO)
	p.consume(token.DO, "E004", "")
	body := p.parseCommandList(token.DONE)
	u := &ast.UntilLoop{UntilPos: pos, Condition: cond, Body: body}
	if done, ok := p.consume(token.DONE, "E007", ""); ok {
		u.DonePos = done.Start
	} else {
		u.DonePos = p.cur().Start
	}
	u.Redirects = p.parseTrailingRedirects()
	return u
}

func (p *ParserContext) parseFor() ast.Command {
	forPos := p.cur().Start
	p.advance()
	if p.check(token.DOUBLE_LPAREN) {
		return p.parseCStyleFor(forPos)
	}
	nameTok, _ := p.consume(token.WORD, "E015", "expected a loop variable name")
	fl := &ast.ForLoop{ForPos: forPos, Variable: nameTok.Value}
	if p.check(token.IN) {
		p.advance()
		for isWordLike(p.cur().Kind) {
			w := p.cur()
			fl.Items = append(fl.Items, buildWord(p, w))
			fl.ItemQuoteTypes = append(fl.ItemQuoteTypes, w.Quote)
			p.advance()
		}
	} else if !p.check(token.DO) && !p.check(token.SEMICOLON) && !p.check(token.NEWLINE) {
		p.addError("E026", p.cur().Start, "")
	}
	p.consumeSeparator()
	p.consume(token.DO, "E002", "")
	fl.Body = p.parseCommandList(token.DONE)
	if done, ok := p.consume(token.DONE, "E008", ""); ok {
		fl.DonePos = done.Start
	} else {
		fl.DonePos = p.cur().Start
	}
	fl.Redirects = p.parseTrailingRedirects()
	return fl
}

func (p *ParserContext) parseCStyleFor(forPos token.Pos) *ast.CStyleForLoop {
	lparenTok := p.advance() // DOUBLE_LPAREN
	endIdx := lparenTok.Meta.PairedIndex
	var exprToks []token.Token
	if endIdx > p.pos && endIdx <= len(p.toks) {
		exprToks = p.toks[p.pos:endIdx]
	}
	clauses := splitArithClauses(renderArithTokens(exprToks))
	if endIdx >= p.pos && endIdx < len(p.toks) {
		p.pos = endIdx + 1
	} else {
		p.addError("E027", lparenTok.Start, "")
	}
	p.consumeSeparator()
	p.consume(token.DO, "E002", "")
	cf := &ast.CStyleForLoop{ForPos: forPos, Init: clauses[0], Condition: clauses[1], Update: clauses[2]}
	cf.Body = p.parseCommandList(token.DONE)
	if done, ok := p.consume(token.DONE, "E008", ""); ok {
		cf.DonePos = done.Start
	} else {
		cf.DonePos = p.cur().Start
	}
	cf.Redirects = p.parseTrailingRedirects()
	return cf
}

// renderArithTokens reconstructs the verbatim text of an arithmetic
// section from its token range, reversing the lexer's context-blind
// tokenisation of '<' and '>' as redirects back into their arithmetic
// operator characters.
func renderArithTokens(toks []token.Token) string {
	var b strings.Builder
	prevEnd := token.Pos(-1)
	for _, t := range toks {
		if prevEnd >= 0 && t.Start > prevEnd {
			b.WriteByte(' ')
		}
		b.WriteString(arithTokenText(t))
		prevEnd = t.End
	}
	return b.String()
}

func arithTokenText(t token.Token) string {
	switch t.Kind {
	case token.REDIRECT_IN:
		return "<"
	case token.REDIRECT_OUT:
		return ">"
	case token.REDIRECT_APPEND:
		return ">>"
	}
	return t.Value
}

// splitArithClauses splits a C-style for-loop header on top-level ';'
// into its init/condition/update clauses, padding with "" if fewer than
// three were written (e.g. "for ((;;))").
func splitArithClauses(raw string) [3]string {
	var clauses []string
	depth := 0
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ';':
			if depth == 0 {
				clauses = append(clauses, strings.TrimSpace(raw[start:i]))
				start = i + 1
			}
		}
	}
	clauses = append(clauses, strings.TrimSpace(raw[start:]))
	for len(clauses) < 3 {
		clauses = append(clauses, "")
	}
	var out [3]string
	copy(out[:], clauses[:3])
	return out
}

func (p *ParserContext) parseArithmeticCmd() *ast.ArithmeticEvaluation {
	lparenTok := p.advance() // DOUBLE_LPAREN
	endIdx := lparenTok.Meta.PairedIndex
	var exprToks []token.Token
	if endIdx > p.pos && endIdx <= len(p.toks) {
		exprToks = p.toks[p.pos:endIdx]
	}
	raw := renderArithTokens(exprToks)
	var rparenPos token.Pos
	if endIdx >= p.pos && endIdx < len(p.toks) {
		rparenPos = p.toks[endIdx].Start
		p.pos = endIdx + 1
	} else {
		p.addError("E013", p.cur().Start, "")
		rparenPos = p.cur().Start
	}
	if raw == "" {
		p.addError("E019", lparenTok.Start, "")
	}
	ae := &ast.ArithmeticEvaluation{LparenPos: lparenTok.Start, RparenPos: rparenPos, Expression: raw}
	ae.Redirects = p.parseTrailingRedirects()
	return ae
}

func (p *ParserContext) parseCase() *ast.CaseConditional {
	casePos := p.cur().Start
	p.advance()
	var expr ast.Word
	if isWordLike(p.cur().Kind) {
		expr = buildWord(p, p.cur())
		p.advance()
	} else {
		p.addError("E015", p.cur().Start, "expected a word to match against")
	}
	p.skipNewlines()
	p.consume(token.IN, "E015", "expected 'in' after the case word")
	p.skipNewlines()
	cc := &ast.CaseConditional{CasePos: casePos, Expr: expr}
	for !p.check(token.ESAC) && !p.atEnd() {
		if !p.report.ShouldContinue() {
			break
		}
		cc.Items = append(cc.Items, p.parseCaseItem())
		p.skipNewlines()
	}
	if esac, ok := p.consume(token.ESAC, "E009", ""); ok {
		cc.EsacPos = esac.Start
	} else {
		cc.EsacPos = p.cur().Start
	}
	cc.Redirects = p.parseTrailingRedirects()
	return cc
}

func (p *ParserContext) parseCaseItem() *ast.CaseItem {
	if p.check(token.LPAREN) {
		p.advance()
	}
	item := &ast.CaseItem{}
	for {
		if p.atEnd() || p.check(token.RPAREN) {
			p.addError("E023", p.cur().Start, "")
			break
		}
		item.Patterns = append(item.Patterns, buildWord(p, p.cur()))
		p.advance()
		if p.check(token.PIPE) {
			p.advance()
			continue
		}
		break
	}
	p.consume(token.RPAREN, "E023", "")
	p.skipNewlines()
	item.Body = p.parseCommandList(token.DOUBLE_SEMICOLON, token.SEMICOLON_AMP, token.AMP_SEMICOLON, token.ESAC)
	switch p.cur().Kind {
	case token.DOUBLE_SEMICOLON:
		item.Terminator = ast.TerminatorBreak
		p.advance()
	case token.SEMICOLON_AMP:
		item.Terminator = ast.TerminatorFallThrough
		p.advance()
	case token.AMP_SEMICOLON:
		item.Terminator = ast.TerminatorContinueTest
		p.advance()
	case token.ESAC:
		item.Terminator = ast.TerminatorBreak
	default:
		p.addError("E024", p.cur().Start, "")
	}
	return item
}

func (p *ParserContext) parseSelect() *ast.SelectLoop {
	pos := p.cur().Start
	p.advance()
	nameTok, _ := p.consume(token.WORD, "E015", "expected a loop variable name")
	sl := &ast.SelectLoop{SelectPos: pos, Variable: nameTok.Value}
	if p.check(token.IN) {
		p.advance()
		for isWordLike(p.cur().Kind) {
			sl.Items = append(sl.Items, buildWord(p, p.cur()))
			p.advance()
		}
	}
	p.consumeSeparator()
	p.consume(token.DO, "E002", "")
	sl.Body = p.parseCommandList(token.DONE)
	if done, ok := p.consume(token.DONE, "E010", ""); ok {
		sl.DonePos = done.Start
	} else {
		sl.DonePos = p.cur().Start
	}
	sl.Redirects = p.parseTrailingRedirects()
	return sl
}

func (p *ParserContext) parseSubshell() *ast.SubshellGroup {
	lp := p.advance() // LPAREN
	sg := &ast.SubshellGroup{LparenPos: lp.Start}
	cl := p.parseCommandList(token.RPAREN)
	sg.Statements = cl.Statements
	if rp, ok := p.consume(token.RPAREN, "E012", ""); ok {
		sg.RparenPos = rp.Start
	} else {
		sg.RparenPos = p.cur().Start
	}
	sg.Redirects = p.parseTrailingRedirects()
	if p.check(token.AMPERSAND) {
		sg.Background = true
		p.advance()
	}
	return sg
}

func (p *ParserContext) parseBraceGroup() *ast.BraceGroup {
	lb := p.advance() // LBRACE
	bg := &ast.BraceGroup{LbracePos: lb.Start}
	cl := p.parseCommandList(token.RBRACE)
	bg.Statements = cl.Statements
	if rb, ok := p.consume(token.RBRACE, "E011", ""); ok {
		bg.RbracePos = rb.Start
	} else {
		bg.RbracePos = p.cur().Start
	}
	bg.Redirects = p.parseTrailingRedirects()
	if p.check(token.AMPERSAND) {
		bg.Background = true
		p.advance()
	}
	return bg
}
