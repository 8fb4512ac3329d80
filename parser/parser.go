// Package parser implements the recursive-descent parser: the precedence
// ladder, postfix chaining, list/dict literals, statements, and the lvalue
// restriction, exactly as spec.md §4.2 describes.
package parser

import (
	"github.com/abatkin/expressions/ast"
	"github.com/abatkin/expressions/lexer"
)

// parseAbort is the internal panic payload used to unwind out of a deeply
// recursive descent on the first error, mirroring the teacher's
// os.Exit-on-error shape without tearing down the host process: Parse*
// recovers it at the boundary and returns it as a normal error.
type parseAbort struct{ err *ParseError }

// Parser turns a token slice into expressions/statements.
type Parser struct {
	toks []lexer.Token
	idx  int
}

// New creates a Parser over an already-tokenized source.
func New(toks []lexer.Token) *Parser {
	return &Parser{toks: toks}
}

// ParseExpression parses src as a single expression (the expression-only
// embedding entry point).
func ParseExpression(src string) (expr ast.Expr, err error) {
	toks, lexErr := lexer.Tokenize(src)
	if lexErr != nil {
		return nil, &ParseError{Message: lexErr.Error()}
	}
	p := New(toks)
	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(parseAbort)
			if !ok {
				panic(r)
			}
			err = abort.err
		}
	}()
	expr = p.expression()
	if !p.atEnd() {
		p.error("unexpected trailing input after expression")
	}
	return expr, nil
}

// ParseProgram parses src as a full program (statement sequence).
func ParseProgram(src string) (prog *ast.Program, err error) {
	toks, lexErr := lexer.Tokenize(src)
	if lexErr != nil {
		return nil, &ParseError{Message: lexErr.Error()}
	}
	p := New(toks)
	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(parseAbort)
			if !ok {
				panic(r)
			}
			err = abort.err
		}
	}()
	prog = p.program()
	return prog, nil
}

func (p *Parser) program() *ast.Program {
	prog := &ast.Program{}
	p.skipSeparators()
	for !p.atEnd() {
		prog.Stmts = append(prog.Stmts, p.declaration())
		if p.atEnd() {
			break
		}
		p.expectSeparator()
		p.skipSeparators()
	}
	return prog
}

// ---- Statements ----

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(lexer.FN):
		return p.fnDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) fnDecl() ast.Stmt {
	line := p.previous().Line
	name := p.consume(lexer.IDENTIFIER, "expected a function name after 'fn'")
	p.consume(lexer.LPAREN, "expected '(' after function name")

	var params []string
	if !p.check(lexer.RPAREN) {
		params = append(params, p.consume(lexer.IDENTIFIER, "expected a parameter name").Lexeme)
		for p.match(lexer.COMMA) {
			params = append(params, p.consume(lexer.IDENTIFIER, "expected a parameter name").Lexeme)
		}
	}
	p.consume(lexer.RPAREN, "expected ')' after parameters")
	p.consume(lexer.LBRACE, "expected '{' before function body")
	body := p.blockBody()

	return &ast.FnDef{Name: name.Lexeme, Params: params, Body: body, Line: line}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(lexer.IF):
		return p.ifStmt()
	case p.match(lexer.WHILE):
		return p.whileStmt()
	case p.match(lexer.FOR):
		return p.forStmt()
	case p.match(lexer.BREAK):
		return &ast.Break{Line: p.previous().Line}
	case p.match(lexer.CONTINUE):
		return &ast.Continue{Line: p.previous().Line}
	case p.match(lexer.RETURN):
		return p.returnStmt()
	default:
		return p.assignOrExprStmt()
	}
}

func (p *Parser) assignOrExprStmt() ast.Stmt {
	line := p.current().Line
	expr := p.expression()

	if p.match(lexer.EQUAL) {
		lv, ok := expr.(ast.LValue)
		if !ok {
			p.error("invalid assignment target")
		}
		value := p.expression()
		return &ast.Assign{Target: lv, Value: value, Line: line}
	}

	return &ast.ExprStmt{Expr: expr}
}

func (p *Parser) ifStmt() ast.Stmt {
	line := p.previous().Line
	p.consume(lexer.LPAREN, "expected '(' after 'if'")
	cond := p.expression()
	p.consume(lexer.RPAREN, "expected ')' after if condition")
	p.consume(lexer.LBRACE, "expected '{' to start if body")
	then := p.blockBody()

	var elseBlock *ast.Block
	if p.match(lexer.ELSE) {
		p.consume(lexer.LBRACE, "expected '{' to start else body")
		elseBlock = p.blockBody()
	}

	return &ast.If{Cond: cond, Then: then, Else: elseBlock, Line: line}
}

func (p *Parser) whileStmt() ast.Stmt {
	line := p.previous().Line
	p.consume(lexer.LPAREN, "expected '(' after 'while'")
	cond := p.expression()
	p.consume(lexer.RPAREN, "expected ')' after while condition")
	p.consume(lexer.LBRACE, "expected '{' to start while body")
	body := p.blockBody()
	return &ast.While{Cond: cond, Body: body, Line: line}
}

// forStmt disambiguates the three `for` forms spec.md §4.2 defines:
// C-style `for (init; cond; post)`, `for ident in expr`, and
// `for (k, v) in expr`.
func (p *Parser) forStmt() ast.Stmt {
	line := p.previous().Line

	if p.check(lexer.IDENTIFIER) && p.peekIsForInList() {
		name := p.advance().Lexeme
		p.consume(lexer.IN, "expected 'in' after for-loop variable")
		iterable := p.expression()
		p.consume(lexer.LBRACE, "expected '{' to start for body")
		body := p.blockBody()
		return &ast.ForInList{Var: name, Iterable: iterable, Body: body, Line: line}
	}

	p.consume(lexer.LPAREN, "expected '(' after 'for'")

	if p.check(lexer.IDENTIFIER) && p.peekAtComma() {
		key := p.advance().Lexeme
		p.consume(lexer.COMMA, "expected ',' between for-in-dict variables")
		val := p.consume(lexer.IDENTIFIER, "expected a variable name").Lexeme
		p.consume(lexer.RPAREN, "expected ')' after for-in-dict variables")
		p.consume(lexer.IN, "expected 'in' after for-in-dict variables")
		iterable := p.expression()
		p.consume(lexer.LBRACE, "expected '{' to start for body")
		body := p.blockBody()
		return &ast.ForInDict{Key: key, Val: val, Iterable: iterable, Body: body, Line: line}
	}

	var init ast.Stmt
	if !p.check(lexer.SEMICOLON) {
		init = p.forClauseStmt()
	}
	p.consume(lexer.SEMICOLON, "expected ';' after for-loop initializer")

	var cond ast.Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(lexer.SEMICOLON, "expected ';' after for-loop condition")

	var post ast.Stmt
	if !p.check(lexer.RPAREN) {
		post = p.forClauseStmt()
	}
	p.consume(lexer.RPAREN, "expected ')' after for-loop clauses")
	p.consume(lexer.LBRACE, "expected '{' to start for body")
	body := p.blockBody()

	return &ast.ForC{Init: init, Cond: cond, Post: post, Body: body, Line: line}
}

// forClauseStmt parses an Assign or ExprStmt for a C-for init/post clause
// (spec.md: "init/post are Assign or ExprStmt").
func (p *Parser) forClauseStmt() ast.Stmt {
	line := p.current().Line
	expr := p.expression()
	if p.match(lexer.EQUAL) {
		lv, ok := expr.(ast.LValue)
		if !ok {
			p.error("invalid assignment target")
		}
		value := p.expression()
		return &ast.Assign{Target: lv, Value: value, Line: line}
	}
	return &ast.ExprStmt{Expr: expr}
}

// peekIsForInList reports whether the upcoming tokens are `ident in`,
// distinguishing `for x in xs { }` from `for (init; cond; post) { }`.
func (p *Parser) peekIsForInList() bool {
	return p.tokAt(p.idx+1).Type == lexer.IN
}

// peekAtComma reports whether the upcoming tokens are `ident ,`,
// distinguishing `for (k, v) in d { }` from a C-style for.
func (p *Parser) peekAtComma() bool {
	return p.tokAt(p.idx+1).Type == lexer.COMMA
}

func (p *Parser) returnStmt() ast.Stmt {
	line := p.previous().Line
	if p.atStatementEnd() {
		return &ast.Return{Line: line}
	}
	expr := p.expression()
	return &ast.Return{Expr: expr, Line: line}
}

// atStatementEnd reports whether the parser sits at a statement separator
// or a block/program boundary, used by `return` to distinguish `return;`
// (Unit) from `return expr`.
func (p *Parser) atStatementEnd() bool {
	if p.atEnd() || p.check(lexer.RBRACE) || p.check(lexer.SEMICOLON) {
		return true
	}
	return p.current().NewlineBefore
}

// blockBody parses declarations until a matching '}', which it consumes.
// The opening '{' must already have been consumed by the caller.
func (p *Parser) blockBody() *ast.Block {
	b := &ast.Block{}
	p.skipSeparators()
	for !p.check(lexer.RBRACE) && !p.atEnd() {
		b.Stmts = append(b.Stmts, p.declaration())
		if p.check(lexer.RBRACE) {
			break
		}
		p.expectSeparator()
		p.skipSeparators()
	}
	p.consume(lexer.RBRACE, "expected '}' to close block")
	return b
}

// expectSeparator requires a ';' or a newline between statements, consuming
// one literal ';' token (callers skip any further run with skipSeparators;
// newlines are not tokens, see lexer.Token.NewlineBefore). A statement that
// ends in a closing '}' needs no separator, so `if (c) { ... } return x`
// parses as two statements.
func (p *Parser) expectSeparator() {
	if p.check(lexer.SEMICOLON) {
		p.advance()
		return
	}
	if p.current().NewlineBefore {
		return
	}
	if p.previous().Type == lexer.RBRACE {
		return
	}
	p.error("expected ';' or a newline between statements")
}

func (p *Parser) skipSeparators() {
	for p.check(lexer.SEMICOLON) {
		p.advance()
	}
}

// ---- Expressions: precedence ladder ----

func (p *Parser) expression() ast.Expr {
	return p.ternary()
}

func (p *Parser) ternary() ast.Expr {
	cond := p.logicalOr()
	if p.match(lexer.QUESTION) {
		line := p.previous().Line
		then := p.ternary()
		p.consume(lexer.COLON, "expected ':' in ternary expression")
		els := p.ternary()
		return &ast.Ternary{Cond: cond, Then: then, Else: els, Line: line}
	}
	return cond
}

func (p *Parser) logicalOr() ast.Expr {
	expr := p.logicalAnd()
	for p.match(lexer.OR_OR) {
		op := p.previous()
		right := p.logicalAnd()
		expr = &ast.Logical{Op: op.Type, Left: expr, Right: right, Line: op.Line}
	}
	return expr
}

func (p *Parser) logicalAnd() ast.Expr {
	expr := p.equality()
	for p.match(lexer.AND_AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Op: op.Type, Left: expr, Right: right, Line: op.Line}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(lexer.EQUAL_EQUAL, lexer.BANG_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Op: op.Type, Left: expr, Right: right, Line: op.Line}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.additive()
	for p.match(lexer.LESS, lexer.LESS_EQUAL, lexer.GREATER, lexer.GREATER_EQUAL) {
		op := p.previous()
		right := p.additive()
		expr = &ast.Binary{Op: op.Type, Left: expr, Right: right, Line: op.Line}
	}
	return expr
}

func (p *Parser) additive() ast.Expr {
	expr := p.multiplicative()
	for p.match(lexer.PLUS, lexer.MINUS) {
		op := p.previous()
		right := p.multiplicative()
		expr = &ast.Binary{Op: op.Type, Left: expr, Right: right, Line: op.Line}
	}
	return expr
}

func (p *Parser) multiplicative() ast.Expr {
	expr := p.power()
	for p.match(lexer.STAR, lexer.SLASH, lexer.PERCENT) {
		op := p.previous()
		right := p.power()
		expr = &ast.Binary{Op: op.Type, Left: expr, Right: right, Line: op.Line}
	}
	return expr
}

// power is right-associative: parses one unary operand, then recurses into
// itself for the right side on a trailing '^'.
func (p *Parser) power() ast.Expr {
	expr := p.unary()
	if p.match(lexer.CARET) {
		op := p.previous()
		right := p.power()
		return &ast.Binary{Op: op.Type, Left: expr, Right: right, Line: op.Line}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(lexer.BANG, lexer.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op.Type, Expr: right, Line: op.Line}
	}
	return p.postfix()
}

// postfix parses a primary followed by any sequence of calls, indices, and
// member accesses, left-associatively.
func (p *Parser) postfix() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(lexer.LPAREN):
			expr = p.finishCall(expr)
		case p.match(lexer.LBRACKET):
			line := p.previous().Line
			idx := p.expression()
			p.consume(lexer.RBRACKET, "expected ']' after index expression")
			expr = &ast.Index{Object: expr, Idx: idx, Line: line}
		case p.match(lexer.DOT):
			name := p.consume(lexer.IDENTIFIER, "expected a field name after '.'")
			expr = &ast.Member{Object: expr, Field: name.Lexeme, Line: name.Line}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	line := p.previous().Line
	var args []ast.Expr
	if !p.check(lexer.RPAREN) {
		args = append(args, p.expression())
		for p.match(lexer.COMMA) {
			if p.check(lexer.RPAREN) {
				break // trailing comma
			}
			args = append(args, p.expression())
		}
	}
	p.consume(lexer.RPAREN, "expected ')' after arguments")
	return &ast.Call{Callee: callee, Args: args, Line: line}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(lexer.TRUE):
		return &ast.Lit{Kind: ast.LitBool, Bool: true}
	case p.match(lexer.FALSE):
		return &ast.Lit{Kind: ast.LitBool, Bool: false}
	case p.match(lexer.NUMBER_INT):
		return p.intLiteral(p.previous())
	case p.match(lexer.NUMBER_FLOAT):
		return p.floatLiteral(p.previous())
	case p.match(lexer.STRING):
		return &ast.Lit{Kind: ast.LitStr, Str: p.previous().Lexeme}
	case p.match(lexer.IDENTIFIER):
		tok := p.previous()
		return &ast.Var{Name: tok.Lexeme, Line: tok.Line}
	case p.match(lexer.LPAREN):
		expr := p.expression()
		p.consume(lexer.RPAREN, "expected ')' after expression")
		return expr
	case p.match(lexer.LBRACKET):
		return p.listLiteral()
	case p.match(lexer.LBRACE):
		return p.dictLiteral()
	default:
		p.error("expected an expression")
		return nil // unreachable: p.error panics
	}
}

func (p *Parser) listLiteral() ast.Expr {
	line := p.previous().Line
	var elems []ast.Expr
	if !p.check(lexer.RBRACKET) {
		elems = append(elems, p.expression())
		for p.match(lexer.COMMA) {
			if p.check(lexer.RBRACKET) {
				break
			}
			elems = append(elems, p.expression())
		}
	}
	p.consume(lexer.RBRACKET, "expected ']' after list literal")
	return &ast.ListLit{Elems: elems, Line: line}
}

func (p *Parser) dictLiteral() ast.Expr {
	line := p.previous().Line
	var entries []ast.DictEntry
	if !p.check(lexer.RBRACE) {
		entries = append(entries, p.dictEntry())
		for p.match(lexer.COMMA) {
			if p.check(lexer.RBRACE) {
				break
			}
			entries = append(entries, p.dictEntry())
		}
	}
	p.consume(lexer.RBRACE, "expected '}' after dict literal")
	return &ast.DictLit{Entries: entries, Line: line}
}

func (p *Parser) dictEntry() ast.DictEntry {
	key := p.consume(lexer.STRING, "dict literal keys must be string literals")
	p.consume(lexer.COLON, "expected ':' after dict key")
	value := p.expression()
	return ast.DictEntry{Key: key.Lexeme, Value: value}
}
