package parser

import (
	"strconv"

	"github.com/abatkin/expressions/ast"
	"github.com/abatkin/expressions/lexer"
)

func (p *Parser) current() lexer.Token {
	return p.tokAt(p.idx)
}

func (p *Parser) previous() lexer.Token {
	return p.tokAt(p.idx - 1)
}

func (p *Parser) tokAt(i int) lexer.Token {
	if i < 0 {
		i = 0
	}
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

func (p *Parser) atEnd() bool {
	return p.current().Type == lexer.EOF
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.atEnd() {
		return t == lexer.EOF
	}
	return p.current().Type == t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) advance() lexer.Token {
	if !p.atEnd() {
		p.idx++
	}
	return p.previous()
}

func (p *Parser) consume(t lexer.TokenType, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(message)
	return lexer.Token{} // unreachable: p.error panics
}

func (p *Parser) error(message string) {
	panic(parseAbort{err: newParseError(p.current(), message)})
}

func (p *Parser) intLiteral(tok lexer.Token) ast.Expr {
	n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.error("invalid integer literal " + tok.Lexeme)
	}
	return &ast.Lit{Kind: ast.LitInt, Int: n}
}

func (p *Parser) floatLiteral(tok lexer.Token) ast.Expr {
	f, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		p.error("invalid float literal " + tok.Lexeme)
	}
	return &ast.Lit{Kind: ast.LitFloat, Flt: f}
}
