package lexer

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/josharian/intern"
)

// LexError reports a single unexpected-character or unterminated-literal
// diagnostic. Tokenize keeps scanning after one is found so a single source
// file can report every lexical problem it has in one pass.
type LexError struct {
	Line    int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Scanner is a byte-cursor tokenizer. It is not re-entrant and consumes one
// source string per instance, mirroring the teacher's cursor-based design.
type Scanner struct {
	src  []byte
	idx  int
	ch   byte
	line int
}

// New creates a Scanner over src, positioned just before the first byte.
func New(src string) *Scanner {
	return &Scanner{src: []byte(src), idx: -1, line: 1}
}

func (s *Scanner) next() bool {
	if s.idx >= len(s.src)-1 {
		return false
	}
	s.idx++
	s.ch = s.src[s.idx]
	return true
}

func (s *Scanner) peek() byte {
	if s.idx >= len(s.src)-1 {
		return 0
	}
	return s.src[s.idx+1]
}

func (s *Scanner) peekTwo() byte {
	if s.idx >= len(s.src)-2 {
		return 0
	}
	return s.src[s.idx+2]
}

// Tokenize scans the whole source and returns every token found plus an
// aggregated error (via go-multierror) describing every lexical problem
// encountered, nil if there were none.
func Tokenize(src string) ([]Token, error) {
	s := New(src)
	toks := make([]Token, 0, len(src)/4+1)
	var errs error
	newlineSeen := false

	emit := func(tok Token) {
		tok.NewlineBefore = newlineSeen
		newlineSeen = false
		toks = append(toks, tok)
	}

	for s.next() {
		switch {
		case s.ch == ' ' || s.ch == '\t' || s.ch == '\r':
			// spacer
		case s.ch == '\n':
			s.line++
			newlineSeen = true
		case s.ch == '/' && s.peek() == '/':
			s.skipLineComment()
		case s.ch == '(':
			emit(s.single(LPAREN))
		case s.ch == ')':
			emit(s.single(RPAREN))
		case s.ch == '{':
			emit(s.single(LBRACE))
		case s.ch == '}':
			emit(s.single(RBRACE))
		case s.ch == '[':
			emit(s.single(LBRACKET))
		case s.ch == ']':
			emit(s.single(RBRACKET))
		case s.ch == ',':
			emit(s.single(COMMA))
		case s.ch == '.':
			emit(s.single(DOT))
		case s.ch == ':':
			emit(s.single(COLON))
		case s.ch == '?':
			emit(s.single(QUESTION))
		case s.ch == ';':
			emit(s.single(SEMICOLON))
		case s.ch == '+':
			emit(s.single(PLUS))
		case s.ch == '-':
			emit(s.single(MINUS))
		case s.ch == '*':
			emit(s.single(STAR))
		case s.ch == '/':
			emit(s.single(SLASH))
		case s.ch == '%':
			emit(s.single(PERCENT))
		case s.ch == '^':
			emit(s.single(CARET))
		case s.ch == '=':
			emit(s.oneOrTwo('=', EQUAL, EQUAL_EQUAL))
		case s.ch == '!':
			emit(s.oneOrTwo('=', BANG, BANG_EQUAL))
		case s.ch == '<':
			emit(s.oneOrTwo('=', LESS, LESS_EQUAL))
		case s.ch == '>':
			emit(s.oneOrTwo('=', GREATER, GREATER_EQUAL))
		case s.ch == '&' && s.peek() == '&':
			s.next()
			emit(Token{Type: AND_AND, Lexeme: "&&", Line: s.line})
		case s.ch == '|' && s.peek() == '|':
			s.next()
			emit(Token{Type: OR_OR, Lexeme: "||", Line: s.line})
		case s.ch == '"' || s.ch == '\'':
			str, err := s.stringLiteral(s.ch)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			emit(Token{Type: STRING, Lexeme: str, Line: s.line})
		case isDigit(s.ch):
			emit(s.numberLiteral())
		case isAlpha(s.ch):
			ident := intern.String(s.identifier())
			if kw, ok := Reserved[ident]; ok {
				emit(Token{Type: kw, Lexeme: ident, Line: s.line})
			} else {
				emit(Token{Type: IDENTIFIER, Lexeme: ident, Line: s.line})
			}
		default:
			errs = multierror.Append(errs, &LexError{
				Line:    s.line,
				Message: fmt.Sprintf("unexpected character %q", s.ch),
			})
		}
	}

	emit(Token{Type: EOF, Line: s.line})
	return toks, errs
}

func (s *Scanner) single(t TokenType) Token {
	return Token{Type: t, Lexeme: string(s.ch), Line: s.line}
}

func (s *Scanner) oneOrTwo(second byte, one, two TokenType) Token {
	if s.peek() == second {
		s.next()
		return Token{Type: two, Lexeme: names[two], Line: s.line}
	}
	return Token{Type: one, Lexeme: string(s.ch), Line: s.line}
}

func (s *Scanner) skipLineComment() {
	for s.peek() != '\n' && s.next() {
	}
}

// stringLiteral consumes a quoted string (quote already in s.ch), applying
// the escapes specified for this grammar: \n \r \t \\ \" \' and a
// backslash immediately followed by a literal newline.
func (s *Scanner) stringLiteral(quote byte) (string, error) {
	var sb strings.Builder
	startLine := s.line

	for {
		if !s.next() {
			return "", &LexError{Line: startLine, Message: "unterminated string"}
		}
		switch {
		case s.ch == quote:
			return sb.String(), nil
		case s.ch == '\\':
			if !s.next() {
				return "", &LexError{Line: startLine, Message: "unterminated string"}
			}
			switch s.ch {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case '\'':
				sb.WriteByte('\'')
			case '\n':
				sb.WriteByte('\n')
				s.line++
			default:
				sb.WriteByte(s.ch)
			}
		case s.ch == '\n':
			return "", &LexError{Line: s.line, Message: "unterminated string: raw newline in string literal"}
		default:
			sb.WriteByte(s.ch)
		}
	}
}

// numberLiteral consumes an (unsigned) Int or Float token. The grammar's
// leading '-' always belongs to the unary operator, never the literal.
func (s *Scanner) numberLiteral() Token {
	start := s.idx
	isFloat := false

	for isDigit(s.peek()) {
		s.next()
	}
	if s.peek() == '.' && isDigit(s.peekTwo()) {
		isFloat = true
		s.next()
		for isDigit(s.peek()) {
			s.next()
		}
	}

	typ := NUMBER_INT
	if isFloat {
		typ = NUMBER_FLOAT
	}
	return Token{Type: typ, Lexeme: string(s.src[start : s.idx+1]), Line: s.line}
}

func (s *Scanner) identifier() string {
	start := s.idx
	for isAlphaNumeric(s.peek()) {
		s.next()
	}
	return string(s.src[start : s.idx+1])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
