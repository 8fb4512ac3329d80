package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abatkin/expressions/lexer"
)

func TestTokenizePunctuationAndOperators(t *testing.T) {
	toks, err := lexer.Tokenize(`( ) { } [ ] , . : ? ; + - * / % ^ ! = == != < <= > >= && ||`)
	require.NoError(t, err)

	want := []lexer.TokenType{
		lexer.LPAREN, lexer.RPAREN, lexer.LBRACE, lexer.RBRACE, lexer.LBRACKET, lexer.RBRACKET,
		lexer.COMMA, lexer.DOT, lexer.COLON, lexer.QUESTION, lexer.SEMICOLON,
		lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT, lexer.CARET, lexer.BANG,
		lexer.EQUAL, lexer.EQUAL_EQUAL, lexer.BANG_EQUAL,
		lexer.LESS, lexer.LESS_EQUAL, lexer.GREATER, lexer.GREATER_EQUAL,
		lexer.AND_AND, lexer.OR_OR, lexer.EOF,
	}
	require.Len(t, toks, len(want))
	for i, ty := range want {
		assert.Equalf(t, ty, toks[i].Type, "token %d", i)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	toks, err := lexer.Tokenize("42 3.14 0")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, lexer.NUMBER_INT, toks[0].Type)
	assert.Equal(t, "42", toks[0].Lexeme)
	assert.Equal(t, lexer.NUMBER_FLOAT, toks[1].Type)
	assert.Equal(t, "3.14", toks[1].Lexeme)
	assert.Equal(t, lexer.NUMBER_INT, toks[2].Type)
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, err := lexer.Tokenize(`"a\nb\tc\\d\"e"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "a\nb\tc\\d\"e", toks[0].Lexeme)
}

func TestTokenizeUnterminatedStringIsError(t *testing.T) {
	_, err := lexer.Tokenize(`"abc`)
	require.Error(t, err)
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	toks, err := lexer.Tokenize("fn foo if bar else")
	require.NoError(t, err)
	require.Len(t, toks, 6)
	assert.Equal(t, lexer.FN, toks[0].Type)
	assert.Equal(t, lexer.IDENTIFIER, toks[1].Type)
	assert.Equal(t, lexer.IF, toks[2].Type)
	assert.Equal(t, lexer.IDENTIFIER, toks[3].Type)
	assert.Equal(t, lexer.ELSE, toks[4].Type)
}

func TestNewlineBeforeTracksStatementSeparators(t *testing.T) {
	toks, err := lexer.Tokenize("a = 1\nb = 2")
	require.NoError(t, err)
	// find the token for "b" and confirm it carries NewlineBefore
	var foundB bool
	for _, tok := range toks {
		if tok.Type == lexer.IDENTIFIER && tok.Lexeme == "b" {
			assert.True(t, tok.NewlineBefore)
			foundB = true
		}
	}
	assert.True(t, foundB)
}

func TestLineCommentsAreSkipped(t *testing.T) {
	toks, err := lexer.Tokenize("1 // a comment\n2")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, lexer.NUMBER_INT, toks[0].Type)
	assert.Equal(t, lexer.NUMBER_INT, toks[1].Type)
}

func TestAggregatesMultipleLexicalErrors(t *testing.T) {
	_, err := lexer.Tokenize("1 @ 2 # 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "@")
	assert.Contains(t, err.Error(), "#")
}
