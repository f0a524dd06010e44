package expression

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTokenize(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := Tokenize(input)
	require.NoError(t, err)
	return tokens
}

func TestParser_Postfix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "1", expected: "1"},
		{input: "1 + 2", expected: "1 2 +"},
		{input: "2 + 3 * 4", expected: "2 3 4 * +"},
		{input: "2 * 3 + 4", expected: "2 3 * 4 +"},
		{input: "(2 + 3) * 4", expected: "2 3 + 4 *"},
		{input: "8 - 3 - 2", expected: "8 3 - 2 -"},
		{input: "8 / 4 / 2", expected: "8 4 / 2 /"},
		{input: "8 - 3 * 2 - 1", expected: "8 3 2 * - 1 -"},
		{input: "8 - (3 - 2)", expected: "8 3 2 - -"},
		{input: "((1))", expected: "1"},
		{input: "(42 * 42) + 3 * 2 * 20 + 3", expected: "42 42 * 3 2 * 20 * + 3 +"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			postfix, err := Parse(mustTokenize(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Format(postfix))
		})
	}
}

func TestParser_EmptyInput(t *testing.T) {
	postfix, err := Parse([]Token{})
	require.NoError(t, err)
	assert.Empty(t, postfix)

	postfix, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, postfix)
}

func TestParser_DropsParens(t *testing.T) {
	tokens := mustTokenize(t, "((1 + 2) * (3 - (4 / 5)))")
	postfix, err := Parse(tokens)
	require.NoError(t, err)

	numbers, operators := 0, 0
	for _, tok := range tokens {
		switch tok.Type {
		case TokenNumber:
			numbers++
		case TokenOperator:
			operators++
		}
	}
	assert.Len(t, postfix, numbers+operators)
	for _, tok := range postfix {
		assert.NotEqual(t, TokenLParen, tok.Type)
		assert.NotEqual(t, TokenRParen, tok.Type)
	}
}

func TestParser_DoesNotAliasInput(t *testing.T) {
	tokens := mustTokenize(t, "1 2")
	postfix, err := Parse(tokens)
	require.NoError(t, err)

	postfix[0] = NewNumber(99)
	assert.Equal(t, NewNumber(1), tokens[0])
}

func TestParser_MismatchedParens(t *testing.T) {
	tests := []struct {
		input string
		cause error
		pos   int
	}{
		{input: "1 + 2)", cause: ErrMismatchedParen, pos: 3},
		{input: ")", cause: ErrMismatchedParen, pos: 0},
		{input: "(1 + 2))", cause: ErrMismatchedParen, pos: 5},
		{input: "(1 + 2", cause: ErrUnclosedParen, pos: -1},
		{input: "((1)", cause: ErrUnclosedParen, pos: -1},
		{input: "(", cause: ErrUnclosedParen, pos: -1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			postfix, err := Parse(mustTokenize(t, tt.input))
			require.Error(t, err)
			assert.Nil(t, postfix)
			assert.ErrorIs(t, err, tt.cause)

			var malformed *MalformedExpressionError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.pos, malformed.Position)
			assert.Equal(t, KindMalformed, KindOf(err))
		})
	}
}

func TestParser_RejectsIllegalToken(t *testing.T) {
	_, err := Parse([]Token{NewNumber(1), {}})
	var malformed *MalformedExpressionError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Position)
}

func TestParser_Reusable(t *testing.T) {
	p := NewParser()

	first, err := p.Parse(mustTokenize(t, "1 + 2"))
	require.NoError(t, err)
	second, err := p.Parse(mustTokenize(t, "3 * 4"))
	require.NoError(t, err)

	assert.Equal(t, "1 2 +", Format(first))
	assert.Equal(t, "3 4 *", Format(second))
}
