// Package expression provides integer arithmetic expression tokenizing, shunting-yard
// parsing into postfix form, and postfix evaluation.
package expression

import (
	"strconv"
	"strings"
)

// TokenType represents the type of a token.
type TokenType int

const (
	TokenIllegal TokenType = iota

	TokenOperator // + - * /
	TokenNumber   // integer literal
	TokenLParen   // (
	TokenRParen   // )
)

// String returns the string representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenIllegal:
		return "ILLEGAL"
	case TokenOperator:
		return "OPERATOR"
	case TokenNumber:
		return "NUMBER"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	default:
		return "UNKNOWN"
	}
}

// Operator is the kind of a binary arithmetic operator.
type Operator int

const (
	OpAdd Operator = iota + 1
	OpSubtract
	OpMultiply
	OpDivide
)

// Precedence returns the binding rank of the operator. Higher binds tighter.
func (o Operator) Precedence() int {
	switch o {
	case OpAdd, OpSubtract:
		return 1
	case OpMultiply, OpDivide:
		return 2
	default:
		return 0
	}
}

// String returns the source spelling of the operator.
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "?"
	}
}

// Token represents a lexical token. Tokens are values; two tokens are equal
// when their type and payload are equal.
type Token struct {
	Type  TokenType
	Op    Operator // set for TokenOperator
	Value int      // set for TokenNumber
}

// NewOperator creates an operator token.
func NewOperator(op Operator) Token {
	return Token{Type: TokenOperator, Op: op}
}

// NewNumber creates a number token.
func NewNumber(n int) Token {
	return Token{Type: TokenNumber, Value: n}
}

// LeftParen and RightParen are the parenthesis tokens.
var (
	LeftParen  = Token{Type: TokenLParen}
	RightParen = Token{Type: TokenRParen}
)

// IsOperator reports whether the token is an operator.
func (t Token) IsOperator() bool { return t.Type == TokenOperator }

// IsNumber reports whether the token is a number.
func (t Token) IsNumber() bool { return t.Type == TokenNumber }

// String returns the source spelling of the token.
func (t Token) String() string {
	switch t.Type {
	case TokenOperator:
		return t.Op.String()
	case TokenNumber:
		return strconv.Itoa(t.Value)
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	default:
		return "?"
	}
}

// Format renders a token sequence as space-separated source spellings.
func Format(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// Strings returns the source spelling of every token.
func Strings(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.String()
	}
	return out
}
