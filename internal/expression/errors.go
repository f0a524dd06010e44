package expression

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter is returned when the input contains a character outside the grammar.
	ErrInvalidCharacter = errors.New("invalid token")

	// ErrDivisionByZero is returned when a divisor evaluates to zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrOverflow is returned when an intermediate result does not fit in an int.
	ErrOverflow = errors.New("integer overflow")

	// ErrMismatchedParen is returned when a ')' has no matching '('.
	ErrMismatchedParen = errors.New("mismatched parenthesis")

	// ErrUnclosedParen is returned when a '(' is never closed.
	ErrUnclosedParen = errors.New("unclosed parenthesis")

	// ErrStackUnderflow is returned when an operator has too few operands.
	ErrStackUnderflow = errors.New("operand stack underflow")

	// ErrEmptyExpression is returned when there is no value to produce.
	ErrEmptyExpression = errors.New("empty expression")

	// ErrLeftoverOperands is returned when more than one value remains after evaluation.
	ErrLeftoverOperands = errors.New("too many operands")
)

// ErrorKind classifies pipeline errors.
type ErrorKind string

const (
	KindLex        ErrorKind = "lex"
	KindArithmetic ErrorKind = "arithmetic"
	KindMalformed  ErrorKind = "malformed"
	KindInternal   ErrorKind = "internal"
)

// LexError represents a tokenizing error.
type LexError struct {
	Position int    // Rune offset of the offending character
	Char     rune   // Offending character, 0 for digit-run errors
	Message  string // Error message
	Cause    error  // Underlying error
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at position %d: %s", e.Position, e.Message)
}

// Unwrap returns the underlying error.
func (e *LexError) Unwrap() error {
	return e.Cause
}

// NewLexError creates a new LexError.
func NewLexError(pos int, ch rune, message string, cause error) *LexError {
	return &LexError{
		Position: pos,
		Char:     ch,
		Message:  message,
		Cause:    cause,
	}
}

// ArithmeticError represents a failed arithmetic operation.
type ArithmeticError struct {
	Op    Operator
	Left  int
	Right int
	Cause error
}

// Error implements the error interface.
func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic error: %v: %d %s %d", e.Cause, e.Left, e.Op, e.Right)
}

// Unwrap returns the underlying error.
func (e *ArithmeticError) Unwrap() error {
	return e.Cause
}

// NewArithmeticError creates a new ArithmeticError.
func NewArithmeticError(op Operator, left, right int, cause error) *ArithmeticError {
	return &ArithmeticError{
		Op:    op,
		Left:  left,
		Right: right,
		Cause: cause,
	}
}

// MalformedExpressionError represents a structurally invalid expression.
type MalformedExpressionError struct {
	Position int // Token index, -1 when not tied to a token
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *MalformedExpressionError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("malformed expression at token %d: %s", e.Position, e.Message)
	}
	return fmt.Sprintf("malformed expression: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *MalformedExpressionError) Unwrap() error {
	return e.Cause
}

// NewMalformedExpressionError creates a new MalformedExpressionError.
func NewMalformedExpressionError(pos int, message string, cause error) *MalformedExpressionError {
	return &MalformedExpressionError{
		Position: pos,
		Message:  message,
		Cause:    cause,
	}
}

// InternalInvariantError reports a postfix sequence the evaluator cannot process.
// Parse never produces one.
type InternalInvariantError struct {
	Token   Token
	Message string
}

// Error implements the error interface.
func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("internal error: %s: %s", e.Message, e.Token.Type)
}

// NewInternalInvariantError creates a new InternalInvariantError.
func NewInternalInvariantError(tok Token, message string) *InternalInvariantError {
	return &InternalInvariantError{Token: tok, Message: message}
}

// KindOf returns the kind of the first pipeline error in err's chain,
// or the empty kind when err is nil or not a pipeline error.
func KindOf(err error) ErrorKind {
	var (
		lexErr       *LexError
		arithErr     *ArithmeticError
		malformedErr *MalformedExpressionError
		internalErr  *InternalInvariantError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &lexErr):
		return KindLex
	case errors.As(err, &arithErr):
		return KindArithmetic
	case errors.As(err, &malformedErr):
		return KindMalformed
	case errors.As(err, &internalErr):
		return KindInternal
	default:
		return ""
	}
}
