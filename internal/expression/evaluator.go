package expression

import (
	"fmt"
	"math"

	stack "github.com/duke-git/lancet/v2/datastructure/stack"
)

// Calculator runs the expression pipeline stages.
type Calculator interface {
	// Tokenize converts an expression string into tokens.
	Tokenize(input string) ([]Token, error)

	// Parse converts tokens into postfix order.
	Parse(tokens []Token) ([]Token, error)

	// Evaluate evaluates a postfix sequence.
	Evaluate(postfix []Token) (int, error)

	// EvaluateString runs all three stages on an expression string.
	EvaluateString(input string) (int, error)
}

// DefaultCalculator is the default implementation of Calculator.
type DefaultCalculator struct{}

// NewCalculator creates a new DefaultCalculator.
func NewCalculator() *DefaultCalculator {
	return &DefaultCalculator{}
}

// Tokenize converts an expression string into tokens.
func (c *DefaultCalculator) Tokenize(input string) ([]Token, error) {
	return Tokenize(input)
}

// Parse converts tokens into postfix order.
func (c *DefaultCalculator) Parse(tokens []Token) ([]Token, error) {
	return Parse(tokens)
}

// Evaluate evaluates a postfix sequence.
func (c *DefaultCalculator) Evaluate(postfix []Token) (int, error) {
	return Evaluate(postfix)
}

// EvaluateString runs all three stages on an expression string.
func (c *DefaultCalculator) EvaluateString(input string) (int, error) {
	return EvaluateString(input)
}

// Result holds every stage output of one pipeline run.
type Result struct {
	Expression string
	Tokens     []Token
	Postfix    []Token
	Value      int
}

// String renders the result as "<expression> = <value>".
func (r *Result) String() string {
	return fmt.Sprintf("%s = %d", r.Expression, r.Value)
}

// Run tokenizes, parses and evaluates input. It returns nil on any error.
func Run(input string) (*Result, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}

	postfix, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	value, err := Evaluate(postfix)
	if err != nil {
		return nil, err
	}

	return &Result{
		Expression: input,
		Tokens:     tokens,
		Postfix:    postfix,
		Value:      value,
	}, nil
}

// EvaluateString is a convenience function to evaluate an expression string.
func EvaluateString(input string) (int, error) {
	res, err := Run(input)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// Evaluate evaluates a postfix sequence with an operand stack. Exactly one
// value must remain when the sequence is exhausted.
func Evaluate(postfix []Token) (int, error) {
	operands := stack.NewArrayStack[int]()

	for i, tok := range postfix {
		switch tok.Type {
		case TokenNumber:
			operands.Push(tok.Value)

		case TokenOperator:
			right, err := operands.Pop()
			if err != nil {
				return 0, underflow(i, tok)
			}
			left, err := operands.Pop()
			if err != nil {
				return 0, underflow(i, tok)
			}
			res, err := apply(tok.Op, *left, *right)
			if err != nil {
				return 0, err
			}
			operands.Push(res)

		default:
			return 0, NewInternalInvariantError(tok, "parser bug: unexpected token in postfix")
		}
	}

	switch operands.Size() {
	case 0:
		return 0, NewMalformedExpressionError(-1, "no result on operand stack", ErrEmptyExpression)
	case 1:
		res, _ := operands.Pop()
		return *res, nil
	default:
		return 0, NewMalformedExpressionError(-1,
			fmt.Sprintf("%d values left on operand stack", operands.Size()), ErrLeftoverOperands)
	}
}

func underflow(pos int, tok Token) error {
	return NewMalformedExpressionError(pos, "expected number before operator "+tok.Op.String(), ErrStackUnderflow)
}

// apply computes left op right. Division truncates toward zero.
func apply(op Operator, left, right int) (int, error) {
	switch op {
	case OpAdd:
		res := left + right
		if (res > left) != (right > 0) {
			return 0, NewArithmeticError(op, left, right, ErrOverflow)
		}
		return res, nil

	case OpSubtract:
		res := left - right
		if (res < left) != (right > 0) {
			return 0, NewArithmeticError(op, left, right, ErrOverflow)
		}
		return res, nil

	case OpMultiply:
		if left == 0 || right == 0 {
			return 0, nil
		}
		res := left * right
		if res/right != left || (right == -1 && left == math.MinInt) {
			return 0, NewArithmeticError(op, left, right, ErrOverflow)
		}
		return res, nil

	case OpDivide:
		if right == 0 {
			return 0, NewArithmeticError(op, left, right, ErrDivisionByZero)
		}
		if left == math.MinInt && right == -1 {
			return 0, NewArithmeticError(op, left, right, ErrOverflow)
		}
		return left / right, nil

	default:
		return 0, NewInternalInvariantError(NewOperator(op), "unknown operator")
	}
}
