package expression

import (
	stack "github.com/duke-git/lancet/v2/datastructure/stack"
)

// Parser converts infix token sequences into postfix order with the
// shunting-yard algorithm.
type Parser struct {
	output []Token
	ops    *stack.ArrayStack[Token] // Operators and left parens
}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts tokens into postfix order. The result holds only number and
// operator tokens; its length is the count of numbers plus operators in tokens.
func (p *Parser) Parse(tokens []Token) ([]Token, error) {
	p.output = make([]Token, 0, len(tokens))
	p.ops = stack.NewArrayStack[Token]()

	for i, tok := range tokens {
		switch tok.Type {
		case TokenNumber:
			p.output = append(p.output, tok)

		case TokenOperator:
			p.pushOperator(tok)

		case TokenLParen:
			p.ops.Push(tok)

		case TokenRParen:
			if err := p.closeParen(i); err != nil {
				return nil, err
			}

		default:
			return nil, NewMalformedExpressionError(i, "unexpected token "+tok.String(), nil)
		}
	}

	if err := p.drain(); err != nil {
		return nil, err
	}

	return p.output, nil
}

// pushOperator pops operators of greater or equal precedence, then pushes op.
// Popping on equal precedence makes operators left-associative.
func (p *Parser) pushOperator(op Token) {
	for !p.ops.IsEmpty() {
		top, _ := p.ops.Peak()
		if !top.IsOperator() || top.Op.Precedence() < op.Op.Precedence() {
			break
		}
		popped, _ := p.ops.Pop()
		p.output = append(p.output, *popped)
	}
	p.ops.Push(op)
}

// closeParen pops operators to the output until the matching left paren.
func (p *Parser) closeParen(pos int) error {
	for {
		top, err := p.ops.Pop()
		if err != nil {
			return NewMalformedExpressionError(pos, "')' without matching '('", ErrMismatchedParen)
		}
		if top.Type == TokenLParen {
			return nil
		}
		p.output = append(p.output, *top)
	}
}

// drain flushes the remaining operators in last-in-first-out order.
func (p *Parser) drain() error {
	for !p.ops.IsEmpty() {
		top, _ := p.ops.Pop()
		if top.Type == TokenLParen {
			return NewMalformedExpressionError(-1, "'(' is never closed", ErrUnclosedParen)
		}
		p.output = append(p.output, *top)
	}
	return nil
}

// Parse is a convenience function to convert tokens into postfix order.
func Parse(tokens []Token) ([]Token, error) {
	return NewParser().Parse(tokens)
}
