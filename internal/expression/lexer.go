package expression

import (
	"fmt"
	"strconv"
	"unicode"
)

// Lexer tokenizes expression strings.
type Lexer struct {
	input   []rune
	pos     int  // current position in input
	readPos int  // current reading position (after current char)
	ch      rune // current char under examination, 0 at end of input
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: []rune(input)}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// Tokenize consumes the whole input and returns its tokens in input order.
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0, len(l.input))

	for !l.atEnd() {
		if unicode.IsSpace(l.ch) {
			l.readChar()
			continue
		}

		switch l.ch {
		case '+':
			tokens = append(tokens, NewOperator(OpAdd))
		case '-':
			tokens = append(tokens, NewOperator(OpSubtract))
		case '*':
			tokens = append(tokens, NewOperator(OpMultiply))
		case '/':
			tokens = append(tokens, NewOperator(OpDivide))
		case '(':
			tokens = append(tokens, LeftParen)
		case ')':
			tokens = append(tokens, RightParen)
		default:
			if isDigit(l.ch) {
				tok, err := l.readNumber()
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, tok)
				continue
			}
			return nil, NewLexError(l.pos, l.ch,
				fmt.Sprintf("invalid token %q: only integer numbers and the 4 basic math operations are allowed", l.ch),
				ErrInvalidCharacter)
		}
		l.readChar()
	}

	return tokens, nil
}

// readNumber reads a maximal run of decimal digits.
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	for !l.atEnd() && isDigit(l.ch) {
		l.readChar()
	}

	literal := string(l.input[start:l.pos])
	n, err := strconv.Atoi(literal)
	if err != nil {
		return Token{}, NewLexError(start, 0, "invalid integer: "+literal, err)
	}
	return NewNumber(n), nil
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize is a convenience function to tokenize an expression string.
func Tokenize(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}
