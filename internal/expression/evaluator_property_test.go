package expression

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genToken generates any token. Negative codes select an operator or a paren.
func genToken() gopter.Gen {
	return gen.IntRange(-6, 500).Map(func(code int) Token {
		switch code {
		case -6:
			return NewOperator(OpAdd)
		case -5:
			return NewOperator(OpSubtract)
		case -4:
			return NewOperator(OpMultiply)
		case -3:
			return NewOperator(OpDivide)
		case -2:
			return LeftParen
		case -1:
			return RightParen
		default:
			return NewNumber(code)
		}
	})
}

func tokensEqual(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestTokenizerProperty checks that tokenizing is pure and whitespace-insensitive.
func TestTokenizerProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("tokenize(format(tokens)) == tokens", prop.ForAll(
		func(tokens []Token) bool {
			got, err := Tokenize(Format(tokens))
			return err == nil && tokensEqual(tokens, got)
		},
		gen.SliceOf(genToken()),
	))

	properties.Property("whitespace between tokens is ignored", prop.ForAll(
		func(tokens []Token, sep string) bool {
			spaced, err := Tokenize(strings.Join(Strings(tokens), sep))
			if err != nil {
				return false
			}
			single, err := Tokenize(Format(tokens))
			return err == nil && tokensEqual(spaced, single)
		},
		gen.SliceOf(genToken()),
		gen.OneConstOf(" ", "  ", "\t", "\n", " \r\n ", " "),
	))

	properties.Property("tokenize is deterministic", prop.ForAll(
		func(tokens []Token) bool {
			input := Format(tokens)
			first, err1 := Tokenize(input)
			second, err2 := Tokenize(input)
			return err1 == nil && err2 == nil && tokensEqual(first, second)
		},
		gen.SliceOf(genToken()),
	))

	properties.TestingRun(t)
}

// TestParserProperty checks the postfix length invariant on arbitrary token sequences.
func TestParserProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	properties.Property("postfix holds exactly the numbers and operators", prop.ForAll(
		func(tokens []Token) bool {
			postfix, err := Parse(tokens)
			if err != nil {
				// Random sequences only ever fail on parentheses.
				return errors.Is(err, ErrMismatchedParen) || errors.Is(err, ErrUnclosedParen)
			}

			expected := 0
			for _, tok := range tokens {
				if tok.IsNumber() || tok.IsOperator() {
					expected++
				}
			}
			if len(postfix) != expected {
				return false
			}
			for _, tok := range postfix {
				if !tok.IsNumber() && !tok.IsOperator() {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genToken()),
	))

	properties.TestingRun(t)
}

// TestArithmeticProperty checks precedence, associativity and division semantics.
func TestArithmeticProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	eval := func(format string, args ...any) (int, error) {
		return EvaluateString(fmt.Sprintf(format, args...))
	}

	properties.Property("multiplication binds tighter than addition", prop.ForAll(
		func(a, b, c int) bool {
			res, err := eval("%d + %d * %d", a, b, c)
			return err == nil && res == a+b*c
		},
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
	))

	properties.Property("subtraction is left associative", prop.ForAll(
		func(a, b, c int) bool {
			res, err := eval("%d - %d - %d", a, b, c)
			return err == nil && res == a-b-c
		},
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
	))

	properties.Property("parentheses override precedence", prop.ForAll(
		func(a, b, c int) bool {
			res, err := eval("(%d + %d) * %d", a, b, c)
			return err == nil && res == (a+b)*c
		},
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
	))

	properties.Property("division truncates and rejects zero", prop.ForAll(
		func(a, b int) bool {
			res, err := eval("%d / %d", a, b)
			if b == 0 {
				return errors.Is(err, ErrDivisionByZero)
			}
			return err == nil && res == a/b
		},
		gen.IntRange(0, 10000),
		gen.IntRange(0, 50),
	))

	properties.TestingRun(t)
}
