package rest

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"yqhp/calc-engine/internal/calculator"
	"yqhp/calc-engine/internal/expression"
)

// healthCheck handles GET /health
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// readyCheck handles GET /ready
func (s *Server) readyCheck(c *fiber.Ctx) error {
	ready := s.calc != nil
	status := "ready"
	if !ready {
		status = "not_ready"
	}

	return c.JSON(ReadyResponse{
		Ready:     ready,
		Status:    status,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// evaluate handles POST /api/v1/evaluate
func (s *Server) evaluate(c *fiber.Ctx) error {
	var req ExpressionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	res, err := s.calc.Evaluate(c.UserContext(), req.Expression)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(EvaluateResponse{
		ID:         requestID(c),
		Expression: res.Expression,
		Tokens:     expression.Strings(res.Tokens),
		Postfix:    expression.Strings(res.Postfix),
		Result:     res.Value,
	})
}

// tokenize handles POST /api/v1/tokenize
func (s *Server) tokenize(c *fiber.Ctx) error {
	var req ExpressionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	tokens, err := s.calc.Tokenize(c.UserContext(), req.Expression)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(TokenizeResponse{
		ID:         requestID(c),
		Expression: req.Expression,
		Tokens:     expression.Strings(tokens),
	})
}

// parse handles POST /api/v1/parse
func (s *Server) parse(c *fiber.Ctx) error {
	var req ExpressionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	postfix, err := s.calc.Postfix(c.UserContext(), req.Expression)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(ParseResponse{
		ID:         requestID(c),
		Expression: req.Expression,
		Postfix:    expression.Strings(postfix),
	})
}

// stats handles GET /api/v1/stats
func (s *Server) stats(c *fiber.Ctx) error {
	return c.JSON(s.calc.Stats())
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: "Failed to parse request body: " + err.Error(),
		ID:      requestID(c),
	})
}

// writeError maps a calculator error to a status code and error body.
func writeError(c *fiber.Ctx, err error) error {
	status, kind := classify(err)
	return c.Status(status).JSON(ErrorResponse{
		Error:   kind,
		Message: err.Error(),
		ID:      requestID(c),
	})
}

func classify(err error) (int, string) {
	switch kind := calculator.KindOf(err); kind {
	case calculator.KindRejected:
		return fiber.StatusRequestEntityTooLarge, kind
	case calculator.KindCanceled:
		return fiber.StatusRequestTimeout, kind
	case string(expression.KindLex), string(expression.KindArithmetic), string(expression.KindMalformed):
		return fiber.StatusUnprocessableEntity, kind
	default:
		return fiber.StatusInternalServerError, kind
	}
}
