// Package calculator wraps the expression pipeline with input limits,
// logging and metrics for the CLI, REST and MCP front ends.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yqhp/calc-engine/internal/expression"
	"yqhp/calc-engine/internal/metrics"
	"yqhp/calc-engine/pkg/logger"
)

// ErrExpressionTooLong is returned when an expression exceeds the configured limit.
var ErrExpressionTooLong = errors.New("expression too long")

// Kinds for errors raised outside the expression pipeline.
const (
	KindRejected = "rejected"
	KindCanceled = "canceled"
)

// KindOf classifies err for the front ends. Unknown errors are internal.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrExpressionTooLong):
		return KindRejected
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	}
	if kind := expression.KindOf(err); kind != "" {
		return string(kind)
	}
	return string(expression.KindInternal)
}

// Service evaluates expressions. It is safe for concurrent use.
type Service struct {
	maxLength int
	logger    *zap.Logger
	recorder  *metrics.Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithMaxLength limits expressions to n bytes. n <= 0 disables the limit.
func WithMaxLength(n int) Option {
	return func(s *Service) { s.maxLength = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r *metrics.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// New creates a Service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Logger()
	}
	if s.recorder == nil {
		s.recorder = metrics.NewRecorder()
	}
	return s
}

// Evaluate runs the full pipeline on expr.
func (s *Service) Evaluate(ctx context.Context, expr string) (*expression.Result, error) {
	if err := s.admit(ctx, expr); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := expression.Run(expr)
	var fields []zap.Field
	if res != nil {
		fields = append(fields, zap.Int("result", res.Value))
	}
	s.observe("evaluate", expr, time.Since(start), err, fields...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Tokenize runs only the tokenizer on expr.
func (s *Service) Tokenize(ctx context.Context, expr string) ([]expression.Token, error) {
	if err := s.admit(ctx, expr); err != nil {
		return nil, err
	}

	start := time.Now()
	tokens, err := expression.Tokenize(expr)
	s.observe("tokenize", expr, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Postfix tokenizes expr and converts it into postfix order.
func (s *Service) Postfix(ctx context.Context, expr string) ([]expression.Token, error) {
	if err := s.admit(ctx, expr); err != nil {
		return nil, err
	}

	start := time.Now()
	tokens, err := expression.Tokenize(expr)
	var postfix []expression.Token
	if err == nil {
		postfix, err = expression.Parse(tokens)
	}
	s.observe("postfix", expr, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return postfix, nil
}

// Stats returns the recorded metrics. Every Evaluate, Tokenize and Postfix
// call that passes admission counts once.
func (s *Service) Stats() metrics.Snapshot {
	return s.recorder.Snapshot()
}

// observe records one call and logs its outcome.
func (s *Service) observe(stage, expr string, elapsed time.Duration, err error, fields ...zap.Field) {
	s.recorder.Observe(elapsed, err)

	fields = append(fields,
		zap.String("stage", stage),
		zap.String("expression", expr),
		zap.Duration("elapsed", elapsed))
	if err != nil {
		fields = append(fields, zap.String("kind", KindOf(err)), zap.Error(err))
		s.logger.Warn("expression failed", fields...)
		return
	}
	s.logger.Debug("expression processed", fields...)
}

// admit checks the context and the length limit before any stage runs.
func (s *Service) admit(ctx context.Context, expr string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.maxLength > 0 && len(expr) > s.maxLength {
		s.recorder.Reject()
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrExpressionTooLong, len(expr), s.maxLength)
	}
	return nil
}
