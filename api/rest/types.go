package rest

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadyResponse represents a readiness check response.
type ReadyResponse struct {
	Ready     bool   `json:"ready"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ExpressionRequest is the body of every expression endpoint.
type ExpressionRequest struct {
	Expression string `json:"expression"`
}

// TokenizeResponse represents the result of POST /api/v1/tokenize.
type TokenizeResponse struct {
	ID         string   `json:"id"`
	Expression string   `json:"expression"`
	Tokens     []string `json:"tokens"`
}

// ParseResponse represents the result of POST /api/v1/parse.
type ParseResponse struct {
	ID         string   `json:"id"`
	Expression string   `json:"expression"`
	Postfix    []string `json:"postfix"`
}

// EvaluateResponse represents the result of POST /api/v1/evaluate.
type EvaluateResponse struct {
	ID         string   `json:"id"`
	Expression string   `json:"expression"`
	Tokens     []string `json:"tokens"`
	Postfix    []string `json:"postfix"`
	Result     int      `json:"result"`
}
