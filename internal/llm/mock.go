package llm

import (
	"context"
	"fmt"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

// MockClient is a deterministic narrative generator for tests and
// deployments without an API key. Set the response fields to control
// behavior.
type MockClient struct {
	GenerateResponse string
	GenerateError    error

	// Call tracking for assertions
	GenerateCalls []string
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) Generate(ctx context.Context, symptom string, hypothesis *domain.Hypothesis, observations []domain.ToolObservation) (string, error) {
	c.GenerateCalls = append(c.GenerateCalls, symptom)
	if c.GenerateError != nil {
		return "", c.GenerateError
	}
	if c.GenerateResponse != "" {
		return c.GenerateResponse, nil
	}
	return fmt.Sprintf("Likely %s cause: %s.", hypothesis.DebtType, hypothesis.Description), nil
}
