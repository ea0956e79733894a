package mock

import (
	"context"

	"github.com/astrodine/menusearch/core"
)

// MockDishVerifier is a test double for ai.DishVerifier.
// It allows custom behavior injection via function fields.
type MockDishVerifier struct {
	// VerifyDishesFunc is called by VerifyDishes if set.
	// If nil, accepts every candidate.
	VerifyDishesFunc func(ctx context.Context, question string, candidates []core.SearchCandidate) ([]string, error)

	callCount int
}

// NewMockDishVerifier creates a mock verifier that accepts all candidates.
// Note: Returns concrete type to allow test assertions via GetMockVerifier().
func NewMockDishVerifier() *MockDishVerifier {
	return &MockDishVerifier{}
}

// VerifyDishes returns all candidate names by default.
func (m *MockDishVerifier) VerifyDishes(ctx context.Context, question string, candidates []core.SearchCandidate) ([]string, error) {
	m.callCount++

	if m.VerifyDishesFunc != nil {
		return m.VerifyDishesFunc(ctx, question, candidates)
	}

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	return names, nil
}

// CallCount returns the number of VerifyDishes calls.
func (m *MockDishVerifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockDishVerifier) Reset() {
	m.callCount = 0
	m.VerifyDishesFunc = nil
}
