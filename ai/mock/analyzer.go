package mock

import (
	"context"
	"strings"

	"github.com/astrodine/menusearch/core"
)

// MockQueryAnalyzer is a test double for ai.QueryAnalyzer.
// It allows custom behavior injection via function fields.
type MockQueryAnalyzer struct {
	// ExtractFilterFunc is called by ExtractFilter if set.
	// If nil, uses default simple keyword scanning.
	ExtractFilterFunc func(ctx context.Context, question string) (core.StructuredFilter, error)

	// OptimizeQueryFunc is called by OptimizeQuery if set.
	// If nil, returns the question unchanged.
	OptimizeQueryFunc func(ctx context.Context, question string) (string, error)

	extractCallCount  int
	optimizeCallCount int
}

// NewMockQueryAnalyzer creates a mock analyzer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockAnalyzer().
func NewMockQueryAnalyzer() *MockQueryAnalyzer {
	return &MockQueryAnalyzer{}
}

// ExtractFilter produces a simple mock filter from the question.
// Default behavior: sets the planet when the question mentions one of the
// known planets verbatim; all other fields stay absent.
func (m *MockQueryAnalyzer) ExtractFilter(ctx context.Context, question string) (core.StructuredFilter, error) {
	m.extractCallCount++

	if m.ExtractFilterFunc != nil {
		return m.ExtractFilterFunc(ctx, question)
	}

	var filter core.StructuredFilter
	lower := strings.ToLower(question)
	for _, planet := range core.Planets {
		if strings.Contains(lower, strings.ToLower(planet)) {
			filter.Planet = planet
			break
		}
	}
	return filter, nil
}

// OptimizeQuery returns the question unchanged by default.
func (m *MockQueryAnalyzer) OptimizeQuery(ctx context.Context, question string) (string, error) {
	m.optimizeCallCount++

	if m.OptimizeQueryFunc != nil {
		return m.OptimizeQueryFunc(ctx, question)
	}

	return question, nil
}

// ExtractCallCount returns the number of ExtractFilter calls.
func (m *MockQueryAnalyzer) ExtractCallCount() int {
	return m.extractCallCount
}

// OptimizeCallCount returns the number of OptimizeQuery calls.
func (m *MockQueryAnalyzer) OptimizeCallCount() int {
	return m.optimizeCallCount
}

// Reset clears the call counts and any injected behavior.
func (m *MockQueryAnalyzer) Reset() {
	m.extractCallCount = 0
	m.optimizeCallCount = 0
	m.ExtractFilterFunc = nil
	m.OptimizeQueryFunc = nil
}
