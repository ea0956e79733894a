package mock

import (
	"context"
	"strings"

	"github.com/astrodine/menusearch/core"
)

// MockMenuExtractor is a test double for ai.MenuExtractor.
// It allows custom behavior injection via function fields.
type MockMenuExtractor struct {
	// ExtractMenuFunc is called by ExtractMenu if set.
	// If nil, uses default line-based extraction.
	ExtractMenuFunc func(ctx context.Context, text string) (*core.Menu, error)

	callCount int
}

// NewMockMenuExtractor creates a mock menu extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockMenuExtractor().
func NewMockMenuExtractor() *MockMenuExtractor {
	return &MockMenuExtractor{}
}

// ExtractMenu produces a simple mock menu from the document text.
// Default behavior: the first non-empty line becomes the restaurant name and
// each following non-empty line becomes a dish name.
func (m *MockMenuExtractor) ExtractMenu(ctx context.Context, text string) (*core.Menu, error) {
	m.callCount++

	if m.ExtractMenuFunc != nil {
		return m.ExtractMenuFunc(ctx, text)
	}

	menu := &core.Menu{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if menu.RestaurantName == "" {
			menu.RestaurantName = line
			continue
		}
		menu.Dishes = append(menu.Dishes, core.Dish{
			Name:           line,
			RestaurantName: menu.RestaurantName,
		})
	}
	return menu, nil
}

// CallCount returns the number of ExtractMenu calls.
func (m *MockMenuExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockMenuExtractor) Reset() {
	m.callCount = 0
	m.ExtractMenuFunc = nil
}
