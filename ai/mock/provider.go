// Copyright 2025 Astrodine Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/astrodine/menusearch/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock service instances.
type MockProvider struct {
	embedder  *MockEmbedder
	analyzer  *MockQueryAnalyzer
	verifier  *MockDishVerifier
	extractor *MockMenuExtractor
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use the GetMock* accessors to reach concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		analyzer:  NewMockQueryAnalyzer(),
		verifier:  NewMockDishVerifier(),
		extractor: NewMockMenuExtractor(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(
	embedder *MockEmbedder,
	analyzer *MockQueryAnalyzer,
	verifier *MockDishVerifier,
	extractor *MockMenuExtractor,
) ai.Provider {
	return &MockProvider{
		embedder:  embedder,
		analyzer:  analyzer,
		verifier:  verifier,
		extractor: extractor,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// QueryAnalyzer returns the mock query analyzer.
func (p *MockProvider) QueryAnalyzer() ai.QueryAnalyzer {
	return p.analyzer
}

// DishVerifier returns the mock dish verifier.
func (p *MockProvider) DishVerifier() ai.DishVerifier {
	return p.verifier
}

// MenuExtractor returns the mock menu extractor.
func (p *MockProvider) MenuExtractor() ai.MenuExtractor {
	return p.extractor
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockAnalyzer returns the underlying mock query analyzer for test assertions.
func (p *MockProvider) GetMockAnalyzer() *MockQueryAnalyzer {
	return p.analyzer
}

// GetMockVerifier returns the underlying mock dish verifier for test assertions.
func (p *MockProvider) GetMockVerifier() *MockDishVerifier {
	return p.verifier
}

// GetMockMenuExtractor returns the underlying mock menu extractor for test assertions.
func (p *MockProvider) GetMockMenuExtractor() *MockMenuExtractor {
	return p.extractor
}
