// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.QueryAnalyzer,
// ai.DishVerifier, ai.MenuExtractor, and ai.Provider for use in unit tests.
// The mocks allow tests to run without external AI service dependencies and
// enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	vector, err := provider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	verifier := mock.NewMockDishVerifier()
//	verifier.VerifyDishesFunc = func(ctx context.Context, question string, candidates []core.SearchCandidate) ([]string, error) {
//	    return []string{"Plasma Noodles"}, nil
//	}
//
//	// Check call counts
//	count := verifier.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockQueryAnalyzer: Detects known planet mentions, echoes the question
//   - MockDishVerifier: Accepts every candidate
//   - MockMenuExtractor: One dish per non-empty line after the first
//   - MockProvider: Aggregates all of the above
package mock
