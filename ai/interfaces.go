package ai

import (
	"context"

	"github.com/astrodine/menusearch/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryAnalyzer turns a free-text question into search inputs.
// Implementations must be thread-safe for concurrent use.
type QueryAnalyzer interface {
	// ExtractFilter identifies the exact-match constraints stated in the
	// question: planet, restaurant, chef, and required or forbidden
	// ingredients and techniques. Fields not mentioned in the question are
	// left absent. Returns an error if the underlying call fails or the
	// response cannot be parsed; callers are expected to degrade to an
	// all-absent filter.
	ExtractFilter(ctx context.Context, question string) (core.StructuredFilter, error)

	// OptimizeQuery condenses the question into a single-line string that
	// maximizes embedding-similarity recall: the mentioned ingredient and
	// technique names plus minimal context words. Returns an error if the
	// underlying call fails; callers fall back to the raw question.
	OptimizeQuery(ctx context.Context, question string) (string, error)
}

// DishVerifier judges retrieved candidates against the original question.
// Implementations must be thread-safe for concurrent use.
type DishVerifier interface {
	// VerifyDishes returns the names of the candidates that exactly satisfy
	// every constraint implied by the question. The result may be empty.
	// Implementations are not trusted to stay within the candidate set;
	// callers must discard any name that was not passed in.
	VerifyDishes(ctx context.Context, question string, candidates []core.SearchCandidate) ([]string, error)
}

// MenuExtractor converts raw menu document text into structured data.
// Implementations must be thread-safe for concurrent use.
type MenuExtractor interface {
	// ExtractMenu parses the restaurant identity and the full dish list out
	// of the document text, reporting names exactly as written.
	ExtractMenu(ctx context.Context, text string) (*core.Menu, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages the services, ensuring they share
// configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// QueryAnalyzer returns the question analysis service.
	QueryAnalyzer() QueryAnalyzer

	// DishVerifier returns the candidate verification service.
	DishVerifier() DishVerifier

	// MenuExtractor returns the menu document extraction service.
	MenuExtractor() MenuExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
