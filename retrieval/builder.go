package retrieval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/astrodine/menusearch/ai"
	"github.com/astrodine/menusearch/catalog"
	"github.com/astrodine/menusearch/core"
)

// Extraction is everything the builder derives from one question. The two
// error fields record collaborator failures for observability; the filter,
// query, and predicate are always usable regardless.
type Extraction struct {
	// Filter is the structured filter extracted from the question,
	// all-absent when extraction failed.
	Filter core.StructuredFilter

	// SemanticQuery is the condensed embedding query, falling back to the
	// raw question when optimization failed.
	SemanticQuery string

	// Predicate is the filter compiled into the store's condition groups,
	// nil when the filter carries no constraint.
	Predicate *catalog.Filter

	// FilterErr and QueryErr record why extraction degraded, nil on success.
	FilterErr error
	QueryErr  error
}

// FilterBuilder turns a question into a validated filter, a semantic search
// query, and a compiled store predicate. It never fails: every collaborator
// error degrades to the safe default of an unfiltered search on the raw
// question.
type FilterBuilder struct {
	analyzer ai.QueryAnalyzer
	logger   *slog.Logger
}

// NewFilterBuilder creates a filter builder on the given analyzer.
func NewFilterBuilder(analyzer ai.QueryAnalyzer) *FilterBuilder {
	return &FilterBuilder{
		analyzer: analyzer,
		logger:   slog.Default().With("component", "filter-builder"),
	}
}

// Extract derives the filter, semantic query, and compiled predicate for a
// question. Contradictory extractions (a term both required and forbidden)
// resolve in favor of the requirement before compilation.
func (b *FilterBuilder) Extract(ctx context.Context, question string) Extraction {
	extraction := Extraction{SemanticQuery: question}

	filter, err := b.analyzer.ExtractFilter(ctx, question)
	if err != nil {
		b.logger.Warn("filter extraction failed, degrading to unfiltered search",
			"error", err)
		extraction.FilterErr = err
	} else {
		filter.ResolveOverlap()
		extraction.Filter = filter
		extraction.Predicate = compileFilter(&filter)
	}

	optimized, err := b.analyzer.OptimizeQuery(ctx, question)
	if err != nil {
		b.logger.Warn("query optimization failed, using the raw question",
			"error", err)
		extraction.QueryErr = err
	} else if optimized = strings.TrimSpace(optimized); optimized != "" {
		extraction.SemanticQuery = optimized
	}

	return extraction
}
