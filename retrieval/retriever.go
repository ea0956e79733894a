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


package retrieval

import (
	"context"
	"log/slog"

	"github.com/astrodine/menusearch/ai"
	"github.com/astrodine/menusearch/catalog"
)

// DefaultTopK is the number of hits requested from the store when the
// caller does not choose one.
const DefaultTopK = 50

// attemptState is the retriever's position in the two-attempt protocol.
type attemptState int

const (
	attemptFiltered attemptState = iota
	attemptFallback
	attemptDone
)

// Retriever answers a question with the names of dishes that exactly
// satisfy it. It runs a strictly sequential two-attempt protocol: a
// precise filtered search first, then one unfiltered rescue search when
// the first attempt verifies nothing. Both attempts reuse the same
// extraction and embedding; the only branching decision is "did the
// filtered attempt verify at least one name".
//
// A retriever never fails: collaborator errors at any stage degrade to an
// empty result for that question.
type Retriever struct {
	builder  *FilterBuilder
	verifier *Verifier
	embedder ai.Embedder
	store    catalog.Repository
	topK     int
	logger   *slog.Logger
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithTopK sets the number of hits requested per store query.
// Non-positive values fall back to DefaultTopK.
func WithTopK(topK int) RetrieverOption {
	return func(r *Retriever) {
		if topK > 0 {
			r.topK = topK
		}
	}
}

// NewRetriever creates a retriever over the given AI provider and store.
func NewRetriever(provider ai.Provider, store catalog.Repository, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		builder:  NewFilterBuilder(provider.QueryAnalyzer()),
		verifier: NewVerifier(provider.DishVerifier()),
		embedder: provider.Embedder(),
		store:    store,
		topK:     DefaultTopK,
		logger:   slog.Default().With("component", "retriever"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search answers the question with verified dish names. The order of names
// is whatever verification returned; an unanswerable or failed question
// yields an empty slice, never an error.
func (r *Retriever) Search(ctx context.Context, question string) []string {
	return r.SearchWithMonitor(ctx, question, NoopMonitor{})
}

// SearchWithMonitor is Search with per-stage observation.
func (r *Retriever) SearchWithMonitor(ctx context.Context, question string, monitor Monitor) []string {
	if question == "" {
		return nil
	}

	extraction := r.builder.Extract(ctx, question)
	monitor.OnExtraction(question, extraction)

	vector, err := r.embedder.EmbedText(ctx, extraction.SemanticQuery)
	if err != nil {
		r.logger.Warn("embedding failed, returning empty result",
			"question", question, "error", err)
		monitor.OnFailure(question, err)
		return nil
	}

	var names []string
	state := attemptFiltered
	for state != attemptDone {
		filtered := state == attemptFiltered

		predicate := extraction.Predicate
		if !filtered {
			predicate = nil
		}

		hits, err := r.store.Search(ctx, vector, predicate, r.topK)
		if err != nil {
			r.logger.Warn("store query failed, returning empty result",
				"question", question, "filtered", filtered, "error", err)
			monitor.OnFailure(question, err)
			return nil
		}
		monitor.OnAttempt(question, filtered, hits)

		names = r.verifier.Verify(ctx, question, hits)
		monitor.OnVerified(question, filtered, names)

		switch {
		case len(names) > 0:
			// Terminal success, the fallback never runs.
			state = attemptDone
		case filtered:
			state = attemptFallback
		default:
			// The fallback is terminal whether or not it verified anything.
			state = attemptDone
		}
	}

	return names
}
