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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/astrodine/menusearch/ai"
	"github.com/astrodine/menusearch/core"
	"github.com/tmc/langchaingo/llms"
)

// QueryAnalyzer implements ai.QueryAnalyzer using OpenAI-compatible chat APIs.
type QueryAnalyzer struct {
	client  llms.Model
	planets []string
	logger  *slog.Logger
}

// newQueryAnalyzer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryAnalyzer(config *ai.Config) (*QueryAnalyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config.ChatHost, config.ChatModel)
	if err != nil {
		return nil, err
	}

	return &QueryAnalyzer{
		client:  client,
		planets: config.Planets,
		logger:  slog.Default().With("component", "openai-analyzer"),
	}, nil
}

// NewQueryAnalyzer creates a new question analyzer using the provided configuration.
//
// Returns ai.QueryAnalyzer interface to enforce abstraction.
func NewQueryAnalyzer(config *ai.Config) (ai.QueryAnalyzer, error) {
	return newQueryAnalyzer(config)
}

// ExtractFilter extracts the structured filter stated in the question.
// The response is fence-stripped, repaired, and normalized at this boundary;
// list fields that are unparsable or empty collapse to absent. A planet
// outside the closed set is dropped rather than passed through.
func (a *QueryAnalyzer) ExtractFilter(ctx context.Context, question string) (core.StructuredFilter, error) {
	prompt := buildExtractFilterPrompt(question, a.planets)

	responseText, err := generate(ctx, a.client, prompt, llms.WithJSONMode())
	if err != nil {
		a.logger.Error("filter extraction call failed", "err", err)
		return core.StructuredFilter{}, err
	}

	responseText = repairJSON(stripFences(responseText))

	var raw rawFilter
	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		a.logger.Warn("error parsing filter response", "response", responseText, "err", err)
		return core.StructuredFilter{}, err
	}

	filter := core.StructuredFilter{
		Planet:         normalizeScalar(raw.Planet),
		RestaurantName: normalizeScalar(raw.RestaurantName),
		ChefName:       normalizeScalar(raw.ChefName),
		IngredientsIn:  normalizeList(raw.IngredientsIn),
		IngredientsOut: normalizeList(raw.IngredientsOut),
		TechniquesIn:   normalizeList(raw.TechniquesIn),
		TechniquesOut:  normalizeList(raw.TechniquesOut),
	}

	// Undirected legacy lists count as inclusion constraints.
	if filter.IngredientsIn == nil && !isAbsent(raw.Ingredients) {
		filter.IngredientsIn = normalizeList(raw.Ingredients)
	}
	if filter.TechniquesIn == nil && !isAbsent(raw.Techniques) {
		filter.TechniquesIn = normalizeList(raw.Techniques)
	}

	if filter.Planet != "" && !a.knownPlanet(filter.Planet) {
		a.logger.Debug("dropping planet outside the closed set", "planet", filter.Planet)
		filter.Planet = ""
	}

	a.logger.Debug("extracted filter",
		"planet", filter.Planet,
		"restaurant", filter.RestaurantName,
		"chef", filter.ChefName,
		"ingredientsIn", filter.IngredientsIn,
		"ingredientsOut", filter.IngredientsOut,
		"techniquesIn", filter.TechniquesIn,
		"techniquesOut", filter.TechniquesOut)

	return filter, nil
}

// OptimizeQuery condenses the question into a single-line semantic search
// string. Label lines the model prepends despite instructions are skipped;
// if nothing substantive remains the original question is returned.
func (a *QueryAnalyzer) OptimizeQuery(ctx context.Context, question string) (string, error) {
	prompt := buildOptimizeQueryPrompt(question)

	responseText, err := generate(ctx, a.client, prompt)
	if err != nil {
		a.logger.Warn("query optimization call failed", "err", err)
		return "", err
	}

	responseText = strings.ReplaceAll(responseText, "```", "")
	lines := strings.Split(responseText, "\n")

	var firstNonEmpty string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if firstNonEmpty == "" {
			firstNonEmpty = line
		}
		if !isLabelLine(line) {
			return line, nil
		}
	}

	if firstNonEmpty != "" {
		return firstNonEmpty, nil
	}
	return question, nil
}

// isLabelLine detects preamble like "Optimized query:" that is not the
// query itself.
func isLabelLine(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range []string{"query", "optimized query", "answer"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func (a *QueryAnalyzer) knownPlanet(name string) bool {
	for _, p := range a.planets {
		if p == name {
			return true
		}
	}
	return false
}
