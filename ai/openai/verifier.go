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

	"github.com/astrodine/menusearch/ai"
	"github.com/astrodine/menusearch/core"
	"github.com/tmc/langchaingo/llms"
)

// DishVerifier implements ai.DishVerifier using OpenAI-compatible chat APIs.
type DishVerifier struct {
	client llms.Model
	logger *slog.Logger
}

// newDishVerifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newDishVerifier(config *ai.Config) (*DishVerifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config.ChatHost, config.ChatModel)
	if err != nil {
		return nil, err
	}

	return &DishVerifier{
		client: client,
		logger: slog.Default().With("component", "openai-verifier"),
	}, nil
}

// NewDishVerifier creates a new candidate verifier using the provided configuration.
//
// Returns ai.DishVerifier interface to enforce abstraction.
func NewDishVerifier(config *ai.Config) (ai.DishVerifier, error) {
	return newDishVerifier(config)
}

// VerifyDishes asks the model which candidates exactly satisfy the question
// and parses the response as a JSON array of dish names. Callers must still
// intersect the result with the candidate set; the model is not trusted to
// stay inside it.
func (v *DishVerifier) VerifyDishes(ctx context.Context, question string, candidates []core.SearchCandidate) ([]string, error) {
	prompt, err := buildVerifyDishesPrompt(question, candidates)
	if err != nil {
		return nil, err
	}

	responseText, err := generate(ctx, v.client, prompt)
	if err != nil {
		v.logger.Error("verification call failed", "err", err)
		return nil, err
	}

	responseText = stripFences(responseText)

	var verified []string
	if err := json.Unmarshal([]byte(responseText), &verified); err != nil {
		v.logger.Warn("error parsing verification response", "response", responseText, "err", err)
		return nil, err
	}

	v.logger.Debug("verification complete", "candidates", len(candidates), "verified", len(verified))
	return verified, nil
}
