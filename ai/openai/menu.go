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

// MenuExtractor implements ai.MenuExtractor using OpenAI-compatible chat APIs.
type MenuExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// rawMenu matches the JSON structure the extraction prompt demands.
type rawMenu struct {
	Restaurant struct {
		Name   string `json:"name"`
		Planet string `json:"planet"`
		Chef   struct {
			Name     string   `json:"name"`
			Licenses []string `json:"licenses"`
		} `json:"chef"`
	} `json:"restaurant"`
	Dishes []struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Ingredients []string `json:"ingredients"`
		Techniques  []string `json:"techniques"`
	} `json:"dishes"`
}

// newMenuExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newMenuExtractor(config *ai.Config) (*MenuExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config.ChatHost, config.ChatModel)
	if err != nil {
		return nil, err
	}

	return &MenuExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-menu-extractor"),
	}, nil
}

// NewMenuExtractor creates a new menu extractor using the provided configuration.
//
// Returns ai.MenuExtractor interface to enforce abstraction.
func NewMenuExtractor(config *ai.Config) (ai.MenuExtractor, error) {
	return newMenuExtractor(config)
}

// ExtractMenu parses the restaurant identity and dish list out of raw menu
// document text.
func (m *MenuExtractor) ExtractMenu(ctx context.Context, text string) (*core.Menu, error) {
	prompt := buildExtractMenuPrompt(text)

	responseText, err := generate(ctx, m.client, prompt, llms.WithJSONMode())
	if err != nil {
		m.logger.Error("menu extraction call failed", "err", err)
		return nil, err
	}

	responseText = repairJSON(stripFences(responseText))

	var raw rawMenu
	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		m.logger.Warn("error parsing menu response", "err", err)
		return nil, err
	}

	menu := &core.Menu{
		RestaurantName: raw.Restaurant.Name,
		Planet:         raw.Restaurant.Planet,
		ChefName:       raw.Restaurant.Chef.Name,
		ChefLicenses:   raw.Restaurant.Chef.Licenses,
		Dishes:         make([]core.Dish, 0, len(raw.Dishes)),
	}

	for _, d := range raw.Dishes {
		if d.Name == "" {
			m.logger.Warn("skipping dish without a name", "restaurant", menu.RestaurantName)
			continue
		}
		menu.Dishes = append(menu.Dishes, core.Dish{
			Name:        d.Name,
			Description: d.Description,
			Ingredients: d.Ingredients,
			Techniques:  d.Techniques,
		})
	}

	m.logger.Debug("extracted menu",
		"restaurant", menu.RestaurantName,
		"planet", menu.Planet,
		"dishes", len(menu.Dishes))

	return menu, nil
}
