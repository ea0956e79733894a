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


// Package ai provides abstractions for the AI services used in menusearch.
//
// It defines interfaces for the natural-language collaborator: text
// embeddings, question analysis (filter extraction and query optimization),
// candidate verification, and menu document extraction. Core retrieval and
// ingestion logic depends on these abstractions, not on a concrete client.
//
// # Interfaces
//
//   - Embedder: generates vector embeddings from text
//   - QueryAnalyzer: extracts a structured filter and a semantic query
//     from a question
//   - DishVerifier: judges candidates strictly against a question
//   - MenuExtractor: parses structured menus out of document text
//   - Provider: aggregates the services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//     via langchaingo
//   - ai/mock: function-field test doubles for unit testing without
//     external dependencies
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; mock constructors return concrete types so tests can inject
// behavior and assert call counts.
package ai
