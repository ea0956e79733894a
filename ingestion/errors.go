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


package ingestion

import "errors"

var (
	// ErrRepositoryRequired indicates that no dish repository was provided.
	ErrRepositoryRequired = errors.New("dish repository is required")

	// ErrProviderRequired indicates that no AI provider was provided.
	ErrProviderRequired = errors.New("AI provider is required")

	// ErrNoDocuments indicates that a directory held no ingestible documents.
	ErrNoDocuments = errors.New("no documents found")

	// ErrEmptyDocument indicates that no text could be extracted from a document.
	ErrEmptyDocument = errors.New("document contains no text")
)
