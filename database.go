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

package menusearch

import (
	"io"
	"log/slog"

	"github.com/astrodine/menusearch/ai"
	"github.com/astrodine/menusearch/ai/openai"
	"github.com/astrodine/menusearch/catalog"
	"github.com/astrodine/menusearch/catalog/badger"
	"github.com/astrodine/menusearch/ingestion"
	"github.com/astrodine/menusearch/reembed"
	"github.com/astrodine/menusearch/retrieval"
)

// Database bundles the dish catalog with an AI provider and hands out
// the high-level components built on top of them.
type Database struct {
	backend  *badger.Backend
	dishRepo catalog.DishRepository
	provider ai.Provider
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the AI service configuration used when the
// Database constructs its own provider.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a prebuilt AI provider instead of constructing
// one from configuration. The Database takes ownership and closes it.
func WithProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the catalog backend in memory. The path argument
// to NewDatabase is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create dish repository
	dishRepo, err := badger.NewDishRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			dishRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:  backend,
		dishRepo: dishRepo,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := db.dishRepo.Close(); err != nil {
		db.logger.Error("error closing dish repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) DishRepository() catalog.DishRepository {
	return db.dishRepo
}

func (db *Database) Provider() ai.Provider {
	return db.provider
}

func (db *Database) NewRetriever(opts ...retrieval.RetrieverOption) *retrieval.Retriever {
	return retrieval.NewRetriever(db.provider, db.dishRepo, opts...)
}

func (db *Database) NewRunner(mapping retrieval.NameMapping, opts ...retrieval.RunnerOption) (*retrieval.Runner, error) {
	return retrieval.NewRunner(db.NewRetriever(), mapping, opts...)
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.dishRepo, db.provider, opts...)
}

func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(db.dishRepo, db.provider.Embedder(), config, progress)
}
