package ingestion

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/astrodine/menusearch/ai"
	"github.com/astrodine/menusearch/catalog"
	"github.com/astrodine/menusearch/core"
)

// Pipeline turns menu documents into embedded dish records. Each document
// goes through text extraction, structured menu extraction, embedding, and
// storage; documents are processed concurrently on a worker pool.
type Pipeline struct {
	repository catalog.DishRepository
	extractor  ai.MenuExtractor
	embedder   ai.Embedder
	pool       *ants.Pool
	debugDir   string
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent document processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithDebugDir makes the pipeline dump each document's extracted menu as
// JSON into dir, one file per document.
func WithDebugDir(dir string) Option {
	return func(p *Pipeline) error {
		p.debugDir = dir
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(repository catalog.DishRepository, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		extractor:  provider.MenuExtractor(),
		embedder:   provider.Embedder(),
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestDirectory ingests every PDF document in dir. One document's failure
// is logged and never aborts the rest. Returns ErrNoDocuments when the
// directory holds no PDFs.
func (p *Pipeline) IngestDirectory(ctx context.Context, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return ErrNoDocuments
	}

	p.logger.Info("ingesting documents", "dir", dir, "count", len(files))

	var wg sync.WaitGroup
	for _, file := range files {
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.IngestFile(ctx, file); err != nil {
				p.logger.Error("failed to ingest document",
					"file", filepath.Base(file), "error", err)
				return
			}
			p.logger.Info("ingested document", "file", filepath.Base(file))
		})
		if err != nil {
			wg.Done()
			return err
		}
	}
	wg.Wait()
	return nil
}

// IngestFile ingests a single document. PDF files go through text
// extraction first; anything else is read as plain text.
func (p *Pipeline) IngestFile(ctx context.Context, path string) error {
	var text string
	var err error

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = ExtractPDFText(path)
	} else {
		var data []byte
		data, err = os.ReadFile(path)
		text = strings.TrimSpace(string(data))
	}
	if err != nil {
		return err
	}
	if text == "" {
		return ErrEmptyDocument
	}

	return p.IngestText(ctx, text, sourceName(path))
}

// IngestText extracts the menu from raw document text, embeds every dish,
// and stores the records. Invalid dishes are logged and skipped; a dish
// claiming a planet outside the known set keeps the dish but drops the
// planet rather than losing the record.
func (p *Pipeline) IngestText(ctx context.Context, text, source string) error {
	menu, err := p.extractor.ExtractMenu(ctx, text)
	if err != nil {
		return err
	}

	p.dumpDebug(source, menu)

	records := make([]*core.DishRecord, 0, len(menu.Dishes))
	texts := make([]string, 0, len(menu.Dishes))
	for i := range menu.Dishes {
		dish := menu.Dishes[i]
		if dish.RestaurantName == "" {
			dish.RestaurantName = menu.RestaurantName
		}
		if dish.Planet == "" {
			dish.Planet = menu.Planet
		}
		if dish.ChefName == "" {
			dish.ChefName = menu.ChefName
		}

		if dish.Planet != "" && !core.IsKnownPlanet(dish.Planet) {
			p.logger.Warn("dropping unknown planet from dish",
				"dish", dish.Name, "planet", dish.Planet, "source", source)
			dish.Planet = ""
		}

		if err := core.ValidateDish(&dish); err != nil {
			p.logger.Warn("skipping invalid dish", "source", source, "error", err)
			continue
		}

		records = append(records, &core.DishRecord{Dish: dish})
		texts = append(texts, dish.EmbeddingText())
	}
	if len(records) == 0 {
		p.logger.Warn("document produced no dishes", "source", source)
		return nil
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	for i, record := range records {
		if i < len(vectors) {
			record.Vector = vectors[i]
		}
	}

	if _, err := p.repository.AddDishes(ctx, records...); err != nil {
		return err
	}

	p.logger.Info("stored dishes",
		"source", source, "restaurant", menu.RestaurantName, "count", len(records))
	return nil
}

// dumpDebug writes the extracted menu as JSON for offline inspection.
// Failures here are logged and never fail the ingestion.
func (p *Pipeline) dumpDebug(source string, menu *core.Menu) {
	if p.debugDir == "" {
		return
	}
	if err := os.MkdirAll(p.debugDir, 0755); err != nil {
		p.logger.Warn("cannot create debug directory", "error", err)
		return
	}

	data, err := json.MarshalIndent(menu, "", "  ")
	if err != nil {
		p.logger.Warn("cannot marshal menu for debug", "error", err)
		return
	}

	path := filepath.Join(p.debugDir, source+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		p.logger.Warn("cannot write debug file", "path", path, "error", err)
	}
}

// sourceName is the document's base name without extension, used for debug
// dumps and log lines.
func sourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
