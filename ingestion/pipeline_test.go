package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrodine/menusearch/ai/mock"
	"github.com/astrodine/menusearch/catalog/badger"
	"github.com/astrodine/menusearch/core"
)

const menuText = `Warp Core
Plasma Noodles
Void Truffle Tart`

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, *mock.MockProvider, func(ctx context.Context) int) {
	t.Helper()

	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	provider := mock.NewMockProvider().(*mock.MockProvider)
	pipeline, err := NewPipeline(repo, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	count := func(ctx context.Context) int {
		n, err := repo.CountDishes(ctx)
		require.NoError(t, err)
		return n
	}
	return pipeline, provider, count
}

func TestNewPipelineValidation(t *testing.T) {
	provider := mock.NewMockProvider()

	_, err := NewPipeline(nil, provider)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	_, err = NewPipeline(repo, nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}

func TestIngestText(t *testing.T) {
	ctx := context.Background()
	pipeline, provider, count := newTestPipeline(t)

	provider.GetMockMenuExtractor().ExtractMenuFunc = func(ctx context.Context, text string) (*core.Menu, error) {
		return &core.Menu{
			RestaurantName: "Warp Core",
			Planet:         "Cybertron",
			ChefName:       "Ila Vann",
			Dishes: []core.Dish{
				{Name: "Plasma Noodles", Ingredients: []string{"ion kelp"}},
				{Name: "Void Truffle Tart", Ingredients: []string{"void truffle"}},
			},
		}, nil
	}

	require.NoError(t, pipeline.IngestText(ctx, menuText, "menu"))
	assert.Equal(t, 2, count(ctx))

	// Restaurant identity propagates onto dishes that lack it
	repo := pipeline.repository
	record, err := repo.GetDishByName(ctx, "Plasma Noodles")
	require.NoError(t, err)
	assert.Equal(t, "Warp Core", record.Dish.RestaurantName)
	assert.Equal(t, "Cybertron", record.Dish.Planet)
	assert.Equal(t, "Ila Vann", record.Dish.ChefName)
	assert.NotEmpty(t, record.Vector)
}

func TestIngestTextDropsUnknownPlanet(t *testing.T) {
	ctx := context.Background()
	pipeline, provider, count := newTestPipeline(t)

	provider.GetMockMenuExtractor().ExtractMenuFunc = func(ctx context.Context, text string) (*core.Menu, error) {
		return &core.Menu{
			RestaurantName: "Warp Core",
			Planet:         "Atlantis", // not in the closed set
			Dishes:         []core.Dish{{Name: "Plasma Noodles"}},
		}, nil
	}

	require.NoError(t, pipeline.IngestText(ctx, menuText, "menu"))
	assert.Equal(t, 1, count(ctx))

	record, err := pipeline.repository.GetDishByName(ctx, "Plasma Noodles")
	require.NoError(t, err)
	assert.Empty(t, record.Dish.Planet)
}

func TestIngestTextSkipsInvalidDishes(t *testing.T) {
	ctx := context.Background()
	pipeline, provider, count := newTestPipeline(t)

	provider.GetMockMenuExtractor().ExtractMenuFunc = func(ctx context.Context, text string) (*core.Menu, error) {
		return &core.Menu{
			RestaurantName: "Warp Core",
			Dishes: []core.Dish{
				{Name: ""}, // invalid, skipped
				{Name: "Plasma Noodles"},
			},
		}, nil
	}

	require.NoError(t, pipeline.IngestText(ctx, menuText, "menu"))
	assert.Equal(t, 1, count(ctx))
}

func TestIngestTextExtractionFailure(t *testing.T) {
	ctx := context.Background()
	pipeline, provider, count := newTestPipeline(t)

	provider.GetMockMenuExtractor().ExtractMenuFunc = func(ctx context.Context, text string) (*core.Menu, error) {
		return nil, errors.New("model unavailable")
	}

	assert.Error(t, pipeline.IngestText(ctx, menuText, "menu"))
	assert.Equal(t, 0, count(ctx))
}

func TestIngestTextEmbeddingFailure(t *testing.T) {
	ctx := context.Background()
	pipeline, provider, count := newTestPipeline(t)

	provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}

	assert.Error(t, pipeline.IngestText(ctx, menuText, "menu"))
	assert.Equal(t, 0, count(ctx))
}

func TestIngestFilePlainText(t *testing.T) {
	ctx := context.Background()
	pipeline, _, count := newTestPipeline(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "menu.txt")
	require.NoError(t, os.WriteFile(path, []byte(menuText), 0644))

	// Default mock extraction: first line is the restaurant, rest are dishes
	require.NoError(t, pipeline.IngestFile(ctx, path))
	assert.Equal(t, 2, count(ctx))
}

func TestIngestDirectoryEmpty(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)
	err := pipeline.IngestDirectory(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestDebugDump(t *testing.T) {
	ctx := context.Background()
	debugDir := filepath.Join(t.TempDir(), "debug")
	pipeline, _, _ := newTestPipeline(t, WithDebugDir(debugDir))

	require.NoError(t, pipeline.IngestText(ctx, menuText, "menu"))

	data, err := os.ReadFile(filepath.Join(debugDir, "menu.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Warp Core")
}
