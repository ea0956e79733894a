package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrodine/menusearch/ai/mock"
	"github.com/astrodine/menusearch/catalog"
	"github.com/astrodine/menusearch/catalog/badger"
	"github.com/astrodine/menusearch/core"
)

func seededRepo(t *testing.T, n int) catalog.DishRepository {
	t.Helper()

	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	names := []string{
		"Plasma Noodles", "Void Truffle Tart", "Sandworm Skewers",
		"Ion Kelp Salad", "Gravity Well Stew",
	}
	records := make([]*core.DishRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, &core.DishRecord{
			Dish: core.Dish{
				Name:           names[i%len(names)],
				RestaurantName: "Warp Core",
			},
			Vector: []float32{1, 0, 0},
		})
	}
	if n > 0 {
		_, err = repo.AddDishes(context.Background(), records...)
		require.NoError(t, err)
	}
	return repo
}

func TestDishIteratorBatches(t *testing.T) {
	repo := seededRepo(t, 5)
	iterator := NewDishIterator(repo, 2)

	var batchSizes []int
	err := iterator.ForEach(context.Background(), func(records []*core.DishRecord) error {
		batchSizes = append(batchSizes, len(records))
		return nil
	})
	require.NoError(t, err)

	// Five records in batches of two: 2, 2, 1
	assert.Equal(t, []int{2, 2, 1}, batchSizes)
}

func TestDishIteratorStopsOnError(t *testing.T) {
	repo := seededRepo(t, 5)
	iterator := NewDishIterator(repo, 2)

	boom := errors.New("boom")
	calls := 0
	err := iterator.ForEach(context.Background(), func(records []*core.DishRecord) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestBatchProcessorUpdatesVectors(t *testing.T) {
	repo := seededRepo(t, 3)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{0, 3, 4}
		}
		return vectors, nil
	}

	processor := NewBatchProcessor(repo, embedder, 3, time.Millisecond)

	var records []*core.DishRecord
	require.NoError(t, repo.ListDishes(context.Background(), func(r *core.DishRecord) error {
		records = append(records, r)
		return nil
	}))

	require.NoError(t, processor.Process(context.Background(), records))

	// Stored vectors are normalized
	updated, err := repo.GetDish(context.Background(), records[0].Id)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, updated.Vector[1], 1e-6)
	assert.InDelta(t, 0.8, updated.Vector[2], 1e-6)
}

func TestBatchProcessorCountMismatch(t *testing.T) {
	repo := seededRepo(t, 2)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1}}, nil // one vector for two records
	}

	processor := NewBatchProcessor(repo, embedder, 1, time.Millisecond)

	var records []*core.DishRecord
	require.NoError(t, repo.ListDishes(context.Background(), func(r *core.DishRecord) error {
		records = append(records, r)
		return nil
	}))

	err := processor.Process(context.Background(), records)
	assert.ErrorContains(t, err, "mismatch")
}

func TestReembedderRun(t *testing.T) {
	repo := seededRepo(t, 5)
	embedder := mock.NewMockEmbedder()

	var out bytes.Buffer
	config := &Config{BatchSize: 2, ReportInterval: 1, MaxRetries: 2, RetryDelay: time.Millisecond}
	reembedder := NewReembedder(repo, embedder, config, &out)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Contains(t, out.String(), "Reembedding complete")
	assert.Contains(t, out.String(), "5 dishes")
}

func TestReembedderRunEmptyCatalog(t *testing.T) {
	repo := seededRepo(t, 0)

	var out bytes.Buffer
	reembedder := NewReembedder(repo, mock.NewMockEmbedder(), nil, &out)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Contains(t, out.String(), "No dishes found")
}

func TestReembedderRunEmbeddingFailure(t *testing.T) {
	repo := seededRepo(t, 2)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("service down")
	}

	var out bytes.Buffer
	config := &Config{BatchSize: 2, ReportInterval: 1, MaxRetries: 2, RetryDelay: time.Millisecond}
	reembedder := NewReembedder(repo, embedder, config, &out)

	err := reembedder.Run(context.Background())
	assert.ErrorContains(t, err, "failed to process batch")
}
