package menusearch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrodine/menusearch/ai/mock"
	"github.com/astrodine/menusearch/core"
	"github.com/astrodine/menusearch/retrieval"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.DishRepository())
		assert.NotNil(t, db.Provider())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("in-memory database", func(t *testing.T) {
		db, err := NewDatabase("", WithInMemory())
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		_, err = db.DishRepository().AddDishes(context.Background(),
			&core.DishRecord{Dish: core.Dish{Name: "Nebbia di Plasma", RestaurantName: "Sala Orbitale"}})
		require.NoError(t, err)

		count, err := db.DishRepository().CountDishes(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestDatabase_Close(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, db)

	// Close the database
	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase("", WithInMemory(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	t.Run("can create retriever", func(t *testing.T) {
		retriever := db.NewRetriever(retrieval.WithTopK(10))
		require.NotNil(t, retriever)
	})

	t.Run("can create runner", func(t *testing.T) {
		runner, err := db.NewRunner(retrieval.NameMapping{"Nebbia di Plasma": 7})
		require.NoError(t, err)
		require.NotNil(t, runner)
		runner.Release()
	})

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := db.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create reembedder", func(t *testing.T) {
		reembedder := db.NewReembedder(nil, os.Stderr)
		require.NotNil(t, reembedder)
	})
}

func TestDatabase_SearchRoundTrip(t *testing.T) {
	db, err := NewDatabase("", WithInMemory(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	dishes := []*core.DishRecord{
		{Dish: core.Dish{Name: "Sfere di Carbonio", RestaurantName: "Sala Orbitale", Planet: "Tatooine"}},
		{Dish: core.Dish{Name: "Radici di Vuoto", RestaurantName: "Locanda Stellare", Planet: "Arrakis"}},
	}
	for i, rec := range dishes {
		rec.Vector = []float32{float32(i + 1), 0, 0}
	}
	_, err = db.DishRepository().AddDishes(ctx, dishes...)
	require.NoError(t, err)

	retriever := db.NewRetriever()
	names := retriever.Search(ctx, "What dishes are served on Tatooine?")
	assert.Contains(t, names, "Sfere di Carbonio")
}
