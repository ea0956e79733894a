package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astrodine/menusearch/ai/mock"
	"github.com/astrodine/menusearch/core"
)

func TestCompileFilter(t *testing.T) {
	t.Run("all-absent filter compiles to nil", func(t *testing.T) {
		assert.Nil(t, compileFilter(&core.StructuredFilter{}))
		assert.Nil(t, compileFilter(nil))
	})

	t.Run("required ingredients become one must condition each", func(t *testing.T) {
		compiled := compileFilter(&core.StructuredFilter{
			IngredientsIn: []string{"A", "B"},
		})
		assert.Len(t, compiled.Must, 2)
		assert.Empty(t, compiled.MustNot)
		assert.Equal(t, core.AttrRawIngredients, compiled.Must[0].Key)
		assert.Equal(t, []string{"A"}, compiled.Must[0].Any)
		assert.Equal(t, []string{"B"}, compiled.Must[1].Any)
	})

	t.Run("forbidden techniques become one must-not condition each", func(t *testing.T) {
		compiled := compileFilter(&core.StructuredFilter{
			TechniquesOut: []string{"X"},
		})
		assert.Empty(t, compiled.Must)
		assert.Len(t, compiled.MustNot, 1)
		assert.Equal(t, core.AttrRawTechniques, compiled.MustNot[0].Key)
		assert.Equal(t, []string{"X"}, compiled.MustNot[0].Any)
	})

	t.Run("scalars become must equality conditions", func(t *testing.T) {
		compiled := compileFilter(&core.StructuredFilter{
			Planet:         "Arrakis",
			RestaurantName: "Warp Core",
			ChefName:       "Ila Vann",
		})
		assert.Len(t, compiled.Must, 3)
		assert.Empty(t, compiled.MustNot)
		assert.Equal(t, "Arrakis", compiled.Must[0].Equals)
	})

	t.Run("mixed filter", func(t *testing.T) {
		compiled := compileFilter(&core.StructuredFilter{
			Planet:         "Ego",
			IngredientsIn:  []string{"ion kelp"},
			IngredientsOut: []string{"void truffle"},
			TechniquesIn:   []string{"flash-freezing"},
		})
		assert.Len(t, compiled.Must, 3)
		assert.Len(t, compiled.MustNot, 1)
	})
}

func TestFilterBuilderExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("successful extraction", func(t *testing.T) {
		analyzer := mock.NewMockQueryAnalyzer()
		analyzer.ExtractFilterFunc = func(ctx context.Context, question string) (core.StructuredFilter, error) {
			return core.StructuredFilter{Planet: "Arrakis"}, nil
		}
		analyzer.OptimizeQueryFunc = func(ctx context.Context, question string) (string, error) {
			return "Arrakis dishes", nil
		}

		extraction := NewFilterBuilder(analyzer).Extract(ctx, "dishes from planet Arrakis")
		assert.NoError(t, extraction.FilterErr)
		assert.NoError(t, extraction.QueryErr)
		assert.Equal(t, "Arrakis", extraction.Filter.Planet)
		assert.Equal(t, "Arrakis dishes", extraction.SemanticQuery)
		assert.NotNil(t, extraction.Predicate)
		assert.Len(t, extraction.Predicate.Must, 1)
	})

	t.Run("extraction failure degrades to all-absent filter", func(t *testing.T) {
		analyzer := mock.NewMockQueryAnalyzer()
		analyzer.ExtractFilterFunc = func(ctx context.Context, question string) (core.StructuredFilter, error) {
			return core.StructuredFilter{}, errors.New("invalid JSON")
		}

		extraction := NewFilterBuilder(analyzer).Extract(ctx, "anything")
		assert.Error(t, extraction.FilterErr)
		assert.True(t, extraction.Filter.IsEmpty())
		assert.Nil(t, extraction.Predicate)
		assert.Equal(t, "anything", extraction.SemanticQuery)
	})

	t.Run("optimization failure falls back to the raw question", func(t *testing.T) {
		analyzer := mock.NewMockQueryAnalyzer()
		analyzer.OptimizeQueryFunc = func(ctx context.Context, question string) (string, error) {
			return "", errors.New("timeout")
		}

		extraction := NewFilterBuilder(analyzer).Extract(ctx, "the raw question")
		assert.Error(t, extraction.QueryErr)
		assert.Equal(t, "the raw question", extraction.SemanticQuery)
	})

	t.Run("blank optimized query falls back to the raw question", func(t *testing.T) {
		analyzer := mock.NewMockQueryAnalyzer()
		analyzer.OptimizeQueryFunc = func(ctx context.Context, question string) (string, error) {
			return "   ", nil
		}

		extraction := NewFilterBuilder(analyzer).Extract(ctx, "the raw question")
		assert.Equal(t, "the raw question", extraction.SemanticQuery)
	})

	t.Run("contradictory terms resolve in favor of the requirement", func(t *testing.T) {
		analyzer := mock.NewMockQueryAnalyzer()
		analyzer.ExtractFilterFunc = func(ctx context.Context, question string) (core.StructuredFilter, error) {
			return core.StructuredFilter{
				IngredientsIn:  []string{"sand-salt"},
				IngredientsOut: []string{"sand-salt", "void truffle"},
			}, nil
		}

		extraction := NewFilterBuilder(analyzer).Extract(ctx, "q")
		assert.Equal(t, []string{"sand-salt"}, extraction.Filter.IngredientsIn)
		assert.Equal(t, []string{"void truffle"}, extraction.Filter.IngredientsOut)
	})
}
