package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDish(t *testing.T) {
	t.Run("valid dish", func(t *testing.T) {
		dish := &Dish{
			Name:           "Galactic Stew",
			RestaurantName: "The Singularity",
			Planet:         "Asgard",
		}
		assert.NoError(t, ValidateDish(dish))
	})

	t.Run("nil dish", func(t *testing.T) {
		err := ValidateDish(nil)
		assert.ErrorIs(t, err, ErrInvalidDish)
	})

	t.Run("empty name", func(t *testing.T) {
		err := ValidateDish(&Dish{RestaurantName: "The Singularity"})
		assert.ErrorIs(t, err, ErrEmptyDishName)
	})

	t.Run("unknown planet", func(t *testing.T) {
		err := ValidateDish(&Dish{Name: "Galactic Stew", Planet: "Earth"})
		assert.ErrorIs(t, err, ErrUnknownPlanet)
	})

	t.Run("absent planet is fine", func(t *testing.T) {
		assert.NoError(t, ValidateDish(&Dish{Name: "Galactic Stew"}))
	})
}

func TestValidateStructuredFilter(t *testing.T) {
	t.Run("empty filter is valid", func(t *testing.T) {
		assert.NoError(t, ValidateStructuredFilter(&StructuredFilter{}))
	})

	t.Run("nil filter", func(t *testing.T) {
		assert.ErrorIs(t, ValidateStructuredFilter(nil), ErrInvalidFilter)
	})

	t.Run("present list must be non-empty", func(t *testing.T) {
		f := &StructuredFilter{IngredientsIn: []string{}}
		assert.ErrorIs(t, ValidateStructuredFilter(f), ErrEmptyFilterList)
	})

	t.Run("overlapping in and out is invalid", func(t *testing.T) {
		f := &StructuredFilter{
			IngredientsIn:  []string{"Stellar Salt"},
			IngredientsOut: []string{"Stellar Salt"},
		}
		assert.ErrorIs(t, ValidateStructuredFilter(f), ErrInvalidFilter)
	})

	t.Run("disjoint in and out is valid", func(t *testing.T) {
		f := &StructuredFilter{
			IngredientsIn:  []string{"Stellar Salt"},
			IngredientsOut: []string{"Quantum Beans"},
			TechniquesIn:   []string{"Zero-G Simmering"},
		}
		assert.NoError(t, ValidateStructuredFilter(f))
	})
}

func TestResolveOverlap(t *testing.T) {
	t.Run("in wins over out", func(t *testing.T) {
		f := &StructuredFilter{
			IngredientsIn:  []string{"Stellar Salt"},
			IngredientsOut: []string{"Stellar Salt", "Quantum Beans"},
		}
		f.ResolveOverlap()
		assert.Equal(t, []string{"Quantum Beans"}, f.IngredientsOut)
		require.NoError(t, ValidateStructuredFilter(f))
	})

	t.Run("out collapses to absent when fully overlapping", func(t *testing.T) {
		f := &StructuredFilter{
			TechniquesIn:  []string{"Zero-G Simmering"},
			TechniquesOut: []string{"Zero-G Simmering"},
		}
		f.ResolveOverlap()
		assert.Nil(t, f.TechniquesOut)
	})

	t.Run("no overlap leaves lists untouched", func(t *testing.T) {
		f := &StructuredFilter{
			IngredientsIn:  []string{"Stellar Salt"},
			IngredientsOut: []string{"Quantum Beans"},
		}
		f.ResolveOverlap()
		assert.Equal(t, []string{"Quantum Beans"}, f.IngredientsOut)
	})
}
