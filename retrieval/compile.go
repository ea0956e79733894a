package retrieval

import (
	"github.com/astrodine/menusearch/catalog"
	"github.com/astrodine/menusearch/core"
)

// compileFilter turns a structured filter into the store's condition groups:
// one equality condition per present scalar field and one membership
// condition per required list element in the must group, one membership
// condition per forbidden list element in the must-not group. An all-absent
// filter compiles to nil, which the store reads as "no restriction".
func compileFilter(filter *core.StructuredFilter) *catalog.Filter {
	if filter == nil || filter.IsEmpty() {
		return nil
	}

	compiled := &catalog.Filter{}

	if filter.Planet != "" {
		compiled.Must = append(compiled.Must, catalog.Condition{
			Key:    core.AttrPlanet,
			Equals: filter.Planet,
		})
	}
	if filter.RestaurantName != "" {
		compiled.Must = append(compiled.Must, catalog.Condition{
			Key:    core.AttrRestaurantName,
			Equals: filter.RestaurantName,
		})
	}
	if filter.ChefName != "" {
		compiled.Must = append(compiled.Must, catalog.Condition{
			Key:    core.AttrChefName,
			Equals: filter.ChefName,
		})
	}

	for _, term := range filter.IngredientsIn {
		compiled.Must = append(compiled.Must, catalog.Condition{
			Key: core.AttrRawIngredients,
			Any: []string{term},
		})
	}
	for _, term := range filter.TechniquesIn {
		compiled.Must = append(compiled.Must, catalog.Condition{
			Key: core.AttrRawTechniques,
			Any: []string{term},
		})
	}

	for _, term := range filter.IngredientsOut {
		compiled.MustNot = append(compiled.MustNot, catalog.Condition{
			Key: core.AttrRawIngredients,
			Any: []string{term},
		})
	}
	for _, term := range filter.TechniquesOut {
		compiled.MustNot = append(compiled.MustNot, catalog.Condition{
			Key: core.AttrRawTechniques,
			Any: []string{term},
		})
	}

	if compiled.IsEmpty() {
		return nil
	}
	return compiled
}
