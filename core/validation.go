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


package core

import (
	"fmt"
	"slices"
)

// ValidateDish validates a Dish according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Planet, when present, must belong to the closed planet set
//
// NOT validated (optional by design):
//   - RestaurantName, ChefName, Description
//   - Ingredients and Techniques (a dish may legitimately list neither)
func ValidateDish(dish *Dish) error {
	if dish == nil {
		return fmt.Errorf("%w: dish is nil", ErrInvalidDish)
	}

	if dish.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDish, ErrEmptyDishName)
	}

	if dish.Planet != "" && !IsKnownPlanet(dish.Planet) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidDish, ErrUnknownPlanet, dish.Planet)
	}

	return nil
}

// ValidateStructuredFilter validates a StructuredFilter invariant:
// a present list field is never empty (absence is expressed as nil),
// and no term appears in both the _in and _out list of the same attribute.
func ValidateStructuredFilter(filter *StructuredFilter) error {
	if filter == nil {
		return fmt.Errorf("%w: filter is nil", ErrInvalidFilter)
	}

	lists := map[string][]string{
		"ingredients_in":  filter.IngredientsIn,
		"ingredients_out": filter.IngredientsOut,
		"techniques_in":   filter.TechniquesIn,
		"techniques_out":  filter.TechniquesOut,
	}
	for name, list := range lists {
		if list != nil && len(list) == 0 {
			return fmt.Errorf("%w: %w: %s", ErrInvalidFilter, ErrEmptyFilterList, name)
		}
	}

	for _, term := range filter.IngredientsOut {
		if slices.Contains(filter.IngredientsIn, term) {
			return fmt.Errorf("%w: ingredient %q both required and forbidden", ErrInvalidFilter, term)
		}
	}
	for _, term := range filter.TechniquesOut {
		if slices.Contains(filter.TechniquesIn, term) {
			return fmt.Errorf("%w: technique %q both required and forbidden", ErrInvalidFilter, term)
		}
	}

	return nil
}

// ResolveOverlap removes from the _out lists any term also present in the
// matching _in list. When the extractor emits a contradictory term, the
// inclusion obligation wins. Out lists that become empty collapse to nil.
func (f *StructuredFilter) ResolveOverlap() {
	f.IngredientsOut = dropOverlap(f.IngredientsOut, f.IngredientsIn)
	f.TechniquesOut = dropOverlap(f.TechniquesOut, f.TechniquesIn)
}

func dropOverlap(out, in []string) []string {
	if len(out) == 0 || len(in) == 0 {
		return out
	}
	kept := make([]string, 0, len(out))
	for _, term := range out {
		if !slices.Contains(in, term) {
			kept = append(kept, term)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
