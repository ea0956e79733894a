package catalog

import (
	"strings"

	"github.com/astrodine/menusearch/core"
)

// Condition is one exact-match constraint on a dish attribute. Exactly one
// of Equals and Any is set: Equals matches a scalar attribute, Any matches
// when the attribute (scalar or list) shares at least one value with it.
// All comparisons are case-insensitive.
type Condition struct {
	Key    string
	Equals string
	Any    []string
}

// Filter restricts a vector search to records matching every Must condition
// and none of the MustNot conditions. The zero filter accepts everything;
// callers should pass nil instead of an empty filter.
type Filter struct {
	Must    []Condition
	MustNot []Condition
}

// IsEmpty reports whether the filter carries no conditions.
func (f *Filter) IsEmpty() bool {
	return f == nil || (len(f.Must) == 0 && len(f.MustNot) == 0)
}

// Matches reports whether the record satisfies the filter.
// A nil filter accepts every record.
func (f *Filter) Matches(record *core.DishRecord) bool {
	if f == nil {
		return true
	}
	for _, cond := range f.Must {
		if !cond.matches(&record.Dish) {
			return false
		}
	}
	for _, cond := range f.MustNot {
		if cond.matches(&record.Dish) {
			return false
		}
	}
	return true
}

func (c *Condition) matches(dish *core.Dish) bool {
	values := attributeValues(dish, c.Key)
	if c.Equals != "" {
		for _, v := range values {
			if strings.EqualFold(v, c.Equals) {
				return true
			}
		}
		return false
	}
	for _, want := range c.Any {
		for _, v := range values {
			if strings.EqualFold(v, want) {
				return true
			}
		}
	}
	return false
}

// attributeValues maps a condition key to the dish values it constrains.
// Unknown keys have no values and therefore never match.
func attributeValues(dish *core.Dish, key string) []string {
	switch key {
	case core.AttrDishName:
		return []string{dish.Name}
	case core.AttrRestaurantName:
		return []string{dish.RestaurantName}
	case core.AttrPlanet:
		return []string{dish.Planet}
	case core.AttrChefName:
		return []string{dish.ChefName}
	case core.AttrIngredients, core.AttrRawIngredients:
		return dish.Ingredients
	case core.AttrTechniques, core.AttrRawTechniques:
		return dish.Techniques
	default:
		return nil
	}
}
