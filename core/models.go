package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog entities.
// It is derived from record content so that re-ingesting the same menu
// produces the same IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Dish is a single menu item. The name is unique within a catalog.
// Dishes are created during ingestion and never mutated afterwards.
type Dish struct {
	Name           string   `json:"name"`
	RestaurantName string   `json:"restaurant_name"`
	Planet         string   `json:"planet,omitempty"`
	ChefName       string   `json:"chef_name,omitempty"`
	Ingredients    []string `json:"ingredients,omitempty"`
	Techniques     []string `json:"techniques,omitempty"`
	Description    string   `json:"description,omitempty"`
}

// EmbeddingText renders the dish as the text that gets embedded for
// semantic search.
func (d *Dish) EmbeddingText() string {
	var b strings.Builder
	b.WriteString("Dish: ")
	b.WriteString(d.Name)
	b.WriteString("\nRestaurant: ")
	b.WriteString(d.RestaurantName)
	b.WriteString("\nDescription: ")
	b.WriteString(d.Description)
	b.WriteString("\nIngredients: ")
	b.WriteString(strings.Join(d.Ingredients, ", "))
	b.WriteString("\nTechniques: ")
	b.WriteString(strings.Join(d.Techniques, ", "))
	return b.String()
}

// Attributes returns the dish as a search-hit attribute map.
// Ingredients and techniques appear twice: comma-joined strings for
// display and full-text use, raw lists for exact membership filters.
func (d *Dish) Attributes() map[string]any {
	return map[string]any{
		AttrDishName:       d.Name,
		AttrRestaurantName: d.RestaurantName,
		AttrPlanet:         d.Planet,
		AttrChefName:       d.ChefName,
		AttrIngredients:    strings.Join(d.Ingredients, ", "),
		AttrTechniques:     strings.Join(d.Techniques, ", "),
		AttrRawIngredients: d.Ingredients,
		AttrRawTechniques:  d.Techniques,
	}
}

// Attribute keys attached to every stored dish and exposed on search hits.
const (
	AttrDishName       = "dish_name"
	AttrRestaurantName = "restaurant_name"
	AttrPlanet         = "planet"
	AttrChefName       = "chef_name"
	AttrIngredients    = "ingredients"
	AttrTechniques     = "techniques"
	AttrRawIngredients = "raw_ingredients"
	AttrRawTechniques  = "raw_techniques"
)

// DishRecord is the stored form of a dish: the dish itself plus its
// content-derived ID, embedding vector, and storage timestamps.
type DishRecord struct {
	Id         ID        `json:"id"`
	Dish       Dish      `json:"dish"`
	Vector     []float32 `json:"vector,omitempty"`
	InsertedAt time.Time `json:"inserted_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Menu is the structured form of one parsed menu document: restaurant
// identity plus the dishes it serves.
type Menu struct {
	RestaurantName string   `json:"restaurant_name"`
	Planet         string   `json:"planet,omitempty"`
	ChefName       string   `json:"chef_name,omitempty"`
	ChefLicenses   []string `json:"chef_licenses,omitempty"`
	Dishes         []Dish   `json:"dishes"`
}

// StructuredFilter holds the exact-match constraints extracted from one
// question. Every field is optional; a nil list means "no constraint",
// never "match nothing". Present lists are always non-empty.
type StructuredFilter struct {
	Planet         string
	RestaurantName string
	ChefName       string
	IngredientsIn  []string
	IngredientsOut []string
	TechniquesIn   []string
	TechniquesOut  []string
}

// IsEmpty reports whether the filter carries no constraint at all.
func (f *StructuredFilter) IsEmpty() bool {
	return f.Planet == "" && f.RestaurantName == "" && f.ChefName == "" &&
		len(f.IngredientsIn) == 0 && len(f.IngredientsOut) == 0 &&
		len(f.TechniquesIn) == 0 && len(f.TechniquesOut) == 0
}

// SearchHit is one raw result from the catalog store: the embedded text,
// the similarity score, and the attribute map attached to the record.
type SearchHit struct {
	Contents string
	Score    float32
	Fields   map[string]any
}

// SearchCandidate is a search hit reshaped into comparable dish
// attributes, ready for verification against the original question.
type SearchCandidate struct {
	Name           string   `json:"name"`
	Planet         string   `json:"planet"`
	RestaurantName string   `json:"restaurant_name"`
	ChefName       string   `json:"chef_name"`
	Ingredients    []string `json:"ingredients"`
	Techniques     []string `json:"techniques"`
}
