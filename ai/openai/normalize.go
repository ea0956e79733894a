package openai

import (
	"bytes"
	"encoding/json"
	"strings"
)

// rawFilter is the wire shape of the filter-extraction response. Field
// values are kept raw because models return them as null, a string, a JSON
// list, or a JSON list encoded inside a string; normalization happens after
// unmarshaling, never implicitly.
type rawFilter struct {
	Planet         json.RawMessage `json:"planet"`
	RestaurantName json.RawMessage `json:"restaurant_name"`
	ChefName       json.RawMessage `json:"chef_name"`
	IngredientsIn  json.RawMessage `json:"ingredients_in"`
	IngredientsOut json.RawMessage `json:"ingredients_out"`
	TechniquesIn   json.RawMessage `json:"techniques_in"`
	TechniquesOut  json.RawMessage `json:"techniques_out"`

	// Older prompt revisions used single undirected lists. When a response
	// carries them without the directed variants, they count as _in.
	Ingredients json.RawMessage `json:"ingredients"`
	Techniques  json.RawMessage `json:"techniques"`
}

// normalizeScalar collapses a raw scalar field to its string value, or to
// absent ("") for null, the literal "null", non-strings, and blanks.
func normalizeScalar(raw json.RawMessage) string {
	if isAbsent(raw) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "null") {
		return ""
	}
	return s
}

// normalizeList collapses a raw list-typed field to a clean string slice.
// A JSON array is taken as-is; a string is first parsed as a JSON array and
// wrapped as a single-element list when that fails; anything else is absent.
// Empty results collapse to nil so that "no constraint" stays distinct from
// "empty constraint".
func normalizeList(raw json.RawMessage) []string {
	if isAbsent(raw) {
		return nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '[':
		return cleanList(decodeStringList(trimmed))
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "null") {
			return nil
		}
		if strings.HasPrefix(s, "[") {
			if list := decodeStringList([]byte(s)); list != nil {
				return cleanList(list)
			}
		}
		return []string{s}
	default:
		// Numbers, booleans, objects: not a list, treat as absent.
		return nil
	}
}

func decodeStringList(data []byte) []string {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		return list
	}

	// Mixed-type arrays: keep the string elements, drop the rest.
	var mixed []any
	if err := json.Unmarshal(data, &mixed); err != nil {
		return nil
	}
	list = make([]string, 0, len(mixed))
	for _, v := range mixed {
		if s, ok := v.(string); ok {
			list = append(list, s)
		}
	}
	return list
}

func cleanList(list []string) []string {
	cleaned := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
