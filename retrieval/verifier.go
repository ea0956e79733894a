package retrieval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/astrodine/menusearch/ai"
	"github.com/astrodine/menusearch/core"
)

// Verifier projects raw search hits into comparable candidates and asks the
// dish verifier to judge them against the original question. It fails
// closed: any collaborator failure yields an empty result.
type Verifier struct {
	verifier ai.DishVerifier
	logger   *slog.Logger
}

// NewVerifier creates a verifier on the given judgment service.
func NewVerifier(verifier ai.DishVerifier) *Verifier {
	return &Verifier{
		verifier: verifier,
		logger:   slog.Default().With("component", "verifier"),
	}
}

// Verify returns the names of the hits that exactly satisfy the question.
// Hits without a dish name are skipped. When no usable candidate remains,
// the judgment service is not called at all. Names the service returns that
// were never candidates are fabrications and are discarded.
func (v *Verifier) Verify(ctx context.Context, question string, hits []core.SearchHit) []string {
	candidates := ProjectCandidates(hits)
	if len(candidates) == 0 {
		return nil
	}

	verified, err := v.verifier.VerifyDishes(ctx, question, candidates)
	if err != nil {
		v.logger.Warn("verification failed, discarding candidates", "error", err)
		return nil
	}

	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c.Name] = true
	}

	names := make([]string, 0, len(verified))
	for _, name := range verified {
		name = strings.TrimSpace(name)
		if !known[name] {
			if name != "" {
				v.logger.Warn("discarding fabricated dish name", "name", name)
			}
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil
	}
	return names
}

// ProjectCandidates reshapes raw hits into comparable candidates by reading
// their attribute maps. Hits without a dish name cannot be reported back and
// are dropped.
func ProjectCandidates(hits []core.SearchHit) []core.SearchCandidate {
	candidates := make([]core.SearchCandidate, 0, len(hits))
	for _, hit := range hits {
		name := fieldString(hit.Fields, core.AttrDishName)
		if name == "" {
			continue
		}
		candidates = append(candidates, core.SearchCandidate{
			Name:           name,
			Planet:         fieldString(hit.Fields, core.AttrPlanet),
			RestaurantName: fieldString(hit.Fields, core.AttrRestaurantName),
			ChefName:       fieldString(hit.Fields, core.AttrChefName),
			Ingredients:    fieldList(hit.Fields, core.AttrRawIngredients, core.AttrIngredients),
			Techniques:     fieldList(hit.Fields, core.AttrRawTechniques, core.AttrTechniques),
		})
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates
}

func fieldString(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// fieldList reads a list attribute, preferring the raw list form and
// re-splitting the comma-joined string form when that is all the hit
// carries.
func fieldList(fields map[string]any, rawKey, joinedKey string) []string {
	switch v := fields[rawKey].(type) {
	case []string:
		if len(v) > 0 {
			return v
		}
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				list = append(list, strings.TrimSpace(s))
			}
		}
		if len(list) > 0 {
			return list
		}
	}

	joined := fieldString(fields, joinedKey)
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	if len(list) == 0 {
		return nil
	}
	return list
}
