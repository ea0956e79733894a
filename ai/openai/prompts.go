package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/astrodine/menusearch/core"
)

const extractFilterPromptTemplate = `Analyze the following question and identify whether it states explicit, precise filters.
Return a JSON object with this structure:
{
    "planet": "Planet name, if mentioned explicitly and present in the planet list (%s), otherwise null",
    "restaurant_name": "Restaurant name, if mentioned explicitly, otherwise null",
    "chef_name": "Chef name, if mentioned explicitly, otherwise null",
    "ingredients_in": "List of ingredients that MUST be present (e.g. ['Ingredient 1', 'Ingredient 2']), otherwise null",
    "ingredients_out": "List of ingredients that must NOT be present (e.g. ['Ingredient 1']), otherwise null. Look for phrases like 'without', 'does not contain', 'not using', 'excluding'",
    "techniques_in": "List of techniques that MUST be present (e.g. ['Technique 1', 'Technique 2']), otherwise null",
    "techniques_out": "List of techniques that must NOT be present (e.g. ['Technique 1']), otherwise null. Look for phrases like 'without', 'does not use', 'not using', 'excluding'"
}

IMPORTANT:
- Extract ingredients and techniques ONLY when they are mentioned explicitly and precisely in the question.
- For ingredients/techniques IN: look for phrases like "with", "using", "that contains", "that employs"
- For ingredients/techniques OUT: look for phrases like "without", "does not contain", "not using", "does not use", "excluding"
- For ingredients: extract the exact name, including any special characters
- For techniques: extract the exact name, including any special characters
- If an ingredient/technique is mentioned with no explicit inclusion/exclusion cue, put it in IN

Examples:
- "dishes with X" -> X in ingredients_in
- "dishes without X" -> X in ingredients_out
- "dishes using technique Y" -> Y in techniques_in
- "dishes without technique Y" -> Y in techniques_out

Question: "%s"

Return ONLY the JSON object, with no other text and no markdown code fences.`

const optimizeQueryPromptTemplate = `Analyze the following question and build a query optimized for semantic search over dishes.

The query must contain:
- Names of the ingredients mentioned
- Names of the techniques mentioned
- Essential information (planet, restaurant, chef when mentioned)

IMPORTANT: When the question asks about specific ingredients and/or techniques, build a query that includes:
- The exact ingredient and/or technique name, including any special characters
- The words "dish", "ingredient" and/or "technique" for context
- Examples: "Dish with ingredient X", "Dish with technique Y"

Original question: "%s"

Return ONLY the optimized query as a single line, with no other text, explanation, or markdown.`

const verifyDishesPromptTemplate = `You are a rigorous culinary judge. Your task is to select the dishes that EXACTLY satisfy the user's request.
Analyze the question for the relevant constraints:
- Planet
- Restaurant
- Chef
- Ingredients
- Techniques

User question: "%s"

IMPORTANT:
- If the question mentions a specific planet, keep only dishes with that planet (planet);
- If the question mentions a specific restaurant, keep only dishes with that restaurant (restaurant_name);
- If the question mentions a specific chef, keep only dishes with that chef (chef_name);
- If the question mentions an ingredient that MUST be present (e.g. "with X", "that contains X"), look for that EXACT ingredient in the dish ingredient list (ingredients); ignore extra descriptions, focus only on the ingredient name.
- If the question mentions an ingredient that must NOT be present (e.g. "without X", "does not contain X"), check that the ingredient is NOT in the dish ingredient list.
- If the question mentions a technique that MUST be present (e.g. "using Y", "with technique Y"), look for that EXACT technique in the dish technique list (techniques); ignore extra descriptions, focus only on the technique name.
- If the question mentions a technique that must NOT be present (e.g. "without technique Y", "does not use Y"), check that the technique is NOT in the dish technique list.

Here is the list of candidate dishes (with planet, restaurant, chef, ingredients, and techniques):
%s

Task: return a JSON array of strings containing ONLY the names of the dishes that EXACTLY satisfy the user's request.
If no dish satisfies the request, return an empty array [].

Output format: ["Dish Name A", "Dish Name B"]
Return ONLY the JSON array, with no other text and no markdown code fences.`

const extractMenuPromptTemplate = `You are an assistant that extracts structured data from galactic restaurant menus.

Carefully analyze the following text, find every piece of information about each dish, and report values EXACTLY as written:
- Dish name
- Description
- Planet
- Chef
- Chef licenses
- Ingredients
- Techniques used to prepare the dish

Return a valid JSON object with this EXACT structure:
{
    "restaurant": {
        "name": "Restaurant Name",
        "planet": "Planet Name",
        "chef": { "name": "Chef Name", "licenses": ["LTK III", "P V"] }
    },
    "dishes": [
        {
            "name": "Dish Name",
            "description": "Dish description",
            "ingredients": ["Ingredient 1", "Ingredient 2"],
            "techniques": ["Technique 1", "Technique 2"]
        }
    ]
}

MENU TEXT:
%s

Return ONLY the JSON object, with no other text and no markdown code fences.`

// buildExtractFilterPrompt embeds the closed planet list so the extractor
// cannot invent planets outside the catalog's domain.
func buildExtractFilterPrompt(question string, planets []string) string {
	return fmt.Sprintf(extractFilterPromptTemplate, strings.Join(planets, ", "), question)
}

func buildOptimizeQueryPrompt(question string) string {
	return fmt.Sprintf(optimizeQueryPromptTemplate, question)
}

func buildVerifyDishesPrompt(question string, candidates []core.SearchCandidate) (string, error) {
	encoded, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(verifyDishesPromptTemplate, question, string(encoded)), nil
}

func buildExtractMenuPrompt(text string) string {
	return fmt.Sprintf(extractMenuPromptTemplate, text)
}
