package normalize

import (
	"strings"

	"github.com/recipeworks/simmer/source"
)

// validDifficulties is the fixed enumerated set, matched case-insensitively.
// "" and "unknown" are acceptable — absence of a difficulty is not an error.
var validDifficulties = map[string]struct{}{
	"easy":    {},
	"medium":  {},
	"hard":    {},
	"unknown": {},
	"":        {},
}

var timeFields = []string{"prep_time_min", "cook_time_min", "total_time_min"}

// recipeIdentity returns the durable identity key: the source-assigned id,
// falling back to the slug when the id is blank.
func recipeIdentity(doc source.Document) string {
	if id := strings.TrimSpace(doc.Field("id").AsString()); id != "" {
		return id
	}
	return strings.TrimSpace(doc.Field("slug").AsString())
}

// ContentKey derives the content-equivalence key used purely for duplicate
// detection: normalized title + cuisine. Distinct from identity, and
// recomputable from a persisted row.
func ContentKey(title, cuisine string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "\x1f" + strings.ToLower(strings.TrimSpace(cuisine))
}

func recipeContentKey(doc source.Document) string {
	return ContentKey(doc.Field("title").AsString(), doc.Field("cuisine").AsString())
}

// validateRecipe runs every structural rule independently and returns all
// violations in rule order.
func validateRecipe(doc source.Document) []ReasonCode {
	var reasons []ReasonCode

	if doc.Field("title").Blank() {
		reasons = append(reasons, ReasonMissingTitle)
	}

	ingredients, ok := doc.Field("ingredients").AsList()
	if !ok || len(ingredients) == 0 {
		reasons = append(reasons, ReasonNoIngredients)
	} else {
		for _, ing := range ingredients {
			m, isMap := ing.AsMap()
			if !isMap || blankField(m, "name") {
				reasons = append(reasons, ReasonIngredientMissingName)
				break
			}
		}
	}

	steps, ok := doc.Field("steps").AsList()
	if !ok || len(steps) == 0 {
		reasons = append(reasons, ReasonNoSteps)
	}

	for _, field := range timeFields {
		v := doc.Field(field)
		if v.IsNull() || v.AsString() == "" {
			continue
		}
		f, parsed := v.AsNumber()
		switch {
		case !parsed:
			reasons = append(reasons, ReasonInvalidTimeFormat)
		case f < 0:
			reasons = append(reasons, ReasonNegativeTimeValue)
		}
	}

	difficulty := strings.ToLower(strings.TrimSpace(doc.Field("difficulty").AsString()))
	if _, valid := validDifficulties[difficulty]; !valid {
		reasons = append(reasons, ReasonInvalidDifficulty)
	}

	return reasons
}

func blankField(m map[string]source.Value, name string) bool {
	v, ok := m[name]
	return !ok || v.Blank()
}

// flattenRecipe produces the parent row plus owned child rows. Callers
// only reach this after structural validation, so child extraction is
// permissive: missing sub-fields flatten to "".
func flattenRecipe(doc source.Document, id string) (RecipeRow, []IngredientRow, []StepRow) {
	row := RecipeRow{
		ID:           id,
		Title:        strings.TrimSpace(doc.Field("title").AsString()),
		Cuisine:      strings.TrimSpace(doc.Field("cuisine").AsString()),
		Difficulty:   doc.Field("difficulty").AsString(),
		PrepTimeMin:  doc.Field("prep_time_min").AsString(),
		CookTimeMin:  doc.Field("cook_time_min").AsString(),
		TotalTimeMin: doc.Field("total_time_min").AsString(),
		Tags:         joinTags(doc.Field("tags")),
		CreatedAt:    doc.Field("created_at").AsString(),
	}

	var ingredients []IngredientRow
	if list, ok := doc.Field("ingredients").AsList(); ok {
		for _, ing := range list {
			m, _ := ing.AsMap()
			ingredients = append(ingredients, IngredientRow{
				RecipeID:       id,
				IngredientName: fieldString(m, "name"),
				Quantity:       fieldString(m, "quantity"),
				Unit:           fieldString(m, "unit"),
			})
		}
	}

	var steps []StepRow
	if list, ok := doc.Field("steps").AsList(); ok {
		for _, st := range list {
			// A step is either plain text or a {step_number, description}
			// structure; both normalize to the same two-field row.
			if m, isMap := st.AsMap(); isMap {
				steps = append(steps, StepRow{
					RecipeID:   id,
					StepNumber: fieldString(m, "step_number"),
					StepText:   fieldString(m, "description"),
				})
			} else {
				steps = append(steps, StepRow{
					RecipeID: id,
					StepText: st.AsString(),
				})
			}
		}
	}

	return row, ingredients, steps
}

func fieldString(m map[string]source.Value, name string) string {
	if m == nil {
		return ""
	}
	return m[name].AsString()
}

func joinTags(v source.Value) string {
	list, ok := v.AsList()
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(list))
	for _, tag := range list {
		parts = append(parts, tag.AsString())
	}
	return strings.Join(parts, ",")
}
