package normalize

import (
	"encoding/json"
	"strings"

	"github.com/recipeworks/simmer/source"
)

// validInteractionTypes is the fixed enumerated set; unrecognized types
// reject the record.
var validInteractionTypes = map[string]struct{}{
	"view":    {},
	"like":    {},
	"rating":  {},
	"attempt": {},
}

// ratingKeys are the metadata fields a rating interaction may carry its
// numeric value under, in lookup order.
var ratingKeys = []string{"rating", "rating_value", "stars", "score"}

func interactionIdentity(doc source.Document) string {
	return strings.TrimSpace(doc.Field("id").AsString())
}

// validateInteraction runs every structural rule independently and returns
// all violations in rule order.
func validateInteraction(doc source.Document) []ReasonCode {
	var reasons []ReasonCode

	if doc.Field("user_id").Blank() {
		reasons = append(reasons, ReasonMissingUserID)
	}
	if doc.Field("recipe_id").Blank() {
		reasons = append(reasons, ReasonMissingRecipeID)
	}

	itype := doc.Field("type").AsString()
	if _, valid := validInteractionTypes[itype]; !valid {
		reasons = append(reasons, ReasonInvalidType)
	} else if itype == "rating" {
		if _, ok := ratingValue(doc); !ok {
			reasons = append(reasons, ReasonMissingRatingValue)
		}
	}

	return reasons
}

// ratingValue looks for a parseable numeric rating on the document itself
// or under its metadata map.
func ratingValue(doc source.Document) (float64, bool) {
	if f, ok := doc.Field("rating").AsNumber(); ok {
		return f, true
	}
	if meta, ok := doc.Field("metadata").AsMap(); ok {
		for _, key := range ratingKeys {
			if f, parsed := meta[key].AsNumber(); parsed {
				return f, true
			}
		}
	}
	return 0, false
}

func flattenInteraction(doc source.Document, id string) InteractionRow {
	metadata := "{}"
	if meta, ok := doc.Field("metadata").AsMap(); ok {
		if raw, err := json.Marshal(source.Map(meta)); err == nil {
			metadata = string(raw)
		}
	}

	return InteractionRow{
		ID:           id,
		UserID:       doc.Field("user_id").AsString(),
		RecipeID:     doc.Field("recipe_id").AsString(),
		Type:         doc.Field("type").AsString(),
		Timestamp:    doc.Field("timestamp").AsString(),
		MetadataJSON: metadata,
	}
}
