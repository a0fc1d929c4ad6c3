package normalize

// ReasonCode labels why a document was quarantined. Codes are stable
// identifiers consumed by downstream analytics that count failures by
// category.
type ReasonCode string

const (
	// Identity
	ReasonMissingID   ReasonCode = "missing_id"
	ReasonDuplicateID ReasonCode = "duplicate_id"

	// Recipe structure
	ReasonMissingTitle          ReasonCode = "missing_title"
	ReasonNoIngredients         ReasonCode = "no_ingredients"
	ReasonIngredientMissingName ReasonCode = "ingredient_missing_name"
	ReasonNoSteps               ReasonCode = "no_steps"
	ReasonNegativeTimeValue     ReasonCode = "negative_time_value"
	ReasonInvalidTimeFormat     ReasonCode = "invalid_time_format"
	ReasonInvalidDifficulty     ReasonCode = "invalid_difficulty"

	// Content equivalence
	ReasonDuplicateContent ReasonCode = "duplicate_content"

	// Interaction structure
	ReasonMissingUserID      ReasonCode = "missing_user_id"
	ReasonMissingRecipeID    ReasonCode = "missing_recipe_id"
	ReasonInvalidType        ReasonCode = "invalid_type"
	ReasonMissingRatingValue ReasonCode = "missing_rating_value"
)

// Category groups reason codes for quarantine output files.
type Category string

const (
	CategoryMissingID Category = "missing_id"
	CategoryInvalid   Category = "invalid"
	CategoryDuplicate Category = "duplicate"
)

// CategoryOf buckets a reason into its quarantine output category.
func CategoryOf(reason ReasonCode) Category {
	switch reason {
	case ReasonMissingID:
		return CategoryMissingID
	case ReasonDuplicateID, ReasonDuplicateContent:
		return CategoryDuplicate
	default:
		return CategoryInvalid
	}
}
