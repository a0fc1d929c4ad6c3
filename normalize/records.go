package normalize

import (
	"github.com/recipeworks/simmer/source"
)

// RecipeRow is the flattened parent row for a recipe document. Time fields
// keep their raw string form ("" when absent) — the validation engine
// re-parses them table-wide, matching the tabular output format.
type RecipeRow struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Cuisine      string `json:"cuisine"`
	Difficulty   string `json:"difficulty"`
	PrepTimeMin  string `json:"prep_time_min"`
	CookTimeMin  string `json:"cook_time_min"`
	TotalTimeMin string `json:"total_time_min"`
	Tags         string `json:"tags"`
	CreatedAt    string `json:"created_at"`
}

// IngredientRow is an owned child row referencing its recipe by identity.
type IngredientRow struct {
	RecipeID       string `json:"recipe_id"`
	IngredientName string `json:"ingredient_name"`
	Quantity       string `json:"quantity"`
	Unit           string `json:"unit"`
}

// StepRow is an owned child row referencing its recipe by identity.
type StepRow struct {
	RecipeID   string `json:"recipe_id"`
	StepNumber string `json:"step_number"`
	StepText   string `json:"step_text"`
}

// InteractionRow references a recipe weakly: the relation is recorded and
// validated for existence by the quality engine, never enforced as
// ownership.
type InteractionRow struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	RecipeID     string `json:"recipe_id"`
	Type         string `json:"type"`
	Timestamp    string `json:"timestamp"`
	MetadataJSON string `json:"metadata_json"`
}

// RowSet holds per-entity row sequences. The normalizer emits one as the
// run's delta; the table store returns one as the full table snapshot for
// validation.
type RowSet struct {
	Recipes      []RecipeRow
	Ingredients  []IngredientRow
	Steps        []StepRow
	Interactions []InteractionRow
}

// Merge appends other's rows onto rs.
func (rs *RowSet) Merge(other RowSet) {
	rs.Recipes = append(rs.Recipes, other.Recipes...)
	rs.Ingredients = append(rs.Ingredients, other.Ingredients...)
	rs.Steps = append(rs.Steps, other.Steps...)
	rs.Interactions = append(rs.Interactions, other.Interactions...)
}

// QuarantineRecord retains a rejected document together with the ordered
// reasons it was rejected for. Quarantined records are never merged back
// into the valid tables.
type QuarantineRecord struct {
	Record  map[string]source.Value `json:"record"`
	Reasons []ReasonCode            `json:"reasons"`
}

// Category buckets the record by its first (highest-precedence) reason.
func (q QuarantineRecord) Category() Category {
	if len(q.Reasons) == 0 {
		return CategoryInvalid
	}
	return CategoryOf(q.Reasons[0])
}

// KeySet is a set of identity or content keys, grown in-run so later
// documents in the same batch see earlier ones as already present.
type KeySet map[string]struct{}

// NewKeySet builds a set from keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Has reports membership.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Add inserts a key.
func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}

// Clone copies the set.
func (s KeySet) Clone() KeySet {
	c := make(KeySet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}
