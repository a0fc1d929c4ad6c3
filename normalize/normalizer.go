// Package normalize flattens changed documents into typed relational rows
// and deduplicates them along two independent dimensions: durable identity
// and content equivalence. Every input document resolves to exactly one of
// a valid row set or a quarantine record — normalization never errors on
// data, so valid rows plus quarantined records always partition the input.
package normalize

import (
	"go.uber.org/zap"

	"github.com/recipeworks/simmer/source"
	"github.com/recipeworks/simmer/sym"
)

// Result is the outcome of normalizing one batch of documents.
type Result struct {
	Rows        RowSet
	Quarantined []QuarantineRecord

	// IdentityKeys and ContentKeys are the input sets grown with every
	// accepted document, so later batches see this one as already seen.
	IdentityKeys KeySet
	ContentKeys  KeySet
}

// Normalizer converts changed documents into rows. Stateless across calls;
// dedup state travels through the key sets passed in and returned.
type Normalizer struct {
	log *zap.SugaredLogger
}

// NewNormalizer creates a Normalizer. logger may be nil for silent operation.
func NewNormalizer(logger *zap.SugaredLogger) *Normalizer {
	return &Normalizer{log: logger}
}

// Recipes normalizes recipe documents against the already-persisted
// identity and content key sets.
//
// Per-document check order is a fixed tie-break policy, not incidental:
// missing id, then duplicate id, then structural rules (all violations
// accumulated), then duplicate content. A reappearing id is always
// duplicate_id, even when the document is otherwise invalid or carries
// fresh content.
func (n *Normalizer) Recipes(docs []source.Document, identity, content KeySet) Result {
	res := Result{
		IdentityKeys: identity.Clone(),
		ContentKeys:  content.Clone(),
	}

	for _, doc := range docs {
		id := recipeIdentity(doc)
		if id == "" {
			res.reject(doc, ReasonMissingID)
			continue
		}

		if res.IdentityKeys.Has(id) {
			res.reject(doc, ReasonDuplicateID)
			continue
		}

		if reasons := validateRecipe(doc); len(reasons) > 0 {
			res.reject(doc, reasons...)
			continue
		}

		key := recipeContentKey(doc)
		if res.ContentKeys.Has(key) {
			res.reject(doc, ReasonDuplicateContent)
			continue
		}

		row, ingredients, steps := flattenRecipe(doc, id)
		res.Rows.Recipes = append(res.Rows.Recipes, row)
		res.Rows.Ingredients = append(res.Rows.Ingredients, ingredients...)
		res.Rows.Steps = append(res.Rows.Steps, steps...)

		res.IdentityKeys.Add(id)
		res.ContentKeys.Add(key)
	}

	n.logBatch("recipes", len(docs), &res)
	return res
}

// Interactions normalizes interaction documents. Interactions carry no
// content-equivalence key; identity is their only dedup dimension.
func (n *Normalizer) Interactions(docs []source.Document, identity KeySet) Result {
	res := Result{
		IdentityKeys: identity.Clone(),
		ContentKeys:  NewKeySet(),
	}

	for _, doc := range docs {
		id := interactionIdentity(doc)
		if id == "" {
			res.reject(doc, ReasonMissingID)
			continue
		}

		if res.IdentityKeys.Has(id) {
			res.reject(doc, ReasonDuplicateID)
			continue
		}

		if reasons := validateInteraction(doc); len(reasons) > 0 {
			res.reject(doc, reasons...)
			continue
		}

		res.Rows.Interactions = append(res.Rows.Interactions, flattenInteraction(doc, id))
		res.IdentityKeys.Add(id)
	}

	n.logBatch("interactions", len(docs), &res)
	return res
}

func (r *Result) reject(doc source.Document, reasons ...ReasonCode) {
	r.Quarantined = append(r.Quarantined, QuarantineRecord{
		Record:  doc.Fields,
		Reasons: reasons,
	})
}

func (n *Normalizer) logBatch(entity string, input int, res *Result) {
	if n.log == nil {
		return
	}
	n.log.Infow(sym.Normalize+" "+entity+" normalized",
		"input", input,
		"accepted", input-len(res.Quarantined),
		"quarantined", len(res.Quarantined),
	)
}
