package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeworks/simmer/source"
)

func doc(id string, fields map[string]source.Value) source.Document {
	return source.Document{Collection: "recipes", ID: id, Fields: fields}
}

func TestFingerprint_StableUnderKeyOrder(t *testing.T) {
	fp := NewFingerprinter(nil)

	a := doc("r1", map[string]source.Value{
		"title":   source.String("Soup"),
		"cuisine": source.String("X"),
	})
	b := doc("r1", map[string]source.Value{
		"cuisine": source.String("X"),
		"title":   source.String("Soup"),
	})

	assert.Equal(t, fp.Fingerprint(a), fp.Fingerprint(b))
}

func TestFingerprint_SensitiveToContent(t *testing.T) {
	fp := NewFingerprinter(nil)

	a := doc("r1", map[string]source.Value{"title": source.String("Soup")})
	b := doc("r1", map[string]source.Value{"title": source.String("Stew")})

	assert.NotEqual(t, fp.Fingerprint(a), fp.Fingerprint(b))
}

func TestFingerprint_IgnoresVolatileFields(t *testing.T) {
	fp := NewFingerprinter([]string{"exported_at"})

	a := doc("r1", map[string]source.Value{
		"title":       source.String("Soup"),
		"exported_at": source.String("2025-01-01T00:00:00Z"),
	})
	b := doc("r1", map[string]source.Value{
		"title":       source.String("Soup"),
		"exported_at": source.String("2025-06-30T12:00:00Z"),
	})

	assert.Equal(t, fp.Fingerprint(a), fp.Fingerprint(b),
		"volatile fields must not force an Updated classification")
}

func TestDetect_Classification(t *testing.T) {
	d := NewDetector(NewFingerprinter(nil))

	d1 := doc("r1", map[string]source.Value{"title": source.String("Soup")})
	d2 := doc("r2", map[string]source.Value{"title": source.String("Stew")})

	// First scan: everything is new.
	changed, next, stats := d.Detect("recipes", []source.Document{d1, d2}, map[string]string{})
	require.Len(t, changed, 2)
	assert.Equal(t, Stats{Collection: "recipes", New: 2, Total: 2}, stats)
	assert.Len(t, next, 2)
	assert.True(t, stats.HasChanges())

	// Second scan with one edit: only the edited doc flows.
	d2edited := doc("r2", map[string]source.Value{"title": source.String("Beef Stew")})
	changed, next2, stats := d.Detect("recipes", []source.Document{d1, d2edited}, next)
	require.Len(t, changed, 1)
	assert.Equal(t, "r2", changed[0].ID)
	assert.Equal(t, Stats{Collection: "recipes", Updated: 1, Unchanged: 1, Total: 2}, stats)
	assert.NotEqual(t, next["r2"], next2["r2"])
}

func TestDetect_IdempotentOnUnchangedSource(t *testing.T) {
	d := NewDetector(NewFingerprinter(nil))
	docs := []source.Document{
		doc("r1", map[string]source.Value{"title": source.String("Soup")}),
	}

	_, state, _ := d.Detect("recipes", docs, map[string]string{})
	changed, state2, stats := d.Detect("recipes", docs, state)

	assert.Empty(t, changed, "second pass over unchanged source emits nothing")
	assert.Equal(t, state, state2)
	assert.False(t, stats.HasChanges())
}

func TestDetect_PreservesSourceOrder(t *testing.T) {
	d := NewDetector(NewFingerprinter(nil))
	var docs []source.Document
	for _, id := range []string{"z", "a", "m", "b"} {
		docs = append(docs, doc(id, map[string]source.Value{"title": source.String(id)}))
	}

	changed, _, _ := d.Detect("recipes", docs, map[string]string{})
	var order []string
	for _, c := range changed {
		order = append(order, c.ID)
	}
	assert.Equal(t, []string{"z", "a", "m", "b"}, order)
}

func TestDetect_RetainsUnseenIDs(t *testing.T) {
	d := NewDetector(NewFingerprinter(nil))
	prior := map[string]string{"gone": "beef00"}

	_, next, _ := d.Detect("recipes", nil, prior)
	assert.Equal(t, "beef00", next["gone"],
		"documents deleted at the source are never dropped from the store")
}
