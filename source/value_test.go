package source

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueCoercions(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "soup", String("soup").AsString())
		assert.True(t, String("  ").Blank())
		assert.False(t, String("x").Blank())
	})

	t.Run("number", func(t *testing.T) {
		assert.Equal(t, "2", Number(2).AsString())
		assert.Equal(t, "2.5", Number(2.5).AsString())

		f, ok := Number(-5).AsNumber()
		require.True(t, ok)
		assert.Equal(t, -5.0, f)
	})

	t.Run("numeric strings parse", func(t *testing.T) {
		f, ok := String(" 42 ").AsNumber()
		require.True(t, ok)
		assert.Equal(t, 42.0, f)

		_, ok = String("forty-two").AsNumber()
		assert.False(t, ok)
	})

	t.Run("null", func(t *testing.T) {
		assert.True(t, Null().IsNull())
		assert.Equal(t, "", Null().AsString())
		assert.True(t, Null().Blank())

		var zero Value
		assert.True(t, zero.IsNull(), "zero Value is null")
	})

	t.Run("bool", func(t *testing.T) {
		b, ok := Bool(true).AsBool()
		require.True(t, ok)
		assert.True(t, b)
		assert.Equal(t, "true", Bool(true).AsString())
	})

	t.Run("list and map", func(t *testing.T) {
		list, ok := List(String("a"), String("b")).AsList()
		require.True(t, ok)
		assert.Len(t, list, 2)

		m, ok := Map(map[string]Value{"k": Number(1)}).AsMap()
		require.True(t, ok)
		assert.Equal(t, Number(1), m["k"])

		_, ok = String("not a list").AsList()
		assert.False(t, ok)
	})
}

func TestValueCanonicalJSON(t *testing.T) {
	// Same structural content built in different insertion orders must
	// serialize identically.
	a := Map(map[string]Value{
		"title":   String("Soup"),
		"cuisine": String("X"),
		"times":   Map(map[string]Value{"prep": Number(5), "cook": Number(10)}),
	})
	b := Map(map[string]Value{
		"times":   Map(map[string]Value{"cook": Number(10), "prep": Number(5)}),
		"cuisine": String("X"),
		"title":   String("Soup"),
	})

	rawA, err := json.Marshal(a)
	require.NoError(t, err)
	rawB, err := json.Marshal(b)
	require.NoError(t, err)

	assert.Equal(t, string(rawA), string(rawB))
	assert.Equal(t, `{"cuisine":"X","times":{"cook":10,"prep":5},"title":"Soup"}`, string(rawA))
}

func TestValueJSONRoundTrip(t *testing.T) {
	raw := `{"title":"Soup","servings":4,"vegan":false,"tags":["quick","easy"],"notes":null}`

	var v Value
	require.NoError(t, json.Unmarshal([]byte(raw), &v))

	m, ok := v.AsMap()
	require.True(t, ok)
	assert.Equal(t, "Soup", m["title"].AsString())
	assert.Equal(t, Number(4), m["servings"])
	assert.True(t, m["notes"].IsNull())

	tags, ok := m["tags"].AsList()
	require.True(t, ok)
	assert.Len(t, tags, 2)
}

func TestFromAny_Timestamps(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2025, 3, 1, 14, 30, 0, 0, loc)

	v := FromAny(ts)
	assert.Equal(t, "2025-03-01T12:30:00Z", v.AsString(),
		"collaborator timestamps normalize to RFC3339 UTC")
}
