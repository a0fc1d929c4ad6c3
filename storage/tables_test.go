package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeworks/simmer/errors"
	qtesting "github.com/recipeworks/simmer/internal/testing"
	"github.com/recipeworks/simmer/normalize"
)

func sampleRows() normalize.RowSet {
	return normalize.RowSet{
		Recipes: []normalize.RecipeRow{
			{ID: "r1", Title: "Soup", Cuisine: "X", Difficulty: "easy", PrepTimeMin: "5"},
			{ID: "r2", Title: "Stew", Cuisine: "Y"},
		},
		Ingredients: []normalize.IngredientRow{
			{RecipeID: "r1", IngredientName: "water", Quantity: "1", Unit: "l"},
		},
		Steps: []normalize.StepRow{
			{RecipeID: "r1", StepNumber: "1", StepText: "boil"},
		},
		Interactions: []normalize.InteractionRow{
			{ID: "i1", UserID: "u1", RecipeID: "r1", Type: "view", Timestamp: "2025-01-01T00:00:00Z", MetadataJSON: "{}"},
		},
	}
}

func TestAppendRows_RoundTrip(t *testing.T) {
	database := qtesting.CreateTestDB(t)
	tables := NewTables(database, nil)
	ctx := context.Background()

	require.NoError(t, tables.AppendRows(ctx, sampleRows()))

	snap, err := tables.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Recipes, 2)
	assert.Equal(t, "Soup", snap.Recipes[0].Title)
	assert.Equal(t, "5", snap.Recipes[0].PrepTimeMin)
	require.Len(t, snap.Ingredients, 1)
	assert.Equal(t, "water", snap.Ingredients[0].IngredientName)
	require.Len(t, snap.Steps, 1)
	require.Len(t, snap.Interactions, 1)
	assert.Equal(t, "{}", snap.Interactions[0].MetadataJSON)
}

func TestAppendRows_AccumulatesAcrossRuns(t *testing.T) {
	database := qtesting.CreateTestDB(t)
	tables := NewTables(database, nil)
	ctx := context.Background()

	require.NoError(t, tables.AppendRows(ctx, sampleRows()))
	require.NoError(t, tables.AppendRows(ctx, normalize.RowSet{
		Recipes: []normalize.RecipeRow{{ID: "r3", Title: "Salad", Cuisine: "Z"}},
	}))

	snap, err := tables.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Recipes, 3)
}

func TestRecipeKeys(t *testing.T) {
	database := qtesting.CreateTestDB(t)
	tables := NewTables(database, nil)
	ctx := context.Background()

	require.NoError(t, tables.AppendRows(ctx, sampleRows()))

	identity, content, err := tables.RecipeKeys(ctx)
	require.NoError(t, err)
	assert.True(t, identity.Has("r1"))
	assert.True(t, identity.Has("r2"))
	assert.True(t, content.Has(normalize.ContentKey("Soup", "X")))
	assert.True(t, content.Has(normalize.ContentKey("  SOUP ", "x")), "content keys are normalized")
	assert.False(t, content.Has(normalize.ContentKey("Soup", "Y")))
}

func TestInteractionKeys(t *testing.T) {
	database := qtesting.CreateTestDB(t)
	tables := NewTables(database, nil)
	ctx := context.Background()

	require.NoError(t, tables.AppendRows(ctx, sampleRows()))

	identity, err := tables.InteractionKeys(ctx)
	require.NoError(t, err)
	assert.True(t, identity.Has("i1"))
	assert.False(t, identity.Has("i2"))
}

func TestSnapshot_EmptyStore(t *testing.T) {
	database := qtesting.CreateTestDB(t)
	tables := NewTables(database, nil)

	snap, err := tables.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Recipes)
	assert.Empty(t, snap.Interactions)
}

func TestAppendRows_RollsBackOnInsertFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO recipes").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	tables := NewTables(mockDB, nil)
	err = tables.AppendRows(context.Background(), normalize.RowSet{
		Recipes: []normalize.RecipeRow{{ID: "r1", Title: "Soup"}},
	})

	require.Error(t, err)
	assert.True(t, errors.IsStoreFailure(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
