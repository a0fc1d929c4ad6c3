package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	database, err := Open(dbPath, nil)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database, nil))

	// All entity tables exist
	for _, table := range []string{"recipes", "ingredients", "steps", "interactions", "schema_migrations"} {
		var name string
		err := database.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}

	// Every migration recorded
	var applied int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.GreaterOrEqual(t, applied, 2)
}

func TestMigrate_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	database, err := Open(dbPath, nil)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database, nil))

	var appliedFirst int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&appliedFirst))

	// Second run applies nothing new
	require.NoError(t, Migrate(database, nil))

	var appliedSecond int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&appliedSecond))
	assert.Equal(t, appliedFirst, appliedSecond)
}

func TestMigrate_NoIdentityPrimaryKey(t *testing.T) {
	// Duplicate identities must be insertable so the validation engine's
	// duplicate re-check has something to catch.
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	database, err := Open(dbPath, nil)
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, Migrate(database, nil))

	for i := 0; i < 2; i++ {
		_, err = database.Exec(`INSERT INTO recipes (id, title) VALUES ('r1', 'Soup')`)
		require.NoError(t, err)
	}

	var n int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM recipes WHERE id = 'r1'").Scan(&n))
	assert.Equal(t, 2, n)
}
