// Package storage persists normalized rows to the SQLite table store and
// writes run artifacts: quarantine files and per-entity CSV exports.
package storage

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/recipeworks/simmer/errors"
	"github.com/recipeworks/simmer/normalize"
	"github.com/recipeworks/simmer/sym"
)

// Query constants
const (
	recipeInsertQuery = `
		INSERT INTO recipes (id, title, cuisine, difficulty, prep_time_min, cook_time_min, total_time_min, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ingredientInsertQuery = `
		INSERT INTO ingredients (recipe_id, ingredient_name, quantity, unit)
		VALUES (?, ?, ?, ?)`

	stepInsertQuery = `
		INSERT INTO steps (recipe_id, step_number, step_text)
		VALUES (?, ?, ?)`

	interactionInsertQuery = `
		INSERT INTO interactions (id, user_id, recipe_id, type, timestamp, metadata_json)
		VALUES (?, ?, ?, ?, ?, ?)`

	recipeKeysQuery     = `SELECT id, title, cuisine FROM recipes`
	interactionIDsQuery = `SELECT id FROM interactions`
	recipeSelectQuery   = `SELECT id, title, cuisine, difficulty, prep_time_min, cook_time_min, total_time_min, tags, created_at FROM recipes`
	ingredientSelect    = `SELECT recipe_id, ingredient_name, quantity, unit FROM ingredients`
	stepSelectQuery     = `SELECT recipe_id, step_number, step_text FROM steps`
	interactionSelect   = `SELECT id, user_id, recipe_id, type, timestamp, metadata_json FROM interactions`
)

// Tables is the SQLite-backed store for normalized entity rows. Rows are
// append-only across runs; identity uniqueness is the deduplicator's job,
// not the schema's.
type Tables struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewTables creates a table store. logger may be nil.
func NewTables(db *sql.DB, logger *zap.SugaredLogger) *Tables {
	return &Tables{db: db, log: logger}
}

// AppendRows inserts one run's delta in a single transaction, so a failed
// run leaves the tables exactly as the previous run committed them.
func (t *Tables) AppendRows(ctx context.Context, rows normalize.RowSet) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrapf(errors.ErrStoreFailure, "begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, r := range rows.Recipes {
		if _, err := tx.ExecContext(ctx, recipeInsertQuery,
			r.ID, r.Title, r.Cuisine, r.Difficulty,
			r.PrepTimeMin, r.CookTimeMin, r.TotalTimeMin,
			r.Tags, r.CreatedAt,
		); err != nil {
			return errors.Wrapf(errors.ErrStoreFailure, "insert recipe %s: %v", r.ID, err)
		}
	}

	for _, r := range rows.Ingredients {
		if _, err := tx.ExecContext(ctx, ingredientInsertQuery,
			r.RecipeID, r.IngredientName, r.Quantity, r.Unit,
		); err != nil {
			return errors.Wrapf(errors.ErrStoreFailure, "insert ingredient for recipe %s: %v", r.RecipeID, err)
		}
	}

	for _, r := range rows.Steps {
		if _, err := tx.ExecContext(ctx, stepInsertQuery,
			r.RecipeID, r.StepNumber, r.StepText,
		); err != nil {
			return errors.Wrapf(errors.ErrStoreFailure, "insert step for recipe %s: %v", r.RecipeID, err)
		}
	}

	for _, r := range rows.Interactions {
		if _, err := tx.ExecContext(ctx, interactionInsertQuery,
			r.ID, r.UserID, r.RecipeID, r.Type, r.Timestamp, r.MetadataJSON,
		); err != nil {
			return errors.Wrapf(errors.ErrStoreFailure, "insert interaction %s: %v", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(errors.ErrStoreFailure, "commit row append: %v", err)
	}

	if t.log != nil {
		t.log.Infow(sym.DB+" rows appended",
			"recipes", len(rows.Recipes),
			"ingredients", len(rows.Ingredients),
			"steps", len(rows.Steps),
			"interactions", len(rows.Interactions),
		)
	}
	return nil
}

// RecipeKeys loads the persisted dedup state for recipes: every identity
// key and every content key already accepted by prior runs.
func (t *Tables) RecipeKeys(ctx context.Context) (identity, content normalize.KeySet, err error) {
	rows, err := t.db.QueryContext(ctx, recipeKeysQuery)
	if err != nil {
		return nil, nil, errors.Wrapf(errors.ErrStoreFailure, "query recipe keys: %v", err)
	}
	defer rows.Close()

	identity = normalize.NewKeySet()
	content = normalize.NewKeySet()
	for rows.Next() {
		var id, title, cuisine string
		if err := rows.Scan(&id, &title, &cuisine); err != nil {
			return nil, nil, errors.Wrapf(errors.ErrStoreFailure, "scan recipe key row: %v", err)
		}
		identity.Add(id)
		content.Add(normalize.ContentKey(title, cuisine))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrStoreFailure, "iterate recipe keys: %v", err)
	}
	return identity, content, nil
}

// InteractionKeys loads the persisted identity keys for interactions.
func (t *Tables) InteractionKeys(ctx context.Context) (normalize.KeySet, error) {
	rows, err := t.db.QueryContext(ctx, interactionIDsQuery)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrStoreFailure, "query interaction keys: %v", err)
	}
	defer rows.Close()

	identity := normalize.NewKeySet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrapf(errors.ErrStoreFailure, "scan interaction key row: %v", err)
		}
		identity.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrStoreFailure, "iterate interaction keys: %v", err)
	}
	return identity, nil
}

// Snapshot reads every table in full. The validation engine always runs
// against the whole dataset, not just the current run's delta.
func (t *Tables) Snapshot(ctx context.Context) (normalize.RowSet, error) {
	var set normalize.RowSet

	err := t.scanAll(ctx, recipeSelectQuery, "recipes", func(rows *sql.Rows) error {
		var r normalize.RecipeRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Cuisine, &r.Difficulty,
			&r.PrepTimeMin, &r.CookTimeMin, &r.TotalTimeMin, &r.Tags, &r.CreatedAt); err != nil {
			return err
		}
		set.Recipes = append(set.Recipes, r)
		return nil
	})
	if err != nil {
		return set, err
	}

	err = t.scanAll(ctx, ingredientSelect, "ingredients", func(rows *sql.Rows) error {
		var r normalize.IngredientRow
		if err := rows.Scan(&r.RecipeID, &r.IngredientName, &r.Quantity, &r.Unit); err != nil {
			return err
		}
		set.Ingredients = append(set.Ingredients, r)
		return nil
	})
	if err != nil {
		return set, err
	}

	err = t.scanAll(ctx, stepSelectQuery, "steps", func(rows *sql.Rows) error {
		var r normalize.StepRow
		if err := rows.Scan(&r.RecipeID, &r.StepNumber, &r.StepText); err != nil {
			return err
		}
		set.Steps = append(set.Steps, r)
		return nil
	})
	if err != nil {
		return set, err
	}

	err = t.scanAll(ctx, interactionSelect, "interactions", func(rows *sql.Rows) error {
		var r normalize.InteractionRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.RecipeID, &r.Type, &r.Timestamp, &r.MetadataJSON); err != nil {
			return err
		}
		set.Interactions = append(set.Interactions, r)
		return nil
	})
	return set, err
}

func (t *Tables) scanAll(ctx context.Context, query, table string, scan func(*sql.Rows) error) error {
	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return errors.Wrapf(errors.ErrStoreFailure, "query %s: %v", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return errors.Wrapf(errors.ErrStoreFailure, "scan %s row: %v", table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return errors.Wrapf(errors.ErrStoreFailure, "iterate %s: %v", table, err)
	}
	return nil
}
