package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/recipeworks/simmer/errors"
	"github.com/recipeworks/simmer/normalize"
)

// CSV column orders. Fixed so downstream reporting can rely on position.
var (
	recipeHeaders      = []string{"id", "title", "cuisine", "difficulty", "prep_time_min", "cook_time_min", "total_time_min", "tags", "created_at"}
	ingredientHeaders  = []string{"recipe_id", "ingredient_name", "quantity", "unit"}
	stepHeaders        = []string{"recipe_id", "step_number", "step_text"}
	interactionHeaders = []string{"id", "user_id", "recipe_id", "type", "timestamp", "metadata_json"}
)

// ExportCSV writes the full table snapshot as one CSV file per entity
// under dir. Files are rewritten whole each run; the tabular export is a
// projection of the table store, never an independent source of truth.
func ExportCSV(dir string, set normalize.RowSet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create export dir %s", dir)
	}

	if err := writeCSV(filepath.Join(dir, "recipes.csv"), recipeHeaders, len(set.Recipes), func(i int) []string {
		r := set.Recipes[i]
		return []string{r.ID, r.Title, r.Cuisine, r.Difficulty, r.PrepTimeMin, r.CookTimeMin, r.TotalTimeMin, r.Tags, r.CreatedAt}
	}); err != nil {
		return err
	}

	if err := writeCSV(filepath.Join(dir, "ingredients.csv"), ingredientHeaders, len(set.Ingredients), func(i int) []string {
		r := set.Ingredients[i]
		return []string{r.RecipeID, r.IngredientName, r.Quantity, r.Unit}
	}); err != nil {
		return err
	}

	if err := writeCSV(filepath.Join(dir, "steps.csv"), stepHeaders, len(set.Steps), func(i int) []string {
		r := set.Steps[i]
		return []string{r.RecipeID, r.StepNumber, r.StepText}
	}); err != nil {
		return err
	}

	return writeCSV(filepath.Join(dir, "interactions.csv"), interactionHeaders, len(set.Interactions), func(i int) []string {
		r := set.Interactions[i]
		return []string{r.ID, r.UserID, r.RecipeID, r.Type, r.Timestamp, r.MetadataJSON}
	})
}

func writeCSV(path string, headers []string, n int, row func(int) []string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return errors.Wrapf(err, "failed to write headers to %s", path)
	}
	for i := 0; i < n; i++ {
		if err := writer.Write(row(i)); err != nil {
			return errors.Wrapf(err, "failed to write row to %s", path)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(err, "failed to flush %s", path)
	}
	return nil
}
