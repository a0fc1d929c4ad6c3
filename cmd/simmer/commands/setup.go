package commands

import (
	"database/sql"

	"github.com/recipeworks/simmer/config"
	"github.com/recipeworks/simmer/db"
	"github.com/recipeworks/simmer/errors"
	"github.com/recipeworks/simmer/logger"
	"github.com/recipeworks/simmer/pipeline"
	"github.com/recipeworks/simmer/source"
	"github.com/recipeworks/simmer/storage"
)

// setupRunner wires configuration, logging, the database, and the pipeline
// collaborators. The caller must Close the returned database.
func setupRunner() (*config.Config, *pipeline.Runner, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to load configuration")
	}

	if err := logger.Initialize(cfg.Log.JSON); err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to initialize logger")
	}

	database, err := db.Open(cfg.Database.Path, logger.Logger)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to open database")
	}

	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, nil, nil, errors.Wrap(err, "failed to migrate database")
	}

	tables := storage.NewTables(database, logger.Logger)
	runner := pipeline.NewRunner(*cfg, source.NewDir(cfg.Source.Dir), tables, logger.Logger)
	return cfg, runner, database, nil
}
