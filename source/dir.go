package source

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/recipeworks/simmer/errors"
)

// Dir reads collections from a directory of <collection>.json export
// files, each holding a JSON array of field maps. This mirrors the export
// format the upstream document-store collaborator produces; the store
// client itself stays outside this pipeline.
type Dir struct {
	dir string
}

// NewDir creates a Dir source rooted at dir.
func NewDir(dir string) *Dir {
	return &Dir{dir: dir}
}

// Scan streams all documents in the named collection, in file order.
// A missing export file is an empty collection, not a failure; an
// unreadable or malformed file is an infrastructure error.
func (s *Dir) Scan(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, collection+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(errors.ErrSourceUnavailable, "read %s: %v", path, err)
	}

	var entries []map[string]Value
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrapf(errors.ErrSourceUnavailable, "parse %s: %v", path, err)
	}

	docs := make([]Document, 0, len(entries))
	for _, fields := range entries {
		docs = append(docs, Document{
			Collection: collection,
			ID:         fields["id"].AsString(),
			Fields:     fields,
		})
	}
	return docs, nil
}
