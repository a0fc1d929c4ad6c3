package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/recipeworks/simmer/errors"
	"github.com/recipeworks/simmer/normalize"
)

// quarantineFilePrefix maps a record's category to its output file bucket.
// Identity collisions and content duplicates share the duplicate bucket;
// everything else is bad data.
func quarantineFilePrefix(cat normalize.Category) string {
	if cat == normalize.CategoryDuplicate {
		return "duplicate"
	}
	return "bad"
}

// WriteQuarantine groups a collection's rejected records into bucket files
// under dir: bad_<collection>.json and duplicate_<collection>.json. Each
// run rewrites the collection's buckets whole, removing a bucket file the
// run produced no records for, so the output always reflects the latest
// run. Quarantined records never reach the valid tables.
func WriteQuarantine(dir, collection string, records []normalize.QuarantineRecord) error {
	if len(records) > 0 {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create quarantine dir %s", dir)
		}
	}

	buckets := make(map[string][]normalize.QuarantineRecord)
	for _, rec := range records {
		prefix := quarantineFilePrefix(rec.Category())
		buckets[prefix] = append(buckets[prefix], rec)
	}

	for _, prefix := range []string{"bad", "duplicate"} {
		path := filepath.Join(dir, prefix+"_"+collection+".json")
		recs := buckets[prefix]
		if len(recs) == 0 {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return errors.Wrapf(err, "failed to remove stale %s", path)
			}
			continue
		}
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return errors.Wrapf(err, "failed to marshal quarantine records for %s", path)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
	}
	return nil
}
