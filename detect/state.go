package detect

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/recipeworks/simmer/errors"
)

// State is the hash store: a versioned snapshot of every document identity
// the pipeline has seen, mapped to its last content fingerprint. It is
// passed explicitly through the detector — never held as ambient state —
// so tests and parallel pipeline instances can run against independent
// snapshots.
//
// Entries are never deleted: a document removed at the source stays here
// forever. Tombstone handling is an explicit extension point, not an
// implemented behavior.
type State struct {
	// DocHashes maps collection -> document id -> fingerprint.
	DocHashes map[string]map[string]string `json:"doc_hashes"`
}

// NewState returns an empty hash store snapshot.
func NewState() *State {
	return &State{DocHashes: make(map[string]map[string]string)}
}

// Collection returns the fingerprint map for a collection, or an empty map
// if the collection has never been scanned. The returned map is the
// caller's copy to read, not to mutate.
func (s *State) Collection(name string) map[string]string {
	if m, ok := s.DocHashes[name]; ok {
		return m
	}
	return map[string]string{}
}

// SetCollection replaces a collection's fingerprint map.
func (s *State) SetCollection(name string, hashes map[string]string) {
	if s.DocHashes == nil {
		s.DocHashes = make(map[string]map[string]string)
	}
	s.DocHashes[name] = hashes
}

// Clone deep-copies the snapshot.
func (s *State) Clone() *State {
	next := NewState()
	for col, hashes := range s.DocHashes {
		m := make(map[string]string, len(hashes))
		for id, h := range hashes {
			m[id] = h
		}
		next.DocHashes[col] = m
	}
	return next
}

// LoadState reads a snapshot from path. A missing file is a fresh, empty
// store; an unreadable or unparseable file is ErrStateCorrupt — the run
// must fail rather than reprocess the world and double-commit.
func LoadState(path string) (*State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, errors.Wrapf(errors.ErrStateCorrupt, "read %s: %v", path, err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, errors.Wrapf(errors.ErrStateCorrupt, "parse %s: %v", path, err)
	}
	if state.DocHashes == nil {
		state.DocHashes = make(map[string]map[string]string)
	}
	return &state, nil
}

// Save writes the snapshot to path atomically (temp file + rename), so a
// crash mid-write leaves the previous known-good state intact.
func (s *State) Save(path string) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create state dir for %s", path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "commit %s", path)
	}
	return nil
}
