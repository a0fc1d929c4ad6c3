// Package detect implements hash-based incremental change detection:
// every run scans the full collection, fingerprints each document, and
// classifies it against the persisted hash store snapshot.
package detect

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"

	"github.com/recipeworks/simmer/source"
)

// Fingerprinter computes deterministic content digests over a document's
// field map. The digest is an MD5 hex string over the canonical
// (key-sorted) JSON serialization, so map iteration order never matters.
// MD5 is a change-detection checksum here, not a security boundary.
type Fingerprinter struct {
	ignore map[string]struct{}
}

// NewFingerprinter creates a Fingerprinter that excludes the named
// volatile fields (pipeline-assigned timestamps and the like) from the
// digest. Exclusion is the caller's configuration decision; the detector
// itself hashes whatever it is given.
func NewFingerprinter(ignoreFields []string) *Fingerprinter {
	ignore := make(map[string]struct{}, len(ignoreFields))
	for _, f := range ignoreFields {
		ignore[f] = struct{}{}
	}
	return &Fingerprinter{ignore: ignore}
}

// Fingerprint digests the document's field map.
func (fp *Fingerprinter) Fingerprint(doc source.Document) string {
	fields := doc.Fields
	if len(fp.ignore) > 0 {
		fields = make(map[string]source.Value, len(doc.Fields))
		for k, v := range doc.Fields {
			if _, skip := fp.ignore[k]; skip {
				continue
			}
			fields[k] = v
		}
	}

	// source.Value marshals maps with sorted keys, so this serialization
	// is canonical by construction.
	raw, err := json.Marshal(source.Map(fields))
	if err != nil {
		// Value marshaling cannot fail for decoded documents; an empty
		// digest would silently suppress change detection, so hash the
		// error text instead.
		raw = []byte(err.Error())
	}

	sum := md5.Sum(raw)
	return hex.EncodeToString(sum[:])
}
