package detect

import (
	"github.com/recipeworks/simmer/source"
)

// Stats summarizes one collection's classification pass.
type Stats struct {
	Collection string `json:"collection"`
	New        int    `json:"new"`
	Updated    int    `json:"updated"`
	Unchanged  int    `json:"unchanged"`
	Total      int    `json:"total"`
}

// HasChanges reports whether anything needs to flow downstream.
func (s Stats) HasChanges() bool {
	return s.New+s.Updated > 0
}

// Detector classifies scanned documents against a prior hash store
// snapshot.
type Detector struct {
	fp *Fingerprinter
}

// NewDetector creates a Detector using the given fingerprinter.
func NewDetector(fp *Fingerprinter) *Detector {
	return &Detector{fp: fp}
}

// Detect fingerprints every document and classifies it as New (id absent
// from prior), Updated (fingerprint differs), or Unchanged.
//
// changed holds New and Updated documents in source order — the detector
// never reorders, and downstream consumers must not assume any sort order.
// next is prior with New/Updated entries inserted or overwritten; ids not
// seen in this scan are retained untouched (no implicit deletion). The
// caller owns persisting next, and must do so only after downstream stages
// succeed.
func (d *Detector) Detect(collection string, docs []source.Document, prior map[string]string) (changed []source.Document, next map[string]string, stats Stats) {
	stats.Collection = collection

	next = make(map[string]string, len(prior)+len(docs))
	for id, h := range prior {
		next[id] = h
	}

	for _, doc := range docs {
		stats.Total++
		h := d.fp.Fingerprint(doc)

		old, seen := prior[doc.ID]
		switch {
		case !seen:
			stats.New++
		case old != h:
			stats.Updated++
		default:
			stats.Unchanged++
			continue
		}

		changed = append(changed, doc)
		next[doc.ID] = h
	}

	return changed, next, stats
}
