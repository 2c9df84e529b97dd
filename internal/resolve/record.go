package resolve

import (
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/gazetteer"
)

// Edit-distance window for typo repair. Distance 0 means an identical
// twin that the deduplicator owns; distance 3 is noise.
const (
	minRepairDistance = 1
	maxRepairDistance = 2
)

// Record is one place row under resolution. ID is assigned at ingestion
// and never reused; City, Region and Province are overwritten in place as
// the pipeline runs. Empty Region and Province mean unresolved.
type Record struct {
	ID       int64  `json:"id"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Province string `json:"province"`
	Source   string `json:"source,omitempty"`
}

// Resolved reports whether the record carries both a region and a
// province. The pair is only ever written together.
func (r *Record) Resolved() bool {
	return r.Region != "" && r.Province != ""
}

// SetPlace overwrites the full triple in one step, keeping the
// region/province pair consistent with the city spelling that sourced it.
func (r *Record) SetPlace(city, region, province string) {
	r.City = city
	r.Region = region
	r.Province = province
}

// Gazetteer is the reference-dictionary capability the pipeline depends
// on: the three matcher query modes (exact collapsed key, phonetic code,
// bounded nearest scan) plus the canonical city list the normalizer uses
// for street-row recovery.
type Gazetteer interface {
	Lookup(key string) (gazetteer.Entry, bool)
	LookupPhonetic(code string) (gazetteer.Entry, bool)
	Nearest(city string, max int) (gazetteer.Entry, int, bool)
	Cities() []string
}

// Result bundles the directory a run produced with its report.
type Result struct {
	Directory *Directory
	Report    *Report
}
