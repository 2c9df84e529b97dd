// Package hospital cleans and deduplicates health-facility records
// harvested from the ministry workbooks and OpenStreetMap.
package hospital

import (
	"sort"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/normalize"
)

// Record is one health facility row.
type Record struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	City     string  `json:"city"`
	Source   string  `json:"source,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
	PlaceID  int64   `json:"place_id,omitempty"`
}

// Two facility names in the same city closer than this are the same
// facility written twice.
const nameSimilarityFloor = 0.90

// Clean canonicalizes a record's text fields. Name and city go through
// the same transliterate-and-uppercase pass as place cities, so "Hôpital
// Ibn-Sina" and "HOPITAL IBN SINA" compare equal downstream.
func Clean(rec Record) Record {
	rec.Name = normalize.City(rec.Name)
	rec.City = normalize.City(rec.City)
	rec.Category = strings.TrimSpace(rec.Category)
	rec.Source = strings.TrimSpace(rec.Source)
	return rec
}

// Dedupe removes same-city fuzzy duplicates: two records in one city
// whose names score >= 0.90 Jaro-Winkler are merged, keeping the record
// with more populated fields, then the lowest id. The input is not
// modified; survivors come back sorted by id.
func Dedupe(recs []Record) []Record {
	work := make([]Record, len(recs))
	copy(work, recs)
	sort.Slice(work, func(i, j int) bool { return work[i].ID < work[j].ID })

	byCity := make(map[string][]int)
	for i, rec := range work {
		byCity[rec.City] = append(byCity[rec.City], i)
	}

	deleted := make([]bool, len(work))
	for _, group := range byCity {
		for gi, i := range group {
			if deleted[i] {
				continue
			}
			for _, j := range group[gi+1:] {
				if deleted[j] {
					continue
				}
				if !sameName(work[i].Name, work[j].Name) {
					continue
				}
				if beats(work[j], work[i]) {
					deleted[i] = true
					break
				}
				deleted[j] = true
			}
		}
	}

	kept := make([]Record, 0, len(work))
	for i, rec := range work {
		if !deleted[i] {
			kept = append(kept, rec)
		}
	}
	return kept
}

func sameName(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return smetrics.JaroWinkler(strings.ToLower(a), strings.ToLower(b), 0.7, 4) >= nameSimilarityFloor
}

// beats reports whether a should survive over b: more populated fields
// first, then the lower id.
func beats(a, b Record) bool {
	ca, cb := completeness(a), completeness(b)
	if ca != cb {
		return ca > cb
	}
	return a.ID < b.ID
}

func completeness(rec Record) int {
	n := 0
	if rec.City != "" {
		n++
	}
	if rec.Category != "" {
		n++
	}
	if rec.Source != "" {
		n++
	}
	if rec.Lat != 0 || rec.Lon != 0 {
		n++
	}
	return n
}

// AssignPlaces stamps each record's PlaceID from the city-to-id map the
// places table yields after a load. Cities absent from the map keep
// PlaceID zero; enrichment picks those up later. Returns the number of
// records assigned.
func AssignPlaces(recs []Record, ids map[string]int64) int {
	assigned := 0
	for i := range recs {
		id, ok := ids[recs[i].City]
		if !ok {
			continue
		}
		recs[i].PlaceID = id
		assigned++
	}
	return assigned
}
