package resolve

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/logging"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/normalize"
)

// Resolver runs the five-stage resolution pass: normalize, match,
// containment, dedupe, directory build. One Resolver may serve many runs;
// each run owns its working set exclusively.
type Resolver struct {
	dict   Gazetteer
	logger *zap.Logger
}

// New creates a Resolver over a loaded gazetteer. A nil logger disables
// logging.
func New(dict Gazetteer, logger *zap.Logger) *Resolver {
	return &Resolver{dict: dict, logger: logging.NopIfNil(logger)}
}

// Run executes the full pass over a batch of raw records. The input is
// copied into a working set sorted by id, so results are independent of
// input order; records are then mutated, deleted and merged in place.
// Data flows strictly forward through the stages, and running the
// pipeline again over its own output reproduces the same directory.
func (rv *Resolver) Run(records []Record) *Result {
	recs := make([]Record, len(records))
	copy(recs, records)
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })

	rep := &Report{Input: len(recs)}

	recs = rv.normalizeStage(recs, rep)
	rv.matchExact(recs, rep)
	rv.matchPhonetic(recs, rep)
	rv.matchEditDistance(recs, rep)
	recs = rv.collectContainment(recs, rep)
	recs = rv.dedupe(recs, rep)

	dir := buildDirectory(recs)
	rep.Resolved = len(dir.Entries)
	rep.Unresolved = len(dir.Unresolved)

	rv.logger.Info("resolution complete",
		zap.Int("input", rep.Input),
		zap.Int("dropped", rep.Dropped),
		zap.Int("exact", rep.ExactMatches),
		zap.Int("phonetic", rep.PhoneticMatches),
		zap.Int("edit_distance", rep.EditMatches),
		zap.Int("containment_deleted", rep.ContainmentDeleted),
		zap.Int("dedup_deleted", rep.DedupDeleted),
		zap.Int("resolved", rep.Resolved),
		zap.Int("unresolved", rep.Unresolved))

	return &Result{Directory: dir, Report: rep}
}

// normalizeStage canonicalizes every city and weeds out rows that carry
// no usable signal. Street-masquerade rows (digit-leading or bearing a
// street token) are rewritten to the gazetteer city they embed, or
// dropped when none is recoverable. Rows arriving with region and
// province already set are kept as-is; they later serve as neighbors for
// the edit-distance strategy.
func (rv *Resolver) normalizeStage(recs []Record, rep *Report) []Record {
	kept := make([]Record, 0, len(recs))
	for i := range recs {
		city := normalize.City(recs[i].City)
		if city == "" {
			rep.Dropped++
			rep.add(recs[i].ID, ActionDropped, recs[i].City, "empty after normalization")
			continue
		}

		if normalize.StreetLike(city) {
			recovered := rv.recoverCity(city)
			if recovered == "" {
				rep.Dropped++
				rep.add(recs[i].ID, ActionDropped, city, "address-like, no recoverable city")
				rv.logger.Debug("dropped address-like row",
					zap.Int64("id", recs[i].ID), zap.String("city", city))
				continue
			}
			rep.StreetRecovered++
			rep.add(recs[i].ID, ActionRecovered, recovered, city)
			city = recovered
		}

		recs[i].City = city
		recs[i].Region = strings.TrimSpace(recs[i].Region)
		recs[i].Province = strings.TrimSpace(recs[i].Province)
		kept = append(kept, recs[i])
	}
	return kept
}

// recoverCity returns the longest gazetteer city present in s on token
// boundaries, or "" when nothing is recoverable. Cities() is ordered
// longest first, so the first hit is the most specific one.
func (rv *Resolver) recoverCity(s string) string {
	for _, city := range rv.dict.Cities() {
		if normalize.ContainsToken(s, city) {
			return city
		}
	}
	return ""
}
