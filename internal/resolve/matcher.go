package resolve

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/normalize"
)

// The three matching strategies run in strict priority order: a record
// resolved by an earlier strategy is never revisited by a later one, so a
// dictionary hit can never be overridden by a phonetic or edit-distance
// neighbor.

// matchExact resolves records whose collapsed city key equals a gazetteer
// entry's key. The canonical spelling overwrites the record's city, which
// also repairs spacing and hyphenation drift.
func (rv *Resolver) matchExact(recs []Record, rep *Report) {
	for i := range recs {
		if recs[i].Resolved() {
			continue
		}
		e, ok := rv.dict.Lookup(normalize.CollapseKey(recs[i].City))
		if !ok {
			continue
		}
		rep.add(recs[i].ID, ActionExact, e.City, recs[i].City)
		recs[i].SetPlace(e.City, e.Region, e.Province)
		rep.ExactMatches++
	}
}

// matchPhonetic resolves remaining records whose phonetic code matches a
// gazetteer entry's code.
func (rv *Resolver) matchPhonetic(recs []Record, rep *Report) {
	for i := range recs {
		if recs[i].Resolved() {
			continue
		}
		e, ok := rv.dict.LookupPhonetic(normalize.PhoneticCode(recs[i].City))
		if !ok {
			continue
		}
		rep.add(recs[i].ID, ActionPhonetic, e.City, recs[i].City)
		rv.logger.Debug("phonetic match",
			zap.Int64("id", recs[i].ID),
			zap.String("from", recs[i].City),
			zap.String("to", e.City))
		recs[i].SetPlace(e.City, e.Region, e.Province)
		rep.PhoneticMatches++
	}
}

type neighbor struct {
	id       int64
	city     string
	region   string
	province string
}

// matchEditDistance repairs typos against the gazetteer and against every
// record already resolved when the strategy starts. The resolved snapshot
// is taken once: a record resolved during this scan never serves as a
// neighbor within the same run, so results do not depend on how rows
// happened to be ordered. Candidate preference at equal distance is fixed:
// gazetteer entries in load order, then records by ascending id.
func (rv *Resolver) matchEditDistance(recs []Record, rep *Report) {
	var resolved []neighbor
	for i := range recs {
		if recs[i].Resolved() {
			resolved = append(resolved, neighbor{
				id:       recs[i].ID,
				city:     recs[i].City,
				region:   recs[i].Region,
				province: recs[i].Province,
			})
		}
	}

	for i := range recs {
		if recs[i].Resolved() {
			continue
		}

		bestDist := maxRepairDistance + 1
		var best neighbor
		found := false

		if e, dist, ok := rv.dict.Nearest(recs[i].City, maxRepairDistance); ok && dist < bestDist {
			bestDist = dist
			best = neighbor{city: e.City, region: e.Region, province: e.Province}
			found = true
		}
		for _, n := range resolved {
			dist := levenshtein.ComputeDistance(recs[i].City, n.city)
			if dist < bestDist {
				bestDist = dist
				best = n
				found = true
			}
		}

		// A distance-0 twin belongs to the deduplicator, not to typo
		// repair, so the window starts at 1.
		if !found || bestDist < minRepairDistance || bestDist > maxRepairDistance {
			continue
		}

		rep.add(recs[i].ID, ActionEditDistance, best.city,
			fmt.Sprintf("%s (distance %d)", recs[i].City, bestDist))
		recs[i].SetPlace(best.city, best.region, best.province)
		rep.EditMatches++
	}
}
