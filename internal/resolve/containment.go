package resolve

import (
	"strings"

	"go.uber.org/zap"
)

// collectContainment deletes container rows: unresolved records whose
// city string contains a resolved record's city as a proper substring and
// is strictly longer. Such rows are neighborhoods or sub-localities of an
// already-canonical city and carry no identity of their own. Runs after
// the matcher so "resolved" reflects every repair, not just raw input.
func (rv *Resolver) collectContainment(recs []Record, rep *Report) []Record {
	deleted := make([]bool, len(recs))
	for i := range recs {
		if recs[i].Resolved() {
			continue
		}
		for j := range recs {
			if i == j || !recs[j].Resolved() {
				continue
			}
			if len(recs[i].City) > len(recs[j].City) && strings.Contains(recs[i].City, recs[j].City) {
				deleted[i] = true
				rep.ContainmentDeleted++
				rep.add(recs[i].ID, ActionContainment, recs[i].City, recs[j].City)
				rv.logger.Debug("container row deleted",
					zap.Int64("id", recs[i].ID),
					zap.String("city", recs[i].City),
					zap.String("contains", recs[j].City))
				break
			}
		}
	}

	kept := make([]Record, 0, len(recs))
	for i := range recs {
		if !deleted[i] {
			kept = append(kept, recs[i])
		}
	}
	return kept
}
