package resolve

// dedupe collapses records sharing an identical final city string down to
// one survivor per city. Quality decides first: a resolved record beats
// an unresolved one. Within equal quality the lowest id survives. The
// comparator is transitive, so one pass leaves no duplicates behind.
func (rv *Resolver) dedupe(recs []Record, rep *Report) []Record {
	winner := make(map[string]int, len(recs))
	deleted := make([]bool, len(recs))

	for i := range recs {
		w, ok := winner[recs[i].City]
		if !ok {
			winner[recs[i].City] = i
			continue
		}
		if beats(&recs[i], &recs[w]) {
			deleted[w] = true
			rep.DedupDeleted++
			rep.add(recs[w].ID, ActionDeduped, recs[w].City, "")
			winner[recs[i].City] = i
		} else {
			deleted[i] = true
			rep.DedupDeleted++
			rep.add(recs[i].ID, ActionDeduped, recs[i].City, "")
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

// beats reports whether a should survive over b for the same city.
func beats(a, b *Record) bool {
	if a.Resolved() != b.Resolved() {
		return a.Resolved()
	}
	return a.ID < b.ID
}
