package resolve

// Entry is one canonical directory row.
type Entry struct {
	City     string `json:"city"`
	Region   string `json:"region"`
	Province string `json:"province"`
}

// Directory is the canonical place set produced by one run. Entries are
// fully resolved and no two share a city. Unresolved lists the surviving
// rows that still have no region/province; they are surfaced rather than
// dropped so the caller can decide a fallback, and they stay out of the
// final load unless explicitly requested.
type Directory struct {
	Entries    []Entry `json:"entries"`
	Unresolved []Entry `json:"unresolved,omitempty"`

	index map[string]int
}

func buildDirectory(recs []Record) *Directory {
	d := &Directory{index: make(map[string]int)}
	for i := range recs {
		if recs[i].Resolved() {
			d.index[recs[i].City] = len(d.Entries)
			d.Entries = append(d.Entries, Entry{
				City:     recs[i].City,
				Region:   recs[i].Region,
				Province: recs[i].Province,
			})
		} else {
			d.Unresolved = append(d.Unresolved, Entry{City: recs[i].City})
		}
	}
	return d
}

// Lookup returns the resolved entry for a canonical city name.
func (d *Directory) Lookup(city string) (Entry, bool) {
	if i, ok := d.index[city]; ok {
		return d.Entries[i], true
	}
	return Entry{}, false
}

// Len returns the number of resolved entries.
func (d *Directory) Len() int {
	return len(d.Entries)
}
