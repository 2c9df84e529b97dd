package resolve

import (
	"testing"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/gazetteer"
)

func TestDedupeKeepsLowestID(t *testing.T) {
	dict := testDict(t, gazetteer.Entry{City: "OUJDA", Region: "Oriental", Province: "Oujda-Angad"})
	rv := New(dict, nil)

	recs := []Record{
		{ID: 5, City: "SALE"},
		{ID: 9, City: "SALE"},
	}
	rep := &Report{}
	kept := rv.dedupe(recs, rep)

	if len(kept) != 1 || kept[0].ID != 5 {
		t.Fatalf("kept = %+v, want only record 5", kept)
	}
	if rep.DedupDeleted != 1 {
		t.Errorf("DedupDeleted = %d, want 1", rep.DedupDeleted)
	}
}

func TestDedupeResolvedBeatsUnresolved(t *testing.T) {
	dict := testDict(t, gazetteer.Entry{City: "OUJDA", Region: "Oriental", Province: "Oujda-Angad"})
	rv := New(dict, nil)

	cases := []struct {
		name   string
		recs   []Record
		wantID int64
	}{
		{
			name: "resolved first",
			recs: []Record{
				{ID: 1, City: "NADOR", Region: "Oriental", Province: "Nador"},
				{ID: 2, City: "NADOR"},
			},
			wantID: 1,
		},
		{
			name: "resolved last",
			recs: []Record{
				{ID: 1, City: "NADOR"},
				{ID: 2, City: "NADOR", Region: "Oriental", Province: "Nador"},
			},
			wantID: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep := &Report{}
			kept := rv.dedupe(tc.recs, rep)
			if len(kept) != 1 {
				t.Fatalf("kept = %+v, want a single survivor", kept)
			}
			if kept[0].ID != tc.wantID {
				t.Errorf("survivor = %d, want %d", kept[0].ID, tc.wantID)
			}
			if !kept[0].Resolved() {
				t.Errorf("survivor lost its region/province: %+v", kept[0])
			}
		})
	}
}

func TestDedupeCollapsesWholeGroupInOnePass(t *testing.T) {
	dict := testDict(t, gazetteer.Entry{City: "OUJDA", Region: "Oriental", Province: "Oujda-Angad"})
	rv := New(dict, nil)

	recs := []Record{
		{ID: 3, City: "BERKANE"},
		{ID: 7, City: "BERKANE", Region: "Oriental", Province: "Berkane"},
		{ID: 11, City: "BERKANE"},
		{ID: 12, City: "TAOURIRT", Region: "Oriental", Province: "Taourirt"},
	}
	rep := &Report{}
	kept := rv.dedupe(recs, rep)

	if len(kept) != 2 {
		t.Fatalf("kept = %+v, want BERKANE survivor plus TAOURIRT", kept)
	}
	byCity := map[string]Record{}
	for _, r := range kept {
		byCity[r.City] = r
	}
	if byCity["BERKANE"].ID != 7 {
		t.Errorf("BERKANE survivor = %d, want the resolved record 7", byCity["BERKANE"].ID)
	}
	if rep.DedupDeleted != 2 {
		t.Errorf("DedupDeleted = %d, want 2", rep.DedupDeleted)
	}
}
