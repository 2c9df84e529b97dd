package resolve

import (
	"testing"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/gazetteer"
)

func TestContainmentDeletesNoisySuperstring(t *testing.T) {
	// FES phonetic-matches the FEZ dictionary entry and is renamed; the
	// AIN KADOUS row then contains a resolved city and must disappear.
	dict := testDict(t, gazetteer.Entry{City: "FEZ", Region: "Fès-Meknès", Province: "Fès"})
	rv := New(dict, nil)

	res := rv.Run([]Record{
		{ID: 1, City: "AIN KADOUS FEZ"},
		{ID: 2, City: "FES"},
	})

	if res.Report.ContainmentDeleted != 1 {
		t.Fatalf("ContainmentDeleted = %d, want 1", res.Report.ContainmentDeleted)
	}
	if res.Directory.Len() != 1 {
		t.Fatalf("directory entries = %+v, want exactly FEZ", res.Directory.Entries)
	}
	if _, ok := res.Directory.Lookup("FEZ"); !ok {
		t.Errorf("directory missing FEZ: %+v", res.Directory.Entries)
	}
	for _, e := range res.Directory.Unresolved {
		if e.City == "AIN KADOUS FEZ" {
			t.Errorf("container row survived into the directory: %+v", res.Directory.Unresolved)
		}
	}
}

func TestContainmentRequiresStrictlyLonger(t *testing.T) {
	dict := testDict(t, gazetteer.Entry{City: "OUJDA", Region: "Oriental", Province: "Oujda-Angad"})
	rv := New(dict, nil)

	// Same length, same string: that is a duplicate for the deduplicator,
	// not a container row.
	recs := []Record{
		{ID: 1, City: "FES", Region: "Fès-Meknès", Province: "Fès"},
		{ID: 2, City: "FES"},
	}
	rep := &Report{}
	kept := rv.collectContainment(recs, rep)

	if len(kept) != 2 || rep.ContainmentDeleted != 0 {
		t.Errorf("kept %d rows, deleted %d, want 2 kept and 0 deleted", len(kept), rep.ContainmentDeleted)
	}
}

func TestContainmentLeavesResolvedRowsAlone(t *testing.T) {
	dict := testDict(t, gazetteer.Entry{City: "OUJDA", Region: "Oriental", Province: "Oujda-Angad"})
	rv := New(dict, nil)

	// A resolved superstring row keeps its identity.
	recs := []Record{
		{ID: 1, City: "CASABLANCA", Region: "Casablanca-Settat", Province: "Casablanca"},
		{ID: 2, City: "CASABLANCA ANFA", Region: "Casablanca-Settat", Province: "Casablanca"},
	}
	rep := &Report{}
	kept := rv.collectContainment(recs, rep)

	if len(kept) != 2 {
		t.Errorf("kept = %d rows, want both resolved rows to survive", len(kept))
	}
}

func TestContainmentRunsAfterMatcher(t *testing.T) {
	// The contained city only becomes canonical through an exact match
	// with spacing drift repaired; containment must see the repaired form.
	dict := testDict(t, gazetteer.Entry{City: "KSAR EL KEBIR", Region: "Tanger-Tétouan-Al Hoceïma", Province: "Larache"})
	rv := New(dict, nil)

	res := rv.Run([]Record{
		{ID: 1, City: "KSARELKEBIR"},
		{ID: 2, City: "AIN KSAR EL KEBIR"},
	})

	if res.Report.ContainmentDeleted != 1 {
		t.Errorf("ContainmentDeleted = %d, want the superstring row deleted", res.Report.ContainmentDeleted)
	}
	if res.Directory.Len() != 1 {
		t.Errorf("directory = %+v, want only KSAR EL KEBIR", res.Directory.Entries)
	}
}
