package enrich

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "enrichment_cache.json")

	c, err := openCache(path)
	if err != nil {
		t.Fatalf("openCache on a missing file: %v", err)
	}
	if _, ok := c.get("ZRONKA"); ok {
		t.Fatal("fresh cache should be empty")
	}

	c.put("ZRONKA", Fix{ID: 42, Action: ActionDelete})
	c.put("TEMARE", Fix{ID: 43, Action: ActionUpdate, City: "TEMARA", Region: "Rabat-Salé-Kénitra", Province: "Skhirate-Témara"})
	if err := c.save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened, err := openCache(path)
	if err != nil {
		t.Fatalf("openCache after save: %v", err)
	}
	fix, ok := reopened.get("TEMARE")
	if !ok {
		t.Fatal("TEMARE missing after reopen")
	}
	if fix.ID != 0 {
		t.Errorf("cached fix kept a database id: %+v", fix)
	}
	if fix.City != "TEMARA" || fix.Region != "Rabat-Salé-Kénitra" {
		t.Errorf("cached fix = %+v", fix)
	}
}

func TestCacheRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	if _, err := openCache(path); err == nil {
		t.Fatal("want error for a corrupt cache file")
	}
}
