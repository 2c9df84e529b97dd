package gazetteer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/normalize"
)

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrEmptyDictionary) {
		t.Fatalf("New(nil) error = %v, want ErrEmptyDictionary", err)
	}
}

func TestNewRejectsDuplicateKeys(t *testing.T) {
	// Both spellings collapse to SALE.
	_, err := New([]Entry{
		{City: "SALE", Region: "Rabat-Salé-Kénitra", Province: "Salé"},
		{City: "Salé", Region: "Rabat-Salé-Kénitra", Province: "Salé"},
	})
	if err == nil {
		t.Fatal("New with duplicate collapsed keys: want error, got nil")
	}
}

func TestDefault(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if d.Len() == 0 {
		t.Fatal("Default() dictionary is empty")
	}

	e, ok := d.Lookup("KSARELKEBIR")
	if !ok {
		t.Fatal("Lookup(KSARELKEBIR) not found")
	}
	if e.City != "KSAR EL KEBIR" {
		t.Errorf("Lookup(KSARELKEBIR) city = %q, want %q", e.City, "KSAR EL KEBIR")
	}

	e, ok = d.Lookup("FES")
	if !ok || e.Region != "Fès-Meknès" {
		t.Errorf("Lookup(FES) = %+v, %v, want region Fès-Meknès", e, ok)
	}
}

func TestLookupPhonetic(t *testing.T) {
	d, err := New([]Entry{
		{City: "CHICHAOUA", Region: "Marrakech-Safi", Province: "Chichaoua"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	code := normalize.PhoneticCode("SHISHAWA")
	e, ok := d.LookupPhonetic(code)
	if !ok {
		t.Fatalf("LookupPhonetic(%q) not found", code)
	}
	if e.City != "CHICHAOUA" {
		t.Errorf("LookupPhonetic(%q) city = %q, want CHICHAOUA", code, e.City)
	}

	if _, ok := d.LookupPhonetic(""); ok {
		t.Error("LookupPhonetic(\"\") matched, want miss")
	}
}

func TestLookupPhoneticFirstEntryWins(t *testing.T) {
	// FEZ and FES share a phonetic code but not a collapsed key.
	d, err := New([]Entry{
		{City: "FEZ", Region: "Fès-Meknès", Province: "Fès"},
		{City: "FES", Region: "Fès-Meknès", Province: "Fès"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e, ok := d.LookupPhonetic(normalize.PhoneticCode("FES"))
	if !ok || e.City != "FEZ" {
		t.Errorf("LookupPhonetic = %+v, %v, want first-loaded FEZ", e, ok)
	}
}

func TestNearest(t *testing.T) {
	d, err := New([]Entry{
		{City: "TAZA", Region: "Fès-Meknès", Province: "Taza"},
		{City: "TATA", Region: "Souss-Massa", Province: "Tata"},
		{City: "TEMARA", Region: "Rabat-Salé-Kénitra", Province: "Skhirate-Témara"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e, dist, ok := d.Nearest("TEMARE", 2)
	if !ok || e.City != "TEMARA" || dist != 1 {
		t.Errorf("Nearest(TEMARE) = %q dist %d ok %v, want TEMARA dist 1", e.City, dist, ok)
	}

	// TAYA is one edit from both TAZA and TATA: first-loaded entry wins.
	e, dist, ok = d.Nearest("TAYA", 2)
	if !ok || e.City != "TAZA" || dist != 1 {
		t.Errorf("Nearest(TAYA) = %q dist %d ok %v, want TAZA dist 1", e.City, dist, ok)
	}

	if _, _, ok := d.Nearest("OUARZAZATE", 2); ok {
		t.Error("Nearest(OUARZAZATE) matched, want miss beyond window")
	}
}

func TestCitiesLongestFirst(t *testing.T) {
	d, err := New([]Entry{
		{City: "FES", Region: "Fès-Meknès", Province: "Fès"},
		{City: "KSAR EL KEBIR", Region: "Tanger-Tétouan-Al Hoceïma", Province: "Larache"},
		{City: "SALE", Region: "Rabat-Salé-Kénitra", Province: "Salé"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cities := d.Cities()
	if len(cities) != 3 || cities[0] != "KSAR EL KEBIR" {
		t.Errorf("Cities() = %v, want KSAR EL KEBIR first", cities)
	}
	if cities[len(cities)-1] != "SALE" && cities[len(cities)-1] != "FES" {
		t.Errorf("Cities() = %v, want a 3-letter city last", cities)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.csv")
	content := "city,region,province\nFès,Fès-Meknès,Fès\nChichaoua,Marrakech-Safi,Chichaoua\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	d, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("LoadCSV() len = %d, want 2", d.Len())
	}
	if e, ok := d.Lookup("FES"); !ok || e.City != "FES" {
		t.Errorf("Lookup(FES) = %+v, %v after CSV load", e, ok)
	}
}
