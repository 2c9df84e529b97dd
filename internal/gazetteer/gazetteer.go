package gazetteer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/normalize"
)

// Entry is one canonical place triple. City is stored in normalized form
// (uppercase ASCII); Region and Province keep their display spelling.
type Entry struct {
	City     string
	Region   string
	Province string
}

type indexed struct {
	Entry
	key  string
	code string
}

// Dictionary is the static reference set consulted by the matcher. It is
// loaded once per pipeline run and never mutated afterwards.
type Dictionary struct {
	entries []indexed
	byKey   map[string]int
	byCode  map[string]int
	cities  []string
}

// ErrEmptyDictionary is returned when a dictionary would contain no
// entries. The pipeline refuses to run without reference data.
var ErrEmptyDictionary = errors.New("gazetteer: empty dictionary")

// New builds a Dictionary from raw triples. City values are normalized on
// the way in. Duplicate collapsed keys are a load failure: two entries
// that collapse to the same key would make exact matching ambiguous.
func New(entries []Entry) (*Dictionary, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyDictionary
	}

	d := &Dictionary{
		byKey:  make(map[string]int, len(entries)),
		byCode: make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		city := normalize.City(e.City)
		if city == "" {
			return nil, fmt.Errorf("gazetteer: entry %q normalizes to empty city", e.City)
		}
		key := normalize.CollapseKey(city)
		if prev, ok := d.byKey[key]; ok {
			return nil, fmt.Errorf("gazetteer: duplicate collapsed key %q (%q vs %q)",
				key, d.entries[prev].City, city)
		}

		ix := indexed{
			Entry: Entry{City: city, Region: strings.TrimSpace(e.Region), Province: strings.TrimSpace(e.Province)},
			key:   key,
			code:  normalize.PhoneticCode(city),
		}
		d.byKey[key] = len(d.entries)
		// First entry wins a shared phonetic code, so lookup stays
		// deterministic under load order.
		if _, ok := d.byCode[ix.code]; !ok && ix.code != "" {
			d.byCode[ix.code] = len(d.entries)
		}
		d.entries = append(d.entries, ix)
		d.cities = append(d.cities, city)
	}

	// Longest city first so street-row recovery prefers the most specific
	// name ("SIDI SLIMANE" over "SALE" is never ambiguous by accident).
	sort.SliceStable(d.cities, func(i, j int) bool {
		if len(d.cities[i]) != len(d.cities[j]) {
			return len(d.cities[i]) > len(d.cities[j])
		}
		return d.cities[i] < d.cities[j]
	})

	return d, nil
}

// Default returns the built-in Moroccan gazetteer.
func Default() (*Dictionary, error) {
	return New(builtin)
}

// LoadCSV reads a city,region,province file and builds a Dictionary from
// it. A header row is skipped when its first column says "city".
func LoadCSV(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var entries []Entry
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gazetteer: read %s: %w", path, err)
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("gazetteer: %s: want 3 columns, got %d", path, len(row))
		}
		if first && strings.EqualFold(strings.TrimSpace(row[0]), "city") {
			first = false
			continue
		}
		first = false
		entries = append(entries, Entry{City: row[0], Region: row[1], Province: row[2]})
	}

	return New(entries)
}

// Lookup returns the entry whose collapsed key equals key.
func (d *Dictionary) Lookup(key string) (Entry, bool) {
	if i, ok := d.byKey[key]; ok {
		return d.entries[i].Entry, true
	}
	return Entry{}, false
}

// LookupPhonetic returns the entry registered for a phonetic code. Codes
// shared by several entries resolve to the first-loaded one.
func (d *Dictionary) LookupPhonetic(code string) (Entry, bool) {
	if code == "" {
		return Entry{}, false
	}
	if i, ok := d.byCode[code]; ok {
		return d.entries[i].Entry, true
	}
	return Entry{}, false
}

// Nearest scans every entry and returns the one with the smallest
// Levenshtein distance to city, provided it is within max edits. Ties go
// to the first-loaded entry. The dictionary is small, so the full scan is
// the whole point: no index to drift out of sync.
func (d *Dictionary) Nearest(city string, max int) (Entry, int, bool) {
	best := -1
	bestDist := max + 1
	for i := range d.entries {
		dist := levenshtein.ComputeDistance(city, d.entries[i].City)
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	if best < 0 {
		return Entry{}, 0, false
	}
	return d.entries[best].Entry, bestDist, true
}

// Cities returns every canonical city name, longest first. Used for
// street-row recovery in the normalizer stage.
func (d *Dictionary) Cities() []string {
	return d.cities
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}
