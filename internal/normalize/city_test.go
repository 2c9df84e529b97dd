package normalize

import (
	"testing"
)

func TestCity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "administrative suffix stripped",
			input: "TEMARA(Mun.)",
			want:  "TEMARA",
		},
		{
			name:  "accents folded",
			input: "Fès",
			want:  "FES",
		},
		{
			name:  "accents inside word",
			input: "Laâyoune",
			want:  "LAAYOUNE",
		},
		{
			name:  "arabic script removed",
			input: "فاس FES",
			want:  "FES",
		},
		{
			name:  "hyphen becomes space",
			input: "Ksar-El-Kebir",
			want:  "KSAR EL KEBIR",
		},
		{
			name:  "punctuation and casing",
			input: "  salé !! ",
			want:  "SALE",
		},
		{
			name:  "centre qualifier",
			input: "Bouznika (Ctre.)",
			want:  "BOUZNIKA",
		},
		{
			name:  "digits kept",
			input: "2 rue 5 Fès",
			want:  "2 RUE 5 FES",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := City(tt.input)
			if got != tt.want {
				t.Errorf("City(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCityIdempotent(t *testing.T) {
	inputs := []string{
		"TEMARA(Mun.)",
		"Fès",
		"Ksar-El-Kebir",
		"  salé !! ",
		"2 rue 5 Fès",
		"CASABLANCA",
	}

	for _, input := range inputs {
		once := City(input)
		twice := City(once)
		if once != twice {
			t.Errorf("City not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestCollapseKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"KSAR EL KEBIR", "KSARELKEBIR"},
		{"AL-HOCEIMA", "ALHOCEIMA"},
		{"FES", "FES"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := CollapseKey(tt.input)
			if got != tt.want {
				t.Errorf("CollapseKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPhoneticCode(t *testing.T) {
	// Pairs that must share a code despite transliteration drift.
	same := [][2]string{
		{"CHICHAOUA", "SHISHAWA"},
		{"FES", "FEZ"},
		{"KENITRA", "QUENITRA"},
		{"ESSAOUIRA", "ESSAWIRA"},
	}
	for _, pair := range same {
		a, b := PhoneticCode(pair[0]), PhoneticCode(pair[1])
		if a == "" || a != b {
			t.Errorf("PhoneticCode(%q) = %q, PhoneticCode(%q) = %q, want equal non-empty",
				pair[0], a, pair[1], b)
		}
	}

	// Distinct cities must keep distinct codes.
	distinct := [][2]string{
		{"FES", "SALE"},
		{"TEMARA", "TANGER"},
		{"RABAT", "AGADIR"},
	}
	for _, pair := range distinct {
		a, b := PhoneticCode(pair[0]), PhoneticCode(pair[1])
		if a == b {
			t.Errorf("PhoneticCode(%q) = PhoneticCode(%q) = %q, want distinct", pair[0], pair[1], a)
		}
	}

	if got := PhoneticCode(""); got != "" {
		t.Errorf("PhoneticCode(\"\") = %q, want empty", got)
	}
}

func TestStreetLike(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2 RUE 5 FES", true},
		{"87 RUE CASABLANCA", true},
		{"HAY RIAD", true},
		{"LOT ESSALAM", true},
		{"CASABLANCA", false},
		{"KSAR EL KEBIR", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := StreetLike(tt.input); got != tt.want {
				t.Errorf("StreetLike(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestContainsToken(t *testing.T) {
	tests := []struct {
		s    string
		city string
		want bool
	}{
		{"87 RUE CASABLANCA", "CASABLANCA", true},
		{"2 RUE 5 FES", "FES", true},
		{"RUE TAZART", "TAZA", false},
		{"FES", "FES", true},
		{"", "FES", false},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			if got := ContainsToken(tt.s, tt.city); got != tt.want {
				t.Errorf("ContainsToken(%q, %q) = %v, want %v", tt.s, tt.city, got, tt.want)
			}
		})
	}
}

func BenchmarkCity(b *testing.B) {
	for i := 0; i < b.N; i++ {
		City("Ksar-El-Kebir (Mun.)")
	}
}

func BenchmarkPhoneticCode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		PhoneticCode("CHICHAOUA")
	}
}
