package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

// Administrative qualifiers from HCP commune exports. Stripped before any
// character filtering so "(Mun.)" does not survive as a MUN token.
var reAdminSuffix = regexp.MustCompile(`(?i)\((?:mun|ctre|centre|arr|ac|cr|cu|cne)\.?\)`)

// Street-type tokens that mark a row as an address rather than a city.
var streetTokens = map[string]bool{
	"RUE": true, "AVENUE": true, "AV": true, "BD": true, "BOULEVARD": true,
	"LOT": true, "LOTISSEMENT": true, "HAY": true, "DOUAR": true,
	"QUARTIER": true, "RESIDENCE": true, "IMM": true, "IMMEUBLE": true,
	"APPT": true, "APT": true, "ETAGE": true, "ROUTE": true, "RTE": true,
	"KM": true, "BLOC": true, "SECTEUR": true, "ANGLE": true, "ZONE": true,
}

// City normalizes a raw city value: administrative suffixes stripped,
// accented Latin letters folded to ASCII, everything outside [A-Za-z0-9 ]
// dropped (non-Latin script contributes nothing), uppercased, runs of
// spaces collapsed, trimmed. Normalizing an already-normalized value is a
// no-op.
func City(raw string) string {
	if raw == "" {
		return ""
	}
	s := reAdminSuffix.ReplaceAllString(raw, " ")

	b := strings.Builder{}
	for _, r := range s {
		switch {
		case r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToUpper(r))
		case unicode.Is(unicode.Latin, r):
			// Fès -> FES, Laâyoune -> LAAYOUNE
			b.WriteString(strings.ToUpper(unidecode.Unidecode(string(r))))
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CollapseKey reduces a normalized city to its loose matching key by
// removing spaces and hyphens: "KSAR EL KEBIR" -> "KSARELKEBIR". Safe on
// raw dictionary spellings that still carry hyphens.
func CollapseKey(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// StreetLike reports whether a normalized city value looks like a street
// address: it leads with a digit or carries a street-type token.
func StreetLike(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	for _, tok := range strings.Fields(s) {
		if streetTokens[tok] {
			return true
		}
	}
	return false
}

// ContainsToken reports whether city appears in s on whole-token
// boundaries: "87 RUE CASABLANCA" contains "CASABLANCA", but "RUE TAZART"
// does not contain "TAZA". Both arguments must already be normalized.
func ContainsToken(s, city string) bool {
	if s == "" || city == "" {
		return false
	}
	return strings.Contains(" "+s+" ", " "+city+" ")
}
