package normalize

import (
	"strings"

	"github.com/xrash/smetrics"
)

// Sound-alike spellings folded before Soundex encoding. Soundex keeps the
// first letter of its input raw, so transliteration drift in the leading
// consonant (CHICHAOUA vs SHISHAWA, KENITRA vs QUENITRA) must be folded
// away first. Order matters: digraphs before single letters.
var phoneticFolds = [...][2]string{
	{"CH", "X"},
	{"SH", "X"},
	{"PH", "F"},
	{"K", "C"},
	{"Q", "C"},
}

// PhoneticCode returns the Soundex code of a normalized city, computed on
// its folded collapsed key. Empty input yields an empty code, which is
// never matched.
func PhoneticCode(s string) string {
	key := CollapseKey(s)
	if key == "" {
		return ""
	}
	for _, f := range phoneticFolds {
		key = strings.ReplaceAll(key, f[0], f[1])
	}
	return smetrics.Soundex(key)
}
