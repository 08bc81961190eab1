package authflow

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizePhone folds compatibility characters (full-width digits, no-break
// spaces) and strips all whitespace, so "+91 90219 47718" and
// "+919021947718" compare equal.
func NormalizePhone(s string) string {
	t := transform.Chain(norm.NFKC, runes.Remove(runes.In(unicode.White_Space)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return out
}
