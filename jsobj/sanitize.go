package jsobj

import "regexp"

var undefinedRe = regexp.MustCompile(`\bundefined\b`)

// Sanitize rewrites the bare JavaScript identifier "undefined" to the JSON
// null literal. Word boundaries keep identifiers that merely contain it
// (such as "isUndefined") intact. No other construct is rewritten.
func Sanitize(text string) string {
	return undefinedRe.ReplaceAllLiteralString(text, "null")
}
