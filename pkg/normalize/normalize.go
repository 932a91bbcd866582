// Package normalize canonicalizes spreadsheet cell values and column headers
// so that visually identical text compares equal regardless of Unicode
// whitespace, zero-width characters or letter case.
//
// Three forms are provided:
//
//	normalize.Text("  Completed ")          // "completed" (comparison key)
//	normalize.Clean(" A1@Ex.com ")          // "A1@Ex.com" (display / addresses)
//	normalize.Header("Completion_Cycle")   // "completion cycle" (column lookup)
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MissingLiteral is the textual form a blank cell takes after a round trip
// through tools that stringify missing numbers.
const MissingLiteral = "nan"

// noise maps invisible characters to their replacement.
var noise = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u200b", "", // zero-width space
	"\ufeff", "", // byte order mark, common on the first csv header
)

var separators = strings.NewReplacer("-", " ", "_", " ")

// Clean removes Unicode noise, trims, collapses internal whitespace runs to a
// single space and maps the missing literal to "". Case is preserved.
func Clean(raw string) string {
	s := strings.Join(strings.Fields(noise.Replace(raw)), " ")
	if IsMissing(s) {
		return ""
	}
	return s
}

// Text returns the case-folded comparison key for a cell value.
// Text is idempotent: Text(Text(x)) == Text(x).
func Text(raw string) string {
	s := Clean(raw)
	if s == "" {
		return ""
	}
	s = Fold(s)
	if IsMissing(s) {
		return ""
	}
	return s
}

// Fold applies locale-insensitive case folding.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// IsMissing reports whether s is the missing-value literal.
func IsMissing(s string) bool {
	return strings.EqualFold(s, MissingLiteral)
}

// Header normalizes a column label for matching: noise removed, lower-cased,
// '-' and '_' treated as spaces and whitespace collapsed.
func Header(raw string) string {
	s := noise.Replace(raw)
	s = separators.Replace(s)
	s = cases.Lower(language.Und).String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Set builds a membership set of Text keys for the given values.
// Blank values are skipped.
func Set(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if k := Text(v); k != "" {
			set[k] = struct{}{}
		}
	}
	return set
}
