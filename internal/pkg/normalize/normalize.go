// Package normalize holds the canonical text transforms used for duplicate
// detection. Display values keep their original casing; the normalized forms
// exist only to feed the unique indexes.
package normalize

import "strings"

// CollapseSpaces collapses runs of whitespace into single spaces and trims
// leading/trailing whitespace.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SourceName returns the canonical form of a source name: whitespace
// collapsed and case-folded.
func SourceName(name string) string {
	return strings.ToLower(CollapseSpaces(name))
}

// QuoteText returns the canonical form of a quote text: whitespace collapsed,
// casing preserved.
func QuoteText(text string) string {
	return CollapseSpaces(text)
}
