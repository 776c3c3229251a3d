package docask

import "strings"

// Normalize lower-cases text and collapses every run of whitespace into a
// single space, trimming both ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
