package dashboard

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCase upper-cases the first letter of each word and lower-cases the
// rest. Upstream English names are all caps. CJK text is unchanged.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// StopLabel is the selector label for a stop name: title-cased, with the
// last whitespace-separated token removed. A single-token name gives "".
func StopLabel(name string) string {
	fields := strings.Fields(titleCase(name))
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields[:len(fields)-1], " ")
}

// Heading is the "origin → destination" line of a route, title-cased.
func Heading(orig, dest string) string {
	return titleCase(orig + " → " + dest)
}
