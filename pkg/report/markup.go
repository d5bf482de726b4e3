package report

import (
	"html"
	"strconv"
)

var ordinalSuffixes = [...]string{"th", "st", "nd", "rd", "th", "th", "th", "th", "th", "th"}

// Ordinal formats n as an English ordinal number ("1st", "12th", "23rd").
func Ordinal(n int) string {
	mod := n % 100
	if mod < 0 {
		mod = -mod
	}
	suffix := ordinalSuffixes[0]
	if mod <= 10 || mod >= 20 {
		suffix = ordinalSuffixes[mod%10]
	}
	return strconv.Itoa(n) + suffix
}

// Position names the i-th (0-based) of n items, e.g. "2nd of 3".
func Position(i, n int) string {
	return Ordinal(i+1) + " of " + strconv.Itoa(n)
}

// EscapeHTML escapes s for inclusion in a notice message.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
