package slug

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Make returns a lowercase slug of input, with letter and digit runs joined
// by dashes. Letters outside ASCII are kept so "München" stays readable in
// file names.
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonWord.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}
