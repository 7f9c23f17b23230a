package similarity

import "github.com/antzucaro/matchr"

// Levenshtein returns the edit distance between s and a. It is exposed for
// testing and reference but is not used by any assignment or reclustering
// decision. Wraps the matchr library rather than hand-rolling a second
// edit-distance implementation.
func Levenshtein(s, a string) int {
	return matchr.Levenshtein(s, a)
}
