package similarity

import "strings"

// importPrefixes lists language-package prefixes stripped by MaskImports:
// generic Java package roots only; no project-specific prefixes are
// listed. The default pipeline path does not apply masking.
var importPrefixes = []string{
	"import java.",
	"import org.",
	"import com.",
	"import net.",
	"import io.",
}

// MaskImports strips a leading import-prefix from s, if one matches. It
// returns s unchanged when no prefix matches. Masking is pure and
// order-independent: at most one prefix can match a given leading
// substring, so checking in list order is deterministic.
func MaskImports(s string) string {
	for _, prefix := range importPrefixes {
		if strings.HasPrefix(s, prefix) {
			return strings.TrimPrefix(s, prefix)
		}
	}
	return s
}

// JaroWinklerMasked scores s and a after applying MaskImports to both
// sides. The engine configuration has no masking option, and the
// Assignment, Statistics and Reclustering code call JaroWinkler directly.
func JaroWinklerMasked(s, a string) float64 {
	return JaroWinkler(MaskImports(s), MaskImports(a))
}
