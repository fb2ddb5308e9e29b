package extract

import (
	"strings"
	"unicode"
)

// stopWords is a closed list of common English function words and
// pronouns that never make interesting elements.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "a", "an", "of", "to", "in", "that", "it", "with",
		"for", "as", "was", "on", "at", "by", "from", "is", "were",
		"be", "been", "being", "have", "has", "had", "do", "does", "did",
		"but", "or", "if", "then", "else", "when", "up", "down", "i", "my",
		"myself", "we", "our", "ourselves", "you", "your", "yourself",
		"yourselves", "he", "him", "his", "himself", "she", "her", "hers",
		"herself", "its", "itself", "they", "them", "their", "themselves",
	} {
		stopWords[w] = struct{}{}
	}
}

// Keywords is the deterministic, dependency-free extraction fallback.
// It case-folds the text, splits it into alphanumeric runs, drops tokens
// of length <= 3 and stop words, dedupes preserving first-seen order, and
// returns at most five results.
func Keywords(description string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(description), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(tokens))
	elements := make([]string, 0, maxElements)
	for _, tok := range tokens {
		if len(tok) <= 3 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		elements = append(elements, tok)
		if len(elements) == maxElements {
			break
		}
	}
	return elements
}
