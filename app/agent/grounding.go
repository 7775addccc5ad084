package agent

import (
	"regexp"
	"strings"

	"docqa/types"
)

var punctPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Grounded reports whether the quoted clause is traceable to one of the
// retrieved chunks. Matching is fuzzy: both sides are lower-cased,
// punctuation-stripped and whitespace-collapsed, then the whole clause is
// looked up as a substring; failing that, any run of three consecutive
// clause words found in a chunk counts as a match. An unmatched clause means
// the answer cannot be trusted.
func Grounded(clause string, retrieved []types.ScoredChunk) bool {
	normClause := normalizeForMatch(clause)
	if normClause == "" {
		return false
	}

	normChunks := make([]string, len(retrieved))
	for i, sc := range retrieved {
		normChunks[i] = normalizeForMatch(sc.Chunk.Text)
	}

	for _, chunk := range normChunks {
		if strings.Contains(chunk, normClause) {
			return true
		}
	}

	words := strings.Fields(normClause)
	if len(words) <= 3 {
		return false
	}
	for i := 0; i+3 <= len(words); i++ {
		phrase := strings.Join(words[i:i+3], " ")
		for _, chunk := range normChunks {
			if strings.Contains(chunk, phrase) {
				return true
			}
		}
	}
	return false
}

func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = punctPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
