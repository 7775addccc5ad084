package agent

import (
	"errors"
	"regexp"
	"strings"

	"docqa/types"
)

var (
	answerPattern    = regexp.MustCompile(`(?is)answer\s*:\s*(.*?)\s*source\s+clause\s*:`)
	sourcePattern    = regexp.MustCompile(`(?is)source\s+clause\s*:\s*(.*?)\s*reasoning\s*:`)
	reasoningPattern = regexp.MustCompile(`(?is)reasoning\s*:\s*(.+)`)
)

// parseStructured extracts the three labeled fields from a model reply.
// A reply missing any field, or with an empty answer, is a parse failure.
func parseStructured(raw string) (types.AnswerRecord, error) {
	answer := firstGroup(answerPattern, raw)
	source := firstGroup(sourcePattern, raw)
	reasoning := firstGroup(reasoningPattern, raw)

	if answer == "" || source == "" || reasoning == "" {
		return types.AnswerRecord{}, errors.New("reply missing answer, source clause, or reasoning")
	}

	return types.AnswerRecord{
		Answer:       answer,
		SourceClause: trimQuotes(source),
		Reasoning:    reasoning,
	}, nil
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func trimQuotes(s string) string {
	return strings.Trim(s, `"'“”`)
}
