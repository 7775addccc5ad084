package model

import (
	"errors"
	"regexp"
	"strings"

	"docqa/types"
)

// ErrEmptyDocument means the normalized text contains no tokens at all.
var ErrEmptyDocument = errors.New("document has no tokens after normalization")

var artifactPattern = regexp.MustCompile(`[^\p{L}\p{N}\s.,;:!?%/'"&§\-()\[\]{}]`)

// NormalizeText collapses whitespace and strips extraction artifacts while
// keeping punctuation, so clause references like "Section 2.1" survive.
func NormalizeText(text string) string {
	text = artifactPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// SplitChunks splits normalized text into overlapping word windows of at most
// maxTokens words. Windows advance by maxTokens-overlapTokens, so consecutive
// chunks share overlapTokens words and the last window may be shorter.
// Token counts are approximate: a token is a whitespace-separated word.
func SplitChunks(text string, maxTokens, overlapTokens int) ([]types.Chunk, error) {
	words := strings.Fields(NormalizeText(text))
	if len(words) == 0 {
		return nil, ErrEmptyDocument
	}

	if maxTokens <= 0 {
		maxTokens = types.DefaultChunkSize
	}
	if overlapTokens < 0 || overlapTokens >= maxTokens {
		overlapTokens = maxTokens / 3
	}
	step := maxTokens - overlapTokens

	var chunks []types.Chunk
	for start, idx := 0, 0; start < len(words); start, idx = start+step, idx+1 {
		end := start + maxTokens
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, types.Chunk{
			Index: idx,
			Text:  strings.Join(words[start:end], " "),
			Start: start,
			End:   end,
		})
		if end == len(words) {
			break
		}
	}
	return chunks, nil
}
