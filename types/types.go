package types

import (
	"github.com/google/uuid"
)

// Document holds the raw text extracted from one source PDF. It is immutable
// once built and lives for a single request.
type Document struct {
	ID        uuid.UUID
	SourceURL string
	Text      string
	Pages     int
}

// Chunk is one window of document text, the unit of retrieval.
// Start/End are word offsets into the normalized document, [Start,End).
type Chunk struct {
	Index int
	Text  string
	Start int
	End   int
}

// Tokens returns the approximate token count of the chunk window.
func (c Chunk) Tokens() int {
	return c.End - c.Start
}

// ScoredChunk pairs a chunk with its cosine similarity to a question.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// AnswerRecord is the per-question result: the answer, the quoted clause it
// rests on, and a one-sentence justification.
type AnswerRecord struct {
	Answer       string `json:"answer"`
	SourceClause string `json:"source_clause"`
	Reasoning    string `json:"reasoning"`
}

// DocumentID derives a stable identifier from the source URL, so identical
// URLs map to the same cache entry.
func DocumentID(url string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url))
}
