package store

import (
	"errors"
	"sort"

	"github.com/rs/zerolog/log"

	"docqa/model"
	"docqa/types"
)

// ErrEmptyIndex means Search was called on an index with no chunks.
var ErrEmptyIndex = errors.New("vector index holds no chunks")

// MinScore is the similarity floor: chunks scoring at or below it are not
// considered relevant and are excluded from retrieval results.
const MinScore = 0.1

// Searcher retrieves the chunks most similar to a question.
type Searcher interface {
	Search(question string, k int) ([]types.ScoredChunk, error)
	Len() int
}

// MemoryIndex is an in-memory brute-force vector index over one document's
// chunks. Chunk vectors are computed once at build time; the index is
// read-only afterwards and safe for concurrent Search calls.
type MemoryIndex struct {
	model   *model.VectorSpaceModel
	chunks  []types.Chunk
	vectors []model.SparseVector
}

// NewMemoryIndex vectorizes every chunk in the fitted space.
func NewMemoryIndex(vsm *model.VectorSpaceModel, chunks []types.Chunk) *MemoryIndex {
	vectors := make([]model.SparseVector, len(chunks))
	for i, chunk := range chunks {
		vectors[i] = vsm.Vectorize(chunk.Text)
	}
	return &MemoryIndex{
		model:   vsm,
		chunks:  chunks,
		vectors: vectors,
	}
}

// Len returns the number of indexed chunks.
func (ix *MemoryIndex) Len() int { return len(ix.chunks) }

// Search vectorizes the question in the index's space and returns up to k
// chunks above the similarity floor, descending by score. Equal scores are
// broken by ascending chunk index so results are deterministic. k greater
// than the chunk count is clamped, not an error.
func (ix *MemoryIndex) Search(question string, k int) ([]types.ScoredChunk, error) {
	if len(ix.chunks) == 0 {
		return nil, ErrEmptyIndex
	}
	if k <= 0 {
		k = types.DefaultTopK
	}
	if k > len(ix.chunks) {
		k = len(ix.chunks)
	}

	queryVec := ix.model.Vectorize(question)

	scored := make([]types.ScoredChunk, len(ix.chunks))
	for i := range ix.chunks {
		scored[i] = types.ScoredChunk{
			Chunk: ix.chunks[i],
			Score: model.Cosine(queryVec, ix.vectors[i]),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Chunk.Index < scored[j].Chunk.Index
	})

	results := make([]types.ScoredChunk, 0, k)
	for _, sc := range scored[:k] {
		if sc.Score <= MinScore {
			break
		}
		results = append(results, sc)
	}
	log.Debug().Int("k", k).Int("hits", len(results)).Msg("index searched")
	return results, nil
}
