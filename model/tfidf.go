package model

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"docqa/types"
)

// ErrEmptyVocabulary means no chunk yielded a single indexable term.
var ErrEmptyVocabulary = errors.New("no terms in vocabulary after normalization")

// SparseVector maps vocabulary dimension to weight. Absent dimensions are zero.
type SparseVector map[int]float64

// VectorSpaceModel is the fitted TF-IDF vocabulary for one document.
// It is built once per document and never mutated afterwards, so it is safe
// to share across concurrent question resolutions.
type VectorSpaceModel struct {
	vocabulary map[string]int
	idf        []float64
}

var termPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`)

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "being", "it", "this", "that", "these", "those",
		"from", "up", "down", "over", "under", "than", "so", "such", "into",
		"about", "between", "through", "during", "before", "after", "above",
		"below", "out", "off", "own", "same", "too", "very", "can", "will",
		"just", "should", "now", "what", "which", "who", "how", "not", "no",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// Fit builds the vocabulary and smoothed IDF weights over the chunk set.
// Terms are lower-cased and punctuation-stripped; stopwords are dropped.
func Fit(chunks []types.Chunk) (*VectorSpaceModel, error) {
	df := make(map[string]int)
	for _, chunk := range chunks {
		seen := make(map[string]struct{})
		for _, term := range tokenize(chunk.Text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	// Sorted terms give a stable dimension order, so refitting the same
	// chunks yields an identical model.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	m := &VectorSpaceModel{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(chunks))
	for i, term := range terms {
		m.vocabulary[term] = i
		// Smoothed IDF: stays positive even for terms present in every chunk.
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return m, nil
}

// Dimension returns the vocabulary size.
func (m *VectorSpaceModel) Dimension() int { return len(m.idf) }

// Vectorize embeds text in the fitted space as an L2-normalized sparse
// TF-IDF vector. Out-of-vocabulary terms contribute nothing; text with no
// in-vocabulary terms maps to the zero vector.
func (m *VectorSpaceModel) Vectorize(text string) SparseVector {
	tf := make(map[int]int)
	total := 0
	for _, term := range tokenize(text) {
		if dim, ok := m.vocabulary[term]; ok {
			tf[dim]++
			total++
		}
	}
	vec := make(SparseVector, len(tf))
	if total == 0 {
		return vec
	}
	for dim, count := range tf {
		vec[dim] = float64(count) / float64(total) * m.idf[dim]
	}
	norm := 0.0
	for _, w := range vec {
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for dim := range vec {
			vec[dim] /= norm
		}
	}
	return vec
}

// Cosine returns the cosine similarity of two sparse vectors, and 0 when
// either vector has zero norm.
func Cosine(a, b SparseVector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	dot := 0.0
	for dim, w := range a {
		dot += w * b[dim]
	}
	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}

func norm(v SparseVector) float64 {
	sum := 0.0
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func tokenize(text string) []string {
	raw := termPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}
