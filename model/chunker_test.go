package model

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(words, " ")
}

func TestSplitChunksWindowsAndOverlap(t *testing.T) {
	chunks, err := SplitChunks(wordText(25), 10, 3)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, 25, chunks[len(chunks)-1].End)

	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		assert.LessOrEqual(t, c.Tokens(), 10)
		assert.Len(t, strings.Fields(c.Text), c.Tokens())
		if i > 0 {
			prev := chunks[i-1]
			// Windows advance by max-overlap and always overlap their predecessor.
			assert.Equal(t, prev.Start+7, c.Start)
			assert.Less(t, c.Start, prev.End)
		}
	}
}

func TestSplitChunksCoversAllTokens(t *testing.T) {
	const n = 103
	chunks, err := SplitChunks(wordText(n), 30, 10)
	require.NoError(t, err)

	covered := make([]bool, n)
	for _, c := range chunks {
		for i := c.Start; i < c.End; i++ {
			covered[i] = true
		}
	}
	for i, ok := range covered {
		assert.True(t, ok, "token %d not covered by any chunk", i)
	}
}

func TestSplitChunksShortDocumentSingleWindow(t *testing.T) {
	chunks, err := SplitChunks("only five words right here", 300, 100)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "only five words right here", chunks[0].Text)
	assert.Equal(t, 5, chunks[0].Tokens())
}

func TestSplitChunksEmptyDocument(t *testing.T) {
	for _, text := range []string{"", "   \t\n  "} {
		_, err := SplitChunks(text, 300, 100)
		assert.ErrorIs(t, err, ErrEmptyDocument)
	}
}

func TestSplitChunksPure(t *testing.T) {
	text := wordText(50)
	a, err := SplitChunks(text, 20, 5)
	require.NoError(t, err)
	b, err := SplitChunks(text, 20, 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNormalizeTextCollapsesWhitespace(t *testing.T) {
	got := NormalizeText("Clause  4.3:\n\nCataract   is covered.")
	assert.Equal(t, "Clause 4.3: Cataract is covered.", got)
}
