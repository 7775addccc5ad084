package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/types"
)

type stubCompleter struct {
	replies []string
	errs    []error
	prompts []string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	call := len(s.prompts)
	s.prompts = append(s.prompts, prompt)
	var err error
	if call < len(s.errs) {
		err = s.errs[call]
	}
	var reply string
	if call < len(s.replies) {
		reply = s.replies[call]
	}
	return reply, err
}

const policyChunk = "Clause 4.3: Cataract is covered after 24 months. Section 2.1: Maternity is excluded."

func retrievedChunks() []types.ScoredChunk {
	return []types.ScoredChunk{
		{Chunk: types.Chunk{Index: 0, Text: policyChunk}, Score: 0.8},
	}
}

const goodReply = `Answer: Yes, cataract is covered after a waiting period of 24 months.
Source Clause: Clause 4.3: Cataract is covered after 24 months.
Reasoning: The clause states cataract coverage begins after 24 months.`

func TestSynthesizeParsesStructuredReply(t *testing.T) {
	stub := &stubCompleter{replies: []string{goodReply}}
	record := New(stub).Synthesize(context.Background(), "Is cataract covered?", retrievedChunks())

	assert.Contains(t, record.Answer, "24 months")
	assert.Contains(t, record.SourceClause, "Clause 4.3")
	assert.NotEmpty(t, record.Reasoning)
	assert.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "CHUNK 1:")
	assert.Contains(t, stub.prompts[0], policyChunk)
}

func TestSynthesizeRetriesOnMalformedReply(t *testing.T) {
	stub := &stubCompleter{replies: []string{"I cannot comply with that format.", goodReply}}
	record := New(stub).Synthesize(context.Background(), "Is cataract covered?", retrievedChunks())

	require.Len(t, stub.prompts, 2)
	assert.Contains(t, stub.prompts[1], "could not be parsed")
	assert.Contains(t, record.Answer, "24 months")
}

func TestSynthesizeFallbackAfterTwoMalformedReplies(t *testing.T) {
	stub := &stubCompleter{replies: []string{"nope", "still nope"}}
	record := New(stub).Synthesize(context.Background(), "Is cataract covered?", retrievedChunks())

	assert.Equal(t, Fallback(), record)
	assert.Empty(t, record.SourceClause)
	assert.Empty(t, record.Reasoning)
	assert.Len(t, stub.prompts, 2)
}

func TestSynthesizeFallbackOnProviderError(t *testing.T) {
	providerErr := errors.New("quota exceeded")
	stub := &stubCompleter{errs: []error{providerErr, providerErr}}
	record := New(stub).Synthesize(context.Background(), "Is cataract covered?", retrievedChunks())

	assert.Equal(t, Fallback(), record)
	assert.Len(t, stub.prompts, 2)
}

func TestSynthesizeProviderErrorThenSuccess(t *testing.T) {
	stub := &stubCompleter{
		replies: []string{"", goodReply},
		errs:    []error{errors.New("transient"), nil},
	}
	record := New(stub).Synthesize(context.Background(), "Is cataract covered?", retrievedChunks())
	assert.Contains(t, record.Answer, "24 months")
}

func TestSynthesizeDowngradesUngroundedClause(t *testing.T) {
	reply := `Answer: Cataract is covered immediately with no waiting period.
Source Clause: All treatments are covered from day one without exception.
Reasoning: The policy grants immediate comprehensive coverage.`
	stub := &stubCompleter{replies: []string{reply}}
	record := New(stub).Synthesize(context.Background(), "Is cataract covered?", retrievedChunks())

	assert.Equal(t, Fallback(), record)
}

func TestSynthesizeNoRetrievedChunks(t *testing.T) {
	stub := &stubCompleter{}
	record := New(stub).Synthesize(context.Background(), "What is the capital of France?", nil)

	assert.Equal(t, Fallback(), record)
	assert.Empty(t, stub.prompts, "no completion call without context")
}

func TestParseStructured(t *testing.T) {
	record, err := parseStructured(goodReply)
	require.NoError(t, err)
	assert.Equal(t, "Yes, cataract is covered after a waiting period of 24 months.", record.Answer)
	assert.Equal(t, "Clause 4.3: Cataract is covered after 24 months.", record.SourceClause)
}

func TestParseStructuredQuotedClause(t *testing.T) {
	reply := `Answer: Yes.
Source Clause: "Clause 4.3: Cataract is covered after 24 months."
Reasoning: Stated directly.`
	record, err := parseStructured(reply)
	require.NoError(t, err)
	assert.Equal(t, "Clause 4.3: Cataract is covered after 24 months.", record.SourceClause)
}

func TestParseStructuredMissingFields(t *testing.T) {
	for _, raw := range []string{
		"",
		"Answer: yes",
		"Answer: yes\nSource Clause: something",
		"Reasoning: only a justification",
	} {
		_, err := parseStructured(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestGroundedExactAndFuzzy(t *testing.T) {
	retrieved := retrievedChunks()

	assert.True(t, Grounded("Clause 4.3: Cataract is covered after 24 months.", retrieved))
	// Case and punctuation differences do not break the match.
	assert.True(t, Grounded("cataract IS covered, after 24 months", retrieved))
	// A longer paraphrase still matches via a three-word run.
	assert.True(t, Grounded("the policy says maternity is excluded under its terms", retrieved))

	assert.False(t, Grounded("dental implants are fully reimbursed", retrieved))
	assert.False(t, Grounded("", retrieved))
	assert.False(t, Grounded("Clause 4.3", nil))
}
