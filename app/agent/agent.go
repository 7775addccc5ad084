package agent

import (
	"context"

	"github.com/rs/zerolog/log"

	"docqa/types"
)

// Completer is the external language model collaborator.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Agent synthesizes one grounded AnswerRecord per question from retrieved
// chunks. Any provider or parse failure is retried once with a stricter
// reformulation, then degraded to the fallback record; Synthesize never
// returns an error, so one bad question cannot abort a batch.
type Agent struct {
	completer Completer
}

func New(completer Completer) *Agent {
	return &Agent{completer: completer}
}

const fallbackAnswer = "Cannot determine the answer from the provided document."

// Fallback is the record returned when no trustworthy answer exists.
func Fallback() types.AnswerRecord {
	return types.AnswerRecord{Answer: fallbackAnswer}
}

type failureReason string

const (
	failureProvider   failureReason = "provider"
	failureParse      failureReason = "parse"
	failureUngrounded failureReason = "ungrounded"
)

// synthesisResult carries either a parsed record or a tagged failure, so the
// retry flow stays explicit instead of threading errors through it.
type synthesisResult struct {
	record  types.AnswerRecord
	failure failureReason
}

func (r synthesisResult) ok() bool { return r.failure == "" }

func (a *Agent) Synthesize(ctx context.Context, question string, retrieved []types.ScoredChunk) types.AnswerRecord {
	if len(retrieved) == 0 {
		log.Info().Str("question", question).Msg("no relevant chunks, returning fallback")
		return Fallback()
	}

	res := a.attempt(ctx, BuildPrompt(question, retrieved))
	if !res.ok() {
		log.Warn().
			Str("question", question).
			Str("failure", string(res.failure)).
			Msg("first synthesis attempt failed, retrying with strict prompt")
		res = a.attempt(ctx, BuildStrictPrompt(question, retrieved))
	}
	if !res.ok() {
		log.Warn().Str("question", question).Str("failure", string(res.failure)).Msg("synthesis failed, returning fallback")
		return Fallback()
	}

	if !Grounded(res.record.SourceClause, retrieved) {
		log.Warn().
			Str("question", question).
			Str("source_clause", res.record.SourceClause).
			Str("failure", string(failureUngrounded)).
			Msg("source clause not traceable to retrieved chunks, returning fallback")
		return Fallback()
	}
	return res.record
}

func (a *Agent) attempt(ctx context.Context, prompt string) synthesisResult {
	logPromptTokens(prompt)

	raw, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("completion call failed")
		return synthesisResult{failure: failureProvider}
	}

	record, err := parseStructured(raw)
	if err != nil {
		log.Warn().Err(err).Msg("completion reply not parseable")
		return synthesisResult{failure: failureParse}
	}
	return synthesisResult{record: record}
}
