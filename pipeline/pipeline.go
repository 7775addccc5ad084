package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"docqa/app/agent"
	"docqa/model"
	"docqa/store"
	"docqa/types"
)

// Synthesizer resolves one question against its retrieved chunks.
type Synthesizer interface {
	Synthesize(ctx context.Context, question string, retrieved []types.ScoredChunk) types.AnswerRecord
}

// Pipeline sequences chunking, index building, retrieval and synthesis for
// one document and a batch of questions. The index is built exactly once per
// call; questions then run concurrently against it, bounded by the
// configured in-flight limit.
type Pipeline struct {
	synth Synthesizer
	cfg   types.Config
	cache *store.IndexCache
}

func New(synth Synthesizer, cfg types.Config) *Pipeline {
	// An errgroup limit of zero admits no workers at all, so a missing or
	// nonsensical setting must not be passed through.
	if cfg.MaxConcurrentQuestions < 1 {
		cfg.MaxConcurrentQuestions = 1
	}
	p := &Pipeline{
		synth: synth,
		cfg:   cfg,
	}
	if cfg.CacheEnabled {
		p.cache = store.NewIndexCache()
	}
	return p
}

// Run answers every question against the document, index-aligned with the
// input. Input-shape failures (empty document, empty vocabulary) abort the
// whole call; per-question failures degrade to fallback records inside the
// synthesizer and never escalate.
func (p *Pipeline) Run(ctx context.Context, doc *types.Document, questions []string) ([]types.AnswerRecord, error) {
	start := time.Now()

	index, err := p.buildIndex(doc)
	if err != nil {
		return nil, err
	}
	indexed := time.Now()

	answers := make([]types.AnswerRecord, len(questions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxConcurrentQuestions)
	for i, question := range questions {
		i, question := i, question
		g.Go(func() error {
			answers[i] = p.resolve(gctx, index, i, question)
			return nil
		})
	}
	// Workers never return errors; Wait is for completion only.
	_ = g.Wait()

	log.Info().
		Stringer("doc_id", doc.ID).
		Int("questions", len(questions)).
		Dur("index", indexed.Sub(start)).
		Dur("total", time.Since(start)).
		Msg("request resolved")
	return answers, nil
}

// resolve handles a single question under its own timeout. A timeout or any
// downstream failure yields the fallback record, never an error.
func (p *Pipeline) resolve(ctx context.Context, index *store.MemoryIndex, i int, question string) types.AnswerRecord {
	qctx, cancel := context.WithTimeout(ctx, p.cfg.QuestionTimeout)
	defer cancel()

	start := time.Now()
	retrieved, err := index.Search(question, p.cfg.TopK)
	if err != nil {
		log.Error().Err(err).Int("question_index", i).Msg("retrieval failed")
		return agent.Fallback()
	}

	record := p.synth.Synthesize(qctx, question, retrieved)
	log.Debug().
		Int("question_index", i).
		Int("retrieved", len(retrieved)).
		Dur("took", time.Since(start)).
		Msg("question resolved")
	return record
}

func (p *Pipeline) buildIndex(doc *types.Document) (*store.MemoryIndex, error) {
	if p.cache != nil && doc.ID != uuid.Nil {
		if index, ok := p.cache.Get(doc.ID); ok {
			log.Debug().Stringer("doc_id", doc.ID).Msg("index cache hit")
			return index, nil
		}
	}

	chunks, err := model.SplitChunks(doc.Text, p.cfg.ChunkSize, p.cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	vsm, err := model.Fit(chunks)
	if err != nil {
		return nil, err
	}

	index := store.NewMemoryIndex(vsm, chunks)
	log.Debug().
		Stringer("doc_id", doc.ID).
		Int("chunks", len(chunks)).
		Int("vocabulary", vsm.Dimension()).
		Msg("index built")

	if p.cache != nil && doc.ID != uuid.Nil {
		p.cache.Put(doc.ID, index)
	}
	return index, nil
}
