package loader

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"docqa/types"
)

// DocumentLoader turns a source URL into a Document: fetch, validate,
// extract. It owns no state beyond its collaborators and is safe for
// concurrent use.
type DocumentLoader struct {
	fetcher   Fetcher
	extractor Extractor
}

func NewDocumentLoader(fetcher Fetcher, extractor Extractor) *DocumentLoader {
	return &DocumentLoader{
		fetcher:   fetcher,
		extractor: extractor,
	}
}

func (l *DocumentLoader) Load(ctx context.Context, rawURL string) (*types.Document, error) {
	start := time.Now()

	data, err := l.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	fetched := time.Now()

	text, pages, err := l.extractor.ExtractText(data)
	if err != nil {
		return nil, err
	}

	doc := &types.Document{
		ID:        types.DocumentID(rawURL),
		SourceURL: rawURL,
		Text:      text,
		Pages:     pages,
	}

	log.Info().
		Stringer("doc_id", doc.ID).
		Int("pages", pages).
		Dur("fetch", fetched.Sub(start)).
		Dur("extract", time.Since(fetched)).
		Msg("document loaded")
	return doc, nil
}
