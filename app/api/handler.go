package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"docqa/loader"
	"docqa/model"
	"docqa/store"
	"docqa/types"
)

// DocumentSource turns a document URL into extracted text.
type DocumentSource interface {
	Load(ctx context.Context, rawURL string) (*types.Document, error)
}

// Runner resolves a question batch against a loaded document.
type Runner interface {
	Run(ctx context.Context, doc *types.Document, questions []string) ([]types.AnswerRecord, error)
}

type RunHandler struct {
	source DocumentSource
	pipe   Runner
}

func NewRunHandler(source DocumentSource, pipe Runner) *RunHandler {
	return &RunHandler{
		source: source,
		pipe:   pipe,
	}
}

// HandleRun is POST /hackrx/run: fetch and extract the document once, then
// answer every question against it. The response always carries one answer
// per question, in request order.
func (h *RunHandler) HandleRun(c *fiber.Ctx) error {
	var params types.RunParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}
	if errs := types.Validate(&params); len(errs) > 0 {
		return NewValidationError(errs)
	}

	start := time.Now()
	doc, err := h.source.Load(c.Context(), params.Documents)
	if err != nil {
		var fetchErr *loader.FetchError
		var extractErr *loader.ExtractionError
		if errors.As(err, &fetchErr) || errors.As(err, &extractErr) {
			return ErrBadDocument(err.Error())
		}
		return err
	}

	answers, err := h.pipe.Run(c.Context(), doc, params.Questions)
	if err != nil {
		if errors.Is(err, model.ErrEmptyDocument) ||
			errors.Is(err, model.ErrEmptyVocabulary) ||
			errors.Is(err, store.ErrEmptyIndex) {
			return ErrBadDocument(err.Error())
		}
		return err
	}

	log.Info().
		Stringer("doc_id", doc.ID).
		Int("questions", len(params.Questions)).
		Dur("took", time.Since(start)).
		Msg("run completed")
	return c.JSON(types.RunResponse{Answers: answers})
}
