package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/loader"
	"docqa/model"
	"docqa/types"
)

type stubSource struct {
	doc *types.Document
	err error
}

func (s *stubSource) Load(context.Context, string) (*types.Document, error) { return s.doc, s.err }

type stubRunner struct {
	answers []types.AnswerRecord
	err     error
}

func (s *stubRunner) Run(context.Context, *types.Document, []string) ([]types.AnswerRecord, error) {
	return s.answers, s.err
}

func testApp(source DocumentSource, pipe Runner) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/hackrx/run", NewRunHandler(source, pipe).HandleRun)
	return app
}

func postRun(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/hackrx/run", bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

const validBody = `{"documents":"https://example.com/policy.pdf","questions":["Is cataract covered?"]}`

func TestHandleRunSuccess(t *testing.T) {
	answers := []types.AnswerRecord{{
		Answer:       "Yes, covered after 24 months.",
		SourceClause: "Clause 4.3",
		Reasoning:    "Stated in the clause.",
	}}
	app := testApp(
		&stubSource{doc: &types.Document{Text: "some text"}},
		&stubRunner{answers: answers},
	)

	resp := postRun(t, app, validBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got types.RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, answers, got.Answers)
}

func TestHandleRunInvalidJSON(t *testing.T) {
	app := testApp(&stubSource{}, &stubRunner{})
	resp := postRun(t, app, `{"documents":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleRunValidation(t *testing.T) {
	app := testApp(&stubSource{}, &stubRunner{})
	for _, body := range []string{
		`{"questions":["q"]}`,
		`{"documents":"https://example.com/a.pdf","questions":[]}`,
		`{"documents":"not a url","questions":["q"]}`,
	} {
		resp := postRun(t, app, body)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "body=%s", body)
	}
}

func TestHandleRunFetchFailure(t *testing.T) {
	app := testApp(
		&stubSource{err: &loader.FetchError{URL: "u", Err: errors.New("timeout")}},
		&stubRunner{},
	)
	resp := postRun(t, app, validBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleRunExtractionFailure(t *testing.T) {
	app := testApp(
		&stubSource{err: &loader.ExtractionError{Err: errors.New("corrupt pdf")}},
		&stubRunner{},
	)
	resp := postRun(t, app, validBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleRunEmptyDocumentFailure(t *testing.T) {
	app := testApp(
		&stubSource{doc: &types.Document{Text: " "}},
		&stubRunner{err: model.ErrEmptyDocument},
	)
	resp := postRun(t, app, validBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
