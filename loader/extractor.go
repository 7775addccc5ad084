package loader

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"
)

// Extractor pulls plain text out of downloaded document bytes.
type Extractor interface {
	ExtractText(data []byte) (string, int, error)
}

// PDFExtractor validates the PDF structure with pdfcpu, then extracts page
// text with ledongthuc/pdf. The output is untrusted free text; callers
// normalize it before chunking.
type PDFExtractor struct {
	conf *pdfmodel.Configuration
}

func NewPDFExtractor() *PDFExtractor {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	return &PDFExtractor{conf: conf}
}

// ExtractText returns the concatenated page text and the page count.
func (e *PDFExtractor) ExtractText(data []byte) (string, int, error) {
	if len(data) == 0 {
		return "", 0, &ExtractionError{Err: errors.New("no input bytes")}
	}

	pdfCtx, err := api.ReadContext(bytes.NewReader(data), e.conf)
	if err != nil {
		return "", 0, &ExtractionError{Err: fmt.Errorf("invalid pdf: %w", err)}
	}
	if err := api.ValidateContext(pdfCtx); err != nil {
		return "", 0, &ExtractionError{Err: fmt.Errorf("invalid pdf: %w", err)}
	}
	pages := pdfCtx.PageCount

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, &ExtractionError{Err: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			log.Warn().Int("page", i).Err(err).Msg("skipping unreadable page")
			continue
		}
		cleaned := cleanPageText(pageText)
		if cleaned == "" {
			continue
		}
		sb.WriteString(cleaned)
		sb.WriteString("\n\n")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", 0, &ExtractionError{Err: errors.New("no text content in pdf")}
	}

	log.Debug().Int("pages", pages).Int("chars", len(text)).Msg("pdf text extracted")
	return text, pages, nil
}

// cleanPageText strips common PDF artifacts from one page of text.
func cleanPageText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\x0c", " ")
	return strings.Join(strings.Fields(text), " ")
}
