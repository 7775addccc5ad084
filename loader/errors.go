package loader

import "fmt"

// FetchError is a document download failure: network, timeout, or a non-2xx
// status from the document host.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError is a text extraction failure on downloaded bytes: corrupt
// or unsupported input, or a PDF with no extractable text.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract text: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
