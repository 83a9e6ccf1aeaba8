// Package document turns uploaded files into text and classifies them.
//
// The frontend sends files as base64 data URLs. Decoding and DOCX unpacking
// happen in-process; PDF text extraction is delegated to an external parse
// sidecar over HTTP. Extracted text lives for one request and is never
// persisted.
package document

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the source format of an extracted document.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Extracted is the text pulled out of one uploaded file.
type Extracted struct {
	Text   string
	Format Format
}

// ErrorKind classifies extraction failures so handlers can branch without
// parsing message text.
type ErrorKind string

const (
	KindInvalidEncoding   ErrorKind = "invalid_encoding"
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindCorruptFile       ErrorKind = "corrupt_file"
	KindUnavailable       ErrorKind = "unavailable"
)

// ExtractError is a tagged extraction failure. Message() is safe to show to
// the end user; Error() may carry internal detail for logs.
type ExtractError struct {
	Kind ErrorKind
	Err  error
}

func (e *ExtractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document extract (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("document extract (%s)", e.Kind)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// Message returns the user-facing explanation for this failure.
func (e *ExtractError) Message() string {
	switch e.Kind {
	case KindInvalidEncoding:
		return "Invalid base64 file data."
	case KindUnsupportedFormat:
		return "Unsupported file type. Please upload a PDF or DOCX file."
	case KindCorruptFile:
		return "Could not read the file. It may be corrupted or encrypted."
	case KindUnavailable:
		return "Document processing is currently unavailable on the server."
	}
	return "An unexpected error occurred while processing the file."
}

// Extractor is the port the chat orchestrator consumes.
type Extractor interface {
	// Extract decodes a base64 data URL and returns the document text.
	// Failures are always *ExtractError.
	Extract(ctx context.Context, dataURL, filename string) (*Extracted, error)

	// Enabled reports whether full document processing (including PDF) is
	// available. Surfaced by the health endpoint.
	Enabled() bool
}

// Extract implements the Extractor port for PDF and DOCX uploads.
func (s *Service) Extract(ctx context.Context, dataURL, filename string) (*Extracted, error) {
	data, err := decodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err := s.extractPDF(ctx, data)
		if err != nil {
			return nil, err
		}
		return &Extracted{Text: text, Format: FormatPDF}, nil
	case ".docx":
		text, err := extractDOCX(data)
		if err != nil {
			return nil, err
		}
		return &Extracted{Text: text, Format: FormatDOCX}, nil
	default:
		return nil, &ExtractError{Kind: KindUnsupportedFormat}
	}
}

// decodeDataURL strips the "data:<mime>;base64," header and decodes the
// payload.
func decodeDataURL(dataURL string) ([]byte, error) {
	_, encoded, found := strings.Cut(dataURL, ",")
	if !found {
		return nil, &ExtractError{Kind: KindInvalidEncoding}
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &ExtractError{Kind: KindInvalidEncoding, Err: err}
	}
	return data, nil
}
