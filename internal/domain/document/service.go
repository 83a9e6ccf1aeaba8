package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Service implements Extractor. PDF parsing goes through an external parse
// sidecar; DOCX is unpacked in-process.
type Service struct {
	parserURL  string
	httpClient *http.Client
}

// NewService creates an extraction service. An empty parserURL disables PDF
// support: PDF uploads then fail with KindUnavailable and the health endpoint
// reports document processing as degraded.
func NewService(parserURL string) *Service {
	return &Service{
		parserURL: parserURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Enabled reports whether the PDF parse sidecar is configured.
func (s *Service) Enabled() bool {
	return s.parserURL != ""
}

// parseResponse is the parse sidecar response format.
type parseResponse struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
	Error string `json:"error,omitempty"`
}

// extractPDF sends the raw PDF bytes to the parse sidecar.
func (s *Service) extractPDF(ctx context.Context, data []byte) (string, error) {
	if s.parserURL == "" {
		return "", &ExtractError{Kind: KindUnavailable}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.parserURL+"/parse", bytes.NewReader(data))
	if err != nil {
		return "", &ExtractError{Kind: KindUnavailable, Err: err}
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &ExtractError{Kind: KindUnavailable, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", &ExtractError{Kind: KindCorruptFile, Err: fmt.Errorf("parse service status %d", resp.StatusCode)}
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ExtractError{Kind: KindCorruptFile, Err: fmt.Errorf("decode parse response: %w", err)}
	}
	if parsed.Error != "" {
		return "", &ExtractError{Kind: KindCorruptFile, Err: fmt.Errorf("parse service: %s", parsed.Error)}
	}
	return parsed.Text, nil
}
