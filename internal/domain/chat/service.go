// Package chat orchestrates one chat request: document extraction,
// classification, prompt selection, and the model call.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/edugenhq/edugen-server/internal/domain/audit"
	"github.com/edugenhq/edugen-server/internal/domain/document"
	"github.com/edugenhq/edugen-server/internal/domain/prompt"
	"github.com/edugenhq/edugen-server/internal/infra/eventbus"
	"github.com/edugenhq/edugen-server/internal/infra/llm"
	"github.com/edugenhq/edugen-server/internal/observability"
)

// ErrNoInput means the request carried neither a message nor a file.
var ErrNoInput = errors.New("chat: no message or file provided")

// EmptyDocumentReply is returned when extraction succeeds but yields no text,
// e.g. an empty or image-only document. It short-circuits the model call.
const EmptyDocumentReply = "Sorry, I could not extract any text from the document. It might be empty or an image-based file."

// Request is one incoming chat turn. Stateless: every field arrives with the
// request and nothing survives past the reply.
type Request struct {
	Message  string
	FileData string // base64 data URL, empty if no file
	Filename string
	TalkMode bool
	Timezone string
}

// Generator is the resilient model client surface the orchestrator needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

// Classifier decides whether an extracted document is a résumé.
type Classifier interface {
	Classify(ctx context.Context, text string) document.Classification
}

// Service wires the chat pipeline together.
type Service struct {
	llm        Generator
	extractor  document.Extractor
	classifier Classifier
	bus        eventbus.EventBus
}

// NewService creates a chat Service.
func NewService(llm Generator, extractor document.Extractor, classifier Classifier, bus eventbus.EventBus) *Service {
	return &Service{llm: llm, extractor: extractor, classifier: classifier, bus: bus}
}

// Respond runs one chat turn and returns the reply text.
//
// Errors are either ErrNoInput or a *document.ExtractError; everything past
// extraction degrades into fallback reply text instead of failing.
func (s *Service) Respond(ctx context.Context, req Request) (string, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" && req.FileData == "" {
		return "", ErrNoInput
	}

	start := time.Now()
	log := observability.FromContext(ctx)

	in := prompt.Input{
		Message:  message,
		TalkMode: req.TalkMode,
		Timezone: req.Timezone,
	}

	if req.FileData != "" {
		extracted, err := s.extractor.Extract(ctx, req.FileData, req.Filename)
		if err != nil {
			log.Warn("document extraction failed", "filename", req.Filename, "error", err)
			s.publish("", audit.OutcomeError, time.Since(start))
			return "", err
		}
		if strings.TrimSpace(extracted.Text) == "" {
			log.Info("document extracted but empty", "filename", req.Filename, "format", extracted.Format)
			s.publish("", audit.OutcomeDegraded, time.Since(start))
			return EmptyDocumentReply, nil
		}

		in.HasDocument = true
		in.DocumentText = extracted.Text
		in.IsResume = s.classifier.Classify(ctx, extracted.Text).IsResume
	}

	plan := prompt.Select(in)
	reply := s.llm.Generate(ctx, plan.Render())

	s.publish(string(plan.Template), outcomeFor(reply), time.Since(start))
	return reply, nil
}

func (s *Service) publish(template string, outcome audit.Outcome, elapsed time.Duration) {
	s.bus.Publish(audit.TopicUsage, &audit.UsageEvent{
		Action:   audit.ActionChat,
		Template: template,
		Outcome:  outcome,
		Duration: elapsed,
	})
}

// outcomeFor tags a reply as degraded when it is one of the fixed fallback
// strings the resilient client emits. Fallbacks are constants, so the match
// is exact.
func outcomeFor(reply string) audit.Outcome {
	switch reply {
	case llm.FallbackErrorReply, llm.FallbackBusyReply:
		return audit.OutcomeDegraded
	}
	return audit.OutcomeSuccess
}
