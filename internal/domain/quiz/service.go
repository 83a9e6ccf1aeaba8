package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edugenhq/edugen-server/internal/domain/audit"
	"github.com/edugenhq/edugen-server/internal/domain/prompt"
	"github.com/edugenhq/edugen-server/internal/infra/eventbus"
	"github.com/edugenhq/edugen-server/internal/observability"
)

// Input validation errors. Callers map these to 400s before any model call.
var (
	ErrInvalidTopic = errors.New("quiz: topic must be a non-empty string")
	ErrInvalidCount = fmt.Errorf("quiz: count must be between %d and %d", MinQuestions, MaxQuestions)
)

// Generator is the resilient model client surface the service needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

// Service builds quiz prompts, runs them through the model, and validates
// the structured output.
type Service struct {
	llm Generator
	bus eventbus.EventBus
}

// NewService creates a quiz Service.
func NewService(llm Generator, bus eventbus.EventBus) *Service {
	return &Service{llm: llm, bus: bus}
}

// Generate produces exactly count validated questions on topic, or an error.
// There is no safe default quiz, so validation failures always surface.
func (s *Service) Generate(ctx context.Context, topic string, count int) ([]Question, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrInvalidTopic
	}
	if count < MinQuestions || count > MaxQuestions {
		return nil, ErrInvalidCount
	}

	start := time.Now()
	raw := s.llm.Generate(ctx, prompt.BuildQuiz(topic, count).Render())

	questions, err := Validate(raw, count)
	if err != nil {
		observability.FromContext(ctx).Error("quiz validation failed", "topic", topic, "count", count, "error", err)
		s.publish(audit.OutcomeError, time.Since(start))
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	s.publish(audit.OutcomeSuccess, time.Since(start))
	return questions, nil
}

func (s *Service) publish(outcome audit.Outcome, elapsed time.Duration) {
	s.bus.Publish(audit.TopicUsage, &audit.UsageEvent{
		Action:   audit.ActionQuiz,
		Template: string(prompt.TemplateQuizGeneration),
		Outcome:  outcome,
		Duration: elapsed,
	})
}
