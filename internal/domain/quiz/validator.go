// Package quiz generates multiple-choice quizzes and strictly validates the
// model's free-text output against the quiz schema.
package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OptionCount is the required number of options per question.
const OptionCount = 4

// Topic/count bounds for a quiz request.
const (
	MinQuestions = 3
	MaxQuestions = 10
)

// Question is one validated quiz question.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// FailureKind enumerates the distinct validation failure modes, in the order
// the checks run.
type FailureKind string

const (
	// FailureMalformedJSON: the reply is not parseable JSON.
	FailureMalformedJSON FailureKind = "malformed_json"
	// FailureNotAnArray: the reply parsed but is not a JSON array.
	FailureNotAnArray FailureKind = "not_an_array"
	// FailureInvalidQuestion: a question violates the schema; Index names it (1-based).
	FailureInvalidQuestion FailureKind = "invalid_question"
	// FailureCountMismatch: the validated count differs from the requested count.
	FailureCountMismatch FailureKind = "count_mismatch"
)

// ValidationError is a tagged quiz-validation failure. Callers branch on
// Kind, not message text.
type ValidationError struct {
	Kind     FailureKind
	Index    int    // 1-based question index, for FailureInvalidQuestion
	Expected int    // for FailureCountMismatch
	Actual   int    // for FailureCountMismatch
	Reason   string // human detail, for FailureInvalidQuestion
	Err      error  // wrapped parse error, for FailureMalformedJSON
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case FailureMalformedJSON:
		return fmt.Sprintf("quiz validation: reply is not valid JSON: %v", e.Err)
	case FailureNotAnArray:
		return "quiz validation: reply is not a JSON array"
	case FailureInvalidQuestion:
		return fmt.Sprintf("quiz validation: question %d is invalid: %s", e.Index, e.Reason)
	case FailureCountMismatch:
		return fmt.Sprintf("quiz validation: expected %d questions, got %d", e.Expected, e.Actual)
	}
	return "quiz validation failed"
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate parses and strictly validates a raw model reply. All-or-nothing:
// on any failure it returns nil questions and a *ValidationError. On success
// every string field comes back trimmed.
func Validate(raw string, expectedCount int) ([]Question, error) {
	cleaned := stripCodeFences(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &ValidationError{Kind: FailureMalformedJSON, Err: err}
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, &ValidationError{Kind: FailureNotAnArray}
	}

	questions := make([]Question, 0, len(items))
	for i, item := range items {
		q, err := validateQuestion(i+1, item)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if len(questions) != expectedCount {
		return nil, &ValidationError{
			Kind:     FailureCountMismatch,
			Expected: expectedCount,
			Actual:   len(questions),
		}
	}

	return questions, nil
}

// validateQuestion checks one array element. index is 1-based.
func validateQuestion(index int, item any) (Question, error) {
	invalid := func(reason string) (Question, error) {
		return Question{}, &ValidationError{Kind: FailureInvalidQuestion, Index: index, Reason: reason}
	}

	obj, ok := item.(map[string]any)
	if !ok {
		return invalid("not a JSON object")
	}

	text, ok := obj["text"].(string)
	if !ok || strings.TrimSpace(text) == "" {
		return invalid("missing or empty text")
	}

	rawOptions, ok := obj["options"].([]any)
	if !ok {
		return invalid("options is not an array")
	}
	if len(rawOptions) != OptionCount {
		return invalid(fmt.Sprintf("expected %d options, got %d", OptionCount, len(rawOptions)))
	}

	options := make([]string, OptionCount)
	for i, raw := range rawOptions {
		opt, ok := raw.(string)
		if !ok {
			return invalid(fmt.Sprintf("option %d is not a string", i+1))
		}
		options[i] = strings.TrimSpace(opt)
	}

	answer, ok := obj["correctAnswer"].(string)
	if !ok || strings.TrimSpace(answer) == "" {
		return invalid("missing or empty correctAnswer")
	}
	answer = strings.TrimSpace(answer)

	// Exact match, case-sensitive, post-trim. No fuzzy matching.
	found := false
	for _, opt := range options {
		if opt == answer {
			found = true
			break
		}
	}
	if !found {
		return invalid("correctAnswer does not match any option")
	}

	return Question{
		Text:          strings.TrimSpace(text),
		Options:       options,
		CorrectAnswer: answer,
	}, nil
}

// stripCodeFences removes a markdown code-fence wrapper (```json ... ``` or
// ``` ... ```) and surrounding whitespace. Replies without fences pass
// through untouched apart from trimming.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line ("```" or "```json").
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
