package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/edugenhq/edugen-server/internal/domain/quiz"
)

// QuizService is the quiz generator surface the handler needs.
type QuizService interface {
	Generate(ctx context.Context, topic string, count int) ([]quiz.Question, error)
}

// QuizHandler handles POST /api/generate-quiz.
type QuizHandler struct {
	quiz QuizService
}

// NewQuizHandler creates a new QuizHandler instance.
func NewQuizHandler(svc QuizService) *QuizHandler {
	return &QuizHandler{quiz: svc}
}

// QuizRequest is the request body for quiz generation. Count is a json.Number
// so both 5 and "5" are accepted, matching the original frontend contract.
type QuizRequest struct {
	Topic string      `json:"topic"`
	Count json.Number `json:"count"`
}

// QuizResponse is the response body for a generated quiz.
type QuizResponse struct {
	Questions []quiz.Question `json:"questions"`
}

const (
	msgInvalidTopic = "Please provide a valid topic for the quiz"
	msgInvalidCount = "Please request between 3 and 10 questions"
)

// GenerateQuiz handles POST /api/generate-quiz.
func (h *QuizHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var req QuizRequest
	if err := dec.Decode(&req); err != nil {
		writeInvalidInput(w, msgInvalidTopic)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeInvalidInput(w, msgInvalidTopic)
		return
	}

	count, err := parseCount(req.Count)
	if err != nil {
		writeInvalidInput(w, msgInvalidCount)
		return
	}

	questions, err := h.quiz.Generate(r.Context(), req.Topic, count)
	switch {
	case errors.Is(err, quiz.ErrInvalidTopic):
		writeInvalidInput(w, msgInvalidTopic)
	case errors.Is(err, quiz.ErrInvalidCount):
		writeInvalidInput(w, msgInvalidCount)
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to generate quiz",
			"message": err.Error(),
		})
	default:
		writeJSON(w, http.StatusOK, QuizResponse{Questions: questions})
	}
}

func writeInvalidInput(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error":   "Invalid input",
		"message": message,
	})
}

// parseCount converts the count field to an int. Floats with a fractional
// part and non-numeric values are rejected.
func parseCount(n json.Number) (int, error) {
	if n == "" {
		return 0, strconv.ErrSyntax
	}
	count, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, err
	}
	return count, nil
}
