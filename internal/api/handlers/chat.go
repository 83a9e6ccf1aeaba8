package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edugenhq/edugen-server/internal/domain/chat"
	"github.com/edugenhq/edugen-server/internal/domain/document"
	"github.com/edugenhq/edugen-server/internal/observability"
)

// ChatService is the chat orchestrator surface the handler needs.
type ChatService interface {
	Respond(ctx context.Context, req chat.Request) (string, error)
}

// ChatHandler handles POST /api/chat.
type ChatHandler struct {
	chat ChatService
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{chat: svc}
}

// ChatRequest is the request body for a chat turn.
type ChatRequest struct {
	Message  string `json:"message"`
	FileData string `json:"fileData,omitempty"`
	Filename string `json:"filename,omitempty"`
	TalkMode bool   `json:"talkMode,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// ChatResponse is the response body for a chat turn. Extraction failures also
// use this shape: the explanation rides in the response field.
type ChatResponse struct {
	Response string `json:"response"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON input.")
		return
	}

	reply, err := h.chat.Respond(r.Context(), chat.Request{
		Message:  req.Message,
		FileData: req.FileData,
		Filename: req.Filename,
		TalkMode: req.TalkMode,
		Timezone: req.Timezone,
	})
	if err != nil {
		h.writeChatError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Response: reply})
}

func (h *ChatHandler) writeChatError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, chat.ErrNoInput) {
		writeError(w, http.StatusBadRequest, "No message or file was provided.")
		return
	}

	var ee *document.ExtractError
	if errors.As(err, &ee) {
		// Extraction failures carry a user-facing explanation in the
		// response field, matching what the frontend renders as a reply.
		// A missing parse sidecar is a server-side outage, not a bad request.
		status := http.StatusBadRequest
		if ee.Kind == document.KindUnavailable {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, ChatResponse{Response: ee.Message()})
		return
	}

	// Full detail stays in the server log; the caller gets a generic message.
	observability.FromContext(r.Context()).Error("chat request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
}
