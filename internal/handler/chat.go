package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/campus-portal/internal/apperror"
	"github.com/sakif/campus-portal/internal/auth"
	"github.com/sakif/campus-portal/internal/service"
)

// ChatHandler exposes the assistant chat widget's endpoints.
type ChatHandler struct {
	chat   *service.ChatService
	logger *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(chat *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		logger: logger,
	}
}

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Message string `json:"message"`
}

// HandleChat relays one message to the assistant.
//
// HTTP: POST /api/chat
// Auth: Required
// REQUEST BODY: {"message": "when is the fest?"}
// RESPONSE: {"reply": "..."}
//
// The widget only reads "reply", so that's the whole response — upstream
// trouble still produces a 200 with a fallback reply, never an error page.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.NotAuthorized())
		return
	}

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	exchange, err := h.chat.Send(r.Context(), userID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"reply": exchange.Reply,
	})
}

// HandleHistory returns the user's recent exchanges, newest first.
//
// HTTP: GET /api/chat/history
// Auth: Required
func (h *ChatHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.NotAuthorized())
		return
	}

	messages, err := h.chat.History(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":  true,
		"messages": messages,
	})
}
