package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/campus-portal/internal/apperror"
	"github.com/sakif/campus-portal/internal/auth"
	"github.com/sakif/campus-portal/internal/service"
)

// CalendarHandler exposes the shared campus events calendar.
type CalendarHandler struct {
	calendar *service.CalendarService
	logger   *slog.Logger
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(calendar *service.CalendarService, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendar: calendar,
		logger:   logger,
	}
}

// createEventRequest is the body of POST /api/events.
type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // YYYY-MM-DD
}

// HandleListEvents returns every event on the calendar.
//
// HTTP: GET /api/events
// Auth: Optional — the calendar page works logged-out; a token just lets
// the frontend highlight the viewer's own events.
func (h *CalendarHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.calendar.ListEvents(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"events":  events,
	})
}

// HandleCreateEvent adds an event to the calendar.
//
// HTTP: POST /api/events
// Auth: Required — events are attributed to the creating user.
// REQUEST BODY: {"title": "...", "description": "...", "date": "2026-01-15"}
func (h *CalendarHandler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.NotAuthorized())
		return
	}

	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.calendar.CreateEvent(r.Context(), userID, req.Title, req.Description, req.Date)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"event":   event,
	})
}
