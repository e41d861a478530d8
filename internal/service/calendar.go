package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/campus-portal/internal/apperror"
	"github.com/sakif/campus-portal/internal/model"
	"github.com/sakif/campus-portal/internal/repository"
)

// MaxEventTitleLength bounds event titles; the calendar cells truncate
// anything longer anyway.
const MaxEventTitleLength = 200

// CalendarService handles business logic for the shared campus calendar.
type CalendarService struct {
	events repository.EventRepository
	logger *slog.Logger
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(events repository.EventRepository, logger *slog.Logger) *CalendarService {
	return &CalendarService{
		events: events,
		logger: logger,
	}
}

// CreateEvent validates and saves a new calendar event attributed to the
// authenticated user. The date must be a real calendar day in YYYY-MM-DD
// form — the same string the day cells in the frontend are keyed by.
func (s *CalendarService) CreateEvent(ctx context.Context, userID, title, description, date string) (*model.CalendarEvent, error) {
	title = strings.TrimSpace(title)
	date = strings.TrimSpace(date)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "Title is required")
	}
	if len(title) > MaxEventTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("Title must be at most %d characters", MaxEventTitleLength))
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperror.ValidationFailed("date", "Date must be in YYYY-MM-DD format")
	}

	event := &model.CalendarEvent{
		Title:       title,
		Description: strings.TrimSpace(description),
		Date:        date,
		CreatedBy:   userID,
	}

	if err := s.events.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("service/calendar: creating event: %w", err)
	}

	s.logger.Info("event created",
		slog.String("eventID", event.ID),
		slog.String("date", event.Date),
		slog.String("createdBy", userID),
	)

	return event, nil
}

// ListEvents returns every event on the calendar, date-ascending.
func (s *CalendarService) ListEvents(ctx context.Context) ([]model.CalendarEvent, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/calendar: listing events: %w", err)
	}
	return events, nil
}
