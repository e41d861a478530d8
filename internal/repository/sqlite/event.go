package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/campus-portal/internal/model"
	"github.com/sakif/campus-portal/internal/repository"
)

// compile-time check that *DB implements repository.EventRepository
var _ repository.EventRepository = (*DB)(nil)

// CreateEvent inserts a calendar event. ID and CreatedAt are assigned here.
func (db *DB) CreateEvent(ctx context.Context, event *model.CalendarEvent) error {
	event.ID = xid.New().String()
	event.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO events (id, title, description, date, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.CreatedBy,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting event: %w", err)
	}

	return nil
}

// ListEvents returns all events ordered by date. The calendar frontend
// filters to the visible month client-side, so no range parameter yet.
func (db *DB) ListEvents(ctx context.Context) ([]model.CalendarEvent, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, description, date, created_by, created_at
		 FROM events ORDER BY date ASC, created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing events: %w", err)
	}
	defer rows.Close()

	events := []model.CalendarEvent{}
	for rows.Next() {
		var e model.CalendarEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating events: %w", err)
	}

	return events, nil
}
