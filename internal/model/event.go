package model

import "time"

// CalendarEvent is one entry on the shared campus calendar.
//
// Date is stored as a plain "YYYY-MM-DD" string rather than a time.Time:
// calendar events are day-granular and timezone-free, and the frontend
// renders them straight into day cells. Parsing to a real date happens only
// at validation time.
type CalendarEvent struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	Date        string    `json:"date"        db:"date"`
	CreatedBy   string    `json:"createdBy"   db:"created_by"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
}
