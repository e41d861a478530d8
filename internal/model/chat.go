package model

import "time"

// ChatMessage is one exchange with the portal assistant: what the user asked
// and what the assistant answered. Stored so the widget can replay recent
// history after a page reload.
type ChatMessage struct {
	ID        string    `json:"id"        db:"id"`
	UserID    string    `json:"userId"    db:"user_id"`
	Message   string    `json:"message"   db:"message"`
	Reply     string    `json:"reply"     db:"reply"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
