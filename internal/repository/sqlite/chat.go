package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/campus-portal/internal/model"
	"github.com/sakif/campus-portal/internal/repository"
)

// compile-time check that *DB implements repository.ChatRepository
var _ repository.ChatRepository = (*DB)(nil)

// CreateChatMessage persists one user/assistant exchange.
func (db *DB) CreateChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	msg.ID = xid.New().String()
	msg.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO chat_messages (id, user_id, message, reply, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		msg.ID,
		msg.UserID,
		msg.Message,
		msg.Reply,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting chat message: %w", err)
	}

	return nil
}

// ListChatMessagesByUser returns the user's most recent exchanges, newest
// first. limit <= 0 means no limit.
func (db *DB) ListChatMessagesByUser(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	// xid values sort by creation time, so id breaks created_at ties
	query := `SELECT id, user_id, message, reply, created_at
	          FROM chat_messages WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing chat messages: %w", err)
	}
	defer rows.Close()

	messages := []model.ChatMessage{}
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Message, &m.Reply, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating chat messages: %w", err)
	}

	return messages, nil
}
