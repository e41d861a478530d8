package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/campus-portal/internal/apperror"
	"github.com/sakif/campus-portal/internal/model"
	"github.com/sakif/campus-portal/internal/repository"
)

// Replier generates an assistant reply from a system persona and a user
// message. assistant.Client satisfies it; tests use a stub.
type Replier interface {
	Configured() bool
	Complete(ctx context.Context, system, userMessage string) (string, error)
}

// offlineReply is what the widget shows when no upstream key is configured.
// The chat stays usable in development without credentials.
const offlineReply = "I am currently in offline mode (API Key missing). But I'm here to help!"

// degradedReply covers upstream failures. The user sees an apology, not an
// error page; the real cause goes to the log.
const degradedReply = "Sorry, I'm having trouble thinking right now. Please try again."

// historyLimit caps how many past exchanges the widget replays.
const historyLimit = 50

// ChatService relays user messages to the assistant and keeps a per-user
// transcript.
type ChatService struct {
	users   repository.UserRepository
	history repository.ChatRepository
	replier Replier
	logger  *slog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(
	users repository.UserRepository,
	history repository.ChatRepository,
	replier Replier,
	logger *slog.Logger,
) *ChatService {
	return &ChatService{
		users:   users,
		history: history,
		replier: replier,
		logger:  logger,
	}
}

// Send relays one message for the given user and returns the stored
// exchange.
//
// The persona is built from the user's record in the database — role and
// name are never trusted from the client. Upstream trouble degrades to a
// canned reply instead of failing the request: a flaky assistant shouldn't
// take the chat widget down with it.
func (s *ChatService) Send(ctx context.Context, userID, message string) (*model.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.ValidationFailed("message", "Message is required")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/chat: resolving user: %w", err)
	}

	reply := s.generateReply(ctx, user, message)

	exchange := &model.ChatMessage{
		UserID:  userID,
		Message: message,
		Reply:   reply,
	}
	if err := s.history.CreateChatMessage(ctx, exchange); err != nil {
		return nil, fmt.Errorf("service/chat: saving exchange: %w", err)
	}

	return exchange, nil
}

// History returns the user's recent exchanges, newest first.
func (s *ChatService) History(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	messages, err := s.history.ListChatMessagesByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("service/chat: listing history: %w", err)
	}
	return messages, nil
}

func (s *ChatService) generateReply(ctx context.Context, user *model.User, message string) string {
	if !s.replier.Configured() {
		return offlineReply
	}

	system := fmt.Sprintf(`You are the campus portal's helpful teaching assistant.
The user is a %s named %s.
Answer concisely (max 60 words) and educationally.
If unsure, say "Please ask your teacher for clarification."`, user.Role, user.Name)

	reply, err := s.replier.Complete(ctx, system, message)
	if err != nil {
		s.logger.Error("assistant reply failed",
			slog.String("userID", user.ID),
			slog.String("error", err.Error()),
		)
		return degradedReply
	}

	return reply
}
