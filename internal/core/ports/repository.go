package ports

import (
	"context"

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
)

// SessionRepository persists chat sessions and their analyzed messages.
type SessionRepository interface {
	CreateSession(ctx context.Context, s domain.ChatSession) error
	GetSession(ctx context.Context, id string) (domain.ChatSession, error)
	DeleteSession(ctx context.Context, id string) error
	AppendMessage(ctx context.Context, m domain.ChatMessage) error
	// RecentMessages returns up to n of the newest messages in the session,
	// oldest first, so they can be used directly as conversation context.
	RecentMessages(ctx context.Context, sessionID string, n int) ([]domain.ChatMessage, error)
	// UpdateMessageEnergy stores the preview-clip energy analyzed for a
	// message after the fact.
	UpdateMessageEnergy(ctx context.Context, messageID string, energy float64) error
}
