package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

type ConversationRepository interface {
	// AddMessage appends a message to the user's conversation history
	AddMessage(ctx context.Context, userID string, message *schema.Message) error

	// LoadHistory retrieves the user's conversation history in chronological order
	LoadHistory(ctx context.Context, userID string) (*ConversationHistory, error)

	// ClearHistory removes all conversation history for a user
	ClearHistory(ctx context.Context, userID string) error

	// GetMessageCount returns the number of messages stored for a user
	GetMessageCount(ctx context.Context, userID string) (int, error)
}

// ConversationHistory represents loaded conversation data with metadata.
type ConversationHistory struct {
	UserID   string
	Messages []*schema.Message
}
