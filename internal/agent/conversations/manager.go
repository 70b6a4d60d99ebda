package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/Chative-flight-booking/server/internal/agent/model"
)

type MessagesManager struct {
	conversationRepo model.ConversationRepository
	maxHistory       int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		maxHistory:       config.MaxHistory,
	}
}

// History returns the user/assistant turns sent as extractor context, oldest
// first. A positive maxHistory keeps only the most recent messages.
func (cm *MessagesManager) History(ctx context.Context, userID string) ([]*schema.Message, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	msgs := make([]*schema.Message, 0, len(history.Messages))
	for _, msg := range history.Messages {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.User, schema.Assistant:
			msgs = append(msgs, msg)
		}
	}
	return trimTail(msgs, cm.maxHistory), nil
}

func (cm *MessagesManager) SaveUser(ctx context.Context, userID string, content string) error {
	return cm.conversationRepo.AddMessage(ctx, userID, schema.UserMessage(content))
}

func (cm *MessagesManager) SaveAssistant(ctx context.Context, userID string, content string) error {
	return cm.conversationRepo.AddMessage(ctx, userID, schema.AssistantMessage(content, nil))
}

func (cm *MessagesManager) Clear(ctx context.Context, userID string) error {
	return cm.conversationRepo.ClearHistory(ctx, userID)
}

func (cm *MessagesManager) Count(ctx context.Context, userID string) (int, error) {
	return cm.conversationRepo.GetMessageCount(ctx, userID)
}

// ====================== Helper function ======================
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		return messages
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
