package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/Chative-flight-booking/server/internal/agent/model"
)

// MemoryConversationRepository keeps histories in process. Used for local runs
// and tests; nothing survives a restart.
type MemoryConversationRepository struct {
	mu sync.RWMutex
	m  map[string][]*schema.Message
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{m: map[string][]*schema.Message{}}
}

func (r *MemoryConversationRepository) AddMessage(ctx context.Context, userID string, message *schema.Message) error {
	cp := *message
	r.mu.Lock()
	r.m[userID] = append(r.m[userID], &cp)
	r.mu.Unlock()
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(ctx context.Context, userID string) (*model.ConversationHistory, error) {
	r.mu.RLock()
	src := r.m[userID]
	msgs := make([]*schema.Message, len(src))
	copy(msgs, src)
	r.mu.RUnlock()
	return &model.ConversationHistory{UserID: userID, Messages: msgs}, nil
}

func (r *MemoryConversationRepository) ClearHistory(ctx context.Context, userID string) error {
	r.mu.Lock()
	delete(r.m, userID)
	r.mu.Unlock()
	return nil
}

func (r *MemoryConversationRepository) GetMessageCount(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	n := len(r.m[userID])
	r.mu.RUnlock()
	return n, nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
