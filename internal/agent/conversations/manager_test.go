package conversations

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/Chative-flight-booking/server/internal/agent/model"
	"github.com/Chative-flight-booking/server/internal/agent/repo"
)

func TestMessagesManager_History(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryConversationRepository()
	_ = store.AddMessage(ctx, "u1", schema.SystemMessage("ignored"))
	for i := 0; i < 3; i++ {
		_ = store.AddMessage(ctx, "u1", schema.UserMessage(fmt.Sprintf("q%d", i)))
		_ = store.AddMessage(ctx, "u1", schema.AssistantMessage(fmt.Sprintf("a%d", i), nil))
	}

	all, err := NewMessagesManager(store, model.ConversationConfig{}).History(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 6 || all[0].Content != "q0" || all[5].Content != "a2" {
		t.Fatalf("unbounded history = %v", contents(all))
	}

	recent, err := NewMessagesManager(store, model.ConversationConfig{MaxHistory: 2}).History(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got := contents(recent); len(got) != 2 || got[0] != "q2" || got[1] != "a2" {
		t.Errorf("trimmed history = %v", got)
	}
}

func TestMessagesManager_SaveAndClear(t *testing.T) {
	ctx := context.Background()
	m := NewMessagesManager(repo.NewMemoryConversationRepository(), model.ConversationConfig{})

	if err := m.SaveUser(ctx, "u1", "hi"); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveAssistant(ctx, "u1", "hello"); err != nil {
		t.Fatal(err)
	}
	h, _ := m.History(ctx, "u1")
	if len(h) != 2 || h[0].Role != schema.User || h[1].Role != schema.Assistant {
		t.Fatalf("history = %+v", h)
	}
	if n, _ := m.Count(ctx, "u1"); n != 2 {
		t.Errorf("count = %d", n)
	}
	if err := m.Clear(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if n, _ := m.Count(ctx, "u1"); n != 0 {
		t.Errorf("count after clear = %d", n)
	}
}

func contents(msgs []*schema.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Content
	}
	return out
}
