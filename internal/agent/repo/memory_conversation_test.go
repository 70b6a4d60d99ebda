package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cloudwego/eino/schema"
)

func TestMemoryConversationRepository(t *testing.T) {
	repo := NewMemoryConversationRepository()
	ctx := context.Background()

	msg := schema.UserMessage("hello")
	if err := repo.AddMessage(ctx, "u1", msg); err != nil {
		t.Fatal(err)
	}
	msg.Content = "mutated"

	h, _ := repo.LoadHistory(ctx, "u1")
	if len(h.Messages) != 1 || h.Messages[0].Content != "hello" {
		t.Fatalf("stored message should be a copy, got %+v", h.Messages)
	}

	if h2, _ := repo.LoadHistory(ctx, "u2"); len(h2.Messages) != 0 {
		t.Errorf("users must not share history")
	}

	_ = repo.ClearHistory(ctx, "u1")
	if n, _ := repo.GetMessageCount(ctx, "u1"); n != 0 {
		t.Errorf("count after clear = %d", n)
	}
}

func TestMemoryConversationRepository_Concurrent(t *testing.T) {
	repo := NewMemoryConversationRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for u := 0; u < 8; u++ {
		wg.Add(1)
		go func(u int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = repo.AddMessage(ctx, fmt.Sprintf("user-%d", u), schema.UserMessage(fmt.Sprint(i)))
			}
		}(u)
	}
	wg.Wait()

	for u := 0; u < 8; u++ {
		h, _ := repo.LoadHistory(ctx, fmt.Sprintf("user-%d", u))
		if len(h.Messages) != 100 {
			t.Fatalf("user-%d has %d messages", u, len(h.Messages))
		}
		for i, m := range h.Messages {
			if m.Content != fmt.Sprint(i) {
				t.Fatalf("user-%d message %d = %q, order lost", u, i, m.Content)
			}
		}
	}
}
