package repo

import (
	"context"
	"os"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	logx "github.com/Chative-flight-booking/server/pkg/logger"
	pkgpostgres "github.com/Chative-flight-booking/server/pkg/postgres"
)

// Runs only against a live database: POSTGRES_TEST_DSN=postgres://... go test ./...
func TestPostgresConversationRepository(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	logx.Disable()
	ctx := context.Background()

	cfg := pkgpostgres.Config{DSN: dsn, MaxOpenConns: 2, PingTimeout: 5}
	db, err := cfg.New(ctx)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewPostgresConversationRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}

	userID := "test-" + uuid.NewString()
	t.Cleanup(func() { _ = repo.ClearHistory(ctx, userID) })

	for _, m := range []*schema.Message{
		schema.UserMessage("one"),
		schema.AssistantMessage("two", nil),
		schema.UserMessage("three"),
	} {
		if err := repo.AddMessage(ctx, userID, m); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	h, err := repo.LoadHistory(ctx, userID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"one", "two", "three"}
	if len(h.Messages) != len(want) {
		t.Fatalf("messages = %d, want %d", len(h.Messages), len(want))
	}
	for i, m := range h.Messages {
		if m.Content != want[i] {
			t.Errorf("message %d = %q, want %q", i, m.Content, want[i])
		}
	}
	if h.Messages[1].Role != schema.Assistant {
		t.Errorf("role = %s", h.Messages[1].Role)
	}

	if err := repo.ClearHistory(ctx, userID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n, err := repo.GetMessageCount(ctx, userID); err != nil || n != 0 {
		t.Errorf("count after clear = %d, %v", n, err)
	}
}
