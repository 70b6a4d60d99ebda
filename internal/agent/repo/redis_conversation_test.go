package repo

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	errx "github.com/Chative-flight-booking/server/internal/core/error"
	logx "github.com/Chative-flight-booking/server/pkg/logger"
)

func newRedisRepo(t *testing.T, ttl time.Duration) (*RedisConversationRepository, *miniredis.Miniredis) {
	t.Helper()
	logx.Disable()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisConversationRepository(rdb, ttl), mr
}

func TestRedisConversationRepository_RoundTrip(t *testing.T) {
	repo, mr := newRedisRepo(t, time.Hour)
	ctx := context.Background()

	if err := repo.AddMessage(ctx, "u1", schema.UserMessage("I want to fly to Paris")); err != nil {
		t.Fatalf("add user: %v", err)
	}
	if err := repo.AddMessage(ctx, "u1", schema.AssistantMessage("Where from?", nil)); err != nil {
		t.Fatalf("add assistant: %v", err)
	}

	h, err := repo.LoadHistory(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if h.UserID != "u1" || len(h.Messages) != 2 {
		t.Fatalf("history = %+v", h)
	}
	if h.Messages[0].Role != schema.User || h.Messages[0].Content != "I want to fly to Paris" {
		t.Errorf("first = %+v", h.Messages[0])
	}
	if h.Messages[1].Role != schema.Assistant || h.Messages[1].Content != "Where from?" {
		t.Errorf("second = %+v", h.Messages[1])
	}

	if ttl := mr.TTL("conversation:u1:messages"); ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", ttl)
	}

	n, err := repo.GetMessageCount(ctx, "u1")
	if err != nil || n != 2 {
		t.Errorf("count = %d, %v", n, err)
	}

	if err := repo.ClearHistory(ctx, "u1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	h, err = repo.LoadHistory(ctx, "u1")
	if err != nil || len(h.Messages) != 0 {
		t.Errorf("after clear: %+v, %v", h, err)
	}
}

func TestRedisConversationRepository_UnknownUser(t *testing.T) {
	repo, _ := newRedisRepo(t, 0)
	ctx := context.Background()

	h, err := repo.LoadHistory(ctx, "nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if h.Messages == nil || len(h.Messages) != 0 {
		t.Errorf("messages = %v, want empty non-nil", h.Messages)
	}
	if n, err := repo.GetMessageCount(ctx, "nobody"); err != nil || n != 0 {
		t.Errorf("count = %d, %v", n, err)
	}
}

func TestRedisConversationRepository_NoTTL(t *testing.T) {
	repo, mr := newRedisRepo(t, 0)
	if err := repo.AddMessage(context.Background(), "u2", schema.UserMessage("hi")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if ttl := mr.TTL("conversation:u2:messages"); ttl != 0 {
		t.Errorf("ttl = %v, want none", ttl)
	}
}

func TestRedisConversationRepository_ServerDown(t *testing.T) {
	logx.Disable()
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })
	repo := NewRedisConversationRepository(rdb, time.Hour)

	err := repo.AddMessage(context.Background(), "u3", schema.UserMessage("hi"))
	if err == nil {
		t.Fatal("expected error with redis down")
	}
	if got := errx.StatusOf(err); got != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", got, http.StatusBadGateway)
	}
}
