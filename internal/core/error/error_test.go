package errx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func TestWrapRedis(t *testing.T) {
	if WrapRedis(nil) != nil {
		t.Fatal("nil must stay nil")
	}

	notFound := WrapRedis(redis.Nil)
	if StatusOf(notFound) != http.StatusNotFound || !errors.Is(notFound, redis.Nil) {
		t.Errorf("redis.Nil -> %v (status %d)", notFound, StatusOf(notFound))
	}

	down := WrapRedis(errors.New("dial tcp: connection refused"))
	if StatusOf(down) != http.StatusBadGateway || MessageOf(down) != RedisErrorMessage {
		t.Errorf("dial error -> status %d, message %q", StatusOf(down), MessageOf(down))
	}
}

func TestWrapPostgres(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"deadline":    {fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		"connection":  {&pq.Error{Code: "08006"}, http.StatusServiceUnavailable},
		"resources":   {&pq.Error{Code: "53300"}, http.StatusServiceUnavailable},
		"constraint":  {&pq.Error{Code: "23505"}, http.StatusBadGateway},
		"plain error": {errors.New("boom"), http.StatusBadGateway},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := WrapPostgres(tc.err)
			if got := StatusOf(err); got != tc.want {
				t.Errorf("status = %d, want %d", got, tc.want)
			}
			if !errors.Is(err, tc.err) {
				t.Error("wrapped error lost its cause")
			}
		})
	}
}

func TestStatusOf_Defaults(t *testing.T) {
	plain := errors.New("boom")
	if StatusOf(plain) != http.StatusInternalServerError || MessageOf(plain) != SystemErrorMessage {
		t.Error("unwrapped errors should map to 500 and the system message")
	}

	nested := fmt.Errorf("load history: %w", New(plain, http.StatusBadGateway, RedisErrorMessage))
	var e *Error
	if !errors.As(nested, &e) || e.Status != http.StatusBadGateway {
		t.Errorf("errors.As through fmt wrapping failed: %v", nested)
	}
}
