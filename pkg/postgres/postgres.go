package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

type Config struct {
	DSN          string `split_words:"true"`
	MaxOpenConns int    `split_words:"true" default:"10"`
	PingTimeout  int    `split_words:"true" default:"5"`
}

// New opens a lib/pq pool and verifies it with a ping.
func (c *Config) New(ctx context.Context) (*sql.DB, error) {
	if c.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}

	db, err := sql.Open("postgres", c.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	db.SetMaxOpenConns(c.MaxOpenConns)

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(c.PingTimeout)*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}
