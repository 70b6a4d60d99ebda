package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Chative-flight-booking/server/internal/agent/conversations"
	"github.com/Chative-flight-booking/server/internal/agent/extractor"
	"github.com/Chative-flight-booking/server/internal/agent/model"
	"github.com/Chative-flight-booking/server/internal/agent/observers"
	"github.com/Chative-flight-booking/server/internal/agent/orchestrator"
	"github.com/Chative-flight-booking/server/internal/agent/repo"
	"github.com/Chative-flight-booking/server/internal/agent/session"
	"github.com/Chative-flight-booking/server/internal/api"
	"github.com/Chative-flight-booking/server/internal/booking"
	"github.com/Chative-flight-booking/server/internal/core"
	"github.com/Chative-flight-booking/server/internal/safety"
	logx "github.com/Chative-flight-booking/server/pkg/logger"
	pkgpostgres "github.com/Chative-flight-booking/server/pkg/postgres"
	pkgredis "github.com/Chative-flight-booking/server/pkg/redis"
)

// AppConfig defines all configurable parameters of the service, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis    pkgredis.Config
	Postgres pkgpostgres.Config

	// Agent configs
	Extractor    model.ExtractorConfig
	Conversation model.ConversationConfig
	Safety       model.SafetyConfig
	Server       model.ServerConfig
}

func main() {
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load .env file: %v\n", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to process environment config: %v\n", err)
		os.Exit(1)
	}

	logx.Init(logx.LoggerOpts{Environment: envCfg.Environment})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conversationRepo, closeRepo, err := newConversationRepository(ctx, envCfg)
	if err != nil {
		logx.Fatal().Err(err).Str("backend", envCfg.Conversation.Backend).Msg("Failed to initialise conversation store")
	}
	defer closeRepo()

	chatModel, err := extractor.NewChatModel(ctx, envCfg.Extractor)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to create extractor chat model")
	}

	client := extractor.NewClient(chatModel,
		extractor.WithModelName(envCfg.Extractor.Model),
		extractor.WithRetryPolicy(extractor.RetryPolicy{
			MaxAttempts: extractor.MaxAttempts,
			BaseDelay:   envCfg.Extractor.RetryBaseDelay,
		}),
		extractor.WithCallTimeout(envCfg.Extractor.CallTimeout),
		extractor.WithCallbacks(observers.NewAllCallbacks()),
	)

	orch := orchestrator.New(
		conversations.NewMessagesManager(conversationRepo, envCfg.Conversation),
		client,
		session.NewStore(session.DefaultShards),
		safety.NewInputValidator(envCfg.Safety.MaxInputLength),
		booking.NewService(),
	)

	srv := &http.Server{
		Addr:              ":" + envCfg.Server.Port,
		Handler:           api.NewRouter(api.NewHandler(orch), envCfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logx.Info().
			Str("addr", srv.Addr).
			Str("environment", envCfg.Environment.String()).
			Str("provider", envCfg.Extractor.Provider).
			Str("model", envCfg.Extractor.Model).
			Str("backend", envCfg.Conversation.Backend).
			Msg("Flight booking API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// newConversationRepository builds the configured history backend and returns
// its cleanup function.
func newConversationRepository(ctx context.Context, cfg AppConfig) (model.ConversationRepository, func(), error) {
	switch cfg.Conversation.Backend {
	case model.BackendRedis, "":
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return nil, nil, err
		}
		logx.Info().Msg("Connected to Redis successfully")
		return repo.NewRedisConversationRepository(rdb, cfg.Conversation.TTL), func() { _ = rdb.Close() }, nil

	case model.BackendPostgres:
		db, err := cfg.Postgres.New(ctx)
		if err != nil {
			return nil, nil, err
		}
		r := repo.NewPostgresConversationRepository(db)
		if err := r.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logx.Info().Msg("Connected to Postgres successfully")
		return r, func() { _ = db.Close() }, nil

	case model.BackendMemory:
		logx.Warn().Msg("Using in-memory conversation store; history is lost on restart")
		return repo.NewMemoryConversationRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown conversation backend %q", cfg.Conversation.Backend)
	}
}
