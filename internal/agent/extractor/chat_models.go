package extractor

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/Chative-flight-booking/server/internal/agent/model"
	logx "github.com/Chative-flight-booking/server/pkg/logger"
)

// NewChatModel creates the extraction chat model for the configured provider.
func NewChatModel(ctx context.Context, cfg model.ExtractorConfig) (einomodel.BaseChatModel, error) {
	switch cfg.Provider {
	case model.ProviderGemini, "":
		return newGeminiModel(ctx, cfg)
	case model.ProviderOpenAI:
		return newOpenAIModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown extractor provider %q", cfg.Provider)
	}
}

func newGeminiModel(ctx context.Context, cfg model.ExtractorConfig) (einomodel.BaseChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(cfg.ThinkingBudget),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini extraction model")
		return nil, fmt.Errorf("error creating Gemini extraction model: %w", err)
	}
	return cm, nil
}

func newOpenAIModel(ctx context.Context, cfg model.ExtractorConfig) (einomodel.BaseChatModel, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating OpenAI extraction model")
		return nil, fmt.Errorf("error creating OpenAI extraction model: %w", err)
	}
	return cm, nil
}
