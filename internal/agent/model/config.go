package model

import "time"

// ================ Config ================

// Extractor providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Conversation store backends.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type ExtractorConfig struct {
	Provider       string        `envconfig:"EXTRACTOR_PROVIDER" default:"gemini"`
	APIKey         string        `envconfig:"EXTRACTOR_API_KEY" required:"true"`
	BaseURL        string        `envconfig:"EXTRACTOR_BASE_URL"`
	Model          string        `envconfig:"EXTRACTOR_MODEL" default:"gemini-2.5-flash"`
	MaxTokens      int           `envconfig:"EXTRACTOR_MAX_TOKENS" default:"1024"`
	Temperature    float32       `envconfig:"EXTRACTOR_TEMPERATURE" default:"0.1"`
	ThinkingBudget int32         `envconfig:"EXTRACTOR_THINKING_BUDGET" default:"0"`
	RetryBaseDelay time.Duration `envconfig:"EXTRACTOR_RETRY_BASE_DELAY" default:"1s"`
	CallTimeout    time.Duration `envconfig:"EXTRACTOR_CALL_TIMEOUT" default:"30s"`
}

type ConversationConfig struct {
	Backend    string        `envconfig:"CONVERSATION_BACKEND" default:"redis"`
	TTL        time.Duration `envconfig:"CONVERSATION_TTL" default:"24h"`
	MaxHistory int           `envconfig:"CONVERSATION_MAX_HISTORY" default:"0"`
}

type SafetyConfig struct {
	MaxInputLength int `envconfig:"SAFETY_MAX_INPUT_LENGTH" default:"500"`
}

type ServerConfig struct {
	Port               string   `envconfig:"SERVER_PORT" default:"3000"`
	RateLimitPerMinute int      `envconfig:"SERVER_RATE_LIMIT_PER_MINUTE" default:"60"`
	RateLimitBurst     int      `envconfig:"SERVER_RATE_LIMIT_BURST" default:"10"`
	AllowedOrigins     []string `envconfig:"SERVER_ALLOWED_ORIGINS" default:"*"`
}
