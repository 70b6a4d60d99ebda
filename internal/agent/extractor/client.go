package extractor

import (
	"context"
	"strings"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-flight-booking/server/internal/agent/extraction"
	"github.com/Chative-flight-booking/server/internal/agent/model"
	"github.com/Chative-flight-booking/server/internal/agent/prompts"
	logx "github.com/Chative-flight-booking/server/pkg/logger"
)

const DefaultCallTimeout = 30 * time.Second

// Extractor turns the conversation so far plus a new user message into a
// validated ExtractionResult.
type Extractor interface {
	Extract(ctx context.Context, history []*schema.Message, message string) (*model.ExtractionResult, error)
}

// Client calls the language service with a bounded retry loop. It keeps no
// per-user state.
type Client struct {
	chatModel   einomodel.BaseChatModel
	modelName   string
	retry       RetryPolicy
	callTimeout time.Duration
	wait        WaitFunc
	now         func() time.Time
	handlers    []einocb.Handler
	validator   *extraction.Validator
}

type Option func(*Client)

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithCallTimeout bounds each individual call; 0 disables the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Client) { c.callTimeout = d }
}

func WithWaitFunc(w WaitFunc) Option {
	return func(c *Client) { c.wait = w }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithModelName is used for cost lookup and callback run info.
func WithModelName(name string) Option {
	return func(c *Client) { c.modelName = name }
}

func WithCallbacks(handlers ...einocb.Handler) Option {
	return func(c *Client) { c.handlers = append(c.handlers, handlers...) }
}

func NewClient(chatModel einomodel.BaseChatModel, opts ...Option) *Client {
	c := &Client{
		chatModel:   chatModel,
		modelName:   "extractor",
		retry:       DefaultRetryPolicy(),
		callTimeout: DefaultCallTimeout,
		wait:        sleepContext,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retry.MaxAttempts < 1 {
		c.retry.MaxAttempts = 1
	}
	c.validator = extraction.NewValidator(c.now)
	return c
}

// Extract sends history + message under the extraction system prompt and
// validates the reply. Call failures are retried; validation failures are not.
func (c *Client) Extract(ctx context.Context, history []*schema.Message, message string) (*model.ExtractionResult, error) {
	system, err := prompts.RenderExtractionSystem(c.withCallbacks(ctx, "extraction_prompt", components.ComponentOfPrompt), c.now())
	if err != nil {
		return nil, err
	}

	messages := BuildMessages(system, history, message)
	resp, err := c.callWithRetry(c.withCallbacks(ctx, c.modelName, components.ComponentOfChatModel), messages)
	if err != nil {
		return nil, err
	}
	c.logUsage(resp)

	text, err := FirstText(resp)
	if err != nil {
		return nil, err
	}
	return c.validator.Validate(text)
}

// callWithRetry returns the last call error unchanged once attempts run out.
func (c *Client) callWithRetry(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		resp, err := c.call(ctx, messages)
		if err == nil {
			if attempt > 1 {
				logx.Info().Int("attempt", attempt).Msg("extractor call succeeded after retry")
			}
			return resp, nil
		}
		lastErr = err

		if attempt == c.retry.MaxAttempts {
			break
		}
		delay := c.retry.Delay(attempt)
		logx.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", c.retry.MaxAttempts).
			Dur("backoff", delay).
			Msg("extractor call failed, retrying")
		if werr := c.wait(ctx, delay); werr != nil {
			logx.Warn().Err(werr).Int("attempt", attempt).Msg("extractor retry wait interrupted")
			return nil, werr
		}
	}

	logx.Error().Err(lastErr).Int("attempts", c.retry.MaxAttempts).Msg("extractor call failed, attempts exhausted")
	return nil, lastErr
}

func (c *Client) call(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}
	return c.chatModel.Generate(ctx, messages)
}

func (c *Client) withCallbacks(ctx context.Context, name string, component components.Component) context.Context {
	if len(c.handlers) == 0 {
		return ctx
	}
	return einocb.InitCallbacks(ctx, &einocb.RunInfo{
		Name:      name,
		Type:      "FlightExtractor",
		Component: component,
	}, c.handlers...)
}

func (c *Client) logUsage(resp *schema.Message) {
	if resp == nil || resp.ResponseMeta == nil || resp.ResponseMeta.Usage == nil {
		return
	}
	usage := resp.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(c.modelName))
	logx.Debug().
		Str("model", c.modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}

// BuildMessages assembles system prompt, prior user/assistant turns and the
// new user message. History entries with other roles are dropped.
func BuildMessages(system string, history []*schema.Message, message string) []*schema.Message {
	out := make([]*schema.Message, 0, len(history)+2)
	out = append(out, schema.SystemMessage(system))
	for _, m := range history {
		if m == nil {
			continue
		}
		switch m.Role {
		case schema.User:
			out = append(out, schema.UserMessage(m.Content))
		case schema.Assistant:
			out = append(out, schema.AssistantMessage(m.Content, nil))
		}
	}
	return append(out, schema.UserMessage(message))
}

// FirstText returns the first text segment of a reply.
func FirstText(resp *schema.Message) (string, error) {
	if resp == nil {
		return "", &extraction.Error{Kind: extraction.KindEmptyResponse, Msg: "no reply"}
	}
	if len(resp.MultiContent) > 0 {
		part := resp.MultiContent[0]
		if part.Type != schema.ChatMessagePartTypeText {
			return "", &extraction.Error{Kind: extraction.KindEmptyResponse, Msg: "first content segment is " + string(part.Type)}
		}
		if strings.TrimSpace(part.Text) == "" {
			return "", &extraction.Error{Kind: extraction.KindEmptyResponse, Msg: "first text segment is empty"}
		}
		return part.Text, nil
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", &extraction.Error{Kind: extraction.KindEmptyResponse, Msg: "reply has no content"}
	}
	return resp.Content, nil
}

var _ Extractor = (*Client)(nil)
