package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Chative-flight-booking/server/internal/agent/conversations"
	"github.com/Chative-flight-booking/server/internal/agent/extractor"
	"github.com/Chative-flight-booking/server/internal/agent/model"
	"github.com/Chative-flight-booking/server/internal/agent/session"
	"github.com/Chative-flight-booking/server/internal/agent/slots"
	"github.com/Chative-flight-booking/server/internal/safety"
	logx "github.com/Chative-flight-booking/server/pkg/logger"
)

// Booker issues a booking for a merged slot set.
type Booker interface {
	Book(s model.Slots) model.BookingResult
}

// GuardrailError lists the cross-slot rules a booking request broke.
type GuardrailError struct {
	Violations []string
}

func (e *GuardrailError) Error() string {
	return fmt.Sprintf("booking rejected: %s", strings.Join(e.Violations, "; "))
}

// Orchestrator runs one user turn end to end and owns the per-user slot
// session. Message history and slot state are cleared together.
type Orchestrator struct {
	messages  *conversations.MessagesManager
	extractor extractor.Extractor
	sessions  *session.Store
	input     *safety.InputValidator
	booker    Booker
}

func New(
	messages *conversations.MessagesManager,
	ext extractor.Extractor,
	sessions *session.Store,
	input *safety.InputValidator,
	booker Booker,
) *Orchestrator {
	return &Orchestrator{
		messages:  messages,
		extractor: ext,
		sessions:  sessions,
		input:     input,
		booker:    booker,
	}
}

// Handle processes one user message. Extraction failures are returned as-is;
// in that case the user message stays in history but no assistant message is
// saved and the slot session is untouched.
func (o *Orchestrator) Handle(ctx context.Context, userID string, message string) (*model.ChatResponse, error) {
	start := time.Now()

	if err := o.input.Validate(message); err != nil {
		logx.Warn().Err(err).Str("userID", userID).Msg("input rejected")
		return nil, err
	}

	history, err := o.messages.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := o.messages.SaveUser(ctx, userID, message); err != nil {
		return nil, err
	}

	result, err := o.extractor.Extract(ctx, history, message)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Dur("latency", time.Since(start)).Msg("extraction failed")
		return nil, err
	}

	if pii := safety.DetectPII(result.UserMessage); pii.Found {
		logx.Warn().Str("userID", userID).Strs("types", pii.Categories).Msg("PII detected in response")
	}

	merged := o.sessions.Update(userID, func(current model.Slots) model.Slots {
		return slots.Merge(current, result.Slots)
	})

	missing := slots.MissingFor(merged, result.Intent)
	ready := result.Intent == model.IntentBookFlight && len(missing) == 0

	if err := o.messages.SaveAssistant(ctx, userID, result.UserMessage); err != nil {
		return nil, err
	}

	logx.Info().
		Str("userID", userID).
		Str("intent", string(result.Intent)).
		Interface("slots_filled", merged.Filled()).
		Interface("missing_slots", missing).
		Bool("ready_to_book", ready).
		Bool("off_topic", safety.IsOffTopic(result.Intent)).
		Dur("latency", time.Since(start)).
		Msg("message handled")

	return &model.ChatResponse{
		Intent:       result.Intent,
		Slots:        merged,
		MissingSlots: missing,
		UserMessage:  result.UserMessage,
		ReadyToBook:  ready,
	}, nil
}

// Slots returns the user's merged slots, empty for an unknown user.
func (o *Orchestrator) Slots(userID string) model.Slots {
	s, _ := o.sessions.Get(userID)
	return s
}

// Reset drops both the slot session and the message history.
func (o *Orchestrator) Reset(ctx context.Context, userID string) error {
	o.sessions.Delete(userID)
	if err := o.messages.Clear(ctx, userID); err != nil {
		return err
	}
	logx.Info().Str("userID", userID).Msg("conversation reset")
	return nil
}

// Book applies the cross-slot guardrails to the user's merged slots and hands
// them to the booker. A successful booking resets the conversation.
func (o *Orchestrator) Book(ctx context.Context, userID string) (model.BookingResult, error) {
	current := o.Slots(userID)
	if violations := safety.CheckSlots(current); len(violations) > 0 {
		logx.Warn().Str("userID", userID).Strs("violations", violations).Msg("booking blocked by guardrails")
		return model.BookingResult{}, &GuardrailError{Violations: violations}
	}

	res := o.booker.Book(current)
	if !res.Success {
		return res, nil
	}
	if err := o.Reset(ctx, userID); err != nil {
		// The booking stands; a stale history is only logged.
		logx.Error().Err(err).Str("userID", userID).Str("confirmation", res.ConfirmationNumber).Msg("failed to clear conversation after booking")
	}
	return res, nil
}
