package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-flight-booking/server/internal/agent/model"
)

//go:embed template/extraction_prompt.txt
var extractionSystemPrompt string

// RenderExtractionSystem renders the extraction system prompt for the given
// moment via the Eino prompt component, which also fires prompt callbacks.
func RenderExtractionSystem(ctx context.Context, now time.Time) (string, error) {
	today := civil.DateOf(now)
	example := today.AddDays(-1)

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(extractionSystemPrompt),
	)
	vars := map[string]any{
		"CurrentDate":     today.String(),
		"CurrentYear":     today.Year,
		"NextYear":        today.Year + 1,
		"ExampleMonthDay": fmt.Sprintf("%s %d", example.Month, example.Day),
		"ExampleResolved": ResolveMonthDay(today, example.Month, example.Day).String(),
		"IntentList":      quotedAlternatives(model.Intents),
		"ClassList":       quotedAlternatives(model.FlightClasses),
		"RequiredSlots":   joinNames(model.RequiredSlots[model.IntentBookFlight]),
		"MinPassengers":   model.MinPassengers,
		"MaxPassengers":   model.MaxPassengers,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("extraction prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("extraction prompt render: empty result")
	}
	return msgs[0].Content, nil
}

// ResolveMonthDay returns the soonest occurrence of month/day on or after
// today, rolling into later years when this year's date has passed or does
// not exist (Feb 29).
func ResolveMonthDay(today civil.Date, month time.Month, day int) civil.Date {
	for year := today.Year; year <= today.Year+8; year++ {
		d := civil.Date{Year: year, Month: month, Day: day}
		if d.IsValid() && !d.Before(today) {
			return d
		}
	}
	return civil.Date{}
}

func quotedAlternatives[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = `"` + string(v) + `"`
	}
	return strings.Join(parts, " | ")
}

func joinNames(names []model.SlotName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
