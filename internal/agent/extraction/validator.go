package extraction

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Chative-flight-booking/server/internal/agent/model"
	logx "github.com/Chative-flight-booking/server/pkg/logger"
)

// Top-level fields every extractor reply must carry, in reporting order.
const (
	FieldIntent       = "intent"
	FieldSlots        = "slots"
	FieldMissingSlots = "missing_slots"
	FieldUserMessage  = "user_message"
)

var requiredFields = []string{FieldIntent, FieldSlots, FieldMissingSlots, FieldUserMessage}

const (
	maxContentLen = 64 * 1024 // replies are a few hundred bytes
	fence         = "```"
)

// Validator turns raw extractor text into an ExtractionResult. Past-date
// checks are evaluated against now() at validation time.
type Validator struct {
	now func() time.Time
}

// NewValidator returns a Validator using now as its clock; nil means time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{now: now}
}

// Validate parses and strictly validates content. Any violation aborts with
// an *Error; no partial result is ever returned.
func (v *Validator) Validate(content string) (*model.ExtractionResult, error) {
	return ParseExtraction(content, v.now())
}

// ParseExtraction runs both phases: a generic JSON parse of the
// fence-stripped text, then a field-by-field schema conversion.
func ParseExtraction(content string, today time.Time) (res *model.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "extraction_validator").Msgf("panic recovered: %v", r)
			res = nil
			err = &Error{Kind: KindMalformedPayload, Msg: "validator panic"}
		}
	}()

	obj, err := decodeObject(content)
	if err != nil {
		return nil, err
	}
	return convert(obj, today)
}

// decodeObject is the structural phase.
func decodeObject(content string) (map[string]any, error) {
	if len(content) > maxContentLen {
		return nil, &Error{Kind: KindMalformedPayload, Msg: fmt.Sprintf("payload exceeds %d bytes", maxContentLen)}
	}

	cleaned := StripCodeFences(content)
	var parsed any
	if err := sonic.UnmarshalString(cleaned, &parsed); err != nil {
		return nil, &Error{Kind: KindMalformedPayload, Msg: "invalid JSON", Err: err}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, &Error{Kind: KindMalformedPayload, Msg: fmt.Sprintf("payload must be an object, got %s", jsonType(parsed))}
	}
	return obj, nil
}

// convert is the schema phase.
func convert(obj map[string]any, today time.Time) (*model.ExtractionResult, error) {
	var missing []string
	for _, f := range requiredFields {
		if _, ok := obj[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &Error{Kind: KindMissingField, Field: missing[0], Fields: missing}
	}

	intent, err := validateIntent(obj[FieldIntent])
	if err != nil {
		return nil, err
	}
	slots, err := ValidateSlots(obj[FieldSlots], today)
	if err != nil {
		return nil, err
	}
	missingSlots, err := validateMissingSlots(obj[FieldMissingSlots])
	if err != nil {
		return nil, err
	}
	msg, ok := obj[FieldUserMessage].(string)
	if !ok {
		return nil, &Error{
			Kind:  KindUserMessageType,
			Field: FieldUserMessage,
			Value: render(obj[FieldUserMessage]),
			Msg:   "user_message must be a string",
		}
	}

	return &model.ExtractionResult{
		Intent:       intent,
		Slots:        slots,
		MissingSlots: missingSlots,
		UserMessage:  msg,
	}, nil
}

func validateIntent(v any) (model.Intent, error) {
	s, ok := v.(string)
	if !ok {
		return "", &Error{Kind: KindInvalidIntent, Field: FieldIntent, Value: render(v), Msg: "intent must be a string"}
	}
	intent, ok := model.ParseIntent(s)
	if !ok {
		return "", &Error{Kind: KindInvalidIntent, Field: FieldIntent, Value: s, Msg: fmt.Sprintf("invalid intent: %s", s)}
	}
	return intent, nil
}

// validateMissingSlots passes names through without checking them against
// the schema; the list is advisory.
func validateMissingSlots(v any) ([]string, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, &Error{Kind: KindMissingSlotsType, Field: FieldMissingSlots, Value: render(v), Msg: "missing_slots must be an array"}
	}
	out := make([]string, 0, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, &Error{
				Kind:  KindMissingSlotsType,
				Field: FieldMissingSlots,
				Value: render(item),
				Msg:   fmt.Sprintf("missing_slots[%d] must be a string", i),
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// StripCodeFences removes a leading ``` or ```json line and a trailing ```
// that some models wrap around their JSON.
func StripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, fence) {
		s = strings.TrimPrefix(s, fence)
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
		s = strings.TrimLeft(s, " \t")
		s = strings.TrimPrefix(s, "\r")
		s = strings.TrimPrefix(s, "\n")
	}
	if strings.HasSuffix(s, fence) {
		s = strings.TrimSuffix(s, fence)
	}
	return strings.TrimSpace(s)
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
