package extraction

import (
	"fmt"
	"strings"
)

// Kind tags each way an extractor reply can be rejected.
type Kind string

const (
	KindEmptyResponse    Kind = "empty_or_non_text_response"
	KindMalformedPayload Kind = "malformed_payload"
	KindMissingField     Kind = "missing_field"
	KindInvalidIntent    Kind = "invalid_intent"
	KindSlotValidation   Kind = "slot_validation"
	KindMissingSlotsType Kind = "missing_slots_type"
	KindUserMessageType  Kind = "user_message_type"
)

// Slot constraints reported by KindSlotValidation errors.
const (
	ConstraintObject   = "object"
	ConstraintPresent  = "present"
	ConstraintType     = "type"
	ConstraintFormat   = "format"
	ConstraintCalendar = "calendar"
	ConstraintNotPast  = "not_past"
	ConstraintInteger  = "integer"
	ConstraintRange    = "range"
	ConstraintEnum     = "enum"
)

// Error is the single error type produced by the validation pipeline. Match
// the kind with errors.Is against the Err* sentinels and read the details
// with errors.As.
type Error struct {
	Kind Kind
	// Field is the offending field (top-level or slot name).
	Field string
	// Fields lists every absent top-level field for KindMissingField.
	Fields []string
	// Value is a printable rendering of the offending value.
	Value string
	// Constraint is set for KindSlotValidation.
	Constraint string
	Msg        string
	Err        error
}

var (
	ErrEmptyResponse    = &Error{Kind: KindEmptyResponse}
	ErrMalformedPayload = &Error{Kind: KindMalformedPayload}
	ErrMissingField     = &Error{Kind: KindMissingField}
	ErrInvalidIntent    = &Error{Kind: KindInvalidIntent}
	ErrSlotValidation   = &Error{Kind: KindSlotValidation}
	ErrMissingSlotsType = &Error{Kind: KindMissingSlotsType}
	ErrUserMessageType  = &Error{Kind: KindUserMessageType}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	switch {
	case e.Kind == KindMissingField && len(e.Fields) > 0:
		b.WriteString(": missing required fields: ")
		b.WriteString(strings.Join(e.Fields, ", "))
	case e.Field != "":
		b.WriteString(": ")
		b.WriteString(e.Field)
		if e.Constraint != "" {
			b.WriteString(" (" + e.Constraint + ")")
		}
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind, so errors.Is(err, ErrSlotValidation) holds for every
// slot failure regardless of field.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func slotError(slot, constraint, format string, args ...any) *Error {
	return &Error{
		Kind:       KindSlotValidation,
		Field:      slot,
		Constraint: constraint,
		Msg:        fmt.Sprintf(format, args...),
	}
}

func render(v any) string {
	switch vv := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", vv)
	default:
		return fmt.Sprintf("%v", vv)
	}
}
