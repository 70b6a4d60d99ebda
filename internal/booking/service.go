package booking

import (
	"github.com/google/uuid"

	"github.com/Chative-flight-booking/server/internal/agent/model"
	"github.com/Chative-flight-booking/server/internal/agent/slots"
	logx "github.com/Chative-flight-booking/server/pkg/logger"
)

const (
	confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	confirmationLength   = 6

	MsgMissingInformation = "Missing required booking information"
)

// Service issues confirmations for fully specified flight requests. It does
// not talk to any airline.
type Service struct {
	newCode func() string
}

func NewService() *Service {
	return &Service{newCode: confirmationCode}
}

// Book re-checks the required slots before issuing a confirmation number.
func (s *Service) Book(sl model.Slots) model.BookingResult {
	if !slots.IsReady(sl, model.IntentBookFlight) {
		logx.Warn().
			Interface("missing", slots.MissingFor(sl, model.IntentBookFlight)).
			Msg("booking rejected: missing slots")
		return model.BookingResult{Error: MsgMissingInformation}
	}
	code := s.newCode()
	logx.Info().Str("confirmation", code).Msg("flight booked")
	return model.BookingResult{Success: true, ConfirmationNumber: code}
}

func confirmationCode() string {
	return codeFrom(uuid.New)
}

// codeFrom draws characters from the random bytes of successive v4 UUIDs.
// Bytes 6 and 8 carry version and variant bits and are skipped; bytes at or
// above the largest multiple of the alphabet size are rejected so every
// character is equally likely.
func codeFrom(next func() uuid.UUID) string {
	limit := 256 - 256%len(confirmationAlphabet)
	b := make([]byte, 0, confirmationLength)
	for len(b) < confirmationLength {
		id := next()
		for i, x := range id {
			if i == 6 || i == 8 || int(x) >= limit {
				continue
			}
			b = append(b, confirmationAlphabet[int(x)%len(confirmationAlphabet)])
			if len(b) == confirmationLength {
				break
			}
		}
	}
	return string(b)
}
