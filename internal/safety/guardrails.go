package safety

import "github.com/Chative-flight-booking/server/internal/agent/model"

// Guardrail violation messages.
const (
	MsgSameCity           = "Departure and arrival cities cannot be the same"
	MsgReturnBeforeDepart = "Return date must be after departure date"
)

func IsOffTopic(intent model.Intent) bool {
	return intent == model.IntentOffTopic
}

// CheckSlots runs cross-slot business rules and returns every violation.
// Rules whose slots are not filled are skipped.
func CheckSlots(s model.Slots) []string {
	errs := []string{}
	if s.DepartureCity != nil && s.ArrivalCity != nil && *s.DepartureCity != "" && *s.DepartureCity == *s.ArrivalCity {
		errs = append(errs, MsgSameCity)
	}
	if s.DepartureDate != nil && s.ReturnDate != nil && s.ReturnDate.Before(*s.DepartureDate) {
		errs = append(errs, MsgReturnBeforeDepart)
	}
	return errs
}
