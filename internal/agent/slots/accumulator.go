package slots

import (
	"github.com/Chative-flight-booking/server/internal/agent/model"
)

// Merge overlays incoming on existing field by field. A present incoming
// value wins; an absent one never clears what is already there.
func Merge(existing, incoming model.Slots) model.Slots {
	return model.Slots{
		DepartureCity: pick(incoming.DepartureCity, existing.DepartureCity),
		ArrivalCity:   pick(incoming.ArrivalCity, existing.ArrivalCity),
		DepartureDate: pick(incoming.DepartureDate, existing.DepartureDate),
		ReturnDate:    pick(incoming.ReturnDate, existing.ReturnDate),
		Passengers:    pick(incoming.Passengers, existing.Passengers),
		Class:         pick(incoming.Class, existing.Class),
	}
}

func pick[T any](incoming, existing *T) *T {
	if incoming != nil {
		return incoming
	}
	return existing
}

// MissingFor returns the intent's required slots that are still absent, in
// the required list's declared order. Never nil.
func MissingFor(s model.Slots, intent model.Intent) []model.SlotName {
	required := model.RequiredSlots[intent]
	missing := make([]model.SlotName, 0, len(required))
	for _, name := range required {
		if !s.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsReady reports whether a booking can proceed: the intent is book_flight
// and nothing it requires is missing.
func IsReady(s model.Slots, intent model.Intent) bool {
	return intent == model.IntentBookFlight && len(MissingFor(s, intent)) == 0
}
