package model

import (
	"cloud.google.com/go/civil"
)

// Intent is the coarse classification of what the user currently wants.
type Intent string

const (
	IntentBookFlight    Intent = "book_flight"
	IntentCancelBooking Intent = "cancel_booking"
	IntentModifyBooking Intent = "modify_booking"
	IntentCheckStatus   Intent = "check_status"
	IntentProvideInfo   Intent = "provide_info"
	IntentOffTopic      Intent = "off_topic"
)

// Intents lists the closed set of valid intents in declaration order.
var Intents = []Intent{
	IntentBookFlight,
	IntentCancelBooking,
	IntentModifyBooking,
	IntentCheckStatus,
	IntentProvideInfo,
	IntentOffTopic,
}

// ParseIntent reports whether s names a known intent.
func ParseIntent(s string) (Intent, bool) {
	for _, it := range Intents {
		if string(it) == s {
			return it, true
		}
	}
	return "", false
}

// FlightClass is the cabin class slot domain.
type FlightClass string

const (
	ClassEconomy  FlightClass = "economy"
	ClassBusiness FlightClass = "business"
	ClassFirst    FlightClass = "first"
)

var FlightClasses = []FlightClass{ClassEconomy, ClassBusiness, ClassFirst}

// ParseFlightClass reports whether s names a known cabin class.
func ParseFlightClass(s string) (FlightClass, bool) {
	for _, c := range FlightClasses {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// SlotName is the wire name of one slot field.
type SlotName string

const (
	SlotDepartureCity SlotName = "departure_city"
	SlotArrivalCity   SlotName = "arrival_city"
	SlotDepartureDate SlotName = "departure_date"
	SlotReturnDate    SlotName = "return_date"
	SlotPassengers    SlotName = "passengers"
	SlotClass         SlotName = "class"
)

// SlotNames lists every slot field in schema order.
var SlotNames = []SlotName{
	SlotDepartureCity,
	SlotArrivalCity,
	SlotDepartureDate,
	SlotReturnDate,
	SlotPassengers,
	SlotClass,
}

// Passenger count domain, inclusive.
const (
	MinPassengers = 1
	MaxPassengers = 9
)

// Slots is the fixed-shape booking record. A nil field is absent and carries
// no information; an empty string city is a present value.
type Slots struct {
	DepartureCity *string      `json:"departure_city"`
	ArrivalCity   *string      `json:"arrival_city"`
	DepartureDate *civil.Date  `json:"departure_date"`
	ReturnDate    *civil.Date  `json:"return_date"`
	Passengers    *int         `json:"passengers"`
	Class         *FlightClass `json:"class"`
}

// Has reports whether the named slot holds a value.
func (s Slots) Has(name SlotName) bool {
	switch name {
	case SlotDepartureCity:
		return s.DepartureCity != nil
	case SlotArrivalCity:
		return s.ArrivalCity != nil
	case SlotDepartureDate:
		return s.DepartureDate != nil
	case SlotReturnDate:
		return s.ReturnDate != nil
	case SlotPassengers:
		return s.Passengers != nil
	case SlotClass:
		return s.Class != nil
	}
	return false
}

// Filled returns the names of present slots in schema order.
func (s Slots) Filled() []SlotName {
	out := make([]SlotName, 0, len(SlotNames))
	for _, n := range SlotNames {
		if s.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// IsEmpty reports whether every slot is absent.
func (s Slots) IsEmpty() bool {
	return len(s.Filled()) == 0
}

// RequiredSlots maps each intent to the ordered slots it needs before it can proceed.
var RequiredSlots = map[Intent][]SlotName{
	IntentBookFlight:    {SlotDepartureCity, SlotArrivalCity, SlotDepartureDate, SlotPassengers},
	IntentCancelBooking: {},
	IntentModifyBooking: {},
	IntentCheckStatus:   {},
	IntentProvideInfo:   {},
	IntentOffTopic:      {},
}

func Ptr[T any](v T) *T {
	return &v
}
