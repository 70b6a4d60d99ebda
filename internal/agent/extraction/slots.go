package extraction

import (
	"math"
	"regexp"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Chative-flight-booking/server/internal/agent/model"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateSlots converts the raw slots value. Every one of the six keys must
// be present; null is always accepted; extra keys are ignored.
func ValidateSlots(v any, today time.Time) (model.Slots, error) {
	var out model.Slots
	obj, ok := v.(map[string]any)
	if !ok {
		return out, slotError(FieldSlots, ConstraintObject, "slots must be an object, got %s", jsonType(v))
	}

	for _, name := range model.SlotNames {
		if _, ok := obj[string(name)]; !ok {
			return model.Slots{}, slotError(string(name), ConstraintPresent, "slot key is missing")
		}
	}

	var err error
	if out.DepartureCity, err = validateCity(model.SlotDepartureCity, obj); err != nil {
		return model.Slots{}, err
	}
	if out.ArrivalCity, err = validateCity(model.SlotArrivalCity, obj); err != nil {
		return model.Slots{}, err
	}
	todayDate := civil.DateOf(today)
	if out.DepartureDate, err = validateDate(model.SlotDepartureDate, obj, todayDate); err != nil {
		return model.Slots{}, err
	}
	if out.ReturnDate, err = validateDate(model.SlotReturnDate, obj, todayDate); err != nil {
		return model.Slots{}, err
	}
	if out.Passengers, err = validatePassengers(obj); err != nil {
		return model.Slots{}, err
	}
	if out.Class, err = validateClass(obj); err != nil {
		return model.Slots{}, err
	}
	return out, nil
}

func validateCity(name model.SlotName, obj map[string]any) (*string, error) {
	raw := obj[string(name)]
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, withValue(slotError(string(name), ConstraintType, "city must be a string or null"), raw)
	}
	return &s, nil
}

func validateDate(name model.SlotName, obj map[string]any, today civil.Date) (*civil.Date, error) {
	raw := obj[string(name)]
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, withValue(slotError(string(name), ConstraintType, "date must be a string or null"), raw)
	}
	if !datePattern.MatchString(s) {
		return nil, withValue(slotError(string(name), ConstraintFormat, "date must be in YYYY-MM-DD format"), raw)
	}
	d, err := civil.ParseDate(s)
	if err != nil || !d.IsValid() {
		e := withValue(slotError(string(name), ConstraintCalendar, "date is not a real calendar date"), raw)
		e.Err = err
		return nil, e
	}
	if d.Before(today) {
		return nil, withValue(slotError(string(name), ConstraintNotPast, "date cannot be before %s", today), raw)
	}
	return &d, nil
}

func validatePassengers(obj map[string]any) (*int, error) {
	name := string(model.SlotPassengers)
	raw := obj[name]
	if raw == nil {
		return nil, nil
	}
	f, ok := raw.(float64)
	if !ok {
		return nil, withValue(slotError(name, ConstraintType, "passengers must be a number or null"), raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, withValue(slotError(name, ConstraintInteger, "passengers must be an integer"), raw)
	}
	if f < model.MinPassengers || f > model.MaxPassengers {
		return nil, withValue(slotError(name, ConstraintRange, "passengers must be between %d and %d", model.MinPassengers, model.MaxPassengers), raw)
	}
	n := int(f)
	return &n, nil
}

func validateClass(obj map[string]any) (*model.FlightClass, error) {
	name := string(model.SlotClass)
	raw := obj[name]
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, withValue(slotError(name, ConstraintType, "class must be a string or null"), raw)
	}
	c, ok := model.ParseFlightClass(s)
	if !ok {
		return nil, withValue(slotError(name, ConstraintEnum, "class must be one of %v", model.FlightClasses), raw)
	}
	return &c, nil
}

func withValue(e *Error, v any) *Error {
	e.Value = render(v)
	return e
}
