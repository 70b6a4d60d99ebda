package slots

import (
	"reflect"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Chative-flight-booking/server/internal/agent/model"
)

func date(y int, m time.Month, d int) *civil.Date {
	return &civil.Date{Year: y, Month: m, Day: d}
}

func fullSlots() model.Slots {
	return model.Slots{
		DepartureCity: model.Ptr("Boston"),
		ArrivalCity:   model.Ptr("New York"),
		DepartureDate: date(2026, time.January, 15),
		ReturnDate:    date(2026, time.January, 20),
		Passengers:    model.Ptr(2),
		Class:         model.Ptr(model.ClassEconomy),
	}
}

func TestMerge_AllAbsentIncomingIsIdentity(t *testing.T) {
	states := []model.Slots{
		{},
		fullSlots(),
		{ArrivalCity: model.Ptr("Paris"), Passengers: model.Ptr(4)},
		{DepartureCity: model.Ptr("")},
	}
	for _, s := range states {
		if got := Merge(s, model.Slots{}); !reflect.DeepEqual(got, s) {
			t.Errorf("Merge(%+v, {}) = %+v", s, got)
		}
	}
}

func TestMerge_RightBiasedSingleField(t *testing.T) {
	prior := fullSlots()
	got := Merge(prior, model.Slots{DepartureCity: model.Ptr("X")})

	want := fullSlots()
	want.DepartureCity = model.Ptr("X")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestMerge_AccumulatesAcrossTurns(t *testing.T) {
	turns := []model.Slots{
		{DepartureCity: model.Ptr("Boston")},
		{ArrivalCity: model.Ptr("Denver")},
		{DepartureDate: date(2026, time.June, 1), Passengers: model.Ptr(3)},
		{ArrivalCity: model.Ptr("Austin")},
		{},
	}
	var s model.Slots
	for _, in := range turns {
		s = Merge(s, in)
	}

	if *s.DepartureCity != "Boston" || *s.ArrivalCity != "Austin" || *s.Passengers != 3 {
		t.Fatalf("unexpected accumulated slots: %+v", s)
	}
	if s.ReturnDate != nil || s.Class != nil {
		t.Fatalf("never-supplied slots must stay absent: %+v", s)
	}
}

func TestMerge_EmptyStringOverridesAbsence(t *testing.T) {
	got := Merge(model.Slots{}, model.Slots{ArrivalCity: model.Ptr("")})
	if got.ArrivalCity == nil || *got.ArrivalCity != "" {
		t.Fatalf("empty string should be a present value, got %v", got.ArrivalCity)
	}
}

func TestMissingFor(t *testing.T) {
	complete := model.Slots{
		DepartureCity: model.Ptr("Boston"),
		ArrivalCity:   model.Ptr("New York"),
		DepartureDate: date(2026, time.January, 15),
		Passengers:    model.Ptr(2),
	}

	cases := []struct {
		name   string
		slots  model.Slots
		intent model.Intent
		want   []model.SlotName
	}{
		{"book_flight complete", complete, model.IntentBookFlight, []model.SlotName{}},
		{"book_flight empty", model.Slots{}, model.IntentBookFlight, []model.SlotName{
			model.SlotDepartureCity, model.SlotArrivalCity, model.SlotDepartureDate, model.SlotPassengers,
		}},
		{"declared order kept", model.Slots{Passengers: model.Ptr(1), ArrivalCity: model.Ptr("Rome")}, model.IntentBookFlight, []model.SlotName{
			model.SlotDepartureCity, model.SlotDepartureDate,
		}},
		{"optional slots ignored", model.Slots{Class: model.Ptr(model.ClassFirst), ReturnDate: date(2026, time.May, 2)}, model.IntentBookFlight, []model.SlotName{
			model.SlotDepartureCity, model.SlotArrivalCity, model.SlotDepartureDate, model.SlotPassengers,
		}},
		{"off_topic empty", model.Slots{}, model.IntentOffTopic, []model.SlotName{}},
		{"off_topic full", fullSlots(), model.IntentOffTopic, []model.SlotName{}},
		{"cancel_booking", model.Slots{}, model.IntentCancelBooking, []model.SlotName{}},
		{"unknown intent", model.Slots{}, model.Intent("book_hotel"), []model.SlotName{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MissingFor(tc.slots, tc.intent)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("MissingFor = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsReady(t *testing.T) {
	complete := model.Slots{
		DepartureCity: model.Ptr("Boston"),
		ArrivalCity:   model.Ptr("New York"),
		DepartureDate: date(2026, time.January, 15),
		Passengers:    model.Ptr(2),
	}
	if !IsReady(complete, model.IntentBookFlight) {
		t.Error("complete book_flight should be ready")
	}
	if IsReady(complete, model.IntentProvideInfo) {
		t.Error("only book_flight can be ready")
	}
	partial := complete
	partial.Passengers = nil
	if IsReady(partial, model.IntentBookFlight) {
		t.Error("missing passengers should not be ready")
	}
}
