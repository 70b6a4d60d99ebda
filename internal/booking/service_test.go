package booking

import (
	"regexp"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/Chative-flight-booking/server/internal/agent/model"
	logx "github.com/Chative-flight-booking/server/pkg/logger"
)

var codeRe = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func readySlots() model.Slots {
	return model.Slots{
		DepartureCity: model.Ptr("Boston"),
		ArrivalCity:   model.Ptr("Paris"),
		DepartureDate: &civil.Date{Year: 2026, Month: time.June, Day: 1},
		Passengers:    model.Ptr(2),
	}
}

func TestService_Book(t *testing.T) {
	logx.Disable()
	svc := NewService()

	res := svc.Book(readySlots())
	if !res.Success || res.Error != "" {
		t.Fatalf("result = %+v", res)
	}
	if !codeRe.MatchString(res.ConfirmationNumber) {
		t.Errorf("confirmation %q does not match %s", res.ConfirmationNumber, codeRe)
	}
}

func TestService_BookMissingSlots(t *testing.T) {
	logx.Disable()
	svc := NewService()

	s := readySlots()
	s.Passengers = nil
	res := svc.Book(s)
	if res.Success || res.ConfirmationNumber != "" || res.Error != MsgMissingInformation {
		t.Fatalf("result = %+v", res)
	}
}

func TestConfirmationCode_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		c := confirmationCode()
		if !codeRe.MatchString(c) {
			t.Fatalf("bad code %q", c)
		}
		seen[c] = true
	}
	if len(seen) < 190 {
		t.Errorf("only %d distinct codes out of 200", len(seen))
	}
}

func TestCodeFrom_RejectsBiasedBytes(t *testing.T) {
	// 252 is the first byte value that would over-weight A..D; bytes 6 and 8
	// hold fixed version/variant bits.
	first := uuid.UUID{252, 255, 0, 253, 1, 254, 2, 3, 4, 255, 255, 255, 255, 255, 255, 255}
	second := uuid.UUID{35, 36, 71, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	ids := []uuid.UUID{first, second}
	next := func() uuid.UUID {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	// first yields A (0), B (1), D (3); the 2 at index 6 and the 4 at
	// index 8 are skipped. second supplies 9 (35), A (36), 9 (71).
	if got := codeFrom(next); got != "ABD9A9" {
		t.Errorf("codeFrom = %q, want %q", got, "ABD9A9")
	}
}

func TestCodeFrom_EveryByteMapsUniformly(t *testing.T) {
	counts := map[byte]int{}
	for v := 0; v < 256; v++ {
		id := uuid.UUID{}
		for i := range id {
			id[i] = byte(v)
		}
		calls := 0
		next := func() uuid.UUID {
			calls++
			if calls > 1 {
				return uuid.UUID{} // all zeros -> "A"
			}
			return id
		}
		c := codeFrom(next)
		if v < 252 {
			counts[c[0]]++
		}
	}
	for ch, n := range counts {
		if n != 7 {
			t.Errorf("character %q reachable from %d byte values, want 7", ch, n)
		}
	}
	if len(counts) != len(confirmationAlphabet) {
		t.Errorf("%d distinct characters, want %d", len(counts), len(confirmationAlphabet))
	}
}
