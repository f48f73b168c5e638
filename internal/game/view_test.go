package game

import (
	"reflect"
	"testing"

	"github.com/cardroom/holdem/internal/deck"
)

func sampleView() TableView {
	return TableView{
		TableID: "tbl_test",
		Stage:   "flop",
		Seats: []*PlayerView{
			{ID: "p1", Name: "Alice", HasCards: true, HoleCards: deck.MustParseCards("As Kd")},
			nil,
			{ID: "p2", Name: "Bob", HasCards: true, HoleCards: deck.MustParseCards("Qh Jc")},
		},
		Community: deck.MustParseCards("2c 7d 9h"),
	}
}

func TestSanitizeHidesOtherHoleCards(t *testing.T) {
	out := Sanitize(sampleView(), "p1")

	if out.Seats[0].HoleCards == nil {
		t.Error("Observer keeps their own hole cards")
	}
	if out.Seats[2].HoleCards != nil {
		t.Error("Other players' hole cards must be hidden")
	}
	if !out.Seats[2].HasCards {
		t.Error("HasCards survives sanitization")
	}
	if len(out.Community) != 3 {
		t.Error("Community cards are public")
	}
}

func TestSanitizeUnknownObserverSeesNothing(t *testing.T) {
	out := Sanitize(sampleView(), "spectator")

	for i, pv := range out.Seats {
		if pv == nil {
			continue
		}
		if pv.HoleCards != nil {
			t.Errorf("Seat %d hole cards visible to spectator", i)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	once := Sanitize(sampleView(), "p2")
	twice := Sanitize(once, "p2")

	if !reflect.DeepEqual(once, twice) {
		t.Error("Sanitizing a sanitized view must be a no-op")
	}
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	v := sampleView()
	_ = Sanitize(v, "p1")

	if v.Seats[2].HoleCards == nil {
		t.Error("Sanitize must not mutate its input")
	}
}
