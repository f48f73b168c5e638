package deck

import (
	"encoding/json"
	"testing"
)

func TestParseCardRoundTrip(t *testing.T) {
	codes := []string{"As", "Kh", "Qd", "Jc", "Th", "9s", "2c"}
	for _, code := range codes {
		c, err := ParseCard(code)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", code, err)
		}
		if c.Code() != code {
			t.Errorf("Round trip %q -> %q", code, c.Code())
		}
	}
}

func TestParseCardInvalid(t *testing.T) {
	for _, code := range []string{"", "A", "Asx", "Xh", "Az", "1h"} {
		if _, err := ParseCard(code); err == nil {
			t.Errorf("ParseCard(%q): expected error", code)
		}
	}
}

func TestMustParseCards(t *testing.T) {
	cards := MustParseCards("As Kh Qd")
	if len(cards) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(cards))
	}
	if cards[0] != NewCard(Ace, Spades) {
		t.Errorf("Expected As, got %s", cards[0].Code())
	}
}

func TestCardJSON(t *testing.T) {
	c := NewCard(Ten, Hearts)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"Th"` {
		t.Errorf("Expected \"Th\", got %s", data)
	}

	var back Card
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != c {
		t.Errorf("Round trip mismatch: %s", back.Code())
	}
}

func TestRankString(t *testing.T) {
	cases := map[Rank]string{
		Two: "2", Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K", Ace: "A",
	}
	for rank, want := range cases {
		if rank.String() != want {
			t.Errorf("Rank %d: expected %q, got %q", rank, want, rank.String())
		}
	}
}
