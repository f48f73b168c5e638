package evaluator

import (
	"testing"

	"github.com/cardroom/holdem/internal/deck"
)

func evalCodes(t *testing.T, codes string) HandValue {
	t.Helper()
	return Evaluate(deck.MustParseCards(codes))
}

func TestEvaluateCategories(t *testing.T) {
	cases := []struct {
		name     string
		cards    string
		category Category
	}{
		{"high card", "As Kd 9h 7c 5s 3d 2c", HighCard},
		{"one pair", "As Ad 9h 7c 5s 3d 2c", Pair},
		{"two pair", "As Ad 9h 9c 5s 3d 2c", TwoPair},
		{"three of a kind", "As Ad Ah 9c 5s 3d 2c", ThreeOfAKind},
		{"straight", "9s 8d 7h 6c 5s Kd 2c", Straight},
		{"flush", "As Ks 9s 7s 5s 3d 2c", Flush},
		{"full house", "As Ad Ah 9c 9s 3d 2c", FullHouse},
		{"four of a kind", "As Ad Ah Ac 5s 3d 2c", FourOfAKind},
		{"straight flush", "9s 8s 7s 6s 5s Kd 2c", StraightFlush},
		{"royal flush", "As Ks Qs Js Ts 3d 2c", RoyalFlush},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hv := evalCodes(t, tc.cards)
			if hv.Category != tc.category {
				t.Errorf("Expected %v, got %v", tc.category, hv.Category)
			}
			if len(hv.BestFive) != 5 {
				t.Errorf("Expected 5 best cards, got %d", len(hv.BestFive))
			}
		})
	}
}

func TestRoyalFlushFromSevenCards(t *testing.T) {
	hv := evalCodes(t, "As Ks Qs Js Ts 9s 8s")
	if hv.Category != RoyalFlush {
		t.Fatalf("Expected royal flush, got %v", hv.Category)
	}

	want := map[deck.Card]bool{}
	for _, c := range deck.MustParseCards("As Ks Qs Js Ts") {
		want[c] = true
	}
	for _, c := range hv.BestFive {
		if !want[c] {
			t.Errorf("Unexpected card in best five: %s", c.Code())
		}
	}
}

// Two triples must resolve to a full house using the higher triple plus a
// pair from the lower one.
func TestTwoTriplesMakeFullHouse(t *testing.T) {
	hv := evalCodes(t, "As Ad Ah Kc Ks Kd 2c")
	if hv.Category != FullHouse {
		t.Fatalf("Expected full house, got %v", hv.Category)
	}

	aces, kings := 0, 0
	for _, c := range hv.BestFive {
		switch c.Rank {
		case deck.Ace:
			aces++
		case deck.King:
			kings++
		}
	}
	if aces != 3 || kings != 2 {
		t.Errorf("Expected AAAKK, got %d aces and %d kings", aces, kings)
	}
}

func TestWheelStraight(t *testing.T) {
	hv := evalCodes(t, "Ah 2c 3d 4s 5h Kd 9c")
	if hv.Category != Straight {
		t.Fatalf("Expected straight, got %v", hv.Category)
	}

	// The ace plays low: a wheel loses to any six-high straight.
	six := evalCodes(t, "2h 3c 4d 5s 6h Kd 9c")
	if Compare(hv, six) >= 0 {
		t.Error("Wheel should rank below a six-high straight")
	}
}

func TestWheelStraightFlush(t *testing.T) {
	hv := evalCodes(t, "Ah 2h 3h 4h 5h Kd 9c")
	if hv.Category != StraightFlush {
		t.Errorf("Expected straight flush, got %v", hv.Category)
	}
}

func TestCategoryOrderingDominates(t *testing.T) {
	// Weakest example of each category, strongest kickers below it.
	pair := evalCodes(t, "2s 2d Ah Kc Qs Jd 9c")
	highCard := evalCodes(t, "As Kd Qh Jc 9s 8d 7c")
	if Compare(pair, highCard) <= 0 {
		t.Error("Any pair must beat any high card")
	}

	flush := evalCodes(t, "7s 5s 4s 3s 2s Ad Kc")
	straight := evalCodes(t, "As Kd Qh Jc Ts 2d 3c")
	if Compare(flush, straight) <= 0 {
		t.Error("Any flush must beat any straight")
	}
}

func TestKickersBreakTies(t *testing.T) {
	// Same pair of aces, different kicker.
	better := evalCodes(t, "As Ad Kh 7c 5s")
	worse := evalCodes(t, "Ah Ac Qh 7d 5c")
	if Compare(better, worse) <= 0 {
		t.Error("King kicker should beat queen kicker")
	}

	// Identical ranks in different suits tie exactly.
	a := evalCodes(t, "As Kd 9h 7c 5s")
	b := evalCodes(t, "Ad Kh 9c 7s 5d")
	if Compare(a, b) != 0 {
		t.Errorf("Suit-only differences must tie, diff %d", Compare(a, b))
	}
}

func TestBestFiveChosenFromSeven(t *testing.T) {
	// Pair of kings plus A, Q, J kickers; the 3 and 2 never play.
	hv := evalCodes(t, "Ks Kd Ah Qc Js 3d 2c")
	for _, c := range hv.BestFive {
		if c.Rank == deck.Three || c.Rank == deck.Two {
			t.Errorf("Low card %s should not be in best five", c.Code())
		}
	}
}

func TestEvaluateFiveAndSixCards(t *testing.T) {
	five := evalCodes(t, "As Ad 9h 7c 5s")
	if five.Category != Pair {
		t.Errorf("5 cards: expected one pair, got %v", five.Category)
	}

	six := evalCodes(t, "As Ad 9h 7c 5s 9d")
	if six.Category != TwoPair {
		t.Errorf("6 cards: expected two pair, got %v", six.Category)
	}
}

func TestEvaluatePanicsOutsideRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for 4 cards")
		}
	}()
	Evaluate(deck.MustParseCards("As Kd Qh Jc"))
}
