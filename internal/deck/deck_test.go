package deck

import (
	"testing"

	"github.com/cardroom/holdem/internal/randutil"
)

func TestNewDeckHas52DistinctCards(t *testing.T) {
	d := New(randutil.New(1))

	if d.Remaining() != 52 {
		t.Fatalf("Expected 52 cards, got %d", d.Remaining())
	}

	seen := make(map[Card]bool)
	for d.Remaining() > 0 {
		c := d.DealOne()
		if seen[c] {
			t.Errorf("Duplicate card dealt: %s", c.Code())
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("Expected 52 distinct cards, got %d", len(seen))
	}
}

func TestShuffleDeterministicForSeed(t *testing.T) {
	d1 := New(randutil.New(42))
	d2 := New(randutil.New(42))

	for i := 0; i < 52; i++ {
		c1, c2 := d1.DealOne(), d2.DealOne()
		if c1 != c2 {
			t.Fatalf("Card %d differs: %s vs %s", i, c1.Code(), c2.Code())
		}
	}
}

func TestShuffleDiffersAcrossSeeds(t *testing.T) {
	d1 := New(randutil.New(1))
	d2 := New(randutil.New(2))

	same := true
	for i := 0; i < 52; i++ {
		if d1.DealOne() != d2.DealOne() {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds produced identical deck order")
	}
}

func TestDealManyAndRemaining(t *testing.T) {
	d := New(randutil.New(7))

	cards := d.DealMany(5)
	if len(cards) != 5 {
		t.Fatalf("Expected 5 cards, got %d", len(cards))
	}
	if d.Remaining() != 47 {
		t.Errorf("Expected 47 remaining, got %d", d.Remaining())
	}
}

func TestDealFromEmptyDeckPanics(t *testing.T) {
	d := New(randutil.New(1))
	d.DealMany(52)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic when dealing from empty deck")
		}
	}()
	d.DealOne()
}

func TestNewWithNilRngPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for nil rng")
		}
	}()
	New(nil)
}

func TestFixedDeckDealsGivenSequence(t *testing.T) {
	want := MustParseCards("As Kh Qd Jc")
	d := NewFixed(want...)

	for i, w := range want {
		got := d.DealOne()
		if got != w {
			t.Errorf("Card %d: expected %s, got %s", i, w.Code(), got.Code())
		}
	}

	// The rest of the pack follows.
	if d.Remaining() != 48 {
		t.Errorf("Expected 48 remaining, got %d", d.Remaining())
	}
}

func TestFixedDeckResetRewinds(t *testing.T) {
	d := NewFixed(MustParseCards("As Kh")...)

	first := d.DealOne()
	d.DealMany(10)
	d.Reset()

	if got := d.DealOne(); got != first {
		t.Errorf("Expected %s after reset, got %s", first.Code(), got.Code())
	}
}

func TestFixedDeckRejectsDuplicates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for duplicate fixed cards")
		}
	}()
	NewFixed(MustParseCards("As As")...)
}
