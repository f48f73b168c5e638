package deck

import (
	"fmt"
	"math/rand"
)

// Deck is a standard 52-card deck dealt sequentially. A burn is simply a
// deal whose result the caller discards.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// New creates a shuffled deck using the provided random source. The rng is
// required so that shuffles are reproducible under test; production callers
// seed it from a cryptographic source per hand (see randutil.NewCrypto).
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("deck: rng is required")
	}
	d := &Deck{
		cards: fullDeck(),
		rng:   rng,
	}
	d.Shuffle()
	return d
}

// NewFixed creates a deck that deals the given cards in order, followed by
// the rest of the 52-card universe in canonical order. Deterministic deals
// for tests; part of the testability contract.
func NewFixed(cards ...Card) *Deck {
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			panic(fmt.Sprintf("deck: duplicate card %s in fixed sequence", c))
		}
		seen[c] = true
	}

	ordered := make([]Card, 0, 52)
	ordered = append(ordered, cards...)
	for _, c := range fullDeck() {
		if !seen[c] {
			ordered = append(ordered, c)
		}
	}

	return &Deck{cards: ordered}
}

func fullDeck() []Card {
	cards := make([]Card, 0, 52)
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle rewinds the deck and shuffles it with Fisher-Yates.
func (d *Deck) Shuffle() {
	if d.rng == nil {
		panic("deck: cannot shuffle a fixed deck")
	}
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// DealOne deals the next card. Dealing from an empty deck is a programmer
// error: a legal hand consumes at most 2*players + 3 burns + 5 board cards.
func (d *Deck) DealOne() Card {
	if d.next >= len(d.cards) {
		panic("deck: deal from empty deck")
	}
	card := d.cards[d.next]
	d.next++
	return card
}

// DealMany deals n cards from the deck
func (d *Deck) DealMany(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = d.DealOne()
	}
	return cards
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Reset rewinds and reshuffles the deck for a new hand. Fixed decks rewind
// to their original sequence.
func (d *Deck) Reset() {
	if d.rng == nil {
		d.next = 0
		return
	}
	d.Shuffle()
}
