package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Letter returns the single-letter code used on the wire ("h", "d", "c", "s")
func (s Suit) Letter() string {
	switch s {
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are high (14) except in the wheel
// straight, where the evaluator treats them as 1.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return string(rune('0' + int(r)))
		}
		return "?"
	}
}

// Value returns the numeric value of the rank for comparison
func (r Rank) Value() int {
	return int(r)
}

// Card represents an immutable playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the display representation of a card (e.g. "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the two-character wire representation of a card (e.g. "As")
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Letter()
}

// ParseCard parses a two-character card code such as "As" or "Th"
func ParseCard(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("card code must be 2 characters, got %q", code)
	}

	var rank Rank
	switch code[0] {
	case 'T':
		rank = Ten
	case 'J':
		rank = Jack
	case 'Q':
		rank = Queen
	case 'K':
		rank = King
	case 'A':
		rank = Ace
	default:
		if code[0] < '2' || code[0] > '9' {
			return Card{}, fmt.Errorf("invalid rank %q in card code %q", code[0], code)
		}
		rank = Rank(code[0] - '0')
	}

	var suit Suit
	switch code[1] {
	case 'h':
		suit = Hearts
	case 'd':
		suit = Diamonds
	case 'c':
		suit = Clubs
	case 's':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit %q in card code %q", code[1], code)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// MustParseCard parses a card code and panics on failure. Test helper.
func MustParseCard(code string) Card {
	c, err := ParseCard(code)
	if err != nil {
		panic(err)
	}
	return c
}

// MustParseCards parses a space-separated list of card codes. Test helper.
func MustParseCards(codes string) []Card {
	var cards []Card
	start := -1
	for i := 0; i <= len(codes); i++ {
		if i == len(codes) || codes[i] == ' ' {
			if start >= 0 {
				cards = append(cards, MustParseCard(codes[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return cards
}

// MarshalJSON encodes the card as its two-character code
func (c Card) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.Code() + `"`), nil
}

// UnmarshalJSON decodes a card from its two-character code
func (c *Card) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid card literal %s", data)
	}
	card, err := ParseCard(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = card
	return nil
}
