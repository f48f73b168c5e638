// Package evaluator ranks 5-7 card poker hands. Every evaluation produces
// the hand's category, the exact five cards it is built from, the kicker
// ranks, and a single integer comparison value that totally orders all
// hands: category dominates, then primary rank, then kickers.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/cardroom/holdem/internal/deck"
)

// Category enumerates hand categories in ascending strength.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the wire name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "high-card"
	case Pair:
		return "pair"
	case TwoPair:
		return "two-pair"
	case ThreeOfAKind:
		return "three-of-a-kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full-house"
	case FourOfAKind:
		return "four-of-a-kind"
	case StraightFlush:
		return "straight-flush"
	case RoyalFlush:
		return "royal-flush"
	default:
		return "unknown"
	}
}

// Ranks are encoded as digits in base 15 so a higher digit can never carry
// into the one above it (max rank is 14). Five digits per category tier.
const (
	digitBase    = 15
	categorySpan = digitBase * digitBase * digitBase * digitBase * digitBase
)

// HandValue is the result of evaluating a hand.
type HandValue struct {
	Category Category
	Value    int
	BestFive []deck.Card
	Kickers  []deck.Rank
}

// Compare returns a negative value if a is weaker than b, zero on an exact
// tie, positive if a is stronger.
func Compare(a, b HandValue) int {
	return a.Value - b.Value
}

// Evaluate returns the best five-card hand from 5-7 cards. Fewer than 5 or
// more than 7 cards is a programmer error and panics.
func Evaluate(cards []deck.Card) HandValue {
	if len(cards) < 5 || len(cards) > 7 {
		panic(fmt.Sprintf("evaluator: need 5-7 cards, got %d", len(cards)))
	}

	byRank := make(map[deck.Rank][]deck.Card)
	bySuit := make(map[deck.Suit][]deck.Card)
	for _, c := range cards {
		byRank[c.Rank] = append(byRank[c.Rank], c)
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	// All cards of the flush suit are retained: the straight-flush check
	// must see every suited card, not just the top five.
	var flushCards []deck.Card
	for _, suited := range bySuit {
		if len(suited) >= 5 {
			flushCards = sortedDesc(suited)
			break
		}
	}

	if flushCards != nil {
		if high, five, ok := findStraight(flushCards); ok {
			cat := StraightFlush
			if high == int(deck.Ace) {
				cat = RoyalFlush
			}
			return build(cat, five, []int{high}, nil)
		}
	}

	// Rank multiples, strongest first: count desc, then rank desc.
	groups := rankGroups(byRank)

	if len(groups) > 0 && len(groups[0].cards) == 4 {
		quad := groups[0]
		kicker := bestExcluding(cards, quad.rank)
		five := append(append([]deck.Card{}, quad.cards...), kicker)
		return build(FourOfAKind, five, []int{int(quad.rank), int(kicker.Rank)}, []deck.Rank{kicker.Rank})
	}

	if fh, ok := findFullHouse(groups); ok {
		return fh
	}

	if flushCards != nil {
		five := flushCards[:5]
		digits := make([]int, 5)
		for i, c := range five {
			digits[i] = int(c.Rank)
		}
		return build(Flush, five, digits, nil)
	}

	if high, five, ok := findStraight(sortedDesc(cards)); ok {
		return build(Straight, five, []int{high}, nil)
	}

	if len(groups) > 0 && len(groups[0].cards) == 3 {
		trips := groups[0]
		kickers := topExcluding(cards, 2, trips.rank)
		five := append(append([]deck.Card{}, trips.cards...), kickers...)
		digits := []int{int(trips.rank), int(kickers[0].Rank), int(kickers[1].Rank)}
		return build(ThreeOfAKind, five, digits, ranksOf(kickers))
	}

	if len(groups) >= 2 && len(groups[0].cards) == 2 && len(groups[1].cards) == 2 {
		high, low := groups[0], groups[1]
		kicker := bestExcluding(cards, high.rank, low.rank)
		five := append(append(append([]deck.Card{}, high.cards...), low.cards...), kicker)
		digits := []int{int(high.rank), int(low.rank), int(kicker.Rank)}
		return build(TwoPair, five, digits, []deck.Rank{kicker.Rank})
	}

	if len(groups) > 0 && len(groups[0].cards) == 2 {
		pair := groups[0]
		kickers := topExcluding(cards, 3, pair.rank)
		five := append(append([]deck.Card{}, pair.cards...), kickers...)
		digits := []int{int(pair.rank), int(kickers[0].Rank), int(kickers[1].Rank), int(kickers[2].Rank)}
		return build(Pair, five, digits, ranksOf(kickers))
	}

	five := sortedDesc(cards)[:5]
	digits := make([]int, 5)
	for i, c := range five {
		digits[i] = int(c.Rank)
	}
	return build(HighCard, five, digits, ranksOf(five[1:]))
}

func build(cat Category, five []deck.Card, digits []int, kickers []deck.Rank) HandValue {
	value := int(cat) * categorySpan
	mult := categorySpan / digitBase
	for _, d := range digits {
		value += d * mult
		mult /= digitBase
	}
	return HandValue{
		Category: cat,
		Value:    value,
		BestFive: five,
		Kickers:  kickers,
	}
}

type rankGroup struct {
	rank  deck.Rank
	cards []deck.Card
}

func rankGroups(byRank map[deck.Rank][]deck.Card) []rankGroup {
	groups := make([]rankGroup, 0, len(byRank))
	for rank, cards := range byRank {
		groups = append(groups, rankGroup{rank: rank, cards: cards})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].cards) != len(groups[j].cards) {
			return len(groups[i].cards) > len(groups[j].cards)
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

// findFullHouse handles the two-triples case per the poker rule: the higher
// triple plays as trips and the lower triple contributes its top two cards
// as the pair.
func findFullHouse(groups []rankGroup) (HandValue, bool) {
	if len(groups) < 2 || len(groups[0].cards) != 3 {
		return HandValue{}, false
	}

	var pairCards []deck.Card
	for _, g := range groups[1:] {
		if len(g.cards) >= 2 {
			pairCards = g.cards[:2]
			break
		}
	}
	if pairCards == nil {
		return HandValue{}, false
	}

	trips := groups[0]
	five := append(append([]deck.Card{}, trips.cards...), pairCards...)
	digits := []int{int(trips.rank), int(pairCards[0].Rank)}
	return build(FullHouse, five, digits, nil), true
}

// findStraight scans the distinct ranks of cards for five consecutive
// values. The wheel (A-2-3-4-5) is checked separately with the Ace counted
// as 1, making 5 the straight's high card.
func findStraight(cards []deck.Card) (int, []deck.Card, bool) {
	byValue := make(map[int]deck.Card)
	for _, c := range cards {
		if _, ok := byValue[int(c.Rank)]; !ok {
			byValue[int(c.Rank)] = c
		}
	}
	if ace, ok := byValue[int(deck.Ace)]; ok {
		byValue[1] = ace
	}

	for high := int(deck.Ace); high >= 5; high-- {
		run := make([]deck.Card, 0, 5)
		for v := high; v > high-5; v-- {
			c, ok := byValue[v]
			if !ok {
				break
			}
			run = append(run, c)
		}
		if len(run) == 5 {
			return high, run, true
		}
	}
	return 0, nil, false
}

func sortedDesc(cards []deck.Card) []deck.Card {
	out := append([]deck.Card{}, cards...)
	sort.Slice(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })
	return out
}

func bestExcluding(cards []deck.Card, exclude ...deck.Rank) deck.Card {
	return topExcluding(cards, 1, exclude...)[0]
}

func topExcluding(cards []deck.Card, n int, exclude ...deck.Rank) []deck.Card {
	excluded := make(map[deck.Rank]bool, len(exclude))
	for _, r := range exclude {
		excluded[r] = true
	}
	out := make([]deck.Card, 0, n)
	for _, c := range sortedDesc(cards) {
		if excluded[c.Rank] {
			continue
		}
		out = append(out, c)
		if len(out) == n {
			break
		}
	}
	return out
}

func ranksOf(cards []deck.Card) []deck.Rank {
	ranks := make([]deck.Rank, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	return ranks
}
