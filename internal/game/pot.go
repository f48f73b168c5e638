package game

import (
	"fmt"
	"sort"
)

// Pot is a main or side pot: an amount, the players eligible to win it, and
// whether it is the main pot (index 0 of the pot list).
type Pot struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"`
	IsMain   bool     `json:"isMain"`
}

// Contribution is one player's total commitment to the current hand. Folded
// (and departed) players' chips stay in the pot amounts but never appear in
// an eligibility set.
type Contribution struct {
	PlayerID string
	Seat     int
	Amount   int
	Folded   bool
}

// NeedSidePots reports whether eligible contributors committed differing
// totals, which is the only case that splits the pot.
func NeedSidePots(contribs []Contribution) bool {
	level := -1
	for _, c := range contribs {
		if c.Folded || c.Amount == 0 {
			continue
		}
		if level >= 0 && c.Amount != level {
			return true
		}
		level = c.Amount
	}
	return false
}

// BuildPots partitions the committed chips into a main pot and side pots by
// all-in threshold. It walks the distinct commitment levels ascending; each
// slice between levels forms a pot whose eligible set is the live players
// who contributed at least that level. Adjacent slices with identical
// eligibility collapse into one pot.
func BuildPots(contribs []Contribution) []Pot {
	sorted := make([]Contribution, 0, len(contribs))
	for _, c := range contribs {
		if c.Amount > 0 {
			sorted = append(sorted, c)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Amount != sorted[j].Amount {
			return sorted[i].Amount < sorted[j].Amount
		}
		return sorted[i].Seat < sorted[j].Seat
	})

	// Eligibility lists are in seat order: the odd-chip tie-break in
	// DistributePots depends on it.
	bySeat := make([]Contribution, len(sorted))
	copy(bySeat, sorted)
	sort.Slice(bySeat, func(i, j int) bool { return bySeat[i].Seat < bySeat[j].Seat })

	var levels []int
	for _, c := range sorted {
		if len(levels) == 0 || c.Amount != levels[len(levels)-1] {
			levels = append(levels, c.Amount)
		}
	}

	var pots []Pot
	prev := 0
	for _, level := range levels {
		pot := Pot{}
		for _, c := range bySeat {
			slice := min(c.Amount, level) - min(c.Amount, prev)
			if slice > 0 {
				pot.Amount += slice
			}
			if !c.Folded && c.Amount >= level {
				pot.Eligible = append(pot.Eligible, c.PlayerID)
			}
		}
		if pot.Amount == 0 {
			prev = level
			continue
		}
		if n := len(pots); n > 0 && sameEligible(pots[n-1].Eligible, pot.Eligible) {
			pots[n-1].Amount += pot.Amount
		} else {
			pots = append(pots, pot)
		}
		prev = level
	}

	if len(pots) > 0 {
		pots[0].IsMain = true
	}
	return pots
}

func sameEligible(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DistributePots pays each pot to its best-ranked eligible winners. ranking
// maps player id to showdown rank, 0 best, ties sharing a rank. The integer
// remainder of a split pot goes one chip at a time to the tied winners in
// eligibility order, which is seat order (the frozen tie-break). Returns
// payout amounts by player id.
func DistributePots(pots []Pot, ranking map[string]int) map[string]int {
	payouts := make(map[string]int)

	for _, pot := range pots {
		var winners []string
		bestRank := -1
		for _, id := range pot.Eligible {
			rank, ok := ranking[id]
			if !ok {
				continue
			}
			switch {
			case bestRank < 0 || rank < bestRank:
				bestRank = rank
				winners = []string{id}
			case rank == bestRank:
				winners = append(winners, id)
			}
		}

		// Unreachable under the table invariants; split across the
		// whole eligible set rather than stranding chips.
		if len(winners) == 0 {
			winners = pot.Eligible
		}
		if len(winners) == 0 {
			continue
		}

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for i, id := range winners {
			payouts[id] += share
			if i < remainder {
				payouts[id]++
			}
		}
	}

	return payouts
}

// ValidatePots checks chip conservation: the pot amounts must account for
// exactly the chips committed this hand.
func ValidatePots(contribs []Contribution, pots []Pot) error {
	committed := 0
	for _, c := range contribs {
		committed += c.Amount
	}
	held := 0
	for _, p := range pots {
		held += p.Amount
	}
	if committed != held {
		return fmt.Errorf("pot mismatch: %d committed but %d in pots", committed, held)
	}
	return nil
}

// TotalCommitted sums every contribution, folded players included. A
// fold-only win pays this entire amount to the last player standing.
func TotalCommitted(contribs []Contribution) int {
	total := 0
	for _, c := range contribs {
		total += c.Amount
	}
	return total
}
