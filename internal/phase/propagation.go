package phase

import (
	"log/slog"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
)

// PropagateWinners pushes the winner of every finished game into the next
// round, for each adjacent pair of rounds from left to right, so one call
// cascades through the whole list. It returns the number of slots changed.
// A winner already present in the next round is never placed twice, which
// makes repeated calls harmless. A pair that reached the next round from a
// game it no longer wins, after a corrected or cleared score, is withdrawn
// first.
func PropagateWinners(rounds []*bracket.Round) int {
	moved := 0
	for i := 0; i+1 < len(rounds); i++ {
		current, next := rounds[i], rounds[i+1]
		if current.IsEmpty() || len(current.Pools) > 0 {
			continue
		}
		moved += withdrawLosers(current, rounds[i+1:])
		moved += propagateRound(current, next)
	}
	return moved
}

// withdrawLosers removes from later every real pair of current that sits in
// the next round without having won its game there. The game's winner, if
// any, takes over the freed slot.
func withdrawLosers(current *bracket.Round, later []*bracket.Round) int {
	next := later[0]
	cleared := 0
	for _, g := range current.Games {
		winner := g.Winner()
		for _, p := range []*bracket.Pair{g.TeamA, g.TeamB} {
			if !p.IsReal() || bracket.SamePair(p, winner) {
				continue
			}
			slot := slotOf(next, p)
			if slot < 0 {
				continue
			}
			cleared += withdraw(later, p)
			if winner != nil && !next.Contains(winner) {
				next.SetSlot(slot, winner)
				cleared++
			}
		}
	}
	return cleared
}

func slotOf(r *bracket.Round, p *bracket.Pair) int {
	for i := 0; i < r.DrawSize(); i++ {
		if bracket.SamePair(r.Slot(i), p) {
			return i
		}
	}
	return -1
}

// withdraw takes p out of every game of rounds. Such a game loses its score,
// and whoever else it had sent forward is withdrawn from the rounds after it.
func withdraw(rounds []*bracket.Round, p *bracket.Pair) int {
	cleared := 0
	for k, r := range rounds {
		for _, g := range r.Games {
			if !g.HasPair(p) {
				continue
			}
			winner := g.Winner()
			if bracket.SamePair(g.TeamA, p) {
				g.TeamA = nil
			} else {
				g.TeamB = nil
			}
			g.Score = nil
			cleared++
			if winner != nil && !bracket.SamePair(winner, p) {
				cleared += withdraw(rounds[k+1:], winner)
			}
		}
	}
	return cleared
}

type ratio int

const (
	classic ratio = iota
	sameSize
	expanded
	unsupported
)

// classify picks how winners of current reach next. Leaving the
// qualification draw always targets the QUALIFIER slots of the main draw,
// whatever the sizes.
func classify(current, next *bracket.Round) ratio {
	switch {
	case current.Stage.IsQualification() && !next.Stage.IsQualification():
		return expanded
	case len(next.Games)*2 == len(current.Games):
		return classic
	case len(next.Games) == len(current.Games):
		return sameSize
	case len(next.Games) > len(current.Games):
		return expanded
	}
	return unsupported
}

func isOpen(p *bracket.Pair) bool {
	return p == nil || p.IsQualifier()
}

// propagateRound works on a copy of the next round's slots and writes it back
// once every winner has been placed.
func propagateRound(current, next *bracket.Round) int {
	kind := classify(current, next)
	if kind == unsupported {
		slog.Debug("skipping propagation between rounds of unsupported sizes",
			"from", current.Stage, "to", next.Stage,
			"fromGames", len(current.Games), "toGames", len(next.Games))
		return 0
	}

	slots := make([]*bracket.Pair, next.DrawSize())
	for i := range slots {
		slots[i] = next.Slot(i)
	}
	contains := func(p *bracket.Pair) bool {
		for _, s := range slots {
			if bracket.SamePair(s, p) {
				return true
			}
		}
		return false
	}

	moved := 0
	for i, g := range current.Games {
		winner := g.Winner()
		if winner == nil || contains(winner) {
			continue
		}
		target := -1
		switch kind {
		case classic:
			if isOpen(slots[i]) {
				target = i
			}
		case sameSize:
			for _, slot := range []int{bracket.SlotIndex(i, bracket.SideA), bracket.SlotIndex(i, bracket.SideB)} {
				if isOpen(slots[slot]) {
					target = slot
					break
				}
			}
		case expanded:
			target = firstSlot(slots, (*bracket.Pair).IsQualifier)
			if target < 0 {
				target = firstSlot(slots, func(p *bracket.Pair) bool { return p == nil })
			}
		}
		if target < 0 {
			continue
		}
		slots[target] = winner
		moved++
	}

	if moved > 0 {
		for i, p := range slots {
			next.SetSlot(i, p)
		}
	}
	return moved
}

func firstSlot(slots []*bracket.Pair, match func(*bracket.Pair) bool) int {
	for i, p := range slots {
		if match(p) {
			return i
		}
	}
	return -1
}
