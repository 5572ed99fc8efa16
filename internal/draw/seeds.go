package draw

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
)

// SeedPositions returns the slot of each seed, rank 1 first. Rank 1 is always
// slot 0 and rank 2 always the last slot.
func SeedPositions(drawSize, nbSeeds int) []int {
	if drawSize <= 0 || nbSeeds <= 0 {
		return []int{}
	}
	full := fullPositions(drawSize)
	return slices.Clone(full[:min(nbSeeds, drawSize)])
}

// fullPositions builds the order for every slot of a bracket of size n from
// the bracket of size n/2: each parent position p is paired with its mirror
// n-1-p, parents at odd indexes putting the mirror first.
func fullPositions(n int) []int {
	if n <= 1 {
		return []int{0}
	}
	parent := fullPositions(n / 2)
	positions := make([]int, 0, n)
	for i, p := range parent {
		mirror := n - 1 - p
		if i%2 == 0 {
			positions = append(positions, p, mirror)
		} else {
			positions = append(positions, mirror, p)
		}
	}
	return positions
}

// seedGroup returns the zero based [start, end) ranks sharing a group with
// the given zero based rank: {0}, {1}, {2,3}, {4..7}, {8..15}...
func seedGroup(rank int) (start, end int) {
	if rank < 2 {
		return rank, rank + 1
	}
	start = 2
	for start*2 <= rank {
		start *= 2
	}
	return start, start * 2
}

// SeedSlots is SeedPositions with the slots of each seed group shuffled
// when blind draws are enabled.
func (p *Placer) SeedSlots(drawSize, nbSeeds int) []int {
	positions := SeedPositions(drawSize, nbSeeds)
	if !p.randomizeSeedGroups {
		return positions
	}
	for start := 2; start < len(positions); {
		_, end := seedGroup(start)
		end = min(end, len(positions))
		shuffleSlice(p.shuffler, positions[start:end])
		start = end
	}
	return positions
}

// SortBySeed returns a copy of pairs, seeds ascending then unseeded pairs in
// their original order.
func SortBySeed(pairs []*bracket.Pair) []*bracket.Pair {
	sorted := slices.Clone(pairs)
	slices.SortStableFunc(sorted, func(a, b *bracket.Pair) int {
		return cmp.Compare(a.SeedPriority(), b.SeedPriority())
	})
	return sorted
}

// PlaceSeedTeams writes the nbSeeds best pairs into their seed slots.
func (p *Placer) PlaceSeedTeams(round *bracket.Round, pairs []*bracket.Pair, nbSeeds, drawSize int) error {
	if round.DrawSize() != drawSize {
		return fmt.Errorf("round %s has %d slots, expected %d: %w", round.Stage, round.DrawSize(), drawSize, bracket.ErrInvalidConfiguration)
	}
	sorted := SortBySeed(pairs)
	slots := p.SeedSlots(drawSize, min(nbSeeds, len(sorted)))
	for i, slot := range slots {
		if err := placeAt(round, slot, sorted[i]); err != nil {
			return err
		}
	}
	return nil
}

func placeAt(round *bracket.Round, slot int, pair *bracket.Pair) error {
	if current := round.Slot(slot); current != nil {
		return fmt.Errorf("cannot place %s in %s slot %d held by %s: %w", pair, round.Stage, slot, current, bracket.ErrSlotOccupied)
	}
	round.SetSlot(slot, pair)
	return nil
}

// PlaceRemainingTeams shuffles every pair not yet in the round into the
// empty slots.
func (p *Placer) PlaceRemainingTeams(round *bracket.Round, pairs []*bracket.Pair) error {
	var remaining []*bracket.Pair
	for _, pair := range pairs {
		if !round.Contains(pair) {
			remaining = append(remaining, pair)
		}
	}
	shuffleSlice(p.shuffler, remaining)

	for slot := 0; slot < round.DrawSize() && len(remaining) > 0; slot++ {
		if round.Slot(slot) != nil {
			continue
		}
		round.SetSlot(slot, remaining[0])
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return fmt.Errorf("%d pairs left without a slot in %s: %w", len(remaining), round.Stage, bracket.ErrNotEnoughSlots)
	}
	return nil
}
