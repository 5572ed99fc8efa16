package draw

import (
	"fmt"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
)

// PlaceQualifierTeams reserves nbQualifiers slots of a main draw round for
// the qualification winners. Qualifiers take the theoretical seed slots
// right after the nbSeeds seeds so they cannot meet each other early; an
// occupied theoretical slot falls back to the first free slot.
func PlaceQualifierTeams(round *bracket.Round, nbQualifiers, nbSeeds, drawSize int) ([]*bracket.Pair, error) {
	if nbQualifiers <= 0 {
		return nil, nil
	}
	existing := 0
	for _, p := range round.Pairs() {
		if p.IsQualifier() {
			existing++
		}
	}

	positions := SeedPositions(drawSize, nbSeeds+nbQualifiers)
	var candidates []int
	if nbSeeds < len(positions) {
		candidates = append(candidates, positions[nbSeeds:]...)
	}
	for slot := 0; slot < round.DrawSize(); slot++ {
		candidates = append(candidates, slot)
	}

	var placed []*bracket.Pair
	for _, slot := range candidates {
		if existing+len(placed) == nbQualifiers {
			break
		}
		if round.Slot(slot) != nil {
			continue
		}
		q := bracket.NewQualifier(existing + len(placed) + 1)
		round.SetSlot(slot, q)
		placed = append(placed, q)
	}
	if existing+len(placed) < nbQualifiers {
		return placed, fmt.Errorf("only %d of %d qualifiers fit in %s: %w", existing+len(placed), nbQualifiers, round.Stage, bracket.ErrNotEnoughSlots)
	}
	return placed, nil
}

// StaggeredEntry splits the seeds of a main draw played over two entry
// rounds: the first half of the seeds enters at First, the second half one
// round later at Second.
type StaggeredEntry struct {
	First      bracket.Stage
	Second     bracket.Stage
	TotalSeeds int
}

func (s StaggeredEntry) half() int {
	return (s.TotalSeeds + 1) / 2
}

// SeedsEnteringAtStage returns the 1 based ranks of the seeds entering at stage.
func (s StaggeredEntry) SeedsEnteringAtStage(stage bracket.Stage) []int {
	var from, to int
	switch stage {
	case s.First:
		from, to = 1, s.half()
	case s.Second:
		from, to = s.half()+1, s.TotalSeeds
	default:
		return []int{}
	}
	ranks := make([]int, 0, max(0, to-from+1))
	for r := from; r <= to; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// SeedsEnteredBeforeStage counts the seeds already in the draw when stage starts.
func (s StaggeredEntry) SeedsEnteredBeforeStage(stage bracket.Stage) int {
	switch {
	case stage == s.First || stage.Before(s.First):
		return 0
	case stage == s.Second:
		return s.half()
	default:
		return s.TotalSeeds
	}
}

// PlaceFirstRound places the seeds entering at First and reserves the
// theoretical slot of every later seed with a QUALIFIER placeholder.
func (s StaggeredEntry) PlaceFirstRound(round *bracket.Round, pairs []*bracket.Pair) ([]*bracket.Pair, error) {
	seeds := SortBySeed(pairs)
	positions := SeedPositions(round.DrawSize(), min(s.TotalSeeds, len(seeds)))
	entering := len(s.SeedsEnteringAtStage(s.First))

	var placeholders []*bracket.Pair
	for i, slot := range positions {
		if i < entering {
			if err := placeAt(round, slot, seeds[i]); err != nil {
				return placeholders, err
			}
			continue
		}
		q := bracket.NewQualifier(len(placeholders) + 1)
		if err := placeAt(round, slot, q); err != nil {
			return placeholders, err
		}
		placeholders = append(placeholders, q)
	}
	return placeholders, nil
}

// PlaceSecondRound places the seeds held back from the first round at their
// theoretical slots of the smaller draw. A QUALIFIER placeholder may be
// overwritten, a real pair or a BYE may not.
func (s StaggeredEntry) PlaceSecondRound(round *bracket.Round, pairs []*bracket.Pair) error {
	seeds := SortBySeed(pairs)
	positions := SeedPositions(round.DrawSize(), min(s.TotalSeeds, len(seeds)))
	for _, rank := range s.SeedsEnteringAtStage(s.Second) {
		if rank > len(positions) {
			break
		}
		slot := positions[rank-1]
		if current := round.Slot(slot); current != nil && !current.IsQualifier() {
			return fmt.Errorf("seed %d cannot enter %s slot %d held by %s: %w", rank, round.Stage, slot, current, bracket.ErrSlotOccupied)
		}
		round.SetSlot(slot, seeds[rank-1])
	}
	return nil
}
