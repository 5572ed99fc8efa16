package draw

import (
	"fmt"
	"slices"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
)

// ByesNeeded is the number of BYEs still missing for the round to be full.
func ByesNeeded(round *bracket.Round, totalPairs, nbQualifiers, drawSize int) int {
	return drawSize - totalPairs - nbQualifiers - round.CountByes()
}

// PlaceByeTeams fills the round with the BYEs it needs. BYEs go opposite the
// seeds first, then one per game, and only as a last resort against another BYE.
func PlaceByeTeams(round *bracket.Round, totalPairs, nbSeeds, drawSize, nbQualifiers int) (int, error) {
	needed := ByesNeeded(round, totalPairs, nbQualifiers, drawSize)
	if needed <= 0 {
		return 0, nil
	}
	placed := 0
	place := func(slot int) {
		round.SetSlot(slot, bracket.NewBye())
		placed++
	}

	for _, slot := range seedSlotsInRound(round, nbSeeds, drawSize) {
		if placed == needed {
			break
		}
		sibling := bracket.OppositeSlot(slot)
		if round.Slot(sibling) == nil && !round.Slot(slot).IsBye() {
			place(sibling)
		}
	}

	for _, g := range round.Games {
		if placed == needed {
			break
		}
		if g.TeamA.IsBye() || g.TeamB.IsBye() {
			continue
		}
		switch {
		case g.TeamB == nil:
			g.TeamB = bracket.NewBye()
			placed++
		case g.TeamA == nil:
			g.TeamA = bracket.NewBye()
			placed++
		}
	}

	for slot := 0; slot < round.DrawSize() && placed < needed; slot++ {
		if round.Slot(slot) == nil {
			place(slot)
		}
	}

	if placed < needed {
		return placed, fmt.Errorf("%d of %d byes could not be placed in %s: %w", needed-placed, needed, round.Stage, bracket.ErrNotEnoughSlots)
	}
	return placed, nil
}

// seedSlotsInRound lists the slots of the seeds already in the round by
// seed, then the theoretical seed slots still free.
func seedSlotsInRound(round *bracket.Round, nbSeeds, drawSize int) []int {
	type seeded struct {
		slot int
		seed int
	}
	var found []seeded
	for slot := 0; slot < round.DrawSize(); slot++ {
		if p := round.Slot(slot); p.IsReal() && p.IsSeeded() && p.Seed <= nbSeeds {
			found = append(found, seeded{slot: slot, seed: p.Seed})
		}
	}
	slices.SortStableFunc(found, func(a, b seeded) int { return a.seed - b.seed })

	slots := make([]int, 0, nbSeeds)
	for _, s := range found {
		slots = append(slots, s.slot)
	}
	for _, slot := range SeedPositions(drawSize, nbSeeds) {
		if len(slots) >= nbSeeds {
			break
		}
		if !slices.Contains(slots, slot) {
			slots = append(slots, slot)
		}
	}
	return slots
}
