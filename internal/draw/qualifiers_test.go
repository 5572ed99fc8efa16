package draw

import (
	"errors"
	"testing"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceQualifierTeams(t *testing.T) {
	round := bracket.NewRound(bracket.StageR16, 8, bracket.DefaultMatchFormat)
	pairs := seededPairs(4, 4)
	placer := NewPlacer(NoShuffle, false)
	require.NoError(t, placer.PlaceSeedTeams(round, pairs, 4, 16))

	qualifiers, err := PlaceQualifierTeams(round, 4, 4, 16)

	require.NoError(t, err)
	require.Len(t, qualifiers, 4)
	for i, slot := range []int{4, 11, 12, 3} {
		q := round.Slot(slot)
		assert.True(t, q.IsQualifier(), "slot %d", slot)
		assert.Equal(t, i+1, q.QualifierIndex)
	}

	again, err := PlaceQualifierTeams(round, 4, 4, 16)
	require.NoError(t, err)
	assert.Empty(t, again, "qualifiers are not placed twice")
}

func TestPlaceQualifierTeamsFallsBackToFreeSlots(t *testing.T) {
	round := bracket.NewRound(bracket.StageSemis, 2, bracket.DefaultMatchFormat)
	round.SetSlot(0, bracket.NewPair("A", 1))
	round.SetSlot(3, bracket.NewPair("B", 2))
	round.SetSlot(2, bracket.NewPair("C", 0))

	qualifiers, err := PlaceQualifierTeams(round, 1, 2, 4)

	require.NoError(t, err)
	require.Len(t, qualifiers, 1)
	assert.Same(t, qualifiers[0], round.Slot(1))

	_, err = PlaceQualifierTeams(round, 2, 2, 4)
	assert.True(t, errors.Is(err, bracket.ErrNotEnoughSlots))
}

func TestStaggeredEntrySplit(t *testing.T) {
	entry := StaggeredEntry{First: bracket.StageR32, Second: bracket.StageR16, TotalSeeds: 8}

	assert.Equal(t, []int{1, 2, 3, 4}, entry.SeedsEnteringAtStage(bracket.StageR32))
	assert.Equal(t, []int{5, 6, 7, 8}, entry.SeedsEnteringAtStage(bracket.StageR16))
	assert.Empty(t, entry.SeedsEnteringAtStage(bracket.StageQuarters))

	assert.Equal(t, 0, entry.SeedsEnteredBeforeStage(bracket.StageR32))
	assert.Equal(t, 4, entry.SeedsEnteredBeforeStage(bracket.StageR16))
	assert.Equal(t, 8, entry.SeedsEnteredBeforeStage(bracket.StageSemis))
}

func TestStaggeredEntryPlacement(t *testing.T) {
	entry := StaggeredEntry{First: bracket.StageQuarters, Second: bracket.StageSemis, TotalSeeds: 4}
	seeds := seededPairs(4, 4)
	first := bracket.NewRound(bracket.StageQuarters, 4, bracket.DefaultMatchFormat)
	second := bracket.NewRound(bracket.StageSemis, 2, bracket.DefaultMatchFormat)

	placeholders, err := entry.PlaceFirstRound(first, seeds)

	require.NoError(t, err)
	assert.Same(t, seeds[0], first.Slot(0))
	assert.Same(t, seeds[1], first.Slot(7))
	require.Len(t, placeholders, 2)
	assert.Same(t, placeholders[0], first.Slot(4))
	assert.Same(t, placeholders[1], first.Slot(3))

	second.SetSlot(2, bracket.NewQualifier(9))
	require.NoError(t, entry.PlaceSecondRound(second, seeds))
	assert.Same(t, seeds[2], second.Slot(2), "seed 3 overwrites the placeholder")
	assert.Same(t, seeds[3], second.Slot(1))

	blocked := bracket.NewRound(bracket.StageSemis, 2, bracket.DefaultMatchFormat)
	blocked.SetSlot(1, bracket.NewBye())
	err = entry.PlaceSecondRound(blocked, seeds)
	assert.True(t, errors.Is(err, bracket.ErrSlotOccupied))
}
