package draw

import (
	"errors"
	"testing"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceByeTeamsOppositeSeeds(t *testing.T) {
	round := bracket.NewRound(bracket.StageQuarters, 4, bracket.DefaultMatchFormat)
	pairs := seededPairs(6, 4)
	placer := NewPlacer(NoShuffle, false)
	require.NoError(t, placer.PlaceSeedTeams(round, pairs, 4, 8))

	placed, err := PlaceByeTeams(round, len(pairs), 4, 8, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, placed)
	assert.True(t, round.Slot(1).IsBye(), "seed 1 gets the first bye")
	assert.True(t, round.Slot(6).IsBye(), "seed 2 gets the second bye")
	assert.Equal(t, 2, round.CountByes())

	require.NoError(t, placer.PlaceRemainingTeams(round, pairs))
	for slot := 0; slot < 8; slot++ {
		assert.NotNil(t, round.Slot(slot))
	}
}

func TestPlaceByeTeamsCount(t *testing.T) {
	testCases := []struct {
		name         string
		drawSize     int
		totalPairs   int
		nbSeeds      int
		nbQualifiers int
		expected     int
	}{
		{name: "full draw", drawSize: 8, totalPairs: 8, nbSeeds: 2, expected: 0},
		{name: "one bye", drawSize: 8, totalPairs: 7, nbSeeds: 2, expected: 1},
		{name: "more byes than seeds", drawSize: 16, totalPairs: 9, nbSeeds: 2, expected: 7},
		{name: "qualifiers count as pairs", drawSize: 16, totalPairs: 10, nbSeeds: 4, nbQualifiers: 4, expected: 2},
		{name: "byes against byes", drawSize: 8, totalPairs: 2, nbSeeds: 2, expected: 6},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			round := bracket.NewRound(bracket.StageQuarters, tc.drawSize/2, bracket.DefaultMatchFormat)
			pairs := seededPairs(tc.totalPairs, tc.nbSeeds)
			placer := NewPlacer(NoShuffle, false)
			require.NoError(t, placer.PlaceSeedTeams(round, pairs, tc.nbSeeds, tc.drawSize))
			_, err := PlaceQualifierTeams(round, tc.nbQualifiers, tc.nbSeeds, tc.drawSize)
			require.NoError(t, err)

			placed, err := PlaceByeTeams(round, tc.totalPairs, tc.nbSeeds, tc.drawSize, tc.nbQualifiers)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, placed)
			assert.Equal(t, tc.expected, round.CountByes())
			require.NoError(t, placer.PlaceRemainingTeams(round, pairs))
		})
	}
}

func TestPlaceByeTeamsOneByePerGameFirst(t *testing.T) {
	round := bracket.NewRound(bracket.StageQuarters, 4, bracket.DefaultMatchFormat)

	placed, err := PlaceByeTeams(round, 4, 0, 8, 0)

	require.NoError(t, err)
	assert.Equal(t, 4, placed)
	for _, g := range round.Games {
		assert.Nil(t, g.TeamA)
		assert.True(t, g.TeamB.IsBye())
	}
}

func TestPlaceByeTeamsIsIdempotent(t *testing.T) {
	round := bracket.NewRound(bracket.StageQuarters, 4, bracket.DefaultMatchFormat)

	_, err := PlaceByeTeams(round, 5, 0, 8, 0)
	require.NoError(t, err)
	placed, err := PlaceByeTeams(round, 5, 0, 8, 0)

	require.NoError(t, err)
	assert.Equal(t, 0, placed)
	assert.Equal(t, 3, round.CountByes())
}

func TestPlaceByeTeamsNotEnoughSlots(t *testing.T) {
	round := bracket.NewRound(bracket.StageSemis, 2, bracket.DefaultMatchFormat)
	round.SetSlot(0, bracket.NewPair("A", 0))
	round.SetSlot(1, bracket.NewPair("B", 0))
	round.SetSlot(2, bracket.NewPair("C", 0))

	// Claims a single pair although three are already in the draw.
	_, err := PlaceByeTeams(round, 1, 0, 4, 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, bracket.ErrNotEnoughSlots))
}
