package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotPosition(t *testing.T) {
	testCases := []struct {
		slot     int
		game     int
		side     Side
		opposite int
	}{
		{slot: 0, game: 0, side: SideA, opposite: 1},
		{slot: 1, game: 0, side: SideB, opposite: 0},
		{slot: 6, game: 3, side: SideA, opposite: 7},
		{slot: 13, game: 6, side: SideB, opposite: 12},
	}

	for _, tc := range testCases {
		game, side := SlotPosition(tc.slot)
		assert.Equal(t, tc.game, game, "game of slot %d", tc.slot)
		assert.Equal(t, tc.side, side, "side of slot %d", tc.slot)
		assert.Equal(t, tc.slot, SlotIndex(game, side))
		assert.Equal(t, tc.opposite, OppositeSlot(tc.slot))
	}
}

func TestRoundSlots(t *testing.T) {
	r := NewRound(StageQuarters, 4, DefaultMatchFormat)
	p := NewPair("Lebron / Galan", 1)

	assert.True(t, r.IsEmpty())
	r.SetSlot(5, p)

	assert.False(t, r.IsEmpty())
	assert.Same(t, p, r.Games[2].TeamB)
	assert.Same(t, p, r.Slot(5))
	assert.Nil(t, r.Slot(4))
	assert.Nil(t, r.Slot(42))
	assert.True(t, r.Contains(p))
	assert.Equal(t, 8, r.DrawSize())
}
