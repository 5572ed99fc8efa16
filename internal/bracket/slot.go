package bracket

// Side of a game. Slot 2*i is side A of game i, slot 2*i+1 is side B.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) Opposite() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// SlotPosition maps a linear draw position to its game and side.
func SlotPosition(slot int) (game int, side Side) {
	if slot%2 == 0 {
		return slot / 2, SideA
	}
	return slot / 2, SideB
}

// SlotIndex is the inverse of SlotPosition.
func SlotIndex(game int, side Side) int {
	return game*2 + int(side)
}

// OppositeSlot is the other slot of the same game.
func OppositeSlot(slot int) int {
	return slot ^ 1
}
