package phase

import (
	"fmt"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
)

type Type string

const (
	MainDraw      Type = "MAIN_DRAW"
	Qualification Type = "QUALIFS"
	Groups        Type = "GROUPS"
)

// Phase owns a contiguous run of rounds and the placement rules that are
// only valid inside them.
type Phase interface {
	Type() Type
	// DrawSize is the number of teams entering the phase.
	DrawSize() int
	Stages() []bracket.Stage
	Validate() *bracket.ConfigurationError
	Initialize() ([]*bracket.Round, error)

	PlaceSeedTeams(t *bracket.Tournament, pairs []*bracket.Pair, nbSeeds int) error
	PlaceQualifierTeams(t *bracket.Tournament, nbQualifiers, nbSeeds int) error
	PlaceByeTeams(t *bracket.Tournament, totalPairs, nbSeeds, nbQualifiers int) error
	PlaceRemainingTeamsRandomly(t *bracket.Tournament, pairs []*bracket.Pair) error
	PropagateWinners(t *bracket.Tournament) int
}

// FirstRound returns the round the phase starts with.
func FirstRound(p Phase, t *bracket.Tournament) (*bracket.Round, error) {
	stages := p.Stages()
	if len(stages) == 0 {
		return nil, fmt.Errorf("%s phase has no rounds: %w", p.Type(), bracket.ErrNotFound)
	}
	return t.RoundByStage(stages[0])
}

// Rounds returns the rounds of t that belong to p, in tournament order.
func Rounds(p Phase, t *bracket.Tournament) []*bracket.Round {
	own := make(map[bracket.Stage]bool)
	for _, s := range p.Stages() {
		own[s] = true
	}
	var rounds []*bracket.Round
	for _, r := range t.Rounds {
		if own[r.Stage] {
			rounds = append(rounds, r)
		}
	}
	return rounds
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
