package phase

import (
	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/AdamBeresnev/padel-draw/internal/draw"
)

// Knockout is either the main draw or the qualification draw feeding it.
type Knockout struct {
	kind         Type
	drawSize     int
	nbQualifiers int
	format       bracket.MatchFormat
	placer       *draw.Placer
}

func NewMainDraw(drawSize int, placer *draw.Placer) *Knockout {
	return &Knockout{kind: MainDraw, drawSize: drawSize, format: bracket.DefaultMatchFormat, placer: placer}
}

func NewQualification(drawSize, nbQualifiers int, placer *draw.Placer) *Knockout {
	return &Knockout{
		kind:         Qualification,
		drawSize:     drawSize,
		nbQualifiers: nbQualifiers,
		format:       bracket.DefaultMatchFormat,
		placer:       placer,
	}
}

func (k *Knockout) Type() Type {
	return k.kind
}

func (k *Knockout) DrawSize() int {
	return k.drawSize
}

func (k *Knockout) NbQualifiers() int {
	return k.nbQualifiers
}

func (k *Knockout) Validate() *bracket.ConfigurationError {
	violations := &bracket.ConfigurationError{}
	if !isPowerOfTwo(k.drawSize) || k.drawSize < 2 {
		violations.Add("%s draw size %d must be a power of two of at least 2", k.kind, k.drawSize)
	}
	if k.kind == MainDraw && k.drawSize > bracket.StageR64.TeamCount() {
		violations.Add("main draw size %d exceeds %d", k.drawSize, bracket.StageR64.TeamCount())
	}
	if k.kind == Qualification {
		if !isPowerOfTwo(k.nbQualifiers) {
			violations.Add("number of qualifiers %d must be a power of two", k.nbQualifiers)
		} else if k.nbQualifiers > k.drawSize {
			violations.Add("number of qualifiers %d exceeds qualification draw size %d", k.nbQualifiers, k.drawSize)
		}
	}
	return violations
}

// Stages lists the stage of every round the phase creates.
func (k *Knockout) Stages() []bracket.Stage {
	var stages []bracket.Stage
	if k.kind == Qualification {
		slots := k.drawSize
		for i := 0; i < bracket.MaxQualificationRounds() && slots >= 2 && slots/2 >= k.nbQualifiers; i++ {
			stage, _ := bracket.QualificationStage(i)
			stages = append(stages, stage)
			slots /= 2
		}
		return stages
	}
	for size := k.drawSize; size >= 2; size /= 2 {
		stage, err := bracket.StageForTeams(size)
		if err != nil {
			return stages
		}
		stages = append(stages, stage)
	}
	return stages
}

// Initialize builds the empty rounds: one per halving of the draw for the
// main draw, up to three for qualifications.
func (k *Knockout) Initialize() ([]*bracket.Round, error) {
	if err := k.Validate().ErrorOrNil(); err != nil {
		return nil, err
	}
	var rounds []*bracket.Round
	size := k.drawSize
	for _, stage := range k.Stages() {
		rounds = append(rounds, bracket.NewRound(stage, size/2, k.format))
		size /= 2
	}
	return rounds, nil
}

func (k *Knockout) PlaceSeedTeams(t *bracket.Tournament, pairs []*bracket.Pair, nbSeeds int) error {
	round, err := FirstRound(k, t)
	if err != nil {
		return err
	}
	return k.placer.PlaceSeedTeams(round, pairs, nbSeeds, k.drawSize)
}

func (k *Knockout) PlaceQualifierTeams(t *bracket.Tournament, nbQualifiers, nbSeeds int) error {
	round, err := FirstRound(k, t)
	if err != nil {
		return err
	}
	qualifiers, err := draw.PlaceQualifierTeams(round, nbQualifiers, nbSeeds, k.drawSize)
	for _, q := range qualifiers {
		t.AddPair(q)
	}
	return err
}

func (k *Knockout) PlaceByeTeams(t *bracket.Tournament, totalPairs, nbSeeds, nbQualifiers int) error {
	round, err := FirstRound(k, t)
	if err != nil {
		return err
	}
	_, err = draw.PlaceByeTeams(round, totalPairs, nbSeeds, k.drawSize, nbQualifiers)
	return err
}

func (k *Knockout) PlaceRemainingTeamsRandomly(t *bracket.Tournament, pairs []*bracket.Pair) error {
	round, err := FirstRound(k, t)
	if err != nil {
		return err
	}
	return k.placer.PlaceRemainingTeams(round, pairs)
}

// PropagateWinners sweeps from the phase's first round to the end of the
// tournament, so later phases are reached through the shared round list.
func (k *Knockout) PropagateWinners(t *bracket.Tournament) int {
	first, err := FirstRound(k, t)
	if err != nil {
		return 0
	}
	for i, r := range t.Rounds {
		if r == first {
			return PropagateWinners(t.Rounds[i:])
		}
	}
	return 0
}
