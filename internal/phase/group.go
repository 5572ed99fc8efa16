package phase

import (
	"fmt"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/AdamBeresnev/padel-draw/internal/draw"
)

// Group is the round robin pool phase played before the main draw.
type Group struct {
	nbPools        int
	nbPairsPerPool int
	format         bracket.MatchFormat
	placer         *draw.Placer
}

func NewGroup(nbPools, nbPairsPerPool int, placer *draw.Placer) *Group {
	return &Group{
		nbPools:        nbPools,
		nbPairsPerPool: nbPairsPerPool,
		format:         bracket.DefaultMatchFormat,
		placer:         placer,
	}
}

func (g *Group) Type() Type {
	return Groups
}

func (g *Group) DrawSize() int {
	return g.nbPools * g.nbPairsPerPool
}

func (g *Group) Stages() []bracket.Stage {
	return []bracket.Stage{bracket.StageGroups}
}

func (g *Group) Validate() *bracket.ConfigurationError {
	violations := &bracket.ConfigurationError{}
	if g.nbPools <= 0 {
		violations.Add("number of pools must be positive, got %d", g.nbPools)
	}
	if g.nbPairsPerPool < 2 {
		violations.Add("a pool needs at least 2 pairs, got %d", g.nbPairsPerPool)
	}
	return violations
}

// Initialize creates the GROUPS round with empty pools named Pool A, Pool B...
func (g *Group) Initialize() ([]*bracket.Round, error) {
	if err := g.Validate().ErrorOrNil(); err != nil {
		return nil, err
	}
	round := bracket.NewRound(bracket.StageGroups, 0, g.format)
	for i := 0; i < g.nbPools; i++ {
		round.Pools = append(round.Pools, bracket.NewPool(bracket.PoolName(i)))
	}
	return []*bracket.Round{round}, nil
}

func (g *Group) round(t *bracket.Tournament) (*bracket.Round, error) {
	round, err := t.RoundByStage(bracket.StageGroups)
	if err != nil {
		return nil, err
	}
	if len(round.Pools) == 0 {
		return nil, fmt.Errorf("group round has no pools: %w", bracket.ErrNotFound)
	}
	return round, nil
}

func (g *Group) PlaceSeedTeams(t *bracket.Tournament, pairs []*bracket.Pair, nbSeeds int) error {
	round, err := g.round(t)
	if err != nil {
		return err
	}
	if err := draw.PlaceSeedsInPools(round.Pools, pairs, nbSeeds, g.nbPairsPerPool); err != nil {
		return err
	}
	g.generateGamesIfComplete(round)
	return nil
}

// PlaceQualifierTeams is a no-op: pools never hold QUALIFIER placeholders.
func (g *Group) PlaceQualifierTeams(*bracket.Tournament, int, int) error {
	return nil
}

// PlaceByeTeams is a no-op: an incomplete pool simply plays fewer games.
func (g *Group) PlaceByeTeams(*bracket.Tournament, int, int, int) error {
	return nil
}

func (g *Group) PlaceRemainingTeamsRandomly(t *bracket.Tournament, pairs []*bracket.Pair) error {
	round, err := g.round(t)
	if err != nil {
		return err
	}
	if err := g.placer.PlaceRemainingInPools(round.Pools, pairs, g.nbPairsPerPool); err != nil {
		return err
	}
	g.generateGamesIfComplete(round)
	return nil
}

// generateGamesIfComplete rebuilds every pool's round robin from scratch
// once all pools are full.
func (g *Group) generateGamesIfComplete(round *bracket.Round) {
	for _, pool := range round.Pools {
		if len(pool.Pairs) < g.nbPairsPerPool {
			return
		}
	}
	g.GenerateGames(round)
}

// GenerateGames rebuilds the round robin games of every pool regardless of
// how full the pools are.
func (g *Group) GenerateGames(round *bracket.Round) {
	var games []*bracket.Game
	for _, pool := range round.Pools {
		games = append(games, draw.RoundRobinGames(pool, round.MatchFormat)...)
	}
	round.Games = games
}

// PropagateWinners does nothing: which pool finishers enter the main draw
// is decided by the caller from the rankings.
func (g *Group) PropagateWinners(*bracket.Tournament) int {
	return 0
}
