package bracket

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentDraft     TournamentStatus = "draft"
	TournamentStarted   TournamentStatus = "started"
	TournamentCompleted TournamentStatus = "completed"
)

type Format string

const (
	FormatKnockout Format = "KNOCKOUT"
	FormatQualifKO Format = "QUALIF_KO"
	FormatGroupsKO Format = "GROUPS_KO"
)

type TournamentConfig struct {
	Format            Format `db:"format" json:"format"`
	MainDrawSize      int    `db:"main_draw_size" json:"mainDrawSize"`
	PreQualDrawSize   int    `db:"pre_qual_draw_size" json:"preQualDrawSize,omitempty"`
	NbQualifiers      int    `db:"nb_qualifiers" json:"nbQualifiers,omitempty"`
	NbSeeds           int    `db:"nb_seeds" json:"nbSeeds"`
	NbSeedsQualify    int    `db:"nb_seeds_qualify" json:"nbSeedsQualify,omitempty"`
	NbPools           int    `db:"nb_pools" json:"nbPools,omitempty"`
	NbPairsPerPool    int    `db:"nb_pairs_per_pool" json:"nbPairsPerPool,omitempty"`
	NbQualifiedByPool int    `db:"nb_qualified_by_pool" json:"nbQualifiedByPool,omitempty"`
	NbMaxPairs        int    `db:"nb_max_pairs" json:"nbMaxPairs,omitempty"`
	// StaggeredEntry holds the lower half of the seeds back until the second
	// main draw round.
	StaggeredEntry bool `db:"staggered_entry" json:"staggeredEntry,omitempty"`
}

type Tournament struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	Name      string           `db:"name" json:"name"`
	Status    TournamentStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
	TournamentConfig

	Pairs  []*Pair  `db:"-" json:"pairs"`
	Rounds []*Round `db:"-" json:"rounds"`
}

func NewTournament(name string, config TournamentConfig) *Tournament {
	return &Tournament{
		ID:               uuid.New(),
		Name:             name,
		Status:           TournamentDraft,
		CreatedAt:        time.Now().UTC(),
		TournamentConfig: config,
	}
}

func (t *Tournament) RoundByStage(stage Stage) (*Round, error) {
	for _, r := range t.Rounds {
		if r.Stage == stage {
			return r, nil
		}
	}
	return nil, fmt.Errorf("round %s: %w", stage, ErrNotFound)
}

func (t *Tournament) GameByID(id uuid.UUID) (*Round, *Game, error) {
	for _, r := range t.Rounds {
		if g := r.GameByID(id); g != nil {
			return r, g, nil
		}
	}
	return nil, nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
}

func (t *Tournament) PoolByID(id uuid.UUID) (*Round, *Pool, error) {
	for _, r := range t.Rounds {
		if p := r.PoolByID(id); p != nil {
			return r, p, nil
		}
	}
	return nil, nil, fmt.Errorf("pool %s: %w", id, ErrNotFound)
}

func (t *Tournament) PairByID(id uuid.UUID) (*Pair, error) {
	for _, p := range t.Pairs {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("pair %s: %w", id, ErrNotFound)
}

func (t *Tournament) HasPair(p *Pair) bool {
	for _, member := range t.Pairs {
		if SamePair(member, p) {
			return true
		}
	}
	return false
}

// AddPair appends p to the roster unless it is already there.
func (t *Tournament) AddPair(p *Pair) bool {
	if p == nil || t.HasPair(p) {
		return false
	}
	p.TournamentID = t.ID
	t.Pairs = append(t.Pairs, p)
	return true
}

// RealPairs returns the roster without BYE and QUALIFIER placeholders.
func (t *Tournament) RealPairs() []*Pair {
	var pairs []*Pair
	for _, p := range t.Pairs {
		if p.IsReal() {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// Champion is the winner of the final, if played.
func (t *Tournament) Champion() *Pair {
	final, err := t.RoundByStage(StageFinal)
	if err != nil || len(final.Games) != 1 {
		return nil
	}
	w := final.Games[0].Winner()
	if !w.IsReal() {
		return nil
	}
	return w
}
