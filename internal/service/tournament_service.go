package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/AdamBeresnev/padel-draw/internal/ranking"
	"github.com/AdamBeresnev/padel-draw/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TournamentService struct {
	db      *sqlx.DB
	store   *store.TournamentStore
	builder *TournamentBuilder
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore, builder *TournamentBuilder) *TournamentService {
	return &TournamentService{db: db, store: store, builder: builder}
}

type CreateTournamentInput struct {
	Name   string                   `json:"name"`
	Config bracket.TournamentConfig `json:"config"`
	Pairs  []PairInput              `json:"pairs"`
	// PairsText is an alternative to Pairs: one "name;seed" line per pair.
	PairsText string `json:"pairsText,omitempty"`
}

// CreateTournament generates the draw for the given pairs and stores it.
func (s *TournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*bracket.Tournament, error) {
	inputs := input.Pairs
	if len(inputs) == 0 && input.PairsText != "" {
		parsed, err := ParsePairs(input.PairsText)
		if err != nil {
			return nil, err
		}
		inputs = parsed
	}
	pairs, err := NewPairs(inputs)
	if err != nil {
		return nil, err
	}

	name := input.Name
	if name == "" {
		name = "Tournament"
	}
	tournament := bracket.NewTournament(name, input.Config)
	if err := s.builder.GenerateDraw(tournament, pairs); err != nil {
		return nil, err
	}

	if err := s.save(ctx, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	return s.store.GetTournament(ctx, id)
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]bracket.Tournament, error) {
	return s.store.ListTournaments(ctx)
}

func (s *TournamentService) save(ctx context.Context, t *bracket.Tournament) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.SaveTournament(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

// update loads a tournament, applies fn and saves the result. Nothing is
// written when fn fails.
func (s *TournamentService) update(ctx context.Context, id uuid.UUID, fn func(*bracket.Tournament) error) (*bracket.Tournament, error) {
	tournament, err := s.store.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(tournament); err != nil {
		return nil, err
	}
	if err := s.save(ctx, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

// SetupManual replaces the rounds listed in rounds with the caller's games.
func (s *TournamentService) SetupManual(ctx context.Context, id uuid.UUID, rounds []*bracket.Round) (*bracket.Tournament, error) {
	return s.update(ctx, id, func(t *bracket.Tournament) error {
		if err := resolvePairs(t, rounds); err != nil {
			return err
		}
		if err := s.builder.SetupManual(t, rounds); err != nil {
			return err
		}
		s.builder.PropagateWinners(t)
		return nil
	})
}

// resolvePairs swaps every pair of rounds for the roster pair with the same
// id. BYE and QUALIFIER placeholders unknown to the roster are kept, and get
// an id when they arrive without one.
func resolvePairs(t *bracket.Tournament, rounds []*bracket.Round) error {
	known := make(map[uuid.UUID]*bracket.Pair)
	for _, p := range t.Pairs {
		known[p.ID] = p
	}
	for _, r := range t.Rounds {
		for _, g := range r.Games {
			for _, p := range []*bracket.Pair{g.TeamA, g.TeamB} {
				if p != nil {
					known[p.ID] = p
				}
			}
		}
	}

	resolve := func(p *bracket.Pair) (*bracket.Pair, error) {
		if p == nil {
			return nil, nil
		}
		if canonical, ok := known[p.ID]; ok && p.ID != uuid.Nil {
			return canonical, nil
		}
		if p.IsReal() {
			return nil, fmt.Errorf("pair %s (%s): %w", p.ID, p.Name, bracket.ErrNotFound)
		}
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		known[p.ID] = p
		return p, nil
	}

	for _, r := range rounds {
		for _, g := range r.Games {
			var err error
			if g.TeamA, err = resolve(g.TeamA); err != nil {
				return err
			}
			if g.TeamB, err = resolve(g.TeamB); err != nil {
				return err
			}
			if g.ID == uuid.Nil {
				g.ID = uuid.New()
			}
		}
		for _, pool := range r.Pools {
			if pool.ID == uuid.Nil {
				pool.ID = uuid.New()
			}
			for i, p := range pool.Pairs {
				resolved, err := resolve(p)
				if err != nil {
					return err
				}
				pool.Pairs[i] = resolved
			}
		}
	}
	return nil
}

// Propagate pushes every known winner forward and reports how many moved.
func (s *TournamentService) Propagate(ctx context.Context, id uuid.UUID) (*bracket.Tournament, int, error) {
	moved := 0
	tournament, err := s.update(ctx, id, func(t *bracket.Tournament) error {
		moved = s.builder.PropagateWinners(t)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	slog.Info("winners propagated", "tournament", id, "moved", moved)
	return tournament, moved, nil
}

type PoolRanking struct {
	Pool      *bracket.Pool      `json:"pool"`
	Standings []ranking.Standing `json:"standings"`
}

func (s *TournamentService) Ranking(ctx context.Context, id, poolID uuid.UUID) (*PoolRanking, error) {
	tournament, err := s.store.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	round, pool, err := tournament.PoolByID(poolID)
	if err != nil {
		return nil, err
	}
	return &PoolRanking{Pool: pool, Standings: ranking.ComputeRanking(pool, round.Games)}, nil
}

// SeedRound places seeds and BYEs into an empty knockout round. Without
// pairIDs the whole roster is drawn; the other slots are left to fill by hand.
func (s *TournamentService) SeedRound(ctx context.Context, id uuid.UUID, stage bracket.Stage, pairIDs []uuid.UUID) (*bracket.Tournament, error) {
	return s.update(ctx, id, func(t *bracket.Tournament) error {
		round, err := t.RoundByStage(stage)
		if err != nil {
			return err
		}
		if len(round.Pools) > 0 {
			return fmt.Errorf("round %s is played in pools: %w", stage, bracket.ErrInvalidConfiguration)
		}
		if !round.IsEmpty() {
			return fmt.Errorf("round %s already has pairs: %w", stage, bracket.ErrSlotOccupied)
		}

		pairs := t.RealPairs()
		if len(pairIDs) > 0 {
			pairs = make([]*bracket.Pair, 0, len(pairIDs))
			for _, pairID := range pairIDs {
				p, err := t.PairByID(pairID)
				if err != nil {
					return err
				}
				pairs = append(pairs, p)
			}
		}
		if len(pairs) > round.DrawSize() {
			violations := &bracket.ConfigurationError{}
			violations.Add("%d pairs do not fit the %d places of %s", len(pairs), round.DrawSize(), stage)
			return violations
		}

		if err := s.builder.PlaceSeedsAndByes(round, pairs, t.TournamentConfig); err != nil {
			return err
		}
		s.builder.PropagateWinners(t)
		return nil
	})
}

func (s *TournamentService) AdvancePools(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	return s.update(ctx, id, s.builder.AdvancePoolQualifiers)
}

// Validate lists the configuration violations of a stored tournament.
func (s *TournamentService) Validate(ctx context.Context, id uuid.UUID) ([]string, error) {
	tournament, err := s.store.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.builder.Validate(tournament), nil
}

func (s *TournamentService) BuildSkeleton(config bracket.TournamentConfig) ([]*bracket.Round, error) {
	return s.builder.BuildSkeleton(config)
}

func (s *TournamentService) DeleteTournament(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.DeleteTournament(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}
