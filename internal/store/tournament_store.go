package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/AdamBeresnev/padel-draw/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

type roundRow struct {
	ID           uuid.UUID     `db:"id"`
	TournamentID uuid.UUID     `db:"tournament_id"`
	Stage        bracket.Stage `db:"stage"`
	Position     int           `db:"position"`
	SetsToWin    int           `db:"sets_to_win"`
}

type poolRow struct {
	ID           uuid.UUID `db:"id"`
	RoundID      uuid.UUID `db:"round_id"`
	TournamentID uuid.UUID `db:"tournament_id"`
	Name         string    `db:"name"`
	Position     int       `db:"position"`
}

type poolPairRow struct {
	PoolID       uuid.UUID `db:"pool_id"`
	PairID       uuid.UUID `db:"pair_id"`
	TournamentID uuid.UUID `db:"tournament_id"`
	Position     int       `db:"position"`
}

type gameRow struct {
	ID           uuid.UUID      `db:"id"`
	RoundID      uuid.UUID      `db:"round_id"`
	TournamentID uuid.UUID      `db:"tournament_id"`
	Position     int            `db:"position"`
	TeamAID      *uuid.UUID     `db:"team_a_id"`
	TeamBID      *uuid.UUID     `db:"team_b_id"`
	Score        *bracket.Score `db:"score"`
}

// SaveTournament writes the whole tournament graph, replacing whatever was
// stored for it before.
func (s *TournamentStore) SaveTournament(ctx context.Context, tx *sqlx.Tx, t *bracket.Tournament) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO tournaments (id, name, status, created_at, format, main_draw_size,
            pre_qual_draw_size, nb_qualifiers, nb_seeds, nb_seeds_qualify, nb_pools, nb_pairs_per_pool,
            nb_qualified_by_pool, nb_max_pairs, staggered_entry)
        VALUES (:id, :name, :status, :created_at, :format, :main_draw_size, :pre_qual_draw_size, :nb_qualifiers,
            :nb_seeds, :nb_seeds_qualify, :nb_pools, :nb_pairs_per_pool, :nb_qualified_by_pool, :nb_max_pairs,
            :staggered_entry)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            status = excluded.status,
            format = excluded.format,
            main_draw_size = excluded.main_draw_size,
            pre_qual_draw_size = excluded.pre_qual_draw_size,
            nb_qualifiers = excluded.nb_qualifiers,
            nb_seeds = excluded.nb_seeds,
            nb_seeds_qualify = excluded.nb_seeds_qualify,
            nb_pools = excluded.nb_pools,
            nb_pairs_per_pool = excluded.nb_pairs_per_pool,
            nb_qualified_by_pool = excluded.nb_qualified_by_pool,
            nb_max_pairs = excluded.nb_max_pairs,
            staggered_entry = excluded.staggered_entry`, t)
	if err != nil {
		return fmt.Errorf("failed to save tournament: %w", err)
	}

	for _, table := range []string{"games", "pool_pairs", "pools", "rounds", "pairs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE tournament_id = ?", t.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	pairs := collectPairs(t)
	for _, p := range pairs {
		p.TournamentID = t.ID
	}
	if err := insert(ctx, tx, `INSERT INTO pairs (id, tournament_id, name, seed, pair_type, qualifier_index)
        VALUES (:id, :tournament_id, :name, :seed, :pair_type, :qualifier_index)`, pairs); err != nil {
		return fmt.Errorf("failed to save pairs: %w", err)
	}

	var rounds []roundRow
	var pools []poolRow
	var poolPairs []poolPairRow
	var games []gameRow
	for i, r := range t.Rounds {
		rounds = append(rounds, roundRow{ID: r.ID, TournamentID: t.ID, Stage: r.Stage, Position: i, SetsToWin: r.MatchFormat.SetsToWin})
		for j, pool := range r.Pools {
			pools = append(pools, poolRow{ID: pool.ID, RoundID: r.ID, TournamentID: t.ID, Name: pool.Name, Position: j})
			for k, p := range pool.Pairs {
				poolPairs = append(poolPairs, poolPairRow{PoolID: pool.ID, PairID: p.ID, TournamentID: t.ID, Position: k})
			}
		}
		for j, g := range r.Games {
			games = append(games, gameRow{
				ID:           g.ID,
				RoundID:      r.ID,
				TournamentID: t.ID,
				Position:     j,
				TeamAID:      pairID(g.TeamA),
				TeamBID:      pairID(g.TeamB),
				Score:        g.Score,
			})
		}
	}

	if err := insert(ctx, tx, `INSERT INTO rounds (id, tournament_id, stage, position, sets_to_win)
        VALUES (:id, :tournament_id, :stage, :position, :sets_to_win)`, rounds); err != nil {
		return fmt.Errorf("failed to save rounds: %w", err)
	}
	if err := insert(ctx, tx, `INSERT INTO pools (id, round_id, tournament_id, name, position)
        VALUES (:id, :round_id, :tournament_id, :name, :position)`, pools); err != nil {
		return fmt.Errorf("failed to save pools: %w", err)
	}
	if err := insert(ctx, tx, `INSERT INTO pool_pairs (pool_id, pair_id, tournament_id, position)
        VALUES (:pool_id, :pair_id, :tournament_id, :position)`, poolPairs); err != nil {
		return fmt.Errorf("failed to save pool members: %w", err)
	}
	if err := insert(ctx, tx, `INSERT INTO games (id, round_id, tournament_id, position, team_a_id, team_b_id, score)
        VALUES (:id, :round_id, :tournament_id, :position, :team_a_id, :team_b_id, :score)`, games); err != nil {
		return fmt.Errorf("failed to save games: %w", err)
	}
	return nil
}

func insert[T any](ctx context.Context, tx *sqlx.Tx, query string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, query, rows)
	return err
}

func pairID(p *bracket.Pair) *uuid.UUID {
	if p == nil {
		return nil
	}
	return utils.Ptr(p.ID)
}

// collectPairs returns the roster plus every BYE or QUALIFIER referenced by
// a game or pool, each pair once.
func collectPairs(t *bracket.Tournament) []*bracket.Pair {
	seen := make(map[uuid.UUID]bool)
	var pairs []*bracket.Pair
	add := func(p *bracket.Pair) {
		if p != nil && !seen[p.ID] {
			seen[p.ID] = true
			pairs = append(pairs, p)
		}
	}
	for _, p := range t.Pairs {
		add(p)
	}
	for _, r := range t.Rounds {
		for _, pool := range r.Pools {
			for _, p := range pool.Pairs {
				add(p)
			}
		}
		for _, g := range r.Games {
			add(g.TeamA)
			add(g.TeamB)
		}
	}
	return pairs
}

// GetTournament loads the whole graph of a tournament. Every game and pool
// points at the single Pair value loaded for each id.
func (s *TournamentStore) GetTournament(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	var tournament bracket.Tournament
	err := s.db.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tournament %s: %w", id, bracket.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var (
		pairs     []*bracket.Pair
		rounds    []roundRow
		pools     []poolRow
		poolPairs []poolPairRow
		games     []gameRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.SelectContext(gctx, &pairs, "SELECT * FROM pairs WHERE tournament_id = ? ORDER BY rowid", id)
	})
	g.Go(func() error {
		return s.db.SelectContext(gctx, &rounds, "SELECT * FROM rounds WHERE tournament_id = ? ORDER BY position", id)
	})
	g.Go(func() error {
		return s.db.SelectContext(gctx, &pools, "SELECT * FROM pools WHERE tournament_id = ? ORDER BY position", id)
	})
	g.Go(func() error {
		return s.db.SelectContext(gctx, &poolPairs, "SELECT * FROM pool_pairs WHERE tournament_id = ? ORDER BY position", id)
	})
	g.Go(func() error {
		return s.db.SelectContext(gctx, &games, "SELECT * FROM games WHERE tournament_id = ? ORDER BY position", id)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}

	pairByID := make(map[uuid.UUID]*bracket.Pair, len(pairs))
	for _, p := range pairs {
		pairByID[p.ID] = p
		if !p.IsBye() {
			tournament.Pairs = append(tournament.Pairs, p)
		}
	}
	lookup := func(id *uuid.UUID) *bracket.Pair {
		if id == nil {
			return nil
		}
		return pairByID[*id]
	}

	roundByID := make(map[uuid.UUID]*bracket.Round, len(rounds))
	for _, row := range rounds {
		r := &bracket.Round{ID: row.ID, Stage: row.Stage, MatchFormat: bracket.MatchFormat{SetsToWin: row.SetsToWin}}
		roundByID[row.ID] = r
		tournament.Rounds = append(tournament.Rounds, r)
	}

	poolByID := make(map[uuid.UUID]*bracket.Pool, len(pools))
	for _, row := range pools {
		pool := &bracket.Pool{ID: row.ID, Name: row.Name}
		poolByID[row.ID] = pool
		if r, ok := roundByID[row.RoundID]; ok {
			r.Pools = append(r.Pools, pool)
		}
	}
	for _, row := range poolPairs {
		if pool, ok := poolByID[row.PoolID]; ok {
			pool.Pairs = append(pool.Pairs, pairByID[row.PairID])
		}
	}

	for _, row := range games {
		r, ok := roundByID[row.RoundID]
		if !ok {
			continue
		}
		r.Games = append(r.Games, &bracket.Game{
			ID:     row.ID,
			TeamA:  lookup(row.TeamAID),
			TeamB:  lookup(row.TeamBID),
			Score:  row.Score,
			Format: r.MatchFormat,
		})
	}

	return &tournament, nil
}

func (s *TournamentStore) ListTournaments(ctx context.Context) ([]bracket.Tournament, error) {
	var tournaments []bracket.Tournament
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments ORDER BY created_at DESC")
	return tournaments, err
}

func (s *TournamentStore) DeleteTournament(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM tournaments WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("tournament %s: %w", id, bracket.ErrNotFound)
	}
	return nil
}
