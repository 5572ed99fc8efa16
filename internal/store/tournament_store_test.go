package store

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	// Every connection to file::memory: opens its own database.
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

func save(t *testing.T, db *sqlx.DB, store *TournamentStore, tournament *bracket.Tournament) {
	t.Helper()
	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, store.SaveTournament(context.Background(), tx, tournament))
	require.NoError(t, tx.Commit())
}

// knockoutFixture is a 4 pair semi final with a BYE, a QUALIFIER and one
// finished game.
func knockoutFixture() (*bracket.Tournament, []*bracket.Pair) {
	tournament := bracket.NewTournament("Club Open", bracket.TournamentConfig{
		Format:       bracket.FormatKnockout,
		MainDrawSize: 4,
		NbSeeds:      1,
	})
	alpha := bracket.NewPair("Alpha", 1)
	bravo := bracket.NewPair("Bravo", 0)
	qualifier := bracket.NewQualifier(1)
	tournament.AddPair(alpha)
	tournament.AddPair(bravo)
	tournament.AddPair(qualifier)

	semis := bracket.NewRound(bracket.StageSemis, 2, bracket.DefaultMatchFormat)
	final := bracket.NewRound(bracket.StageFinal, 1, bracket.DefaultMatchFormat)
	semis.SetSlot(0, alpha)
	semis.SetSlot(1, bracket.NewBye())
	semis.SetSlot(2, bravo)
	semis.SetSlot(3, qualifier)
	final.SetSlot(0, alpha)
	final.Games[0].Score = &bracket.Score{Sets: []bracket.SetScore{{A: 6, B: 4}}}
	tournament.Rounds = []*bracket.Round{semis, final}
	return tournament, []*bracket.Pair{alpha, bravo, qualifier}
}

func TestSaveAndGetTournament(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewTournamentStore(db)
	tournament, pairs := knockoutFixture()
	save(t, db, store, tournament)

	fetched, err := store.GetTournament(context.Background(), tournament.ID)
	require.NoError(t, err)

	assert.Equal(t, tournament.ID, fetched.ID)
	assert.Equal(t, tournament.Name, fetched.Name)
	assert.Equal(t, bracket.TournamentDraft, fetched.Status)
	assert.Equal(t, tournament.TournamentConfig, fetched.TournamentConfig)
	assert.WithinDuration(t, tournament.CreatedAt, fetched.CreatedAt, time.Second)

	require.Len(t, fetched.Pairs, 3, "BYEs are not part of the roster")
	for i, p := range pairs {
		assert.Equal(t, p.ID, fetched.Pairs[i].ID)
		assert.Equal(t, p.Name, fetched.Pairs[i].Name)
		assert.Equal(t, p.Type, fetched.Pairs[i].Type)
	}
	assert.Equal(t, 1, fetched.Pairs[2].QualifierIndex)

	require.Len(t, fetched.Rounds, 2)
	semis, final := fetched.Rounds[0], fetched.Rounds[1]
	assert.Equal(t, bracket.StageSemis, semis.Stage)
	assert.Equal(t, tournament.Rounds[0].ID, semis.ID)
	require.Len(t, semis.Games, 2)
	assert.Equal(t, tournament.Rounds[0].Games[0].ID, semis.Games[0].ID)
	assert.True(t, semis.Slot(1).IsBye())
	assert.True(t, semis.Slot(3).IsQualifier())
	assert.Same(t, semis.Slot(0), final.Slot(0), "one value per pair id")
	assert.Nil(t, final.Slot(1))
	require.NotNil(t, final.Games[0].Score)
	assert.Equal(t, []bracket.SetScore{{A: 6, B: 4}}, final.Games[0].Score.Sets)
	assert.Nil(t, semis.Games[0].Score)
	assert.Equal(t, bracket.DefaultMatchFormat, final.Games[0].Format)
}

func TestSaveTournamentReplacesGraph(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewTournamentStore(db)
	tournament, pairs := knockoutFixture()
	save(t, db, store, tournament)

	tournament.Rounds[1].ClearGames()
	tournament.Rounds[0].Games[1].TeamB = pairs[0]
	tournament.Pairs = tournament.Pairs[:2]
	tournament.Status = bracket.TournamentStarted
	tournament.StaggeredEntry = true
	save(t, db, store, tournament)

	fetched, err := store.GetTournament(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, bracket.TournamentStarted, fetched.Status)
	assert.True(t, fetched.StaggeredEntry)
	assert.Len(t, fetched.Pairs, 2)
	assert.True(t, fetched.Rounds[1].IsEmpty())
	assert.Nil(t, fetched.Rounds[1].Games[0].Score)

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM games WHERE tournament_id = ?", tournament.ID))
	assert.Equal(t, 3, count)
}

func TestSaveTournamentWithPools(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewTournamentStore(db)
	tournament := bracket.NewTournament("Pools", bracket.TournamentConfig{
		Format: bracket.FormatGroupsKO, MainDrawSize: 2, NbPools: 1, NbPairsPerPool: 3, NbQualifiedByPool: 2,
	})
	group := bracket.NewRound(bracket.StageGroups, 0, bracket.DefaultMatchFormat)
	pool := bracket.NewPool(bracket.PoolName(0))
	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		p := bracket.NewPair(name, 0)
		tournament.AddPair(p)
		pool.Pairs = append(pool.Pairs, p)
	}
	group.Pools = []*bracket.Pool{pool}
	game := bracket.NewGame(bracket.DefaultMatchFormat)
	game.TeamA, game.TeamB = pool.Pairs[0], pool.Pairs[2]
	group.Games = []*bracket.Game{game}
	tournament.Rounds = []*bracket.Round{group, bracket.NewRound(bracket.StageFinal, 1, bracket.DefaultMatchFormat)}
	save(t, db, store, tournament)

	fetched, err := store.GetTournament(context.Background(), tournament.ID)
	require.NoError(t, err)

	require.Len(t, fetched.Rounds[0].Pools, 1)
	fetchedPool := fetched.Rounds[0].Pools[0]
	assert.Equal(t, "Pool A", fetchedPool.Name)
	require.Len(t, fetchedPool.Pairs, 3)
	assert.Equal(t, "Charlie", fetchedPool.Pairs[2].Name)
	assert.Same(t, fetchedPool.Pairs[2], fetched.Rounds[0].Games[0].TeamB)
}

func TestGetTournamentNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := NewTournamentStore(db).GetTournament(context.Background(), uuid.New())

	assert.ErrorIs(t, err, bracket.ErrNotFound)
}

func TestListAndDeleteTournaments(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewTournamentStore(db)
	older, _ := knockoutFixture()
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer, _ := knockoutFixture()
	save(t, db, store, older)
	save(t, db, store, newer)

	tournaments, err := store.ListTournaments(context.Background())
	require.NoError(t, err)
	require.Len(t, tournaments, 2)
	assert.Equal(t, newer.ID, tournaments[0].ID)

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, store.DeleteTournament(context.Background(), tx, older.ID))
	assert.ErrorIs(t, store.DeleteTournament(context.Background(), tx, uuid.New()), bracket.ErrNotFound)
	require.NoError(t, tx.Commit())

	var pairs int
	require.NoError(t, db.Get(&pairs, "SELECT COUNT(*) FROM pairs WHERE tournament_id = ?", older.ID))
	assert.Zero(t, pairs)
}
