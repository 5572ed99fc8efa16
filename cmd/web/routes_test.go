package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/AdamBeresnev/padel-draw/internal/db"
	"github.com/AdamBeresnev/padel-draw/internal/draw"
	"github.com/AdamBeresnev/padel-draw/internal/service"
	"github.com/AdamBeresnev/padel-draw/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "file://../../migrations"))

	builder := service.NewTournamentBuilder(draw.NewPlacer(draw.NoShuffle, false))
	tournamentStore := store.NewTournamentStore(database)
	tournaments := service.NewTournamentService(database, tournamentStore, builder)
	app := &application{
		tournaments:    tournaments,
		matches:        service.NewMatchService(tournaments),
		allowedOrigins: []string{"*"},
	}
	server := httptest.NewServer(newRouter(app))
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

const createBody = `{
	"name": "Club Open",
	"config": {"format": "KNOCKOUT", "mainDrawSize": 8, "nbSeeds": 2},
	"pairsText": "Alpha;1\nBravo;2\nCharlie\nDelta\nEcho"
}`

func createTournament(t *testing.T, server *httptest.Server) bracket.Tournament {
	t.Helper()
	resp := do(t, http.MethodPost, server.URL+"/tournaments", createBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tournament bracket.Tournament
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tournament))
	return tournament
}

func TestCreateAndGetTournament(t *testing.T) {
	server := newTestServer(t)
	created := createTournament(t, server)

	assert.Equal(t, "Club Open", created.Name)
	assert.Len(t, created.Pairs, 5)

	resp := do(t, http.MethodGet, server.URL+"/tournaments/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched bracket.Tournament
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)
	require.Len(t, fetched.Rounds, 3)
	assert.Equal(t, bracket.StageQuarters, fetched.Rounds[0].Stage)

	resp = do(t, http.MethodGet, server.URL+"/tournaments", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []bracket.Tournament
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestCreateTournamentInvalidConfiguration(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/tournaments",
		`{"name": "Too small", "config": {"format": "KNOCKOUT", "mainDrawSize": 4}, "pairsText": "A\nB\nC\nD\nE"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["violations"])
}

func TestTournamentRouteErrors(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed id", http.MethodGet, "/tournaments/not-a-uuid", "", http.StatusBadRequest},
		{"unknown tournament", http.MethodGet, "/tournaments/" + uuid.NewString(), "", http.StatusNotFound},
		{"unknown delete", http.MethodDelete, "/tournaments/" + uuid.NewString(), "", http.StatusNotFound},
		{"broken json", http.MethodPost, "/tournaments", "{", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/nowhere", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, server.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestDrawSheetRoute(t *testing.T) {
	server := newTestServer(t)
	created := createTournament(t, server)

	resp := do(t, http.MethodGet, server.URL+"/tournaments/"+created.ID.String()+"/draw", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestRecordScoreRoute(t *testing.T) {
	server := newTestServer(t)
	created := createTournament(t, server)

	var gameID uuid.UUID
	for _, g := range created.Rounds[0].Games {
		if g.TeamA != nil && g.TeamB != nil && g.TeamA.IsReal() && g.TeamB.IsReal() {
			gameID = g.ID
			break
		}
	}
	require.NotEqual(t, uuid.Nil, gameID, "draw has a playable game")

	path := server.URL + "/tournaments/" + created.ID.String() + "/games/" + gameID.String()
	resp := do(t, http.MethodPut, path+"/score", `{"sets": [{"a": 6, "b": 3}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var data service.GameData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	require.NotNil(t, data.Game.Score)
	assert.Equal(t, []bracket.SetScore{{A: 6, B: 3}}, data.Game.Score.Sets)
}

func TestSeedRoundRoute(t *testing.T) {
	server := newTestServer(t)
	created := createTournament(t, server)
	path := server.URL + "/tournaments/" + created.ID.String()

	resp := do(t, http.MethodPost, path+"/rounds/QUARTERS/seed", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "the generated draw already fills the round")

	resp = do(t, http.MethodPost, path+"/rounds", `[{"stage": "FINAL", "games": [{"teamA": null, "teamB": null}]}]`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPost, path+"/rounds/QUARTERS/seed", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var seeded bracket.Tournament
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&seeded))
	assert.Equal(t, "Alpha", seeded.Rounds[0].Slot(0).Name)
	assert.Equal(t, 3, seeded.Rounds[0].CountByes())

	resp = do(t, http.MethodPost, path+"/rounds/R64/seed", `{"pairIds": []}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSkeletonRoute(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/skeleton", `{"format": "KNOCKOUT", "mainDrawSize": 8, "nbSeeds": 2}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rounds []bracket.Round
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rounds))
	require.Len(t, rounds, 3)
	assert.Len(t, rounds[0].Games, 4)
}

func TestValidateAndDeleteRoutes(t *testing.T) {
	server := newTestServer(t)
	created := createTournament(t, server)
	path := server.URL + "/tournaments/" + created.ID.String()

	resp := do(t, http.MethodGet, path+"/validate", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report struct {
		Valid      bool     `json:"valid"`
		Violations []string `json:"violations"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.True(t, report.Valid, report.Violations)

	resp = do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
