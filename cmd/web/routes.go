package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/AdamBeresnev/padel-draw/internal/httputil"
	"github.com/AdamBeresnev/padel-draw/internal/service"
	"github.com/AdamBeresnev/padel-draw/views"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

type application struct {
	tournaments    *service.TournamentService
	matches        *service.MatchService
	allowedOrigins []string
}

func urlUUID(w http.ResponseWriter, r *http.Request, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	if err != nil {
		httputil.BadRequest(w, "Invalid "+key, err)
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httputil.BadRequest(w, "Invalid JSON body", err)
		return false
	}
	return true
}

func newRouter(app *application) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.NotFound(w, "Page not found", nil)
	})

	r.Post("/skeleton", func(w http.ResponseWriter, r *http.Request) {
		var config bracket.TournamentConfig
		if !decode(w, r, &config) {
			return
		}
		rounds, err := app.tournaments.BuildSkeleton(config)
		if err != nil {
			httputil.Error(w, "Invalid configuration", err)
			return
		}
		httputil.JSON(w, http.StatusOK, rounds)
	})

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			tournaments, err := app.tournaments.ListTournaments(r.Context())
			if err != nil {
				httputil.Error(w, "Failed to list tournaments", err)
				return
			}
			httputil.JSON(w, http.StatusOK, tournaments)
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var input service.CreateTournamentInput
			if !decode(w, r, &input) {
				return
			}
			tournament, err := app.tournaments.CreateTournament(r.Context(), input)
			if err != nil {
				httputil.Error(w, "Failed to create tournament", err)
				return
			}
			httputil.JSON(w, http.StatusCreated, tournament)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				id, ok := urlUUID(w, r, "id")
				if !ok {
					return
				}
				tournament, err := app.tournaments.GetTournament(r.Context(), id)
				if err != nil {
					httputil.Error(w, "Failed to get tournament", err)
					return
				}
				httputil.JSON(w, http.StatusOK, tournament)
			})

			r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
				id, ok := urlUUID(w, r, "id")
				if !ok {
					return
				}
				if err := app.tournaments.DeleteTournament(r.Context(), id); err != nil {
					httputil.Error(w, "Failed to delete tournament", err)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})

			r.Get("/draw", func(w http.ResponseWriter, r *http.Request) {
				id, ok := urlUUID(w, r, "id")
				if !ok {
					return
				}
				tournament, err := app.tournaments.GetTournament(r.Context(), id)
				if err != nil {
					httputil.Error(w, "Failed to get tournament", err)
					return
				}
				if err := views.Render(w, r, views.DrawSheet(views.PrepareDrawData(tournament))); err != nil {
					httputil.InternalServerError(w, "Failed to render draw", err)
				}
			})

			r.Post("/rounds", func(w http.ResponseWriter, r *http.Request) {
				id, ok := urlUUID(w, r, "id")
				if !ok {
					return
				}
				var rounds []*bracket.Round
				if !decode(w, r, &rounds) {
					return
				}
				tournament, err := app.tournaments.SetupManual(r.Context(), id, rounds)
				if err != nil {
					httputil.Error(w, "Failed to set up rounds", err)
					return
				}
				httputil.JSON(w, http.StatusOK, tournament)
			})

			r.Post("/rounds/{stage}/seed", func(w http.ResponseWriter, r *http.Request) {
				id, ok := urlUUID(w, r, "id")
				if !ok {
					return
				}
				var body struct {
					PairIDs []uuid.UUID `json:"pairIds"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
					httputil.BadRequest(w, "Invalid JSON body", err)
					return
				}
				stage := bracket.Stage(chi.URLParam(r, "stage"))
				tournament, err := app.tournaments.SeedRound(r.Context(), id, stage, body.PairIDs)
				if err != nil {
					httputil.Error(w, "Failed to seed round", err)
					return
				}
				httputil.JSON(w, http.StatusOK, tournament)
			})

			r.Get("/games/{gameID}", func(w http.ResponseWriter, r *http.Request) {
				id, ok := urlUUID(w, r, "id")
				if !ok {
					return
				}
				gameID, ok := urlUUID(w, r, "gameID")
				if !ok {
					return
				}
				data, err := app.matches.GetGame(r.Context(), id, gameID)
				if err != nil {
					httputil.Error(w, "Failed to get game", err)
					return
				}
				httputil.JSON(w, http.StatusOK, data)
			})

			r.Put("/games/{gameID}/score", func(w http.ResponseWriter, r *http.Request) {
				id, ok := urlUUID(w, r, "id")
				if !ok {
					return
				}
				gameID, ok := urlUUID(w, r, "gameID")
				if !ok {
					return
				}
				var score bracket.Score
				if !decode(w, r, &score) {
					return
				}
				data, err := app.matches.RecordScore(r.Context(), id, gameID, &score)
				if err != nil {
					httputil.Error(w, "Failed to record score", err)
					return
				}
				httputil.JSON(w, http.StatusOK, data)
			})

			r.Post("/propagate", func(w http.ResponseWriter, r *http.Request) {
				id, ok := urlUUID(w, r, "id")
				if !ok {
					return
				}
				tournament, moved, err := app.tournaments.Propagate(r.Context(), id)
				if err != nil {
					httputil.Error(w, "Failed to propagate winners", err)
					return
				}
				httputil.JSON(w, http.StatusOK, map[string]any{"moved": moved, "tournament": tournament})
			})

			r.Get("/pools/{poolID}/ranking", func(w http.ResponseWriter, r *http.Request) {
				id, ok := urlUUID(w, r, "id")
				if !ok {
					return
				}
				poolID, ok := urlUUID(w, r, "poolID")
				if !ok {
					return
				}
				table, err := app.tournaments.Ranking(r.Context(), id, poolID)
				if err != nil {
					httputil.Error(w, "Failed to compute ranking", err)
					return
				}
				httputil.JSON(w, http.StatusOK, table)
			})

			r.Post("/pools/advance", func(w http.ResponseWriter, r *http.Request) {
				id, ok := urlUUID(w, r, "id")
				if !ok {
					return
				}
				tournament, err := app.tournaments.AdvancePools(r.Context(), id)
				if err != nil {
					httputil.Error(w, "Failed to advance pool qualifiers", err)
					return
				}
				httputil.JSON(w, http.StatusOK, tournament)
			})

			r.Get("/validate", func(w http.ResponseWriter, r *http.Request) {
				id, ok := urlUUID(w, r, "id")
				if !ok {
					return
				}
				violations, err := app.tournaments.Validate(r.Context(), id)
				if err != nil {
					httputil.Error(w, "Failed to validate tournament", err)
					return
				}
				httputil.JSON(w, http.StatusOK, map[string]any{"valid": len(violations) == 0, "violations": violations})
			})
		})
	})

	return r
}
