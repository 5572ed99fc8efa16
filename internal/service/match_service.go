package service

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/google/uuid"
)

type MatchService struct {
	tournaments *TournamentService
}

func NewMatchService(tournaments *TournamentService) *MatchService {
	return &MatchService{tournaments: tournaments}
}

type GameData struct {
	Stage bracket.Stage `json:"stage"`
	Game  *bracket.Game `json:"game"`
	// Winner is set once the game is decided, by score or walkover.
	Winner *bracket.Pair `json:"winner,omitempty"`
}

func (s *MatchService) GetGame(ctx context.Context, tournamentID, gameID uuid.UUID) (*GameData, error) {
	tournament, err := s.tournaments.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	round, game, err := tournament.GameByID(gameID)
	if err != nil {
		return nil, err
	}
	return &GameData{Stage: round.Stage, Game: game, Winner: game.Winner()}, nil
}

// RecordScore stores the score of a game between two real pairs and pushes
// the winner forward. A nil score clears the game.
func (s *MatchService) RecordScore(ctx context.Context, tournamentID, gameID uuid.UUID, score *bracket.Score) (*GameData, error) {
	var data *GameData
	_, err := s.tournaments.update(ctx, tournamentID, func(t *bracket.Tournament) error {
		round, game, err := t.GameByID(gameID)
		if err != nil {
			return err
		}
		if !game.TeamA.IsReal() || !game.TeamB.IsReal() {
			return fmt.Errorf("game %s is not between two pairs: %w", gameID, bracket.ErrInvalidConfiguration)
		}
		for _, set := range scoreSets(score) {
			if set.A < 0 || set.B < 0 {
				return fmt.Errorf("negative set score %d-%d: %w", set.A, set.B, bracket.ErrInvalidConfiguration)
			}
		}

		game.Score = score
		if t.Status == bracket.TournamentDraft {
			t.Status = bracket.TournamentStarted
		}
		s.tournaments.builder.PropagateWinners(t)
		data = &GameData{Stage: round.Stage, Game: game, Winner: game.Winner()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func scoreSets(score *bracket.Score) []bracket.SetScore {
	if score == nil {
		return nil
	}
	return score.Sets
}
