package views

import (
	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/AdamBeresnev/padel-draw/internal/ranking"
)

type GameRow struct {
	TeamA  string
	TeamB  string
	Score  string
	Winner bracket.Side
	// Decided is false while the winner is unknown.
	Decided bool
}

type RoundColumn struct {
	Stage bracket.Stage
	Games []GameRow
}

type PoolTable struct {
	Name      string
	Standings []ranking.Standing
}

type DrawData struct {
	Name     string
	Status   bracket.TournamentStatus
	Champion string
	Pools    []PoolTable
	Rounds   []RoundColumn
}

// PrepareDrawData flattens a tournament into the columns of a draw sheet:
// pool tables first, then one column per knockout round.
func PrepareDrawData(t *bracket.Tournament) DrawData {
	data := DrawData{Name: t.Name, Status: t.Status}
	if champion := t.Champion(); champion != nil {
		data.Champion = PairLabel(champion)
	}

	for _, r := range t.Rounds {
		if len(r.Pools) > 0 {
			for _, pool := range r.Pools {
				data.Pools = append(data.Pools, PoolTable{
					Name:      pool.Name,
					Standings: ranking.ComputeRanking(pool, r.Games),
				})
			}
			continue
		}
		column := RoundColumn{Stage: r.Stage}
		for _, g := range r.Games {
			row := GameRow{TeamA: PairLabel(g.TeamA), TeamB: PairLabel(g.TeamB), Score: ScoreLabel(g.Score)}
			if w := g.Winner(); w != nil {
				row.Decided = true
				if !bracket.SamePair(w, g.TeamA) {
					row.Winner = bracket.SideB
				}
			}
			column.Games = append(column.Games, row)
		}
		data.Rounds = append(data.Rounds, column)
	}
	return data
}
