package ranking

import (
	"cmp"
	"slices"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
)

// Standing is one pair's line in a pool table.
type Standing struct {
	Pair      *bracket.Pair `json:"pair"`
	Points    int           `json:"points"`
	GamesWon  int           `json:"gamesWon"`
	GamesLost int           `json:"gamesLost"`
	// Tied is set when the pair shares both points and differential with a
	// neighbour; the order between tied pairs is not meaningful.
	Tied bool `json:"tied"`
}

func (s Standing) Differential() int {
	return s.GamesWon - s.GamesLost
}

// ComputeRanking builds the table of pool from the finished games among its
// members. Games involving a pair outside the pool are ignored.
func ComputeRanking(pool *bracket.Pool, games []*bracket.Game) []Standing {
	standings := make([]Standing, len(pool.Pairs))
	for i, p := range pool.Pairs {
		standings[i] = Standing{Pair: p}
	}
	lookup := func(p *bracket.Pair) *Standing {
		for i := range standings {
			if bracket.SamePair(standings[i].Pair, p) {
				return &standings[i]
			}
		}
		return nil
	}

	for _, g := range games {
		if !pool.Owns(g) {
			continue
		}
		winner := g.Winner()
		if winner == nil {
			continue
		}
		a, b := lookup(g.TeamA), lookup(g.TeamB)
		gamesA, gamesB := g.Score.GamesWon()
		a.GamesWon += gamesA
		a.GamesLost += gamesB
		b.GamesWon += gamesB
		b.GamesLost += gamesA
		if bracket.SamePair(winner, g.TeamA) {
			a.Points++
		} else {
			b.Points++
		}
	}

	slices.SortStableFunc(standings, compare)
	for i := 1; i < len(standings); i++ {
		if compare(standings[i-1], standings[i]) == 0 {
			standings[i-1].Tied = true
			standings[i].Tied = true
		}
	}
	return standings
}

func compare(a, b Standing) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	return cmp.Compare(b.Differential(), a.Differential())
}

// Qualified returns the first n pairs of a ranking.
func Qualified(standings []Standing, n int) []*bracket.Pair {
	n = min(n, len(standings))
	pairs := make([]*bracket.Pair, n)
	for i := range pairs {
		pairs[i] = standings[i].Pair
	}
	return pairs
}
