package bracket

import "github.com/google/uuid"

type Game struct {
	ID     uuid.UUID   `json:"id"`
	TeamA  *Pair       `json:"teamA"`
	TeamB  *Pair       `json:"teamB"`
	Score  *Score      `json:"score,omitempty"`
	Format MatchFormat `json:"-"`
}

func NewGame(format MatchFormat) *Game {
	return &Game{ID: uuid.New(), Format: format}
}

func (g *Game) Team(side Side) *Pair {
	if side == SideA {
		return g.TeamA
	}
	return g.TeamB
}

func (g *Game) SetTeam(side Side, p *Pair) {
	if side == SideA {
		g.TeamA = p
	} else {
		g.TeamB = p
	}
}

func (g *Game) IsEmpty() bool {
	return g.TeamA == nil && g.TeamB == nil
}

func (g *Game) HasPair(p *Pair) bool {
	return SamePair(g.TeamA, p) || SamePair(g.TeamB, p)
}

// Clear removes both teams and the score but keeps the game in its round.
func (g *Game) Clear() {
	g.TeamA = nil
	g.TeamB = nil
	g.Score = nil
}

// IsFinished is true once a winner is known. A real pair facing a BYE is
// finished without a score; two BYEs are finished too so walkovers chain.
func (g *Game) IsFinished() bool {
	return g.Winner() != nil
}

func (g *Game) Winner() *Pair {
	a, b := g.TeamA, g.TeamB
	if a == nil || b == nil || a.IsQualifier() || b.IsQualifier() {
		return nil
	}
	switch {
	case a.IsBye() && b.IsBye():
		return a
	case a.IsBye():
		return b
	case b.IsBye():
		return a
	}
	side, ok := g.Score.WinningSide(g.Format)
	if !ok {
		return nil
	}
	return g.Team(side)
}

func (g *Game) Loser() *Pair {
	w := g.Winner()
	if w == nil {
		return nil
	}
	if SamePair(w, g.TeamA) {
		return g.TeamB
	}
	return g.TeamA
}
