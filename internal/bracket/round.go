package bracket

import "github.com/google/uuid"

// Round is one stage of the tournament. For knockout stages len(Games)*2 is
// the draw size; the group stage also carries its pools.
type Round struct {
	ID          uuid.UUID   `json:"id"`
	Stage       Stage       `json:"stage"`
	Games       []*Game     `json:"games"`
	Pools       []*Pool     `json:"pools,omitempty"`
	MatchFormat MatchFormat `json:"matchFormat"`
}

func NewRound(stage Stage, nbGames int, format MatchFormat) *Round {
	r := &Round{ID: uuid.New(), Stage: stage, MatchFormat: format}
	r.Games = make([]*Game, nbGames)
	for i := range r.Games {
		r.Games[i] = NewGame(format)
	}
	return r
}

func (r *Round) DrawSize() int {
	return len(r.Games) * 2
}

func (r *Round) Slot(slot int) *Pair {
	game, side := SlotPosition(slot)
	if game < 0 || game >= len(r.Games) {
		return nil
	}
	return r.Games[game].Team(side)
}

func (r *Round) SetSlot(slot int, p *Pair) {
	game, side := SlotPosition(slot)
	r.Games[game].SetTeam(side, p)
}

// IsEmpty reports whether no pair has been assigned anywhere in the round.
func (r *Round) IsEmpty() bool {
	for _, g := range r.Games {
		if !g.IsEmpty() {
			return false
		}
	}
	for _, p := range r.Pools {
		if len(p.Pairs) > 0 {
			return false
		}
	}
	return true
}

func (r *Round) Contains(p *Pair) bool {
	for _, g := range r.Games {
		if g.HasPair(p) {
			return true
		}
	}
	return false
}

func (r *Round) CountByes() int {
	n := 0
	for _, g := range r.Games {
		if g.TeamA.IsBye() {
			n++
		}
		if g.TeamB.IsBye() {
			n++
		}
	}
	return n
}

// Pairs returns every distinct pair referenced by the games, in slot order.
func (r *Round) Pairs() []*Pair {
	seen := make(map[uuid.UUID]bool)
	var pairs []*Pair
	for _, g := range r.Games {
		for _, p := range []*Pair{g.TeamA, g.TeamB} {
			if p != nil && !seen[p.ID] {
				seen[p.ID] = true
				pairs = append(pairs, p)
			}
		}
	}
	return pairs
}

func (r *Round) SetMatchFormat(format MatchFormat) {
	r.MatchFormat = format
	for _, g := range r.Games {
		g.Format = format
	}
}

// ClearGames empties every game without removing it.
func (r *Round) ClearGames() {
	for _, g := range r.Games {
		g.Clear()
	}
}

func (r *Round) GameByID(id uuid.UUID) *Game {
	for _, g := range r.Games {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (r *Round) PoolByID(id uuid.UUID) *Pool {
	for _, p := range r.Pools {
		if p.ID == id {
			return p
		}
	}
	return nil
}
