package bracket

import (
	"fmt"

	"github.com/google/uuid"
)

type Pool struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Pairs []*Pair   `json:"pairs"`
}

func NewPool(name string) *Pool {
	return &Pool{ID: uuid.New(), Name: name}
}

// PoolName returns "Pool A", "Pool B", ... for a zero based index.
func PoolName(index int) string {
	if index < 26 {
		return fmt.Sprintf("Pool %c", 'A'+index)
	}
	return fmt.Sprintf("Pool %d", index+1)
}

func (p *Pool) Contains(pair *Pair) bool {
	for _, member := range p.Pairs {
		if SamePair(member, pair) {
			return true
		}
	}
	return false
}

// Owns reports whether both teams of g belong to the pool.
func (p *Pool) Owns(g *Game) bool {
	return g.TeamA != nil && g.TeamB != nil && p.Contains(g.TeamA) && p.Contains(g.TeamB)
}
