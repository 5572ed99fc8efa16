package draw

import (
	"fmt"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
)

func inAnyPool(pools []*bracket.Pool, p *bracket.Pair) bool {
	for _, pool := range pools {
		if pool.Contains(p) {
			return true
		}
	}
	return false
}

// addToPool puts p into pool target, or the next pool with room.
func addToPool(pools []*bracket.Pool, target int, p *bracket.Pair, capacity int) error {
	for i := range pools {
		pool := pools[(target+i)%len(pools)]
		if len(pool.Pairs) < capacity {
			pool.Pairs = append(pool.Pairs, p)
			return nil
		}
	}
	return fmt.Errorf("no pool has room for %s: %w", p, bracket.ErrNotEnoughSlots)
}

// PlaceSeedsInPools deals the nbSeeds best pairs round robin: seed i goes to
// pool i mod len(pools).
func PlaceSeedsInPools(pools []*bracket.Pool, pairs []*bracket.Pair, nbSeeds, capacity int) error {
	if len(pools) == 0 {
		return fmt.Errorf("no pools to seed: %w", bracket.ErrInvalidConfiguration)
	}
	sorted := SortBySeed(pairs)
	for i := 0; i < nbSeeds && i < len(sorted); i++ {
		if inAnyPool(pools, sorted[i]) {
			continue
		}
		if err := addToPool(pools, i%len(pools), sorted[i], capacity); err != nil {
			return err
		}
	}
	return nil
}

// PlaceRemainingInPools shuffles the pairs not yet in a pool and deals them
// round robin, starting with the least filled pool.
func (p *Placer) PlaceRemainingInPools(pools []*bracket.Pool, pairs []*bracket.Pair, capacity int) error {
	if len(pools) == 0 {
		return fmt.Errorf("no pools to fill: %w", bracket.ErrInvalidConfiguration)
	}
	var remaining []*bracket.Pair
	for _, pair := range pairs {
		if !inAnyPool(pools, pair) {
			remaining = append(remaining, pair)
		}
	}
	shuffleSlice(p.shuffler, remaining)

	start := 0
	for i, pool := range pools {
		if len(pool.Pairs) < len(pools[start].Pairs) {
			start = i
		}
	}
	for i, pair := range remaining {
		if err := addToPool(pools, (start+i)%len(pools), pair, capacity); err != nil {
			return err
		}
	}
	return nil
}

// RoundRobinGames creates one game for every unordered pair of pool members.
func RoundRobinGames(pool *bracket.Pool, format bracket.MatchFormat) []*bracket.Game {
	n := len(pool.Pairs)
	games := make([]*bracket.Game, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g := bracket.NewGame(format)
			g.TeamA = pool.Pairs[i]
			g.TeamB = pool.Pairs[j]
			games = append(games, g)
		}
	}
	return games
}
