package draw

import "math/rand/v2"

// Shuffler is the randomness source for blind draws. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

// NoShuffle keeps every order as given. Used for reproducible draws.
var NoShuffle Shuffler = noShuffle{}

// NewShuffler returns a seeded source when seed is set, the global one otherwise.
func NewShuffler(seed *int64) Shuffler {
	if seed == nil {
		return globalShuffler{}
	}
	s := uint64(*seed)
	return rand.New(rand.NewPCG(s, s))
}

// Placer fills rounds and pools. Randomization only ever permutes seeds
// inside their seed group and unseeded pairs among free slots.
type Placer struct {
	shuffler            Shuffler
	randomizeSeedGroups bool
}

func NewPlacer(shuffler Shuffler, randomizeSeedGroups bool) *Placer {
	if shuffler == nil {
		shuffler = globalShuffler{}
	}
	return &Placer{shuffler: shuffler, randomizeSeedGroups: randomizeSeedGroups}
}

func shuffleSlice[T any](s Shuffler, items []T) {
	s.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
