package bracket

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

type PairType string

const (
	PairNormal    PairType = "NORMAL"
	PairBye       PairType = "BYE"
	PairQualifier PairType = "QUALIFIER"
)

// Pair is a padel team, or one of the BYE / QUALIFIER sentinels. Two pairs
// are the same only when their IDs match: placeholders that look alike are
// still distinct pairs.
type Pair struct {
	ID             uuid.UUID `db:"id" json:"id"`
	TournamentID   uuid.UUID `db:"tournament_id" json:"-"`
	Name           string    `db:"name" json:"name"`
	Seed           int       `db:"seed" json:"seed,omitempty"`
	Type           PairType  `db:"pair_type" json:"type"`
	QualifierIndex int       `db:"qualifier_index" json:"qualifierIndex,omitempty"`
}

func NewPair(name string, seed int) *Pair {
	return &Pair{ID: uuid.New(), Name: name, Seed: seed, Type: PairNormal}
}

func NewBye() *Pair {
	return &Pair{ID: uuid.New(), Name: "BYE", Type: PairBye}
}

// NewQualifier creates the placeholder for the index-th qualifier (1 based).
func NewQualifier(index int) *Pair {
	return &Pair{
		ID:             uuid.New(),
		Name:           fmt.Sprintf("Q%d", index),
		Type:           PairQualifier,
		QualifierIndex: index,
	}
}

func (p *Pair) IsBye() bool {
	return p != nil && p.Type == PairBye
}

func (p *Pair) IsQualifier() bool {
	return p != nil && p.Type == PairQualifier
}

// IsReal reports whether p is an actual team rather than a placeholder.
func (p *Pair) IsReal() bool {
	return p != nil && (p.Type == PairNormal || p.Type == "")
}

func (p *Pair) IsSeeded() bool {
	return p != nil && p.Seed > 0
}

// SeedPriority orders pairs for placement: seeds ascending, unseeded last.
func (p *Pair) SeedPriority() int {
	if !p.IsSeeded() {
		return math.MaxInt
	}
	return p.Seed
}

// SamePair compares by identity.
func SamePair(a, b *Pair) bool {
	return a != nil && b != nil && a.ID == b.ID
}

func (p *Pair) String() string {
	if p == nil {
		return "-"
	}
	return p.Name
}
