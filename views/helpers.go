package views

import (
	"fmt"
	"strings"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
)

// PairLabel is how a slot reads on the draw sheet: "Alpha [1]", "BYE", "Q2" or "-".
func PairLabel(p *bracket.Pair) string {
	switch {
	case p == nil:
		return "-"
	case p.IsReal() && p.IsSeeded():
		return fmt.Sprintf("%s [%d]", p.Name, p.Seed)
	}
	return p.Name
}

// ScoreLabel prints the sets as "6-3 4-6 7-5".
func ScoreLabel(s *bracket.Score) string {
	if s == nil {
		return ""
	}
	sets := make([]string, len(s.Sets))
	for i, set := range s.Sets {
		sets[i] = fmt.Sprintf("%d-%d", set.A, set.B)
	}
	return strings.Join(sets, " ")
}
