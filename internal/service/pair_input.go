package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/AdamBeresnev/padel-draw/internal/utils"
)

const maxPairNameLength = 50

type PairInput struct {
	Name string `json:"name"`
	Seed int    `json:"seed,omitempty"`
}

// ParsePairs reads one pair per line, "name" or "name;seed". Blank lines are skipped.
func ParsePairs(text string) ([]PairInput, error) {
	var inputs []PairInput
	for i, line := range strings.Split(text, "\n") {
		if utils.StringOrNil(line) == nil {
			continue
		}
		name, seedStr, found := strings.Cut(line, ";")
		input := PairInput{Name: strings.TrimSpace(name)}
		if found {
			if seed := utils.StringOrNil(seedStr); seed != nil {
				n, err := strconv.Atoi(*seed)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid seed %q: %w", i+1, *seed, bracket.ErrInvalidConfiguration)
				}
				input.Seed = n
			}
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

// NewPairs checks the inputs and creates one pair for each.
func NewPairs(inputs []PairInput) ([]*bracket.Pair, error) {
	violations := &bracket.ConfigurationError{}
	seeds := make(map[int]string)
	pairs := make([]*bracket.Pair, 0, len(inputs))
	for i, input := range inputs {
		name := utils.StringOrNil(input.Name)
		switch {
		case name == nil:
			violations.Add("pair %d has no name", i+1)
			continue
		case len(*name) > maxPairNameLength:
			violations.Add("pair name '%s' exceeds %d characters", *name, maxPairNameLength)
		}
		if input.Seed < 0 {
			violations.Add("pair '%s' has a negative seed", *name)
		} else if input.Seed > 0 {
			if other, taken := seeds[input.Seed]; taken {
				violations.Add("seed %d is given to both '%s' and '%s'", input.Seed, other, *name)
			}
			seeds[input.Seed] = *name
		}
		pairs = append(pairs, bracket.NewPair(*name, input.Seed))
	}
	if err := violations.ErrorOrNil(); err != nil {
		return nil, err
	}
	return pairs, nil
}
