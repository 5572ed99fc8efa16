package bracket

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type SetScore struct {
	A int `json:"a"`
	B int `json:"b"`
}

// MatchFormat is shared by every game of a round.
type MatchFormat struct {
	SetsToWin int `db:"sets_to_win" json:"setsToWin"`
}

var DefaultMatchFormat = MatchFormat{SetsToWin: 2}

func (f MatchFormat) setsToWin() int {
	if f.SetsToWin <= 0 {
		return DefaultMatchFormat.SetsToWin
	}
	return f.SetsToWin
}

// Score holds the games of every set played. Checking that a set score is
// legal (tie-breaks, advantage rules) is the scorer's job, not ours.
type Score struct {
	Sets []SetScore `json:"sets"`
}

func (s *Score) SetsWon() (a, b int) {
	if s == nil {
		return 0, 0
	}
	for _, set := range s.Sets {
		switch {
		case set.A > set.B:
			a++
		case set.B > set.A:
			b++
		}
	}
	return a, b
}

func (s *Score) GamesWon() (a, b int) {
	if s == nil {
		return 0, 0
	}
	for _, set := range s.Sets {
		a += set.A
		b += set.B
	}
	return a, b
}

// WinningSide returns the side that reached the sets needed by format.
func (s *Score) WinningSide(format MatchFormat) (Side, bool) {
	a, b := s.SetsWon()
	need := format.setsToWin()
	switch {
	case a >= need && a > b:
		return SideA, true
	case b >= need && b > a:
		return SideB, true
	}
	return SideA, false
}

// Value stores the score as JSON.
func (s Score) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Score) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = Score{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), s)
	case []byte:
		return json.Unmarshal(v, s)
	}
	return fmt.Errorf("cannot scan %T into Score", src)
}
