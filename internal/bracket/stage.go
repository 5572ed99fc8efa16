package bracket

import "fmt"

type Stage string

const (
	StageQ1       Stage = "Q1"
	StageQ2       Stage = "Q2"
	StageQ3       Stage = "Q3"
	StageGroups   Stage = "GROUPS"
	StageR64      Stage = "R64"
	StageR32      Stage = "R32"
	StageR16      Stage = "R16"
	StageQuarters Stage = "QUARTERS"
	StageSemis    Stage = "SEMIS"
	StageFinal    Stage = "FINAL"
	StageWinner   Stage = "WINNER"
)

// Chronological order. Qualification and group stages come before any main draw stage.
var stageOrder = []Stage{
	StageQ1, StageQ2, StageQ3, StageGroups,
	StageR64, StageR32, StageR16, StageQuarters, StageSemis, StageFinal, StageWinner,
}

var stageTeams = map[Stage]int{
	StageR64:      64,
	StageR32:      32,
	StageR16:      16,
	StageQuarters: 8,
	StageSemis:    4,
	StageFinal:    2,
	StageWinner:   1,
}

var qualifStages = []Stage{StageQ1, StageQ2, StageQ3}

// TeamCount is the number of teams entering a main draw stage, 0 for
// qualification and group stages.
func (s Stage) TeamCount() int {
	return stageTeams[s]
}

func (s Stage) Order() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Stage) Before(other Stage) bool {
	return s.Order() < other.Order()
}

func (s Stage) Valid() bool {
	return s.Order() >= 0
}

func (s Stage) IsQualification() bool {
	return s == StageQ1 || s == StageQ2 || s == StageQ3
}

// StageForTeams returns the main draw stage played by the given number of teams.
func StageForTeams(teams int) (Stage, error) {
	for st, n := range stageTeams {
		if n == teams {
			return st, nil
		}
	}
	return "", fmt.Errorf("no stage for %d teams: %w", teams, ErrInvalidConfiguration)
}

// QualificationStage returns Q1, Q2 or Q3 for the zero based qualification round.
func QualificationStage(round int) (Stage, bool) {
	if round < 0 || round >= len(qualifStages) {
		return "", false
	}
	return qualifStages[round], true
}

func MaxQualificationRounds() int {
	return len(qualifStages)
}
