package views

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	assert.Equal(t, "-", PairLabel(nil))
	assert.Equal(t, "Alpha [1]", PairLabel(bracket.NewPair("Alpha", 1)))
	assert.Equal(t, "Bravo", PairLabel(bracket.NewPair("Bravo", 0)))
	assert.Equal(t, "BYE", PairLabel(bracket.NewBye()))
	assert.Equal(t, "Q3", PairLabel(bracket.NewQualifier(3)))

	assert.Equal(t, "", ScoreLabel(nil))
	assert.Equal(t, "6-3 4-6 7-5", ScoreLabel(&bracket.Score{Sets: []bracket.SetScore{{A: 6, B: 3}, {A: 4, B: 6}, {A: 7, B: 5}}}))
}

func drawFixture() *bracket.Tournament {
	t := bracket.NewTournament("Club <Open>", bracket.TournamentConfig{Format: bracket.FormatGroupsKO, MainDrawSize: 2})
	alpha, bravo := bracket.NewPair("Alpha", 1), bracket.NewPair("Bravo", 0)

	group := bracket.NewRound(bracket.StageGroups, 0, bracket.DefaultMatchFormat)
	pool := bracket.NewPool(bracket.PoolName(0))
	pool.Pairs = []*bracket.Pair{alpha, bravo}
	group.Pools = []*bracket.Pool{pool}
	poolGame := bracket.NewGame(bracket.DefaultMatchFormat)
	poolGame.TeamA, poolGame.TeamB = alpha, bravo
	poolGame.Score = &bracket.Score{Sets: []bracket.SetScore{{A: 6, B: 1}, {A: 6, B: 1}}}
	group.Games = []*bracket.Game{poolGame}

	final := bracket.NewRound(bracket.StageFinal, 1, bracket.DefaultMatchFormat)
	final.SetSlot(0, alpha)
	final.SetSlot(1, bravo)
	final.Games[0].Score = &bracket.Score{Sets: []bracket.SetScore{{A: 3, B: 6}, {A: 4, B: 6}}}
	t.Rounds = []*bracket.Round{group, final}
	return t
}

func TestPrepareDrawData(t *testing.T) {
	data := PrepareDrawData(drawFixture())

	assert.Equal(t, "Bravo", data.Champion)
	require.Len(t, data.Pools, 1)
	assert.Equal(t, "Pool A", data.Pools[0].Name)
	assert.Equal(t, "Alpha", data.Pools[0].Standings[0].Pair.Name)

	require.Len(t, data.Rounds, 1, "the group round is shown as pool tables")
	final := data.Rounds[0]
	assert.Equal(t, bracket.StageFinal, final.Stage)
	require.Len(t, final.Games, 1)
	assert.Equal(t, GameRow{TeamA: "Alpha [1]", TeamB: "Bravo", Score: "3-6 4-6", Winner: bracket.SideB, Decided: true}, final.Games[0])
}

func TestDrawSheetRenders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DrawSheet(PrepareDrawData(drawFixture())).Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, "<h1>Club &lt;Open&gt;</h1>")
	assert.Contains(t, html, "<caption>Pool A</caption>")
	assert.Contains(t, html, `<span class="winner">Bravo</span>`)
	assert.Contains(t, html, "Winner: Bravo")
}

func TestRenderWritesNothingOnFailure(t *testing.T) {
	failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, "<p>partial")
		return errors.New("boom")
	})
	rec := httptest.NewRecorder()

	err := Render(rec, httptest.NewRequest("GET", "/", nil), failing)

	assert.Error(t, err)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}
