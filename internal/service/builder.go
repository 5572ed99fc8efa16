package service

import (
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
	"github.com/AdamBeresnev/padel-draw/internal/draw"
	"github.com/AdamBeresnev/padel-draw/internal/phase"
	"github.com/AdamBeresnev/padel-draw/internal/ranking"
	"github.com/google/uuid"
)

// maxQualifierRatio is the widest qualification draw three rounds can reduce
// to its qualifiers.
const maxQualifierRatio = 8

// TournamentBuilder turns a configuration into rounds and drives every
// operation that spans more than one phase.
type TournamentBuilder struct {
	placer *draw.Placer
}

func NewTournamentBuilder(placer *draw.Placer) *TournamentBuilder {
	if placer == nil {
		placer = draw.NewPlacer(nil, true)
	}
	return &TournamentBuilder{placer: placer}
}

// Phases resolves the ordered phases of a format. The qualification and
// group phases are left out while their sizes are unset.
func (b *TournamentBuilder) Phases(config bracket.TournamentConfig) []phase.Phase {
	mainDraw := phase.NewMainDraw(config.MainDrawSize, b.placer)
	switch config.Format {
	case bracket.FormatQualifKO:
		if hasQualification(config) {
			return []phase.Phase{phase.NewQualification(config.PreQualDrawSize, config.NbQualifiers, b.placer), mainDraw}
		}
	case bracket.FormatGroupsKO:
		if hasGroups(config) {
			return []phase.Phase{phase.NewGroup(config.NbPools, config.NbPairsPerPool, b.placer), mainDraw}
		}
	}
	return []phase.Phase{mainDraw}
}

func hasQualification(config bracket.TournamentConfig) bool {
	return config.PreQualDrawSize > 0 && config.NbQualifiers > 0
}

func hasGroups(config bracket.TournamentConfig) bool {
	return config.NbPools > 0 && config.NbPairsPerPool > 0
}

func (b *TournamentBuilder) phaseOf(config bracket.TournamentConfig, kind phase.Type) phase.Phase {
	for _, p := range b.Phases(config) {
		if p.Type() == kind {
			return p
		}
	}
	return nil
}

// BuildSkeleton validates config and returns the empty rounds of every phase.
func (b *TournamentBuilder) BuildSkeleton(config bracket.TournamentConfig) ([]*bracket.Round, error) {
	if err := b.validate(config, 0).ErrorOrNil(); err != nil {
		return nil, err
	}
	var rounds []*bracket.Round
	for _, p := range b.Phases(config) {
		phaseRounds, err := p.Initialize()
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, phaseRounds...)
	}
	return rounds, nil
}

// InitializeEmptyRounds replaces the rounds of t with a fresh skeleton.
func (b *TournamentBuilder) InitializeEmptyRounds(t *bracket.Tournament) error {
	rounds, err := b.BuildSkeleton(t.TournamentConfig)
	if err != nil {
		return err
	}
	t.Rounds = rounds
	return nil
}

// SetupManual overlays rounds chosen by hand onto t, matching them by stage.
// Rounds that were not supplied keep their games but lose their teams and
// scores. Every QUALIFIER referenced afterwards joins the roster.
func (b *TournamentBuilder) SetupManual(t *bracket.Tournament, rounds []*bracket.Round) error {
	if len(t.Rounds) == 0 {
		if err := b.InitializeEmptyRounds(t); err != nil {
			return err
		}
	}

	supplied := make(map[bracket.Stage]*bracket.Round, len(rounds))
	violations := &bracket.ConfigurationError{}
	for _, r := range rounds {
		existing, err := t.RoundByStage(r.Stage)
		if err != nil {
			return err
		}
		if len(existing.Pools) == 0 && len(r.Games) != len(existing.Games) {
			return fmt.Errorf("round %s needs %d games, got %d: %w", r.Stage, len(existing.Games), len(r.Games), bracket.ErrInvalidConfiguration)
		}
		checkSingleSlot(r, violations)
		supplied[r.Stage] = r
	}
	if err := violations.ErrorOrNil(); err != nil {
		return err
	}

	for _, existing := range t.Rounds {
		r, ok := supplied[existing.Stage]
		if !ok {
			existing.ClearGames()
			continue
		}
		existing.Games = r.Games
		if len(r.Pools) > 0 {
			existing.Pools = r.Pools
		}
		existing.SetMatchFormat(existing.MatchFormat)
	}

	b.collectQualifiers(t)
	return nil
}

// checkSingleSlot reports every pair found in more than one slot of a
// knockout round, or in more than one pool of a group round, where pairs
// play several games each. Pairs without an id cannot be told apart and are
// skipped.
func checkSingleSlot(r *bracket.Round, violations *bracket.ConfigurationError) {
	seen := make(map[uuid.UUID]bool)
	check := func(p *bracket.Pair, where string) {
		if p == nil || p.ID == uuid.Nil {
			return
		}
		if seen[p.ID] {
			violations.Add("round %s: pair %s appears twice (again in %s)", r.Stage, p, where)
			return
		}
		seen[p.ID] = true
	}
	if len(r.Pools) > 0 {
		for _, pool := range r.Pools {
			for _, p := range pool.Pairs {
				check(p, pool.Name)
			}
		}
		return
	}
	for i, g := range r.Games {
		check(g.TeamA, fmt.Sprintf("game %d", i+1))
		check(g.TeamB, fmt.Sprintf("game %d", i+1))
	}
}

// collectQualifiers adds the QUALIFIER placeholders referenced by any game
// to the roster, once each.
func (b *TournamentBuilder) collectQualifiers(t *bracket.Tournament) {
	for _, r := range t.Rounds {
		for _, g := range r.Games {
			for _, p := range []*bracket.Pair{g.TeamA, g.TeamB} {
				if p.IsQualifier() {
					t.AddPair(p)
				}
			}
		}
	}
}

// PlaceSeedsAndByes seeds a knockout round and completes it with the BYEs it
// needs. Qualification rounds use nbSeedsQualify, main draw rounds nbSeeds;
// QUALIFIER placeholders already in the round count as entries.
func (b *TournamentBuilder) PlaceSeedsAndByes(round *bracket.Round, pairs []*bracket.Pair, config bracket.TournamentConfig) error {
	nbSeeds := config.NbSeeds
	if round.Stage.IsQualification() {
		nbSeeds = config.NbSeedsQualify
	}
	if err := b.placer.PlaceSeedTeams(round, pairs, nbSeeds, round.DrawSize()); err != nil {
		return err
	}
	qualifiers := 0
	for _, p := range round.Pairs() {
		if p.IsQualifier() {
			qualifiers++
		}
	}
	_, err := draw.PlaceByeTeams(round, len(pairs), nbSeeds, round.DrawSize(), qualifiers)
	return err
}

// PlaceStaggeredSeeds seeds a main draw whose seeds enter over its first two
// rounds: the better half in the first round, the others one round later on
// the slots reserved for them.
func (b *TournamentBuilder) PlaceStaggeredSeeds(t *bracket.Tournament, pairs []*bracket.Pair) error {
	rounds := phase.Rounds(b.phaseOf(t.TournamentConfig, phase.MainDraw), t)
	if len(rounds) < 2 {
		return fmt.Errorf("staggered entry needs two main draw rounds: %w", bracket.ErrInvalidConfiguration)
	}
	entry := draw.StaggeredEntry{First: rounds[0].Stage, Second: rounds[1].Stage, TotalSeeds: t.NbSeeds}
	placeholders, err := entry.PlaceFirstRound(rounds[0], pairs)
	for _, p := range placeholders {
		t.AddPair(p)
	}
	if err != nil {
		return err
	}
	return entry.PlaceSecondRound(rounds[1], pairs)
}

// GenerateDraw validates the configuration against pairs, rebuilds the
// rounds of t and places every pair, then resolves the walkovers.
func (b *TournamentBuilder) GenerateDraw(t *bracket.Tournament, pairs []*bracket.Pair) error {
	violations := b.validate(t.TournamentConfig, len(pairs))
	if len(pairs) < 2 {
		violations.Add("a draw needs at least 2 pairs, got %d", len(pairs))
	}
	if err := violations.ErrorOrNil(); err != nil {
		return err
	}

	if err := b.InitializeEmptyRounds(t); err != nil {
		return err
	}
	t.Pairs = nil
	for _, p := range pairs {
		t.AddPair(p)
	}

	var err error
	switch t.Format {
	case bracket.FormatQualifKO:
		err = b.generateQualifKO(t, pairs)
	case bracket.FormatGroupsKO:
		err = b.generateGroupsKO(t, pairs)
	default:
		if t.StaggeredEntry {
			err = b.placeStaggered(t, pairs)
		} else {
			err = b.placeKnockout(t, b.phaseOf(t.TournamentConfig, phase.MainDraw), pairs, t.NbSeeds, 0)
		}
	}
	if err != nil {
		return err
	}

	moved := b.PropagateWinners(t)
	t.Status = bracket.TournamentStarted
	slog.Info("draw generated", "tournament", t.ID, "format", t.Format, "pairs", len(pairs), "walkovers", moved)
	return nil
}

func (b *TournamentBuilder) placeKnockout(t *bracket.Tournament, p phase.Phase, pairs []*bracket.Pair, nbSeeds, nbQualifiers int) error {
	if err := p.PlaceSeedTeams(t, pairs, nbSeeds); err != nil {
		return err
	}
	if err := p.PlaceQualifierTeams(t, nbQualifiers, nbSeeds); err != nil {
		return err
	}
	if err := p.PlaceByeTeams(t, len(pairs), nbSeeds, nbQualifiers); err != nil {
		return err
	}
	return p.PlaceRemainingTeamsRandomly(t, pairs)
}

// placeStaggered fills a main draw whose lower seeds enter one round late.
// The first round game reserved for each of them is a QUALIFIER placeholder
// against a BYE, then the first round is completed like any other.
func (b *TournamentBuilder) placeStaggered(t *bracket.Tournament, pairs []*bracket.Pair) error {
	if err := b.PlaceStaggeredSeeds(t, pairs); err != nil {
		return err
	}
	rounds := phase.Rounds(b.phaseOf(t.TournamentConfig, phase.MainDraw), t)
	first, second := rounds[0], rounds[1]

	placeholders := 0
	for slot := 0; slot < first.DrawSize(); slot++ {
		if first.Slot(slot).IsQualifier() {
			placeholders++
			if sibling := bracket.OppositeSlot(slot); first.Slot(sibling) == nil {
				first.SetSlot(sibling, bracket.NewBye())
			}
		}
	}

	var entering []*bracket.Pair
	for _, p := range pairs {
		if !second.Contains(p) {
			entering = append(entering, p)
		}
	}
	if _, err := draw.PlaceByeTeams(first, len(entering), t.NbSeeds, first.DrawSize(), placeholders); err != nil {
		return err
	}
	return b.placer.PlaceRemainingTeams(first, entering)
}

// heldBackSeeds is the number of seeds entering in the second round of a
// staggered main draw.
func heldBackSeeds(nbSeeds int) int {
	return nbSeeds / 2
}

// generateQualifKO sends the best pairs straight into the main draw and the
// rest into the qualification draw.
func (b *TournamentBuilder) generateQualifKO(t *bracket.Tournament, pairs []*bracket.Pair) error {
	mainDraw := b.phaseOf(t.TournamentConfig, phase.MainDraw)
	qualification := b.phaseOf(t.TournamentConfig, phase.Qualification)
	if qualification == nil {
		return b.placeKnockout(t, mainDraw, pairs, t.NbSeeds, 0)
	}

	sorted := draw.SortBySeed(pairs)
	direct := min(t.MainDrawSize-t.NbQualifiers, len(sorted))
	if err := b.placeKnockout(t, mainDraw, sorted[:direct], t.NbSeeds, t.NbQualifiers); err != nil {
		return err
	}
	return b.placeKnockout(t, qualification, sorted[direct:], t.NbSeedsQualify, 0)
}

func (b *TournamentBuilder) generateGroupsKO(t *bracket.Tournament, pairs []*bracket.Pair) error {
	groups := b.phaseOf(t.TournamentConfig, phase.Groups)
	if groups == nil {
		return b.placeKnockout(t, b.phaseOf(t.TournamentConfig, phase.MainDraw), pairs, t.NbSeeds, 0)
	}
	if err := groups.PlaceSeedTeams(t, pairs, t.NbSeeds); err != nil {
		return err
	}
	if err := groups.PlaceRemainingTeamsRandomly(t, pairs); err != nil {
		return err
	}
	if g, ok := groups.(*phase.Group); ok {
		round, err := phase.FirstRound(g, t)
		if err != nil {
			return err
		}
		// Pools that could not be filled still play among themselves.
		if len(round.Games) == 0 {
			g.GenerateGames(round)
		}
	}
	return nil
}

// PropagateWinners runs the propagation of the first knockout phase, which
// sweeps every later round through the shared round list. The tournament is
// completed once the final has a winner, and started again if a corrected
// score takes that winner away.
func (b *TournamentBuilder) PropagateWinners(t *bracket.Tournament) int {
	moved := 0
	for _, p := range b.Phases(t.TournamentConfig) {
		if _, ok := p.(*phase.Knockout); ok {
			moved = p.PropagateWinners(t)
			break
		}
	}
	switch {
	case t.Champion() != nil:
		t.Status = bracket.TournamentCompleted
	case t.Status == bracket.TournamentCompleted:
		t.Status = bracket.TournamentStarted
	}
	return moved
}

// AdvancePoolQualifiers moves the best nbQualifiedByPool pairs of every pool
// into the first main draw round: all pool winners on the top seed slots in
// pool order, then every runner-up, and so on. Missing entries become BYEs.
func (b *TournamentBuilder) AdvancePoolQualifiers(t *bracket.Tournament) error {
	groups := b.phaseOf(t.TournamentConfig, phase.Groups)
	if groups == nil {
		return fmt.Errorf("tournament %s has no group phase: %w", t.ID, bracket.ErrInvalidConfiguration)
	}
	groupRound, err := phase.FirstRound(groups, t)
	if err != nil {
		return err
	}
	for _, g := range groupRound.Games {
		if !g.IsFinished() {
			return fmt.Errorf("pool game %s is not finished: %w", g.ID, bracket.ErrInvalidConfiguration)
		}
	}

	mainDraw := b.phaseOf(t.TournamentConfig, phase.MainDraw)
	first, err := phase.FirstRound(mainDraw, t)
	if err != nil {
		return err
	}
	if !first.IsEmpty() {
		return fmt.Errorf("main draw %s already has pairs: %w", first.Stage, bracket.ErrSlotOccupied)
	}

	qualified := make([][]*bracket.Pair, len(groupRound.Pools))
	for i, pool := range groupRound.Pools {
		qualified[i] = ranking.Qualified(ranking.ComputeRanking(pool, groupRound.Games), t.NbQualifiedByPool)
	}
	var entries []*bracket.Pair
	for rank := 0; rank < t.NbQualifiedByPool; rank++ {
		for _, pairs := range qualified {
			if rank < len(pairs) {
				entries = append(entries, pairs[rank])
			}
		}
	}

	positions := draw.SeedPositions(first.DrawSize(), len(entries))
	if len(positions) < len(entries) {
		return fmt.Errorf("%d pool qualifiers do not fit a draw of %d: %w", len(entries), first.DrawSize(), bracket.ErrNotEnoughSlots)
	}
	for i, p := range entries {
		first.SetSlot(positions[i], p)
	}
	if _, err := draw.PlaceByeTeams(first, len(entries), len(groupRound.Pools), first.DrawSize(), 0); err != nil {
		return err
	}

	moved := b.PropagateWinners(t)
	slog.Info("pool qualifiers advanced", "tournament", t.ID, "pairs", len(entries), "walkovers", moved)
	return nil
}

// Validate lists every configuration violation of t, empty when valid.
func (b *TournamentBuilder) Validate(t *bracket.Tournament) []string {
	return b.validate(t.TournamentConfig, len(t.RealPairs())).Violations()
}

// validate checks config for nbPairs entrants; a count of 0 skips the
// checks that depend on the roster.
func (b *TournamentBuilder) validate(config bracket.TournamentConfig, nbPairs int) *bracket.ConfigurationError {
	violations := &bracket.ConfigurationError{}
	switch config.Format {
	case bracket.FormatKnockout, bracket.FormatQualifKO, bracket.FormatGroupsKO:
	default:
		violations.Add("unknown format %q", config.Format)
	}
	if config.NbSeeds < 0 || config.NbSeeds > config.MainDrawSize {
		violations.Add("number of seeds %d must be between 0 and the main draw size %d", config.NbSeeds, config.MainDrawSize)
	}
	if config.NbMaxPairs > 0 && nbPairs > config.NbMaxPairs {
		violations.Add("%d pairs exceed the maximum of %d", nbPairs, config.NbMaxPairs)
	}

	for _, p := range b.Phases(config) {
		violations.Merge(p.Validate())
	}

	capacity := config.MainDrawSize
	switch config.Format {
	case bracket.FormatQualifKO:
		if (config.PreQualDrawSize > 0) != (config.NbQualifiers > 0) {
			violations.Add("qualification draw size and number of qualifiers must be set together")
		}
		if hasQualification(config) {
			if config.NbQualifiers >= config.PreQualDrawSize {
				violations.Add("number of qualifiers %d must be smaller than the qualification draw size %d", config.NbQualifiers, config.PreQualDrawSize)
			} else if config.PreQualDrawSize > config.NbQualifiers*maxQualifierRatio {
				violations.Add("a qualification draw of %d cannot produce %d qualifiers in %d rounds", config.PreQualDrawSize, config.NbQualifiers, bracket.MaxQualificationRounds())
			}
			if config.NbSeeds+config.NbQualifiers > config.MainDrawSize {
				violations.Add("%d seeds and %d qualifiers do not fit a main draw of %d", config.NbSeeds, config.NbQualifiers, config.MainDrawSize)
			}
			if config.NbSeedsQualify < 0 || config.NbSeedsQualify > config.PreQualDrawSize {
				violations.Add("number of qualification seeds %d must be between 0 and the qualification draw size %d", config.NbSeedsQualify, config.PreQualDrawSize)
			}
			capacity = config.MainDrawSize - config.NbQualifiers + config.PreQualDrawSize
		}
	case bracket.FormatGroupsKO:
		if !hasGroups(config) {
			violations.Add("number of pools and pairs per pool are required")
			break
		}
		capacity = config.NbPools * config.NbPairsPerPool
		if config.NbQualifiedByPool < 1 || config.NbQualifiedByPool > config.NbPairsPerPool {
			violations.Add("qualified pairs by pool %d must be between 1 and %d", config.NbQualifiedByPool, config.NbPairsPerPool)
		} else if config.NbPools*config.NbQualifiedByPool > config.MainDrawSize {
			violations.Add("%d pool qualifiers do not fit a main draw of %d", config.NbPools*config.NbQualifiedByPool, config.MainDrawSize)
		}
	}
	if config.StaggeredEntry {
		switch {
		case config.Format != bracket.FormatKnockout:
			violations.Add("staggered seed entry is only available for %s draws", bracket.FormatKnockout)
		case config.MainDrawSize < 4:
			violations.Add("staggered seed entry needs a main draw of at least 4, got %d", config.MainDrawSize)
		case config.NbSeeds*2 > config.MainDrawSize:
			violations.Add("staggered seed entry allows at most %d seeds in a main draw of %d", config.MainDrawSize/2, config.MainDrawSize)
		}
		capacity -= heldBackSeeds(config.NbSeeds)
	}
	if nbPairs > capacity {
		violations.Add("%d pairs exceed the %d places of the draw", nbPairs, capacity)
	}
	return violations
}
